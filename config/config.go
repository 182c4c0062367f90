package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Session  SessionConfig  `mapstructure:"session"`
	Admin    AdminConfig    `mapstructure:"admin"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type GeminiConfig struct {
	APIKeys        []string `mapstructure:"api_keys"`        // 上游 API Key 池
	TimeoutSeconds int      `mapstructure:"timeout_seconds"` // 单次生成超时（秒）
	MaxAttempts    int      `mapstructure:"max_attempts"`    // 限流重试上限
}

type SessionConfig struct {
	Secret           string `mapstructure:"secret"`
	UserExpireHours  int    `mapstructure:"user_expire_hours"`  // 激活会话有效期
	AdminExpireHours int    `mapstructure:"admin_expire_hours"` // 管理会话有效期
	CookieSecure     bool   `mapstructure:"cookie_secure"`
}

type AdminConfig struct {
	PasswordHash string `mapstructure:"password_hash"` // bcrypt 哈希
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	// 检查 config.local.yaml 是否存在
	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Gemini.TimeoutSeconds <= 0 {
		cfg.Gemini.TimeoutSeconds = 120
	}
	if cfg.Gemini.MaxAttempts <= 0 {
		cfg.Gemini.MaxAttempts = 3
	}
	if cfg.Session.UserExpireHours <= 0 {
		cfg.Session.UserExpireHours = 24 * 30
	}
	if cfg.Session.AdminExpireHours <= 0 {
		cfg.Session.AdminExpireHours = 12
	}
}
