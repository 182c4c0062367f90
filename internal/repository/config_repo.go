package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/quiz_go_server/internal/model"
)

type ConfigRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// GetOrCreate 读取配额配置，不存在则用缺省值懒创建
func (r *ConfigRepository) GetOrCreate() (*model.QuotaConfig, error) {
	var cfg model.QuotaConfig
	err := r.db.First(&cfg, 1).Error
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := model.DefaultQuotaConfig()
	if err := r.db.Create(defaults).Error; err != nil {
		// 并发首次创建时可能撞主键，重读一次
		var again model.QuotaConfig
		if readErr := r.db.First(&again, 1).Error; readErr == nil {
			return &again, nil
		}
		return nil, err
	}
	return defaults, nil
}

func (r *ConfigRepository) UpdateFields(fields map[string]interface{}) error {
	return r.db.Model(&model.QuotaConfig{}).Where("id = ?", 1).Updates(fields).Error
}
