package model

import (
	"time"
)

// QuotaConfig 各套餐每日配额，全局单行记录
// 不在内存中缓存，每次准入都重新读取，管理员修改立即生效
type QuotaConfig struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	FreeLimit      int       `gorm:"default:3" json:"free"`
	ProLimit       int       `gorm:"default:20" json:"pro"`
	GoldLimit      int       `gorm:"default:100" json:"gold"`
	UnlimitedLimit int       `gorm:"default:99999" json:"unlimited"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (QuotaConfig) TableName() string {
	return "quota_configs"
}

// DefaultQuotaConfig 缺省配额
func DefaultQuotaConfig() *QuotaConfig {
	return &QuotaConfig{
		ID:             1,
		FreeLimit:      3,
		ProLimit:       20,
		GoldLimit:      100,
		UnlimitedLimit: 99999,
	}
}

// LimitFor 返回套餐对应的每日上限，未知套餐按 free 处理
func (q *QuotaConfig) LimitFor(planType string) int {
	switch planType {
	case PlanPro:
		return q.ProLimit
	case PlanGold:
		return q.GoldLimit
	case PlanUnlimited:
		return q.UnlimitedLimit
	default:
		return q.FreeLimit
	}
}
