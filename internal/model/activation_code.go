package model

import (
	"strings"
	"time"
)

// 套餐类型
const (
	PlanFree      = "free"
	PlanPro       = "pro"
	PlanGold      = "gold"
	PlanUnlimited = "unlimited"
)

// ActivationCode 激活码记录
// Code 既是主键也是持有者凭证，统一大写存储
type ActivationCode struct {
	Code          string     `gorm:"primaryKey;size:64" json:"code"`
	PlanType      string     `gorm:"size:20;default:free;index" json:"plan_type"`
	IsUsed        bool       `gorm:"default:false" json:"is_used"`
	BoundDevice   *string    `gorm:"size:128" json:"bound_device,omitempty"`
	DailyUsage    int        `gorm:"default:0" json:"daily_usage"`
	LastUsageDate *time.Time `json:"last_usage_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (ActivationCode) TableName() string {
	return "activation_codes"
}

// NormalizeCode 激活码大小写归一化
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
