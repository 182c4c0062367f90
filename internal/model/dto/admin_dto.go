package dto

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// GenerateCodesRequest 批量生成激活码请求
type GenerateCodesRequest struct {
	Count    int    `json:"count" binding:"required,min=1,max=500"`
	PlanType string `json:"plan_type" binding:"required,oneof=free pro gold unlimited"`
}

// GenerateCodesResponse 批量生成激活码响应
type GenerateCodesResponse struct {
	Codes []string `json:"codes"`
}

// PlanLimits 各套餐每日上限（部分更新，nil 表示保持原值）
type PlanLimits struct {
	Free      *int `json:"free,omitempty"`
	Pro       *int `json:"pro,omitempty"`
	Gold      *int `json:"gold,omitempty"`
	Unlimited *int `json:"unlimited,omitempty"`
}

// UpdateConfigRequest 配额配置更新请求
type UpdateConfigRequest struct {
	PlanLimits *PlanLimits `json:"plan_limits"`
}

// ConfigResponse 配额配置响应
type ConfigResponse struct {
	Free      int    `json:"free"`
	Pro       int    `json:"pro"`
	Gold      int    `json:"gold"`
	Unlimited int    `json:"unlimited"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
