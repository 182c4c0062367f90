package dto

// ActivateRequest 激活请求
type ActivateRequest struct {
	Code     string `json:"code" binding:"required"`
	DeviceID string `json:"device_id"`
}

// ActivateResponse 激活响应
type ActivateResponse struct {
	Valid bool   `json:"valid"`
	Plan  string `json:"plan"`
}

// QuotaInfo 配额信息
type QuotaInfo struct {
	Plan        string `json:"plan"`
	DailyLimit  int    `json:"daily_limit"`
	DailyUsed   int    `json:"daily_used"`
	DailyRemain int    `json:"daily_remain"`
}
