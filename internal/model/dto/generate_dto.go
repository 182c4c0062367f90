package dto

import (
	"github.com/qs3c/quiz_go_server/internal/pkg/fingerprint"
)

// GenerateRequest 生成请求
// Code 为 cookie 缺失时的回退凭证；Hash 为客户端预计算的缓存指纹，
// 也可以只传 Source + Settings 由服务端重新计算
type GenerateRequest struct {
	Code     string                `json:"code"`
	Model    string                `json:"model" binding:"required"`
	Contents []Content             `json:"contents" binding:"required,min=1"`
	Config   *GenerationConfig     `json:"config"`
	Hash     string                `json:"hash"`
	Source   string                `json:"source"`
	Settings *fingerprint.Settings `json:"settings"`
	Title    string                `json:"title"`
}

// Content 一条生成输入
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts" binding:"required"`
}

// Part 输入分片，文本或内联文件二选一
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

// InlineData 内联文件数据（base64 编码）
type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// GenerationConfig 透传给上游模型的生成参数
type GenerationConfig struct {
	Temperature      *float32 `json:"temperature,omitempty"`
	TopP             *float32 `json:"top_p,omitempty"`
	TopK             *int32   `json:"top_k,omitempty"`
	MaxOutputTokens  *int32   `json:"max_output_tokens,omitempty"`
	ResponseMIMEType string   `json:"response_mime_type,omitempty"`
}

// GenerateResponse 生成响应
type GenerateResponse struct {
	Text      string `json:"text"`
	Remaining int    `json:"remaining"`
	Cached    bool   `json:"cached,omitempty"`
}
