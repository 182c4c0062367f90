package dto

import "encoding/json"

// QuizCheckRequest 缓存查询请求
type QuizCheckRequest struct {
	Hash string `json:"hash" binding:"required"`
}

// QuizCheckResponse 缓存查询响应
type QuizCheckResponse struct {
	Found bool            `json:"found"`
	Quiz  json.RawMessage `json:"quiz,omitempty"`
	Title string          `json:"title,omitempty"`
}

// QuizSaveRequest 缓存保存请求
type QuizSaveRequest struct {
	Hash  string          `json:"hash" binding:"required"`
	Quiz  json.RawMessage `json:"quiz" binding:"required"`
	Title string          `json:"title"`
}

// QuizSummary 管理端缓存列表项
type QuizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Date          string `json:"date"`
	QuestionCount int    `json:"question_count"`
}
