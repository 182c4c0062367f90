package model

import (
	"time"
)

// CachedQuiz 内容寻址的生成结果缓存
// Hash 为 (输入内容 + 生成设置) 的指纹，同指纹重复请求直接命中缓存
type CachedQuiz struct {
	Hash          string    `gorm:"primaryKey;size:64" json:"hash"`
	Title         string    `gorm:"size:255" json:"title"`
	Payload       string    `gorm:"type:longtext" json:"payload"`
	QuestionCount int       `gorm:"default:0" json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (CachedQuiz) TableName() string {
	return "cached_quizzes"
}
