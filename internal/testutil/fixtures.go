package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/quiz_go_server/internal/model"
)

// TestCode 创建测试激活码
func TestCode(t *testing.T, db *gorm.DB, opts ...func(*model.ActivationCode)) *model.ActivationCode {
	t.Helper()

	now := time.Now()
	code := &model.ActivationCode{
		Code:          fmt.Sprintf("TESTCODE%08d", time.Now().UnixNano()%100000000),
		PlanType:      model.PlanFree,
		DailyUsage:    0,
		LastUsageDate: &now,
	}

	for _, opt := range opts {
		opt(code)
	}

	if err := db.Create(code).Error; err != nil {
		t.Fatalf("Failed to create test code: %v", err)
	}

	return code
}

// WithCode 设置激活码
func WithCode(code string) func(*model.ActivationCode) {
	return func(c *model.ActivationCode) {
		c.Code = code
	}
}

// WithPlan 设置套餐
func WithPlan(plan string) func(*model.ActivationCode) {
	return func(c *model.ActivationCode) {
		c.PlanType = plan
	}
}

// WithUsage 设置今日已用次数
func WithUsage(used int) func(*model.ActivationCode) {
	return func(c *model.ActivationCode) {
		c.DailyUsage = used
	}
}

// WithLastUsage 设置最后使用时间
func WithLastUsage(at time.Time) func(*model.ActivationCode) {
	return func(c *model.ActivationCode) {
		c.LastUsageDate = &at
	}
}

// WithDevice 设置绑定设备
func WithDevice(deviceID string) func(*model.ActivationCode) {
	return func(c *model.ActivationCode) {
		c.BoundDevice = &deviceID
		c.IsUsed = true
	}
}

// TestQuiz 创建测试缓存条目
func TestQuiz(t *testing.T, db *gorm.DB, hash string, opts ...func(*model.CachedQuiz)) *model.CachedQuiz {
	t.Helper()

	quiz := &model.CachedQuiz{
		Hash:          hash,
		Title:         fmt.Sprintf("Test Quiz %d", time.Now().UnixNano()%10000),
		Payload:       `{"questions":[{"q":"1+1","a":"2"}]}`,
		QuestionCount: 1,
	}

	for _, opt := range opts {
		opt(quiz)
	}

	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("Failed to create test quiz: %v", err)
	}

	return quiz
}

// WithTitle 设置缓存标题
func WithTitle(title string) func(*model.CachedQuiz) {
	return func(q *model.CachedQuiz) {
		q.Title = title
	}
}

// WithPayload 设置缓存内容
func WithPayload(payload string) func(*model.CachedQuiz) {
	return func(q *model.CachedQuiz) {
		q.Payload = payload
	}
}
