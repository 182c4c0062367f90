package gemini

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// DefaultMaxAttempts 限流重试上限
// 固定小常数而非按池大小缩放，保证尾延迟可预测
const DefaultMaxAttempts = 3

// Operation 单次上游调用，key 由执行器每次重新抽取
type Operation func(key string) (string, error)

// Executor 包装上游调用：仅对限流信号换 Key 重试，
// 其余错误立即透传
type Executor struct {
	pool        *KeyPool
	maxAttempts int
}

func NewExecutor(pool *KeyPool, maxAttempts int) *Executor {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Executor{
		pool:        pool,
		maxAttempts: maxAttempts,
	}
}

// Run 执行操作，限流时轮换凭证重试，超过上限后返回最后一次错误
func (e *Executor) Run(op Operation) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		key, err := e.pool.NextKey()
		if err != nil {
			return "", err
		}

		result, err := op(key)
		if err == nil {
			return result, nil
		}
		if !IsRateLimited(err) {
			return "", err
		}

		lastErr = err
		if attempt < e.maxAttempts {
			log.Printf("Upstream rate limited (attempt %d/%d), rotating key", attempt, e.maxAttempts)
		}
	}

	return "", lastErr
}

// IsRateLimited 判断错误是否为限流信号（429 状态或消息中的限流标记）
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "quota")
}
