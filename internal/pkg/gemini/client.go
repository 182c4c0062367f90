package gemini

import (
	"context"
	"errors"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/qs3c/quiz_go_server/config"
)

var (
	ErrEmptyResponse = errors.New("上游未返回内容")
)

// Client Gemini 上游客户端
// 每次调用从池中抽取凭证，限流时由执行器换 Key 重试
type Client struct {
	executor *Executor
	timeout  time.Duration
}

func NewClient(cfg *config.GeminiConfig) *Client {
	pool := NewKeyPool(cfg.APIKeys)
	return &Client{
		executor: NewExecutor(pool, cfg.MaxAttempts),
		timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// GenerateText 调用上游模型生成文本
// 对调用方而言是纯读操作，无部分写入，可安全重试
func (c *Client) GenerateText(ctx context.Context, modelName string, parts []genai.Part, genCfg genai.GenerationConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.executor.Run(func(key string) (string, error) {
		return c.generateOnce(ctx, key, modelName, parts, genCfg)
	})
}

func (c *Client) generateOnce(ctx context.Context, key, modelName string, parts []genai.Part, genCfg genai.GenerationConfig) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.GenerationConfig = genCfg

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}

	return extractText(resp)
}

// extractText 拼接候选结果中的全部文本分片
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", ErrEmptyResponse
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
