package service

import (
	"context"
	"encoding/base64"
	"errors"
	"log"

	"github.com/google/generative-ai-go/genai"

	"github.com/qs3c/quiz_go_server/internal/model/dto"
	"github.com/qs3c/quiz_go_server/internal/pkg/fingerprint"
)

var (
	ErrNoContent = errors.New("请求内容为空")
	ErrBadInline = errors.New("内联文件数据无效")
)

// TextGenerator 上游模型调用，测试时用假实现替换
type TextGenerator interface {
	GenerateText(ctx context.Context, modelName string, parts []genai.Part, genCfg genai.GenerationConfig) (string, error)
}

// GenerationService 生成代理，所有模型调用的唯一咽喉：
// 配额准入、缓存短路、Key 轮换重试在这里交汇
type GenerationService struct {
	quotaService *QuotaService
	cacheService *CacheService
	generator    TextGenerator
}

func NewGenerationService(quotaService *QuotaService, cacheService *CacheService, generator TextGenerator) *GenerationService {
	return &GenerationService{
		quotaService: quotaService,
		cacheService: cacheService,
		generator:    generator,
	}
}

// Generate 生成流程：
// 缓存命中直接返回（不扣配额、不调上游）；未命中则准入 → 调上游 →
// 成功后扣配额并异步写缓存；上游失败不扣配额、不写缓存
func (s *GenerationService) Generate(ctx context.Context, code string, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	hash := req.Hash
	if hash == "" && req.Source != "" && req.Settings != nil {
		hash = fingerprint.Compute(req.Source, *req.Settings)
	}

	// 缓存快路径，存储异常按未命中处理
	if hash != "" {
		if quiz, found, _ := s.cacheService.Lookup(ctx, hash); found {
			info, err := s.quotaService.GetQuotaInfo(code)
			remaining := 0
			if err == nil {
				remaining = info.DailyRemain
			}
			return &dto.GenerateResponse{
				Text:      quiz.Payload,
				Remaining: remaining,
				Cached:    true,
			}, nil
		}
	}

	record, limit, err := s.quotaService.Admit(code)
	if err != nil {
		return nil, err
	}

	parts, err := buildParts(req.Contents)
	if err != nil {
		return nil, err
	}

	text, err := s.generator.GenerateText(ctx, req.Model, parts, buildGenerationConfig(req.Config))
	if err != nil {
		// 失败不扣配额、不写缓存
		return nil, err
	}

	// 成功后才扣配额；扣减失败不影响本次结果
	if err := s.quotaService.UseQuota(record.Code); err != nil {
		log.Printf("Failed to record usage for %s: %v", record.Code, err)
	}

	remaining := limit - (record.DailyUsage + 1)
	if remaining < 0 {
		remaining = 0
	}

	if hash != "" {
		s.cacheService.SaveAsync(hash, quizTitle(req), text)
	}

	return &dto.GenerateResponse{
		Text:      text,
		Remaining: remaining,
	}, nil
}

// buildParts 把请求内容转换为上游输入分片
func buildParts(contents []dto.Content) ([]genai.Part, error) {
	var parts []genai.Part
	for _, content := range contents {
		for _, p := range content.Parts {
			switch {
			case p.InlineData != nil:
				data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					return nil, ErrBadInline
				}
				parts = append(parts, genai.Blob{
					MIMEType: p.InlineData.MimeType,
					Data:     data,
				})
			case p.Text != "":
				parts = append(parts, genai.Text(p.Text))
			}
		}
	}
	if len(parts) == 0 {
		return nil, ErrNoContent
	}
	return parts, nil
}

// buildGenerationConfig 透传生成参数
func buildGenerationConfig(cfg *dto.GenerationConfig) genai.GenerationConfig {
	var genCfg genai.GenerationConfig
	if cfg == nil {
		return genCfg
	}
	genCfg.Temperature = cfg.Temperature
	genCfg.TopP = cfg.TopP
	genCfg.TopK = cfg.TopK
	genCfg.MaxOutputTokens = cfg.MaxOutputTokens
	genCfg.ResponseMIMEType = cfg.ResponseMIMEType
	return genCfg
}

func quizTitle(req *dto.GenerateRequest) string {
	if req.Title != "" {
		return req.Title
	}
	return "未命名测验"
}
