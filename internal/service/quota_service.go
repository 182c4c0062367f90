package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/quiz_go_server/internal/model"
	"github.com/qs3c/quiz_go_server/internal/model/dto"
	"github.com/qs3c/quiz_go_server/internal/repository"
)

var (
	ErrInvalidSession = errors.New("会话无效")
)

// QuotaExceededError 配额超限，携带套餐和上限供前端展示
type QuotaExceededError struct {
	Plan  string
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("今日配额已用完（%s 套餐每日 %d 次）", e.Plan, e.Limit)
}

type QuotaService struct {
	codeRepo   *repository.CodeRepository
	configRepo *repository.ConfigRepository
}

func NewQuotaService(codeRepo *repository.CodeRepository, configRepo *repository.ConfigRepository) *QuotaService {
	return &QuotaService{
		codeRepo:   codeRepo,
		configRepo: configRepo,
	}
}

// Admit 配额准入检查，在每次消耗配额的操作之前调用
// 依次：查激活码 → 跨天重置 → 读当前配额配置 → 比较上限
// 准入成功不扣配额，由调用方在操作成功后调 UseQuota
func (s *QuotaService) Admit(code string) (*model.ActivationCode, int, error) {
	record, err := s.resolveWithRollover(code)
	if err != nil {
		return nil, 0, err
	}

	cfg, err := s.configRepo.GetOrCreate()
	if err != nil {
		return nil, 0, err
	}
	limit := cfg.LimitFor(record.PlanType)

	if record.DailyUsage >= limit {
		return nil, 0, &QuotaExceededError{Plan: record.PlanType, Limit: limit}
	}

	return record, limit, nil
}

// UseQuota 操作成功后扣配额
func (s *QuotaService) UseQuota(code string) error {
	return s.codeRepo.IncrementUsage(model.NormalizeCode(code), time.Now())
}

// GetQuotaInfo 查询当前配额状态（含跨天重置）
func (s *QuotaService) GetQuotaInfo(code string) (*dto.QuotaInfo, error) {
	record, err := s.resolveWithRollover(code)
	if err != nil {
		return nil, err
	}

	cfg, err := s.configRepo.GetOrCreate()
	if err != nil {
		return nil, err
	}
	limit := cfg.LimitFor(record.PlanType)

	remain := limit - record.DailyUsage
	if remain < 0 {
		remain = 0
	}

	return &dto.QuotaInfo{
		Plan:        record.PlanType,
		DailyLimit:  limit,
		DailyUsed:   record.DailyUsage,
		DailyRemain: remain,
	}, nil
}

// GetConfig 读取配额配置（懒创建缺省值）
func (s *QuotaService) GetConfig() (*model.QuotaConfig, error) {
	return s.configRepo.GetOrCreate()
}

// UpdateConfig 部分更新配额配置，未指定的套餐保持原值
func (s *QuotaService) UpdateConfig(limits *dto.PlanLimits) (*model.QuotaConfig, error) {
	if _, err := s.configRepo.GetOrCreate(); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if limits != nil {
		if limits.Free != nil {
			fields["free_limit"] = *limits.Free
		}
		if limits.Pro != nil {
			fields["pro_limit"] = *limits.Pro
		}
		if limits.Gold != nil {
			fields["gold_limit"] = *limits.Gold
		}
		if limits.Unlimited != nil {
			fields["unlimited_limit"] = *limits.Unlimited
		}
	}
	if len(fields) > 0 {
		if err := s.configRepo.UpdateFields(fields); err != nil {
			return nil, err
		}
	}

	return s.configRepo.GetOrCreate()
}

// resolveWithRollover 查找激活码并处理跨天重置
// 按本地日历日比较而非 24 小时窗口，重置立即落库
func (s *QuotaService) resolveWithRollover(code string) (*model.ActivationCode, error) {
	record, err := s.codeRepo.GetByCode(model.NormalizeCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	now := time.Now()
	if record.LastUsageDate != nil && calendarDayBefore(*record.LastUsageDate, now) {
		if err := s.codeRepo.ResetDailyUsage(record.Code, now); err != nil {
			return nil, err
		}
		record.DailyUsage = 0
		record.LastUsageDate = &now
	}

	return record, nil
}

// calendarDayBefore a 的日历日是否早于 b（本地时区零点为界）
func calendarDayBefore(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
