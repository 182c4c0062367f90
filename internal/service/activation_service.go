package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/quiz_go_server/internal/model"
	"github.com/qs3c/quiz_go_server/internal/repository"
)

var (
	ErrInvalidCode    = errors.New("激活码无效")
	ErrDeviceConflict = errors.New("激活码已绑定其他设备")
)

type ActivationService struct {
	codeRepo *repository.CodeRepository
}

func NewActivationService(codeRepo *repository.CodeRepository) *ActivationService {
	return &ActivationService{codeRepo: codeRepo}
}

// Activate 激活：首次激活绑定设备指纹，同设备重复激活为空操作，
// 不同设备激活被拒绝（单设备绑定）
func (s *ActivationService) Activate(code, deviceID string) (*model.ActivationCode, error) {
	record, err := s.codeRepo.GetByCode(model.NormalizeCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if record.BoundDevice != nil && deviceID != "" && *record.BoundDevice != deviceID {
		return nil, ErrDeviceConflict
	}

	now := time.Now()
	fields := map[string]interface{}{
		"is_used":         true,
		"last_usage_date": now,
	}
	if record.BoundDevice == nil && deviceID != "" {
		fields["bound_device"] = deviceID
		record.BoundDevice = &deviceID
	}

	if err := s.codeRepo.UpdateFields(record.Code, fields); err != nil {
		return nil, err
	}

	record.IsUsed = true
	record.LastUsageDate = &now
	return record, nil
}
