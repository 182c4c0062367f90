package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/quiz_go_server/internal/model"
)

type CodeRepository struct {
	db *gorm.DB
}

func NewCodeRepository(db *gorm.DB) *CodeRepository {
	return &CodeRepository{db: db}
}

func (r *CodeRepository) Create(code *model.ActivationCode) error {
	return r.db.Create(code).Error
}

func (r *CodeRepository) CreateBatch(codes []*model.ActivationCode) error {
	return r.db.Create(codes).Error
}

func (r *CodeRepository) GetByCode(code string) (*model.ActivationCode, error) {
	var record model.ActivationCode
	err := r.db.Where("code = ?", code).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *CodeRepository) List() ([]model.ActivationCode, error) {
	var records []model.ActivationCode
	err := r.db.Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *CodeRepository) Delete(code string) error {
	return r.db.Where("code = ?", code).Delete(&model.ActivationCode{}).Error
}

func (r *CodeRepository) Update(record *model.ActivationCode) error {
	return r.db.Save(record).Error
}

func (r *CodeRepository) UpdateFields(code string, fields map[string]interface{}) error {
	return r.db.Model(&model.ActivationCode{}).Where("code = ?", code).Updates(fields).Error
}

// IncrementUsage 单文档自增，不做跨文档事务
func (r *CodeRepository) IncrementUsage(code string, now time.Time) error {
	return r.db.Model(&model.ActivationCode{}).Where("code = ?", code).Updates(map[string]interface{}{
		"daily_usage":     gorm.Expr("daily_usage + 1"),
		"last_usage_date": now,
	}).Error
}

// ResetDailyUsage 跨天重置，立即落库
func (r *CodeRepository) ResetDailyUsage(code string, now time.Time) error {
	return r.db.Model(&model.ActivationCode{}).Where("code = ?", code).Updates(map[string]interface{}{
		"daily_usage":     0,
		"last_usage_date": now,
	}).Error
}
