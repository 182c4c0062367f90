package service

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/qs3c/quiz_go_server/config"
	"github.com/qs3c/quiz_go_server/internal/model"
	"github.com/qs3c/quiz_go_server/internal/repository"
)

var (
	ErrWrongPassword = errors.New("密码错误")
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type AdminService struct {
	codeRepo *repository.CodeRepository
	cfg      *config.Config
}

func NewAdminService(codeRepo *repository.CodeRepository, cfg *config.Config) *AdminService {
	return &AdminService{
		codeRepo: codeRepo,
		cfg:      cfg,
	}
}

// Login 校验管理员口令
// 配置为 bcrypt 哈希时用 bcrypt 比较，否则退化为常量时间明文比较
func (s *AdminService) Login(password string) error {
	stored := s.cfg.Admin.PasswordHash
	if stored == "" {
		return ErrWrongPassword
	}

	if strings.HasPrefix(stored, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
			return ErrWrongPassword
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrWrongPassword
	}
	return nil
}

// GenerateCodes 批量生成随机激活码
// 随机空间足够大，碰撞概率可忽略，不做唯一性预检
func (s *AdminService) GenerateCodes(count int, planType string) ([]string, error) {
	records := make([]*model.ActivationCode, 0, count)
	codes := make([]string, 0, count)

	for i := 0; i < count; i++ {
		code, err := randomCode(16)
		if err != nil {
			return nil, err
		}
		records = append(records, &model.ActivationCode{
			Code:     code,
			PlanType: planType,
		})
		codes = append(codes, code)
	}

	if err := s.codeRepo.CreateBatch(records); err != nil {
		return nil, err
	}
	return codes, nil
}

// ListCodes 激活码列表
func (s *AdminService) ListCodes() ([]model.ActivationCode, error) {
	return s.codeRepo.List()
}

// DeleteCode 删除激活码（唯一的移除路径，无过期/吊销状态）
func (s *AdminService) DeleteCode(code string) error {
	return s.codeRepo.Delete(model.NormalizeCode(code))
}

// randomCode 生成定长随机码，字符集剔除易混淆字符
func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
