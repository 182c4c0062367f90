package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/qs3c/quiz_go_server/internal/model"
	"github.com/qs3c/quiz_go_server/internal/model/dto"
	"github.com/qs3c/quiz_go_server/internal/repository"
)

const (
	cacheLookupTimeout = 1500 * time.Millisecond
	cacheSaveTimeout   = 2 * time.Second

	redisQuizPrefix = "quiz:cache:"
	redisQuizTTL    = 6 * time.Hour
)

// CacheService 内容寻址的生成结果缓存
// MySQL 为持久层，Redis 为读穿透快路径；缓存只是优化，
// 任何存储异常都不允许影响主生成链路
type CacheService struct {
	quizRepo *repository.QuizRepository
	rdb      *redis.Client
}

func NewCacheService(quizRepo *repository.QuizRepository, rdb *redis.Client) *CacheService {
	return &CacheService{
		quizRepo: quizRepo,
		rdb:      rdb,
	}
}

// Lookup 按指纹查缓存
// 返回的 error 仅供需要区分存储故障的调用方使用（如 /api/quiz/check）；
// 生成链路应忽略 error，把故障当作未命中
func (s *CacheService) Lookup(ctx context.Context, hash string) (*model.CachedQuiz, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheLookupTimeout)
	defer cancel()

	// Redis 快路径
	if s.rdb != nil {
		if data, err := s.rdb.Get(ctx, redisQuizPrefix+hash).Bytes(); err == nil {
			var quiz model.CachedQuiz
			if json.Unmarshal(data, &quiz) == nil {
				return &quiz, true, nil
			}
		}
	}

	quiz, err := s.quizRepo.GetByHash(hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	s.populateRedis(ctx, quiz)
	return quiz, true, nil
}

// Save 按指纹保存，后写覆盖
func (s *CacheService) Save(hash, title, payload string) error {
	quiz := &model.CachedQuiz{
		Hash:          hash,
		Title:         title,
		Payload:       payload,
		QuestionCount: countQuestions(payload),
	}
	if err := s.quizRepo.Upsert(quiz); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheSaveTimeout)
	defer cancel()
	s.populateRedis(ctx, quiz)

	return nil
}

// SaveAsync 生成成功后的异步缓存写入
// 不被主请求等待，失败只记日志不传播
func (s *CacheService) SaveAsync(hash, title, payload string) {
	go func() {
		if err := s.Save(hash, title, payload); err != nil {
			log.Printf("Cache save failed for %s: %v", hash, err)
		}
	}()
}

// List 管理端缓存列表
func (s *CacheService) List() ([]dto.QuizSummary, error) {
	quizzes, err := s.quizRepo.List()
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, dto.QuizSummary{
			ID:            q.Hash,
			Title:         q.Title,
			Date:          q.CreatedAt.Format("2006-01-02 15:04"),
			QuestionCount: q.QuestionCount,
		})
	}
	return summaries, nil
}

// Delete 管理端删除缓存条目（数据库与 Redis 一并清掉）
func (s *CacheService) Delete(hash string) error {
	if err := s.quizRepo.Delete(hash); err != nil {
		return err
	}

	if s.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cacheSaveTimeout)
		defer cancel()
		if err := s.rdb.Del(ctx, redisQuizPrefix+hash).Err(); err != nil {
			log.Printf("Redis delete failed for %s: %v", hash, err)
		}
	}

	return nil
}

func (s *CacheService) populateRedis(ctx context.Context, quiz *model.CachedQuiz) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, redisQuizPrefix+quiz.Hash, data, redisQuizTTL).Err(); err != nil {
		log.Printf("Redis set failed for %s: %v", quiz.Hash, err)
	}
}

// countQuestions 从结果 JSON 中数出题目数，解析失败按 0 处理
func countQuestions(payload string) int {
	var v struct {
		Questions []json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return 0
	}
	return len(v.Questions)
}
