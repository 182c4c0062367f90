package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs3c/quiz_go_server/internal/model"
)

type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) GetByHash(hash string) (*model.CachedQuiz, error) {
	var quiz model.CachedQuiz
	err := r.db.Where("hash = ?", hash).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Upsert 同指纹后写覆盖（last-write-wins）
func (r *QuizRepository) Upsert(quiz *model.CachedQuiz) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "payload", "question_count", "updated_at"}),
	}).Create(quiz).Error
}

func (r *QuizRepository) List() ([]model.CachedQuiz, error) {
	var quizzes []model.CachedQuiz
	err := r.db.Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Delete(hash string) error {
	return r.db.Where("hash = ?", hash).Delete(&model.CachedQuiz{}).Error
}
