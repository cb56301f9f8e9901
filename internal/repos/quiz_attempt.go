package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

type QuizAttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *domain.QuizAttempt) error
	CountDistinctCorrect(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	HasCorrectAttempt(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) (bool, error)
}

type quizAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizAttemptRepo(db *gorm.DB, log *logger.Logger) QuizAttemptRepo {
	return &quizAttemptRepo{db: db, log: log.With("repo", "QuizAttemptRepo")}
}

func (r *quizAttemptRepo) dbFrom(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *quizAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *domain.QuizAttempt) error {
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	return r.dbFrom(tx).WithContext(ctx).Create(attempt).Error
}

func (r *quizAttemptRepo) CountDistinctCorrect(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.dbFrom(tx).WithContext(ctx).
		Model(&domain.QuizAttempt{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Distinct("quiz_id").
		Count(&count).Error
	return count, err
}

func (r *quizAttemptRepo) HasCorrectAttempt(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) (bool, error) {
	var count int64
	err := r.dbFrom(tx).WithContext(ctx).
		Model(&domain.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND is_correct = ?", userID, quizID, true).
		Count(&count).Error
	return count > 0, err
}
