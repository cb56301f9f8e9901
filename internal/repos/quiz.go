package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

type QuizRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Quiz, error)
	ListByModuleID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) ([]*domain.Quiz, error)
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, log *logger.Logger) QuizRepo {
	return &quizRepo{db: db, log: log.With("repo", "QuizRepo")}
}

func (r *quizRepo) dbFrom(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *quizRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Quiz, error) {
	var quiz domain.Quiz
	err := r.dbFrom(tx).WithContext(ctx).
		Where("id = ?", id).
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) ListByModuleID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) ([]*domain.Quiz, error) {
	var quizzes []*domain.Quiz
	err := r.dbFrom(tx).WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("created_at ASC").
		Find(&quizzes).Error
	return quizzes, err
}
