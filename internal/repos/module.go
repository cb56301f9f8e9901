package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

type ModuleRepo interface {
	List(ctx context.Context, tx *gorm.DB, classLevel string) ([]*domain.Module, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Module, error)
}

type moduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, log *logger.Logger) ModuleRepo {
	return &moduleRepo{db: db, log: log.With("repo", "ModuleRepo")}
}

func (r *moduleRepo) dbFrom(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *moduleRepo) List(ctx context.Context, tx *gorm.DB, classLevel string) ([]*domain.Module, error) {
	var modules []*domain.Module
	q := r.dbFrom(tx).WithContext(ctx).Order("created_at ASC")
	if classLevel != "" {
		q = q.Where("class_level = ?", classLevel)
	}
	err := q.Find(&modules).Error
	return modules, err
}

func (r *moduleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Module, error) {
	var module domain.Module
	err := r.dbFrom(tx).WithContext(ctx).
		Where("id = ?", id).
		First(&module).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &module, nil
}
