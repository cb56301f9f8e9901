package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

type ModuleProgressRepo interface {
	UpsertCompleted(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID, at time.Time) error
	GetByUserAndModuleIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleIDs []uuid.UUID) ([]*domain.ModuleProgress, error)
	CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type moduleProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleProgressRepo(db *gorm.DB, log *logger.Logger) ModuleProgressRepo {
	return &moduleProgressRepo{db: db, log: log.With("repo", "ModuleProgressRepo")}
}

func (r *moduleProgressRepo) dbFrom(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// UpsertCompleted marks a module done for the user. Completion is sticky;
// completed_at keeps its first value on repeats.
func (r *moduleProgressRepo) UpsertCompleted(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID, at time.Time) error {
	row := domain.ModuleProgress{
		ID:          uuid.New(),
		UserID:      userID,
		ModuleID:    moduleID,
		IsCompleted: true,
		CompletedAt: &at,
	}
	return r.dbFrom(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

func (r *moduleProgressRepo) GetByUserAndModuleIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, moduleIDs []uuid.UUID) ([]*domain.ModuleProgress, error) {
	var rows []*domain.ModuleProgress
	if len(moduleIDs) == 0 {
		return rows, nil
	}
	err := r.dbFrom(tx).WithContext(ctx).
		Where("user_id = ? AND module_id IN ?", userID, moduleIDs).
		Find(&rows).Error
	return rows, err
}

func (r *moduleProgressRepo) CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.dbFrom(tx).WithContext(ctx).
		Model(&domain.ModuleProgress{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error
	return count, err
}
