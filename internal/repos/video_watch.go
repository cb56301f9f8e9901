package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

type VideoWatchRepo interface {
	Create(ctx context.Context, tx *gorm.DB, watch *domain.VideoWatch) error
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	HasWatched(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) (bool, error)
}

type videoWatchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoWatchRepo(db *gorm.DB, log *logger.Logger) VideoWatchRepo {
	return &videoWatchRepo{db: db, log: log.With("repo", "VideoWatchRepo")}
}

func (r *videoWatchRepo) dbFrom(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *videoWatchRepo) Create(ctx context.Context, tx *gorm.DB, watch *domain.VideoWatch) error {
	if watch.ID == uuid.Nil {
		watch.ID = uuid.New()
	}
	return r.dbFrom(tx).WithContext(ctx).Create(watch).Error
}

func (r *videoWatchRepo) HasWatched(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) (bool, error) {
	var count int64
	err := r.dbFrom(tx).WithContext(ctx).
		Model(&domain.VideoWatch{}).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Count(&count).Error
	return count > 0, err
}

func (r *videoWatchRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.dbFrom(tx).WithContext(ctx).
		Model(&domain.VideoWatch{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
