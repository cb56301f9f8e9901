package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

type MissionRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Mission, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Mission, error)
	ListByTypes(ctx context.Context, tx *gorm.DB, types []domain.MissionType) ([]*domain.Mission, error)
}

type missionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMissionRepo(db *gorm.DB, log *logger.Logger) MissionRepo {
	return &missionRepo{db: db, log: log.With("repo", "MissionRepo")}
}

func (r *missionRepo) dbFrom(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *missionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Mission, error) {
	var missions []*domain.Mission
	if len(ids) == 0 {
		return missions, nil
	}
	err := r.dbFrom(tx).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&missions).Error
	return missions, err
}

func (r *missionRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Mission, error) {
	var missions []*domain.Mission
	err := r.dbFrom(tx).WithContext(ctx).
		Order("created_at ASC").
		Find(&missions).Error
	return missions, err
}

func (r *missionRepo) ListByTypes(ctx context.Context, tx *gorm.DB, types []domain.MissionType) ([]*domain.Mission, error) {
	var missions []*domain.Mission
	if len(types) == 0 {
		return missions, nil
	}
	err := r.dbFrom(tx).WithContext(ctx).
		Where("type IN ?", types).
		Find(&missions).Error
	return missions, err
}
