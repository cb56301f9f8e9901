package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

type UserMissionRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserMission, error)
	GetForUpdate(ctx context.Context, tx *gorm.DB, userID, missionID uuid.UUID) (*domain.UserMission, error)
	UpsertIncrement(ctx context.Context, tx *gorm.DB, userID, missionID uuid.UUID, inc int) error
	MarkCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error
	CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type userMissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserMissionRepo(db *gorm.DB, log *logger.Logger) UserMissionRepo {
	return &userMissionRepo{db: db, log: log.With("repo", "UserMissionRepo")}
}

func (r *userMissionRepo) dbFrom(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userMissionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserMission, error) {
	var rows []*domain.UserMission
	err := r.dbFrom(tx).WithContext(ctx).
		Preload("Mission").
		Where("user_id = ?", userID).
		Find(&rows).Error
	return rows, err
}

func (r *userMissionRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, userID, missionID uuid.UUID) (*domain.UserMission, error) {
	var row domain.UserMission
	err := forUpdate(r.dbFrom(tx).WithContext(ctx)).
		Where("user_id = ? AND mission_id = ?", userID, missionID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertIncrement creates the progress row or bumps current_progress in one
// statement. Completed rows are frozen: the WHERE on the conflict branch
// skips them so progress never moves after completion.
func (r *userMissionRepo) UpsertIncrement(ctx context.Context, tx *gorm.DB, userID, missionID uuid.UUID, inc int) error {
	row := domain.UserMission{
		ID:              uuid.New(),
		UserID:          userID,
		MissionID:       missionID,
		CurrentProgress: inc,
	}
	return r.dbFrom(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "mission_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"current_progress": gorm.Expr("current_progress + ?", inc),
				"updated_at":       time.Now().UTC(),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("user_missions.is_completed = ?", false),
			}},
		}).
		Create(&row).Error
}

func (r *userMissionRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	return r.dbFrom(tx).WithContext(ctx).
		Model(&domain.UserMission{}).
		Where("id = ? AND is_completed = ?", id, false).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": at,
		}).Error
}

func (r *userMissionRepo) CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.dbFrom(tx).WithContext(ctx).
		Model(&domain.UserMission{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error
	return count, err
}
