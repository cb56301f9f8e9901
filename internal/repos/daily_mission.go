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

type DailyMissionRepo interface {
	GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) ([]*domain.DailyMission, error)
	GetForUpdate(ctx context.Context, tx *gorm.DB, userID, missionID uuid.UUID, date string) (*domain.DailyMission, error)
	UpsertIncrement(ctx context.Context, tx *gorm.DB, userID, missionID uuid.UUID, date string, inc int) error
	IncrementAssigned(ctx context.Context, tx *gorm.DB, userID uuid.UUID, missionIDs []uuid.UUID, date string, inc int) error
	MarkCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error
	AssignBatch(ctx context.Context, tx *gorm.DB, rows []*domain.DailyMission) error
	CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type dailyMissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyMissionRepo(db *gorm.DB, log *logger.Logger) DailyMissionRepo {
	return &dailyMissionRepo{db: db, log: log.With("repo", "DailyMissionRepo")}
}

func (r *dailyMissionRepo) dbFrom(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *dailyMissionRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) ([]*domain.DailyMission, error) {
	var rows []*domain.DailyMission
	err := r.dbFrom(tx).WithContext(ctx).
		Preload("Mission").
		Where("user_id = ? AND assigned_date = ?", userID, date).
		Find(&rows).Error
	return rows, err
}

func (r *dailyMissionRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, userID, missionID uuid.UUID, date string) (*domain.DailyMission, error) {
	var row domain.DailyMission
	err := forUpdate(r.dbFrom(tx).WithContext(ctx)).
		Where("user_id = ? AND mission_id = ? AND assigned_date = ?", userID, missionID, date).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *dailyMissionRepo) UpsertIncrement(ctx context.Context, tx *gorm.DB, userID, missionID uuid.UUID, date string, inc int) error {
	row := domain.DailyMission{
		ID:              uuid.New(),
		UserID:          userID,
		MissionID:       missionID,
		AssignedDate:    date,
		CurrentProgress: inc,
	}
	return r.dbFrom(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "mission_id"}, {Name: "assigned_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"current_progress": gorm.Expr("current_progress + ?", inc),
				"updated_at":       time.Now().UTC(),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("daily_missions.is_completed = ?", false),
			}},
		}).
		Create(&row).Error
}

// IncrementAssigned bumps progress only on rows already assigned for the day.
// Type fan-out uses this so quiz and video events never invent assignments.
func (r *dailyMissionRepo) IncrementAssigned(ctx context.Context, tx *gorm.DB, userID uuid.UUID, missionIDs []uuid.UUID, date string, inc int) error {
	if len(missionIDs) == 0 {
		return nil
	}
	return r.dbFrom(tx).WithContext(ctx).
		Model(&domain.DailyMission{}).
		Where("user_id = ? AND mission_id IN ? AND assigned_date = ? AND is_completed = ?",
			userID, missionIDs, date, false).
		Update("current_progress", gorm.Expr("current_progress + ?", inc)).Error
}

func (r *dailyMissionRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	return r.dbFrom(tx).WithContext(ctx).
		Model(&domain.DailyMission{}).
		Where("id = ? AND is_completed = ?", id, false).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": at,
		}).Error
}

// AssignBatch inserts the day's assignments, skipping pairs that already
// exist so the job can rerun safely.
func (r *dailyMissionRepo) AssignBatch(ctx context.Context, tx *gorm.DB, rows []*domain.DailyMission) error {
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	return r.dbFrom(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "mission_id"}, {Name: "assigned_date"}},
			DoNothing: true,
		}).
		CreateInBatches(rows, 200).Error
}

func (r *dailyMissionRepo) CountCompleted(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.dbFrom(tx).WithContext(ctx).
		Model(&domain.DailyMission{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error
	return count, err
}
