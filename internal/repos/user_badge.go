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

type UserBadgeRepo interface {
	Grant(ctx context.Context, tx *gorm.DB, userID uuid.UUID, badgeName string, at time.Time) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserBadge, error)
}

type userBadgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserBadgeRepo(db *gorm.DB, log *logger.Logger) UserBadgeRepo {
	return &userBadgeRepo{db: db, log: log.With("repo", "UserBadgeRepo")}
}

func (r *userBadgeRepo) dbFrom(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Grant inserts the badge if the user doesn't hold it yet. A held badge keeps
// its original acquired_at.
func (r *userBadgeRepo) Grant(ctx context.Context, tx *gorm.DB, userID uuid.UUID, badgeName string, at time.Time) error {
	row := domain.UserBadge{
		ID:         uuid.New(),
		UserID:     userID,
		BadgeName:  badgeName,
		AcquiredAt: at,
	}
	return r.dbFrom(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_name"}},
			DoNothing: true,
		}).
		Create(&row).Error
}

func (r *userBadgeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.UserBadge, error) {
	var rows []*domain.UserBadge
	err := r.dbFrom(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("acquired_at ASC").
		Find(&rows).Error
	return rows, err
}
