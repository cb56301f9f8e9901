package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *domain.User) error
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.User, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*domain.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.User, error)
	GetForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.User, error)
	UsernameOrEmailTaken(ctx context.Context, tx *gorm.DB, username, email string, excludeID uuid.UUID) (bool, error)
	UpdateProfile(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	UpdateProgression(ctx context.Context, tx *gorm.DB, id uuid.UUID, xp, level, xpThisMonth int) error
	TopByMonthlyXP(ctx context.Context, tx *gorm.DB, limit int) ([]*domain.User, error)
	ResetMonthlyXP(ctx context.Context, tx *gorm.DB) (int64, error)
	ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return &userRepo{db: db, log: log.With("repo", "UserRepo")}
}

func (r *userRepo) dbFrom(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Level == 0 {
		user.Level = 1
	}
	return r.dbFrom(tx).WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.User, error) {
	var users []*domain.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.dbFrom(tx).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users).Error
	return users, err
}

func (r *userRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*domain.User, error) {
	var users []*domain.User
	if len(emails) == 0 {
		return users, nil
	}
	err := r.dbFrom(tx).WithContext(ctx).
		Where("email IN ?", emails).
		Find(&users).Error
	return users, err
}

func (r *userRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.User, error) {
	var user domain.User
	err := r.dbFrom(tx).WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetForUpdate locks the user's row for the rest of the transaction. Every
// XP-mutating path locks the user first so concurrent awards serialize.
func (r *userRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := forUpdate(r.dbFrom(tx).WithContext(ctx)).
		Where("id = ?", id).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UsernameOrEmailTaken(ctx context.Context, tx *gorm.DB, username, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.dbFrom(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("(username = ? OR email = ?)", username, email)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.dbFrom(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *userRepo) UpdateProgression(ctx context.Context, tx *gorm.DB, id uuid.UUID, xp, level, xpThisMonth int) error {
	return r.dbFrom(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"xp":            xp,
			"level":         level,
			"xp_this_month": xpThisMonth,
		}).Error
}

func (r *userRepo) TopByMonthlyXP(ctx context.Context, tx *gorm.DB, limit int) ([]*domain.User, error) {
	var users []*domain.User
	err := r.dbFrom(tx).WithContext(ctx).
		Order("xp_this_month DESC").
		Order("level DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepo) ResetMonthlyXP(ctx context.Context, tx *gorm.DB) (int64, error) {
	res := r.dbFrom(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("xp_this_month <> 0").
		Update("xp_this_month", 0)
	return res.RowsAffected, res.Error
}

func (r *userRepo) ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.dbFrom(tx).WithContext(ctx).
		Model(&domain.User{}).
		Pluck("id", &ids).Error
	return ids, err
}
