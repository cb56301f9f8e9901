package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/errors"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/platform/apierr"
	"github.com/yungbote/levelpath-backend/internal/progression"
	"github.com/yungbote/levelpath-backend/internal/repos"
)

type UpdateProfileInput struct {
	Username       *string    `json:"username"`
	FullName       *string    `json:"full_name"`
	Email          *string    `json:"email"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	EducationLevel *string    `json:"education_level"`
	Gender         *string    `json:"gender"`
	ClassLevel     *string    `json:"class_level"`
}

// Dashboard aggregates everything the home screen renders in one call.
type Dashboard struct {
	User              *domain.User           `json:"user"`
	Status            ProgressionStatus      `json:"status"`
	Badges            []*domain.UserBadge    `json:"badges"`
	DailyMissions     []*domain.DailyMission `json:"daily_missions"`
	MissionsCompleted int64                  `json:"missions_completed"`
	ModulesCompleted  int64                  `json:"modules_completed"`
	QuizzesCorrect    int64                  `json:"quizzes_correct"`
	VideosWatched     int64                  `json:"videos_watched"`
}

type UserService interface {
	Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
	Badges(ctx context.Context, userID uuid.UUID) ([]*domain.UserBadge, error)
}

type userService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	badgeRepo   repos.UserBadgeRepo
	umRepo      repos.UserMissionRepo
	dmRepo      repos.DailyMissionRepo
	mpRepo      repos.ModuleProgressRepo
	attemptRepo repos.QuizAttemptRepo
	watchRepo   repos.VideoWatchRepo
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	badgeRepo repos.UserBadgeRepo,
	umRepo repos.UserMissionRepo,
	dmRepo repos.DailyMissionRepo,
	mpRepo repos.ModuleProgressRepo,
	attemptRepo repos.QuizAttemptRepo,
	watchRepo repos.VideoWatchRepo,
) UserService {
	return &userService{
		db:          db,
		log:         log.With("service", "UserService"),
		userRepo:    userRepo,
		badgeRepo:   badgeRepo,
		umRepo:      umRepo,
		dmRepo:      dmRepo,
		mpRepo:      mpRepo,
		attemptRepo: attemptRepo,
		watchRepo:   watchRepo,
	}
}

func (s *userService) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, errors.ErrNotFound)
	}
	return users[0], nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	fields := map[string]interface{}{}
	if input.Username != nil {
		fields["username"] = strings.TrimSpace(*input.Username)
	}
	if input.FullName != nil {
		fields["full_name"] = *input.FullName
	}
	if input.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.DateOfBirth != nil {
		fields["date_of_birth"] = *input.DateOfBirth
	}
	if input.EducationLevel != nil {
		fields["education_level"] = *input.EducationLevel
	}
	if input.Gender != nil {
		fields["gender"] = *input.Gender
	}
	if input.ClassLevel != nil {
		fields["class_level"] = *input.ClassLevel
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %s: %w", userID, errors.ErrNotFound)
		}

		username := user.Username
		if v, ok := fields["username"].(string); ok {
			username = v
		}
		email := user.Email
		if v, ok := fields["email"].(string); ok {
			email = v
		}
		if username != user.Username || email != user.Email {
			taken, err := s.userRepo.UsernameOrEmailTaken(ctx, tx, username, email, userID)
			if err != nil {
				return err
			}
			if taken {
				return apierr.Conflict("username_or_email_taken",
					fmt.Errorf("username or email already in use: %w", errors.ErrConflict))
			}
		}
		return s.userRepo.UpdateProfile(ctx, tx, userID, fields)
	})
	if err != nil {
		if repos.IsUniqueViolation(err) {
			return nil, apierr.Conflict("username_or_email_taken",
				fmt.Errorf("username or email already in use: %w", errors.ErrConflict))
		}
		return nil, err
	}
	return s.Profile(ctx, userID)
}

// Dashboard fans its reads out concurrently; none of them depend on another.
func (s *userService) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	dash := &Dashboard{}
	today := time.Now().UTC().Format(domain.ScopeDateLayout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		user, err := s.Profile(gctx, userID)
		if err != nil {
			return err
		}
		dash.User = user
		dash.Status = statusFrom(progression.State{XP: user.XP, Level: user.Level, XPThisMonth: user.XPThisMonth})
		return nil
	})
	g.Go(func() error {
		badges, err := s.badgeRepo.GetByUserID(gctx, nil, userID)
		dash.Badges = badges
		return err
	})
	g.Go(func() error {
		rows, err := s.dmRepo.GetByUserAndDate(gctx, nil, userID, today)
		dash.DailyMissions = rows
		return err
	})
	g.Go(func() error {
		oneOff, err := s.umRepo.CountCompleted(gctx, nil, userID)
		if err != nil {
			return err
		}
		daily, err := s.dmRepo.CountCompleted(gctx, nil, userID)
		if err != nil {
			return err
		}
		dash.MissionsCompleted = oneOff + daily
		return nil
	})
	g.Go(func() error {
		count, err := s.mpRepo.CountCompleted(gctx, nil, userID)
		dash.ModulesCompleted = count
		return err
	})
	g.Go(func() error {
		count, err := s.attemptRepo.CountDistinctCorrect(gctx, nil, userID)
		dash.QuizzesCorrect = count
		return err
	})
	g.Go(func() error {
		count, err := s.watchRepo.CountByUser(gctx, nil, userID)
		dash.VideosWatched = count
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dash, nil
}

func (s *userService) Badges(ctx context.Context, userID uuid.UUID) ([]*domain.UserBadge, error) {
	return s.badgeRepo.GetByUserID(ctx, nil, userID)
}
