package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/errors"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/progression"
	"github.com/yungbote/levelpath-backend/internal/realtime"
	"github.com/yungbote/levelpath-backend/internal/repos"
)

// VideoWatchResult describes the XP stipend and mission movement from one
// watch event.
type VideoWatchResult struct {
	Message         string            `json:"message"`
	XPEarned        int               `json:"xpEarned"`
	LeveledUp       bool              `json:"leveledUp"`
	User            ProgressionStatus `json:"user"`
	MissionOutcomes []*MissionOutcome `json:"missionOutcomes,omitempty"`
}

type ModuleService interface {
	List(ctx context.Context, classLevel string) ([]*domain.Module, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Module, error)
	// GetQuizzes returns a module's quizzes. The user must have watched the
	// module's video first.
	GetQuizzes(ctx context.Context, userID, moduleID uuid.UUID) ([]*domain.Quiz, error)
	LogVideoWatch(ctx context.Context, userID, moduleID uuid.UUID) (*VideoWatchResult, error)
}

type moduleService struct {
	db           *gorm.DB
	log          *logger.Logger
	ledger       *ledger
	notify       *notifier
	videoWatchXP int
	userRepo     repos.UserRepo
	moduleRepo   repos.ModuleRepo
	quizRepo     repos.QuizRepo
	watchRepo    repos.VideoWatchRepo
	mpRepo       repos.ModuleProgressRepo
}

func NewModuleService(
	db *gorm.DB,
	log *logger.Logger,
	ledg *ledger,
	notify *notifier,
	videoWatchXP int,
	userRepo repos.UserRepo,
	moduleRepo repos.ModuleRepo,
	quizRepo repos.QuizRepo,
	watchRepo repos.VideoWatchRepo,
	mpRepo repos.ModuleProgressRepo,
) ModuleService {
	return &moduleService{
		db:           db,
		log:          log.With("service", "ModuleService"),
		ledger:       ledg,
		notify:       notify,
		videoWatchXP: videoWatchXP,
		userRepo:     userRepo,
		moduleRepo:   moduleRepo,
		quizRepo:     quizRepo,
		watchRepo:    watchRepo,
		mpRepo:       mpRepo,
	}
}

func (s *moduleService) List(ctx context.Context, classLevel string) ([]*domain.Module, error) {
	return s.moduleRepo.List(ctx, nil, classLevel)
}

func (s *moduleService) Get(ctx context.Context, id uuid.UUID) (*domain.Module, error) {
	module, err := s.moduleRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, fmt.Errorf("module %s: %w", id, errors.ErrNotFound)
	}
	return module, nil
}

func (s *moduleService) GetQuizzes(ctx context.Context, userID, moduleID uuid.UUID) ([]*domain.Quiz, error) {
	module, err := s.moduleRepo.GetByID(ctx, nil, moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, fmt.Errorf("module %s: %w", moduleID, errors.ErrNotFound)
	}
	watched, err := s.watchRepo.HasWatched(ctx, nil, userID, moduleID)
	if err != nil {
		return nil, err
	}
	if !watched {
		return nil, fmt.Errorf("watch the module video before taking its quizzes: %w", errors.ErrForbidden)
	}
	return s.quizRepo.ListByModuleID(ctx, nil, moduleID)
}

// LogVideoWatch records a watch event, pays the fixed stipend and advances
// watch-type missions in one transaction.
func (s *moduleService) LogVideoWatch(ctx context.Context, userID, moduleID uuid.UUID) (*VideoWatchResult, error) {
	var result *VideoWatchResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		module, err := s.moduleRepo.GetByID(ctx, tx, moduleID)
		if err != nil {
			return err
		}
		if module == nil {
			return fmt.Errorf("module %s: %w", moduleID, errors.ErrNotFound)
		}

		user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %s: %w", userID, errors.ErrNotFound)
		}

		now := time.Now().UTC()
		if err := s.watchRepo.Create(ctx, tx, &domain.VideoWatch{
			UserID:   userID,
			ModuleID: moduleID,
		}); err != nil {
			return err
		}
		if err := s.mpRepo.UpsertCompleted(ctx, tx, userID, moduleID, now); err != nil {
			return err
		}

		st := progression.State{XP: user.XP, Level: user.Level, XPThisMonth: user.XPThisMonth}
		award := progression.Apply(st, s.videoWatchXP)
		st = award.State

		outcomes, err := s.ledger.applyTypeProgress(ctx, tx, &st, userID, domain.MissionTypeWatchVideo, now)
		if err != nil {
			return err
		}

		if st.XP != user.XP {
			if err := s.userRepo.UpdateProgression(ctx, tx, userID, st.XP, st.Level, st.XPThisMonth); err != nil {
				return err
			}
		}

		result = &VideoWatchResult{
			Message:         fmt.Sprintf("Video watch logged! You earned %d XP.", award.Delta),
			XPEarned:        award.Delta,
			LeveledUp:       st.Level > user.Level,
			User:            statusFrom(st),
			MissionOutcomes: outcomes,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.XPEarned > 0 {
		s.notify.emit(ctx, userID, realtime.SSEEventXPAwarded, map[string]any{
			"xp":     result.XPEarned,
			"source": "video_watch",
		})
	}
	if result.LeveledUp {
		s.notify.emit(ctx, userID, realtime.SSEEventLevelUp, map[string]any{
			"level": result.User.Level,
			"xp":    result.User.XP,
		})
	}
	s.notify.emitOutcomes(ctx, userID, result.MissionOutcomes)
	return result, nil
}
