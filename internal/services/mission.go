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
	"github.com/yungbote/levelpath-backend/internal/repos"
)

// UserMissionStatus overlays a user's one-off progress onto a mission
// definition. Missions the user never touched appear with zero progress.
type UserMissionStatus struct {
	Mission         *domain.Mission `json:"mission"`
	CurrentProgress int             `json:"currentProgress"`
	IsCompleted     bool            `json:"isCompleted"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
}

// MissionService is the mission-progress ledger. Every mutating call runs in
// one transaction that locks the user's row first, so XP, level and progress
// always move together.
type MissionService interface {
	RecordProgress(ctx context.Context, userID, missionID uuid.UUID, scope domain.MissionScope, amount int) (*MissionOutcome, error)
	CompleteIfEligible(ctx context.Context, userID, missionID uuid.UUID, scope domain.MissionScope) (*MissionOutcome, error)
	ListMissions(ctx context.Context) ([]*domain.Mission, error)
	ListUserMissions(ctx context.Context, userID uuid.UUID) ([]*UserMissionStatus, error)
	ListDailyMissions(ctx context.Context, userID uuid.UUID, day time.Time) ([]*domain.DailyMission, error)
}

type missionService struct {
	db       *gorm.DB
	log      *logger.Logger
	ledger   *ledger
	notify   *notifier
	userRepo repos.UserRepo
	mRepo    repos.MissionRepo
	umRepo   repos.UserMissionRepo
	dmRepo   repos.DailyMissionRepo
}

func NewMissionService(
	db *gorm.DB,
	log *logger.Logger,
	ledg *ledger,
	notify *notifier,
	userRepo repos.UserRepo,
	mRepo repos.MissionRepo,
	umRepo repos.UserMissionRepo,
	dmRepo repos.DailyMissionRepo,
) MissionService {
	return &missionService{
		db:       db,
		log:      log.With("service", "MissionService"),
		ledger:   ledg,
		notify:   notify,
		userRepo: userRepo,
		mRepo:    mRepo,
		umRepo:   umRepo,
		dmRepo:   dmRepo,
	}
}

func (s *missionService) loadMission(ctx context.Context, tx *gorm.DB, missionID uuid.UUID) (*domain.Mission, error) {
	missions, err := s.mRepo.GetByIDs(ctx, tx, []uuid.UUID{missionID})
	if err != nil {
		return nil, err
	}
	if len(missions) == 0 {
		return nil, fmt.Errorf("mission %s: %w", missionID, errors.ErrNotFound)
	}
	return missions[0], nil
}

func (s *missionService) RecordProgress(ctx context.Context, userID, missionID uuid.UUID, scope domain.MissionScope, amount int) (*MissionOutcome, error) {
	var out *MissionOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %s: %w", userID, errors.ErrNotFound)
		}
		mission, err := s.loadMission(ctx, tx, missionID)
		if err != nil {
			return err
		}

		st := progression.State{XP: user.XP, Level: user.Level, XPThisMonth: user.XPThisMonth}
		now := time.Now().UTC()
		out, err = s.ledger.recordScoped(ctx, tx, &st, userID, mission, scope, amount, now)
		if err != nil {
			return err
		}
		if st.XP != user.XP {
			return s.userRepo.UpdateProgression(ctx, tx, userID, st.XP, st.Level, st.XPThisMonth)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify.emitOutcomes(ctx, userID, []*MissionOutcome{out})
	return out, nil
}

func (s *missionService) CompleteIfEligible(ctx context.Context, userID, missionID uuid.UUID, scope domain.MissionScope) (*MissionOutcome, error) {
	var out *MissionOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %s: %w", userID, errors.ErrNotFound)
		}
		mission, err := s.loadMission(ctx, tx, missionID)
		if err != nil {
			return err
		}

		st := progression.State{XP: user.XP, Level: user.Level, XPThisMonth: user.XPThisMonth}
		now := time.Now().UTC()
		out, err = s.ledger.completeScoped(ctx, tx, &st, userID, mission, scope, now)
		if err != nil {
			return err
		}
		if st.XP != user.XP {
			return s.userRepo.UpdateProgression(ctx, tx, userID, st.XP, st.Level, st.XPThisMonth)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify.emitOutcomes(ctx, userID, []*MissionOutcome{out})
	return out, nil
}

func (s *missionService) ListMissions(ctx context.Context) ([]*domain.Mission, error) {
	return s.mRepo.List(ctx, nil)
}

func (s *missionService) ListUserMissions(ctx context.Context, userID uuid.UUID) ([]*UserMissionStatus, error) {
	missions, err := s.mRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	rows, err := s.umRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	byMission := make(map[uuid.UUID]*domain.UserMission, len(rows))
	for _, row := range rows {
		byMission[row.MissionID] = row
	}

	statuses := make([]*UserMissionStatus, 0, len(missions))
	for _, m := range missions {
		st := &UserMissionStatus{Mission: m}
		if row, ok := byMission[m.ID]; ok {
			st.CurrentProgress = clampProgress(row.CurrentProgress, m.RequiredCompletionCount)
			st.IsCompleted = row.IsCompleted
			st.CompletedAt = row.CompletedAt
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

func (s *missionService) ListDailyMissions(ctx context.Context, userID uuid.UUID, day time.Time) ([]*domain.DailyMission, error) {
	return s.dmRepo.GetByUserAndDate(ctx, nil, userID, day.UTC().Format(domain.ScopeDateLayout))
}
