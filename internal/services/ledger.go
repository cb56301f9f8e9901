package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/errors"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/progression"
	"github.com/yungbote/levelpath-backend/internal/repos"
)

// ProgressionStatus is the user's counters after an award, as returned to
// clients.
type ProgressionStatus struct {
	XP             int `json:"xp"`
	Level          int `json:"level"`
	XPThisMonth    int `json:"xpThisMonth"`
	XPForNextLevel int `json:"xpForNextLevel"`
}

// MissionOutcome describes what one ledger operation did to one mission
// instance.
type MissionOutcome struct {
	MissionID               uuid.UUID         `json:"missionId"`
	Title                   string            `json:"title"`
	CurrentProgress         int               `json:"currentProgress"`
	RequiredCompletionCount int               `json:"requiredCompletionCount"`
	IsCompleted             bool              `json:"isCompleted"`
	AlreadyCompleted        bool              `json:"alreadyCompleted"`
	CompletedNow            bool              `json:"completedNow"`
	XPAwarded               int               `json:"xpAwarded"`
	BadgeAwarded            string            `json:"badgeAwarded,omitempty"`
	LeveledUp               bool              `json:"leveledUp"`
	Message                 string            `json:"message"`
	User                    ProgressionStatus `json:"user"`
}

func statusFrom(st progression.State) ProgressionStatus {
	return ProgressionStatus{
		XP:             st.XP,
		Level:          st.Level,
		XPThisMonth:    st.XPThisMonth,
		XPForNextLevel: progression.XPForNextLevel(st.XP),
	}
}

// clampProgress caps the displayed progress at the requirement. Stored
// progress stays raw.
func clampProgress(progress, required int) int {
	if required > 0 && progress > required {
		return required
	}
	return progress
}

func eligible(progress, required int) bool {
	return progress >= 1 && progress >= required
}

func completionMessage(title string, xp int, leveledUp bool, level int) string {
	if leveledUp {
		return fmt.Sprintf("Mission %q completed! You earned %d XP and leveled up to Level %d!", title, xp, level)
	}
	return fmt.Sprintf("Mission %q completed! You earned %d XP.", title, xp)
}

// ledger holds the mission-progress bookkeeping every award path runs
// through. All methods expect to be called inside a transaction that has
// already locked the user's row, and mutate the in-memory state; the caller
// persists it once with UpdateProgression before commit.
type ledger struct {
	log         *logger.Logger
	userRepo    repos.UserRepo
	missionRepo repos.MissionRepo
	umRepo      repos.UserMissionRepo
	dmRepo      repos.DailyMissionRepo
	badgeRepo   repos.UserBadgeRepo
}

func newLedger(
	log *logger.Logger,
	userRepo repos.UserRepo,
	missionRepo repos.MissionRepo,
	umRepo repos.UserMissionRepo,
	dmRepo repos.DailyMissionRepo,
	badgeRepo repos.UserBadgeRepo,
) *ledger {
	return &ledger{
		log:         log,
		userRepo:    userRepo,
		missionRepo: missionRepo,
		umRepo:      umRepo,
		dmRepo:      dmRepo,
		badgeRepo:   badgeRepo,
	}
}

// payout finishes a mission instance: flips the row, applies XP and grants
// the badge. A badge failure aborts the whole transaction so the ledger
// never pays without recording the badge.
func (l *ledger) payout(
	ctx context.Context,
	tx *gorm.DB,
	st *progression.State,
	userID uuid.UUID,
	mission *domain.Mission,
	progress int,
	markCompleted func() error,
	now time.Time,
) (*MissionOutcome, error) {
	if err := markCompleted(); err != nil {
		return nil, err
	}
	award := progression.Apply(*st, mission.XPReward)
	*st = award.State

	if mission.BadgeReward != "" {
		if err := l.badgeRepo.Grant(ctx, tx, userID, mission.BadgeReward, now); err != nil {
			return nil, fmt.Errorf("grant badge %q: %w", mission.BadgeReward, err)
		}
	}

	return &MissionOutcome{
		MissionID:               mission.ID,
		Title:                   mission.Title,
		CurrentProgress:         clampProgress(progress, mission.RequiredCompletionCount),
		RequiredCompletionCount: mission.RequiredCompletionCount,
		IsCompleted:             true,
		CompletedNow:            true,
		XPAwarded:               award.Delta,
		BadgeAwarded:            mission.BadgeReward,
		LeveledUp:               award.LeveledUp,
		Message:                 completionMessage(mission.Title, award.Delta, award.LeveledUp, award.State.Level),
		User:                    statusFrom(award.State),
	}, nil
}

func (l *ledger) progressOutcome(mission *domain.Mission, progress int, st progression.State) *MissionOutcome {
	return &MissionOutcome{
		MissionID:               mission.ID,
		Title:                   mission.Title,
		CurrentProgress:         clampProgress(progress, mission.RequiredCompletionCount),
		RequiredCompletionCount: mission.RequiredCompletionCount,
		Message:                 "Mission progress updated.",
		User:                    statusFrom(st),
	}
}

func (l *ledger) alreadyCompletedOutcome(mission *domain.Mission, progress int, st progression.State) *MissionOutcome {
	return &MissionOutcome{
		MissionID:               mission.ID,
		Title:                   mission.Title,
		CurrentProgress:         clampProgress(progress, mission.RequiredCompletionCount),
		RequiredCompletionCount: mission.RequiredCompletionCount,
		IsCompleted:             true,
		AlreadyCompleted:        true,
		Message:                 fmt.Sprintf("Mission %q is already completed.", mission.Title),
		User:                    statusFrom(st),
	}
}

// recordScoped increments one mission instance and completes it if the
// requirement is now met.
func (l *ledger) recordScoped(
	ctx context.Context,
	tx *gorm.DB,
	st *progression.State,
	userID uuid.UUID,
	mission *domain.Mission,
	scope domain.MissionScope,
	amount int,
	now time.Time,
) (*MissionOutcome, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("progress amount must be positive: %w", errors.ErrInvalidArgument)
	}

	if scope.IsDaily() {
		if err := l.dmRepo.UpsertIncrement(ctx, tx, userID, mission.ID, scope.Date, amount); err != nil {
			return nil, err
		}
		row, err := l.dmRepo.GetForUpdate(ctx, tx, userID, mission.ID, scope.Date)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, fmt.Errorf("daily mission row missing after upsert")
		}
		if row.IsCompleted {
			return l.alreadyCompletedOutcome(mission, row.CurrentProgress, *st), nil
		}
		if eligible(row.CurrentProgress, mission.RequiredCompletionCount) {
			return l.payout(ctx, tx, st, userID, mission, row.CurrentProgress, func() error {
				return l.dmRepo.MarkCompleted(ctx, tx, row.ID, now)
			}, now)
		}
		return l.progressOutcome(mission, row.CurrentProgress, *st), nil
	}

	if err := l.umRepo.UpsertIncrement(ctx, tx, userID, mission.ID, amount); err != nil {
		return nil, err
	}
	row, err := l.umRepo.GetForUpdate(ctx, tx, userID, mission.ID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("user mission row missing after upsert")
	}
	if row.IsCompleted {
		return l.alreadyCompletedOutcome(mission, row.CurrentProgress, *st), nil
	}
	if eligible(row.CurrentProgress, mission.RequiredCompletionCount) {
		return l.payout(ctx, tx, st, userID, mission, row.CurrentProgress, func() error {
			return l.umRepo.MarkCompleted(ctx, tx, row.ID, now)
		}, now)
	}
	return l.progressOutcome(mission, row.CurrentProgress, *st), nil
}

// completeScoped finishes a mission whose progress is already sufficient.
// It never creates rows: absent progress means the requirement is not met.
func (l *ledger) completeScoped(
	ctx context.Context,
	tx *gorm.DB,
	st *progression.State,
	userID uuid.UUID,
	mission *domain.Mission,
	scope domain.MissionScope,
	now time.Time,
) (*MissionOutcome, error) {
	if scope.IsDaily() {
		row, err := l.dmRepo.GetForUpdate(ctx, tx, userID, mission.ID, scope.Date)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, errors.ErrRequirementsNotMet
		}
		if row.IsCompleted {
			return l.alreadyCompletedOutcome(mission, row.CurrentProgress, *st), nil
		}
		if !eligible(row.CurrentProgress, mission.RequiredCompletionCount) {
			return nil, errors.ErrRequirementsNotMet
		}
		return l.payout(ctx, tx, st, userID, mission, row.CurrentProgress, func() error {
			return l.dmRepo.MarkCompleted(ctx, tx, row.ID, now)
		}, now)
	}

	row, err := l.umRepo.GetForUpdate(ctx, tx, userID, mission.ID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrRequirementsNotMet
	}
	if row.IsCompleted {
		return l.alreadyCompletedOutcome(mission, row.CurrentProgress, *st), nil
	}
	if !eligible(row.CurrentProgress, mission.RequiredCompletionCount) {
		return nil, errors.ErrRequirementsNotMet
	}
	return l.payout(ctx, tx, st, userID, mission, row.CurrentProgress, func() error {
		return l.umRepo.MarkCompleted(ctx, tx, row.ID, now)
	}, now)
}

// applyTypeProgress fans a typed event (a correct quiz, a watched video)
// out to every mission of that type. One-off rows are created on first
// progress; daily rows only move when today's assignment already exists.
// Missions are walked in ID order so concurrent fan-outs lock rows in the
// same sequence.
func (l *ledger) applyTypeProgress(
	ctx context.Context,
	tx *gorm.DB,
	st *progression.State,
	userID uuid.UUID,
	mType domain.MissionType,
	now time.Time,
) ([]*MissionOutcome, error) {
	missions, err := l.missionRepo.ListByTypes(ctx, tx, []domain.MissionType{mType})
	if err != nil {
		return nil, err
	}
	sort.Slice(missions, func(i, j int) bool {
		return missions[i].ID.String() < missions[j].ID.String()
	})

	var outcomes []*MissionOutcome
	scope := domain.OneOffScope()
	for _, mission := range missions {
		out, err := l.recordScoped(ctx, tx, st, userID, mission, scope, 1, now)
		if err != nil {
			return nil, err
		}
		if out.CompletedNow {
			outcomes = append(outcomes, out)
		}
	}

	today := now.UTC().Format(domain.ScopeDateLayout)
	missionIDs := make([]uuid.UUID, 0, len(missions))
	byID := make(map[uuid.UUID]*domain.Mission, len(missions))
	for _, m := range missions {
		missionIDs = append(missionIDs, m.ID)
		byID[m.ID] = m
	}
	if err := l.dmRepo.IncrementAssigned(ctx, tx, userID, missionIDs, today, 1); err != nil {
		return nil, err
	}
	rows, err := l.dmRepo.GetByUserAndDate(ctx, tx, userID, today)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].MissionID.String() < rows[j].MissionID.String()
	})
	for _, row := range rows {
		mission, ok := byID[row.MissionID]
		if !ok || row.IsCompleted {
			continue
		}
		if eligible(row.CurrentProgress, mission.RequiredCompletionCount) {
			out, err := l.payout(ctx, tx, st, userID, mission, row.CurrentProgress, func() error {
				return l.dmRepo.MarkCompleted(ctx, tx, row.ID, now)
			}, now)
			if err != nil {
				return nil, err
			}
			outcomes = append(outcomes, out)
		}
	}
	return outcomes, nil
}
