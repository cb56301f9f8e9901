package services

import (
	"context"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/repos"
)

// DailyService owns the scheduled maintenance: assigning each user their
// daily missions and zeroing the monthly XP column.
type DailyService interface {
	// AssignDailyMissions gives every user up to missionCount randomly
	// chosen watch/quiz missions for the given day. Reruns are safe; pairs
	// already assigned are skipped.
	AssignDailyMissions(ctx context.Context, day time.Time) (int, error)
	// ResetMonthlyXP zeroes xp_this_month for all users. Lifetime XP and
	// levels are untouched.
	ResetMonthlyXP(ctx context.Context) (int64, error)
}

type dailyService struct {
	db           *gorm.DB
	log          *logger.Logger
	missionCount int
	userRepo     repos.UserRepo
	missionRepo  repos.MissionRepo
	dmRepo       repos.DailyMissionRepo
}

func NewDailyService(
	db *gorm.DB,
	log *logger.Logger,
	missionCount int,
	userRepo repos.UserRepo,
	missionRepo repos.MissionRepo,
	dmRepo repos.DailyMissionRepo,
) DailyService {
	return &dailyService{
		db:           db,
		log:          log.With("service", "DailyService"),
		missionCount: missionCount,
		userRepo:     userRepo,
		missionRepo:  missionRepo,
		dmRepo:       dmRepo,
	}
}

func (s *dailyService) AssignDailyMissions(ctx context.Context, day time.Time) (int, error) {
	date := day.UTC().Format(domain.ScopeDateLayout)

	pool, err := s.missionRepo.ListByTypes(ctx, nil, []domain.MissionType{
		domain.MissionTypeWatchVideo,
		domain.MissionTypeCompleteQuiz,
	})
	if err != nil {
		return 0, err
	}
	if len(pool) == 0 {
		s.log.Warn("no assignable missions; skipping daily assignment", "date", date)
		return 0, nil
	}

	userIDs, err := s.userRepo.ListIDs(ctx, nil)
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, userID := range userIDs {
		picks := pickMissions(pool, s.missionCount)
		rows := make([]*domain.DailyMission, 0, len(picks))
		for _, m := range picks {
			rows = append(rows, &domain.DailyMission{
				UserID:       userID,
				MissionID:    m.ID,
				AssignedDate: date,
			})
		}
		if err := s.dmRepo.AssignBatch(ctx, nil, rows); err != nil {
			return assigned, err
		}
		assigned += len(rows)
	}

	s.log.Info("daily missions assigned", "date", date, "users", len(userIDs), "rows", assigned)
	return assigned, nil
}

// pickMissions samples up to n distinct missions.
func pickMissions(pool []*domain.Mission, n int) []*domain.Mission {
	if n >= len(pool) {
		return pool
	}
	idx := rand.Perm(len(pool))[:n]
	picks := make([]*domain.Mission, 0, n)
	for _, i := range idx {
		picks = append(picks, pool[i])
	}
	return picks
}

func (s *dailyService) ResetMonthlyXP(ctx context.Context) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.userRepo.ResetMonthlyXP(ctx, tx)
		affected = n
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("monthly xp reset", "users", affected)
	return affected, nil
}
