package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/repos"
)

// LeaderboardEntry is one public row. Only display fields leave the service;
// emails and lifetime XP stay internal.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Level       int    `json:"level"`
	XPThisMonth int    `json:"xp_this_month"`
}

type LeaderboardService interface {
	Top(ctx context.Context) ([]*LeaderboardEntry, error)
}

type leaderboardService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	limit    int
}

func NewLeaderboardService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, limit int) LeaderboardService {
	return &leaderboardService{
		db:       db,
		log:      log.With("service", "LeaderboardService"),
		userRepo: userRepo,
		limit:    limit,
	}
}

func (s *leaderboardService) Top(ctx context.Context) ([]*LeaderboardEntry, error) {
	users, err := s.userRepo.TopByMonthlyXP(ctx, nil, s.limit)
	if err != nil {
		return nil, err
	}
	entries := make([]*LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, &LeaderboardEntry{
			Rank:        i + 1,
			Username:    u.Username,
			FullName:    u.FullName,
			Level:       u.Level,
			XPThisMonth: u.XPThisMonth,
		})
	}
	return entries, nil
}
