package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/realtime"
	"github.com/yungbote/levelpath-backend/internal/realtime/bus"
	"github.com/yungbote/levelpath-backend/internal/repos"
)

// Set bundles the constructed services for wiring.
type Set struct {
	Auth        AuthService
	User        UserService
	Mission     MissionService
	Quiz        QuizService
	Module      ModuleService
	Leaderboard LeaderboardService
	Daily       DailyService
}

// Options carries the tunables the services need.
type Options struct {
	JWTSecretKey      string
	AccessTokenTTL    time.Duration
	VideoWatchXP      int
	DailyMissionCount int
	LeaderboardLimit  int
	Hub               *realtime.SSEHub
	Bus               bus.Bus
}

// Deps are the repositories the services run on.
type Deps struct {
	User           repos.UserRepo
	Mission        repos.MissionRepo
	UserMission    repos.UserMissionRepo
	DailyMission   repos.DailyMissionRepo
	UserBadge      repos.UserBadgeRepo
	Module         repos.ModuleRepo
	ModuleProgress repos.ModuleProgressRepo
	VideoWatch     repos.VideoWatchRepo
	Quiz           repos.QuizRepo
	QuizAttempt    repos.QuizAttemptRepo
}

// NewSet builds every service on a shared ledger and notifier, so all award
// paths move XP and progress through the same bookkeeping.
func NewSet(db *gorm.DB, log *logger.Logger, opts Options, d Deps) Set {
	ledg := newLedger(log, d.User, d.Mission, d.UserMission, d.DailyMission, d.UserBadge)
	notify := newNotifier(opts.Hub, opts.Bus, log)

	return Set{
		Auth: NewAuthService(db, log, d.User, opts.JWTSecretKey, opts.AccessTokenTTL),
		User: NewUserService(db, log, d.User, d.UserBadge, d.UserMission, d.DailyMission,
			d.ModuleProgress, d.QuizAttempt, d.VideoWatch),
		Mission: NewMissionService(db, log, ledg, notify, d.User, d.Mission, d.UserMission, d.DailyMission),
		Quiz:    NewQuizService(db, log, ledg, notify, d.User, d.Quiz, d.QuizAttempt, d.ModuleProgress),
		Module: NewModuleService(db, log, ledg, notify, opts.VideoWatchXP,
			d.User, d.Module, d.Quiz, d.VideoWatch, d.ModuleProgress),
		Leaderboard: NewLeaderboardService(db, log, d.User, opts.LeaderboardLimit),
		Daily:       NewDailyService(db, log, opts.DailyMissionCount, d.User, d.Mission, d.DailyMission),
	}
}
