package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/realtime"
	"github.com/yungbote/levelpath-backend/internal/realtime/bus"
	"github.com/yungbote/levelpath-backend/internal/services"
)

func wireServices(db *gorm.DB, log *logger.Logger, cfg *Config, r Repos, hub *realtime.SSEHub, b bus.Bus) services.Set {
	return services.NewSet(db, log, services.Options{
		JWTSecretKey:      cfg.JWTSecretKey,
		AccessTokenTTL:    cfg.AccessTokenTTL,
		VideoWatchXP:      cfg.VideoWatchXP,
		DailyMissionCount: cfg.DailyMissionCount,
		LeaderboardLimit:  cfg.LeaderboardLimit,
		Hub:               hub,
		Bus:               b,
	}, services.Deps{
		User:           r.User,
		Mission:        r.Mission,
		UserMission:    r.UserMission,
		DailyMission:   r.DailyMission,
		UserBadge:      r.UserBadge,
		Module:         r.Module,
		ModuleProgress: r.ModuleProgress,
		VideoWatch:     r.VideoWatch,
		Quiz:           r.Quiz,
		QuizAttempt:    r.QuizAttempt,
	})
}
