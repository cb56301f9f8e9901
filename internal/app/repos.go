package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/repos"
)

type Repos struct {
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

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:           repos.NewUserRepo(db, log),
		Mission:        repos.NewMissionRepo(db, log),
		UserMission:    repos.NewUserMissionRepo(db, log),
		DailyMission:   repos.NewDailyMissionRepo(db, log),
		UserBadge:      repos.NewUserBadgeRepo(db, log),
		Module:         repos.NewModuleRepo(db, log),
		ModuleProgress: repos.NewModuleProgressRepo(db, log),
		VideoWatch:     repos.NewVideoWatchRepo(db, log),
		Quiz:           repos.NewQuizRepo(db, log),
		QuizAttempt:    repos.NewQuizAttemptRepo(db, log),
	}
}
