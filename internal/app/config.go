package app

import (
	"fmt"
	"time"

	"github.com/yungbote/levelpath-backend/internal/pkg/envutil"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

type Config struct {
	Mode              string
	Port              string
	JWTSecretKey      string
	AccessTokenTTL    time.Duration
	VideoWatchXP      int
	DailyMissionCount int
	LeaderboardLimit  int
	EnableScheduler   bool
	RedisBusEnabled   bool
}

func LoadConfig(log *logger.Logger) (*Config, error) {
	cfg := &Config{
		Mode:              envutil.GetEnv("APP_MODE", "development", log),
		Port:              envutil.GetEnv("PORT", "8080", log),
		JWTSecretKey:      envutil.GetEnv("JWT_SECRET_KEY", "", log),
		AccessTokenTTL:    time.Duration(envutil.GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 60*24, log)) * time.Minute,
		VideoWatchXP:      envutil.GetEnvAsInt("VIDEO_WATCH_XP", 10, log),
		DailyMissionCount: envutil.GetEnvAsInt("DAILY_MISSION_COUNT", 3, log),
		LeaderboardLimit:  envutil.GetEnvAsInt("LEADERBOARD_LIMIT", 100, log),
		EnableScheduler:   envutil.GetEnv("ENABLE_SCHEDULER", "true", log) == "true",
		RedisBusEnabled:   envutil.GetEnv("REDIS_ADDR", "", log) != "",
	}
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return cfg, nil
}
