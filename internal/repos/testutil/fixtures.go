package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
)

// SeedUser inserts a user with zeroed progression. Username and email are
// randomized so fixtures never collide across tests.
func SeedUser(t *testing.T, tx *gorm.DB) *domain.User {
	t.Helper()
	id := uuid.New()
	user := &domain.User{
		ID:       id,
		Username: fmt.Sprintf("user_%s", id.String()[:8]),
		FullName: "Test User",
		Email:    fmt.Sprintf("%s@example.com", id.String()[:8]),
		Password: "hashed-password",
		Level:    1,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func SeedMission(t *testing.T, tx *gorm.DB, mType domain.MissionType, xpReward, required int, badge string) *domain.Mission {
	t.Helper()
	id := uuid.New()
	mission := &domain.Mission{
		ID:                      id,
		Title:                   fmt.Sprintf("Mission %s", id.String()[:8]),
		Description:             "seeded mission",
		XPReward:                xpReward,
		BadgeReward:             badge,
		Type:                    mType,
		RequiredCompletionCount: required,
	}
	if err := tx.Create(mission).Error; err != nil {
		t.Fatalf("seed mission: %v", err)
	}
	return mission
}

func SeedModule(t *testing.T, tx *gorm.DB) *domain.Module {
	t.Helper()
	id := uuid.New()
	module := &domain.Module{
		ID:          id,
		Title:       fmt.Sprintf("Module %s", id.String()[:8]),
		Description: "seeded module",
		VideoURL:    "https://videos.example.com/" + id.String(),
		Difficulty:  "beginner",
		Topic:       "algebra",
	}
	if err := tx.Create(module).Error; err != nil {
		t.Fatalf("seed module: %v", err)
	}
	return module
}

func SeedQuiz(t *testing.T, tx *gorm.DB, moduleID uuid.UUID, correctAnswer string, xpReward int) *domain.Quiz {
	t.Helper()
	quiz := &domain.Quiz{
		ID:            uuid.New(),
		ModuleID:      moduleID,
		Question:      "What is 2 + 2?",
		Options:       []byte(`["3","4","5"]`),
		CorrectAnswer: correctAnswer,
		XPReward:      xpReward,
	}
	if err := tx.Create(quiz).Error; err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz
}

func SeedDailyMission(t *testing.T, tx *gorm.DB, userID, missionID uuid.UUID, date string) *domain.DailyMission {
	t.Helper()
	row := &domain.DailyMission{
		ID:           uuid.New(),
		UserID:       userID,
		MissionID:    missionID,
		AssignedDate: date,
	}
	if err := tx.Create(row).Error; err != nil {
		t.Fatalf("seed daily mission: %v", err)
	}
	return row
}
