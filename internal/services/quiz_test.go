package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/errors"
	"github.com/yungbote/levelpath-backend/internal/repos/testutil"
)

func newQuizService(t *testing.T, tx *gorm.DB, d *serviceDeps) QuizService {
	t.Helper()
	return NewQuizService(tx, testLog(t), d.ledger, d.notify, d.userRepo, d.quizRepo, d.attemptRepo, d.mpRepo)
}

func TestQuizSubmitCorrectAwardsAndLevels(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newQuizService(t, tx, d)

		user := testutil.SeedUser(t, tx)
		if err := d.userRepo.UpdateProgression(ctx, tx, user.ID, 80, 1, 80); err != nil {
			t.Fatalf("seed progression: %v", err)
		}
		module := testutil.SeedModule(t, tx)
		quiz := testutil.SeedQuiz(t, tx, module.ID, "Paris", 30)

		res, err := svc.Submit(ctx, user.ID, quiz.ID, "  paris ")
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if !res.IsCorrect {
			t.Fatal("trimmed case-insensitive answer should be correct")
		}
		if res.XPEarned != 30 {
			t.Errorf("xp earned = %d, want 30", res.XPEarned)
		}
		if !res.LeveledUp || res.User.Level != 2 {
			t.Errorf("level = %d leveledUp = %v, want level 2", res.User.Level, res.LeveledUp)
		}
		if res.User.XP != 110 || res.User.XPForNextLevel != 90 {
			t.Errorf("status = %+v, want xp=110 xpForNextLevel=90", res.User)
		}
		if res.CorrectAnswer != "" {
			t.Error("correct submissions should not echo the answer")
		}

		// Module completion recorded.
		mp, err := d.mpRepo.GetByUserAndModuleIDs(ctx, tx, user.ID, []uuid.UUID{module.ID})
		if err != nil {
			t.Fatalf("module progress: %v", err)
		}
		if len(mp) != 1 || !mp[0].IsCompleted {
			t.Errorf("module progress = %+v, want completed row", mp)
		}
	})
}

func TestQuizSubmitIncorrectLogsAttemptWithoutXP(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newQuizService(t, tx, d)

		user := testutil.SeedUser(t, tx)
		module := testutil.SeedModule(t, tx)
		quiz := testutil.SeedQuiz(t, tx, module.ID, "Paris", 30)

		res, err := svc.Submit(ctx, user.ID, quiz.ID, "London")
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if res.IsCorrect {
			t.Fatal("wrong answer graded correct")
		}
		if res.XPEarned != 0 || res.User.XP != 0 {
			t.Errorf("xp moved on wrong answer: %+v", res)
		}
		if res.CorrectAnswer != "Paris" {
			t.Errorf("correctAnswer = %q, want Paris", res.CorrectAnswer)
		}

		// Attempt is still logged; module stays incomplete.
		correct, err := d.attemptRepo.CountDistinctCorrect(ctx, tx, user.ID)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if correct != 0 {
			t.Errorf("correct attempts = %d, want 0", correct)
		}
		mp, err := d.mpRepo.GetByUserAndModuleIDs(ctx, tx, user.ID, []uuid.UUID{module.ID})
		if err != nil {
			t.Fatalf("module progress: %v", err)
		}
		if len(mp) != 0 {
			t.Errorf("module progress rows = %d, want 0", len(mp))
		}
	})
}

func TestQuizSubmitAdvancesQuizMissions(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newQuizService(t, tx, d)

		user := testutil.SeedUser(t, tx)
		module := testutil.SeedModule(t, tx)
		quiz := testutil.SeedQuiz(t, tx, module.ID, "4", 10)
		mission := testutil.SeedMission(t, tx, domain.MissionTypeCompleteQuiz, 40, 1, "Quiz Whiz")

		res, err := svc.Submit(ctx, user.ID, quiz.ID, "4")
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if len(res.MissionOutcomes) != 1 {
			t.Fatalf("mission outcomes = %d, want 1", len(res.MissionOutcomes))
		}
		out := res.MissionOutcomes[0]
		if out.MissionID != mission.ID || !out.CompletedNow {
			t.Errorf("outcome = %+v, want completion of seeded mission", out)
		}
		// 10 quiz XP + 40 mission XP, applied atomically.
		if res.User.XP != 50 {
			t.Errorf("xp = %d, want 50", res.User.XP)
		}
	})
}

func TestQuizSubmitAdvancesAssignedDailyMissions(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newQuizService(t, tx, d)

		user := testutil.SeedUser(t, tx)
		module := testutil.SeedModule(t, tx)
		quiz := testutil.SeedQuiz(t, tx, module.ID, "4", 10)
		daily := testutil.SeedMission(t, tx, domain.MissionTypeCompleteQuiz, 20, 1, "")
		today := time.Now().UTC().Format(domain.ScopeDateLayout)
		testutil.SeedDailyMission(t, tx, user.ID, daily.ID, today)

		res, err := svc.Submit(ctx, user.ID, quiz.ID, "4")
		if err != nil {
			t.Fatalf("submit: %v", err)
		}

		// The one-off row is created lazily and the daily row completes.
		var dailyCompleted bool
		for _, out := range res.MissionOutcomes {
			if out.MissionID == daily.ID && out.CompletedNow {
				dailyCompleted = true
			}
		}
		if !dailyCompleted {
			t.Errorf("daily mission not completed: %+v", res.MissionOutcomes)
		}
	})
}

func TestQuizSubmitUnknownQuiz(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newQuizService(t, tx, d)
		user := testutil.SeedUser(t, tx)

		if _, err := svc.Submit(ctx, user.ID, uuid.New(), "answer"); !stderrors.Is(err, errors.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}
