package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/repos/testutil"
)

func newDailyService(t *testing.T, tx *gorm.DB, d *serviceDeps, count int) DailyService {
	t.Helper()
	return NewDailyService(tx, testLog(t), count, d.userRepo, d.missionRepo, d.dmRepo)
}

func TestAssignDailyMissionsIdempotent(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newDailyService(t, tx, d, 3)

		user := testutil.SeedUser(t, tx)
		for i := 0; i < 2; i++ {
			testutil.SeedMission(t, tx, domain.MissionTypeWatchVideo, 10, 1, "")
			testutil.SeedMission(t, tx, domain.MissionTypeCompleteQuiz, 10, 1, "")
		}
		day := time.Now().UTC()

		if _, err := svc.AssignDailyMissions(ctx, day); err != nil {
			t.Fatalf("first assignment: %v", err)
		}
		rows, err := d.dmRepo.GetByUserAndDate(ctx, tx, user.ID, day.Format(domain.ScopeDateLayout))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("assigned = %d, want 3", len(rows))
		}

		// Rerunning the job must not duplicate or replace assignments.
		if _, err := svc.AssignDailyMissions(ctx, day); err != nil {
			t.Fatalf("second assignment: %v", err)
		}
		after, err := d.dmRepo.GetByUserAndDate(ctx, tx, user.ID, day.Format(domain.ScopeDateLayout))
		if err != nil {
			t.Fatalf("relist: %v", err)
		}
		if len(after) != 3 {
			t.Errorf("after rerun = %d rows, want 3", len(after))
		}
	})
}

func TestAssignDailyMissionsSmallPool(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newDailyService(t, tx, d, 5)

		user := testutil.SeedUser(t, tx)
		testutil.SeedMission(t, tx, domain.MissionTypeWatchVideo, 10, 1, "")
		day := time.Now().UTC()

		if _, err := svc.AssignDailyMissions(ctx, day); err != nil {
			t.Fatalf("assign: %v", err)
		}
		rows, err := d.dmRepo.GetByUserAndDate(ctx, tx, user.ID, day.Format(domain.ScopeDateLayout))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 1 {
			t.Errorf("assigned = %d, want whole pool of 1", len(rows))
		}
	})
}

func TestResetMonthlyXPPreservesLifetime(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newDailyService(t, tx, d, 3)

		user := testutil.SeedUser(t, tx)
		if err := d.userRepo.UpdateProgression(ctx, tx, user.ID, 420, 5, 220); err != nil {
			t.Fatalf("seed progression: %v", err)
		}

		if _, err := svc.ResetMonthlyXP(ctx); err != nil {
			t.Fatalf("reset: %v", err)
		}

		got, err := d.userRepo.GetForUpdate(ctx, tx, user.ID)
		if err != nil || got == nil {
			t.Fatalf("get: user=%v err=%v", got, err)
		}
		if got.XPThisMonth != 0 {
			t.Errorf("xp_this_month = %d, want 0", got.XPThisMonth)
		}
		if got.XP != 420 || got.Level != 5 {
			t.Errorf("lifetime progression changed: xp=%d level=%d", got.XP, got.Level)
		}
	})
}
