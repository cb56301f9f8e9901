package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/repos"
	"github.com/yungbote/levelpath-backend/internal/repos/testutil"
)

func newLog(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return log
}

func TestUserMissionUpsertIncrement(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		repo := repos.NewUserMissionRepo(testutil.DB(t), newLog(t))
		user := testutil.SeedUser(t, tx)
		mission := testutil.SeedMission(t, tx, domain.MissionTypeOther, 50, 3, "")

		for i := 1; i <= 3; i++ {
			if err := repo.UpsertIncrement(ctx, tx, user.ID, mission.ID, 1); err != nil {
				t.Fatalf("upsert %d: %v", i, err)
			}
			row, err := repo.GetForUpdate(ctx, tx, user.ID, mission.ID)
			if err != nil {
				t.Fatalf("get %d: %v", i, err)
			}
			if row == nil {
				t.Fatalf("row missing after upsert %d", i)
			}
			if row.CurrentProgress != i {
				t.Errorf("progress after upsert %d = %d, want %d", i, row.CurrentProgress, i)
			}
		}
	})
}

func TestUserMissionUpsertFrozenWhenCompleted(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		repo := repos.NewUserMissionRepo(testutil.DB(t), newLog(t))
		user := testutil.SeedUser(t, tx)
		mission := testutil.SeedMission(t, tx, domain.MissionTypeOther, 50, 1, "")

		if err := repo.UpsertIncrement(ctx, tx, user.ID, mission.ID, 2); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		row, err := repo.GetForUpdate(ctx, tx, user.ID, mission.ID)
		if err != nil || row == nil {
			t.Fatalf("get: row=%v err=%v", row, err)
		}
		if err := repo.MarkCompleted(ctx, tx, row.ID, time.Now().UTC()); err != nil {
			t.Fatalf("mark completed: %v", err)
		}

		// Further increments must not move a completed row.
		if err := repo.UpsertIncrement(ctx, tx, user.ID, mission.ID, 5); err != nil {
			t.Fatalf("upsert after completion: %v", err)
		}
		row, err = repo.GetForUpdate(ctx, tx, user.ID, mission.ID)
		if err != nil || row == nil {
			t.Fatalf("reget: row=%v err=%v", row, err)
		}
		if row.CurrentProgress != 2 {
			t.Errorf("progress = %d, want 2 (frozen)", row.CurrentProgress)
		}
		if !row.IsCompleted {
			t.Error("row should stay completed")
		}
	})
}

func TestUserMissionMarkCompletedOnce(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		repo := repos.NewUserMissionRepo(testutil.DB(t), newLog(t))
		user := testutil.SeedUser(t, tx)
		mission := testutil.SeedMission(t, tx, domain.MissionTypeOther, 10, 1, "")

		if err := repo.UpsertIncrement(ctx, tx, user.ID, mission.ID, 1); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		row, _ := repo.GetForUpdate(ctx, tx, user.ID, mission.ID)
		first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		if err := repo.MarkCompleted(ctx, tx, row.ID, first); err != nil {
			t.Fatalf("first complete: %v", err)
		}
		if err := repo.MarkCompleted(ctx, tx, row.ID, first.Add(time.Hour)); err != nil {
			t.Fatalf("second complete: %v", err)
		}
		row, _ = repo.GetForUpdate(ctx, tx, user.ID, mission.ID)
		if row.CompletedAt == nil || !row.CompletedAt.Equal(first) {
			t.Errorf("completed_at = %v, want %v", row.CompletedAt, first)
		}

		count, err := repo.CountCompleted(ctx, tx, user.ID)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 1 {
			t.Errorf("completed count = %d, want 1", count)
		}
	})
}

func TestDailyMissionIncrementAssignedOnly(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		repo := repos.NewDailyMissionRepo(testutil.DB(t), newLog(t))
		user := testutil.SeedUser(t, tx)
		assigned := testutil.SeedMission(t, tx, domain.MissionTypeCompleteQuiz, 20, 2, "")
		unassigned := testutil.SeedMission(t, tx, domain.MissionTypeCompleteQuiz, 20, 2, "")
		today := time.Now().UTC().Format(domain.ScopeDateLayout)
		testutil.SeedDailyMission(t, tx, user.ID, assigned.ID, today)

		err := repo.IncrementAssigned(ctx, tx, user.ID,
			[]uuid.UUID{assigned.ID, unassigned.ID}, today, 1)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}

		rows, err := repo.GetByUserAndDate(ctx, tx, user.ID, today)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("rows = %d, want 1 (no lazy creation)", len(rows))
		}
		if rows[0].CurrentProgress != 1 {
			t.Errorf("progress = %d, want 1", rows[0].CurrentProgress)
		}
	})
}
