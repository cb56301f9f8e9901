package services

import (
	"context"
	stderrors "errors"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/errors"
	"github.com/yungbote/levelpath-backend/internal/repos/testutil"
)

func newModuleService(t *testing.T, tx *gorm.DB, d *serviceDeps, stipend int) ModuleService {
	t.Helper()
	return NewModuleService(tx, testLog(t), d.ledger, d.notify, stipend,
		d.userRepo, d.moduleRepo, d.quizRepo, d.watchRepo, d.mpRepo)
}

func TestLogVideoWatchPaysStipendAndAdvancesMissions(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newModuleService(t, tx, d, 10)

		user := testutil.SeedUser(t, tx)
		module := testutil.SeedModule(t, tx)
		mission := testutil.SeedMission(t, tx, domain.MissionTypeWatchVideo, 30, 2, "")

		first, err := svc.LogVideoWatch(ctx, user.ID, module.ID)
		if err != nil {
			t.Fatalf("first watch: %v", err)
		}
		if first.XPEarned != 10 || first.User.XP != 10 {
			t.Errorf("first watch = %+v, want 10 XP stipend", first)
		}
		if len(first.MissionOutcomes) != 0 {
			t.Errorf("mission completed after one of two required watches: %+v", first.MissionOutcomes)
		}

		second, err := svc.LogVideoWatch(ctx, user.ID, module.ID)
		if err != nil {
			t.Fatalf("second watch: %v", err)
		}
		var completed bool
		for _, out := range second.MissionOutcomes {
			if out.MissionID == mission.ID && out.CompletedNow {
				completed = true
			}
		}
		if !completed {
			t.Errorf("watch mission not completed: %+v", second.MissionOutcomes)
		}
		// 2 stipends + 30 mission XP.
		if second.User.XP != 50 {
			t.Errorf("xp = %d, want 50", second.User.XP)
		}
	})
}

func TestGetQuizzesGatedOnVideoWatch(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newModuleService(t, tx, d, 10)

		user := testutil.SeedUser(t, tx)
		module := testutil.SeedModule(t, tx)
		testutil.SeedQuiz(t, tx, module.ID, "4", 10)

		if _, err := svc.GetQuizzes(ctx, user.ID, module.ID); !stderrors.Is(err, errors.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden before watching", err)
		}

		if _, err := svc.LogVideoWatch(ctx, user.ID, module.ID); err != nil {
			t.Fatalf("watch: %v", err)
		}

		quizzes, err := svc.GetQuizzes(ctx, user.ID, module.ID)
		if err != nil {
			t.Fatalf("after watch: %v", err)
		}
		if len(quizzes) != 1 {
			t.Errorf("quizzes = %d, want 1", len(quizzes))
		}
	})
}
