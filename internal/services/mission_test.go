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
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/repos"
	"github.com/yungbote/levelpath-backend/internal/repos/testutil"
)

func testLog(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

type serviceDeps struct {
	userRepo    repos.UserRepo
	missionRepo repos.MissionRepo
	umRepo      repos.UserMissionRepo
	dmRepo      repos.DailyMissionRepo
	badgeRepo   repos.UserBadgeRepo
	mpRepo      repos.ModuleProgressRepo
	quizRepo    repos.QuizRepo
	attemptRepo repos.QuizAttemptRepo
	watchRepo   repos.VideoWatchRepo
	moduleRepo  repos.ModuleRepo
	ledger      *ledger
	notify      *notifier
}

// newDeps builds real repos bound to the test transaction, so service
// transactions nest as savepoints and roll back with the test.
func newDeps(t *testing.T, tx *gorm.DB) *serviceDeps {
	t.Helper()
	log := testLog(t)
	d := &serviceDeps{
		userRepo:    repos.NewUserRepo(tx, log),
		missionRepo: repos.NewMissionRepo(tx, log),
		umRepo:      repos.NewUserMissionRepo(tx, log),
		dmRepo:      repos.NewDailyMissionRepo(tx, log),
		badgeRepo:   repos.NewUserBadgeRepo(tx, log),
		mpRepo:      repos.NewModuleProgressRepo(tx, log),
		quizRepo:    repos.NewQuizRepo(tx, log),
		attemptRepo: repos.NewQuizAttemptRepo(tx, log),
		watchRepo:   repos.NewVideoWatchRepo(tx, log),
		moduleRepo:  repos.NewModuleRepo(tx, log),
	}
	d.ledger = newLedger(log, d.userRepo, d.missionRepo, d.umRepo, d.dmRepo, d.badgeRepo)
	d.notify = newNotifier(nil, nil, log)
	return d
}

func newMissionService(t *testing.T, tx *gorm.DB, d *serviceDeps) MissionService {
	t.Helper()
	return NewMissionService(tx, testLog(t), d.ledger, d.notify, d.userRepo, d.missionRepo, d.umRepo, d.dmRepo)
}

func TestRecordProgressCompletesExactlyOnce(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newMissionService(t, tx, d)

		user := testutil.SeedUser(t, tx)
		mission := testutil.SeedMission(t, tx, domain.MissionTypeOther, 50, 3, "Starter")
		scope := domain.OneOffScope()

		for step := 1; step <= 2; step++ {
			out, err := svc.RecordProgress(ctx, user.ID, mission.ID, scope, 1)
			if err != nil {
				t.Fatalf("record %d: %v", step, err)
			}
			if out.CurrentProgress != step {
				t.Errorf("step %d progress = %d, want %d", step, out.CurrentProgress, step)
			}
			if out.IsCompleted || out.CompletedNow {
				t.Errorf("step %d should not complete", step)
			}
			if out.User.XP != 0 {
				t.Errorf("step %d awarded XP early: %d", step, out.User.XP)
			}
		}

		out, err := svc.RecordProgress(ctx, user.ID, mission.ID, scope, 1)
		if err != nil {
			t.Fatalf("record 3: %v", err)
		}
		if !out.CompletedNow {
			t.Fatal("third increment should complete the mission")
		}
		if out.CurrentProgress != 3 {
			t.Errorf("progress = %d, want 3", out.CurrentProgress)
		}
		if out.XPAwarded != 50 {
			t.Errorf("xp awarded = %d, want 50", out.XPAwarded)
		}
		if out.User.XP != 50 || out.User.Level != 1 {
			t.Errorf("user status = %+v, want xp=50 level=1", out.User)
		}
		if out.BadgeAwarded != "Starter" {
			t.Errorf("badge = %q, want Starter", out.BadgeAwarded)
		}

		badges, err := d.badgeRepo.GetByUserID(ctx, tx, user.ID)
		if err != nil {
			t.Fatalf("badges: %v", err)
		}
		if len(badges) != 1 || badges[0].BadgeName != "Starter" {
			t.Errorf("badges = %+v, want [Starter]", badges)
		}

		// Completed is terminal: more progress neither moves the row nor pays.
		again, err := svc.RecordProgress(ctx, user.ID, mission.ID, scope, 1)
		if err != nil {
			t.Fatalf("record after completion: %v", err)
		}
		if !again.AlreadyCompleted {
			t.Error("expected already-completed acknowledgement")
		}
		if again.XPAwarded != 0 {
			t.Errorf("re-award = %d, want 0", again.XPAwarded)
		}
		if again.User.XP != 50 {
			t.Errorf("xp = %d, want unchanged 50", again.User.XP)
		}
	})
}

func TestCompleteIfEligibleRequiresProgress(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newMissionService(t, tx, d)

		user := testutil.SeedUser(t, tx)
		mission := testutil.SeedMission(t, tx, domain.MissionTypeOther, 25, 2, "")
		scope := domain.OneOffScope()

		// No progress row at all.
		if _, err := svc.CompleteIfEligible(ctx, user.ID, mission.ID, scope); !stderrors.Is(err, errors.ErrRequirementsNotMet) {
			t.Fatalf("err = %v, want ErrRequirementsNotMet", err)
		}

		// Partial progress.
		if _, err := svc.RecordProgress(ctx, user.ID, mission.ID, scope, 1); err != nil {
			t.Fatalf("record: %v", err)
		}
		if _, err := svc.CompleteIfEligible(ctx, user.ID, mission.ID, scope); !stderrors.Is(err, errors.ErrRequirementsNotMet) {
			t.Fatalf("err = %v, want ErrRequirementsNotMet", err)
		}

		// Enough progress.
		if _, err := svc.RecordProgress(ctx, user.ID, mission.ID, scope, 1); err != nil {
			t.Fatalf("record: %v", err)
		}
		out, err := svc.CompleteIfEligible(ctx, user.ID, mission.ID, scope)
		if err != nil {
			t.Fatalf("complete: %v", err)
		}
		// RecordProgress already completed it at the threshold.
		if !out.AlreadyCompleted {
			t.Errorf("outcome = %+v, want already completed", out)
		}
	})
}

func TestCompleteIfEligibleZeroRequirementStillNeedsProgress(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newMissionService(t, tx, d)

		user := testutil.SeedUser(t, tx)
		mission := testutil.SeedMission(t, tx, domain.MissionTypeOther, 10, 0, "")

		_, err := svc.CompleteIfEligible(ctx, user.ID, mission.ID, domain.OneOffScope())
		if !stderrors.Is(err, errors.ErrRequirementsNotMet) {
			t.Fatalf("err = %v, want ErrRequirementsNotMet", err)
		}
	})
}

func TestRecordProgressDailyScopeIsPerDay(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newMissionService(t, tx, d)

		user := testutil.SeedUser(t, tx)
		mission := testutil.SeedMission(t, tx, domain.MissionTypeDailyLogin, 15, 1, "")

		today := time.Now().UTC()
		out, err := svc.RecordProgress(ctx, user.ID, mission.ID, domain.DailyScope(today), 1)
		if err != nil {
			t.Fatalf("record today: %v", err)
		}
		if !out.CompletedNow || out.XPAwarded != 15 {
			t.Fatalf("today outcome = %+v, want completion with 15 XP", out)
		}

		// Same mission, next day: a fresh instance that pays again.
		out, err = svc.RecordProgress(ctx, user.ID, mission.ID, domain.DailyScope(today.Add(24*time.Hour)), 1)
		if err != nil {
			t.Fatalf("record tomorrow: %v", err)
		}
		if !out.CompletedNow || out.XPAwarded != 15 {
			t.Fatalf("tomorrow outcome = %+v, want completion with 15 XP", out)
		}
		if out.User.XP != 30 {
			t.Errorf("xp = %d, want 30", out.User.XP)
		}
	})
}

func TestRecordProgressRejectsNonPositiveAmount(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newMissionService(t, tx, d)

		user := testutil.SeedUser(t, tx)
		mission := testutil.SeedMission(t, tx, domain.MissionTypeOther, 10, 1, "")

		for _, amount := range []int{0, -3} {
			if _, err := svc.RecordProgress(ctx, user.ID, mission.ID, domain.OneOffScope(), amount); !stderrors.Is(err, errors.ErrInvalidArgument) {
				t.Errorf("amount %d: err = %v, want ErrInvalidArgument", amount, err)
			}
		}
	})
}

func TestListUserMissionsIncludesUntouchedMissions(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newMissionService(t, tx, d)

		user := testutil.SeedUser(t, tx)
		started := testutil.SeedMission(t, tx, domain.MissionTypeOther, 10, 3, "")
		untouched := testutil.SeedMission(t, tx, domain.MissionTypeOther, 10, 2, "")

		if _, err := svc.RecordProgress(ctx, user.ID, started.ID, domain.OneOffScope(), 1); err != nil {
			t.Fatalf("record: %v", err)
		}

		statuses, err := svc.ListUserMissions(ctx, user.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		byID := make(map[uuid.UUID]*UserMissionStatus, len(statuses))
		for _, st := range statuses {
			byID[st.Mission.ID] = st
		}

		got, ok := byID[started.ID]
		if !ok || got.CurrentProgress != 1 || got.IsCompleted {
			t.Errorf("started mission = %+v, want progress 1", got)
		}
		got, ok = byID[untouched.ID]
		if !ok {
			t.Fatal("mission without a progress row missing from listing")
		}
		if got.CurrentProgress != 0 || got.IsCompleted || got.CompletedAt != nil {
			t.Errorf("untouched mission = %+v, want zero progress", got)
		}
	})
}

func TestRecordProgressUnknownMission(t *testing.T) {
	testutil.Tx(t, func(tx *gorm.DB) {
		ctx := context.Background()
		d := newDeps(t, tx)
		svc := newMissionService(t, tx, d)

		user := testutil.SeedUser(t, tx)
		ghost := testutil.SeedMission(t, tx, domain.MissionTypeOther, 10, 1, "")

		if _, err := svc.RecordProgress(ctx, user.ID, ghost.ID, domain.OneOffScope(), 1); err != nil {
			t.Fatalf("known mission should work: %v", err)
		}
		if _, err := svc.RecordProgress(ctx, user.ID, uuid.New(), domain.OneOffScope(), 1); !stderrors.Is(err, errors.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}
