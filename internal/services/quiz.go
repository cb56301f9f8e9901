package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/pkg/errors"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/progression"
	"github.com/yungbote/levelpath-backend/internal/realtime"
	"github.com/yungbote/levelpath-backend/internal/repos"
)

// QuizSubmission is the result of grading one answer, including everything
// the answer moved: XP, module progress and any missions it completed.
type QuizSubmission struct {
	Message         string            `json:"message"`
	IsCorrect       bool              `json:"isCorrect"`
	XPEarned        int               `json:"xpEarned"`
	CorrectAnswer   string            `json:"correctAnswer,omitempty"`
	LeveledUp       bool              `json:"leveledUp"`
	User            ProgressionStatus `json:"user"`
	MissionOutcomes []*MissionOutcome `json:"missionOutcomes,omitempty"`
}

type QuizService interface {
	Submit(ctx context.Context, userID, quizID uuid.UUID, answer string) (*QuizSubmission, error)
}

type quizService struct {
	db          *gorm.DB
	log         *logger.Logger
	ledger      *ledger
	notify      *notifier
	userRepo    repos.UserRepo
	quizRepo    repos.QuizRepo
	attemptRepo repos.QuizAttemptRepo
	mpRepo      repos.ModuleProgressRepo
}

func NewQuizService(
	db *gorm.DB,
	log *logger.Logger,
	ledg *ledger,
	notify *notifier,
	userRepo repos.UserRepo,
	quizRepo repos.QuizRepo,
	attemptRepo repos.QuizAttemptRepo,
	mpRepo repos.ModuleProgressRepo,
) QuizService {
	return &quizService{
		db:          db,
		log:         log.With("service", "QuizService"),
		ledger:      ledg,
		notify:      notify,
		userRepo:    userRepo,
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		mpRepo:      mpRepo,
	}
}

// Submit grades an answer and records everything it triggers in one
// transaction. Answers match case-insensitively with surrounding whitespace
// ignored. Every attempt is logged; only correct ones pay XP, complete the
// module and advance quiz missions.
func (s *quizService) Submit(ctx context.Context, userID, quizID uuid.UUID, answer string) (*QuizSubmission, error) {
	var result *QuizSubmission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quiz, err := s.quizRepo.GetByID(ctx, tx, quizID)
		if err != nil {
			return err
		}
		if quiz == nil {
			return fmt.Errorf("quiz %s: %w", quizID, errors.ErrNotFound)
		}

		user, err := s.userRepo.GetForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %s: %w", userID, errors.ErrNotFound)
		}

		isCorrect := strings.EqualFold(
			strings.TrimSpace(answer),
			strings.TrimSpace(quiz.CorrectAnswer),
		)
		now := time.Now().UTC()
		st := progression.State{XP: user.XP, Level: user.Level, XPThisMonth: user.XPThisMonth}

		score := 0
		var outcomes []*MissionOutcome
		var award progression.Award
		if isCorrect {
			score = quiz.XPReward
			award = progression.Apply(st, quiz.XPReward)
			st = award.State

			if err := s.mpRepo.UpsertCompleted(ctx, tx, userID, quiz.ModuleID, now); err != nil {
				return err
			}
			outcomes, err = s.ledger.applyTypeProgress(ctx, tx, &st, userID, domain.MissionTypeCompleteQuiz, now)
			if err != nil {
				return err
			}
		}

		attempt := &domain.QuizAttempt{
			UserID:    userID,
			QuizID:    quiz.ID,
			ModuleID:  quiz.ModuleID,
			IsCorrect: isCorrect,
			Score:     score,
		}
		if err := s.attemptRepo.Create(ctx, tx, attempt); err != nil {
			return err
		}

		if st.XP != user.XP {
			if err := s.userRepo.UpdateProgression(ctx, tx, userID, st.XP, st.Level, st.XPThisMonth); err != nil {
				return err
			}
		}

		result = &QuizSubmission{
			IsCorrect:       isCorrect,
			XPEarned:        score,
			LeveledUp:       st.Level > user.Level,
			User:            statusFrom(st),
			MissionOutcomes: outcomes,
		}
		if isCorrect {
			if result.LeveledUp {
				result.Message = fmt.Sprintf("Correct! You earned %d XP and leveled up to Level %d!", score, st.Level)
			} else {
				result.Message = fmt.Sprintf("Correct! You earned %d XP.", score)
			}
		} else {
			result.Message = "Incorrect answer. Try again!"
			result.CorrectAnswer = quiz.CorrectAnswer
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.XPEarned > 0 {
		s.notify.emit(ctx, userID, realtime.SSEEventXPAwarded, map[string]any{
			"xp":     result.XPEarned,
			"source": "quiz",
		})
	}
	if result.LeveledUp {
		s.notify.emit(ctx, userID, realtime.SSEEventLevelUp, map[string]any{
			"level": result.User.Level,
			"xp":    result.User.XP,
		})
	}
	s.notify.emitOutcomes(ctx, userID, result.MissionOutcomes)
	return result, nil
}
