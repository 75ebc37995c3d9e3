package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"palpitefc/src/core/domain"
	"palpitefc/src/core/guess"
	"palpitefc/src/core/ports"
)

// DailyGameService runs the "player of the day" game.
type DailyGameService struct {
	challenges *ChallengeSource
	attempts   ports.AttemptStore
	evaluator  *guess.Evaluator
	settings   GameSettings
	metrics    ports.GameMetrics
	log        *slog.Logger
	now        func() time.Time
}

func NewDailyGameService(
	challenges *ChallengeSource,
	attempts ports.AttemptStore,
	evaluator *guess.Evaluator,
	settings GameSettings,
	metrics ports.GameMetrics,
	log *slog.Logger,
) *DailyGameService {
	return &DailyGameService{
		challenges: challenges,
		attempts:   attempts,
		evaluator:  evaluator,
		settings:   settings,
		metrics:    metrics,
		log:        log,
		now:        time.Now,
	}
}

// Today returns the date key of the current day.
func (s *DailyGameService) Today() string {
	return domain.DateKey(s.now(), s.settings.Location)
}

// StartOrResume returns the user's attempt for dateKey, creating it on the
// first call. An empty dateKey means today.
func (s *DailyGameService) StartOrResume(ctx context.Context, userID int64, dateKey string) (*domain.Progress, error) {
	today := s.Today()
	if dateKey == "" {
		dateKey = today
	}
	if err := domain.ValidateDateKey(dateKey); err != nil {
		return nil, err
	}
	// Keys share one layout, so string order is date order.
	if dateKey > today {
		return nil, domain.NewValidationError("date_key", "challenge is not available yet")
	}

	challenge, err := s.challenges.Daily(ctx, dateKey)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attempts.FindAttempt(ctx, userID, domain.ModeDaily, dateKey)
	if err == nil {
		s.metrics.AttemptStarted(domain.ModeDaily, true)
		return domain.NewDailyProgress(attempt, challenge, s.settings.Rules), nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}

	attempt, created, err := s.attempts.CreateAttempt(ctx, domain.NewAttempt(userID, domain.ModeDaily, dateKey, s.now()))
	if err != nil {
		return nil, err
	}
	s.metrics.AttemptStarted(domain.ModeDaily, !created)
	if created {
		s.log.Info("daily attempt started", "attempt_id", attempt.ID, "user_id", userID, "date_key", dateKey)
	}
	return domain.NewDailyProgress(attempt, challenge, s.settings.Rules), nil
}

// Get returns the current snapshot of an attempt.
func (s *DailyGameService) Get(ctx context.Context, userID int64, attemptID uuid.UUID) (*domain.Progress, error) {
	attempt, err := s.attempts.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(attempt, userID, domain.ModeDaily); err != nil {
		return nil, err
	}
	challenge, err := s.challenges.Daily(ctx, attempt.ChallengeKey)
	if err != nil {
		return nil, err
	}
	return domain.NewDailyProgress(attempt, challenge, s.settings.Rules), nil
}

// SubmitGuess evaluates rawText against the player of the day and applies
// the verdict. Nothing is stored if any step fails.
func (s *DailyGameService) SubmitGuess(ctx context.Context, userID int64, attemptID uuid.UUID, rawText string) (*domain.GuessOutcome, error) {
	text, err := cleanGuess(rawText)
	if err != nil {
		return nil, err
	}

	// The challenge is loaded before the attempt row is locked, so the
	// update never waits on a second connection while holding the lock.
	current, err := s.attempts.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(current, userID, domain.ModeDaily); err != nil {
		return nil, err
	}
	challenge, err := s.challenges.Daily(ctx, current.ChallengeKey)
	if err != nil {
		return nil, err
	}
	verdict := s.evaluator.EvaluateDaily(text, challenge.Target)

	attempt, err := s.attempts.UpdateAttempt(ctx, attemptID, func(a *domain.Attempt) (bool, error) {
		if err := checkAccess(a, userID, domain.ModeDaily); err != nil {
			return false, err
		}
		if a.ChallengeKey != challenge.DateKey {
			return false, domain.NewConflictError("attempt changed while guessing")
		}
		if err := a.ApplyDailyVerdict(text, verdict, s.settings.Rules, s.now()); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.GuessEvaluated(domain.ModeDaily, string(verdict.Tier))
	if attempt.Status.Terminal() {
		s.metrics.AttemptFinished(domain.ModeDaily, attempt.Status)
		s.log.Info("daily attempt finished",
			"attempt_id", attempt.ID,
			"status", attempt.Status,
			"wrong_attempts", attempt.WrongAttempts,
		)
	}

	return &domain.GuessOutcome{
		Correct:  verdict.Tier == domain.TierExact,
		Tier:     verdict.Tier,
		Progress: domain.NewDailyProgress(attempt, challenge, s.settings.Rules),
	}, nil
}
