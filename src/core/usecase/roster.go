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

// RosterGameService runs the "guess the elenco" game.
type RosterGameService struct {
	challenges *ChallengeSource
	attempts   ports.AttemptStore
	evaluator  *guess.Evaluator
	metrics    ports.GameMetrics
	log        *slog.Logger
	now        func() time.Time
}

func NewRosterGameService(
	challenges *ChallengeSource,
	attempts ports.AttemptStore,
	evaluator *guess.Evaluator,
	metrics ports.GameMetrics,
	log *slog.Logger,
) *RosterGameService {
	return &RosterGameService{
		challenges: challenges,
		attempts:   attempts,
		evaluator:  evaluator,
		metrics:    metrics,
		log:        log,
		now:        time.Now,
	}
}

// StartOrResume returns the user's attempt at the roster, creating it on
// the first call.
func (s *RosterGameService) StartOrResume(ctx context.Context, userID int64, slug string) (*domain.Progress, error) {
	if err := domain.ValidateSlug(slug); err != nil {
		return nil, err
	}
	roster, err := s.challenges.Roster(ctx, slug)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attempts.FindAttempt(ctx, userID, domain.ModeRoster, slug)
	if err == nil {
		s.metrics.AttemptStarted(domain.ModeRoster, true)
		return domain.NewRosterProgress(attempt, roster), nil
	}
	if !domain.IsNotFound(err) {
		return nil, err
	}

	attempt, created, err := s.attempts.CreateAttempt(ctx, domain.NewAttempt(userID, domain.ModeRoster, slug, s.now()))
	if err != nil {
		return nil, err
	}
	s.metrics.AttemptStarted(domain.ModeRoster, !created)
	if created {
		s.log.Info("roster attempt started", "attempt_id", attempt.ID, "user_id", userID, "slug", slug)
	}
	return domain.NewRosterProgress(attempt, roster), nil
}

// Get returns the current snapshot of an attempt.
func (s *RosterGameService) Get(ctx context.Context, userID int64, attemptID uuid.UUID) (*domain.Progress, error) {
	attempt, err := s.attempts.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(attempt, userID, domain.ModeRoster); err != nil {
		return nil, err
	}
	roster, err := s.challenges.Roster(ctx, attempt.ChallengeKey)
	if err != nil {
		return nil, err
	}
	return domain.NewRosterProgress(attempt, roster), nil
}

// SubmitGuess looks rawText up in the roster. Naming an already revealed
// player is reported but costs nothing.
func (s *RosterGameService) SubmitGuess(ctx context.Context, userID int64, attemptID uuid.UUID, rawText string) (*domain.GuessOutcome, error) {
	text, err := cleanGuess(rawText)
	if err != nil {
		return nil, err
	}

	current, err := s.attempts.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(current, userID, domain.ModeRoster); err != nil {
		return nil, err
	}
	roster, err := s.challenges.Roster(ctx, current.ChallengeKey)
	if err != nil {
		return nil, err
	}

	// Guessed ids may change between the read above and the lock, so the
	// verdict is computed against the locked row.
	var verdict domain.RosterVerdict
	attempt, err := s.attempts.UpdateAttempt(ctx, attemptID, func(a *domain.Attempt) (bool, error) {
		if err := checkAccess(a, userID, domain.ModeRoster); err != nil {
			return false, err
		}
		if a.ChallengeKey != roster.Slug {
			return false, domain.NewConflictError("attempt changed while guessing")
		}
		verdict = s.evaluator.EvaluateRoster(text, roster.Players, a.GuessedIDs)
		return a.ApplyRosterVerdict(text, verdict, roster, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.metrics.GuessEvaluated(domain.ModeRoster, string(verdict.Reason))
	if attempt.Status == domain.StatusCompleted {
		s.metrics.AttemptFinished(domain.ModeRoster, attempt.Status)
		s.log.Info("roster attempt completed", "attempt_id", attempt.ID, "guesses", len(attempt.Guesses))
	}

	out := &domain.GuessOutcome{
		Correct:  verdict.Matched,
		Reason:   verdict.Reason,
		Progress: domain.NewRosterProgress(attempt, roster),
	}
	if verdict.Reason != domain.ReasonNoMatch {
		id := verdict.PlayerID
		out.PlayerID = &id
	}
	return out, nil
}

// Reset clears the attempt's progress on the same roster.
func (s *RosterGameService) Reset(ctx context.Context, userID int64, attemptID uuid.UUID) (*domain.Progress, error) {
	return s.transition(ctx, userID, attemptID, func(a *domain.Attempt) error {
		return a.Reset(s.now())
	})
}

// Abandon ends the attempt and reveals the whole roster.
func (s *RosterGameService) Abandon(ctx context.Context, userID int64, attemptID uuid.UUID) (*domain.Progress, error) {
	p, err := s.transition(ctx, userID, attemptID, func(a *domain.Attempt) error {
		return a.Abandon(s.now())
	})
	if err != nil {
		return nil, err
	}
	s.metrics.AttemptFinished(domain.ModeRoster, domain.StatusAbandoned)
	s.log.Info("roster attempt abandoned", "attempt_id", attemptID)
	return p, nil
}

func (s *RosterGameService) transition(ctx context.Context, userID int64, attemptID uuid.UUID, apply func(*domain.Attempt) error) (*domain.Progress, error) {
	attempt, err := s.attempts.UpdateAttempt(ctx, attemptID, func(a *domain.Attempt) (bool, error) {
		if err := checkAccess(a, userID, domain.ModeRoster); err != nil {
			return false, err
		}
		if err := apply(a); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	roster, err := s.challenges.Roster(ctx, attempt.ChallengeKey)
	if err != nil {
		return nil, err
	}
	return domain.NewRosterProgress(attempt, roster), nil
}
