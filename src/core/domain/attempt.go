package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rules holds the tunables of the attempt state machine.
type Rules struct {
	// MaxWrongAttempts ends the daily game as LOST once reached.
	MaxWrongAttempts int

	// Reveal controls how the blur percentage grows with wrong attempts.
	Reveal RevealPolicy
}

// DefaultRules returns the production rules.
func DefaultRules() Rules {
	return Rules{
		MaxWrongAttempts: DefaultMaxWrongAttempts,
		Reveal:           RevealLinear,
	}
}

// NewAttempt creates a fresh PLAYING attempt with an empty history.
func NewAttempt(userID int64, mode GameMode, challengeKey string, now time.Time) *Attempt {
	return &Attempt{
		ID:           uuid.New(),
		UserID:       userID,
		Mode:         mode,
		ChallengeKey: challengeKey,
		Status:       StatusPlaying,
		Guesses:      []Guess{},
		GuessedIDs:   []int64{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (a *Attempt) ensure(mode GameMode) error {
	if a.Mode != mode {
		return NewValidationError("mode", "operation not available for "+string(a.Mode)+" attempts")
	}
	if a.Status.Terminal() {
		return NewInvalidStateError("attempt already finished with status " + string(a.Status))
	}
	return nil
}

func (a *Attempt) finish(status AttemptStatus, now time.Time) {
	a.Status = status
	a.FinishedAt = &now
}

// ApplyDailyVerdict records a daily guess. An exact verdict wins the game;
// anything else is a wrong attempt, and the last allowed one loses it.
func (a *Attempt) ApplyDailyVerdict(text string, v DailyVerdict, rules Rules, now time.Time) error {
	if err := a.ensure(ModeDaily); err != nil {
		return err
	}

	a.UpdatedAt = now
	if v.Tier == TierExact {
		a.Guesses = append(a.Guesses, Guess{Text: text, Correct: true, Tier: TierExact, At: now})
		a.finish(StatusWon, now)
		return nil
	}

	a.Guesses = append(a.Guesses, Guess{Text: text, Correct: false, Tier: v.Tier, At: now})
	a.WrongAttempts++
	if a.WrongAttempts >= rules.MaxWrongAttempts {
		a.WrongAttempts = rules.MaxWrongAttempts
		a.finish(StatusLost, now)
	}
	return nil
}

// ApplyRosterVerdict records a roster guess and reports whether the attempt
// changed. Already-guessed verdicts leave the attempt untouched.
func (a *Attempt) ApplyRosterVerdict(text string, v RosterVerdict, roster *RosterChallenge, now time.Time) (bool, error) {
	if err := a.ensure(ModeRoster); err != nil {
		return false, err
	}

	switch {
	case v.Matched:
		if !roster.Contains(v.PlayerID) {
			return false, NewValidationError("player_id", "player is not part of the roster")
		}
		if a.HasGuessed(v.PlayerID) {
			return false, nil
		}
		id := v.PlayerID
		a.Guesses = append(a.Guesses, Guess{Text: text, Correct: true, Tier: TierExact, PlayerID: &id, At: now})
		a.GuessedIDs = append(a.GuessedIDs, id)
		a.UpdatedAt = now
		if len(a.GuessedIDs) >= roster.Size() {
			a.finish(StatusCompleted, now)
		}
		return true, nil
	case v.Reason == ReasonAlreadyGuessed:
		return false, nil
	default:
		a.Guesses = append(a.Guesses, Guess{Text: text, Correct: false, Tier: TierWrong, At: now})
		a.WrongAttempts++
		a.UpdatedAt = now
		return true, nil
	}
}

// Reset discards the roster progress. The challenge key is kept, so the
// roster being played does not change.
func (a *Attempt) Reset(now time.Time) error {
	if err := a.ensure(ModeRoster); err != nil {
		return err
	}
	a.Guesses = []Guess{}
	a.GuessedIDs = []int64{}
	a.WrongAttempts = 0
	a.UpdatedAt = now
	return nil
}

// Abandon gives up on a roster attempt.
func (a *Attempt) Abandon(now time.Time) error {
	if err := a.ensure(ModeRoster); err != nil {
		return err
	}
	a.UpdatedAt = now
	a.finish(StatusAbandoned, now)
	return nil
}
