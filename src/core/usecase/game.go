package usecase

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"palpitefc/src/core/domain"
	"palpitefc/src/core/guess"
)

// GameSettings configures the game services.
type GameSettings struct {
	Rules domain.Rules

	// Location decides which calendar day "today" is.
	Location *time.Location
}

// cleanGuess trims the raw text and rejects guesses that are blank, oversized
// or have nothing left to compare once normalized.
func cleanGuess(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", domain.NewValidationError("text", "guess cannot be empty")
	}
	if utf8.RuneCountInString(text) > domain.MaxGuessLength {
		return "", domain.NewValidationError("text", "guess is too long")
	}
	if guess.Normalize(text) == "" {
		return "", domain.NewValidationError("text", "guess must contain letters or digits")
	}
	return text, nil
}

// checkAccess hides attempts of other modes and rejects foreign users.
func checkAccess(a *domain.Attempt, userID int64, mode domain.GameMode) error {
	if a.Mode != mode {
		return domain.NewNotFoundError(strings.ToLower(string(mode)) + " attempt")
	}
	if a.UserID != userID {
		return domain.NewForbiddenError("attempt belongs to another user")
	}
	return nil
}

// NewGameSettings builds settings from configuration values.
func NewGameSettings(maxWrongAttempts int, revealPolicy, timezone string) (GameSettings, error) {
	if maxWrongAttempts < 1 {
		return GameSettings{}, fmt.Errorf("max wrong attempts must be at least 1, got %d", maxWrongAttempts)
	}
	reveal, err := domain.ParseRevealPolicy(revealPolicy)
	if err != nil {
		return GameSettings{}, err
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return GameSettings{}, fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}
	return GameSettings{
		Rules:    domain.Rules{MaxWrongAttempts: maxWrongAttempts, Reveal: reveal},
		Location: loc,
	}, nil
}
