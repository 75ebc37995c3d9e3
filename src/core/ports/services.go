package ports

import (
	"context"

	"palpitefc/src/core/domain"
)

// ExternalService is the base interface for external service adapters.
type ExternalService interface {
	// Health checks if the external service is reachable.
	Health(ctx context.Context) error
}

// ChallengeCache caches immutable challenges. A miss returns (nil, nil).
type ChallengeCache interface {
	ExternalService

	GetDaily(ctx context.Context, dateKey string) (*domain.DailyChallenge, error)
	SetDaily(ctx context.Context, c *domain.DailyChallenge) error
	GetRoster(ctx context.Context, slug string) (*domain.RosterChallenge, error)
	SetRoster(ctx context.Context, c *domain.RosterChallenge) error
}

// Authenticator resolves a session token to the current user.
type Authenticator interface {
	// Authenticate returns the user id, or an unauthorized domain error.
	Authenticate(ctx context.Context, token string) (int64, error)
}

// GameMetrics records game events.
type GameMetrics interface {
	AttemptStarted(mode domain.GameMode, resumed bool)
	GuessEvaluated(mode domain.GameMode, outcome string)
	AttemptFinished(mode domain.GameMode, status domain.AttemptStatus)
}

// NopMetrics discards every event.
type NopMetrics struct{}

func (NopMetrics) AttemptStarted(domain.GameMode, bool) {}
func (NopMetrics) GuessEvaluated(domain.GameMode, string) {}
func (NopMetrics) AttemptFinished(domain.GameMode, domain.AttemptStatus) {}
