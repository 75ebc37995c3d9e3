// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"github.com/google/uuid"

	"palpitefc/src/core/domain"
)

// Repository is the base interface for all repositories.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// ChallengeStore persists players and the challenges built from them.
// Challenges are insert-only: once a key exists its target never changes.
type ChallengeStore interface {
	Repository

	// Players
	CreatePlayer(ctx context.Context, p domain.Player) (*domain.Player, error)
	GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error)
	// ListPlayers returns the pool ordered by id.
	ListPlayers(ctx context.Context) ([]domain.Player, error)

	// Daily challenges
	GetDailyChallenge(ctx context.Context, dateKey string) (*domain.DailyChallenge, error)
	// PublishDailyChallenge fails with a conflict if the date already has a target.
	PublishDailyChallenge(ctx context.Context, dateKey string, playerID int64) (*domain.DailyChallenge, error)
	// EnsureDailyChallenge publishes playerID unless the date already has a
	// target, and returns whichever target is stored.
	EnsureDailyChallenge(ctx context.Context, dateKey string, playerID int64) (*domain.DailyChallenge, error)

	// Roster challenges
	GetRosterChallenge(ctx context.Context, slug string) (*domain.RosterChallenge, error)
	CreateRosterChallenge(ctx context.Context, slug, title string, playerIDs []int64) (*domain.RosterChallenge, error)
}

// AttemptMutation mutates a locked attempt. Returning an error aborts the
// whole update; returning false skips the write.
type AttemptMutation func(a *domain.Attempt) (bool, error)

// AttemptStore persists attempts. Implementations serialize concurrent
// updates of the same attempt.
type AttemptStore interface {
	Repository

	GetAttempt(ctx context.Context, attemptID uuid.UUID) (*domain.Attempt, error)
	FindAttempt(ctx context.Context, userID int64, mode domain.GameMode, challengeKey string) (*domain.Attempt, error)

	// CreateAttempt inserts a unless an attempt already exists for its
	// (user, mode, challenge) key. It returns the stored attempt and whether
	// it was created by this call.
	CreateAttempt(ctx context.Context, a *domain.Attempt) (*domain.Attempt, bool, error)

	// UpdateAttempt locks the attempt, applies fn and persists the result
	// atomically.
	UpdateAttempt(ctx context.Context, attemptID uuid.UUID, fn AttemptMutation) (*domain.Attempt, error)
}

// GameRepository is the composite store backing the service.
type GameRepository interface {
	ChallengeStore
	AttemptStore
}
