package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"palpitefc/src/core/domain"
	"palpitefc/src/core/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockChallengeStore is a mock implementation of ports.ChallengeStore
type MockChallengeStore struct {
	mock.Mock
}

func (m *MockChallengeStore) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockChallengeStore) CreatePlayer(ctx context.Context, p domain.Player) (*domain.Player, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockChallengeStore) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockChallengeStore) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Player), args.Error(1)
}

func (m *MockChallengeStore) GetDailyChallenge(ctx context.Context, dateKey string) (*domain.DailyChallenge, error) {
	args := m.Called(ctx, dateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyChallenge), args.Error(1)
}

func (m *MockChallengeStore) PublishDailyChallenge(ctx context.Context, dateKey string, playerID int64) (*domain.DailyChallenge, error) {
	args := m.Called(ctx, dateKey, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyChallenge), args.Error(1)
}

func (m *MockChallengeStore) EnsureDailyChallenge(ctx context.Context, dateKey string, playerID int64) (*domain.DailyChallenge, error) {
	args := m.Called(ctx, dateKey, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyChallenge), args.Error(1)
}

func (m *MockChallengeStore) GetRosterChallenge(ctx context.Context, slug string) (*domain.RosterChallenge, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RosterChallenge), args.Error(1)
}

func (m *MockChallengeStore) CreateRosterChallenge(ctx context.Context, slug, title string, playerIDs []int64) (*domain.RosterChallenge, error) {
	args := m.Called(ctx, slug, title, playerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RosterChallenge), args.Error(1)
}

// MockChallengeCache is a mock implementation of ports.ChallengeCache
type MockChallengeCache struct {
	mock.Mock
}

func (m *MockChallengeCache) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockChallengeCache) GetDaily(ctx context.Context, dateKey string) (*domain.DailyChallenge, error) {
	args := m.Called(ctx, dateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyChallenge), args.Error(1)
}

func (m *MockChallengeCache) SetDaily(ctx context.Context, c *domain.DailyChallenge) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockChallengeCache) GetRoster(ctx context.Context, slug string) (*domain.RosterChallenge, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RosterChallenge), args.Error(1)
}

func (m *MockChallengeCache) SetRoster(ctx context.Context, c *domain.RosterChallenge) error {
	return m.Called(ctx, c).Error(0)
}

// MockAttemptStore is a mock implementation of ports.AttemptStore, used
// where a test needs to inject store failures.
type MockAttemptStore struct {
	mock.Mock
}

func (m *MockAttemptStore) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAttemptStore) GetAttempt(ctx context.Context, attemptID uuid.UUID) (*domain.Attempt, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}

func (m *MockAttemptStore) FindAttempt(ctx context.Context, userID int64, mode domain.GameMode, key string) (*domain.Attempt, error) {
	args := m.Called(ctx, userID, mode, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}

func (m *MockAttemptStore) CreateAttempt(ctx context.Context, a *domain.Attempt) (*domain.Attempt, bool, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Attempt), args.Bool(1), args.Error(2)
}

func (m *MockAttemptStore) UpdateAttempt(ctx context.Context, attemptID uuid.UUID, fn ports.AttemptMutation) (*domain.Attempt, error) {
	args := m.Called(ctx, attemptID, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attempt), args.Error(1)
}

// memAttemptStore keeps attempts in memory with the same all-or-nothing
// update contract as the Postgres store. locked is set while a mutation
// runs, standing in for the row lock.
type memAttemptStore struct {
	mu       sync.Mutex
	attempts map[uuid.UUID]*domain.Attempt
	writes   int
	locked   atomic.Bool
}

func newMemAttemptStore() *memAttemptStore {
	return &memAttemptStore{attempts: make(map[uuid.UUID]*domain.Attempt)}
}

func cloneAttempt(a *domain.Attempt) *domain.Attempt {
	c := *a
	c.Guesses = append([]domain.Guess{}, a.Guesses...)
	c.GuessedIDs = append([]int64{}, a.GuessedIDs...)
	return &c
}

func (s *memAttemptStore) Health(context.Context) error { return nil }

func (s *memAttemptStore) GetAttempt(_ context.Context, id uuid.UUID) (*domain.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil, domain.NewNotFoundError("attempt")
	}
	return cloneAttempt(a), nil
}

func (s *memAttemptStore) FindAttempt(_ context.Context, userID int64, mode domain.GameMode, key string) (*domain.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attempts {
		if a.UserID == userID && a.Mode == mode && a.ChallengeKey == key {
			return cloneAttempt(a), nil
		}
	}
	return nil, domain.NewNotFoundError("attempt")
}

func (s *memAttemptStore) CreateAttempt(_ context.Context, a *domain.Attempt) (*domain.Attempt, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.attempts {
		if existing.UserID == a.UserID && existing.Mode == a.Mode && existing.ChallengeKey == a.ChallengeKey {
			return cloneAttempt(existing), false, nil
		}
	}
	s.attempts[a.ID] = cloneAttempt(a)
	return cloneAttempt(a), true, nil
}

func (s *memAttemptStore) UpdateAttempt(_ context.Context, id uuid.UUID, fn ports.AttemptMutation) (*domain.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.attempts[id]
	if !ok {
		return nil, domain.NewNotFoundError("attempt")
	}
	working := cloneAttempt(stored)
	s.locked.Store(true)
	changed, err := fn(working)
	s.locked.Store(false)
	if err != nil {
		return nil, err
	}
	if changed {
		s.attempts[id] = cloneAttempt(working)
		s.writes++
	}
	return working, nil
}

// lockAwareStore counts challenge reads made while an attempt row is locked.
// Against Postgres each such read needs a second pool connection.
type lockAwareStore struct {
	ports.ChallengeStore
	attempts    *memAttemptStore
	lockedReads atomic.Int32
}

func (s *lockAwareStore) GetDailyChallenge(ctx context.Context, dateKey string) (*domain.DailyChallenge, error) {
	if s.attempts.locked.Load() {
		s.lockedReads.Add(1)
	}
	return s.ChallengeStore.GetDailyChallenge(ctx, dateKey)
}

func (s *lockAwareStore) GetRosterChallenge(ctx context.Context, slug string) (*domain.RosterChallenge, error) {
	if s.attempts.locked.Load() {
		s.lockedReads.Add(1)
	}
	return s.ChallengeStore.GetRosterChallenge(ctx, slug)
}
