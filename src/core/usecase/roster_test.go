package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"palpitefc/src/core/domain"
	"palpitefc/src/core/guess"
	"palpitefc/src/core/ports"
)

const TestSlug = "corinthians-2012"

type rosterFixture struct {
	store    *MockChallengeStore
	attempts *memAttemptStore
	svc      *RosterGameService
}

func corinthians2012() *domain.RosterChallenge {
	return &domain.RosterChallenge{
		Slug:  TestSlug,
		Title: "Corinthians 2012",
		Players: []domain.Player{
			{ID: 1, Name: "Cássio", Position: "Goleiro", ShirtNumber: 12},
			{ID: 2, Name: "Paulinho", Position: "Volante", ShirtNumber: 8},
			{ID: 3, Name: "Emerson Sheik", Aliases: []string{"Sheik"}, Position: "Atacante", ShirtNumber: 11},
		},
		CreatedAt: testNow,
	}
}

func newRosterFixture(t *testing.T) *rosterFixture {
	t.Helper()

	store := new(MockChallengeStore)
	store.On("GetRosterChallenge", mock.Anything, TestSlug).Return(corinthians2012(), nil)

	attempts := newMemAttemptStore()
	source := NewChallengeSource(store, nil, false, discardLogger())
	svc := NewRosterGameService(source, attempts, guess.NewEvaluator(guess.DefaultPolicy()), ports.NopMetrics{}, discardLogger())
	svc.now = func() time.Time { return testNow }

	return &rosterFixture{store: store, attempts: attempts, svc: svc}
}

func (f *rosterFixture) start(t *testing.T) *domain.Progress {
	t.Helper()
	p, err := f.svc.StartOrResume(context.Background(), TestUserID, TestSlug)
	require.NoError(t, err)
	return p
}

func TestRosterGameService_StartOrResume(t *testing.T) {
	t.Parallel()
	f := newRosterFixture(t)

	first := f.start(t)
	assert.Equal(t, domain.ModeRoster, first.Mode)
	assert.Equal(t, domain.StatePlaying, first.State)
	assert.Equal(t, 3, first.Playing.RosterSize)
	assert.Empty(t, first.Playing.Revealed)

	second := f.start(t)
	assert.Equal(t, first.AttemptID, second.AttemptID)

	_, err := f.svc.StartOrResume(context.Background(), TestUserID, "Not A Slug")
	assert.True(t, domain.IsValidationError(err))
}

func TestRosterGameService_AlreadyGuessedCostsNothing(t *testing.T) {
	t.Parallel()
	f := newRosterFixture(t)
	ctx := context.Background()
	p := f.start(t)

	out, err := f.svc.SubmitGuess(ctx, TestUserID, p.AttemptID, "Cássio")
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, domain.ReasonMatched, out.Reason)
	require.NotNil(t, out.PlayerID)
	assert.Equal(t, int64(1), *out.PlayerID)
	require.Len(t, out.Progress.Playing.Revealed, 1)
	assert.Equal(t, "Cássio", out.Progress.Playing.Revealed[0].Name)

	writes := f.attempts.writes
	out, err = f.svc.SubmitGuess(ctx, TestUserID, p.AttemptID, "Cassio")
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Equal(t, domain.ReasonAlreadyGuessed, out.Reason)
	require.NotNil(t, out.PlayerID)
	assert.Equal(t, int64(1), *out.PlayerID)
	assert.Equal(t, writes, f.attempts.writes)

	stored, err := f.attempts.GetAttempt(ctx, p.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, stored.GuessedIDs)
	assert.Equal(t, 0, stored.WrongAttempts)
	assert.Len(t, stored.Guesses, 1)
}

func TestRosterGameService_NoMatchCountsWrong(t *testing.T) {
	t.Parallel()
	f := newRosterFixture(t)
	ctx := context.Background()
	p := f.start(t)

	out, err := f.svc.SubmitGuess(ctx, TestUserID, p.AttemptID, "Ronaldo")
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Equal(t, domain.ReasonNoMatch, out.Reason)
	assert.Nil(t, out.PlayerID)
	assert.Equal(t, domain.StatePlaying, out.Progress.State)

	stored, err := f.attempts.GetAttempt(ctx, p.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.WrongAttempts)
	assert.Empty(t, stored.GuessedIDs)
}

func TestRosterGameService_CompletesWhenAllGuessed(t *testing.T) {
	t.Parallel()
	f := newRosterFixture(t)
	ctx := context.Background()
	p := f.start(t)

	for _, g := range []string{"cassio", "Paulinho"} {
		out, err := f.svc.SubmitGuess(ctx, TestUserID, p.AttemptID, g)
		require.NoError(t, err)
		assert.Equal(t, domain.StatePlaying, out.Progress.State)
	}

	out, err := f.svc.SubmitGuess(ctx, TestUserID, p.AttemptID, "sheik")
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, domain.StateFinished, out.Progress.State)
	assert.Equal(t, domain.StatusCompleted, out.Progress.Finished.Status)
	assert.Equal(t, 100, out.Progress.Finished.RevealPercent)
	assert.Len(t, out.Progress.Finished.Roster, 3)

	_, err = f.svc.SubmitGuess(ctx, TestUserID, p.AttemptID, "Ronaldo")
	assert.True(t, domain.IsInvalidState(err))
	_, err = f.svc.Reset(ctx, TestUserID, p.AttemptID)
	assert.True(t, domain.IsInvalidState(err))
}

func TestRosterGameService_ResetKeepsRoster(t *testing.T) {
	t.Parallel()
	f := newRosterFixture(t)
	ctx := context.Background()
	p := f.start(t)

	_, err := f.svc.SubmitGuess(ctx, TestUserID, p.AttemptID, "Paulinho")
	require.NoError(t, err)
	_, err = f.svc.SubmitGuess(ctx, TestUserID, p.AttemptID, "Ronaldo")
	require.NoError(t, err)

	reset, err := f.svc.Reset(ctx, TestUserID, p.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, p.AttemptID, reset.AttemptID)
	assert.Equal(t, TestSlug, reset.ChallengeKey)
	assert.Equal(t, domain.StatePlaying, reset.State)
	assert.Empty(t, reset.Guesses)
	assert.Empty(t, reset.Playing.Revealed)

	stored, err := f.attempts.GetAttempt(ctx, p.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.WrongAttempts)
	assert.Empty(t, stored.GuessedIDs)
	assert.Equal(t, TestSlug, stored.ChallengeKey)
}

func TestRosterGameService_AbandonRevealsRoster(t *testing.T) {
	t.Parallel()
	f := newRosterFixture(t)
	ctx := context.Background()
	p := f.start(t)

	_, err := f.svc.SubmitGuess(ctx, TestUserID, p.AttemptID, "Paulinho")
	require.NoError(t, err)

	out, err := f.svc.Abandon(ctx, TestUserID, p.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateFinished, out.State)
	assert.Equal(t, domain.StatusAbandoned, out.Finished.Status)
	require.Len(t, out.Finished.Roster, 3)
	for _, e := range out.Finished.Roster {
		assert.Equal(t, e.PlayerID == 2, e.Guessed, e.Name)
	}

	_, err = f.svc.Abandon(ctx, TestUserID, p.AttemptID)
	assert.True(t, domain.IsInvalidState(err))
	_, err = f.svc.Reset(ctx, TestUserID, p.AttemptID)
	assert.True(t, domain.IsInvalidState(err))
}

func TestRosterGameService_Access(t *testing.T) {
	t.Parallel()
	f := newRosterFixture(t)
	ctx := context.Background()
	p := f.start(t)

	_, err := f.svc.SubmitGuess(ctx, TestOtherUser, p.AttemptID, "Cássio")
	assert.True(t, domain.IsForbidden(err))
	_, err = f.svc.Abandon(ctx, TestOtherUser, p.AttemptID)
	assert.True(t, domain.IsForbidden(err))
	_, err = f.svc.Get(ctx, TestOtherUser, p.AttemptID)
	assert.True(t, domain.IsForbidden(err))

	daily := domain.NewAttempt(TestUserID, domain.ModeDaily, TestDateKey, testNow)
	_, _, err = f.attempts.CreateAttempt(ctx, daily)
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, TestUserID, daily.ID)
	assert.True(t, domain.IsNotFound(err))
	_, err = f.svc.Reset(ctx, TestUserID, daily.ID)
	assert.True(t, domain.IsNotFound(err))

	got, err := f.svc.Get(ctx, TestUserID, p.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, p.AttemptID, got.AttemptID)
}

func TestRosterGameService_PunctuationOnlyCostsNothing(t *testing.T) {
	t.Parallel()
	f := newRosterFixture(t)
	ctx := context.Background()
	p := f.start(t)

	_, err := f.svc.SubmitGuess(ctx, TestUserID, p.AttemptID, "---")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))

	stored, err := f.attempts.GetAttempt(ctx, p.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.WrongAttempts)
	assert.Empty(t, stored.Guesses)
	assert.Empty(t, stored.GuessedIDs)
	assert.Equal(t, 0, f.attempts.writes)
}

func TestRosterGameService_LoadsRosterOutsideLock(t *testing.T) {
	t.Parallel()
	f := newRosterFixture(t)
	ctx := context.Background()

	store := &lockAwareStore{ChallengeStore: f.store, attempts: f.attempts}
	f.svc.challenges = NewChallengeSource(store, nil, false, discardLogger())
	p := f.start(t)

	for _, text := range []string{"Cássio", "Ronaldo", "Sheik"} {
		_, err := f.svc.SubmitGuess(ctx, TestUserID, p.AttemptID, text)
		require.NoError(t, err, text)
	}
	_, err := f.svc.Abandon(ctx, TestUserID, p.AttemptID)
	require.NoError(t, err)

	assert.Zero(t, store.lockedReads.Load())
	f.store.AssertCalled(t, "GetRosterChallenge", mock.Anything, TestSlug)
}
