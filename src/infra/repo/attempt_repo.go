package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"palpitefc/src/core/domain"
	"palpitefc/src/core/ports"
)

const attemptColumns = `id, user_id, mode, challenge_key, status, guesses, wrong_attempts, guessed_ids, created_at, updated_at, finished_at`

func scanAttempt(row pgx.Row) (*domain.Attempt, error) {
	var a domain.Attempt
	if err := row.Scan(
		&a.ID, &a.UserID, &a.Mode, &a.ChallengeKey, &a.Status, &a.Guesses,
		&a.WrongAttempts, &a.GuessedIDs, &a.CreatedAt, &a.UpdatedAt, &a.FinishedAt,
	); err != nil {
		return nil, err
	}
	if a.Guesses == nil {
		a.Guesses = []domain.Guess{}
	}
	if a.GuessedIDs == nil {
		a.GuessedIDs = []int64{}
	}
	return &a, nil
}

func (r *PostgresRepository) GetAttempt(ctx context.Context, attemptID uuid.UUID) (*domain.Attempt, error) {
	const q = `SELECT ` + attemptColumns + ` FROM attempts WHERE id = $1`
	a, err := scanAttempt(r.pool.QueryRow(ctx, q, attemptID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("attempt")
		}
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) FindAttempt(ctx context.Context, userID int64, mode domain.GameMode, challengeKey string) (*domain.Attempt, error) {
	const q = `
		SELECT ` + attemptColumns + `
		FROM attempts
		WHERE user_id = $1 AND mode = $2 AND challenge_key = $3
	`
	a, err := scanAttempt(r.pool.QueryRow(ctx, q, userID, mode, challengeKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("attempt")
		}
		return nil, err
	}
	return a, nil
}

// CreateAttempt relies on the (user_id, mode, challenge_key) constraint, so
// two concurrent starts end up sharing one row.
func (r *PostgresRepository) CreateAttempt(ctx context.Context, a *domain.Attempt) (*domain.Attempt, bool, error) {
	const q = `
		INSERT INTO attempts (` + attemptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, mode, challenge_key) DO NOTHING
		RETURNING ` + attemptColumns
	guesses, guessed := attemptLists(a)
	created, err := scanAttempt(r.pool.QueryRow(ctx, q,
		a.ID, a.UserID, a.Mode, a.ChallengeKey, a.Status, guesses,
		a.WrongAttempts, guessed, a.CreatedAt, a.UpdatedAt, a.FinishedAt,
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	existing, err := r.FindAttempt(ctx, a.UserID, a.Mode, a.ChallengeKey)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// UpdateAttempt holds a row lock for the duration of fn.
func (r *PostgresRepository) UpdateAttempt(ctx context.Context, attemptID uuid.UUID, fn ports.AttemptMutation) (*domain.Attempt, error) {
	var result *domain.Attempt
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		const selectQ = `SELECT ` + attemptColumns + ` FROM attempts WHERE id = $1 FOR UPDATE`
		a, err := scanAttempt(tx.QueryRow(ctx, selectQ, attemptID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NewNotFoundError("attempt")
			}
			return err
		}

		changed, err := fn(a)
		if err != nil {
			return err
		}
		if !changed {
			result = a
			return nil
		}

		const updateQ = `
			UPDATE attempts
			SET status = $2,
				guesses = $3,
				wrong_attempts = $4,
				guessed_ids = $5,
				updated_at = $6,
				finished_at = $7
			WHERE id = $1
			RETURNING ` + attemptColumns
		guesses, guessed := attemptLists(a)
		updated, err := scanAttempt(tx.QueryRow(ctx, updateQ,
			a.ID, a.Status, guesses, a.WrongAttempts, guessed, a.UpdatedAt, a.FinishedAt,
		))
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// attemptLists replaces nil slices, which pgx would write as NULL.
func attemptLists(a *domain.Attempt) ([]domain.Guess, []int64) {
	guesses := a.Guesses
	if guesses == nil {
		guesses = []domain.Guess{}
	}
	guessed := a.GuessedIDs
	if guessed == nil {
		guessed = []int64{}
	}
	return guesses, guessed
}
