package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"palpitefc/src/core/domain"
)

const playerColumns = `id, name, photo_url, position, shirt_number, aliases, created_at`

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	if err := row.Scan(&p.ID, &p.Name, &p.PhotoURL, &p.Position, &p.ShirtNumber, &p.Aliases, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Players

func (r *PostgresRepository) CreatePlayer(ctx context.Context, p domain.Player) (*domain.Player, error) {
	const q = `
		INSERT INTO players (name, photo_url, position, shirt_number, aliases)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + playerColumns
	aliases := p.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return scanPlayer(r.pool.QueryRow(ctx, q, p.Name, p.PhotoURL, p.Position, p.ShirtNumber, aliases))
}

func (r *PostgresRepository) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	const q = `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	p, err := scanPlayer(r.pool.QueryRow(ctx, q, playerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("player")
		}
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	const q = `SELECT ` + playerColumns + ` FROM players ORDER BY id`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// Daily challenges

func (r *PostgresRepository) GetDailyChallenge(ctx context.Context, dateKey string) (*domain.DailyChallenge, error) {
	const q = `
		SELECT d.date_key, d.published_at,
			p.id, p.name, p.photo_url, p.position, p.shirt_number, p.aliases, p.created_at
		FROM daily_challenges d
		JOIN players p ON p.id = d.player_id
		WHERE d.date_key = $1
	`
	var c domain.DailyChallenge
	t := &c.Target
	if err := r.pool.QueryRow(ctx, q, dateKey).Scan(
		&c.DateKey, &c.PublishedAt,
		&t.ID, &t.Name, &t.PhotoURL, &t.Position, &t.ShirtNumber, &t.Aliases, &t.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("daily challenge")
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) PublishDailyChallenge(ctx context.Context, dateKey string, playerID int64) (*domain.DailyChallenge, error) {
	const q = `INSERT INTO daily_challenges (date_key, player_id) VALUES ($1, $2)`
	if _, err := r.pool.Exec(ctx, q, dateKey, playerID); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("daily challenge already published for " + dateKey)
		}
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFoundError("player")
		}
		return nil, err
	}
	return r.GetDailyChallenge(ctx, dateKey)
}

func (r *PostgresRepository) EnsureDailyChallenge(ctx context.Context, dateKey string, playerID int64) (*domain.DailyChallenge, error) {
	const q = `
		INSERT INTO daily_challenges (date_key, player_id)
		VALUES ($1, $2)
		ON CONFLICT (date_key) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, q, dateKey, playerID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewNotFoundError("player")
		}
		return nil, err
	}
	return r.GetDailyChallenge(ctx, dateKey)
}

// Roster challenges

func (r *PostgresRepository) GetRosterChallenge(ctx context.Context, slug string) (*domain.RosterChallenge, error) {
	const headerQ = `SELECT slug, title, created_at FROM roster_challenges WHERE slug = $1`
	var c domain.RosterChallenge
	if err := r.pool.QueryRow(ctx, headerQ, slug).Scan(&c.Slug, &c.Title, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("roster challenge")
		}
		return nil, err
	}

	const playersQ = `
		SELECT p.id, p.name, p.photo_url, p.position, p.shirt_number, p.aliases, p.created_at
		FROM roster_challenge_players rp
		JOIN players p ON p.id = rp.player_id
		WHERE rp.slug = $1
		ORDER BY rp.ordinal
	`
	rows, err := r.pool.Query(ctx, playersQ, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c.Players = []domain.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		c.Players = append(c.Players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) CreateRosterChallenge(ctx context.Context, slug, title string, playerIDs []int64) (*domain.RosterChallenge, error) {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO roster_challenges (slug, title) VALUES ($1, $2)`, slug, title); err != nil {
			if isUniqueViolation(err) {
				return domain.NewConflictError("roster challenge " + slug + " already exists")
			}
			return err
		}

		batch := &pgx.Batch{}
		for i, id := range playerIDs {
			batch.Queue(`INSERT INTO roster_challenge_players (slug, player_id, ordinal) VALUES ($1, $2, $3)`, slug, id, i)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			if isForeignKeyViolation(err) {
				return domain.NewNotFoundError("player")
			}
			if isUniqueViolation(err) {
				return domain.NewValidationError("player_ids", "player listed twice")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetRosterChallenge(ctx, slug)
}
