package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"palpitefc/src/core/domain"
	"palpitefc/src/core/ports"
)

// CatalogService manages players and publishes challenges.
type CatalogService struct {
	store ports.ChallengeStore
	log   *slog.Logger
}

func NewCatalogService(store ports.ChallengeStore, log *slog.Logger) *CatalogService {
	return &CatalogService{store: store, log: log}
}

// CreatePlayer adds a player to the pool.
func (s *CatalogService) CreatePlayer(ctx context.Context, p domain.Player) (*domain.Player, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, domain.NewValidationError("name", "cannot be empty")
	}
	if p.ShirtNumber < 0 || p.ShirtNumber > 99 {
		return nil, domain.NewValidationError("shirt_number", "must be between 0 and 99")
	}
	aliases := make([]string, 0, len(p.Aliases))
	for _, a := range p.Aliases {
		if a = strings.TrimSpace(a); a != "" {
			aliases = append(aliases, a)
		}
	}
	p.Aliases = aliases

	created, err := s.store.CreatePlayer(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info("player created", "player_id", created.ID, "name", created.Name)
	return created, nil
}

// ListPlayers returns the player pool.
func (s *CatalogService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	return s.store.ListPlayers(ctx)
}

// PublishDaily fixes the player of the day for dateKey.
func (s *CatalogService) PublishDaily(ctx context.Context, dateKey string, playerID int64) (*domain.DailyChallenge, error) {
	if err := domain.ValidateDateKey(dateKey); err != nil {
		return nil, err
	}
	if _, err := s.store.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	c, err := s.store.PublishDailyChallenge(ctx, dateKey, playerID)
	if err != nil {
		return nil, err
	}
	s.log.Info("daily challenge published", "date_key", dateKey, "player_id", playerID)
	return c, nil
}

// CreateRoster publishes a roster challenge. Player order is kept.
func (s *CatalogService) CreateRoster(ctx context.Context, slug, title string, playerIDs []int64) (*domain.RosterChallenge, error) {
	if err := domain.ValidateSlug(slug); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewValidationError("title", "cannot be empty")
	}
	if len(playerIDs) == 0 {
		return nil, domain.NewValidationError("player_ids", "roster needs at least one player")
	}
	seen := make(map[int64]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if _, dup := seen[id]; dup {
			return nil, domain.NewValidationError("player_ids", fmt.Sprintf("player %d listed twice", id))
		}
		seen[id] = struct{}{}
		if _, err := s.store.GetPlayer(ctx, id); err != nil {
			return nil, err
		}
	}

	r, err := s.store.CreateRosterChallenge(ctx, slug, title, playerIDs)
	if err != nil {
		return nil, err
	}
	s.log.Info("roster challenge created", "slug", slug, "players", len(playerIDs))
	return r, nil
}
