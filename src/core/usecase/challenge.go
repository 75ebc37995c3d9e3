package usecase

import (
	"context"
	"hash/fnv"
	"log/slog"

	"palpitefc/src/core/domain"
	"palpitefc/src/core/ports"
)

// ChallengeSource loads challenges through the cache. When autoPick is on,
// a date without a published target gets one chosen from the player pool.
type ChallengeSource struct {
	store    ports.ChallengeStore
	cache    ports.ChallengeCache
	autoPick bool
	log      *slog.Logger
}

func NewChallengeSource(store ports.ChallengeStore, cache ports.ChallengeCache, autoPick bool, log *slog.Logger) *ChallengeSource {
	return &ChallengeSource{store: store, cache: cache, autoPick: autoPick, log: log}
}

// Daily returns the challenge for dateKey.
func (s *ChallengeSource) Daily(ctx context.Context, dateKey string) (*domain.DailyChallenge, error) {
	if s.cache != nil {
		c, err := s.cache.GetDaily(ctx, dateKey)
		if err != nil {
			s.log.Warn("challenge cache read failed", "date_key", dateKey, "error", err)
		} else if c != nil {
			return c, nil
		}
	}

	c, err := s.store.GetDailyChallenge(ctx, dateKey)
	if err != nil {
		if !domain.IsNotFound(err) || !s.autoPick {
			return nil, err
		}
		c, err = s.pickDaily(ctx, dateKey)
		if err != nil {
			return nil, err
		}
	}

	s.remember(ctx, func(ctx context.Context) error { return s.cache.SetDaily(ctx, c) })
	return c, nil
}

func (s *ChallengeSource) pickDaily(ctx context.Context, dateKey string) (*domain.DailyChallenge, error) {
	pool, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, domain.NewNotFoundError("daily challenge " + dateKey)
	}

	target := PickDailyPlayer(dateKey, pool)
	c, err := s.store.EnsureDailyChallenge(ctx, dateKey, target.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("daily challenge auto-published", "date_key", dateKey, "player_id", c.Target.ID)
	return c, nil
}

// Roster returns the roster challenge for slug.
func (s *ChallengeSource) Roster(ctx context.Context, slug string) (*domain.RosterChallenge, error) {
	if s.cache != nil {
		c, err := s.cache.GetRoster(ctx, slug)
		if err != nil {
			s.log.Warn("challenge cache read failed", "slug", slug, "error", err)
		} else if c != nil {
			return c, nil
		}
	}

	c, err := s.store.GetRosterChallenge(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, func(ctx context.Context) error { return s.cache.SetRoster(ctx, c) })
	return c, nil
}

// remember writes to the cache; failures only cost a later cache miss.
func (s *ChallengeSource) remember(ctx context.Context, set func(context.Context) error) {
	if s.cache == nil {
		return
	}
	if err := set(ctx); err != nil {
		s.log.Warn("challenge cache write failed", "error", err)
	}
}

// PickDailyPlayer selects the target for dateKey from a pool ordered by id.
// The choice depends only on the key and the pool.
func PickDailyPlayer(dateKey string, pool []domain.Player) domain.Player {
	h := fnv.New32a()
	_, _ = h.Write([]byte(dateKey))
	return pool[int(h.Sum32()%uint32(len(pool)))]
}
