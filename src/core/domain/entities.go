package domain

import (
	"time"

	"github.com/google/uuid"
)

// GameMode distinguishes the two guessing games.
type GameMode string

const (
	// ModeDaily is the single "player of the day" game.
	ModeDaily GameMode = "DAILY"
	// ModeRoster is the "guess the whole elenco" game.
	ModeRoster GameMode = "ROSTER"
)

// Valid reports whether m is a known game mode.
func (m GameMode) Valid() bool {
	return m == ModeDaily || m == ModeRoster
}

// AttemptStatus represents the lifecycle of an attempt.
type AttemptStatus string

const (
	StatusPlaying   AttemptStatus = "PLAYING"
	StatusWon       AttemptStatus = "WON"
	StatusLost      AttemptStatus = "LOST"
	StatusAbandoned AttemptStatus = "ABANDONED"
	StatusCompleted AttemptStatus = "COMPLETED"
)

// Terminal reports whether the status no longer accepts mutation.
func (s AttemptStatus) Terminal() bool {
	return s != StatusPlaying
}

// Player is a squad member that can be the target of a challenge.
type Player struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Position    string    `json:"position,omitempty"`
	ShirtNumber int       `json:"shirt_number,omitempty"`
	Aliases     []string  `json:"aliases,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DailyChallenge is the player of the day. Every user sees the same target
// for a given date key.
type DailyChallenge struct {
	DateKey     string    `json:"date_key"`
	Target      Player    `json:"target"`
	PublishedAt time.Time `json:"published_at"`
}

// RosterChallenge is a named set of players to be guessed one by one.
type RosterChallenge struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Players   []Player  `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

// Size returns the number of players in the roster.
func (r *RosterChallenge) Size() int {
	return len(r.Players)
}

// Contains reports whether the player belongs to the roster.
func (r *RosterChallenge) Contains(playerID int64) bool {
	for _, p := range r.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// Guess is one entry of an attempt's history. Text is kept as typed by the
// user; normalization is only used for comparison.
type Guess struct {
	Text     string    `json:"text"`
	Correct  bool      `json:"correct"`
	Tier     MatchTier `json:"tier,omitempty"`
	PlayerID *int64    `json:"player_id,omitempty"`
	At       time.Time `json:"at"`
}

// Attempt is one user's progress against one challenge.
// (UserID, Mode, ChallengeKey) identifies it.
type Attempt struct {
	ID            uuid.UUID
	UserID        int64
	Mode          GameMode
	ChallengeKey  string
	Status        AttemptStatus
	Guesses       []Guess
	WrongAttempts int
	GuessedIDs    []int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	FinishedAt    *time.Time
}

// HasGuessed reports whether the roster entry was already revealed.
func (a *Attempt) HasGuessed(playerID int64) bool {
	for _, id := range a.GuessedIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// MatchTier is the evaluator's verdict for a single-target guess.
type MatchTier string

const (
	TierExact MatchTier = "EXACT"
	TierClose MatchTier = "CLOSE"
	TierWrong MatchTier = "WRONG"
)

// RosterReason explains a roster verdict.
type RosterReason string

const (
	ReasonMatched        RosterReason = "matched"
	ReasonAlreadyGuessed RosterReason = "already_guessed"
	ReasonNoMatch        RosterReason = "no_match"
)

// DailyVerdict is produced by the evaluator for the daily game.
type DailyVerdict struct {
	Tier MatchTier
}

// RosterVerdict is produced by the evaluator for the roster game.
// PlayerID is set for matched and already_guessed verdicts.
type RosterVerdict struct {
	Matched  bool
	Reason   RosterReason
	PlayerID int64
}
