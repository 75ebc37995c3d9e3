package domain

import (
	"strconv"

	"github.com/google/uuid"
)

// ProgressState discriminates the Progress variants.
type ProgressState string

const (
	StatePlaying  ProgressState = "playing"
	StateFinished ProgressState = "finished"
)

// Progress is the public snapshot of an attempt. Exactly one of Playing and
// Finished is set, matching State. The answer only appears in Finished.
type Progress struct {
	AttemptID    uuid.UUID     `json:"attempt_id"`
	Mode         GameMode      `json:"mode"`
	ChallengeKey string        `json:"challenge_key"`
	State        ProgressState `json:"state"`
	Guesses      []Guess       `json:"guesses"`
	Playing      *PlayingView  `json:"playing,omitempty"`
	Finished     *FinishedView `json:"finished,omitempty"`
}

// PlayingView carries in-progress fields only.
type PlayingView struct {
	AttemptsUsed      int           `json:"attempts_used"`
	AttemptsRemaining int           `json:"attempts_remaining,omitempty"`
	RevealPercent     int           `json:"reveal_percent"`
	Hints             []Hint        `json:"hints,omitempty"`
	Revealed          []RosterEntry `json:"revealed,omitempty"`
	RosterSize        int           `json:"roster_size,omitempty"`
}

// FinishedView carries the terminal status and the revealed answer.
type FinishedView struct {
	Status        AttemptStatus `json:"status"`
	AttemptsUsed  int           `json:"attempts_used"`
	RevealPercent int           `json:"reveal_percent"`
	RevealName    string        `json:"reveal_name,omitempty"`
	RevealPhoto   string        `json:"reveal_photo,omitempty"`
	Roster        []RosterEntry `json:"roster,omitempty"`
}

// RosterEntry is one roster player as shown to the user.
type RosterEntry struct {
	PlayerID    int64  `json:"player_id"`
	Name        string `json:"name"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Position    string `json:"position,omitempty"`
	ShirtNumber int    `json:"shirt_number,omitempty"`
	Guessed     bool   `json:"guessed"`
}

// HintKind names a daily hint.
type HintKind string

const (
	HintPosition    HintKind = "position"
	HintShirtNumber HintKind = "shirt_number"
	HintInitial     HintKind = "initial"
)

// Hint is a piece of target information unlocked by wrong attempts.
type Hint struct {
	Kind  HintKind `json:"kind"`
	Value string   `json:"value"`
}

// GuessOutcome is returned by guess submission.
type GuessOutcome struct {
	Correct  bool         `json:"correct"`
	Tier     MatchTier    `json:"tier,omitempty"`
	Reason   RosterReason `json:"reason,omitempty"`
	PlayerID *int64       `json:"player_id,omitempty"`
	Progress *Progress    `json:"progress"`
}

// DailyHints returns the hints unlocked after wrong attempts.
func DailyHints(target Player, wrong int) []Hint {
	var hints []Hint
	if wrong >= HintPositionAfter && target.Position != "" {
		hints = append(hints, Hint{Kind: HintPosition, Value: target.Position})
	}
	if wrong >= HintShirtNumberAfter && target.ShirtNumber > 0 {
		hints = append(hints, Hint{Kind: HintShirtNumber, Value: strconv.Itoa(target.ShirtNumber)})
	}
	if wrong >= HintInitialAfter && target.Name != "" {
		hints = append(hints, Hint{Kind: HintInitial, Value: string([]rune(target.Name)[:1])})
	}
	return hints
}

func newProgress(a *Attempt) *Progress {
	guesses := make([]Guess, len(a.Guesses))
	copy(guesses, a.Guesses)
	return &Progress{
		AttemptID:    a.ID,
		Mode:         a.Mode,
		ChallengeKey: a.ChallengeKey,
		Guesses:      guesses,
	}
}

// NewDailyProgress builds the snapshot of a daily attempt.
func NewDailyProgress(a *Attempt, c *DailyChallenge, rules Rules) *Progress {
	p := newProgress(a)
	used := len(a.Guesses)

	if !a.Status.Terminal() {
		p.State = StatePlaying
		p.Playing = &PlayingView{
			AttemptsUsed:      used,
			AttemptsRemaining: rules.MaxWrongAttempts - a.WrongAttempts,
			RevealPercent:     rules.Reveal.Percent(a.WrongAttempts, rules.MaxWrongAttempts),
			Hints:             DailyHints(c.Target, a.WrongAttempts),
		}
		return p
	}

	p.State = StateFinished
	p.Finished = &FinishedView{
		Status:        a.Status,
		AttemptsUsed:  used,
		RevealPercent: 100,
		RevealName:    c.Target.Name,
		RevealPhoto:   c.Target.PhotoURL,
	}
	return p
}

// NewRosterProgress builds the snapshot of a roster attempt. Finished
// attempts list the whole roster; playing attempts only the guessed part.
func NewRosterProgress(a *Attempt, r *RosterChallenge) *Progress {
	p := newProgress(a)
	used := len(a.Guesses)

	entries := make([]RosterEntry, 0, r.Size())
	revealed := make([]RosterEntry, 0, len(a.GuessedIDs))
	for _, pl := range r.Players {
		e := RosterEntry{
			PlayerID:    pl.ID,
			Name:        pl.Name,
			PhotoURL:    pl.PhotoURL,
			Position:    pl.Position,
			ShirtNumber: pl.ShirtNumber,
			Guessed:     a.HasGuessed(pl.ID),
		}
		entries = append(entries, e)
		if e.Guessed {
			revealed = append(revealed, e)
		}
	}

	percent := 100
	if r.Size() > 0 {
		percent = len(a.GuessedIDs) * 100 / r.Size()
	}

	if !a.Status.Terminal() {
		p.State = StatePlaying
		p.Playing = &PlayingView{
			AttemptsUsed:  used,
			RevealPercent: percent,
			Revealed:      revealed,
			RosterSize:    r.Size(),
		}
		return p
	}

	p.State = StateFinished
	p.Finished = &FinishedView{
		Status:        a.Status,
		AttemptsUsed:  used,
		RevealPercent: 100,
		Roster:        entries,
	}
	return p
}
