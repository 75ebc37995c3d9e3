package guess

import (
	"palpitefc/src/core/domain"
)

// Policy holds the thresholds of the "close" feedback tier.
type Policy struct {
	// MinTokenLength is the shortest guess word that may count as a
	// surname/given-name hit. Shorter words ("de", "da") never do.
	MinTokenLength int

	// MaxEditDistance is the largest full-name edit distance still
	// reported as close. Zero disables the rule.
	MaxEditDistance int
}

// DefaultPolicy returns the production thresholds.
func DefaultPolicy() Policy {
	return Policy{
		MinTokenLength:  3,
		MaxEditDistance: 2,
	}
}

// Evaluator decides whether a guess names a player.
type Evaluator struct {
	policy Policy
}

// NewEvaluator creates an Evaluator with the given policy.
func NewEvaluator(policy Policy) *Evaluator {
	return &Evaluator{policy: policy}
}

// Policy returns the thresholds in use.
func (e *Evaluator) Policy() Policy {
	return e.policy
}

// names returns the normalized full name followed by normalized aliases.
func names(p domain.Player) []string {
	out := make([]string, 0, 1+len(p.Aliases))
	if n := Normalize(p.Name); n != "" {
		out = append(out, n)
	}
	for _, alias := range p.Aliases {
		if n := Normalize(alias); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// EvaluateDaily grades a guess against the player of the day.
// A close verdict is feedback only; it never wins the game.
func (e *Evaluator) EvaluateDaily(raw string, target domain.Player) domain.DailyVerdict {
	g := Normalize(raw)
	if g == "" {
		return domain.DailyVerdict{Tier: domain.TierWrong}
	}

	candidates := names(target)
	for _, n := range candidates {
		if g == n {
			return domain.DailyVerdict{Tier: domain.TierExact}
		}
	}
	if e.isClose(g, candidates) {
		return domain.DailyVerdict{Tier: domain.TierClose}
	}
	return domain.DailyVerdict{Tier: domain.TierWrong}
}

func (e *Evaluator) isClose(g string, candidates []string) bool {
	nameTokens := make(map[string]struct{})
	for _, n := range candidates {
		for _, tok := range Tokens(n) {
			nameTokens[tok] = struct{}{}
		}
	}
	for _, tok := range Tokens(g) {
		if len([]rune(tok)) < e.policy.MinTokenLength {
			continue
		}
		if _, ok := nameTokens[tok]; ok {
			return true
		}
	}

	if e.policy.MaxEditDistance <= 0 || len([]rune(g)) < e.policy.MinTokenLength {
		return false
	}
	for _, n := range candidates {
		if d := Levenshtein(g, n); d > 0 && d <= e.policy.MaxEditDistance {
			return true
		}
	}
	return false
}

// EvaluateRoster looks the guess up in the roster. Players not yet guessed
// are checked first, in roster order; a hit on an already revealed player
// reports already_guessed.
func (e *Evaluator) EvaluateRoster(raw string, roster []domain.Player, guessed []int64) domain.RosterVerdict {
	g := Normalize(raw)
	if g == "" {
		return domain.RosterVerdict{Reason: domain.ReasonNoMatch}
	}

	seen := make(map[int64]struct{}, len(guessed))
	for _, id := range guessed {
		seen[id] = struct{}{}
	}

	var alreadyID int64
	alreadyHit := false
	for _, p := range roster {
		if _, done := seen[p.ID]; done {
			if !alreadyHit && hit(g, p) {
				alreadyHit = true
				alreadyID = p.ID
			}
			continue
		}
		if hit(g, p) {
			return domain.RosterVerdict{Matched: true, Reason: domain.ReasonMatched, PlayerID: p.ID}
		}
	}
	if alreadyHit {
		return domain.RosterVerdict{Reason: domain.ReasonAlreadyGuessed, PlayerID: alreadyID}
	}
	return domain.RosterVerdict{Reason: domain.ReasonNoMatch}
}

func hit(g string, p domain.Player) bool {
	for _, n := range names(p) {
		if g == n {
			return true
		}
	}
	return false
}
