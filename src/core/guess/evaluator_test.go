package guess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"palpitefc/src/core/domain"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "JOAO", want: "joao"},
		{name: "strips tilde", in: "João", want: "joao"},
		{name: "strips acute", in: "Cássio", want: "cassio"},
		{name: "strips cedilla", in: "Gonçalves", want: "goncalves"},
		{name: "collapses whitespace", in: "  JOÃO   Vitor \t", want: "joao vitor"},
		{name: "punctuation becomes space", in: "D'Alessandro", want: "d alessandro"},
		{name: "trailing dot", in: "Gabriel Barbosa.", want: "gabriel barbosa"},
		{name: "empty", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Levenshtein("pedro", "pedro"))
	assert.Equal(t, 3, Levenshtein("", "abc"))
	assert.Equal(t, 3, Levenshtein("abc", ""))
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
	assert.Equal(t, 1, Levenshtein("joao", "joão"))
	assert.Equal(t, Levenshtein("arrascaeta", "arascaeta"), Levenshtein("arascaeta", "arrascaeta"))
}

func TestEvaluator_EvaluateDaily(t *testing.T) {
	t.Parallel()

	target := domain.Player{ID: 9, Name: "Gabriel Barbosa", Aliases: []string{"Gabigol"}}
	e := NewEvaluator(DefaultPolicy())

	tests := []struct {
		name  string
		guess string
		want  domain.MatchTier
	}{
		{name: "exact full name", guess: "Gabriel Barbosa", want: domain.TierExact},
		{name: "exact ignoring case", guess: "gabriel barbosa", want: domain.TierExact},
		{name: "exact ignoring spacing", guess: "  GABRIEL   BARBOSA ", want: domain.TierExact},
		{name: "exact alias", guess: "gabigol", want: domain.TierExact},
		{name: "given name is close", guess: "Gabriel", want: domain.TierClose},
		{name: "surname with extra word is close", guess: "Barbosa FC", want: domain.TierClose},
		{name: "typo is close", guess: "Gabriel Barboza", want: domain.TierClose},
		{name: "unrelated is wrong", guess: "Pedro", want: domain.TierWrong},
		{name: "short token is wrong", guess: "ga", want: domain.TierWrong},
		{name: "empty is wrong", guess: "", want: domain.TierWrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.EvaluateDaily(tt.guess, target).Tier)
		})
	}
}

func TestEvaluator_EvaluateDaily_Diacritics(t *testing.T) {
	t.Parallel()

	target := domain.Player{ID: 1, Name: "João"}
	e := NewEvaluator(DefaultPolicy())

	for _, g := range []string{"joão", "JOAO", "Joao", "JOÃO"} {
		assert.Equal(t, domain.TierExact, e.EvaluateDaily(g, target).Tier, g)
	}
}

func TestEvaluator_EvaluateDaily_EditDistanceDisabled(t *testing.T) {
	t.Parallel()

	target := domain.Player{ID: 1, Name: "Arrascaeta"}
	e := NewEvaluator(Policy{MinTokenLength: 3, MaxEditDistance: 0})

	assert.Equal(t, domain.TierWrong, e.EvaluateDaily("Arascaeta", target).Tier)
	assert.Equal(t, domain.TierClose, NewEvaluator(DefaultPolicy()).EvaluateDaily("Arascaeta", target).Tier)
}

func TestEvaluator_EvaluateDaily_Deterministic(t *testing.T) {
	t.Parallel()

	target := domain.Player{ID: 1, Name: "Gabriel Barbosa"}
	e := NewEvaluator(DefaultPolicy())

	first := e.EvaluateDaily("Gabriel", target)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, e.EvaluateDaily("Gabriel", target))
	}
}

func TestEvaluator_EvaluateRoster(t *testing.T) {
	t.Parallel()

	roster := []domain.Player{
		{ID: 1, Name: "Cássio"},
		{ID: 2, Name: "Fágner"},
		{ID: 3, Name: "Yuri Alberto", Aliases: []string{"Yuri"}},
	}
	e := NewEvaluator(DefaultPolicy())

	tests := []struct {
		name    string
		guess   string
		guessed []int64
		want    domain.RosterVerdict
	}{
		{
			name:  "first match",
			guess: "Cássio",
			want:  domain.RosterVerdict{Matched: true, Reason: domain.ReasonMatched, PlayerID: 1},
		},
		{
			name:    "same name different spelling already guessed",
			guess:   "Cassio",
			guessed: []int64{1},
			want:    domain.RosterVerdict{Reason: domain.ReasonAlreadyGuessed, PlayerID: 1},
		},
		{
			name:    "other remaining player",
			guess:   "FAGNER",
			guessed: []int64{1},
			want:    domain.RosterVerdict{Matched: true, Reason: domain.ReasonMatched, PlayerID: 2},
		},
		{
			name:  "alias",
			guess: "yuri",
			want:  domain.RosterVerdict{Matched: true, Reason: domain.ReasonMatched, PlayerID: 3},
		},
		{
			name:  "no match",
			guess: "Ronaldo",
			want:  domain.RosterVerdict{Reason: domain.ReasonNoMatch},
		},
		{
			name:  "close is not a roster match",
			guess: "Alberto",
			want:  domain.RosterVerdict{Reason: domain.ReasonNoMatch},
		},
		{
			name:  "blank",
			guess: " ",
			want:  domain.RosterVerdict{Reason: domain.ReasonNoMatch},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.EvaluateRoster(tt.guess, roster, tt.guessed))
		})
	}
}

func TestEvaluator_EvaluateRoster_PrefersRemainingPlayer(t *testing.T) {
	t.Parallel()

	// Two players share a name; once the first is revealed the second one
	// must still be reachable.
	roster := []domain.Player{
		{ID: 10, Name: "Bruno Henrique"},
		{ID: 11, Name: "Bruno Henrique"},
	}
	e := NewEvaluator(DefaultPolicy())

	got := e.EvaluateRoster("bruno henrique", roster, []int64{10})
	assert.Equal(t, domain.RosterVerdict{Matched: true, Reason: domain.ReasonMatched, PlayerID: 11}, got)

	got = e.EvaluateRoster("bruno henrique", roster, []int64{10, 11})
	assert.Equal(t, domain.ReasonAlreadyGuessed, got.Reason)
	assert.False(t, got.Matched)
}
