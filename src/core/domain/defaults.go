package domain

// DefaultMaxWrongAttempts is the number of wrong guesses after which the
// daily game is lost.
const DefaultMaxWrongAttempts = 10

// MaxGuessLength bounds the free-text guess, in runes.
const MaxGuessLength = 80

// Wrong-attempt counts at which daily hints unlock.
const (
	HintPositionAfter    = 3
	HintShirtNumberAfter = 6
	HintInitialAfter     = 8
)

// DateKeyLayout is the layout of daily challenge keys.
const DateKeyLayout = "2006-01-02"
