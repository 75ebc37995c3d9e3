package domain

import (
	"fmt"
	"strings"
)

// RevealPolicy maps wrong attempts to the photo reveal percentage.
// Every policy is non-decreasing in wrong attempts and capped at 100.
type RevealPolicy string

const (
	// RevealLinear grows by 100/max per wrong attempt.
	RevealLinear RevealPolicy = "linear"
	// RevealStepped grows in quarters.
	RevealStepped RevealPolicy = "stepped"
)

// ParseRevealPolicy parses a policy name, case-insensitively.
func ParseRevealPolicy(s string) (RevealPolicy, error) {
	switch p := RevealPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case RevealLinear, RevealStepped:
		return p, nil
	default:
		return "", fmt.Errorf("unknown reveal policy %q", s)
	}
}

// Percent returns the reveal percentage after wrong of max wrong attempts.
func (p RevealPolicy) Percent(wrong, max int) int {
	if max <= 0 || wrong >= max {
		return 100
	}
	if wrong <= 0 {
		return 0
	}
	linear := wrong * 100 / max
	if p == RevealStepped {
		return linear / 25 * 25
	}
	return linear
}
