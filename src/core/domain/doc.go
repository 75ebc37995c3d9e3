// Package domain contains the core domain model of the guessing games.
//
// This package defines:
//   - Entities: Player, DailyChallenge, RosterChallenge and Attempt
//   - The attempt state machine (attempt.go). PLAYING is the only state that
//     accepts mutation; WON, LOST, ABANDONED and COMPLETED are terminal.
//   - Progress snapshots handed to callers (progress.go)
//   - Domain errors (errors.go)
//
// Rules for this package:
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Time is always passed in, never read from the wall clock
//   - Verdicts come from package guess; this package only applies them
//
// Example:
//
//	a := domain.NewAttempt(userID, domain.ModeDaily, "2025-05-04", now)
//	v := evaluator.EvaluateDaily("gabigol", challenge.Target)
//	if err := a.ApplyDailyVerdict("gabigol", v, domain.DefaultRules(), now); err != nil {
//	    return err
//	}
//	snapshot := domain.NewDailyProgress(a, challenge, domain.DefaultRules())
package domain
