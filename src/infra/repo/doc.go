// Package repo contains the PostgreSQL implementation of the game stores.
//
// PostgresRepository implements ports.GameRepository: players and
// challenges live in challenge_repo.go, attempts in attempt_repo.go.
// Attempt updates run under a row lock so concurrent guesses on one
// attempt are applied one after the other.
package repo
