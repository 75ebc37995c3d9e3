// Package dto contains the request payloads of the HTTP API and the
// validation wiring for gin binding.
//
// Responses reuse the domain snapshot types (domain.Progress,
// domain.GuessOutcome), which carry their own JSON tags and never expose a
// hidden target.
package dto
