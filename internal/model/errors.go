package model

import "errors"

// Common errors used across the application
var (
	// Participant errors
	ErrParticipantNotFound = errors.New("participant not found")

	// Game-state errors
	ErrNoActiveGame       = errors.New("no active game")
	ErrNoActivePuzzle     = errors.New("no active puzzle")
	ErrHintsExhausted     = errors.New("no more hints available")
	ErrNoPuzzlesRemaining = errors.New("no puzzles remaining")

	// Authorization errors
	ErrUnauthorized = errors.New("not authorized for this action")

	// Catalog errors
	ErrCatalogNotLoaded = errors.New("puzzle catalog not loaded")
)
