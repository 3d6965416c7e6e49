package model

import (
	"path/filepath"
	"strings"
)

// Puzzle is a single image puzzle from the catalog.
type Puzzle struct {
	// ImageRef is the image file name under the images directory
	ImageRef string `json:"image"`
}

// Answer derives the expected answer from the image reference:
// the file name without its extension, lower-cased for comparison.
func (p Puzzle) Answer() string {
	name := strings.TrimSuffix(p.ImageRef, filepath.Ext(p.ImageRef))
	return strings.ToLower(name)
}

// Matches reports whether the submitted text is the correct answer.
// Comparison trims surrounding whitespace and is case-insensitive.
func (p Puzzle) Matches(text string) bool {
	return strings.ToLower(strings.TrimSpace(text)) == p.Answer()
}

// Hint is a single hint issued for the current round.
type Hint struct {
	// Index is the 0-based hint index this hint was generated from
	Index int
	Text  string

	// HintsGiven counts hints issued this round, including this one
	HintsGiven int
	MaxHints   int
	Remaining  int

	// PotentialPoints is the award a correct answer would now earn
	PotentialPoints int
}

// RoundResult records the outcome of a solved round.
type RoundResult struct {
	Winner       Username
	DisplayName  string
	Answer       string
	Points       int
	NewScore     int
	Rank         int
	HintsUsed    int
	PerfectScore bool

	// NextRoundInSeconds is the auto-advance countdown announced to the chat
	NextRoundInSeconds int
}
