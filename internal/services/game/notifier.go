package game

import "github.com/palaro/guessquiz/internal/model"

// Notifier receives game announcements for broadcast to the chat.
// A nil Notifier is valid and drops all announcements.
type Notifier interface {
	GameStarted(puzzlesInPool int)
	RoundOpened(puzzle model.Puzzle)
	HintIssued(hint model.Hint)
	RoundSolved(result model.RoundResult)
	GameOver(standings []model.LeaderboardEntry, reason string)
	ScoresReset()
}
