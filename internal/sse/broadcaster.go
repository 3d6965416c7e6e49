package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/palaro/guessquiz/internal/dependencies/clock"
	"github.com/palaro/guessquiz/internal/model"
)

// Broadcaster turns game announcements into hub events.
type Broadcaster struct {
	logger *slog.Logger
	hub    *Hub
	clock  clock.Clock
}

func NewBroadcaster(logger *slog.Logger, hub *Hub, clk clock.Clock) *Broadcaster {
	return &Broadcaster{
		logger: logger,
		hub:    hub,
		clock:  clk,
	}
}

func (b *Broadcaster) GameStarted(puzzlesInPool int) {
	b.publish(model.EventGameStarted, map[string]int{"puzzles": puzzlesInPool})
}

func (b *Broadcaster) RoundOpened(puzzle model.Puzzle) {
	b.publish(model.EventRoundOpened, model.RoundOpenedPayload{
		ImageURL: "/api/v1/puzzle/image",
		Caption:  "Guess what's in the picture!",
	})
}

func (b *Broadcaster) HintIssued(hint model.Hint) {
	b.publish(model.EventHintIssued, model.HintIssuedPayload{
		Text:            hint.Text,
		HintsGiven:      hint.HintsGiven,
		MaxHints:        hint.MaxHints,
		PotentialPoints: hint.PotentialPoints,
	})
}

func (b *Broadcaster) RoundSolved(result model.RoundResult) {
	b.publish(model.EventRoundSolved, model.RoundSolvedPayload{
		Winner:             result.Winner,
		Answer:             result.Answer,
		Points:             result.Points,
		NewScore:           result.NewScore,
		Rank:               result.Rank,
		HintsUsed:          result.HintsUsed,
		PerfectScore:       result.PerfectScore,
		NextRoundInSeconds: result.NextRoundInSeconds,
	})
}

func (b *Broadcaster) GameOver(standings []model.LeaderboardEntry, reason string) {
	b.publish(model.EventGameOver, model.GameOverPayload{
		Standings: standings,
		Reason:    reason,
	})
}

func (b *Broadcaster) ScoresReset() {
	b.publish(model.EventScoresReset, nil)
}

// ParticipantJoined announces a new roster member. Called from the
// join handler rather than the game controller.
func (b *Broadcaster) ParticipantJoined(p model.Participant, totalPlayers int) {
	b.publish(model.EventParticipantJoined, model.ParticipantJoinedPayload{
		Username:     p.Username,
		DisplayName:  p.DisplayName,
		TotalPlayers: totalPlayers,
	})
}

func (b *Broadcaster) publish(eventType model.EventType, payload any) {
	event := model.Event{
		Type:      eventType,
		Timestamp: b.clock.Now(),
		Payload:   payload,
	}
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event",
			"type", eventType,
			"error", err)
		return
	}
	b.hub.Publish(data)
}
