package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/palaro/guessquiz/internal/dependencies/mocks"
	"github.com/palaro/guessquiz/internal/model"
	"github.com/palaro/guessquiz/internal/storage/memory"
	"github.com/palaro/guessquiz/internal/testutil"
)

type RosterTestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *mocks.MockClock
	service *Service
}

func TestRosterTestSuite(t *testing.T) {
	suite.Run(t, new(RosterTestSuite))
}

func (s *RosterTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = mocks.NewMockClock()
	s.service = NewService(testutil.NopLogger(), memory.New(), s.clock)
}

func (s *RosterTestSuite) TestJoin() {
	p, created, err := s.service.Join(s.ctx, "alice", "Alice A")
	s.Require().NoError(err)
	s.True(created)
	s.Equal(model.Username("alice"), p.Username)
	s.Equal("Alice A", p.DisplayName)
	s.Equal(0, p.Score)
	s.Equal(s.clock.Now(), p.JoinedAt)
}

func (s *RosterTestSuite) TestJoinIsIdempotent() {
	first, created, err := s.service.Join(s.ctx, "alice", "Alice A")
	s.Require().NoError(err)
	s.True(created)

	s.clock.Advance(time.Hour)
	again, created, err := s.service.Join(s.ctx, "alice", "Different Name")
	s.Require().NoError(err)
	s.False(created)
	// The original record wins, join date included
	s.Equal(first, again)

	stats, err := s.service.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, stats.TotalPlayers)
}

func (s *RosterTestSuite) TestJoinDefaultsDisplayName() {
	p, _, err := s.service.Join(s.ctx, "bob", "")
	s.Require().NoError(err)
	s.Equal("bob", p.DisplayName)
}

func (s *RosterTestSuite) TestGetMissingParticipant() {
	_, err := s.service.Get(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrParticipantNotFound)

	ok, err := s.service.IsParticipant(s.ctx, "ghost")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RosterTestSuite) TestAwardPoints() {
	s.mustJoin("alice", "bob", "carol")

	p, rank, err := s.service.AwardPoints(s.ctx, "bob", 5)
	s.Require().NoError(err)
	s.Equal(5, p.Score)
	s.Equal(1, rank)

	p, rank, err = s.service.AwardPoints(s.ctx, "alice", 3)
	s.Require().NoError(err)
	s.Equal(3, p.Score)
	s.Equal(2, rank)
}

func (s *RosterTestSuite) TestAwardPointsUnknownParticipant() {
	_, _, err := s.service.AwardPoints(s.ctx, "ghost", 5)
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *RosterTestSuite) TestLeaderboardOrdering() {
	s.mustJoin("alice", "bob", "carol", "dave")
	s.mustAward("bob", 10)
	s.mustAward("carol", 10)
	s.mustAward("dave", 3)

	entries, err := s.service.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 4)

	// Ties keep join order: bob joined before carol
	s.Equal(model.Username("bob"), entries[0].Participant.Username)
	s.Equal(1, entries[0].Rank)
	s.Equal(model.Username("carol"), entries[1].Participant.Username)
	s.Equal(2, entries[1].Rank)
	s.Equal(model.Username("dave"), entries[2].Participant.Username)
	s.Equal(model.Username("alice"), entries[3].Participant.Username)
}

func (s *RosterTestSuite) TestLeaderboardLimit() {
	s.mustJoin("alice", "bob", "carol")

	entries, err := s.service.Leaderboard(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *RosterTestSuite) TestStats() {
	s.mustJoin("alice", "bob", "carol")
	s.mustAward("alice", 7)
	s.mustAward("bob", 2)

	stats, err := s.service.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.RosterStats{
		TotalPlayers:  3,
		ActivePlayers: 2,
		HighestScore:  7,
	}, stats)
}

func (s *RosterTestSuite) TestResetAll() {
	s.mustJoin("alice", "bob")
	s.mustAward("alice", 5)

	s.Require().NoError(s.service.ResetAll(s.ctx))

	stats, err := s.service.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.RosterStats{}, stats)
}

func (s *RosterTestSuite) mustJoin(usernames ...model.Username) {
	for _, u := range usernames {
		_, _, err := s.service.Join(s.ctx, u, "")
		s.Require().NoError(err)
	}
}

func (s *RosterTestSuite) mustAward(username model.Username, points int) {
	_, _, err := s.service.AwardPoints(s.ctx, username, points)
	s.Require().NoError(err)
}
