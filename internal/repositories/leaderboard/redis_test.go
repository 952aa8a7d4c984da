package leaderboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/plaggbot/rpg-api/internal/errors"
	redisclient "github.com/plaggbot/rpg-api/internal/redis"
	"github.com/plaggbot/rpg-api/internal/repositories/leaderboard"
	"github.com/plaggbot/rpg-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	repo    leaderboard.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())
	s.ctx = context.Background()

	repo, err := leaderboard.NewRedis(&leaderboard.RedisConfig{
		Client: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) seedStandings() {
	for _, row := range []struct {
		playerID string
		scores   leaderboard.Scores
	}{
		{"alice", leaderboard.Scores{Level: 12, Gold: 300, Victories: 40, MonstersKilled: 55}},
		{"bob", leaderboard.Scores{Level: 8, Gold: 900, Victories: 22, MonstersKilled: 30}},
		{"carol", leaderboard.Scores{Level: 15, Gold: 120, Victories: 61, MonstersKilled: 80}},
	} {
		_, err := s.repo.SetScores(s.ctx, leaderboard.SetScoresInput{
			PlayerID: row.playerID,
			Scores:   row.scores,
		})
		s.Require().NoError(err)
	}
}

func (s *RedisRepositoryTestSuite) TestTopOrdersByScore() {
	s.seedStandings()

	out, err := s.repo.Top(s.ctx, leaderboard.TopInput{Board: leaderboard.BoardLevel, Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 3)

	s.Equal("carol", out.Entries[0].PlayerID)
	s.Equal(15, out.Entries[0].Score)
	s.Equal(1, out.Entries[0].Rank)
	s.Equal("alice", out.Entries[1].PlayerID)
	s.Equal("bob", out.Entries[2].PlayerID)
}

func (s *RedisRepositoryTestSuite) TestTopHonorsLimit() {
	s.seedStandings()

	out, err := s.repo.Top(s.ctx, leaderboard.TopInput{Board: leaderboard.BoardGold, Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 1)
	s.Equal("bob", out.Entries[0].PlayerID)
}

func (s *RedisRepositoryTestSuite) TestTopValidation() {
	_, err := s.repo.Top(s.ctx, leaderboard.TopInput{Board: "cheese", Limit: 5})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))

	_, err = s.repo.Top(s.ctx, leaderboard.TopInput{Board: leaderboard.BoardLevel, Limit: 0})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *RedisRepositoryTestSuite) TestSetScoresOverwrites() {
	s.seedStandings()

	_, err := s.repo.SetScores(s.ctx, leaderboard.SetScoresInput{
		PlayerID: "bob",
		Scores:   leaderboard.Scores{Level: 20, Gold: 900, Victories: 22, MonstersKilled: 30},
	})
	s.Require().NoError(err)

	out, err := s.repo.Rank(s.ctx, leaderboard.RankInput{Board: leaderboard.BoardLevel, PlayerID: "bob"})
	s.Require().NoError(err)
	s.Equal(1, out.Entry.Rank)
	s.Equal(20, out.Entry.Score)
}

func (s *RedisRepositoryTestSuite) TestRankNotFound() {
	s.seedStandings()

	_, err := s.repo.Rank(s.ctx, leaderboard.RankInput{Board: leaderboard.BoardLevel, PlayerID: "nobody"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestRemoveDropsAllBoards() {
	s.seedStandings()

	_, err := s.repo.Remove(s.ctx, leaderboard.RemoveInput{PlayerID: "alice"})
	s.Require().NoError(err)

	for _, board := range leaderboard.Boards {
		_, err := s.repo.Rank(s.ctx, leaderboard.RankInput{Board: board, PlayerID: "alice"})
		s.Require().Error(err)
		s.True(errors.IsNotFound(err))
	}
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
