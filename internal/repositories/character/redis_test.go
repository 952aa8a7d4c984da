package character_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/errors"
	redisclient "github.com/plaggbot/rpg-api/internal/redis"
	"github.com/plaggbot/rpg-api/internal/repositories/character"
	"github.com/plaggbot/rpg-api/internal/testutils"
)

const testPlayerID = "player_456"

type RedisRepositoryTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	repo    character.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())
	s.ctx = context.Background()

	repo, err := character.NewRedis(&character.RedisConfig{
		Client: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) newCharacter() *entities.Character {
	return &entities.Character{
		PlayerID:      testPlayerID,
		Level:         1,
		XPToNextLevel: 100,
		Gold:          100,
		Class:         entities.ClassWarrior,
		Attributes: entities.BaseAttributes{
			Strength:     8,
			Intelligence: 3,
			Dexterity:    5,
			Vitality:     9,
		},
		MaxHealth:     140,
		CurrentHealth: 140,
		MaxMana:       40,
		CurrentMana:   40,
		Skills:        []string{"basic_attack"},
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	created, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.newCharacter()})
	s.Require().NoError(err)
	s.Equal(entities.CharacterSchemaVersion, created.Character.Version)
	s.NotZero(created.Character.CreatedAt)

	got, err := s.repo.Get(s.ctx, character.GetInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Equal(testPlayerID, got.Character.PlayerID)
	s.Equal(entities.ClassWarrior, got.Character.Class)
	s.Equal(140, got.Character.CurrentHealth)
	s.Equal([]string{"basic_attack"}, got.Character.Skills)
}

func (s *RedisRepositoryTestSuite) TestCreateRejectsSecondCharacter() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.newCharacter()})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: s.newCharacter()})
	s.Require().Error(err)
	s.Equal(errors.CodeAlreadyExists, errors.GetCode(err))
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))

	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: &entities.Character{}})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, character.GetInput{PlayerID: "nobody"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.newCharacter()})
	s.Require().NoError(err)

	char := s.newCharacter()
	char.Level = 5
	char.Gold = 640
	char.Stats.TotalVictories = 12

	_, err = s.repo.Update(s.ctx, character.UpdateInput{Character: char})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, character.GetInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Equal(5, got.Character.Level)
	s.Equal(640, got.Character.Gold)
	s.Equal(12, got.Character.Stats.TotalVictories)
}

func (s *RedisRepositoryTestSuite) TestUpdateNotFound() {
	_, err := s.repo.Update(s.ctx, character.UpdateInput{Character: s.newCharacter()})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: s.newCharacter()})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, character.DeleteInput{PlayerID: testPlayerID})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, character.GetInput{PlayerID: testPlayerID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDeleteNotFound() {
	_, err := s.repo.Delete(s.ctx, character.DeleteInput{PlayerID: "nobody"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
