package v1alpha1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/plaggbot/rpg-api/internal/catalog"
	"github.com/plaggbot/rpg-api/internal/engine"
	v1alpha1 "github.com/plaggbot/rpg-api/internal/handlers/api/v1alpha1"
	"github.com/plaggbot/rpg-api/internal/orchestrators/character"
	"github.com/plaggbot/rpg-api/internal/orchestrators/combat"
	"github.com/plaggbot/rpg-api/internal/orchestrators/shop"
	characterrepo "github.com/plaggbot/rpg-api/internal/repositories/character"
	combatsession "github.com/plaggbot/rpg-api/internal/repositories/combat_session"
	"github.com/plaggbot/rpg-api/internal/repositories/leaderboard"
	"github.com/plaggbot/rpg-api/internal/testutils"
)

const testPlayerID = "player_123"

// sequenceRoller replays scripted rolls, then returns 100.
type sequenceRoller struct {
	rolls []int
}

func (r *sequenceRoller) Roll(_ int) (int, error) {
	if len(r.rolls) == 0 {
		return 100, nil
	}
	roll := r.rolls[0]
	r.rolls = r.rolls[1:]
	return roll, nil
}

func (r *sequenceRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(0)
	}
	return out, nil
}

type HandlerTestSuite struct {
	suite.Suite
	cleanup func()
	roller  *sequenceRoller
	mux     http.Handler
	ctx     context.Context
}

func (s *HandlerTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	charRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	sessionRepo, err := combatsession.NewRedis(&combatsession.Config{Client: client})
	s.Require().NoError(err)
	boards, err := leaderboard.NewRedis(&leaderboard.RedisConfig{Client: client})
	s.Require().NoError(err)

	s.roller = &sequenceRoller{}
	calc, err := engine.NewCalculator(&engine.CalculatorConfig{DiceRoller: s.roller})
	s.Require().NoError(err)

	content, err := catalog.New()
	s.Require().NoError(err)

	characterService, err := character.NewOrchestrator(&character.Config{
		CharacterRepo: charRepo,
		SessionRepo:   sessionRepo,
		Leaderboard:   boards,
		Engine:        calc,
		Catalog:       content,
	})
	s.Require().NoError(err)

	combatService, err := combat.NewOrchestrator(&combat.Config{
		CharacterRepo: charRepo,
		SessionRepo:   sessionRepo,
		Leaderboard:   boards,
		Engine:        calc,
		Catalog:       content,
		DiceRoller:    s.roller,
	})
	s.Require().NoError(err)

	shopService, err := shop.NewOrchestrator(&shop.Config{
		CharacterRepo: charRepo,
		Catalog:       content,
	})
	s.Require().NoError(err)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		CharacterService: characterService,
		CombatService:    combatService,
		ShopService:      shopService,
		// Monster turns are driven explicitly in tests.
		TurnDelay: -1,
	})
	s.Require().NoError(err)

	mux := http.NewServeMux()
	handler.Register(mux)
	s.mux = handler.RequestLogger(mux)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decodeBody(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func (s *HandlerTestSuite) createWarrior() {
	rec := s.do(http.MethodPost, "/v1alpha1/characters", map[string]string{
		"player_id": testPlayerID,
		"class":     "warrior",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)
}

func (s *HandlerTestSuite) TestRequestIDHeader() {
	rec := s.do(http.MethodGet, "/v1alpha1/classes", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.NotEmpty(rec.Header().Get("X-Request-ID"))
	s.Contains(rec.Header().Get("X-Request-ID"), "req_")
}

func (s *HandlerTestSuite) TestListClasses() {
	rec := s.do(http.MethodGet, "/v1alpha1/classes", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Classes []struct {
			Class  string `json:"class"`
			Hidden bool   `json:"hidden"`
		} `json:"classes"`
	}
	s.decodeBody(rec, &body)
	s.Len(body.Classes, 7)
}

func (s *HandlerTestSuite) TestCreateCharacter() {
	rec := s.do(http.MethodPost, "/v1alpha1/characters", map[string]string{
		"player_id": testPlayerID,
		"class":     "warrior",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var body struct {
		Character struct {
			PlayerID  string `json:"player_id"`
			Level     int    `json:"level"`
			Gold      int    `json:"gold"`
			MaxHealth int    `json:"max_health"`
		} `json:"character"`
		Stats struct {
			Attack int `json:"attack"`
		} `json:"stats"`
	}
	s.decodeBody(rec, &body)
	s.Equal(testPlayerID, body.Character.PlayerID)
	s.Equal(1, body.Character.Level)
	s.Equal(100, body.Character.Gold)
	s.Equal(140, body.Character.MaxHealth)
	s.Equal(19, body.Stats.Attack)
}

func (s *HandlerTestSuite) TestCreateCharacterConflict() {
	s.createWarrior()

	rec := s.do(http.MethodPost, "/v1alpha1/characters", map[string]string{
		"player_id": testPlayerID,
		"class":     "mage",
	})
	s.Equal(http.StatusConflict, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decodeBody(rec, &body)
	s.Equal("ALREADY_EXISTS", body.Error.Code)
}

func (s *HandlerTestSuite) TestGetCharacterNotFound() {
	rec := s.do(http.MethodGet, "/v1alpha1/characters/nobody", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerTestSuite) TestCreateCharacterRejectsBadClass() {
	rec := s.do(http.MethodPost, "/v1alpha1/characters", map[string]string{
		"player_id": testPlayerID,
		"class":     "bard",
	})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestCombatFlow() {
	s.createWarrior()

	rec := s.do(http.MethodPost, "/v1alpha1/combat/"+testPlayerID+"/start", nil)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var started struct {
		Session struct {
			Monster struct {
				ID     string `json:"id"`
				Health int    `json:"health"`
			} `json:"monster"`
			PlayerTurn bool `json:"player_turn"`
		} `json:"session"`
	}
	s.decodeBody(rec, &started)
	s.Equal("goblin", started.Session.Monster.ID)
	s.True(started.Session.PlayerTurn)

	// Basic attack, no crit, neutral variance: 15 damage.
	s.roller.rolls = []int{100, 16}
	rec = s.do(http.MethodPost, "/v1alpha1/combat/"+testPlayerID+"/attack", map[string]string{})
	s.Require().Equal(http.StatusOK, rec.Code)

	var attacked struct {
		Damage  int    `json:"damage"`
		Outcome string `json:"outcome"`
		Session struct {
			Monster struct {
				Health int `json:"health"`
			} `json:"monster"`
			PlayerTurn bool `json:"player_turn"`
		} `json:"session"`
	}
	s.decodeBody(rec, &attacked)
	s.Equal(15, attacked.Damage)
	s.Equal("ongoing", attacked.Outcome)
	s.Equal(30, attacked.Session.Monster.Health)
	s.False(attacked.Session.PlayerTurn)

	// Goblin counter: 5 damage.
	s.roller.rolls = []int{100, 16}
	rec = s.do(http.MethodPost, "/v1alpha1/combat/"+testPlayerID+"/monster-turn", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var countered struct {
		Damage    int    `json:"damage"`
		SkillName string `json:"skill_name"`
		Session   struct {
			PlayerTurn bool `json:"player_turn"`
		} `json:"session"`
	}
	s.decodeBody(rec, &countered)
	s.Equal(5, countered.Damage)
	s.Equal("Club Smash", countered.SkillName)
	s.True(countered.Session.PlayerTurn)
}

func (s *HandlerTestSuite) TestAttackWithoutFight() {
	s.createWarrior()

	rec := s.do(http.MethodPost, "/v1alpha1/combat/"+testPlayerID+"/attack", map[string]string{})
	s.Equal(http.StatusPreconditionFailed, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decodeBody(rec, &body)
	s.Equal("FAILED_PRECONDITION", body.Error.Code)
}

func (s *HandlerTestSuite) TestMonsterTurnDuringPlayerTurn() {
	s.createWarrior()
	rec := s.do(http.MethodPost, "/v1alpha1/combat/"+testPlayerID+"/start", nil)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/v1alpha1/combat/"+testPlayerID+"/monster-turn", nil)
	s.Equal(http.StatusPreconditionFailed, rec.Code)
}

func (s *HandlerTestSuite) TestShopBuy() {
	s.createWarrior()

	rec := s.do(http.MethodPost, "/v1alpha1/shop/"+testPlayerID+"/buy", map[string]any{
		"item_id":  "health_potion",
		"quantity": 2,
	})
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		GoldSpent int `json:"gold_spent"`
		Character struct {
			Gold int `json:"gold"`
		} `json:"character"`
	}
	s.decodeBody(rec, &body)
	s.Equal(60, body.GoldSpent)
	s.Equal(40, body.Character.Gold)
}

func (s *HandlerTestSuite) TestShopListFilters() {
	rec := s.do(http.MethodGet, "/v1alpha1/shop/items?type=consumable", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Items []struct {
			Type string `json:"type"`
		} `json:"items"`
	}
	s.decodeBody(rec, &body)
	s.NotEmpty(body.Items)
	for _, item := range body.Items {
		s.Equal("consumable", item.Type)
	}
}

func (s *HandlerTestSuite) TestLeaderboard() {
	s.createWarrior()

	rec := s.do(http.MethodGet, "/v1alpha1/leaderboards/level?limit=5", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Entries []struct {
			PlayerID string `json:"player_id"`
			Score    int    `json:"score"`
			Rank     int    `json:"rank"`
		} `json:"entries"`
	}
	s.decodeBody(rec, &body)
	s.Require().Len(body.Entries, 1)
	s.Equal(testPlayerID, body.Entries[0].PlayerID)
	s.Equal(1, body.Entries[0].Rank)
}

func (s *HandlerTestSuite) TestLeaderboardUnknownBoard() {
	rec := s.do(http.MethodGet, "/v1alpha1/leaderboards/cheese", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
