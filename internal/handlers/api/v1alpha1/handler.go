// Package v1alpha1 exposes the orchestrator services over an HTTP JSON
// API. Routes are versioned under /v1alpha1.
package v1alpha1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/plaggbot/rpg-api/internal/catalog"
	"github.com/plaggbot/rpg-api/internal/errors"
	"github.com/plaggbot/rpg-api/internal/orchestrators/character"
	"github.com/plaggbot/rpg-api/internal/orchestrators/combat"
	"github.com/plaggbot/rpg-api/internal/orchestrators/shop"
	"github.com/plaggbot/rpg-api/internal/pkg/idgen"
)

// DefaultTurnDelay is how long after a player action the monster's
// counter-turn resolves, giving clients time to render the exchange.
const DefaultTurnDelay = 2 * time.Second

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CharacterService character.Service
	CombatService    combat.Service
	ShopService      shop.Service

	// TurnDelay overrides DefaultTurnDelay when positive. Negative
	// disables automatic monster turns entirely.
	TurnDelay time.Duration

	// RequestIDs defaults to a UUID generator when nil.
	RequestIDs idgen.Generator
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if c.CombatService == nil {
		vb.RequiredField("CombatService")
	}
	if c.ShopService == nil {
		vb.RequiredField("ShopService")
	}

	return vb.Build()
}

// Handler serves the versioned JSON API.
type Handler struct {
	characterService character.Service
	combatService    combat.Service
	shopService      shop.Service
	turnDelay        time.Duration
	requestIDs       idgen.Generator
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	delay := cfg.TurnDelay
	if delay == 0 {
		delay = DefaultTurnDelay
	}

	requestIDs := cfg.RequestIDs
	if requestIDs == nil {
		requestIDs = idgen.NewUUID("req")
	}

	return &Handler{
		characterService: cfg.CharacterService,
		combatService:    cfg.CombatService,
		shopService:      cfg.ShopService,
		turnDelay:        delay,
		requestIDs:       requestIDs,
	}, nil
}

// Register wires every route onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1alpha1/classes", h.listClasses)
	mux.HandleFunc("GET /v1alpha1/paths", h.listPaths)

	mux.HandleFunc("POST /v1alpha1/characters", h.createCharacter)
	mux.HandleFunc("GET /v1alpha1/characters/{player_id}", h.getCharacter)
	mux.HandleFunc("DELETE /v1alpha1/characters/{player_id}", h.deleteCharacter)
	mux.HandleFunc("POST /v1alpha1/characters/{player_id}/stats", h.allocateStatPoints)
	mux.HandleFunc("POST /v1alpha1/characters/{player_id}/path", h.choosePath)
	mux.HandleFunc("POST /v1alpha1/characters/{player_id}/equip", h.equip)
	mux.HandleFunc("POST /v1alpha1/characters/{player_id}/unequip", h.unequip)
	mux.HandleFunc("POST /v1alpha1/characters/{player_id}/items/use", h.useItem)

	mux.HandleFunc("GET /v1alpha1/leaderboards/{board}", h.topLeaderboard)
	mux.HandleFunc("GET /v1alpha1/leaderboards/{board}/players/{player_id}", h.leaderboardRank)

	mux.HandleFunc("POST /v1alpha1/combat/{player_id}/start", h.startCombat)
	mux.HandleFunc("GET /v1alpha1/combat/{player_id}", h.getCombat)
	mux.HandleFunc("POST /v1alpha1/combat/{player_id}/attack", h.attack)
	mux.HandleFunc("POST /v1alpha1/combat/{player_id}/items/use", h.useCombatItem)
	mux.HandleFunc("POST /v1alpha1/combat/{player_id}/flee", h.flee)
	mux.HandleFunc("POST /v1alpha1/combat/{player_id}/monster-turn", h.monsterTurn)

	mux.HandleFunc("GET /v1alpha1/shop/items", h.listShopItems)
	mux.HandleFunc("POST /v1alpha1/shop/{player_id}/buy", h.buy)
	mux.HandleFunc("POST /v1alpha1/shop/{player_id}/sell", h.sell)
	mux.HandleFunc("POST /v1alpha1/shop/{player_id}/grant", h.grantItem)
}

// RequestLogger tags each request with an ID, echoes it in the
// X-Request-ID header, and logs the request.
func (h *Handler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = h.requestIDs.Generate()
		}
		w.Header().Set("X-Request-ID", requestID)

		slog.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID)

		next.ServeHTTP(w, r)
	})
}

// scheduleMonsterTurn queues the monster's counter-turn after the
// configured delay. The session log carries the result; clients pick
// it up on their next fetch.
func (h *Handler) scheduleMonsterTurn(playerID string) {
	if h.turnDelay < 0 {
		return
	}
	time.AfterFunc(h.turnDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err := h.combatService.MonsterTurn(ctx, &combat.MonsterTurnInput{PlayerID: playerID})
		if err != nil && !errors.IsNotFound(err) &&
			errors.GetCode(err) != errors.CodeFailedPrecondition {
			slog.WarnContext(ctx, "scheduled monster turn failed",
				"player_id", playerID,
				"error", err.Error())
		}
	})
}

func (h *Handler) listClasses(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]any{"classes": catalog.Classes()})
}

func (h *Handler) listPaths(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]any{"paths": catalog.Paths()})
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("failed to encode response", "error", err.Error())
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	respond(w, code.HTTPStatus(), errorBody{Error: errorDetail{
		Code:    code,
		Message: err.Error(),
	}})
}

// decode reads a JSON request body. An empty body decodes into the
// zero value so bodyless POSTs work.
func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if err.Error() == "EOF" {
			return nil
		}
		return errors.InvalidArgumentf("invalid request body: %s", err.Error())
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
