package v1alpha1

import (
	"net/http"

	"github.com/plaggbot/rpg-api/internal/orchestrators/combat"
)

func (h *Handler) startCombat(w http.ResponseWriter, r *http.Request) {
	out, err := h.combatService.Start(r.Context(), &combat.StartInput{
		PlayerID: r.PathValue("player_id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, out)
}

func (h *Handler) getCombat(w http.ResponseWriter, r *http.Request) {
	out, err := h.combatService.Get(r.Context(), &combat.GetInput{
		PlayerID: r.PathValue("player_id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

type attackRequest struct {
	SkillID string `json:"skill_id"`
}

func (h *Handler) attack(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("player_id")

	var req attackRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.combatService.Attack(r.Context(), &combat.AttackInput{
		PlayerID: playerID,
		SkillID:  req.SkillID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if out.Outcome == combat.OutcomeOngoing {
		h.scheduleMonsterTurn(playerID)
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) useCombatItem(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("player_id")

	var req itemIndexRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.combatService.UseItem(r.Context(), &combat.UseItemInput{
		PlayerID:  playerID,
		ItemIndex: req.ItemIndex,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.scheduleMonsterTurn(playerID)
	respond(w, http.StatusOK, out)
}

func (h *Handler) flee(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("player_id")

	out, err := h.combatService.Flee(r.Context(), &combat.FleeInput{
		PlayerID: playerID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if !out.Escaped {
		h.scheduleMonsterTurn(playerID)
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) monsterTurn(w http.ResponseWriter, r *http.Request) {
	out, err := h.combatService.MonsterTurn(r.Context(), &combat.MonsterTurnInput{
		PlayerID: r.PathValue("player_id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}
