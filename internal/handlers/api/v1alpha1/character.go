package v1alpha1

import (
	"net/http"

	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/orchestrators/character"
	"github.com/plaggbot/rpg-api/internal/repositories/leaderboard"
)

type createCharacterRequest struct {
	PlayerID string `json:"player_id"`
	Class    string `json:"class"`
}

func (h *Handler) createCharacter(w http.ResponseWriter, r *http.Request) {
	var req createCharacterRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.characterService.Create(r.Context(), &character.CreateInput{
		PlayerID: req.PlayerID,
		Class:    entities.Class(req.Class),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, out)
}

func (h *Handler) getCharacter(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.Get(r.Context(), &character.GetInput{
		PlayerID: r.PathValue("player_id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

func (h *Handler) deleteCharacter(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.Delete(r.Context(), &character.DeleteInput{
		PlayerID: r.PathValue("player_id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

type allocateStatPointsRequest struct {
	Strength     int `json:"strength"`
	Intelligence int `json:"intelligence"`
	Dexterity    int `json:"dexterity"`
	Vitality     int `json:"vitality"`
}

func (h *Handler) allocateStatPoints(w http.ResponseWriter, r *http.Request) {
	var req allocateStatPointsRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.characterService.AllocateStatPoints(r.Context(), &character.AllocateStatPointsInput{
		PlayerID: r.PathValue("player_id"),
		Allocation: entities.BaseAttributes{
			Strength:     req.Strength,
			Intelligence: req.Intelligence,
			Dexterity:    req.Dexterity,
			Vitality:     req.Vitality,
		},
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

type choosePathRequest struct {
	Path string `json:"path"`
}

func (h *Handler) choosePath(w http.ResponseWriter, r *http.Request) {
	var req choosePathRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.characterService.ChoosePath(r.Context(), &character.ChoosePathInput{
		PlayerID: r.PathValue("player_id"),
		Path:     entities.Path(req.Path),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

type itemIndexRequest struct {
	ItemIndex int `json:"item_index"`
}

func (h *Handler) equip(w http.ResponseWriter, r *http.Request) {
	var req itemIndexRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.characterService.Equip(r.Context(), &character.EquipInput{
		PlayerID:  r.PathValue("player_id"),
		ItemIndex: req.ItemIndex,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

type unequipRequest struct {
	Slot string `json:"slot"`
}

func (h *Handler) unequip(w http.ResponseWriter, r *http.Request) {
	var req unequipRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.characterService.Unequip(r.Context(), &character.UnequipInput{
		PlayerID: r.PathValue("player_id"),
		Slot:     entities.EquipSlot(req.Slot),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

func (h *Handler) useItem(w http.ResponseWriter, r *http.Request) {
	var req itemIndexRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.characterService.UseItem(r.Context(), &character.UseItemInput{
		PlayerID:  r.PathValue("player_id"),
		ItemIndex: req.ItemIndex,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

func (h *Handler) topLeaderboard(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.Top(r.Context(), &character.TopInput{
		Board: leaderboard.Board(r.PathValue("board")),
		Limit: queryInt(r, "limit", 10),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

func (h *Handler) leaderboardRank(w http.ResponseWriter, r *http.Request) {
	out, err := h.characterService.Rank(r.Context(), &character.RankInput{
		Board:    leaderboard.Board(r.PathValue("board")),
		PlayerID: r.PathValue("player_id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}
