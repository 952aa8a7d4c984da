package v1alpha1

import (
	"net/http"

	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/orchestrators/shop"
)

func (h *Handler) listShopItems(w http.ResponseWriter, r *http.Request) {
	out, err := h.shopService.ListCatalog(r.Context(), &shop.ListCatalogInput{
		Type:     entities.ItemType(r.URL.Query().Get("type")),
		Rarity:   entities.Rarity(r.URL.Query().Get("rarity")),
		MinLevel: queryInt(r, "min_level", 0),
		MaxLevel: queryInt(r, "max_level", 0),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

type buyRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) buy(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.shopService.Buy(r.Context(), &shop.BuyInput{
		PlayerID: r.PathValue("player_id"),
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

type sellRequest struct {
	ItemIndex int `json:"item_index"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) sell(w http.ResponseWriter, r *http.Request) {
	var req sellRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.shopService.Sell(r.Context(), &shop.SellInput{
		PlayerID:  r.PathValue("player_id"),
		ItemIndex: req.ItemIndex,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}

func (h *Handler) grantItem(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	out, err := h.shopService.GrantItem(r.Context(), &shop.GrantItemInput{
		PlayerID: r.PathValue("player_id"),
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, out)
}
