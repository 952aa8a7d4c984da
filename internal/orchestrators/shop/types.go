package shop

import (
	"github.com/plaggbot/rpg-api/internal/entities"
)

// ListCatalogInput filters the catalog listing. Zero values mean no
// filter; MaxLevel 0 means no upper bound.
type ListCatalogInput struct {
	Type     entities.ItemType
	Rarity   entities.Rarity
	MinLevel int
	MaxLevel int
}

// ListCatalogOutput defines the output for listing the catalog
type ListCatalogOutput struct {
	Items []*entities.Item `json:"items"`
}

// BuyInput defines the input for purchasing items
type BuyInput struct {
	PlayerID string
	ItemID   string
	Quantity int
}

// BuyOutput defines the output for purchasing items
type BuyOutput struct {
	Character *entities.Character `json:"character"`
	Item      *entities.Item      `json:"item"`
	Quantity  int                 `json:"quantity"`
	GoldSpent int                 `json:"gold_spent"`
}

// SellInput defines the input for selling an inventory item
type SellInput struct {
	PlayerID  string
	ItemIndex int
	Quantity  int
}

// SellOutput defines the output for selling an inventory item
type SellOutput struct {
	Character  *entities.Character `json:"character"`
	Item       *entities.Item      `json:"item"`
	Quantity   int                 `json:"quantity"`
	GoldEarned int                 `json:"gold_earned"`
}

// GrantItemInput defines the input for an admin item grant
type GrantItemInput struct {
	PlayerID string
	ItemID   string
	Quantity int
}

// GrantItemOutput defines the output for an admin item grant
type GrantItemOutput struct {
	Character *entities.Character `json:"character"`
	Item      *entities.Item      `json:"item"`
	Quantity  int                 `json:"quantity"`
}
