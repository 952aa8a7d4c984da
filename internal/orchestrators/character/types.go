package character

import (
	"github.com/plaggbot/rpg-api/internal/engine"
	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/repositories/leaderboard"
)

// CreateInput defines the input for creating a character
type CreateInput struct {
	PlayerID string
	Class    entities.Class
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *entities.Character    `json:"character"`
	Stats     *engine.EffectiveStats `json:"stats"`
}

// GetInput defines the input for fetching a character
type GetInput struct {
	PlayerID string
}

// GetOutput defines the output for fetching a character
type GetOutput struct {
	Character *entities.Character    `json:"character"`
	Stats     *engine.EffectiveStats `json:"stats"`
}

// AllocateStatPointsInput defines the input for spending stat points
type AllocateStatPointsInput struct {
	PlayerID   string
	Allocation entities.BaseAttributes
}

// AllocateStatPointsOutput defines the output for spending stat points
type AllocateStatPointsOutput struct {
	Character *entities.Character    `json:"character"`
	Stats     *engine.EffectiveStats `json:"stats"`
}

// ChoosePathInput defines the input for the one-time path choice
type ChoosePathInput struct {
	PlayerID string
	Path     entities.Path
}

// ChoosePathOutput defines the output for the one-time path choice
type ChoosePathOutput struct {
	Character *entities.Character    `json:"character"`
	Stats     *engine.EffectiveStats `json:"stats"`
}

// EquipInput defines the input for equipping an inventory item
type EquipInput struct {
	PlayerID  string
	ItemIndex int
}

// EquipOutput defines the output for equipping an inventory item.
// Replaced is the item the swap returned to the inventory, if any.
type EquipOutput struct {
	Character *entities.Character    `json:"character"`
	Stats     *engine.EffectiveStats `json:"stats"`
	Replaced  *entities.Item         `json:"replaced,omitempty"`
}

// UnequipInput defines the input for clearing an equipment slot
type UnequipInput struct {
	PlayerID string
	Slot     entities.EquipSlot
}

// UnequipOutput defines the output for clearing an equipment slot
type UnequipOutput struct {
	Character *entities.Character    `json:"character"`
	Stats     *engine.EffectiveStats `json:"stats"`
}

// UseItemInput defines the input for consuming an item outside combat
type UseItemInput struct {
	PlayerID  string
	ItemIndex int
}

// UseItemOutput defines the output for consuming an item outside combat
type UseItemOutput struct {
	Character      *entities.Character `json:"character"`
	HealthRestored int                 `json:"health_restored"`
	ManaRestored   int                 `json:"mana_restored"`
}

// DeleteInput defines the input for wiping a character
type DeleteInput struct {
	PlayerID string
}

// DeleteOutput defines the output for wiping a character
type DeleteOutput struct{}

// TopInput defines the input for reading a leaderboard
type TopInput struct {
	Board leaderboard.Board
	Limit int
}

// TopOutput defines the output for reading a leaderboard
type TopOutput struct {
	Entries []leaderboard.Entry `json:"entries"`
}

// RankInput defines the input for one player's standing
type RankInput struct {
	Board    leaderboard.Board
	PlayerID string
}

// RankOutput defines the output for one player's standing
type RankOutput struct {
	Entry leaderboard.Entry `json:"entry"`
}
