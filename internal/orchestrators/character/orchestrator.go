// Package character implements the character orchestrator: creation,
// progression, equipment, and the leaderboard read surface.
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/plaggbot/rpg-api/internal/orchestrators/character Service

import (
	"context"
	"log/slog"

	"github.com/plaggbot/rpg-api/internal/catalog"
	"github.com/plaggbot/rpg-api/internal/engine"
	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/errors"
	"github.com/plaggbot/rpg-api/internal/pkg/clock"
	characterrepo "github.com/plaggbot/rpg-api/internal/repositories/character"
	combatsession "github.com/plaggbot/rpg-api/internal/repositories/combat_session"
	"github.com/plaggbot/rpg-api/internal/repositories/leaderboard"
)

// Starting kit for every new character.
const (
	startingGold             = 100
	startingMiraculousEnergy = 50
	startingHealthPotions    = 2
	startingStamina          = 100
)

// Service defines the interface for character operations
type Service interface {
	// Create rolls a fresh character for a player who has none.
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get returns the character together with derived combat stats.
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// AllocateStatPoints spends earned points on base attributes.
	AllocateStatPoints(ctx context.Context, input *AllocateStatPointsInput) (*AllocateStatPointsOutput, error)

	// ChoosePath makes the one-time path specialization choice.
	ChoosePath(ctx context.Context, input *ChoosePathInput) (*ChoosePathOutput, error)

	// Equip moves an inventory item into its equipment slot.
	Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error)

	// Unequip returns an equipped item to the inventory.
	Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error)

	// UseItem consumes an inventory item outside combat.
	UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error)

	// Delete wipes a character. Admin surface.
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)

	// Top returns the highest-ranked leaderboard entries.
	Top(ctx context.Context, input *TopInput) (*TopOutput, error)

	// Rank returns one player's standing on a board.
	Rank(ctx context.Context, input *RankInput) (*RankOutput, error)
}

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	SessionRepo   combatsession.Repository
	Leaderboard   leaderboard.Repository
	Engine        engine.Engine
	Catalog       *catalog.Catalog
	Clock         clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.Leaderboard == nil {
		vb.RequiredField("Leaderboard")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo characterrepo.Repository
	sessionRepo   combatsession.Repository
	leaderboard   leaderboard.Repository
	engine        engine.Engine
	catalog       *catalog.Catalog
	clock         clock.Clock
}

// NewOrchestrator creates a new character orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		sessionRepo:   cfg.SessionRepo,
		leaderboard:   cfg.Leaderboard,
		engine:        cfg.Engine,
		catalog:       cfg.Catalog,
		clock:         c,
	}, nil
}

func (o *orchestrator) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	info, err := catalog.ClassByID(input.Class)
	if err != nil {
		return nil, err
	}
	if info.Hidden {
		return nil, errors.InvalidArgumentf("%s is not a starting class", info.Name)
	}

	char := &entities.Character{
		PlayerID:         input.PlayerID,
		CreatedAt:        o.clock.Now().Unix(),
		Level:            1,
		XPToNextLevel:    o.engine.XPToNextLevel(1),
		Gold:             startingGold,
		MiraculousEnergy: startingMiraculousEnergy,
		Class:            info.Class,
		Attributes:       info.StartingAttributes,
		MaxStamina:       startingStamina,
		CurrentStamina:   startingStamina,
		Skills:           []string{"basic_attack"},
	}

	if err := o.grantStartingKit(char); err != nil {
		return nil, err
	}

	stats := o.engine.CalculateEffectiveStats(char)
	char.MaxHealth = stats.MaxHealth
	char.MaxMana = stats.MaxMana
	char.CurrentHealth = char.MaxHealth
	char.CurrentMana = char.MaxMana

	if _, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: char}); err != nil {
		return nil, err
	}
	o.updateLeaderboards(ctx, char)

	slog.InfoContext(ctx, "character created",
		"player_id", char.PlayerID,
		"class", char.Class)

	return &CreateOutput{Character: char, Stats: stats}, nil
}

// grantStartingKit fills the starting inventory and class extras.
func (o *orchestrator) grantStartingKit(char *entities.Character) error {
	grant := func(itemID string, quantity int) error {
		item, err := o.catalog.Item(itemID)
		if err != nil {
			return errors.Wrapf(err, "granting starting item %s", itemID)
		}
		for i := 0; i < quantity; i++ {
			char.Inventory = append(char.Inventory, *item.Clone())
		}
		return nil
	}

	if err := grant("health_potion", startingHealthPotions); err != nil {
		return err
	}

	switch char.Class {
	case entities.ClassMage:
		char.Skills = append(char.Skills, "fireball")
		return grant("mana_potion", 1)
	case entities.ClassWarrior:
		return grant("wooden_sword", 1)
	default:
		return nil
	}
}

func (o *orchestrator) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}

	return &GetOutput{
		Character: out.Character,
		Stats:     o.engine.CalculateEffectiveStats(out.Character),
	}, nil
}

func (o *orchestrator) AllocateStatPoints(ctx context.Context, input *AllocateStatPointsInput) (*AllocateStatPointsOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	alloc := input.Allocation
	if alloc.Strength < 0 || alloc.Intelligence < 0 || alloc.Dexterity < 0 || alloc.Vitality < 0 {
		return nil, errors.InvalidArgument("allocations cannot be negative")
	}
	total := alloc.Total()
	if total == 0 {
		return nil, errors.InvalidArgument("no points allocated")
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	char := out.Character

	if total > char.StatPointsAvailable {
		return nil, errors.FailedPreconditionf("not enough stat points: have %d, need %d",
			char.StatPointsAvailable, total)
	}

	char.Attributes = char.Attributes.Add(alloc)
	char.StatPointsAvailable -= total

	stats := o.refreshPools(char)
	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, err
	}

	return &AllocateStatPointsOutput{Character: char, Stats: stats}, nil
}

func (o *orchestrator) ChoosePath(ctx context.Context, input *ChoosePathInput) (*ChoosePathOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	info, err := catalog.PathByID(input.Path)
	if err != nil {
		return nil, err
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	char := out.Character

	if char.Level < engine.PathUnlockLevel {
		return nil, errors.FailedPreconditionf("paths unlock at level %d", engine.PathUnlockLevel)
	}
	if char.Path != entities.PathNone {
		return nil, errors.FailedPrecondition("you have already chosen a path")
	}

	char.Path = info.Path

	stats := o.refreshPools(char)
	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "path chosen",
		"player_id", char.PlayerID,
		"path", char.Path)

	return &ChoosePathOutput{Character: char, Stats: stats}, nil
}

func (o *orchestrator) Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	char := out.Character

	if input.ItemIndex < 0 || input.ItemIndex >= len(char.Inventory) {
		return nil, errors.InvalidArgumentf("no item at inventory slot %d", input.ItemIndex)
	}
	item := char.Inventory[input.ItemIndex]

	slot, ok := entities.EquipSlotFor(item.Type)
	if !ok {
		return nil, errors.InvalidArgumentf("%s cannot be equipped", item.Name)
	}
	if item.RequiredLevel > char.Level {
		return nil, errors.FailedPreconditionf("%s requires level %d", item.Name, item.RequiredLevel)
	}

	char.Inventory = append(char.Inventory[:input.ItemIndex], char.Inventory[input.ItemIndex+1:]...)

	slotRef := char.Equipment.Slot(slot)
	replaced := *slotRef
	if replaced != nil {
		char.Inventory = append(char.Inventory, *replaced)
	}
	*slotRef = &item

	stats := o.refreshPools(char)
	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, err
	}

	return &EquipOutput{Character: char, Stats: stats, Replaced: replaced}, nil
}

func (o *orchestrator) Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	char := out.Character

	slotRef := char.Equipment.Slot(input.Slot)
	if slotRef == nil {
		return nil, errors.InvalidArgumentf("unknown equipment slot %q", input.Slot)
	}
	if *slotRef == nil {
		return nil, errors.FailedPreconditionf("nothing equipped in the %s slot", input.Slot)
	}

	char.Inventory = append(char.Inventory, **slotRef)
	*slotRef = nil

	stats := o.refreshPools(char)
	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, err
	}

	return &UnequipOutput{Character: char, Stats: stats}, nil
}

func (o *orchestrator) UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	char := out.Character

	if input.ItemIndex < 0 || input.ItemIndex >= len(char.Inventory) {
		return nil, errors.InvalidArgumentf("no item at inventory slot %d", input.ItemIndex)
	}
	item := char.Inventory[input.ItemIndex]
	if !item.Usable() {
		return nil, errors.InvalidArgumentf("%s cannot be consumed", item.Name)
	}

	healed, restored := applyConsumable(char, item.Effect)
	if healed == 0 && restored == 0 {
		return nil, errors.FailedPrecondition("nothing to restore, health and mana are full")
	}

	char.Inventory = append(char.Inventory[:input.ItemIndex], char.Inventory[input.ItemIndex+1:]...)

	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, err
	}

	return &UseItemOutput{
		Character:      char,
		HealthRestored: healed,
		ManaRestored:   restored,
	}, nil
}

func (o *orchestrator) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{PlayerID: input.PlayerID}); err != nil {
		return nil, err
	}

	// Orphaned fight state and standings go with the character.
	if _, err := o.sessionRepo.Delete(ctx, combatsession.DeleteInput{PlayerID: input.PlayerID}); err != nil && !errors.IsNotFound(err) {
		slog.WarnContext(ctx, "failed to delete combat session",
			"player_id", input.PlayerID,
			"error", err.Error())
	}
	if _, err := o.leaderboard.Remove(ctx, leaderboard.RemoveInput{PlayerID: input.PlayerID}); err != nil {
		slog.WarnContext(ctx, "failed to remove leaderboard entries",
			"player_id", input.PlayerID,
			"error", err.Error())
	}

	slog.InfoContext(ctx, "character deleted", "player_id", input.PlayerID)

	return &DeleteOutput{}, nil
}

func (o *orchestrator) Top(ctx context.Context, input *TopInput) (*TopOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.leaderboard.Top(ctx, leaderboard.TopInput{Board: input.Board, Limit: input.Limit})
	if err != nil {
		return nil, err
	}
	return &TopOutput{Entries: out.Entries}, nil
}

func (o *orchestrator) Rank(ctx context.Context, input *RankInput) (*RankOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.leaderboard.Rank(ctx, leaderboard.RankInput{Board: input.Board, PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	return &RankOutput{Entry: out.Entry}, nil
}

// refreshPools recomputes max pools after attribute or equipment
// changes and clamps the current values into range.
func (o *orchestrator) refreshPools(char *entities.Character) *engine.EffectiveStats {
	stats := o.engine.CalculateEffectiveStats(char)
	char.MaxHealth = stats.MaxHealth
	char.MaxMana = stats.MaxMana
	char.ClampResources()
	return stats
}

func (o *orchestrator) updateLeaderboards(ctx context.Context, char *entities.Character) {
	_, err := o.leaderboard.SetScores(ctx, leaderboard.SetScoresInput{
		PlayerID: char.PlayerID,
		Scores: leaderboard.Scores{
			Level:          char.Level,
			Gold:           char.Gold,
			Victories:      char.Stats.TotalVictories,
			MonstersKilled: char.Stats.MonstersKilled,
		},
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to update leaderboards",
			"player_id", char.PlayerID,
			"error", err.Error())
	}
}

func applyConsumable(char *entities.Character, effect *entities.ConsumableEffect) (healed, restored int) {
	if effect == nil {
		return 0, 0
	}
	if effect.HealAmount > 0 {
		healed = effect.HealAmount
		if headroom := char.MaxHealth - char.CurrentHealth; healed > headroom {
			healed = headroom
		}
		char.CurrentHealth += healed
	}
	if effect.ManaAmount > 0 {
		restored = effect.ManaAmount
		if headroom := char.MaxMana - char.CurrentMana; restored > headroom {
			restored = headroom
		}
		char.CurrentMana += restored
	}
	return healed, restored
}
