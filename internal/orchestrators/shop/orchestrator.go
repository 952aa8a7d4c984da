// Package shop implements the shop orchestrator: catalog browsing,
// purchases, sales, and admin item grants.
package shop

//go:generate mockgen -destination=mock/mock_service.go -package=shopmock github.com/plaggbot/rpg-api/internal/orchestrators/shop Service

import (
	"context"
	"log/slog"

	"github.com/plaggbot/rpg-api/internal/catalog"
	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/errors"
	characterrepo "github.com/plaggbot/rpg-api/internal/repositories/character"
)

// Service defines the interface for shop operations
type Service interface {
	// ListCatalog returns catalog items matching the filters.
	ListCatalog(ctx context.Context, input *ListCatalogInput) (*ListCatalogOutput, error)

	// Buy purchases copies of a catalog item with gold.
	Buy(ctx context.Context, input *BuyInput) (*BuyOutput, error)

	// Sell trades inventory items for their sell price.
	Sell(ctx context.Context, input *SellInput) (*SellOutput, error)

	// GrantItem places catalog items in an inventory. Admin surface.
	GrantItem(ctx context.Context, input *GrantItemInput) (*GrantItemOutput, error)
}

// Config holds the dependencies for the shop orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	Catalog       *catalog.Catalog
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo characterrepo.Repository
	catalog       *catalog.Catalog
}

// NewOrchestrator creates a new shop orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		catalog:       cfg.Catalog,
	}, nil
}

func (o *orchestrator) ListCatalog(_ context.Context, input *ListCatalogInput) (*ListCatalogOutput, error) {
	if input == nil {
		input = &ListCatalogInput{}
	}

	var items []*entities.Item
	for _, item := range o.catalog.Items() {
		if input.Type != "" && item.Type != input.Type {
			continue
		}
		if input.Rarity != "" && item.Rarity != input.Rarity {
			continue
		}
		if item.RequiredLevel < input.MinLevel {
			continue
		}
		if input.MaxLevel > 0 && item.RequiredLevel > input.MaxLevel {
			continue
		}
		items = append(items, item)
	}

	return &ListCatalogOutput{Items: items}, nil
}

func (o *orchestrator) Buy(ctx context.Context, input *BuyInput) (*BuyOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, errors.InvalidArgument("quantity cannot be negative")
	}

	item, err := o.catalog.Item(input.ItemID)
	if err != nil {
		return nil, err
	}
	if item.BuyPrice <= 0 {
		return nil, errors.FailedPreconditionf("%s is not for sale", item.Name)
	}

	charOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	char := charOut.Character

	if item.RequiredLevel > char.Level {
		return nil, errors.FailedPreconditionf("%s requires level %d", item.Name, item.RequiredLevel)
	}

	cost := item.BuyPrice * quantity
	if cost > char.Gold {
		return nil, errors.FailedPreconditionf("not enough gold: need %d, have %d", cost, char.Gold)
	}

	char.Gold -= cost
	for i := 0; i < quantity; i++ {
		char.Inventory = append(char.Inventory, *item.Clone())
	}

	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "shop purchase",
		"player_id", char.PlayerID,
		"item_id", item.ID,
		"quantity", quantity,
		"gold_spent", cost)

	return &BuyOutput{
		Character: char,
		Item:      item,
		Quantity:  quantity,
		GoldSpent: cost,
	}, nil
}

func (o *orchestrator) Sell(ctx context.Context, input *SellInput) (*SellOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, errors.InvalidArgument("quantity cannot be negative")
	}

	charOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	char := charOut.Character

	if input.ItemIndex < 0 || input.ItemIndex >= len(char.Inventory) {
		return nil, errors.InvalidArgumentf("no item at inventory slot %d", input.ItemIndex)
	}
	sold := char.Inventory[input.ItemIndex].Clone()

	owned := 0
	for i := range char.Inventory {
		if char.Inventory[i].ID == sold.ID {
			owned++
		}
	}
	if owned < quantity {
		return nil, errors.FailedPreconditionf("you only have %d of %s", owned, sold.Name)
	}

	// Remove quantity copies, the addressed one first.
	remaining := quantity
	kept := char.Inventory[:0]
	for i := range char.Inventory {
		if remaining > 0 && char.Inventory[i].ID == sold.ID {
			remaining--
			continue
		}
		kept = append(kept, char.Inventory[i])
	}
	char.Inventory = kept

	earned := sold.SellPrice * quantity
	char.Gold += earned

	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "shop sale",
		"player_id", char.PlayerID,
		"item_id", sold.ID,
		"quantity", quantity,
		"gold_earned", earned)

	return &SellOutput{
		Character:  char,
		Item:       sold,
		Quantity:   quantity,
		GoldEarned: earned,
	}, nil
}

func (o *orchestrator) GrantItem(ctx context.Context, input *GrantItemInput) (*GrantItemOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, errors.InvalidArgument("quantity cannot be negative")
	}

	item, err := o.catalog.Item(input.ItemID)
	if err != nil {
		return nil, err
	}

	charOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	char := charOut.Character

	for i := 0; i < quantity; i++ {
		char.Inventory = append(char.Inventory, *item.Clone())
	}

	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "item granted",
		"player_id", char.PlayerID,
		"item_id", item.ID,
		"quantity", quantity)

	return &GrantItemOutput{
		Character: char,
		Item:      item,
		Quantity:  quantity,
	}, nil
}
