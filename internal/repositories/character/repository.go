// Package character provides persistence for player characters.
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/plaggbot/rpg-api/internal/repositories/character Repository

import (
	"context"

	"github.com/plaggbot/rpg-api/internal/entities"
)

// Repository stores one character per player, keyed by player ID.
type Repository interface {
	// Create stores a new character.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the player already has a character
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by player ID.
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.NotFound if the player has no character
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update overwrites an existing character.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the player has no character
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a character by player ID.
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.NotFound if the player has no character
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *entities.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *entities.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	PlayerID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// UpdateInput defines the input for updating a character
type UpdateInput struct {
	Character *entities.Character
}

// UpdateOutput defines the output for updating a character
type UpdateOutput struct {
	Character *entities.Character
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	PlayerID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct{}
