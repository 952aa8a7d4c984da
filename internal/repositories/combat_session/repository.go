// Package combatsession provides persistence for live combat sessions.
// A player has at most one session at a time, so sessions are keyed by
// player ID.
package combatsession

//go:generate mockgen -destination=mock/mock_repository.go -package=combatsessionmock github.com/plaggbot/rpg-api/internal/repositories/combat_session Repository

import (
	"context"
	"time"

	"github.com/plaggbot/rpg-api/internal/entities"
)

// Repository stores combat sessions.
type Repository interface {
	// Create stores a new session.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the player already has a session
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves the player's active session.
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.NotFound if no session exists
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save overwrites an existing session.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if no session exists
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes the player's session.
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.NotFound if no session exists
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a session. TTL is
// optional; zero means the session persists until explicitly deleted.
type CreateInput struct {
	Session *entities.CombatSession
	TTL     time.Duration
}

// CreateOutput defines the output for creating a session
type CreateOutput struct {
	Session *entities.CombatSession
}

// GetInput defines the input for getting a session
type GetInput struct {
	PlayerID string
}

// GetOutput defines the output for getting a session
type GetOutput struct {
	Session *entities.CombatSession
}

// SaveInput defines the input for saving a session
type SaveInput struct {
	Session *entities.CombatSession
}

// SaveOutput defines the output for saving a session
type SaveOutput struct {
	Session *entities.CombatSession
}

// DeleteInput defines the input for deleting a session
type DeleteInput struct {
	PlayerID string
}

// DeleteOutput defines the output for deleting a session
type DeleteOutput struct{}
