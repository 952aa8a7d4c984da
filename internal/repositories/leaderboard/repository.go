// Package leaderboard provides ranked player standings backed by
// sorted sets. Scores are refreshed whenever a character is persisted
// after a gameplay action.
package leaderboard

//go:generate mockgen -destination=mock/mock_repository.go -package=leaderboardmock github.com/plaggbot/rpg-api/internal/repositories/leaderboard Repository

import (
	"context"
)

// Board identifies one ranking dimension.
type Board string

const (
	BoardLevel          Board = "level"
	BoardGold           Board = "gold"
	BoardVictories      Board = "victories"
	BoardMonstersKilled Board = "monsters_killed"
)

// Boards lists every ranking dimension.
var Boards = []Board{BoardLevel, BoardGold, BoardVictories, BoardMonstersKilled}

// Valid reports whether b names a known board.
func (b Board) Valid() bool {
	for _, known := range Boards {
		if b == known {
			return true
		}
	}
	return false
}

// Scores holds a player's current standing on every board.
type Scores struct {
	Level          int
	Gold           int
	Victories      int
	MonstersKilled int
}

// Entry is one row of a leaderboard listing.
type Entry struct {
	PlayerID string `json:"player_id"`
	Score    int    `json:"score"`
	// Rank is 1-based.
	Rank int `json:"rank"`
}

// Repository stores leaderboard standings.
type Repository interface {
	// SetScores records a player's standing on every board.
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.Internal for storage failures
	SetScores(ctx context.Context, input SetScoresInput) (*SetScoresOutput, error)

	// Top lists the highest-ranked players on one board.
	// Returns errors.InvalidArgument for unknown boards or non-positive limits
	// Returns errors.Internal for storage failures
	Top(ctx context.Context, input TopInput) (*TopOutput, error)

	// Rank reports one player's standing on one board.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the player is not on the board
	// Returns errors.Internal for storage failures
	Rank(ctx context.Context, input RankInput) (*RankOutput, error)

	// Remove drops a player from every board.
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.Internal for storage failures
	Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error)
}

// SetScoresInput defines the input for recording standings
type SetScoresInput struct {
	PlayerID string
	Scores   Scores
}

// SetScoresOutput defines the output for recording standings
type SetScoresOutput struct{}

// TopInput defines the input for listing a board
type TopInput struct {
	Board Board
	Limit int
}

// TopOutput defines the output for listing a board
type TopOutput struct {
	Entries []Entry
}

// RankInput defines the input for a single player's standing
type RankInput struct {
	Board    Board
	PlayerID string
}

// RankOutput defines the output for a single player's standing
type RankOutput struct {
	Entry Entry
}

// RemoveInput defines the input for removing a player
type RemoveInput struct {
	PlayerID string
}

// RemoveOutput defines the output for removing a player
type RemoveOutput struct{}
