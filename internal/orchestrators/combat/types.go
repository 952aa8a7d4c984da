package combat

import (
	"github.com/plaggbot/rpg-api/internal/entities"
)

// Outcome is the terminal state of a fight, or ongoing.
type Outcome string

const (
	OutcomeOngoing Outcome = "ongoing"
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeFled    Outcome = "fled"
)

// MonsterView is the monster state the presentation layer renders.
type MonsterView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Level       int              `json:"level"`
	Health      int              `json:"health"`
	MaxHealth   int              `json:"max_health"`
	Element     entities.Element `json:"element"`
	Weakness    entities.Element `json:"weakness"`
	BreakBar    int              `json:"break_bar"`
	MaxBreakBar int              `json:"max_break_bar"`
	Stunned     bool             `json:"stunned"`
}

// PlayerView is the player-side resource state during a fight.
type PlayerView struct {
	PlayerID      string `json:"player_id"`
	Level         int    `json:"level"`
	CurrentHealth int    `json:"current_health"`
	MaxHealth     int    `json:"max_health"`
	CurrentMana   int    `json:"current_mana"`
	MaxMana       int    `json:"max_mana"`
}

// SessionView is a render-ready snapshot of a fight.
type SessionView struct {
	Player     PlayerView  `json:"player"`
	Monster    MonsterView `json:"monster"`
	PlayerTurn bool        `json:"player_turn"`
	TurnCount  int         `json:"turn_count"`
	LastAction string      `json:"last_action,omitempty"`
	Log        []string    `json:"log,omitempty"`
}

// DropView is one item granted by a victory.
type DropView struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// RewardView is the payout reported after a victory.
type RewardView struct {
	XP    int        `json:"xp"`
	Gold  int        `json:"gold"`
	Drops []DropView `json:"drops,omitempty"`

	LevelsGained     int `json:"levels_gained,omitempty"`
	StatPointsGained int `json:"stat_points_gained,omitempty"`
}

// StartInput defines the input for starting a fight
type StartInput struct {
	PlayerID string
}

// StartOutput defines the output for starting a fight
type StartOutput struct {
	Session *SessionView `json:"session"`
}

// AttackInput defines the input for a player attack. An empty SkillID
// means the basic attack.
type AttackInput struct {
	PlayerID string
	SkillID  string
}

// AttackOutput defines the output for a player attack
type AttackOutput struct {
	Session        *SessionView `json:"session"`
	Outcome        Outcome      `json:"outcome"`
	Damage         int          `json:"damage"`
	Critical       bool         `json:"critical"`
	FollowUpDamage int          `json:"follow_up_damage,omitempty"`
	WeaknessHit    bool         `json:"weakness_hit,omitempty"`
	// Rewards is set only when Outcome is victory.
	Rewards *RewardView `json:"rewards,omitempty"`
}

// UseItemInput defines the input for using an item mid-fight
type UseItemInput struct {
	PlayerID  string
	ItemIndex int
}

// UseItemOutput defines the output for using an item mid-fight
type UseItemOutput struct {
	Session        *SessionView `json:"session"`
	HealthRestored int          `json:"health_restored"`
	ManaRestored   int          `json:"mana_restored"`
}

// FleeInput defines the input for a flee attempt
type FleeInput struct {
	PlayerID string
}

// FleeOutput defines the output for a flee attempt
type FleeOutput struct {
	Escaped bool    `json:"escaped"`
	Outcome Outcome `json:"outcome"`
	// Session is nil after a successful escape.
	Session *SessionView `json:"session,omitempty"`
}

// MonsterTurnInput defines the input for resolving the monster's turn
type MonsterTurnInput struct {
	PlayerID string
}

// MonsterTurnOutput defines the output for the monster's turn
type MonsterTurnOutput struct {
	Session    *SessionView `json:"session"`
	Outcome    Outcome      `json:"outcome"`
	SkillName  string       `json:"skill_name,omitempty"`
	Damage     int          `json:"damage"`
	Critical   bool         `json:"critical"`
	WasStunned bool         `json:"was_stunned,omitempty"`
	GoldLost   int          `json:"gold_lost,omitempty"`
}

// GetInput defines the input for fetching the active fight
type GetInput struct {
	PlayerID string
}

// GetOutput defines the output for fetching the active fight
type GetOutput struct {
	Session *SessionView `json:"session"`
}
