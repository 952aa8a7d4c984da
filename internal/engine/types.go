package engine

import (
	"github.com/plaggbot/rpg-api/internal/entities"
)

// EffectiveStats is the fully derived stat block for a character:
// base attributes plus equipment bonuses, converted through the
// class and path multipliers.
type EffectiveStats struct {
	Attributes entities.BaseAttributes `json:"attributes"`

	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	MaxHealth int `json:"max_health"`
	MaxMana   int `json:"max_mana"`

	// CritChance is a percentage in [0, 95].
	CritChance float64 `json:"crit_chance"`
	// CritDamage is a percentage multiplier, 150 means 1.5x.
	CritDamage float64 `json:"crit_damage"`
}

// AttackProfile is the attacker side of a damage resolution. Both
// player and monster attacks are expressed through it.
type AttackProfile struct {
	Attack     int
	CritChance float64
	CritDamage float64
}

// DefenseProfile is the defender side of a damage resolution.
type DefenseProfile struct {
	Defense int
}

// DamageResult is the outcome of a single damage roll.
type DamageResult struct {
	Damage   int
	Critical bool
}

// DroppedItem is a resolved drop from a monster's drop table.
type DroppedItem struct {
	ItemID   string
	Quantity int
}

// Rewards is the payout for defeating a monster, already scaled by
// the level difference multiplier.
type Rewards struct {
	XP    int
	Gold  int
	Drops []DroppedItem
}

// LevelUpResult describes the outcome of applying an XP award.
type LevelUpResult struct {
	LevelsGained     int
	StatPointsGained int
}
