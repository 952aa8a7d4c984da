// Package engine implements the combat math: stat derivation, damage
// resolution, and reward calculation. All randomness flows through an
// injected dice roller so outcomes are reproducible in tests.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/plaggbot/rpg-api/internal/engine Engine

import (
	"github.com/plaggbot/rpg-api/internal/entities"
)

// Combat policy constants. Percentages are out of 100.
const (
	// FleeChancePercent is the chance a flee attempt succeeds.
	FleeChancePercent = 75

	// FollowUpChancePercent is the chance a critical hit triggers a
	// follow-up strike.
	FollowUpChancePercent = 25

	// FollowUpMultiplier scales the follow-up strike's damage.
	FollowUpMultiplier = 0.5

	// WeaknessMultiplier applies when an attack matches the monster's
	// elemental weakness while its break bar is up.
	WeaknessMultiplier = 1.5

	// MonsterCritChance and MonsterCritDamage are the fixed crit
	// profile shared by every monster.
	MonsterCritChance = 10.0
	MonsterCritDamage = 140.0

	// CritChanceCap bounds a character's crit chance.
	CritChanceCap = 95.0

	// StatPointsPerLevel is granted on each level gained.
	StatPointsPerLevel = 3

	// DefeatGoldLossPercent of current gold is lost on defeat.
	DefeatGoldLossPercent = 10

	// PathUnlockLevel is the minimum level to choose a path.
	PathUnlockLevel = 10

	// MonsterLevelBandBelow and MonsterLevelBandAbove bound the level
	// range monsters are drawn from, relative to the player's level.
	MonsterLevelBandBelow = 2
	MonsterLevelBandAbove = 3

	// ItemLevelBand bounds the level range victory drops are drawn
	// from, in both directions around the player's level.
	ItemLevelBand = 2
)

// Engine is the combat calculation service. Implementations must be
// safe for concurrent use.
type Engine interface {
	// CalculateEffectiveStats derives the full stat block for a
	// character from base attributes, equipped items, path, and class.
	CalculateEffectiveStats(char *entities.Character) *EffectiveStats

	// ResolveDamage rolls a single attack. multiplier is the skill's
	// damage multiplier, already combined with any weakness bonus.
	ResolveDamage(attacker AttackProfile, defender DefenseProfile, multiplier float64) (*DamageResult, error)

	// CalculateRewards computes the scaled XP and gold payout for
	// defeating the monster and rolls its drop table.
	CalculateRewards(monster *entities.Monster, playerLevel int) (*Rewards, error)

	// ApplyXP adds XP to the character, processing any level-ups and
	// granting stat points. The character is mutated in place.
	ApplyXP(char *entities.Character, xp int) *LevelUpResult

	// XPToNextLevel returns the XP required to advance from the given
	// level to the next.
	XPToNextLevel(level int) int

	// RollChance returns true with the given percent probability.
	RollChance(percent int) (bool, error)

	// RollIndex returns a uniform index in [0, n).
	RollIndex(n int) (int, error)
}
