package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaggbot/rpg-api/internal/engine"
	"github.com/plaggbot/rpg-api/internal/entities"
)

// scriptedRoller returns a fixed sequence of rolls so damage and
// reward outcomes are deterministic.
type scriptedRoller struct {
	rolls []int
	idx   int
}

func (r *scriptedRoller) Roll(_ int) (int, error) {
	if r.idx >= len(r.rolls) {
		return 1, nil
	}
	roll := r.rolls[r.idx]
	r.idx++
	return roll, nil
}

func (r *scriptedRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		roll, _ := r.Roll(0)
		out[i] = roll
	}
	return out, nil
}

func newCalculator(t *testing.T, rolls ...int) *engine.Calculator {
	t.Helper()
	calc, err := engine.NewCalculator(&engine.CalculatorConfig{
		DiceRoller: &scriptedRoller{rolls: rolls},
	})
	require.NoError(t, err)
	return calc
}

func TestNewCalculator_Validation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := engine.NewCalculator(nil)
		require.Error(t, err)
	})

	t.Run("missing roller", func(t *testing.T) {
		_, err := engine.NewCalculator(&engine.CalculatorConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dice roller")
	})
}

func TestCalculateEffectiveStats_BaseDerivation(t *testing.T) {
	calc := newCalculator(t)

	char := &entities.Character{
		Class: entities.ClassRogue,
		Attributes: entities.BaseAttributes{
			Strength:     10,
			Intelligence: 8,
			Dexterity:    12,
			Vitality:     10,
		},
	}

	stats := calc.CalculateEffectiveStats(char)

	assert.Equal(t, 20, stats.Attack)
	assert.Equal(t, 15, stats.Defense)
	assert.Equal(t, 150, stats.MaxHealth)
	assert.Equal(t, 65, stats.MaxMana)
	// 12 * 0.5 plus the rogue class bonus.
	assert.Equal(t, 21.0, stats.CritChance)
	assert.Equal(t, 175.0, stats.CritDamage)
}

func TestCalculateEffectiveStats_WarriorMultipliers(t *testing.T) {
	calc := newCalculator(t)

	char := &entities.Character{
		Class: entities.ClassWarrior,
		Attributes: entities.BaseAttributes{
			Strength:     15,
			Intelligence: 5,
			Dexterity:    8,
			Vitality:     12,
		},
	}

	stats := calc.CalculateEffectiveStats(char)

	// 15*2 = 30, then *1.2.
	assert.Equal(t, 36, stats.Attack)
	// 12*1.5 = 18, then *1.3.
	assert.Equal(t, 23, stats.Defense)
	assert.Equal(t, 170, stats.MaxHealth)
	assert.Equal(t, 50, stats.MaxMana)
}

func TestCalculateEffectiveStats_EquipmentAndPath(t *testing.T) {
	calc := newCalculator(t)

	sword := &entities.Item{
		ID:   "iron_sword",
		Type: entities.ItemTypeWeapon,
		Stats: &entities.ItemStats{
			Attack:   12,
			Strength: 3,
		},
	}

	char := &entities.Character{
		Class: entities.ClassWarrior,
		Path:  entities.PathDestruction,
		Attributes: entities.BaseAttributes{
			Strength:     15,
			Intelligence: 5,
			Dexterity:    8,
			Vitality:     12,
		},
		Equipment: entities.Equipment{Weapon: sword},
	}

	stats := calc.CalculateEffectiveStats(char)

	// (15+3)*2 + 12 = 48, then *1.1 destruction, *1.2 warrior.
	assert.Equal(t, 63, stats.Attack)
	assert.Equal(t, 18, stats.Attributes.Strength)
	// 150 base + 20 destruction.
	assert.Equal(t, 170.0, stats.CritDamage)
}

func TestCalculateEffectiveStats_CritChanceCap(t *testing.T) {
	calc := newCalculator(t)

	char := &entities.Character{
		Class: entities.ClassRogue,
		Path:  entities.PathHunt,
		Attributes: entities.BaseAttributes{
			Dexterity: 400,
		},
	}

	stats := calc.CalculateEffectiveStats(char)
	assert.Equal(t, 95.0, stats.CritChance)
}

func TestResolveDamage(t *testing.T) {
	attacker := engine.AttackProfile{Attack: 20, CritChance: 0, CritDamage: 150}
	defender := engine.DefenseProfile{Defense: 5}

	t.Run("no crit at neutral variance", func(t *testing.T) {
		// Crit roll 100 never crits at 0% chance; variance roll 16
		// maps to exactly 1.0.
		calc := newCalculator(t, 100, 16)

		result, err := calc.ResolveDamage(attacker, defender, 1.0)
		require.NoError(t, err)

		// floor(20*1 - 5*0.5) = 17.
		assert.Equal(t, 17, result.Damage)
		assert.False(t, result.Critical)
	})

	t.Run("critical hit scales by crit damage", func(t *testing.T) {
		calc := newCalculator(t, 1, 16)
		crit := attacker
		crit.CritChance = 50

		result, err := calc.ResolveDamage(crit, defender, 1.0)
		require.NoError(t, err)

		// floor(17.5 * 1.5) = 26.
		assert.Equal(t, 26, result.Damage)
		assert.True(t, result.Critical)
	})

	t.Run("variance bounds", func(t *testing.T) {
		low := newCalculator(t, 100, 1)
		result, err := low.ResolveDamage(attacker, defender, 1.0)
		require.NoError(t, err)
		// floor(17.5 * 0.85) = 14.
		assert.Equal(t, 14, result.Damage)

		high := newCalculator(t, 100, 31)
		result, err = high.ResolveDamage(attacker, defender, 1.0)
		require.NoError(t, err)
		// floor(17.5 * 1.15) = 20.
		assert.Equal(t, 20, result.Damage)
	})

	t.Run("damage never drops below one", func(t *testing.T) {
		calc := newCalculator(t, 100, 1)
		weak := engine.AttackProfile{Attack: 1, CritChance: 0, CritDamage: 150}
		tank := engine.DefenseProfile{Defense: 500}

		result, err := calc.ResolveDamage(weak, tank, 1.0)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Damage)
	})

	t.Run("weakness multiplier flows through", func(t *testing.T) {
		calc := newCalculator(t, 100, 16)

		result, err := calc.ResolveDamage(attacker, defender, 1.0*engine.WeaknessMultiplier)
		require.NoError(t, err)
		// floor(20*1.5 - 2.5) = 27.
		assert.Equal(t, 27, result.Damage)
	})
}

func TestCalculateRewards(t *testing.T) {
	monster := &entities.Monster{
		ID:         "forest_goblin",
		Level:      3,
		XPReward:   25,
		GoldReward: 15,
		DropTable: []entities.DropTableEntry{
			{ItemID: "goblin_ear", Chance: 60, MinQuantity: 1, MaxQuantity: 2},
			{ItemID: "rusty_dagger", Chance: 15, MinQuantity: 1, MaxQuantity: 1},
		},
	}

	t.Run("equal level pays base rewards", func(t *testing.T) {
		// Drop rolls: 100 misses the 60% roll, 100 misses the 15%.
		calc := newCalculator(t, 100, 100)

		rewards, err := calc.CalculateRewards(monster, 3)
		require.NoError(t, err)

		assert.Equal(t, 25, rewards.XP)
		assert.Equal(t, 15, rewards.Gold)
		assert.Empty(t, rewards.Drops)
	})

	t.Run("higher level monster pays more", func(t *testing.T) {
		calc := newCalculator(t, 100, 100)

		// Monster is 2 levels above: multiplier 1.2.
		rewards, err := calc.CalculateRewards(monster, 1)
		require.NoError(t, err)

		assert.Equal(t, 30, rewards.XP)
		assert.Equal(t, 18, rewards.Gold)
	})

	t.Run("multiplier floors at half", func(t *testing.T) {
		calc := newCalculator(t, 100, 100)

		rewards, err := calc.CalculateRewards(monster, 30)
		require.NoError(t, err)

		assert.Equal(t, 12, rewards.XP)
		assert.Equal(t, 7, rewards.Gold)
	})

	t.Run("drop rolls are independent", func(t *testing.T) {
		// First entry: chance roll 1 hits, quantity roll 2 picks the
		// max of the 1..2 span. Second entry: roll 100 misses.
		calc := newCalculator(t, 1, 2, 100)

		rewards, err := calc.CalculateRewards(monster, 3)
		require.NoError(t, err)

		require.Len(t, rewards.Drops, 1)
		assert.Equal(t, "goblin_ear", rewards.Drops[0].ItemID)
		assert.Equal(t, 2, rewards.Drops[0].Quantity)
	})
}

func TestApplyXP(t *testing.T) {
	calc := newCalculator(t)

	t.Run("no level up below threshold", func(t *testing.T) {
		char := &entities.Character{Level: 1, XPToNextLevel: 100}

		result := calc.ApplyXP(char, 50)

		assert.Equal(t, 0, result.LevelsGained)
		assert.Equal(t, 1, char.Level)
		assert.Equal(t, 50, char.XP)
	})

	t.Run("overflow carries into the new level", func(t *testing.T) {
		char := &entities.Character{Level: 1, XPToNextLevel: 80}

		result := calc.ApplyXP(char, 100)

		assert.Equal(t, 1, result.LevelsGained)
		assert.Equal(t, 3, result.StatPointsGained)
		assert.Equal(t, 2, char.Level)
		assert.Equal(t, 20, char.XP)
		assert.Equal(t, 3, char.StatPointsAvailable)
		assert.Equal(t, 110, char.XPToNextLevel)
	})

	t.Run("large award chains level ups", func(t *testing.T) {
		char := &entities.Character{Level: 1, XPToNextLevel: 100}

		// 100 + 110 = 210 clears two levels exactly.
		result := calc.ApplyXP(char, 210)

		assert.Equal(t, 2, result.LevelsGained)
		assert.Equal(t, 6, char.StatPointsAvailable)
		assert.Equal(t, 3, char.Level)
		assert.Equal(t, 0, char.XP)
		assert.Equal(t, 121, char.XPToNextLevel)
	})
}

func TestXPToNextLevel(t *testing.T) {
	calc := newCalculator(t)

	assert.Equal(t, 100, calc.XPToNextLevel(1))
	assert.Equal(t, 110, calc.XPToNextLevel(2))
	assert.Equal(t, 121, calc.XPToNextLevel(3))
	assert.Equal(t, 133, calc.XPToNextLevel(4))
}

func TestRollChance(t *testing.T) {
	t.Run("degenerate bounds skip the roller", func(t *testing.T) {
		calc := newCalculator(t)

		hit, err := calc.RollChance(0)
		require.NoError(t, err)
		assert.False(t, hit)

		hit, err = calc.RollChance(100)
		require.NoError(t, err)
		assert.True(t, hit)
	})

	t.Run("boundary roll", func(t *testing.T) {
		calc := newCalculator(t, 75, 76)

		hit, err := calc.RollChance(75)
		require.NoError(t, err)
		assert.True(t, hit)

		hit, err = calc.RollChance(75)
		require.NoError(t, err)
		assert.False(t, hit)
	})
}

func TestRollIndex(t *testing.T) {
	calc := newCalculator(t, 3)

	idx, err := calc.RollIndex(5)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	idx, err = calc.RollIndex(1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = calc.RollIndex(0)
	require.Error(t, err)
}