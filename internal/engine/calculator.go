package engine

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/errors"
)

// Stat derivation coefficients.
const (
	attackPerStrength    = 2
	defensePerVitality   = 1.5
	healthPerVitality    = 10
	baseHealth           = 50
	manaPerIntelligence  = 5
	baseMana             = 25
	critChancePerDex     = 0.5
	baseCritDamage       = 150.0
	defenseMitigation    = 0.5
	rewardLevelDiffStep  = 0.1
	rewardMultiplierMin  = 0.5
	xpCurveBase          = 100
	xpCurveGrowth        = 1.1
)

// CalculatorConfig holds the dependencies for the stock calculator.
type CalculatorConfig struct {
	DiceRoller dice.Roller
}

// Validate ensures all required dependencies are present.
func (c *CalculatorConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.DiceRoller == nil {
		return errors.InvalidArgument("dice roller is required")
	}
	return nil
}

// Calculator is the stock Engine implementation.
type Calculator struct {
	roller dice.Roller
}

var _ Engine = (*Calculator)(nil)

// NewCalculator creates a Calculator with the provided configuration.
func NewCalculator(cfg *CalculatorConfig) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{roller: cfg.DiceRoller}, nil
}

// CalculateEffectiveStats derives the full stat block. Equipment
// bonuses apply first, then path bonuses, then class bonuses, which
// matches how multiplier stacking behaves for every class and path.
func (c *Calculator) CalculateEffectiveStats(char *entities.Character) *EffectiveStats {
	attrs := char.Attributes

	var itemAttack, itemDefense, itemHealth, itemMana int
	var itemCritChance, itemCritDamage float64
	for _, item := range char.Equipment.Equipped() {
		if item.Stats == nil {
			continue
		}
		itemAttack += item.Stats.Attack
		itemDefense += item.Stats.Defense
		itemHealth += item.Stats.Health
		itemMana += item.Stats.Mana
		itemCritChance += float64(item.Stats.CritChance)
		itemCritDamage += float64(item.Stats.CritDamage)
		attrs = attrs.Add(item.Stats.Attributes())
	}

	attack := float64(attrs.Strength*attackPerStrength + itemAttack)
	defense := float64(attrs.Vitality)*defensePerVitality + float64(itemDefense)
	maxHealth := float64(attrs.Vitality*healthPerVitality + baseHealth + itemHealth)
	maxMana := float64(attrs.Intelligence*manaPerIntelligence + baseMana + itemMana)
	critChance := float64(attrs.Dexterity)*critChancePerDex + itemCritChance
	critDamage := baseCritDamage + itemCritDamage

	switch char.Path {
	case entities.PathDestruction:
		critDamage += 20
		attack *= 1.1
	case entities.PathPreservation:
		defense *= 1.15
		maxHealth *= 1.1
	case entities.PathAbundance:
		maxMana *= 1.2
		maxHealth *= 1.05
	case entities.PathHunt:
		critChance += 10
		attack *= 1.05
	}

	switch char.Class {
	case entities.ClassWarrior:
		attack *= 1.2
		defense *= 1.3
	case entities.ClassMage:
		maxMana *= 1.4
		attrs.Intelligence = int(float64(attrs.Intelligence) * 1.2)
	case entities.ClassRogue:
		critChance += 15
		critDamage += 25
	case entities.ClassArcher:
		critChance += 10
		attack *= 1.1
	case entities.ClassHealer:
		maxMana *= 1.3
		maxHealth *= 1.2
	case entities.ClassBattlemage:
		attack *= 1.1
		maxMana *= 1.2
	case entities.ClassChronoKnight:
		attack *= 1.3
		defense *= 1.2
		maxMana *= 1.3
		critChance += 20
	}

	return &EffectiveStats{
		Attributes: attrs,
		Attack:     int(math.Floor(attack)),
		Defense:    int(math.Floor(defense)),
		MaxHealth:  int(math.Floor(maxHealth)),
		MaxMana:    int(math.Floor(maxMana)),
		CritChance: math.Min(critChance, CritChanceCap),
		CritDamage: math.Floor(critDamage),
	}
}

// ResolveDamage rolls a single attack. The crit roll draws a uniform
// percentile, the variance roll scales the result by 0.85 to 1.15.
func (c *Calculator) ResolveDamage(attacker AttackProfile, defender DefenseProfile, multiplier float64) (*DamageResult, error) {
	baseDamage := math.Max(1, float64(attacker.Attack)*multiplier-float64(defender.Defense)*defenseMitigation)

	critRoll, err := c.roller.Roll(100)
	if err != nil {
		return nil, errors.Wrap(err, "rolling crit chance")
	}
	critical := float64(critRoll-1) < attacker.CritChance

	damage := baseDamage
	if critical {
		damage *= attacker.CritDamage / 100
	}

	varianceRoll, err := c.roller.Roll(31)
	if err != nil {
		return nil, errors.Wrap(err, "rolling damage variance")
	}
	damage *= 0.85 + float64(varianceRoll-1)/100

	final := int(math.Floor(damage))
	if final < 1 {
		final = 1
	}
	return &DamageResult{Damage: final, Critical: critical}, nil
}

// CalculateRewards scales the monster's payout by the level difference
// and rolls each drop table entry independently.
func (c *Calculator) CalculateRewards(monster *entities.Monster, playerLevel int) (*Rewards, error) {
	levelDiff := monster.Level - playerLevel
	multiplier := math.Max(rewardMultiplierMin, 1+float64(levelDiff)*rewardLevelDiffStep)

	rewards := &Rewards{
		XP:   int(math.Floor(float64(monster.XPReward) * multiplier)),
		Gold: int(math.Floor(float64(monster.GoldReward) * multiplier)),
	}

	for _, drop := range monster.DropTable {
		roll, err := c.roller.Roll(100)
		if err != nil {
			return nil, errors.Wrap(err, "rolling drop chance")
		}
		if roll-1 >= drop.Chance {
			continue
		}
		quantity := drop.MinQuantity
		if span := drop.MaxQuantity - drop.MinQuantity; span > 0 {
			qtyRoll, err := c.roller.Roll(span + 1)
			if err != nil {
				return nil, errors.Wrap(err, "rolling drop quantity")
			}
			quantity += qtyRoll - 1
		}
		rewards.Drops = append(rewards.Drops, DroppedItem{ItemID: drop.ItemID, Quantity: quantity})
	}

	return rewards, nil
}

// ApplyXP adds XP and processes level-ups until the remaining XP no
// longer clears the threshold. Each level grants stat points.
func (c *Calculator) ApplyXP(char *entities.Character, xp int) *LevelUpResult {
	result := &LevelUpResult{}
	char.XP += xp

	for char.XP >= char.XPToNextLevel {
		char.XP -= char.XPToNextLevel
		char.Level++
		char.StatPointsAvailable += StatPointsPerLevel
		char.XPToNextLevel = c.XPToNextLevel(char.Level)
		result.LevelsGained++
		result.StatPointsGained += StatPointsPerLevel
	}

	return result
}

// XPToNextLevel returns the XP needed to advance past the given level.
func (c *Calculator) XPToNextLevel(level int) int {
	return int(math.Floor(xpCurveBase * math.Pow(xpCurveGrowth, float64(level-1))))
}

// RollChance returns true with the given percent probability.
func (c *Calculator) RollChance(percent int) (bool, error) {
	if percent <= 0 {
		return false, nil
	}
	if percent >= 100 {
		return true, nil
	}
	roll, err := c.roller.Roll(100)
	if err != nil {
		return false, errors.Wrap(err, "rolling chance")
	}
	return roll <= percent, nil
}

// RollIndex returns a uniform index in [0, n).
func (c *Calculator) RollIndex(n int) (int, error) {
	if n <= 0 {
		return 0, errors.InvalidArgumentf("index roll requires n > 0, got %d", n)
	}
	if n == 1 {
		return 0, nil
	}
	roll, err := c.roller.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "rolling index")
	}
	return roll - 1, nil
}
