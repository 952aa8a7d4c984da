package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaggbot/rpg-api/internal/catalog"
	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/errors"
)

type fixedRoller struct {
	roll int
}

func (r *fixedRoller) Roll(_ int) (int, error) { return r.roll, nil }
func (r *fixedRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = r.roll
	}
	return out, nil
}

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New()
	require.NoError(t, err)
	return c
}

func TestNew_LoadsEmbeddedContent(t *testing.T) {
	c := loadCatalog(t)

	item, err := c.Item("wooden_sword")
	require.NoError(t, err)
	assert.Equal(t, "Wooden Practice Sword", item.Name)
	assert.Equal(t, entities.ItemTypeWeapon, item.Type)
	assert.Equal(t, 5, item.Stats.Attack)

	monster, err := c.Monster("goblin")
	require.NoError(t, err)
	assert.Equal(t, 3, monster.Level)
	assert.Equal(t, entities.ElementFire, monster.Weakness)

	skill, err := c.Skill("basic_attack")
	require.NoError(t, err)
	assert.Equal(t, 1.0, skill.DamageMultiplier)
	assert.Zero(t, skill.ManaCost)
}

func TestItem_NotFound(t *testing.T) {
	c := loadCatalog(t)

	_, err := c.Item("cheese_wheel")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestItem_ReturnsIndependentCopies(t *testing.T) {
	c := loadCatalog(t)

	first, err := c.Item("wooden_sword")
	require.NoError(t, err)
	first.Stats.Attack = 9999

	second, err := c.Item("wooden_sword")
	require.NoError(t, err)
	assert.Equal(t, 5, second.Stats.Attack)
}

func TestMonster_SpawnsFreshInstance(t *testing.T) {
	c := loadCatalog(t)

	first, err := c.Monster("goblin")
	require.NoError(t, err)
	first.Health = 0
	first.BreakBar = 0
	first.Stunned = true

	second, err := c.Monster("goblin")
	require.NoError(t, err)
	assert.Equal(t, second.MaxHealth, second.Health)
	assert.Equal(t, second.MaxBreakBar, second.BreakBar)
	assert.False(t, second.Stunned)
}

func TestRandomMonster(t *testing.T) {
	c := loadCatalog(t)

	t.Run("band around player level", func(t *testing.T) {
		// Level 5 admits goblin (3) and orc (8); roll 1 picks the
		// first in file order.
		monster, err := c.RandomMonster(&fixedRoller{roll: 1}, 5)
		require.NoError(t, err)
		assert.Equal(t, "goblin", monster.ID)

		monster, err = c.RandomMonster(&fixedRoller{roll: 2}, 5)
		require.NoError(t, err)
		assert.Equal(t, "orc", monster.ID)
	})

	t.Run("empty band falls back to lowest level", func(t *testing.T) {
		monster, err := c.RandomMonster(&fixedRoller{roll: 1}, 50)
		require.NoError(t, err)
		assert.Equal(t, "goblin", monster.ID)
	})

	t.Run("spawned at full health", func(t *testing.T) {
		monster, err := c.RandomMonster(&fixedRoller{roll: 1}, 3)
		require.NoError(t, err)
		assert.Equal(t, monster.MaxHealth, monster.Health)
		assert.Equal(t, monster.MaxBreakBar, monster.BreakBar)
	})
}

func TestRandomItem(t *testing.T) {
	c := loadCatalog(t)

	t.Run("low roll lands in the first weight bucket", func(t *testing.T) {
		item, err := c.RandomItem(&fixedRoller{roll: 1}, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, "wooden_sword", item.ID)
	})

	t.Run("empty band errors", func(t *testing.T) {
		_, err := c.RandomItem(&fixedRoller{roll: 1}, 90, 99)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("band excludes higher level items", func(t *testing.T) {
		// Level band [1,4] excludes the level 5+ gear.
		for roll := 1; roll < 20000; roll += 4000 {
			item, err := c.RandomItem(&fixedRoller{roll: roll}, 1, 4)
			require.NoError(t, err)
			level := item.RequiredLevel
			if level == 0 {
				level = 1
			}
			assert.LessOrEqual(t, level, 4)
		}
	})
}

func TestResolveMonsterSkills(t *testing.T) {
	c := loadCatalog(t)

	t.Run("drops unresolvable ids", func(t *testing.T) {
		goblin, err := c.Monster("goblin")
		require.NoError(t, err)

		// Only club_smash resolves; wild_swing has no definition.
		skills := c.ResolveMonsterSkills(goblin)
		require.Len(t, skills, 1)
		assert.Equal(t, "club_smash", skills[0].ID)
	})

	t.Run("default skill always present", func(t *testing.T) {
		skill := c.DefaultMonsterSkill()
		require.NotNil(t, skill)
		assert.Equal(t, catalog.DefaultMonsterSkillID, skill.ID)
	})
}

func TestSkillsForClass(t *testing.T) {
	c := loadCatalog(t)

	t.Run("gated by class and level", func(t *testing.T) {
		skills := c.SkillsForClass(entities.ClassMage, 3)
		ids := make([]string, 0, len(skills))
		for _, s := range skills {
			ids = append(ids, s.ID)
		}
		// basic_attack is classless, fireball unlocks at 3, ice_shard
		// needs level 5.
		assert.Equal(t, []string{"basic_attack", "fireball"}, ids)
	})

	t.Run("battlemage shares fireball", func(t *testing.T) {
		skills := c.SkillsForClass(entities.ClassBattlemage, 10)
		ids := make([]string, 0, len(skills))
		for _, s := range skills {
			ids = append(ids, s.ID)
		}
		assert.Contains(t, ids, "fireball")
		assert.NotContains(t, ids, "ice_shard")
	})
}

func TestLoad_Validation(t *testing.T) {
	validItems := []byte("items:\n  - id: thing\n    name: Thing\n    type: material\n    rarity: common\n")
	validMonsters := []byte(`
monsters:
  - id: slime
    name: Slime
    level: 1
    health: 10
    max_health: 10
    attack: 2
    defense: 1
    element: physical
    weakness: fire
    skills: [club_smash]
    xp_reward: 5
    gold_reward: 2
    max_break_bar: 1
    break_bar: 1
    tier: common
`)
	validSkills := []byte(`
monster_skills:
  - id: club_smash
    name: Club Smash
    mana_cost: 0
    damage_multiplier: 1.2
    element: physical
    required_level: 1
`)

	t.Run("valid content loads", func(t *testing.T) {
		_, err := catalog.Load(validItems, validMonsters, validSkills)
		require.NoError(t, err)
	})

	t.Run("duplicate item id rejected", func(t *testing.T) {
		dup := []byte("items:\n  - id: thing\n    name: A\n  - id: thing\n    name: B\n")
		_, err := catalog.Load(dup, validMonsters, validSkills)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate item id")
	})

	t.Run("drop of unknown item rejected", func(t *testing.T) {
		badMonsters := []byte(`
monsters:
  - id: slime
    name: Slime
    level: 1
    skills: []
    drop_table:
      - item_id: nonexistent
        chance: 50
        min_quantity: 1
        max_quantity: 1
`)
		_, err := catalog.Load(validItems, badMonsters, validSkills)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown item")
	})

	t.Run("missing default monster skill rejected", func(t *testing.T) {
		noSkills := []byte("skills: []\n")
		_, err := catalog.Load(validItems, validMonsters, noSkills)
		require.Error(t, err)
	})

	t.Run("malformed yaml surfaces invalid argument", func(t *testing.T) {
		_, err := catalog.Load([]byte("items: {nope"), validMonsters, validSkills)
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidArgument, errors.GetCode(err))
	})
}

func TestClassByID(t *testing.T) {
	info, err := catalog.ClassByID(entities.ClassWarrior)
	require.NoError(t, err)
	assert.Equal(t, 8, info.StartingAttributes.Strength)
	assert.Equal(t, 9, info.StartingAttributes.Vitality)
	assert.False(t, info.Hidden)

	chrono, err := catalog.ClassByID(entities.ClassChronoKnight)
	require.NoError(t, err)
	assert.True(t, chrono.Hidden)

	_, err = catalog.ClassByID(entities.Class("bard"))
	require.Error(t, err)
}

func TestPathByID(t *testing.T) {
	info, err := catalog.PathByID(entities.PathDestruction)
	require.NoError(t, err)
	assert.Equal(t, "Path of Destruction", info.Name)

	_, err = catalog.PathByID(entities.Path("gluttony"))
	require.Error(t, err)
}