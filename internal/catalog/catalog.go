// Package catalog holds the immutable game content: items, monsters,
// and skills. Content ships as embedded YAML and is loaded once at
// startup; lookups hand out copies so callers can never mutate the
// catalog itself.
package catalog

import (
	"embed"
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"gopkg.in/yaml.v3"

	"github.com/plaggbot/rpg-api/internal/engine"
	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/errors"
)

//go:embed data/*.yaml
var dataFS embed.FS

// DefaultMonsterSkillID is used when a monster has no resolvable
// skills of its own.
const DefaultMonsterSkillID = "club_smash"

// Rarity weights for random item rolls, scaled by 100 so fractional
// percentages stay integral. Common 50%, Cosmic 0.01%.
var rarityWeights = map[entities.Rarity]int{
	entities.RarityCommon:    5000,
	entities.RarityUncommon:  2500,
	entities.RarityRare:      1500,
	entities.RarityEpic:      700,
	entities.RarityLegendary: 250,
	entities.RarityMythical:  40,
	entities.RarityDivine:    9,
	entities.RarityCosmic:    1,
}

type itemsFile struct {
	Items []entities.Item `yaml:"items"`
}

type monstersFile struct {
	Monsters []entities.Monster `yaml:"monsters"`
}

type skillsFile struct {
	Skills        []entities.Skill `yaml:"skills"`
	MonsterSkills []entities.Skill `yaml:"monster_skills"`
}

// Catalog is the loaded content registry. Safe for concurrent reads.
type Catalog struct {
	items         map[string]*entities.Item
	monsters      map[string]*entities.Monster
	skills        map[string]*entities.Skill
	monsterSkills map[string]*entities.Skill

	// Insertion order from the data files, kept so random selection
	// and listings are deterministic for a given seed.
	itemOrder    []string
	monsterOrder []string
	skillOrder   []string
}

// New loads the embedded content files.
func New() (*Catalog, error) {
	items, err := dataFS.ReadFile("data/items.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "reading embedded items")
	}
	monsters, err := dataFS.ReadFile("data/monsters.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "reading embedded monsters")
	}
	skills, err := dataFS.ReadFile("data/skills.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "reading embedded skills")
	}
	return Load(items, monsters, skills)
}

// Load parses content from raw YAML. Exposed so tests and tooling can
// load alternate content sets.
func Load(itemsYAML, monstersYAML, skillsYAML []byte) (*Catalog, error) {
	var items itemsFile
	if err := yaml.Unmarshal(itemsYAML, &items); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parsing items")
	}
	var monsters monstersFile
	if err := yaml.Unmarshal(monstersYAML, &monsters); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parsing monsters")
	}
	var skills skillsFile
	if err := yaml.Unmarshal(skillsYAML, &skills); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parsing skills")
	}

	c := &Catalog{
		items:         make(map[string]*entities.Item, len(items.Items)),
		monsters:      make(map[string]*entities.Monster, len(monsters.Monsters)),
		skills:        make(map[string]*entities.Skill, len(skills.Skills)),
		monsterSkills: make(map[string]*entities.Skill, len(skills.MonsterSkills)),
	}

	for i := range items.Items {
		item := &items.Items[i]
		if item.ID == "" {
			return nil, errors.InvalidArgument("item with empty id")
		}
		if _, dup := c.items[item.ID]; dup {
			return nil, errors.InvalidArgumentf("duplicate item id %q", item.ID)
		}
		c.items[item.ID] = item
		c.itemOrder = append(c.itemOrder, item.ID)
	}

	for i := range monsters.Monsters {
		monster := &monsters.Monsters[i]
		if monster.ID == "" {
			return nil, errors.InvalidArgument("monster with empty id")
		}
		if _, dup := c.monsters[monster.ID]; dup {
			return nil, errors.InvalidArgumentf("duplicate monster id %q", monster.ID)
		}
		for _, drop := range monster.DropTable {
			if _, ok := c.items[drop.ItemID]; !ok {
				return nil, errors.InvalidArgumentf("monster %q drops unknown item %q", monster.ID, drop.ItemID)
			}
		}
		c.monsters[monster.ID] = monster
		c.monsterOrder = append(c.monsterOrder, monster.ID)
	}

	for i := range skills.Skills {
		skill := &skills.Skills[i]
		if skill.ID == "" {
			return nil, errors.InvalidArgument("skill with empty id")
		}
		if _, dup := c.skills[skill.ID]; dup {
			return nil, errors.InvalidArgumentf("duplicate skill id %q", skill.ID)
		}
		c.skills[skill.ID] = skill
		c.skillOrder = append(c.skillOrder, skill.ID)
	}

	for i := range skills.MonsterSkills {
		skill := &skills.MonsterSkills[i]
		if skill.ID == "" {
			return nil, errors.InvalidArgument("monster skill with empty id")
		}
		if _, dup := c.monsterSkills[skill.ID]; dup {
			return nil, errors.InvalidArgumentf("duplicate monster skill id %q", skill.ID)
		}
		c.monsterSkills[skill.ID] = skill
	}

	if _, ok := c.monsterSkills[DefaultMonsterSkillID]; !ok {
		return nil, errors.InvalidArgumentf("default monster skill %q missing", DefaultMonsterSkillID)
	}
	if len(c.monsters) == 0 {
		return nil, errors.InvalidArgument("monster catalog is empty")
	}

	return c, nil
}

// Item returns a copy of the catalog entry.
func (c *Catalog) Item(id string) (*entities.Item, error) {
	item, ok := c.items[id]
	if !ok {
		return nil, errors.NotFoundf("item %q not found", id)
	}
	return item.Clone(), nil
}

// Items returns copies of every item in file order.
func (c *Catalog) Items() []*entities.Item {
	out := make([]*entities.Item, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		out = append(out, c.items[id].Clone())
	}
	return out
}

// Monster returns a fresh instance of the catalog entry, health and
// break bar reset.
func (c *Catalog) Monster(id string) (*entities.Monster, error) {
	monster, ok := c.monsters[id]
	if !ok {
		return nil, errors.NotFoundf("monster %q not found", id)
	}
	return monster.Spawn(), nil
}

// Skill returns the player skill with the given id.
func (c *Catalog) Skill(id string) (*entities.Skill, error) {
	skill, ok := c.skills[id]
	if !ok {
		return nil, errors.NotFoundf("skill %q not found", id)
	}
	return skill, nil
}

// MonsterSkill returns the monster skill with the given id.
func (c *Catalog) MonsterSkill(id string) (*entities.Skill, error) {
	skill, ok := c.monsterSkills[id]
	if !ok {
		return nil, errors.NotFoundf("monster skill %q not found", id)
	}
	return skill, nil
}

// DefaultMonsterSkill returns the fallback skill used when none of a
// monster's listed skills resolve.
func (c *Catalog) DefaultMonsterSkill() *entities.Skill {
	return c.monsterSkills[DefaultMonsterSkillID]
}

// ResolveMonsterSkills maps a monster's skill ids to catalog entries,
// silently dropping ids that do not resolve.
func (c *Catalog) ResolveMonsterSkills(monster *entities.Monster) []*entities.Skill {
	var out []*entities.Skill
	for _, id := range monster.Skills {
		if skill, ok := c.monsterSkills[id]; ok {
			out = append(out, skill)
		}
	}
	return out
}

// SkillsForClass lists the player skills usable by the given class at
// the given level, in file order.
func (c *Catalog) SkillsForClass(class entities.Class, level int) []*entities.Skill {
	var out []*entities.Skill
	for _, id := range c.skillOrder {
		skill := c.skills[id]
		if skill.RequiredLevel <= level && skill.AllowedFor(class) {
			out = append(out, skill)
		}
	}
	return out
}

// RandomMonster picks a monster whose level falls inside the band
// around the player's level, uniformly at random. If the band is
// empty the lowest-level monster is used.
func (c *Catalog) RandomMonster(roller dice.Roller, playerLevel int) (*entities.Monster, error) {
	minLevel := playerLevel - engine.MonsterLevelBandBelow
	maxLevel := playerLevel + engine.MonsterLevelBandAbove

	var candidates []*entities.Monster
	for _, id := range c.monsterOrder {
		monster := c.monsters[id]
		if monster.Level >= minLevel && monster.Level <= maxLevel {
			candidates = append(candidates, monster)
		}
	}

	if len(candidates) == 0 {
		return c.lowestLevelMonster().Spawn(), nil
	}
	if len(candidates) == 1 {
		return candidates[0].Spawn(), nil
	}

	roll, err := roller.Roll(len(candidates))
	if err != nil {
		return nil, errors.Wrap(err, "rolling monster selection")
	}
	return candidates[roll-1].Spawn(), nil
}

// RandomItem picks a rarity-weighted item among those whose required
// level falls in [minLevel, maxLevel].
func (c *Catalog) RandomItem(roller dice.Roller, minLevel, maxLevel int) (*entities.Item, error) {
	var candidates []*entities.Item
	totalWeight := 0
	for _, id := range c.itemOrder {
		item := c.items[id]
		level := item.RequiredLevel
		if level == 0 {
			level = 1
		}
		if level < minLevel || level > maxLevel {
			continue
		}
		candidates = append(candidates, item)
		totalWeight += c.weightOf(item)
	}

	if len(candidates) == 0 {
		return nil, errors.NotFoundf("no items in level range [%d, %d]", minLevel, maxLevel)
	}

	roll, err := roller.Roll(totalWeight)
	if err != nil {
		return nil, errors.Wrap(err, "rolling item selection")
	}
	for _, item := range candidates {
		roll -= c.weightOf(item)
		if roll <= 0 {
			return item.Clone(), nil
		}
	}
	return candidates[len(candidates)-1].Clone(), nil
}

func (c *Catalog) weightOf(item *entities.Item) int {
	if weight, ok := rarityWeights[item.Rarity]; ok {
		return weight
	}
	return 100
}

func (c *Catalog) lowestLevelMonster() *entities.Monster {
	ids := make([]string, len(c.monsterOrder))
	copy(ids, c.monsterOrder)
	sort.SliceStable(ids, func(i, j int) bool {
		return c.monsters[ids[i]].Level < c.monsters[ids[j]].Level
	})
	return c.monsters[ids[0]]
}
