package catalog

import (
	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/errors"
)

// ClassInfo describes a playable class: its starting attribute spread
// and the skills it learns.
type ClassInfo struct {
	Class              entities.Class          `json:"class"`
	Name               string                  `json:"name"`
	Description        string                  `json:"description"`
	StartingAttributes entities.BaseAttributes `json:"starting_attributes"`
	GrowthAttributes   entities.BaseAttributes `json:"growth_attributes"`
	SkillIDs           []string                `json:"skill_ids,omitempty"`
	// Hidden classes are not offered during character creation.
	Hidden bool `json:"hidden,omitempty"`
}

// PathInfo describes a path specialization.
type PathInfo struct {
	Path        entities.Path `json:"path"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

var classInfos = []ClassInfo{
	{
		Class:              entities.ClassWarrior,
		Name:               "Warrior",
		Description:        "A sturdy frontline fighter with high defense and protective abilities.",
		StartingAttributes: entities.BaseAttributes{Strength: 8, Intelligence: 3, Dexterity: 5, Vitality: 9},
		GrowthAttributes:   entities.BaseAttributes{Strength: 3, Intelligence: 1, Dexterity: 2, Vitality: 3},
		SkillIDs:           []string{"shield_bash"},
	},
	{
		Class:              entities.ClassMage,
		Name:               "Mage",
		Description:        "A powerful spellcaster with devastating magical abilities and area effects.",
		StartingAttributes: entities.BaseAttributes{Strength: 3, Intelligence: 10, Dexterity: 4, Vitality: 6},
		GrowthAttributes:   entities.BaseAttributes{Strength: 1, Intelligence: 4, Dexterity: 2, Vitality: 2},
		SkillIDs:           []string{"fireball", "ice_shard"},
	},
	{
		Class:              entities.ClassRogue,
		Name:               "Rogue",
		Description:        "A sneaky assassin with high critical hit chance and stealth abilities.",
		StartingAttributes: entities.BaseAttributes{Strength: 6, Intelligence: 5, Dexterity: 10, Vitality: 4},
		GrowthAttributes:   entities.BaseAttributes{Strength: 2, Intelligence: 2, Dexterity: 4, Vitality: 1},
		SkillIDs:           []string{"backstab"},
	},
	{
		Class:              entities.ClassArcher,
		Name:               "Archer",
		Description:        "A precise ranged fighter with excellent accuracy and hunting skills.",
		StartingAttributes: entities.BaseAttributes{Strength: 5, Intelligence: 4, Dexterity: 9, Vitality: 7},
		GrowthAttributes:   entities.BaseAttributes{Strength: 2, Intelligence: 1, Dexterity: 4, Vitality: 2},
		SkillIDs:           []string{"precise_shot"},
	},
	{
		Class:              entities.ClassHealer,
		Name:               "Healer",
		Description:        "A support specialist with powerful healing abilities and team buffs.",
		StartingAttributes: entities.BaseAttributes{Strength: 4, Intelligence: 8, Dexterity: 5, Vitality: 8},
		GrowthAttributes:   entities.BaseAttributes{Strength: 1, Intelligence: 3, Dexterity: 2, Vitality: 3},
		SkillIDs:           []string{"heal"},
	},
	{
		Class:              entities.ClassBattlemage,
		Name:               "Battlemage",
		Description:        "A hybrid warrior-mage combining melee combat with magical prowess.",
		StartingAttributes: entities.BaseAttributes{Strength: 7, Intelligence: 7, Dexterity: 5, Vitality: 6},
		GrowthAttributes:   entities.BaseAttributes{Strength: 3, Intelligence: 3, Dexterity: 2, Vitality: 2},
		SkillIDs:           []string{"fireball"},
	},
	{
		Class:              entities.ClassChronoKnight,
		Name:               "Chrono Knight",
		Description:        "A legendary time manipulator with reality-bending abilities.",
		StartingAttributes: entities.BaseAttributes{Strength: 8, Intelligence: 9, Dexterity: 8, Vitality: 8},
		GrowthAttributes:   entities.BaseAttributes{Strength: 3, Intelligence: 4, Dexterity: 3, Vitality: 3},
		Hidden:             true,
	},
}

var pathInfos = []PathInfo{
	{
		Path:        entities.PathDestruction,
		Name:        "Path of Destruction",
		Description: "Embrace chaos and devastation. Boosted critical damage and attack.",
	},
	{
		Path:        entities.PathPreservation,
		Name:        "Path of Preservation",
		Description: "Master defensive techniques and protection. Boosted defense and health.",
	},
	{
		Path:        entities.PathAbundance,
		Name:        "Path of Abundance",
		Description: "Excel in support and sustain. Boosted mana and health.",
	},
	{
		Path:        entities.PathHunt,
		Name:        "Path of The Hunt",
		Description: "Perfect precision and execution. Boosted critical chance and attack.",
	},
}

// Classes lists every playable class, hidden ones included.
func Classes() []ClassInfo {
	out := make([]ClassInfo, len(classInfos))
	copy(out, classInfos)
	return out
}

// ClassByID looks up a class definition.
func ClassByID(class entities.Class) (*ClassInfo, error) {
	for i := range classInfos {
		if classInfos[i].Class == class {
			info := classInfos[i]
			return &info, nil
		}
	}
	return nil, errors.InvalidArgumentf("unknown class %q", class)
}

// Paths lists every path specialization.
func Paths() []PathInfo {
	out := make([]PathInfo, len(pathInfos))
	copy(out, pathInfos)
	return out
}

// PathByID looks up a path definition.
func PathByID(path entities.Path) (*PathInfo, error) {
	for i := range pathInfos {
		if pathInfos[i].Path == path {
			info := pathInfos[i]
			return &info, nil
		}
	}
	return nil, errors.InvalidArgumentf("unknown path %q", path)
}
