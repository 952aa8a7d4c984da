// Package entities defines the domain records shared across repositories,
// orchestrators, and handlers.
package entities

// Class is a character class chosen once at creation.
type Class string

// Character classes
const (
	ClassWarrior      Class = "warrior"
	ClassMage         Class = "mage"
	ClassRogue        Class = "rogue"
	ClassArcher       Class = "archer"
	ClassHealer       Class = "healer"
	ClassBattlemage   Class = "battlemage"
	ClassChronoKnight Class = "chrono_knight"
)

// Path is the late-game specialization unlocked at the path level threshold.
// The choice is one-time and irrevocable.
type Path string

// Specialization paths
const (
	PathNone         Path = ""
	PathDestruction  Path = "destruction"
	PathPreservation Path = "preservation"
	PathAbundance    Path = "abundance"
	PathHunt         Path = "hunt"
)

// BaseAttributes holds the four raw character attributes. Derived combat
// numbers live in engine.EffectiveStats, never here.
type BaseAttributes struct {
	Strength     int `json:"strength"`
	Intelligence int `json:"intelligence"`
	Dexterity    int `json:"dexterity"`
	Vitality     int `json:"vitality"`
}

// Add returns the attribute-wise sum of a and b.
func (a BaseAttributes) Add(b BaseAttributes) BaseAttributes {
	return BaseAttributes{
		Strength:     a.Strength + b.Strength,
		Intelligence: a.Intelligence + b.Intelligence,
		Dexterity:    a.Dexterity + b.Dexterity,
		Vitality:     a.Vitality + b.Vitality,
	}
}

// Total returns the sum of all four attributes.
func (a BaseAttributes) Total() int {
	return a.Strength + a.Intelligence + a.Dexterity + a.Vitality
}

// EquipSlot identifies one of the five equipment slots.
type EquipSlot string

// Equipment slots
const (
	SlotWeapon     EquipSlot = "weapon"
	SlotHelmet     EquipSlot = "helmet"
	SlotChestplate EquipSlot = "chestplate"
	SlotLeggings   EquipSlot = "leggings"
	SlotBoots      EquipSlot = "boots"
)

// EquipSlots lists every slot in display order.
var EquipSlots = []EquipSlot{SlotWeapon, SlotHelmet, SlotChestplate, SlotLeggings, SlotBoots}

// Equipment holds at most one item per slot. A nil entry means the slot is
// empty.
type Equipment struct {
	Weapon     *Item `json:"weapon,omitempty"`
	Helmet     *Item `json:"helmet,omitempty"`
	Chestplate *Item `json:"chestplate,omitempty"`
	Leggings   *Item `json:"leggings,omitempty"`
	Boots      *Item `json:"boots,omitempty"`
}

// Slot returns a pointer to the slot's entry so callers can swap it, or nil
// for an unknown slot name.
func (e *Equipment) Slot(slot EquipSlot) **Item {
	switch slot {
	case SlotWeapon:
		return &e.Weapon
	case SlotHelmet:
		return &e.Helmet
	case SlotChestplate:
		return &e.Chestplate
	case SlotLeggings:
		return &e.Leggings
	case SlotBoots:
		return &e.Boots
	default:
		return nil
	}
}

// Equipped returns the non-empty slot contents in display order.
func (e *Equipment) Equipped() []*Item {
	var items []*Item
	for _, slot := range EquipSlots {
		if p := e.Slot(slot); p != nil && *p != nil {
			items = append(items, *p)
		}
	}
	return items
}

// BattleStats tracks cumulative combat statistics for a character.
type BattleStats struct {
	TotalBattles     int `json:"total_battles"`
	TotalVictories   int `json:"total_victories"`
	TotalDeaths      int `json:"total_deaths"`
	TotalDamageDealt int `json:"total_damage_dealt"`
	TotalDamageTaken int `json:"total_damage_taken"`
	MonstersKilled   int `json:"monsters_killed"`
}

// CharacterSchemaVersion is stored on every persisted character so future
// shape changes can be migrated on read.
const CharacterSchemaVersion = 1

// Character is the persistent per-player record. It is keyed by the owning
// player's ID; a player has at most one character.
type Character struct {
	Version  int    `json:"version"`
	PlayerID string `json:"player_id"`

	Level         int `json:"level"`
	XP            int `json:"xp"`
	XPToNextLevel int `json:"xp_to_next_level"`

	Gold             int `json:"gold"`
	GladiatorTokens  int `json:"gladiator_tokens"`
	MiraculousEnergy int `json:"miraculous_energy"`

	Class Class `json:"class"`
	Path  Path  `json:"path"`

	Attributes          BaseAttributes `json:"attributes"`
	StatPointsAvailable int            `json:"stat_points_available"`

	MaxHealth      int `json:"max_health"`
	MaxMana        int `json:"max_mana"`
	MaxStamina     int `json:"max_stamina"`
	CurrentHealth  int `json:"current_health"`
	CurrentMana    int `json:"current_mana"`
	CurrentStamina int `json:"current_stamina"`

	Inventory []Item    `json:"inventory"`
	Equipment Equipment `json:"equipment"`

	Skills []string `json:"skills"`

	Stats BattleStats `json:"stats"`

	CreatedAt  int64 `json:"created_at"`
	LastActive int64 `json:"last_active"`
	LastBattle int64 `json:"last_battle"`
}

// ClampResources floors current pools at 0 and caps them at their maximums.
func (c *Character) ClampResources() {
	c.CurrentHealth = clamp(c.CurrentHealth, 0, c.MaxHealth)
	c.CurrentMana = clamp(c.CurrentMana, 0, c.MaxMana)
	c.CurrentStamina = clamp(c.CurrentStamina, 0, c.MaxStamina)
}

// KnowsSkill reports whether the character has learned the given skill.
func (c *Character) KnowsSkill(skillID string) bool {
	for _, id := range c.Skills {
		if id == skillID {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
