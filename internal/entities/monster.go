package entities

// MonsterTier classifies how dangerous a monster is relative to its level.
type MonsterTier string

// Monster tiers
const (
	TierCommon MonsterTier = "common"
	TierElite  MonsterTier = "elite"
	TierRare   MonsterTier = "rare"
	TierBoss   MonsterTier = "boss"
)

// DropTableEntry is one independent drop roll: Chance percent in [0,100],
// quantity uniform in [MinQuantity, MaxQuantity].
type DropTableEntry struct {
	ItemID      string `json:"item_id" yaml:"item_id"`
	Chance      int    `json:"chance" yaml:"chance"`
	MinQuantity int    `json:"min_quantity" yaml:"min_quantity"`
	MaxQuantity int    `json:"max_quantity" yaml:"max_quantity"`
}

// Monster is a catalog entry. An encounter clones the entry via Spawn so the
// live instance can take damage without mutating the catalog.
type Monster struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description,omitempty" yaml:"description"`
	Level       int              `json:"level" yaml:"level"`
	Health      int              `json:"health" yaml:"health"`
	MaxHealth   int              `json:"max_health" yaml:"max_health"`
	Attack      int              `json:"attack" yaml:"attack"`
	Defense     int              `json:"defense" yaml:"defense"`
	Element     Element          `json:"element" yaml:"element"`
	Weakness    Element          `json:"weakness" yaml:"weakness"`
	Skills      []string         `json:"skills" yaml:"skills"`
	XPReward    int              `json:"xp_reward" yaml:"xp_reward"`
	GoldReward  int              `json:"gold_reward" yaml:"gold_reward"`
	DropTable   []DropTableEntry `json:"drop_table,omitempty" yaml:"drop_table"`
	MaxBreakBar int              `json:"max_break_bar" yaml:"max_break_bar"`
	BreakBar    int              `json:"break_bar" yaml:"break_bar"`
	Stunned     bool             `json:"stunned" yaml:"-"`
	Tier        MonsterTier      `json:"tier" yaml:"tier"`
}

// Spawn returns a fresh combat instance with health and break bar reset to
// their maximums and the stun flag cleared.
func (m *Monster) Spawn() *Monster {
	out := *m
	out.Health = out.MaxHealth
	out.BreakBar = out.MaxBreakBar
	out.Stunned = false
	out.Skills = append([]string(nil), m.Skills...)
	out.DropTable = append([]DropTableEntry(nil), m.DropTable...)
	return &out
}
