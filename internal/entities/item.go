package entities

// Element is a damage or affinity element shared by items, skills, and
// monsters.
type Element string

// Elements
const (
	ElementNone     Element = "none"
	ElementPhysical Element = "physical"
	ElementFire     Element = "fire"
	ElementWater    Element = "water"
	ElementEarth    Element = "earth"
	ElementAir      Element = "air"
	ElementLight    Element = "light"
	ElementDark     Element = "dark"
)

// ItemType classifies catalog items.
type ItemType string

// Item types
const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeHelmet     ItemType = "helmet"
	ItemTypeChestplate ItemType = "chestplate"
	ItemTypeLeggings   ItemType = "leggings"
	ItemTypeBoots      ItemType = "boots"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeMaterial   ItemType = "material"
)

// EquipSlotFor maps an equippable item type to its slot. The second return
// is false for non-equippable types.
func EquipSlotFor(t ItemType) (EquipSlot, bool) {
	switch t {
	case ItemTypeWeapon:
		return SlotWeapon, true
	case ItemTypeHelmet:
		return SlotHelmet, true
	case ItemTypeChestplate:
		return SlotChestplate, true
	case ItemTypeLeggings:
		return SlotLeggings, true
	case ItemTypeBoots:
		return SlotBoots, true
	default:
		return "", false
	}
}

// Rarity is an item rarity tier, common through cosmic.
type Rarity string

// Rarity tiers, most to least frequent
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythical  Rarity = "mythical"
	RarityDivine    Rarity = "divine"
	RarityCosmic    Rarity = "cosmic"
)

// ItemStats are the flat bonuses an equipped item contributes. Attribute
// bonuses feed back into the raw attributes before derivation; the rest add
// to the derived stats directly.
type ItemStats struct {
	Attack     int `json:"attack,omitempty" yaml:"attack"`
	Defense    int `json:"defense,omitempty" yaml:"defense"`
	Health     int `json:"health,omitempty" yaml:"health"`
	Mana       int `json:"mana,omitempty" yaml:"mana"`
	CritChance int `json:"crit_chance,omitempty" yaml:"crit_chance"`
	CritDamage int `json:"crit_damage,omitempty" yaml:"crit_damage"`

	Strength     int `json:"strength,omitempty" yaml:"strength"`
	Intelligence int `json:"intelligence,omitempty" yaml:"intelligence"`
	Dexterity    int `json:"dexterity,omitempty" yaml:"dexterity"`
	Vitality     int `json:"vitality,omitempty" yaml:"vitality"`
}

// Attributes returns just the raw attribute portion of the bonuses.
func (s ItemStats) Attributes() BaseAttributes {
	return BaseAttributes{
		Strength:     s.Strength,
		Intelligence: s.Intelligence,
		Dexterity:    s.Dexterity,
		Vitality:     s.Vitality,
	}
}

// ConsumableEffect describes what using a consumable does.
type ConsumableEffect struct {
	HealAmount int `json:"heal_amount,omitempty" yaml:"heal_amount"`
	ManaAmount int `json:"mana_amount,omitempty" yaml:"mana_amount"`
}

// Item is a catalog entry. Catalog entries are read-only; inventory and
// equipment hold independent copies that may be consumed or discarded
// without touching the catalog.
type Item struct {
	ID            string            `json:"id" yaml:"id"`
	Name          string            `json:"name" yaml:"name"`
	Type          ItemType          `json:"type" yaml:"type"`
	Rarity        Rarity            `json:"rarity" yaml:"rarity"`
	Description   string            `json:"description,omitempty" yaml:"description"`
	Flavor        string            `json:"flavor,omitempty" yaml:"flavor"`
	Stats         *ItemStats        `json:"stats,omitempty" yaml:"stats"`
	Effect        *ConsumableEffect `json:"effect,omitempty" yaml:"effect"`
	SellPrice     int               `json:"sell_price" yaml:"sell_price"`
	BuyPrice      int               `json:"buy_price" yaml:"buy_price"`
	RequiredLevel int               `json:"required_level,omitempty" yaml:"required_level"`
	Element       Element           `json:"element,omitempty" yaml:"element"`
}

// Equippable reports whether the item goes in an equipment slot.
func (i *Item) Equippable() bool {
	_, ok := EquipSlotFor(i.Type)
	return ok
}

// Usable reports whether the item is a consumable with a defined effect.
func (i *Item) Usable() bool {
	return i.Type == ItemTypeConsumable && i.Effect != nil &&
		(i.Effect.HealAmount > 0 || i.Effect.ManaAmount > 0)
}

// Clone returns a deep copy safe to place in an inventory.
func (i *Item) Clone() *Item {
	out := *i
	if i.Stats != nil {
		stats := *i.Stats
		out.Stats = &stats
	}
	if i.Effect != nil {
		effect := *i.Effect
		out.Effect = &effect
	}
	return &out
}
