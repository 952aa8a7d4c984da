package entities

// Skill is a catalog entry describing one combat action. DamageMultiplier is
// relative to the attacker's base attack; 1.0 is a plain hit.
type Skill struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Description      string   `json:"description,omitempty" yaml:"description"`
	ManaCost         int      `json:"mana_cost" yaml:"mana_cost"`
	DamageMultiplier float64  `json:"damage_multiplier" yaml:"damage_multiplier"`
	Element          Element  `json:"element" yaml:"element"`
	Cooldown         int      `json:"cooldown" yaml:"cooldown"`
	Effects          []string `json:"effects,omitempty" yaml:"effects"`
	RequiredLevel    int      `json:"required_level" yaml:"required_level"`
	RequiredClasses  []Class  `json:"required_classes,omitempty" yaml:"required_classes"`
}

// AllowedFor reports whether the skill's class gate admits the given class.
// An empty gate admits everyone.
func (s *Skill) AllowedFor(class Class) bool {
	if len(s.RequiredClasses) == 0 {
		return true
	}
	for _, c := range s.RequiredClasses {
		if c == class {
			return true
		}
	}
	return false
}
