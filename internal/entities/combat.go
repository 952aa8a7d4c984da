package entities

// SessionSchemaVersion is stored on every persisted combat session so future
// shape changes can be migrated on read.
const SessionSchemaVersion = 1

// CombatEffect is a timed buff or debuff. The schema is persisted with the
// session; no implemented skill applies one yet.
type CombatEffect struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Kind     string    `json:"kind"` // "buff" or "debuff"
	Duration int       `json:"duration"`
	Stats    ItemStats `json:"stats"`
}

// CombatSession is the live state of one fight. At most one session exists
// per player; it is deleted on victory, defeat, or a successful flee.
type CombatSession struct {
	Version  int    `json:"version"`
	PlayerID string `json:"player_id"`

	Monster Monster `json:"monster"`

	// PlayerTurn is the turn flag: true while the player may act, false
	// while the monster's counter-turn is pending. It is the sole guard
	// against double-submitted actions.
	PlayerTurn bool `json:"player_turn"`
	TurnCount  int  `json:"turn_count"`

	PlayerBuffs    []CombatEffect `json:"player_buffs,omitempty"`
	PlayerDebuffs  []CombatEffect `json:"player_debuffs,omitempty"`
	MonsterBuffs   []CombatEffect `json:"monster_buffs,omitempty"`
	MonsterDebuffs []CombatEffect `json:"monster_debuffs,omitempty"`

	Log        []string `json:"log"`
	LastAction string   `json:"last_action"`

	StartedAt int64 `json:"started_at"`
}

// Record appends an action description to the log and remembers it as the
// most recent action.
func (s *CombatSession) Record(action string) {
	s.LastAction = action
	s.Log = append(s.Log, action)
}
