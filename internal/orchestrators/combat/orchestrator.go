// Package combat implements the combat orchestrator: the state machine
// driving one fight from start to victory, defeat, or flee.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/plaggbot/rpg-api/internal/orchestrators/combat Service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/plaggbot/rpg-api/internal/catalog"
	"github.com/plaggbot/rpg-api/internal/engine"
	"github.com/plaggbot/rpg-api/internal/entities"
	"github.com/plaggbot/rpg-api/internal/errors"
	"github.com/plaggbot/rpg-api/internal/pkg/clock"
	characterrepo "github.com/plaggbot/rpg-api/internal/repositories/character"
	combatsession "github.com/plaggbot/rpg-api/internal/repositories/combat_session"
	"github.com/plaggbot/rpg-api/internal/repositories/leaderboard"
)

// BasicAttackSkillID is the skill every character can always use.
const BasicAttackSkillID = "basic_attack"

// Service defines the interface for combat operations
type Service interface {
	// Start begins a fight against a monster near the player's level.
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Attack resolves a player attack or skill use.
	Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error)

	// UseItem consumes an inventory item mid-fight.
	UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error)

	// Flee attempts to escape the fight.
	Flee(ctx context.Context, input *FleeInput) (*FleeOutput, error)

	// MonsterTurn resolves the monster's pending counter-turn.
	MonsterTurn(ctx context.Context, input *MonsterTurnInput) (*MonsterTurnOutput, error)

	// Get returns a snapshot of the active fight.
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	SessionRepo   combatsession.Repository
	Leaderboard   leaderboard.Repository
	Engine        engine.Engine
	Catalog       *catalog.Catalog
	DiceRoller    dice.Roller
	Clock         clock.Clock

	// SessionTTL is optional; zero means sessions live until resolved.
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.Leaderboard == nil {
		vb.RequiredField("Leaderboard")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo characterrepo.Repository
	sessionRepo   combatsession.Repository
	leaderboard   leaderboard.Repository
	engine        engine.Engine
	catalog       *catalog.Catalog
	roller        dice.Roller
	clock         clock.Clock
	sessionTTL    time.Duration
}

// NewOrchestrator creates a new combat orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		sessionRepo:   cfg.SessionRepo,
		leaderboard:   cfg.Leaderboard,
		engine:        cfg.Engine,
		catalog:       cfg.Catalog,
		roller:        cfg.DiceRoller,
		clock:         c,
		sessionTTL:    cfg.SessionTTL,
	}, nil
}

func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	charOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	char := charOut.Character

	if char.CurrentHealth <= 0 {
		return nil, errors.FailedPrecondition("you are too wounded to fight")
	}

	// Refresh pools so old records pick up current equipment bonuses.
	stats := o.engine.CalculateEffectiveStats(char)
	char.MaxHealth = stats.MaxHealth
	char.MaxMana = stats.MaxMana
	char.ClampResources()

	monster, err := o.catalog.RandomMonster(o.roller, char.Level)
	if err != nil {
		return nil, err
	}

	session := &entities.CombatSession{
		PlayerID:   input.PlayerID,
		Monster:    *monster,
		PlayerTurn: true,
		TurnCount:  1,
	}
	session.Record(fmt.Sprintf("A wild %s appears!", monster.Name))

	// SetNX in the repository makes this the duplicate-session gate.
	if _, err := o.sessionRepo.Create(ctx, combatsession.CreateInput{
		Session: session,
		TTL:     o.sessionTTL,
	}); err != nil {
		if errors.GetCode(err) == errors.CodeAlreadyExists {
			return nil, errors.FailedPrecondition("you are already in a fight")
		}
		return nil, err
	}

	char.Stats.TotalBattles++
	char.LastBattle = o.clock.Now().Unix()
	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "combat started",
		"player_id", input.PlayerID,
		"monster_id", monster.ID,
		"monster_level", monster.Level)

	return &StartOutput{Session: buildView(char, session)}, nil
}

func (o *orchestrator) Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	char, session, err := o.loadFight(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	skillID := input.SkillID
	if skillID == "" {
		skillID = BasicAttackSkillID
	}
	skill, err := o.catalog.Skill(skillID)
	if err != nil {
		return nil, errors.InvalidArgumentf("unknown skill %q", skillID)
	}
	if skillID != BasicAttackSkillID && !char.KnowsSkill(skillID) {
		return nil, errors.InvalidArgumentf("you have not learned %s", skill.Name)
	}
	if !skill.AllowedFor(char.Class) {
		return nil, errors.InvalidArgumentf("%s is not usable by your class", skill.Name)
	}
	if char.Level < skill.RequiredLevel {
		return nil, errors.FailedPreconditionf("%s requires level %d", skill.Name, skill.RequiredLevel)
	}
	if char.CurrentMana < skill.ManaCost {
		return nil, errors.FailedPrecondition("not enough mana to use that skill")
	}

	char.CurrentMana -= skill.ManaCost

	stats := o.engine.CalculateEffectiveStats(char)
	attacker := engine.AttackProfile{
		Attack:     stats.Attack,
		CritChance: stats.CritChance,
		CritDamage: stats.CritDamage,
	}
	defender := engine.DefenseProfile{Defense: session.Monster.Defense}

	multiplier := skill.DamageMultiplier
	weaknessHit := false
	var extraEffects []string
	if skill.Element == session.Monster.Weakness && session.Monster.BreakBar > 0 {
		session.Monster.BreakBar--
		multiplier *= engine.WeaknessMultiplier
		weaknessHit = true
		extraEffects = append(extraEffects, "Weakness exploited!")
		if session.Monster.BreakBar == 0 {
			session.Monster.Stunned = true
			extraEffects = append(extraEffects, "Enemy stunned!")
		}
	}

	result, err := o.engine.ResolveDamage(attacker, defender, multiplier)
	if err != nil {
		return nil, err
	}
	applyDamage(&session.Monster, result.Damage)
	char.Stats.TotalDamageDealt += result.Damage

	followUpDamage := 0
	if result.Critical && session.Monster.Health > 0 {
		followUp, err := o.engine.RollChance(engine.FollowUpChancePercent)
		if err != nil {
			return nil, err
		}
		if followUp {
			bonus, err := o.engine.ResolveDamage(attacker, defender, engine.FollowUpMultiplier)
			if err != nil {
				return nil, err
			}
			followUpDamage = bonus.Damage
			applyDamage(&session.Monster, followUpDamage)
			char.Stats.TotalDamageDealt += followUpDamage
			extraEffects = append(extraEffects, "Follow-up attack!")
		}
	}

	session.Record(attackLogLine(skill.Name, result, followUpDamage, extraEffects))
	session.PlayerTurn = false

	out := &AttackOutput{
		Outcome:        OutcomeOngoing,
		Damage:         result.Damage,
		Critical:       result.Critical,
		FollowUpDamage: followUpDamage,
		WeaknessHit:    weaknessHit,
	}

	if session.Monster.Health <= 0 {
		rewards, err := o.finishVictory(ctx, char, session)
		if err != nil {
			return nil, err
		}
		out.Outcome = OutcomeVictory
		out.Rewards = rewards
		out.Session = buildView(char, session)
		return out, nil
	}

	if err := o.persistFight(ctx, char, session); err != nil {
		return nil, err
	}
	out.Session = buildView(char, session)
	return out, nil
}

func (o *orchestrator) UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	char, session, err := o.loadFight(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	if input.ItemIndex < 0 || input.ItemIndex >= len(char.Inventory) {
		return nil, errors.InvalidArgumentf("no item at inventory slot %d", input.ItemIndex)
	}
	item := char.Inventory[input.ItemIndex]
	if !item.Usable() {
		return nil, errors.InvalidArgumentf("%s cannot be consumed", item.Name)
	}

	healed, restored := applyConsumable(char, item.Effect)
	if healed == 0 && restored == 0 {
		return nil, errors.FailedPrecondition("nothing to restore, health and mana are full")
	}

	char.Inventory = append(char.Inventory[:input.ItemIndex], char.Inventory[input.ItemIndex+1:]...)

	session.Record(itemLogLine(item.Name, healed, restored))
	session.PlayerTurn = false

	if err := o.persistFight(ctx, char, session); err != nil {
		return nil, err
	}

	return &UseItemOutput{
		Session:        buildView(char, session),
		HealthRestored: healed,
		ManaRestored:   restored,
	}, nil
}

func (o *orchestrator) Flee(ctx context.Context, input *FleeInput) (*FleeOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	char, session, err := o.loadFight(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	escaped, err := o.engine.RollChance(engine.FleeChancePercent)
	if err != nil {
		return nil, err
	}

	if escaped {
		if _, err := o.sessionRepo.Delete(ctx, combatsession.DeleteInput{PlayerID: input.PlayerID}); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "player fled combat",
			"player_id", input.PlayerID,
			"monster_id", session.Monster.ID)
		return &FleeOutput{Escaped: true, Outcome: OutcomeFled}, nil
	}

	session.Record(fmt.Sprintf("You failed to flee! The %s blocks your escape!", session.Monster.Name))
	session.PlayerTurn = false

	if err := o.persistFight(ctx, char, session); err != nil {
		return nil, err
	}

	return &FleeOutput{
		Escaped: false,
		Outcome: OutcomeOngoing,
		Session: buildView(char, session),
	}, nil
}

func (o *orchestrator) MonsterTurn(ctx context.Context, input *MonsterTurnInput) (*MonsterTurnOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	charOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	char := charOut.Character

	sessOut, err := o.sessionRepo.Get(ctx, combatsession.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.FailedPrecondition("you are not in a fight")
		}
		return nil, err
	}
	session := sessOut.Session

	if session.PlayerTurn {
		return nil, errors.FailedPrecondition("no monster turn is pending")
	}

	monster := &session.Monster

	if monster.Stunned {
		monster.Stunned = false
		session.Record(fmt.Sprintf("%s is stunned and loses their turn!", monster.Name))
		session.TurnCount++
		session.PlayerTurn = true

		if err := o.persistFight(ctx, char, session); err != nil {
			return nil, err
		}
		return &MonsterTurnOutput{
			Session:    buildView(char, session),
			Outcome:    OutcomeOngoing,
			WasStunned: true,
		}, nil
	}

	skill := o.pickMonsterSkill(monster)

	stats := o.engine.CalculateEffectiveStats(char)
	attacker := engine.AttackProfile{
		Attack:     monster.Attack,
		CritChance: engine.MonsterCritChance,
		CritDamage: engine.MonsterCritDamage,
	}
	defender := engine.DefenseProfile{Defense: stats.Defense}

	result, err := o.engine.ResolveDamage(attacker, defender, skill.DamageMultiplier)
	if err != nil {
		return nil, err
	}

	char.CurrentHealth -= result.Damage
	if char.CurrentHealth < 0 {
		char.CurrentHealth = 0
	}
	char.Stats.TotalDamageTaken += result.Damage

	line := fmt.Sprintf("%s used %s! You took %d damage", monster.Name, skill.Name, result.Damage)
	if result.Critical {
		line += " (CRITICAL!)"
	}
	session.Record(line)
	session.TurnCount++
	session.PlayerTurn = true

	out := &MonsterTurnOutput{
		Outcome:   OutcomeOngoing,
		SkillName: skill.Name,
		Damage:    result.Damage,
		Critical:  result.Critical,
	}

	if char.CurrentHealth <= 0 {
		goldLost, err := o.finishDefeat(ctx, char, session)
		if err != nil {
			return nil, err
		}
		out.Outcome = OutcomeDefeat
		out.GoldLost = goldLost
		out.Session = buildView(char, session)
		return out, nil
	}

	if err := o.persistFight(ctx, char, session); err != nil {
		return nil, err
	}
	out.Session = buildView(char, session)
	return out, nil
}

func (o *orchestrator) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	charOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}

	sessOut, err := o.sessionRepo.Get(ctx, combatsession.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}

	return &GetOutput{Session: buildView(charOut.Character, sessOut.Session)}, nil
}

// loadFight fetches the character and session and enforces the turn
// flag, the sole guard against double-submitted actions.
func (o *orchestrator) loadFight(ctx context.Context, playerID string) (*entities.Character, *entities.CombatSession, error) {
	charOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{PlayerID: playerID})
	if err != nil {
		return nil, nil, err
	}

	sessOut, err := o.sessionRepo.Get(ctx, combatsession.GetInput{PlayerID: playerID})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil, errors.FailedPrecondition("you are not in a fight")
		}
		return nil, nil, err
	}

	if !sessOut.Session.PlayerTurn {
		return nil, nil, errors.FailedPrecondition("it is not your turn")
	}

	return charOut.Character, sessOut.Session, nil
}

func (o *orchestrator) persistFight(ctx context.Context, char *entities.Character, session *entities.CombatSession) error {
	if _, err := o.sessionRepo.Save(ctx, combatsession.SaveInput{Session: session}); err != nil {
		return err
	}
	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return err
	}
	return nil
}

func (o *orchestrator) pickMonsterSkill(monster *entities.Monster) *entities.Skill {
	skills := o.catalog.ResolveMonsterSkills(monster)
	if len(skills) == 0 {
		return o.catalog.DefaultMonsterSkill()
	}
	if len(skills) == 1 {
		return skills[0]
	}
	idx, err := o.engine.RollIndex(len(skills))
	if err != nil {
		return o.catalog.DefaultMonsterSkill()
	}
	return skills[idx]
}

// finishVictory applies rewards, persists the character, and deletes
// the session.
func (o *orchestrator) finishVictory(ctx context.Context, char *entities.Character, session *entities.CombatSession) (*RewardView, error) {
	monster := &session.Monster

	rewards, err := o.engine.CalculateRewards(monster, char.Level)
	if err != nil {
		return nil, err
	}

	char.Gold += rewards.Gold
	levelUp := o.engine.ApplyXP(char, rewards.XP)
	char.Stats.TotalVictories++
	char.Stats.MonstersKilled++

	if levelUp.LevelsGained > 0 {
		for _, skill := range o.catalog.SkillsForClass(char.Class, char.Level) {
			if !char.KnowsSkill(skill.ID) {
				char.Skills = append(char.Skills, skill.ID)
			}
		}
	}

	view := &RewardView{
		XP:               rewards.XP,
		Gold:             rewards.Gold,
		LevelsGained:     levelUp.LevelsGained,
		StatPointsGained: levelUp.StatPointsGained,
	}

	for _, drop := range rewards.Drops {
		item := o.rollDropItem(char.Level)
		if item == nil {
			continue
		}
		for i := 0; i < drop.Quantity; i++ {
			char.Inventory = append(char.Inventory, *item.Clone())
		}
		view.Drops = append(view.Drops, DropView{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: drop.Quantity,
		})
	}

	// Level-ups change max pools; refresh and clamp before persisting.
	stats := o.engine.CalculateEffectiveStats(char)
	char.MaxHealth = stats.MaxHealth
	char.MaxMana = stats.MaxMana
	char.ClampResources()

	session.Record(fmt.Sprintf("You defeated the %s! Gained %d XP and %d gold.", monster.Name, rewards.XP, rewards.Gold))

	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, err
	}
	if _, err := o.sessionRepo.Delete(ctx, combatsession.DeleteInput{PlayerID: char.PlayerID}); err != nil {
		return nil, err
	}
	o.updateLeaderboards(ctx, char)

	slog.InfoContext(ctx, "combat victory",
		"player_id", char.PlayerID,
		"monster_id", monster.ID,
		"xp", rewards.XP,
		"gold", rewards.Gold,
		"levels_gained", levelUp.LevelsGained)

	return view, nil
}

// finishDefeat docks gold, leaves the character at exactly 1 health,
// and deletes the session. Returns the gold lost.
func (o *orchestrator) finishDefeat(ctx context.Context, char *entities.Character, session *entities.CombatSession) (int, error) {
	goldLost := char.Gold * engine.DefeatGoldLossPercent / 100
	char.Gold -= goldLost
	char.Stats.TotalDeaths++
	char.CurrentHealth = 1

	session.Record(fmt.Sprintf("You were defeated by the %s and lost %d gold...", session.Monster.Name, goldLost))

	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return 0, err
	}
	if _, err := o.sessionRepo.Delete(ctx, combatsession.DeleteInput{PlayerID: char.PlayerID}); err != nil {
		return 0, err
	}
	o.updateLeaderboards(ctx, char)

	slog.InfoContext(ctx, "combat defeat",
		"player_id", char.PlayerID,
		"monster_id", session.Monster.ID,
		"gold_lost", goldLost)

	return goldLost, nil
}

// rollDropItem resolves one successful drop-table entry as a
// rarity-weighted pick near the player's level, independent of the
// entry's own item id. Failures only cost the drop, never the victory.
func (o *orchestrator) rollDropItem(playerLevel int) *entities.Item {
	minLevel := playerLevel - engine.ItemLevelBand
	if minLevel < 1 {
		minLevel = 1
	}
	maxLevel := playerLevel + engine.ItemLevelBand

	item, err := o.catalog.RandomItem(o.roller, minLevel, maxLevel)
	if err != nil {
		// High level bands can be empty; widen to the whole catalog.
		item, err = o.catalog.RandomItem(o.roller, 1, maxLevel)
		if err != nil {
			return nil
		}
	}
	return item
}

// updateLeaderboards is best effort; a stale standing is not worth
// failing the gameplay action.
func (o *orchestrator) updateLeaderboards(ctx context.Context, char *entities.Character) {
	_, err := o.leaderboard.SetScores(ctx, leaderboard.SetScoresInput{
		PlayerID: char.PlayerID,
		Scores: leaderboard.Scores{
			Level:          char.Level,
			Gold:           char.Gold,
			Victories:      char.Stats.TotalVictories,
			MonstersKilled: char.Stats.MonstersKilled,
		},
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to update leaderboards",
			"player_id", char.PlayerID,
			"error", err.Error())
	}
}

func applyDamage(monster *entities.Monster, damage int) {
	monster.Health -= damage
	if monster.Health < 0 {
		monster.Health = 0
	}
}

// applyConsumable restores health and mana capped at the missing
// headroom, returning the amounts actually restored.
func applyConsumable(char *entities.Character, effect *entities.ConsumableEffect) (healed, restored int) {
	if effect == nil {
		return 0, 0
	}
	if effect.HealAmount > 0 {
		healed = effect.HealAmount
		if headroom := char.MaxHealth - char.CurrentHealth; healed > headroom {
			healed = headroom
		}
		char.CurrentHealth += healed
	}
	if effect.ManaAmount > 0 {
		restored = effect.ManaAmount
		if headroom := char.MaxMana - char.CurrentMana; restored > headroom {
			restored = headroom
		}
		char.CurrentMana += restored
	}
	return healed, restored
}

func attackLogLine(skillName string, result *engine.DamageResult, followUpDamage int, extraEffects []string) string {
	line := fmt.Sprintf("You used %s! Dealt %d damage", skillName, result.Damage)
	if result.Critical {
		line += " (CRITICAL!)"
	}
	if followUpDamage > 0 {
		line += fmt.Sprintf(" + %d follow-up damage", followUpDamage)
	}
	for _, effect := range extraEffects {
		line += " " + effect
	}
	return line
}

func itemLogLine(itemName string, healed, restored int) string {
	line := fmt.Sprintf("You used %s!", itemName)
	if healed > 0 {
		line += fmt.Sprintf(" Restored %d health.", healed)
	}
	if restored > 0 {
		line += fmt.Sprintf(" Restored %d mana.", restored)
	}
	return line
}

func buildView(char *entities.Character, session *entities.CombatSession) *SessionView {
	monster := session.Monster
	return &SessionView{
		Player: PlayerView{
			PlayerID:      char.PlayerID,
			Level:         char.Level,
			CurrentHealth: char.CurrentHealth,
			MaxHealth:     char.MaxHealth,
			CurrentMana:   char.CurrentMana,
			MaxMana:       char.MaxMana,
		},
		Monster: MonsterView{
			ID:          monster.ID,
			Name:        monster.Name,
			Description: monster.Description,
			Level:       monster.Level,
			Health:      monster.Health,
			MaxHealth:   monster.MaxHealth,
			Element:     monster.Element,
			Weakness:    monster.Weakness,
			BreakBar:    monster.BreakBar,
			MaxBreakBar: monster.MaxBreakBar,
			Stunned:     monster.Stunned,
		},
		PlayerTurn: session.PlayerTurn,
		TurnCount:  session.TurnCount,
		LastAction: session.LastAction,
		Log:        append([]string(nil), session.Log...),
	}
}
