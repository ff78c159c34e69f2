// Package combat implements the turn-by-turn combat engine: the combatant stat
// block, the combat state machine, and turn resolution.
package combat

import (
	"fmt"
)

// Combatant is one side's mutable combat stat block: the hero, or a monster
// instance built from an enemy template.
//
// Health is not clamped to MaxHealth here; over-heal rules live with the caller.
type Combatant struct {
	Health      int `yaml:"health"`
	MaxHealth   int `yaml:"max_health"`
	Proficiency int `yaml:"proficiency"`
	DamageRes   int `yaml:"damage_res"`
	DamageBonus int `yaml:"damage_bonus"`
	// NegativeFeedback counts consecutive exchanges this side has won and is
	// subtracted from its roll. Reset to 0 when the side loses an exchange.
	NegativeFeedback int `yaml:"negative_feedback"`
}

// String renders the stat block as health/max_health/proficiency/damage_res/damage_bonus.
func (c Combatant) String() string {
	return fmt.Sprintf("%d/%d/%d/%d/%d", c.Health, c.MaxHealth, c.Proficiency, c.DamageRes, c.DamageBonus)
}

// Validate checks the stat block invariants.
//
// Postcondition: Returns nil iff MaxHealth >= 0.
func (c Combatant) Validate() error {
	if c.MaxHealth < 0 {
		return fmt.Errorf("combatant: max_health must be >= 0, got %d", c.MaxHealth)
	}
	return nil
}

// IsDead reports whether the combatant has dropped below 1 health.
func (c *Combatant) IsDead() bool {
	return c.Health < 1
}

// StatBonus is a flat modifier granted by equipment or consumables.
type StatBonus struct {
	MaxHealth   int `yaml:"max_health"`
	Proficiency int `yaml:"proficiency"`
	DamageRes   int `yaml:"damage_res"`
	DamageBonus int `yaml:"damage_bonus"`
}

// Boost adds b to the combatant in place. Health is left untouched.
func (c *Combatant) Boost(b StatBonus) {
	c.MaxHealth += b.MaxHealth
	c.Proficiency += b.Proficiency
	c.DamageRes += b.DamageRes
	c.DamageBonus += b.DamageBonus
}

// Hero is the persistent player character. Its stat block is carried from one
// encounter to the next.
type Hero struct {
	Stats Combatant
}

// State is the combat state machine.
//
//	Init → InProgress → {EnemyDead | HeroDead} → Ended
//
// The engine performs every transition except the final one into Ended,
// which belongs to the caller once loot and narration are processed.
type State int

const (
	StateInit State = iota
	StateInProgress
	StateEnemyDead
	StateHeroDead
	StateEnded
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateInProgress:
		return "in progress"
	case StateEnemyDead:
		return "enemy dead"
	case StateHeroDead:
		return "hero dead"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further turn may be resolved in s.
func (s State) IsTerminal() bool {
	return s == StateEnemyDead || s == StateHeroDead || s == StateEnded
}
