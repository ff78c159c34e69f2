// Package encounter drives one fight between the hero and a monster from start
// to loot: it owns the monster's stat block, steps turns through the combat
// engine, and performs the final transition into combat.StateEnded.
package encounter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baggoblin/baggoblin/internal/game/combat"
	"github.com/baggoblin/baggoblin/internal/game/dice"
	"github.com/baggoblin/baggoblin/internal/game/enemy"
	"github.com/baggoblin/baggoblin/internal/game/item"
)

var (
	// ErrFinished is returned by Step once the fight has a winner, and by Finish after it already ran.
	ErrFinished = errors.New("encounter: combat already resolved")
	// ErrNotResolved is returned by Finish while both sides are alive.
	ErrNotResolved = errors.New("encounter: combat not resolved")
	// ErrTurnLimit is returned by Run when maxTurns elapse without a death.
	ErrTurnLimit = errors.New("encounter: turn limit reached")
)

// Result summarises a finished encounter.
type Result struct {
	EncounterID string
	EnemyID     enemy.ID
	Won         bool
	Turns       int
	Drops       []item.ID
}

// Encounter is a single fight. It is not safe for concurrent use.
type Encounter struct {
	ID      string
	Enemy   *enemy.Enemy
	Monster combat.Combatant

	hero   *combat.Hero
	state  combat.State
	turns  int
	src    dice.Source
	sink   combat.Sink
	logger *zap.Logger
}

// New starts an encounter between hero and a fresh monster built from tmpl.
//
// Precondition: hero, tmpl and src must be non-nil. sink and logger may be nil.
// Postcondition: State() == combat.StateInit; hero.Stats is mutated by later Steps.
func New(hero *combat.Hero, tmpl *enemy.Enemy, src dice.Source, sink combat.Sink, logger *zap.Logger) *Encounter {
	if hero == nil || tmpl == nil || src == nil {
		panic("encounter: New precondition violated: hero, tmpl and src must be non-nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Encounter{
		ID:      uuid.New().String(),
		Enemy:   tmpl,
		Monster: tmpl.NewCombatant(),
		hero:    hero,
		state:   combat.StateInit,
		src:     src,
		sink:    sink,
	}
	e.logger = logger.With(zap.String("encounter", e.ID), zap.String("enemy", string(tmpl.ID)))
	e.logger.Info("encounter started",
		zap.Stringer("hero", hero.Stats),
		zap.Stringer("monster", e.Monster),
	)
	return e
}

// NewFromBestiary looks up id in b and starts an encounter with it.
//
// Postcondition: err wraps enemy.ErrUnknownEnemy when id has no template.
func NewFromBestiary(b *enemy.Bestiary, id enemy.ID, hero *combat.Hero, src dice.Source, sink combat.Sink, logger *zap.Logger) (*Encounter, error) {
	tmpl, err := b.Enemy(id)
	if err != nil {
		return nil, fmt.Errorf("starting encounter: %w", err)
	}
	return New(hero, tmpl, src, sink, logger), nil
}

// State returns the current combat state.
func (e *Encounter) State() combat.State { return e.state }

// Turns returns the number of turns resolved so far.
func (e *Encounter) Turns() int { return e.turns }

// Step resolves one turn.
//
// Postcondition: returns ErrFinished without touching either side once the state is terminal.
func (e *Encounter) Step() (combat.TurnOutcome, error) {
	if e.state.IsTerminal() {
		return combat.TurnOutcome{State: e.state}, ErrFinished
	}
	out := combat.ResolveTurn(&e.hero.Stats, &e.Monster, &e.state, e.src, e.sink)
	e.turns++

	switch out.Notification {
	case combat.HeroHit:
		e.logger.Debug("hero hit",
			zap.Int("damage", out.Damage),
			zap.Int("hero_hp", e.hero.Stats.Health),
			zap.Stringer("monster_roll", out.MonsterRoll),
			zap.Stringer("hero_roll", out.HeroRoll),
		)
	case combat.EnemyHit:
		e.logger.Debug("monster hit",
			zap.Int("damage", out.Damage),
			zap.Int("monster_hp", e.Monster.Health),
			zap.Stringer("monster_roll", out.MonsterRoll),
			zap.Stringer("hero_roll", out.HeroRoll),
		)
	default:
		e.logger.Debug("no resolution",
			zap.Stringer("monster_roll", out.MonsterRoll),
			zap.Stringer("hero_roll", out.HeroRoll),
		)
	}
	if out.State.IsTerminal() {
		e.logger.Info("combat resolved", zap.Stringer("state", out.State), zap.Int("turns", e.turns))
	}
	return out, nil
}

// Run steps turns until one side dies, ctx is cancelled, or maxTurns turns have
// been resolved by this call. maxTurns == 0 means no limit; with a source that
// keeps producing ties the fight then never ends.
//
// Postcondition: returns nil iff the state is EnemyDead or HeroDead on return,
// including when it already was on entry. Returns ErrFinished after Finish.
func (e *Encounter) Run(ctx context.Context, maxTurns int) error {
	switch e.state {
	case combat.StateEnemyDead, combat.StateHeroDead:
		return nil
	case combat.StateEnded:
		return ErrFinished
	}
	for n := 0; maxTurns == 0 || n < maxTurns; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := e.Step(); err != nil {
			return err
		}
		if e.state.IsTerminal() {
			return nil
		}
	}
	return fmt.Errorf("%w after %d turns", ErrTurnLimit, maxTurns)
}

// Finish performs the caller-side wind-down: on a victory the monster's drop
// table is rolled. The state then moves to combat.StateEnded.
//
// Precondition: State() is EnemyDead or HeroDead; otherwise ErrNotResolved or ErrFinished.
func (e *Encounter) Finish() (Result, error) {
	switch e.state {
	case combat.StateEnded:
		return Result{}, ErrFinished
	case combat.StateEnemyDead, combat.StateHeroDead:
	default:
		return Result{}, ErrNotResolved
	}

	res := Result{
		EncounterID: e.ID,
		EnemyID:     e.Enemy.ID,
		Won:         e.state == combat.StateEnemyDead,
		Turns:       e.turns,
	}
	if res.Won {
		res.Drops = enemy.ResolveDrops(e.Enemy.DropTable, e.src)
	}
	e.state = combat.StateEnded

	drops := make([]string, len(res.Drops))
	for i, id := range res.Drops {
		drops[i] = string(id)
	}
	e.logger.Info("encounter ended", zap.Bool("won", res.Won), zap.Strings("drops", drops))
	return res, nil
}
