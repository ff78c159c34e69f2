package encounter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/baggoblin/baggoblin/internal/game/combat"
	"github.com/baggoblin/baggoblin/internal/game/dice"
	"github.com/baggoblin/baggoblin/internal/game/encounter"
	"github.com/baggoblin/baggoblin/internal/game/enemy"
	"github.com/baggoblin/baggoblin/internal/game/item"
	"github.com/baggoblin/baggoblin/internal/game/text"
)

type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func newHero() *combat.Hero {
	return &combat.Hero{Stats: combat.Combatant{Health: 20, MaxHealth: 20, Proficiency: 3, DamageBonus: 5, DamageRes: 2}}
}

func rat() *enemy.Enemy {
	return &enemy.Enemy{
		ID:              enemy.Rat,
		Name:            "Rat",
		Stats:           combat.Combatant{Health: 10, MaxHealth: 10, Proficiency: 1, DamageBonus: 3, DamageRes: 1},
		EnterCombatText: text.EnterRat,
		DropTable:       enemy.DropTable{Items: []item.ID{item.HerbRed, item.Sword}, Chances: []uint32{5, 0}},
	}
}

func TestNew(t *testing.T) {
	e := encounter.New(newHero(), rat(), &seqSource{vals: []int{0}}, nil, nil)
	assert.Equal(t, combat.StateInit, e.State())
	assert.Equal(t, 10, e.Monster.Health)
	_, err := uuid.Parse(e.ID)
	assert.NoError(t, err)
}

func TestNew_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { encounter.New(nil, rat(), &seqSource{vals: []int{0}}, nil, nil) })
	assert.Panics(t, func() { encounter.New(newHero(), nil, &seqSource{vals: []int{0}}, nil, nil) })
	assert.Panics(t, func() { encounter.New(newHero(), rat(), nil, nil, nil) })
}

// Monster face 3, hero face 6: the hero wins twice and the rat dies.
func TestRunAndFinish_Victory(t *testing.T) {
	hero := newHero()
	var q combat.Queue
	core, logs := observer.New(zapcore.DebugLevel)
	e := encounter.New(hero, rat(), &seqSource{vals: []int{3, 6}}, &q, zap.New(core))

	require.NoError(t, e.Run(context.Background(), 0))
	assert.Equal(t, combat.StateEnemyDead, e.State())
	assert.Equal(t, 2, e.Turns())
	assert.Equal(t, []combat.Notification{combat.EnemyHit, combat.EnemyHit}, q.Drain())
	assert.Equal(t, 2, logs.FilterMessage("monster hit").Len())

	res, err := e.Finish()
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, e.ID, res.EncounterID)
	assert.Equal(t, enemy.Rat, res.EnemyID)
	assert.Equal(t, 2, res.Turns)
	assert.Equal(t, []item.ID{item.HerbRed}, res.Drops)
	assert.Equal(t, combat.StateEnded, e.State())

	// The hero's stat block is carried forward.
	assert.Equal(t, 2, hero.Stats.NegativeFeedback)
}

func TestRunAndFinish_Defeat(t *testing.T) {
	hero := newHero()
	hero.Stats.Health = 1
	e := encounter.New(hero, rat(), &seqSource{vals: []int{11, 0}}, nil, nil)

	require.NoError(t, e.Run(context.Background(), 0))
	assert.Equal(t, combat.StateHeroDead, e.State())

	res, err := e.Finish()
	require.NoError(t, err)
	assert.False(t, res.Won)
	assert.Empty(t, res.Drops)
}

func TestStep_AfterDeathReturnsErrFinished(t *testing.T) {
	e := encounter.New(newHero(), rat(), &seqSource{vals: []int{3, 6}}, nil, nil)
	require.NoError(t, e.Run(context.Background(), 0))
	monster := e.Monster

	_, err := e.Step()
	assert.True(t, errors.Is(err, encounter.ErrFinished))
	assert.Equal(t, monster, e.Monster)
	assert.Equal(t, 2, e.Turns())
}

func TestRun_AlreadyResolved(t *testing.T) {
	e := encounter.New(newHero(), rat(), &seqSource{vals: []int{3, 6}}, nil, nil)
	require.NoError(t, e.Run(context.Background(), 0))

	require.NoError(t, e.Run(context.Background(), 0))
	assert.Equal(t, 2, e.Turns())

	_, err := e.Finish()
	require.NoError(t, err)
	assert.True(t, errors.Is(e.Run(context.Background(), 0), encounter.ErrFinished))
}

func TestFinish_BeforeResolution(t *testing.T) {
	e := encounter.New(newHero(), rat(), &seqSource{vals: []int{5, 3}}, nil, nil)
	_, err := e.Finish()
	assert.True(t, errors.Is(err, encounter.ErrNotResolved))

	_, err = e.Step()
	require.NoError(t, err)
	_, err = e.Finish()
	assert.True(t, errors.Is(err, encounter.ErrNotResolved))
}

func TestFinish_Twice(t *testing.T) {
	e := encounter.New(newHero(), rat(), &seqSource{vals: []int{3, 6}}, nil, nil)
	require.NoError(t, e.Run(context.Background(), 0))
	_, err := e.Finish()
	require.NoError(t, err)
	_, err = e.Finish()
	assert.True(t, errors.Is(err, encounter.ErrFinished))
}

// Monster face 5 + 1 ties hero face 3 + 3 forever.
func TestRun_TurnLimitOnEndlessTies(t *testing.T) {
	e := encounter.New(newHero(), rat(), &seqSource{vals: []int{5, 3}}, nil, nil)
	err := e.Run(context.Background(), 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, encounter.ErrTurnLimit))
	assert.Equal(t, 50, e.Turns())
	assert.Equal(t, combat.StateInProgress, e.State())
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := encounter.New(newHero(), rat(), &seqSource{vals: []int{5, 3}}, nil, nil)
	err := e.Run(ctx, 0)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, e.Turns())
}

func TestNewFromBestiary(t *testing.T) {
	b, err := enemy.NewBestiary([]*enemy.Enemy{rat()})
	require.NoError(t, err)

	e, err := encounter.NewFromBestiary(b, enemy.Rat, newHero(), &seqSource{vals: []int{0}}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Rat", e.Enemy.Name)

	_, err = encounter.NewFromBestiary(b, enemy.Zombie, newHero(), &seqSource{vals: []int{0}}, nil, nil)
	assert.True(t, errors.Is(err, enemy.ErrUnknownEnemy))
}

func TestProperty_FightsWithRandomDiceEnd(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hero := newHero()
		hero.Stats.Health = rapid.IntRange(1, 60).Draw(rt, "hero_hp")
		tmpl := rat()
		tmpl.Stats.Health = rapid.IntRange(1, 60).Draw(rt, "rat_hp")
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))

		e := encounter.New(hero, tmpl, src, nil, nil)
		require.NoError(rt, e.Run(context.Background(), 10000))

		res, err := e.Finish()
		require.NoError(rt, err)
		assert.Equal(rt, res.Won, e.Monster.Health < 1)
		assert.Equal(rt, !res.Won, hero.Stats.Health < 1)
		for _, d := range res.Drops {
			assert.Equal(rt, item.HerbRed, d, "zero-weight sword must never drop")
		}
	})
}
