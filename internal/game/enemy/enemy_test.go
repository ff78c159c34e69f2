package enemy_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/baggoblin/baggoblin/internal/game/combat"
	"github.com/baggoblin/baggoblin/internal/game/enemy"
	"github.com/baggoblin/baggoblin/internal/game/item"
	"github.com/baggoblin/baggoblin/internal/game/text"
)

const enemiesYAML = `
enemies:
  - id: rat
    name: Rat
    enter_combat_text: enter_rat
    stats:
      health: 5
      max_health: 5
      proficiency: 0
      damage_res: 0
      damage_bonus: 1
    drop_table:
      items: [herb_red, croissant]
      chances: [3, 1]
  - id: skeleton
    name: Skeleton
    enter_combat_text: enter_skeleton
    stats:
      health: 14
      max_health: 14
      proficiency: 2
      damage_res: 2
      damage_bonus: 3
`

func validEnemy() *enemy.Enemy {
	return &enemy.Enemy{
		ID:              enemy.Rat,
		Name:            "Rat",
		Stats:           combat.Combatant{Health: 5, MaxHealth: 5, DamageBonus: 1},
		EnterCombatText: text.EnterRat,
		DropTable:       enemy.DropTable{Items: []item.ID{item.HerbRed}, Chances: []uint32{1}},
	}
}

func TestLoadFromBytes(t *testing.T) {
	enemies, err := enemy.LoadFromBytes([]byte(enemiesYAML))
	require.NoError(t, err)
	require.Len(t, enemies, 2)

	rat := enemies[0]
	assert.Equal(t, enemy.Rat, rat.ID)
	assert.Equal(t, "Rat", rat.Name)
	assert.Equal(t, text.EnterRat, rat.EnterCombatText)
	assert.Equal(t, combat.Combatant{Health: 5, MaxHealth: 5, DamageBonus: 1}, rat.Stats)
	assert.Equal(t, []item.ID{item.HerbRed, item.Croissant}, rat.DropTable.Items)
	assert.Equal(t, []uint32{3, 1}, rat.DropTable.Chances)

	assert.Empty(t, enemies[1].DropTable.Items, "missing drop table yields an empty one")
}

func TestLoadFromBytes_MismatchedDropTableIsLoadError(t *testing.T) {
	_, err := enemy.LoadFromBytes([]byte(`
enemies:
  - id: zombie
    name: Zombie
    enter_combat_text: enter_zombie
    stats: {health: 10, max_health: 10}
    drop_table:
      items: [herb_green, scroll]
      chances: [1]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 items but 1 chances")
}

func TestLoadFromBytes_RejectsUnknownIDs(t *testing.T) {
	_, err := enemy.LoadFromBytes([]byte("enemies:\n  - id: dragon\n    name: Dragon\n"))
	assert.Error(t, err)

	_, err = enemy.LoadFromBytes([]byte(`
enemies:
  - id: rat
    name: Rat
    enter_combat_text: enter_rat
    stats: {health: 1, max_health: 1}
    drop_table: {items: [dragon_egg], chances: [1]}
`))
	assert.Error(t, err)
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	_, err := enemy.LoadFromBytes([]byte("enemies: [:"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enemies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(enemiesYAML), 0644))
	enemies, err := enemy.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, enemies, 2)

	_, err = enemy.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnemy_Validate(t *testing.T) {
	assert.NoError(t, validEnemy().Validate())

	mutations := map[string]func(e *enemy.Enemy){
		"none id":        func(e *enemy.Enemy) { e.ID = enemy.None },
		"empty name":     func(e *enemy.Enemy) { e.Name = "" },
		"negative max":   func(e *enemy.Enemy) { e.Stats.MaxHealth = -1 },
		"zero health":    func(e *enemy.Enemy) { e.Stats.Health = 0 },
		"no enter text":  func(e *enemy.Enemy) { e.EnterCombatText = "" },
		"bad drop table": func(e *enemy.Enemy) { e.DropTable.Chances = nil },
	}
	for name, mutate := range mutations {
		e := validEnemy()
		mutate(e)
		assert.Error(t, e.Validate(), name)
	}
}

func TestEnemy_NewCombatantResetsFeedback(t *testing.T) {
	e := validEnemy()
	e.Stats.NegativeFeedback = 4
	c := e.NewCombatant()
	assert.Zero(t, c.NegativeFeedback)
	assert.Equal(t, e.Stats.Health, c.Health)

	c.Health = -3
	assert.Equal(t, 5, e.Stats.Health, "template must not be mutated")
}

func TestEnemy_String(t *testing.T) {
	assert.Equal(t, "Rat (rat), stats: 5/5/0/0/1", validEnemy().String())
}

func TestBestiary(t *testing.T) {
	enemies, err := enemy.LoadFromBytes([]byte(enemiesYAML))
	require.NoError(t, err)
	b, err := enemy.NewBestiary(enemies)
	require.NoError(t, err)

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []enemy.ID{enemy.Rat, enemy.Skeleton}, b.IDs())

	rat, err := b.Enemy(enemy.Rat)
	require.NoError(t, err)
	assert.Equal(t, "Rat", rat.Name)

	_, err = b.Enemy(enemy.OgreNecromancer)
	require.Error(t, err)
	assert.True(t, errors.Is(err, enemy.ErrUnknownEnemy))
}

func TestBestiary_RejectsDuplicates(t *testing.T) {
	_, err := enemy.NewBestiary([]*enemy.Enemy{validEnemy(), validEnemy()})
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := enemy.ParseID("goblin_swordsman")
	require.NoError(t, err)
	assert.Equal(t, enemy.GoblinSwordsman, id)
	_, err = enemy.ParseID("goblin_king")
	assert.Error(t, err)
}

func TestProperty_DropTableLengthMismatchAlwaysRejected(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		nItems := rapid.IntRange(0, 5).Draw(rt, "items")
		nChances := rapid.IntRange(0, 5).Filter(func(n int) bool { return n != nItems }).Draw(rt, "chances")
		e := validEnemy()
		e.DropTable = enemy.DropTable{
			Items:   make([]item.ID, nItems),
			Chances: make([]uint32, nChances),
		}
		for i := range e.DropTable.Items {
			e.DropTable.Items[i] = item.Scroll
		}
		assert.Error(rt, e.Validate())
	})
}
