// Package enemy provides enemy template definitions, their drop tables, and
// the bestiary used to start encounters.
package enemy

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/baggoblin/baggoblin/internal/game/combat"
	"github.com/baggoblin/baggoblin/internal/game/text"
)

// ID identifies an enemy template.
type ID string

const (
	// None marks an empty encounter slot; it never names a loadable template.
	None               ID = "none"
	Rat                ID = "rat"
	GoblinBrat         ID = "goblin_brat"
	GoblinShieldbearer ID = "goblin_shieldbearer"
	GoblinSwordsman    ID = "goblin_swordsman"
	OrcWarrior         ID = "orc_warrior"
	Skeleton           ID = "skeleton"
	Zombie             ID = "zombie"
	OgreNecromancer    ID = "ogre_necromancer"
)

var knownIDs = map[ID]bool{
	None: true, Rat: true, GoblinBrat: true, GoblinShieldbearer: true,
	GoblinSwordsman: true, OrcWarrior: true, Skeleton: true, Zombie: true,
	OgreNecromancer: true,
}

// ParseID validates s as an enemy ID.
func ParseID(s string) (ID, error) {
	id := ID(s)
	if !knownIDs[id] {
		return "", fmt.Errorf("enemy: unknown enemy id %q", s)
	}
	return id, nil
}

// UnmarshalYAML rejects unknown enemy IDs at load time.
func (id *ID) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseID(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*id = parsed
	return nil
}

// Enemy is a static template merged into a combat.Combatant when an encounter starts.
type Enemy struct {
	ID              ID               `yaml:"id"`
	Name            string           `yaml:"name"`
	Stats           combat.Combatant `yaml:"stats"`
	EnterCombatText text.Type        `yaml:"enter_combat_text"`
	DropTable       DropTable        `yaml:"drop_table"`
}

// String summarises the template for logs.
func (e *Enemy) String() string {
	return fmt.Sprintf("%s (%s), stats: %s", e.Name, e.ID, e.Stats)
}

// Validate checks that the template satisfies its invariants.
//
// Postcondition: Returns nil iff ID names a real enemy, Name is non-empty,
// Stats are valid with Health >= 1, EnterCombatText is set, and the drop table is valid.
func (e *Enemy) Validate() error {
	if e.ID == "" || e.ID == None {
		return fmt.Errorf("enemy template: id must name an enemy, got %q", e.ID)
	}
	if e.Name == "" {
		return fmt.Errorf("enemy template %q: name must not be empty", e.ID)
	}
	if err := e.Stats.Validate(); err != nil {
		return fmt.Errorf("enemy template %q: %w", e.ID, err)
	}
	if e.Stats.Health < 1 {
		return fmt.Errorf("enemy template %q: stats.health must be >= 1", e.ID)
	}
	if e.EnterCombatText == "" {
		return fmt.Errorf("enemy template %q: enter_combat_text must not be empty", e.ID)
	}
	if err := e.DropTable.Validate(); err != nil {
		return fmt.Errorf("enemy template %q: %w", e.ID, err)
	}
	return nil
}

// NewCombatant returns a fresh monster stat block for an encounter.
//
// Postcondition: result equals e.Stats with NegativeFeedback reset to 0; e is unchanged.
func (e *Enemy) NewCombatant() combat.Combatant {
	c := e.Stats
	c.NegativeFeedback = 0
	return c
}

type enemiesFile struct {
	Enemies []*Enemy `yaml:"enemies"`
}

// LoadFromBytes parses an "enemies: [...]" YAML document and validates every template.
//
// Postcondition: Returns validated templates, or an error on the first parse or
// validation failure; the partial result is discarded.
func LoadFromBytes(data []byte) ([]*Enemy, error) {
	var f enemiesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing enemies YAML: %w", err)
	}
	for i, e := range f.Enemies {
		if e == nil {
			return nil, fmt.Errorf("enemies[%d]: empty entry", i)
		}
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Enemies, nil
}

// LoadFile reads and parses the enemy templates at path.
func LoadFile(path string) ([]*Enemy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	enemies, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return enemies, nil
}

// ErrUnknownEnemy is returned when a requested template is not in the bestiary.
// Enemies have no fallback template, so callers treat it as a configuration error.
var ErrUnknownEnemy = errors.New("enemy: unknown enemy template")

// Bestiary indexes enemy templates by ID.
//
// Invariant: each ID is registered at most once.
type Bestiary struct {
	enemies map[ID]*Enemy
}

// NewBestiary indexes templates.
//
// Precondition: every template must have passed Validate.
// Postcondition: returns an error on a duplicate ID.
func NewBestiary(templates []*Enemy) (*Bestiary, error) {
	b := &Bestiary{enemies: make(map[ID]*Enemy, len(templates))}
	for _, e := range templates {
		if _, exists := b.enemies[e.ID]; exists {
			return nil, fmt.Errorf("enemy: template %q already registered", e.ID)
		}
		b.enemies[e.ID] = e
	}
	return b, nil
}

// Enemy returns the template for id.
//
// Postcondition: err wraps ErrUnknownEnemy iff id is not registered.
func (b *Bestiary) Enemy(id ID) (*Enemy, error) {
	e, ok := b.enemies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnemy, id)
	}
	return e, nil
}

// IDs returns the registered IDs in lexical order.
func (b *Bestiary) IDs() []ID {
	out := make([]ID, 0, len(b.enemies))
	for id := range b.enemies {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of registered templates.
func (b *Bestiary) Len() int {
	return len(b.enemies)
}
