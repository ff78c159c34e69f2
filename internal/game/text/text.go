// Package text holds the narration lines shown during encounters.
package text

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/baggoblin/baggoblin/internal/game/dice"
	"github.com/baggoblin/baggoblin/internal/game/registry"
)

// Type identifies a kind of narration. Each Type may have several lines; one
// is picked at random each time it is shown.
type Type string

const (
	EnterRat           Type = "enter_rat"
	EnterLittleMonster Type = "enter_little_monster"
	EnterBigMonster    Type = "enter_big_monster"
	EnterSkeleton      Type = "enter_skeleton"
	EnterZombie        Type = "enter_zombie"
	EnterNecromancer   Type = "enter_necromancer"
	CombatHeroHit      Type = "combat_hero_hit"
	CombatEnemyHit     Type = "combat_enemy_hit"
	CombatNoResolution Type = "combat_no_resolution"
	CombatEnemyDied    Type = "combat_enemy_died"
	CombatHeroDied     Type = "combat_hero_died"
)

var knownTypes = map[Type]bool{
	EnterRat: true, EnterLittleMonster: true, EnterBigMonster: true,
	EnterSkeleton: true, EnterZombie: true, EnterNecromancer: true,
	CombatHeroHit: true, CombatEnemyHit: true, CombatNoResolution: true,
	CombatEnemyDied: true, CombatHeroDied: true,
}

// ParseType validates s as a Type.
//
// Postcondition: Returns an error iff s is not one of the declared Types.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !knownTypes[t] {
		return "", fmt.Errorf("text: unknown text type %q", s)
	}
	return t, nil
}

// UnmarshalYAML rejects unknown text types at load time.
func (t *Type) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*t = parsed
	return nil
}

// Catalog maps each Type to its lines.
type Catalog struct {
	lines *registry.Multi[Type, string]
}

type catalogFile struct {
	Texts map[string][]string `yaml:"texts"`
}

// LoadCatalogFromBytes parses a catalog YAML document of the form
// "texts: {<type>: [line, ...]}".
//
// Precondition: src must be non-nil.
// Postcondition: every key is a known Type and every line is non-empty, or an error is returned.
func LoadCatalogFromBytes(data []byte, src dice.Source, logger *zap.Logger) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing texts YAML: %w", err)
	}
	c := &Catalog{lines: registry.NewMulti[Type, string]("texts", src, logger)}
	for key, lines := range f.Texts {
		t, err := ParseType(key)
		if err != nil {
			return nil, err
		}
		for i, l := range lines {
			if l == "" {
				return nil, fmt.Errorf("text %q: line[%d] must not be empty", key, i)
			}
			c.lines.Put(t, l)
		}
	}
	return c, nil
}

// LoadCatalogFile reads and parses the catalog at path.
func LoadCatalogFile(path string, src dice.Source, logger *zap.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	c, err := LoadCatalogFromBytes(data, src, logger)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return c, nil
}

// Line returns a random line for t. ok is false when t has no lines; the miss is logged.
func (c *Catalog) Line(t Type) (string, bool) {
	return c.lines.Pick(t)
}

// Count returns how many lines are registered for t.
func (c *Catalog) Count(t Type) int {
	return c.lines.Len(t)
}
