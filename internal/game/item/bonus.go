package item

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/baggoblin/baggoblin/internal/game/combat"
)

// Bonuses maps items to the stat bonus they grant the hero when picked up.
// Items without an entry grant nothing.
type Bonuses map[ID]combat.StatBonus

type bonusesFile struct {
	Items map[ID]combat.StatBonus `yaml:"items"`
}

// LoadBonusesFromBytes parses an "items: {<id>: {<stat>: n}}" YAML document.
//
// Postcondition: every key is a declared item ID, or an error is returned.
func LoadBonusesFromBytes(data []byte) (Bonuses, error) {
	var f bonusesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing items YAML: %w", err)
	}
	if f.Items == nil {
		return Bonuses{}, nil
	}
	return Bonuses(f.Items), nil
}

// LoadBonusesFile reads and parses the item bonuses at path.
func LoadBonusesFile(path string) (Bonuses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	b, err := LoadBonusesFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return b, nil
}

// Apply boosts hero with the bonus of every item in drops, in order.
//
// Precondition: hero must be non-nil.
// Postcondition: returns the drops that carried a bonus; hero.Stats.Health is unchanged.
func (b Bonuses) Apply(hero *combat.Hero, drops []ID) []ID {
	if hero == nil {
		panic("item: Apply precondition violated: hero must not be nil")
	}
	var applied []ID
	for _, id := range drops {
		bonus, ok := b[id]
		if !ok {
			continue
		}
		hero.Stats.Boost(bonus)
		applied = append(applied, id)
	}
	return applied
}
