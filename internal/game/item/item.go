// Package item declares the closed set of item identifiers that enemies can drop
// and the hero can carry.
package item

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ID identifies an item definition.
type ID string

const (
	Croissant                 ID = "croissant"
	Athelas                   ID = "athelas"
	HealthPotion              ID = "health_potion"
	Vial                      ID = "vial"
	TurtleHerb                ID = "turtle_herb"
	CandleStick               ID = "candle_stick"
	EmptyLantern              ID = "empty_lantern"
	FilledLantern             ID = "filled_lantern"
	LitLantern                ID = "lit_lantern"
	FireEssence               ID = "fire_essence"
	MediumShield              ID = "medium_shield"
	Scroll                    ID = "scroll"
	HerbRed                   ID = "herb_red"
	HerbGreen                 ID = "herb_green"
	HerbViolet                ID = "herb_violet"
	EssenceMight              ID = "essence_might"
	EssenceVitality           ID = "essence_vitality"
	EssenceAlacrity           ID = "essence_alacrity"
	FlaskHealing              ID = "flask_healing"
	FlaskStrength             ID = "flask_strength"
	FlaskSkill                ID = "flask_skill"
	FlaskToughness            ID = "flask_toughness"
	SwordRusty                ID = "sword_rusty"
	Sword                     ID = "sword"
	SwordMasterwork           ID = "sword_masterwork"
	SwordOfWounding           ID = "sword_of_wounding"
	MasterworkSwordOfWounding ID = "masterwork_sword_of_wounding"
	SwordOfSpeed              ID = "sword_of_speed"
	MasterworkSwordOfSpeed    ID = "masterwork_sword_of_speed"
	ShieldRusty               ID = "shield_rusty"
	Shield                    ID = "shield"
	ShieldMasterwork          ID = "shield_masterwork"
	ArmorRusty                ID = "armor_rusty"
	Armor                     ID = "armor"
	ArmorMasterwork           ID = "armor_masterwork"
	AxeRusty                  ID = "axe_rusty"
	Axe                       ID = "axe"
	AxeMasterwork             ID = "axe_masterwork"
)

var known = map[ID]bool{
	Croissant: true, Athelas: true, HealthPotion: true, Vial: true, TurtleHerb: true,
	CandleStick: true, EmptyLantern: true, FilledLantern: true, LitLantern: true,
	FireEssence: true, MediumShield: true, Scroll: true,
	HerbRed: true, HerbGreen: true, HerbViolet: true,
	EssenceMight: true, EssenceVitality: true, EssenceAlacrity: true,
	FlaskHealing: true, FlaskStrength: true, FlaskSkill: true, FlaskToughness: true,
	SwordRusty: true, Sword: true, SwordMasterwork: true,
	SwordOfWounding: true, MasterworkSwordOfWounding: true,
	SwordOfSpeed: true, MasterworkSwordOfSpeed: true,
	ShieldRusty: true, Shield: true, ShieldMasterwork: true,
	ArmorRusty: true, Armor: true, ArmorMasterwork: true,
	AxeRusty: true, Axe: true, AxeMasterwork: true,
}

// Parse validates s as an item ID.
//
// Postcondition: Returns an error iff s is not a declared item ID.
func Parse(s string) (ID, error) {
	id := ID(s)
	if !known[id] {
		return "", fmt.Errorf("item: unknown item id %q", s)
	}
	return id, nil
}

// Valid reports whether id is one of the declared item IDs.
func (id ID) Valid() bool {
	return known[id]
}

// UnmarshalYAML rejects unknown item IDs at load time.
func (id *ID) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*id = parsed
	return nil
}
