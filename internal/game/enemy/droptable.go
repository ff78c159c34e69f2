package enemy

import (
	"fmt"
	"math"

	"github.com/baggoblin/baggoblin/internal/game/dice"
	"github.com/baggoblin/baggoblin/internal/game/item"
)

// DropTable is the loot an enemy may leave behind: Items[i] is awarded with
// relative weight Chances[i]. A weight of 0 never drops.
//
// Invariant: len(Items) == len(Chances), checked by Validate at load time.
type DropTable struct {
	Items   []item.ID `yaml:"items"`
	Chances []uint32  `yaml:"chances"`
}

// Validate checks that the drop table satisfies its invariants.
//
// Postcondition: Returns nil iff Items and Chances have equal length, every
// item ID is declared, and the total weight fits in an int32; an empty table is valid.
func (dt DropTable) Validate() error {
	if len(dt.Items) != len(dt.Chances) {
		return fmt.Errorf("drop table: %d items but %d chances", len(dt.Items), len(dt.Chances))
	}
	for i, id := range dt.Items {
		if !id.Valid() {
			return fmt.Errorf("drop table: item[%d] %q is not a known item", i, id)
		}
	}
	if total := dt.TotalWeight(); total > math.MaxInt32 {
		return fmt.Errorf("drop table: total weight %d exceeds %d", total, math.MaxInt32)
	}
	return nil
}

// TotalWeight returns the sum of all chances.
func (dt DropTable) TotalWeight() uint64 {
	var total uint64
	for _, c := range dt.Chances {
		total += uint64(c)
	}
	return total
}

// ResolveDrops rolls each entry of dt independently. Entry i drops with
// probability Chances[i] / TotalWeight(), so any number of items may drop at
// once and only relative weights matter. Awarded items keep table order.
//
// Precondition: dt must have passed Validate(); src must be non-nil.
// Postcondition: no zero-weight item is returned; an empty or all-zero table
// returns nil without drawing from src.
func ResolveDrops(dt DropTable, src dice.Source) []item.ID {
	total := dt.TotalWeight()
	if total == 0 {
		return nil
	}

	var drops []item.ID
	for i, chance := range dt.Chances {
		if chance == 0 {
			continue
		}
		if uint64(src.Intn(int(total))) < uint64(chance) {
			drops = append(drops, dt.Items[i])
		}
	}
	return drops
}
