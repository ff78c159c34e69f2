// Package dice provides the randomness abstraction and roll-result types
// for the combat engine and loot tables.
package dice

import "fmt"

// Source is the randomness provider for rolls and weighted picks.
//
// The combat engine calls Intn once per roll from a single goroutine; sources
// shared across encounters MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Roll holds the audit trail for a single attack roll.
//
// Postcondition: Total() == Face + Proficiency - Feedback.
type Roll struct {
	Sides       int // faces on the die, e.g. 12
	Face        int // raw die result in [0, Sides)
	Proficiency int // bonus added to the face
	Feedback    int // negative feedback subtracted from the face
}

// RollDie draws a face from src and attaches the modifiers.
//
// Precondition: src non-nil; sides > 0.
func RollDie(src Source, sides, proficiency, feedback int) Roll {
	return Roll{
		Sides:       sides,
		Face:        src.Intn(sides),
		Proficiency: proficiency,
		Feedback:    feedback,
	}
}

// Total returns the effective roll value.
func (r Roll) Total() int {
	return r.Face + r.Proficiency - r.Feedback
}

// String returns a human-readable audit string in the format:
//
//	"d12 → 7 +3 -1 = 9"
//
// Precondition: r.Sides > 0.
func (r Roll) String() string {
	if r.Sides <= 0 {
		panic("dice: Roll.String() precondition violated: Sides must be positive")
	}
	return fmt.Sprintf("d%d → %d %+d -%d = %d", r.Sides, r.Face, r.Proficiency, r.Feedback, r.Total())
}
