package combat

import "github.com/baggoblin/baggoblin/internal/game/text"

// Notification is the single outcome message a resolved turn emits.
type Notification int

const (
	// NoResolution means the rolls tied and nobody was hurt.
	NoResolution Notification = iota
	// HeroHit means the monster won the exchange and damaged the hero.
	HeroHit
	// EnemyHit means the hero won the exchange and damaged the monster.
	EnemyHit
)

// String returns a human-readable notification label.
func (n Notification) String() string {
	switch n {
	case HeroHit:
		return "hero hit"
	case EnemyHit:
		return "enemy hit"
	case NoResolution:
		return "no resolution"
	default:
		return "unknown"
	}
}

// TextType returns the narration text shown for n.
func (n Notification) TextType() text.Type {
	switch n {
	case HeroHit:
		return text.CombatHeroHit
	case EnemyHit:
		return text.CombatEnemyHit
	default:
		return text.CombatNoResolution
	}
}

// Sink receives turn notifications. Notify must not block.
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(n Notification)

// Notify calls f(n).
func (f SinkFunc) Notify(n Notification) { f(n) }

// Queue is an append-only outbound notification buffer for callers that replay
// turns on their own schedule. It is not safe for concurrent use.
type Queue struct {
	pending []Notification
}

// Notify appends n to the queue.
func (q *Queue) Notify(n Notification) {
	q.pending = append(q.pending, n)
}

// Len returns the number of buffered notifications.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Drain returns the buffered notifications in emission order and empties the queue.
func (q *Queue) Drain() []Notification {
	out := q.pending
	q.pending = nil
	return out
}
