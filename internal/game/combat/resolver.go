package combat

import "github.com/baggoblin/baggoblin/internal/game/dice"

const (
	// DieSides is the size of the attack die; faces are drawn from [0, DieSides).
	DieSides = 12
	// MinDamage is the least damage a landed hit deals.
	MinDamage = 1
	// MaxDamage caps a single hit.
	MaxDamage = 500
)

// TurnOutcome records what happened when one turn was resolved.
type TurnOutcome struct {
	Notification Notification
	HeroRoll     dice.Roll
	MonsterRoll  dice.Roll
	// Damage dealt to the losing side; 0 on NoResolution.
	Damage int
	// State after the turn.
	State State
}

// Damage computes the damage of a hit that won the exchange by margin.
// Half the margin, rounded half up, is added to the attacker's bonus.
//
// Precondition: margin > 0.
// Postcondition: MinDamage <= result <= MaxDamage.
func Damage(attackerBonus, defenderRes, margin int) int {
	dmg := attackerBonus - defenderRes + (margin+1)/2
	switch {
	case dmg < MinDamage:
		return MinDamage
	case dmg > MaxDamage:
		return MaxDamage
	default:
		return dmg
	}
}

// ResolveTurn resolves one exchange between hero and monster.
//
// The monster rolls first, then the hero; each roll is a d12 face plus
// proficiency minus negative feedback. The higher roll hits the other side
// for Damage(...). The winner's negative feedback grows by one and the
// loser's resets to 0. A tie changes nothing. Exactly one Notification is sent
// to sink (a nil sink discards it).
//
// Afterwards: hero below 1 health → StateHeroDead; else monster below 1 health
// → StateEnemyDead; else StateInit advances to StateInProgress.
//
// Precondition: hero and monster are distinct non-nil pointers; state is non-nil
// and not terminal; src is non-nil. Violations panic.
// Postcondition: at most one side's Health changed; *state never moves backward.
func ResolveTurn(hero, monster *Combatant, state *State, src dice.Source, sink Sink) TurnOutcome {
	if hero == nil || monster == nil || state == nil || src == nil {
		panic("combat: ResolveTurn precondition violated: nil argument")
	}
	if hero == monster {
		panic("combat: ResolveTurn precondition violated: hero and monster alias the same Combatant")
	}
	if state.IsTerminal() {
		panic("combat: ResolveTurn called in terminal state " + state.String())
	}

	monsterRoll := dice.RollDie(src, DieSides, monster.Proficiency, monster.NegativeFeedback)
	heroRoll := dice.RollDie(src, DieSides, hero.Proficiency, hero.NegativeFeedback)
	mt, ht := monsterRoll.Total(), heroRoll.Total()

	out := TurnOutcome{HeroRoll: heroRoll, MonsterRoll: monsterRoll}
	switch {
	case mt > ht:
		out.Damage = Damage(monster.DamageBonus, hero.DamageRes, mt-ht)
		hero.Health -= out.Damage
		monster.NegativeFeedback++
		hero.NegativeFeedback = 0
		out.Notification = HeroHit
	case ht > mt:
		out.Damage = Damage(hero.DamageBonus, monster.DamageRes, ht-mt)
		monster.Health -= out.Damage
		hero.NegativeFeedback++
		monster.NegativeFeedback = 0
		out.Notification = EnemyHit
	default:
		out.Notification = NoResolution
	}
	if sink != nil {
		sink.Notify(out.Notification)
	}

	switch {
	case hero.IsDead():
		*state = StateHeroDead
	case monster.IsDead():
		*state = StateEnemyDead
	case *state == StateInit:
		*state = StateInProgress
	}
	out.State = *state
	return out
}
