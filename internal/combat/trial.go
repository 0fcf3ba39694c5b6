package combat

import "math/rand/v2"

type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomeWinA
	OutcomeWinB
	OutcomeStalemate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTie:
		return "tie"
	case OutcomeWinA:
		return "win_a"
	case OutcomeWinB:
		return "win_b"
	case OutcomeStalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// TrialOutcome is the terminal state of one fight. HistoryA/HistoryB hold the
// health entering each tick and are nil unless tracking was requested.
type TrialOutcome struct {
	HealthA  int
	HealthB  int
	Ticks    int
	Stalled  bool
	HistoryA []int
	HistoryB []int
}

func (o TrialOutcome) Outcome() Outcome {
	switch {
	case o.Stalled:
		return OutcomeStalemate
	case o.HealthA > o.HealthB && o.HealthA > 0:
		return OutcomeWinA
	case o.HealthB > o.HealthA && o.HealthB > 0:
		return OutcomeWinB
	default:
		return OutcomeTie
	}
}

// RunTrial fights a against b until one side is at or below zero health.
// Both sides act every tick in the order a, b, so b still resolves its
// actions in the tick it is dropped and both may end at <= 0.
// maxTicks <= 0 disables the ceiling; a trial stopped by the ceiling
// reports Stalled.
func RunTrial(r *rand.Rand, a, b *Combatant, maxTicks int, track bool) TrialOutcome {
	var out TrialOutcome
	for a.Alive() && b.Alive() {
		if maxTicks > 0 && out.Ticks >= maxTicks {
			out.Stalled = true
			break
		}
		if track {
			out.HistoryA = append(out.HistoryA, a.HP)
			out.HistoryB = append(out.HistoryB, b.HP)
		}

		act(r, a, b)
		act(r, b, a)

		out.Ticks++
		a.advance(TickLength)
		b.advance(TickLength)
	}
	out.HealthA, out.HealthB = a.HP, b.HP
	return out
}

func act(r *rand.Rand, self, foe *Combatant) {
	if self.untilAtk <= 0 {
		foe.HP -= self.Attack(r)
		self.untilAtk = self.AtkCD
	}
	if self.untilHeal <= 0 && self.Healing > 0 {
		self.HP = self.Heal(r)
		self.untilHeal = self.HealCD
	}
}
