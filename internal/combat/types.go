package combat

import (
	"math/rand/v2"

	"duelsim/internal/config"
)

const (
	TickLength   = 0.1
	MissChance   = 0.05
	DamageStdDev = 8.0
	HealMean     = 1.0
	HealStdDev   = 0.2

	DefaultMaxTicks = 100000
)

// Combatant is the per-trial state of one side. It is built fresh for every
// trial and only the trial that owns it mutates it.
type Combatant struct {
	ID          string
	HP          int
	MaxHP       int
	AttackPower int
	Healing     int
	AtkCD       float64
	HealCD      float64

	untilAtk  float64
	untilHeal float64
}

func NewCombatant(id string, p config.ArchetypeParams) *Combatant {
	return &Combatant{
		ID: id, HP: p.Health, MaxHP: p.Health,
		AttackPower: p.AttackPower, Healing: p.Healing,
		AtkCD: p.AttackCooldown, HealCD: p.HealingCooldown,
	}
}

func (c *Combatant) Alive() bool { return c.HP > 0 }

// Attack rolls the damage of one swing. It does not touch either side's
// health; the caller subtracts the result from the opponent.
func (c *Combatant) Attack(r *rand.Rand) int {
	if r.Float64() < MissChance {
		return 0
	}
	dmg := int(r.NormFloat64()*DamageStdDev + float64(c.AttackPower))
	if dmg < 0 {
		return 0
	}
	return dmg
}

// Heal applies one heal roll and returns the resulting health. A miss returns
// the current health unchanged. A negative noise factor can lower health;
// the result is only capped at MaxHP.
func (c *Combatant) Heal(r *rand.Rand) int {
	if r.Float64() < MissChance {
		return c.HP
	}
	amount := int(float64(c.Healing) * (r.NormFloat64()*HealStdDev + HealMean))
	c.HP = min(c.HP+amount, c.MaxHP)
	return c.HP
}

func (c *Combatant) advance(dt float64) {
	c.untilAtk -= dt
	c.untilHeal -= dt
}
