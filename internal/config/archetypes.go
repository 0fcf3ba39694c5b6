package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("invalid parameter")

// ErrUnknownArchetype is returned when a catalog lookup misses.
var ErrUnknownArchetype = errors.New("unknown archetype")

// ArchetypeParams is one combatant's combat profile. Health is the maximum
// (and starting) health; cooldowns are in seconds.
type ArchetypeParams struct {
	AttackPower     int     `yaml:"attack_power" json:"attack_power"`
	Health          int     `yaml:"health" json:"health"`
	Healing         int     `yaml:"healing" json:"healing"`
	AttackCooldown  float64 `yaml:"attack_cooldown" json:"attack_cooldown"`
	HealingCooldown float64 `yaml:"healing_cooldown" json:"healing_cooldown"`
}

type ArchetypesConfig struct {
	Archetypes []ArchetypeDef `yaml:"archetypes"`
}

type ArchetypeDef struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Note            string `yaml:"note"`
	ArchetypeParams `yaml:",inline"`
}

// ValidationError names the offending field and the constraint it broke.
type ValidationError struct {
	Field      string
	Value      any
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v violates %s", e.Field, e.Value, e.Constraint)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Validate checks every field and returns all violations joined. Field names
// are prefixed with scope ("a.health", "archetypes[healer].healing").
func (p ArchetypeParams) Validate(scope string) error {
	field := func(name string) string {
		if scope == "" {
			return name
		}
		return scope + "." + name
	}
	var errs []error
	if p.AttackPower < 0 {
		errs = append(errs, &ValidationError{Field: field("attack_power"), Value: p.AttackPower, Constraint: ">= 0"})
	}
	if p.Health <= 0 {
		errs = append(errs, &ValidationError{Field: field("health"), Value: p.Health, Constraint: "> 0"})
	}
	if p.Healing < 0 {
		errs = append(errs, &ValidationError{Field: field("healing"), Value: p.Healing, Constraint: ">= 0"})
	}
	if !positiveFinite(p.AttackCooldown) {
		errs = append(errs, &ValidationError{Field: field("attack_cooldown"), Value: p.AttackCooldown, Constraint: "> 0 and finite"})
	}
	if !positiveFinite(p.HealingCooldown) {
		errs = append(errs, &ValidationError{Field: field("healing_cooldown"), Value: p.HealingCooldown, Constraint: "> 0 and finite"})
	}
	return errors.Join(errs...)
}

// NaN fails the > 0 comparison.
func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
