package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeFile(t, "archetypes.yaml", `
archetypes:
  - id: tank
    name: Tank
    attack_power: 5
    health: 300
    healing: 0
    attack_cooldown: 2.0
    healing_cooldown: 1.0
  - id: cleric
    attack_power: 4
    health: 80
    healing: 20
    attack_cooldown: 1.5
    healing_cooldown: 0.5
`)
	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cleric", "tank"}, cat.IDs())

	tank, err := cat.Get("tank")
	require.NoError(t, err)
	assert.Equal(t, ArchetypeParams{AttackPower: 5, Health: 300, AttackCooldown: 2.0, HealingCooldown: 1.0}, tank)

	def, ok := cat.Def("tank")
	require.True(t, ok)
	assert.Equal(t, "Tank", def.Name)

	_, err = cat.Get("rogue")
	assert.True(t, errors.Is(err, ErrUnknownArchetype))
}

func TestLoadCatalogShippedAssets(t *testing.T) {
	cat, err := LoadCatalog(filepath.Join("..", "..", "assets", "archetypes.yaml"))
	require.NoError(t, err)

	healer, err := cat.Get("healer")
	require.NoError(t, err)
	assert.Equal(t, 30, healer.Healing)
	assert.Equal(t, 0.5, healer.HealingCooldown)

	attacker, err := cat.Get("attacker")
	require.NoError(t, err)
	assert.Equal(t, 0, attacker.Healing)
}

func TestLoadCatalogRejectsInvalidEntry(t *testing.T) {
	path := writeFile(t, "bad.yaml", `
archetypes:
  - id: broken
    attack_power: 5
    health: 10
    attack_cooldown: 0
    healing_cooldown: 1
`)
	_, err := LoadCatalog(path)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "archetypes[broken].attack_cooldown", ve.Field)
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	p := ArchetypeParams{AttackPower: 1, Health: 1, AttackCooldown: 1, HealingCooldown: 1}
	_, err := NewCatalog([]ArchetypeDef{{ID: "x", ArchetypeParams: p}, {ID: "x", ArchetypeParams: p}})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "unique", ve.Constraint)

	_, err = NewCatalog([]ArchetypeDef{{ArchetypeParams: p}})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "archetypes[0].id", ve.Field)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
