package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Catalog is a validated, id-addressable set of archetypes.
type Catalog struct {
	defs map[string]ArchetypeDef
	ids  []string
}

// LoadCatalog reads an archetype YAML file and validates every entry.
func LoadCatalog(path string) (*Catalog, error) {
	var ac ArchetypesConfig
	if err := loadYAML(path, &ac); err != nil {
		return nil, fmt.Errorf("load archetypes %s: %w", path, err)
	}
	return NewCatalog(ac.Archetypes)
}

func NewCatalog(defs []ArchetypeDef) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]ArchetypeDef, len(defs))}
	for i, d := range defs {
		if d.ID == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("archetypes[%d].id", i), Value: `""`, Constraint: "non-empty"}
		}
		if _, dup := c.defs[d.ID]; dup {
			return nil, &ValidationError{Field: fmt.Sprintf("archetypes[%d].id", i), Value: d.ID, Constraint: "unique"}
		}
		if err := d.Validate(fmt.Sprintf("archetypes[%s]", d.ID)); err != nil {
			return nil, err
		}
		c.defs[d.ID] = d
		c.ids = append(c.ids, d.ID)
	}
	sort.Strings(c.ids)
	return c, nil
}

func (c *Catalog) Get(id string) (ArchetypeParams, error) {
	d, ok := c.defs[id]
	if !ok {
		return ArchetypeParams{}, fmt.Errorf("%w: %q", ErrUnknownArchetype, id)
	}
	return d.ArchetypeParams, nil
}

func (c *Catalog) Def(id string) (ArchetypeDef, bool) {
	d, ok := c.defs[id]
	return d, ok
}

// IDs returns archetype ids in sorted order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}
