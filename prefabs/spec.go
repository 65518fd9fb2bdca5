package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrNoExhibits = errors.New("no exhibits defined")

// CatalogSpec is the set of exhibits placed around the anchor.
type CatalogSpec struct {
	Name     string            `yaml:"name"`
	Exhibits []EntityBuildSpec `yaml:"exhibits"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadCatalog reads and checks a catalog. Exhibit names must be present and
// unique since hot reload matches exhibits by name.
func LoadCatalog(filename string) (*CatalogSpec, error) {
	spec, err := LoadSpec[CatalogSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, spec.Validate(filename)
}

// ParseCatalog decodes a catalog held in memory.
func ParseCatalog(data []byte) (*CatalogSpec, error) {
	var spec CatalogSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal catalog: %w", err)
	}
	return &spec, spec.Validate("catalog")
}

func (c *CatalogSpec) Validate(source string) error {
	if len(c.Exhibits) == 0 {
		return fmt.Errorf("prefabs: %s: %w", source, ErrNoExhibits)
	}
	seen := make(map[string]int, len(c.Exhibits))
	for i, ex := range c.Exhibits {
		if ex.Name == "" {
			return fmt.Errorf("prefabs: %s: exhibit %d has no name", source, i)
		}
		if j, dup := seen[ex.Name]; dup {
			return fmt.Errorf("prefabs: %s: exhibit %q defined at %d and %d", source, ex.Name, j, i)
		}
		seen[ex.Name] = i
		if len(ex.Components) == 0 {
			return fmt.Errorf("prefabs: %s: exhibit %q does not define components", source, ex.Name)
		}
	}
	return nil
}

// Exhibit finds an exhibit spec by name.
func (c *CatalogSpec) Exhibit(name string) (EntityBuildSpec, bool) {
	for _, ex := range c.Exhibits {
		if ex.Name == name {
			return ex, true
		}
	}
	return EntityBuildSpec{}, false
}
