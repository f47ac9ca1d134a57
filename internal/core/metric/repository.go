package metric

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// rawDefinition is the on-disk YAML shape. Each file holds exactly one definition.
type rawDefinition struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"`
	Field   string   `yaml:"field"`
	Order   int      `yaml:"order"`
	Sources []Source `yaml:"sources"`
}

// Repository defines the interface for loading metric definitions.
type Repository interface {
	// Get returns the definition with the given name, or an error if not found.
	Get(ctx context.Context, name string) (*Definition, error)

	// Definitions returns all definitions in processing order.
	Definitions() []Definition
}

// StaticRepository serves a fixed, ordered set of definitions.
type StaticRepository struct {
	defs []Definition
}

// NewStaticRepository validates defs and rejects duplicate names.
func NewStaticRepository(defs []Definition) (*StaticRepository, error) {
	seen := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, exists := seen[d.Name]; exists {
			return nil, fmt.Errorf("metric %q: duplicate definition", d.Name)
		}
		seen[d.Name] = struct{}{}
	}
	return &StaticRepository{defs: defs}, nil
}

// Get returns the definition with the given name, or an error if not found.
func (r *StaticRepository) Get(_ context.Context, name string) (*Definition, error) {
	for _, d := range r.defs {
		if d.Name == name {
			def := d
			return &def, nil
		}
	}
	return nil, fmt.Errorf("metric definition %q not found", name)
}

// Definitions returns a copy of the definitions in processing order.
func (r *StaticRepository) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// LoadDirectory loads metric definitions from *.yaml files in dir.
// A missing directory yields the built-in defaults. Files are processed in
// ascending `order`, then by file name.
func LoadDirectory(dir string) (*StaticRepository, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return NewStaticRepository(DefaultDefinitions())
	}
	if err != nil {
		return nil, fmt.Errorf("metric definition dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("metric definition path %q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading metric definition dir: %w", err)
	}

	type loaded struct {
		order int
		file  string
		def   Definition
	}
	var all []loaded

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading metric file %s: %w", path, err)
		}

		var raw rawDefinition
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing metric file %s: %w", path, err)
		}
		if raw.Name == "" {
			continue // empty / comment-only file
		}

		all = append(all, loaded{
			order: raw.Order,
			file:  e.Name(),
			def: Definition{
				Name:        raw.Name,
				Kind:        Kind(raw.Kind),
				Sources:     raw.Sources,
				Field:       raw.Field,
				Fingerprint: fmt.Sprintf("%x", sha256.Sum256(data)),
			},
		})
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].order != all[j].order {
			return all[i].order < all[j].order
		}
		return all[i].file < all[j].file
	})

	defs := make([]Definition, 0, len(all))
	for _, l := range all {
		defs = append(defs, l.def)
	}
	return NewStaticRepository(defs)
}
