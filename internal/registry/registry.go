// Package registry holds the curated city dataset, loaded once at startup
// and indexed by id and slug. All lookups are read-only, so the registry is
// safe for concurrent use without locking.
package registry

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/shreekundli/panchang-cli/internal/model"
)

//go:embed dataset/places.yaml
var embeddedDataset []byte

// DefaultSlug is the city used when no city is selected.
const DefaultSlug = "delhi"

// Registry is an immutable index over the curated Place records.
type Registry struct {
	places []model.Place
	byID   map[int]*model.Place
	bySlug map[string]*model.Place
}

type dataset struct {
	Places []model.Place `yaml:"places"`
}

// Load builds a Registry from a YAML dataset file, or from the embedded
// dataset when path is empty.
func Load(path string) (*Registry, error) {
	raw := embeddedDataset
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "registry: read dataset %s", path)
		}
		raw = b
	}

	var ds dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, eris.Wrap(err, "registry: parse dataset")
	}
	return New(ds.Places)
}

// New builds a Registry from the given places, validating id and slug
// uniqueness.
func New(places []model.Place) (*Registry, error) {
	r := &Registry{
		places: places,
		byID:   make(map[int]*model.Place, len(places)),
		bySlug: make(map[string]*model.Place, len(places)),
	}
	for i := range places {
		p := &r.places[i]
		if p.Slug == "" {
			return nil, eris.Errorf("registry: place %d (%s) has no slug", p.ID, p.Name)
		}
		if p.Tier < 1 || p.Tier > 3 {
			return nil, eris.Errorf("registry: place %s has invalid tier %d", p.Slug, p.Tier)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, eris.Errorf("registry: duplicate place id %d", p.ID)
		}
		if _, dup := r.bySlug[p.Slug]; dup {
			return nil, eris.Errorf("registry: duplicate slug %q", p.Slug)
		}
		r.byID[p.ID] = p
		r.bySlug[p.Slug] = p
	}
	return r, nil
}

// All returns every place in registry order.
func (r *Registry) All() []model.Place {
	return r.places
}

// Len returns the number of places.
func (r *Registry) Len() int {
	return len(r.places)
}

// ByID looks up a place by id.
func (r *Registry) ByID(id int) (model.Place, bool) {
	p, ok := r.byID[id]
	if !ok {
		return model.Place{}, false
	}
	return *p, true
}

// BySlug looks up a place by slug.
func (r *Registry) BySlug(slug string) (model.Place, bool) {
	p, ok := r.bySlug[slug]
	if !ok {
		return model.Place{}, false
	}
	return *p, true
}

// ByName looks up a place by primary name (case-insensitive) or exact Hindi
// name.
func (r *Registry) ByName(name string) (model.Place, bool) {
	lower := strings.ToLower(name)
	for _, p := range r.places {
		if strings.ToLower(p.Name) == lower || p.NameHindi == name {
			return p, true
		}
	}
	return model.Place{}, false
}

// IsValidSlug reports whether a slug exists in the registry.
func (r *Registry) IsValidSlug(slug string) bool {
	_, ok := r.bySlug[slug]
	return ok
}

// Tier returns places of exactly the given tier, in registry order.
func (r *Registry) Tier(tier int) []model.Place {
	var out []model.Place
	for _, p := range r.places {
		if p.Tier == tier {
			out = append(out, p)
		}
	}
	return out
}

// UpToTier returns places with tier <= the given tier (1 = most prominent).
func (r *Registry) UpToTier(tier int) []model.Place {
	var out []model.Place
	for _, p := range r.places {
		if p.Tier <= tier {
			out = append(out, p)
		}
	}
	return out
}

// ByState returns places in the given state (case-insensitive).
func (r *Registry) ByState(state string) []model.Place {
	lower := strings.ToLower(state)
	var out []model.Place
	for _, p := range r.places {
		if strings.ToLower(p.State) == lower {
			out = append(out, p)
		}
	}
	return out
}

// ByPopulation returns places sorted by descending population, truncated to
// limit when limit > 0.
func (r *Registry) ByPopulation(limit int) []model.Place {
	out := make([]model.Place, len(r.places))
	copy(out, r.places)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Population > out[j].Population
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// Default returns the fallback city used when resolution fails: the
// DefaultSlug entry, or the first place when the dataset lacks it.
func (r *Registry) Default() model.Place {
	if p, ok := r.BySlug(DefaultSlug); ok {
		return p
	}
	return r.places[0]
}
