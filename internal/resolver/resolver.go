// Package resolver turns slugs and free-text queries into resolved locations
// by reconciling the Shreeng geocode index with the local registry.
package resolver

import (
	"context"

	"go.uber.org/zap"

	"github.com/shreekundli/panchang-cli/internal/model"
	"github.com/shreekundli/panchang-cli/internal/registry"
	"github.com/shreekundli/panchang-cli/internal/slug"
	"github.com/shreekundli/panchang-cli/pkg/shreeng"
)

// DefaultCandidateLimit is the search fan-out used during slug resolution.
const DefaultCandidateLimit = 5

// Option configures the Resolver.
type Option func(*Resolver)

// WithCache enables the SQLite-backed slug resolution cache.
func WithCache(c *Cache) Option {
	return func(r *Resolver) {
		r.cache = c
	}
}

// WithCandidateLimit overrides the slug resolution fan-out.
func WithCandidateLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.candidateLimit = n
		}
	}
}

// Resolver resolves place references against the engine, enriched with the
// local registry.
type Resolver struct {
	client         shreeng.Client
	reg            *registry.Registry
	cache          *Cache
	candidateLimit int
}

// New creates a Resolver.
func New(client shreeng.Client, reg *registry.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		client:         client,
		reg:            reg,
		candidateLimit: DefaultCandidateLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveSlug resolves a URL slug to a location. It is best-effort by
// contract: engine failures and empty results both come back as nil, never
// an error, because slug resolution feeds page renders that must fall back
// to a default city. priorityCountry biases the engine's ranking when
// non-empty.
func (r *Resolver) ResolveSlug(ctx context.Context, s, priorityCountry string) *model.ResolvedLocation {
	if s == "" {
		return nil
	}

	if r.cache != nil {
		if loc, matched, ok := r.cache.Get(ctx, s); ok {
			if !matched {
				return nil
			}
			return loc
		}
	}

	results, err := r.Search(ctx, slug.FromSlug(s), shreeng.SearchOptions{
		PriorityCountry: priorityCountry,
		Limit:           r.candidateLimit,
	})
	if err != nil {
		zap.L().Debug("resolver: slug search failed, treating as no match",
			zap.String("slug", s),
			zap.Error(err),
		)
		return nil
	}
	if len(results) == 0 {
		r.cachePut(ctx, s, nil)
		return nil
	}

	// Prefer the candidate whose name round-trips to the requested slug;
	// otherwise trust the engine's ranking.
	chosen := &results[0]
	for i := range results {
		if slug.ToSlug(results[i].Name) == s {
			chosen = &results[i]
			break
		}
	}

	r.cachePut(ctx, s, chosen)
	return chosen
}

// Search queries the engine's geocode index and enriches each result with
// local registry data. Engine failures propagate as typed *shreeng.APIError
// values so callers can distinguish "no data" from "backend down".
func (r *Resolver) Search(ctx context.Context, query string, opts shreeng.SearchOptions) ([]model.ResolvedLocation, error) {
	raw, err := r.client.SearchCities(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	out := make([]model.ResolvedLocation, 0, len(raw))
	for _, g := range raw {
		out = append(out, r.enrich(g))
	}
	return out, nil
}

// ReverseGeocode resolves a coordinate to the nearest indexed city, or nil
// when the index has no match.
func (r *Resolver) ReverseGeocode(ctx context.Context, lat, lng float64) (*model.ResolvedLocation, error) {
	g, err := r.client.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	loc := r.enrich(*g)
	return &loc, nil
}

// enrich maps an engine result to a ResolvedLocation, attaching the local
// registry's Hindi name and tier when the city is curated. The slug is
// always synthesized from the name, so remote-only matches still get a
// usable URL.
func (r *Resolver) enrich(g shreeng.GeoResult) model.ResolvedLocation {
	loc := model.ResolvedLocation{
		ID:        g.ID,
		Name:      g.Name,
		State:     g.State,
		Country:   g.Country,
		Latitude:  g.Latitude,
		Longitude: g.Longitude,
		Timezone:  g.Timezone,
		Slug:      slug.ToSlug(g.Name),
	}

	local, ok := r.reg.BySlug(loc.Slug)
	if !ok {
		local, ok = r.reg.ByName(g.Name)
	}
	if ok {
		loc.NameHindi = local.NameHindi
		loc.Tier = local.Tier
		loc.Slug = local.Slug
	}
	return loc
}

// cachePut stores a resolution outcome, including negatives, ignoring cache
// write failures.
func (r *Resolver) cachePut(ctx context.Context, s string, loc *model.ResolvedLocation) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Put(ctx, s, loc); err != nil {
		zap.L().Debug("resolver: cache write failed", zap.String("slug", s), zap.Error(err))
	}
}
