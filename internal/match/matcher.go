// Package match ranks registry places against free-text queries using an
// additive, configurable scoring policy.
package match

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shreekundli/panchang-cli/internal/config"
	"github.com/shreekundli/panchang-cli/internal/model"
	"github.com/shreekundli/panchang-cli/internal/registry"
)

// MinQueryLength is the shortest query that produces matches. Single
// characters fan out to most of the registry, which is noise.
const MinQueryLength = 2

// Matcher scores places against queries. It never fails: empty or too-short
// input yields an empty result.
type Matcher struct {
	reg *registry.Registry
	cfg config.MatchConfig
}

// New creates a Matcher over the given registry with the given weights.
func New(reg *registry.Registry, cfg config.MatchConfig) *Matcher {
	return &Matcher{reg: reg, cfg: cfg}
}

// Search returns up to limit places ranked by match score, best first. Ties
// keep registry order. limit <= 0 uses the configured default.
func (m *Matcher) Search(query string, limit int) []model.Place {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil
	}
	if limit <= 0 {
		limit = m.cfg.DefaultLimit
	}

	lowerQuery := strings.ToLower(query)

	type scored struct {
		place model.Place
		score int
	}
	var candidates []scored
	for _, p := range m.reg.All() {
		s := m.score(p, query, lowerQuery)
		if s > 0 {
			candidates = append(candidates, scored{place: p, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit < len(candidates) {
		candidates = candidates[:limit]
	}
	out := make([]model.Place, len(candidates))
	for i, c := range candidates {
		out[i] = c.place
	}
	return out
}

// score applies the additive policy. The primary name is compared
// case-insensitively; the Hindi name is a different script, so it is
// compared as-is.
func (m *Matcher) score(p model.Place, query, lowerQuery string) int {
	score := 0
	lowerName := strings.ToLower(p.Name)

	if lowerName == lowerQuery {
		score += m.cfg.ExactBonus
	}
	if p.NameHindi == query {
		score += m.cfg.ExactBonus
	}
	if strings.HasPrefix(lowerName, lowerQuery) {
		score += m.cfg.PrefixBonus
	}
	if strings.HasPrefix(p.NameHindi, query) {
		score += m.cfg.PrefixBonus
	}
	if strings.Contains(lowerName, lowerQuery) {
		score += m.cfg.ContainsBonus
	}
	if strings.Contains(p.NameHindi, query) {
		score += m.cfg.ContainsBonus
	}

	switch p.Tier {
	case 1:
		score += m.cfg.Tier1Bonus
	case 2:
		score += m.cfg.Tier2Bonus
	}

	return score
}
