// Package geo provides great-circle distance and nearest-place queries over
// the local registry.
package geo

import (
	"math"
	"sort"

	"github.com/shreekundli/panchang-cli/internal/model"
	"github.com/shreekundli/panchang-cli/internal/registry"
)

// EarthRadiusKM is the mean Earth radius used by the haversine formula.
const EarthRadiusKM = 6371.0

// Defaults for Nearby queries.
const (
	DefaultMaxDistanceKM = 100.0
	DefaultNearbyLimit   = 5
)

// Haversine returns the great-circle distance in kilometers between two
// WGS84 coordinates.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKM * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Neighbor pairs a place with its distance from a query point.
type Neighbor struct {
	Place      model.Place `json:"place"`
	DistanceKM float64     `json:"distanceKm"`
}

// Index answers nearest-place queries over the registry.
type Index struct {
	reg *registry.Registry
}

// NewIndex creates an Index over the given registry.
func NewIndex(reg *registry.Registry) *Index {
	return &Index{reg: reg}
}

// Nearby returns the places within maxKM of the given place, excluding the
// place itself, sorted ascending by distance and truncated to limit.
// maxKM <= 0 and limit <= 0 fall back to the defaults.
func (idx *Index) Nearby(p model.Place, maxKM float64, limit int) []Neighbor {
	if maxKM <= 0 {
		maxKM = DefaultMaxDistanceKM
	}
	if limit <= 0 {
		limit = DefaultNearbyLimit
	}

	var out []Neighbor
	for _, other := range idx.reg.All() {
		if other.ID == p.ID {
			continue
		}
		d := Haversine(p.Latitude, p.Longitude, other.Latitude, other.Longitude)
		if d <= maxKM {
			out = append(out, Neighbor{Place: other, DistanceKM: d})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKM < out[j].DistanceKM
	})
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}
