package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreekundli/panchang-cli/internal/model"
	"github.com/shreekundli/panchang-cli/internal/registry"
)

const (
	delhiLat  = 28.6139
	delhiLon  = 77.2090
	mumbaiLat = 19.0760
	mumbaiLon = 72.8777
)

func TestHaversineZero(t *testing.T) {
	assert.Zero(t, Haversine(delhiLat, delhiLon, delhiLat, delhiLon))
}

func TestHaversineSymmetric(t *testing.T) {
	ab := Haversine(delhiLat, delhiLon, mumbaiLat, mumbaiLon)
	ba := Haversine(mumbaiLat, mumbaiLon, delhiLat, delhiLon)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestHaversineDelhiMumbai(t *testing.T) {
	d := Haversine(delhiLat, delhiLon, mumbaiLat, mumbaiLon)
	assert.Greater(t, d, 1150.0)
	assert.Less(t, d, 1180.0)
}

func TestHaversineAntipodal(t *testing.T) {
	// Half the Earth's circumference at radius 6371 km is ~20015 km.
	d := Haversine(0, 0, 0, 180)
	assert.InDelta(t, 20015.0, d, 5.0)
}

func nearbyTestIndex(t *testing.T) (*Index, model.Place) {
	t.Helper()
	places := []model.Place{
		{ID: 1, Name: "Mumbai", Slug: "mumbai", Latitude: 19.0760, Longitude: 72.8777, Tier: 1},
		{ID: 2, Name: "Pune", Slug: "pune", Latitude: 18.5204, Longitude: 73.8567, Tier: 2},
		{ID: 3, Name: "Thane", Slug: "thane", Latitude: 19.2183, Longitude: 72.9781, Tier: 3},
		{ID: 4, Name: "Delhi", Slug: "delhi", Latitude: 28.6139, Longitude: 77.2090, Tier: 1},
	}
	reg, err := registry.New(places)
	require.NoError(t, err)
	mumbai, _ := reg.ByID(1)
	return NewIndex(reg), mumbai
}

func TestNearbyExcludesSelfAndSortsAscending(t *testing.T) {
	idx, mumbai := nearbyTestIndex(t)

	// Thane is ~19 km away; Pune (~120 km) and Delhi (~1160 km) fall outside
	// the default 100 km cap.
	got := idx.Nearby(mumbai, 0, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "Thane", got[0].Place.Name)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].DistanceKM, got[i-1].DistanceKM)
	}
	for _, n := range got {
		assert.NotEqual(t, mumbai.ID, n.Place.ID)
		assert.LessOrEqual(t, n.DistanceKM, DefaultMaxDistanceKM)
	}
}

func TestNearbyMaxDistance(t *testing.T) {
	idx, mumbai := nearbyTestIndex(t)

	within25 := idx.Nearby(mumbai, 25, 0)
	require.Len(t, within25, 1)
	assert.Equal(t, "Thane", within25[0].Place.Name)

	within2000 := idx.Nearby(mumbai, 2000, 10)
	assert.Len(t, within2000, 3)
}

func TestNearbyLimit(t *testing.T) {
	idx, mumbai := nearbyTestIndex(t)

	got := idx.Nearby(mumbai, 2000, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Thane", got[0].Place.Name)
}
