package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreekundli/panchang-cli/internal/model"
)

func testPlaces() []model.Place {
	return []model.Place{
		{ID: 1, Name: "Delhi", NameHindi: "दिल्ली", Slug: "delhi", State: "Delhi", Country: "India",
			Latitude: 28.6139, Longitude: 77.2090, Timezone: "Asia/Kolkata", Population: 32941000, Tier: 1},
		{ID: 2, Name: "Mumbai", NameHindi: "मुंबई", Slug: "mumbai", State: "Maharashtra", Country: "India",
			Latitude: 19.0760, Longitude: 72.8777, Timezone: "Asia/Kolkata", Population: 21297000, Tier: 1},
		{ID: 3, Name: "Pune", NameHindi: "पुणे", Slug: "pune", State: "Maharashtra", Country: "India",
			Latitude: 18.5204, Longitude: 73.8567, Timezone: "Asia/Kolkata", Population: 7166000, Tier: 2},
	}
}

func TestLoadEmbedded(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	require.NotZero(t, r.Len())

	delhi, ok := r.BySlug("delhi")
	require.True(t, ok)
	assert.Equal(t, "Delhi", delhi.Name)
	assert.Equal(t, 1, delhi.Tier)
	assert.Equal(t, "Asia/Kolkata", delhi.Timezone)

	// Every embedded place has a unique id and slug by construction; spot
	// check the fields the resolver depends on.
	for _, p := range r.All() {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Slug)
		assert.NotEmpty(t, p.Timezone)
		assert.GreaterOrEqual(t, p.Population, 0)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "places.yaml")
	data := `
places:
  - id: 7
    name: Testville
    name_hindi: टेस्ट
    slug: testville
    state: Test State
    state_hindi: टेस्ट
    country: India
    latitude: 10.0
    longitude: 20.0
    timezone: Asia/Kolkata
    population: 1000
    tier: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	p, ok := r.ByID(7)
	require.True(t, ok)
	assert.Equal(t, "Testville", p.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewRejectsDuplicates(t *testing.T) {
	dupID := testPlaces()
	dupID[1].ID = 1
	_, err := New(dupID)
	assert.Error(t, err)

	dupSlug := testPlaces()
	dupSlug[2].Slug = "delhi"
	_, err = New(dupSlug)
	assert.Error(t, err)
}

func TestNewRejectsInvalidTier(t *testing.T) {
	places := testPlaces()
	places[0].Tier = 4
	_, err := New(places)
	assert.Error(t, err)
}

func TestLookups(t *testing.T) {
	r, err := New(testPlaces())
	require.NoError(t, err)

	byID, ok := r.ByID(2)
	require.True(t, ok)
	assert.Equal(t, "Mumbai", byID.Name)

	_, ok = r.ByID(99)
	assert.False(t, ok)

	byName, ok := r.ByName("mumbai")
	require.True(t, ok)
	assert.Equal(t, 2, byName.ID)

	hindi, ok := r.ByName("पुणे")
	require.True(t, ok)
	assert.Equal(t, "Pune", hindi.Name)

	_, ok = r.ByName("Atlantis")
	assert.False(t, ok)

	assert.True(t, r.IsValidSlug("pune"))
	assert.False(t, r.IsValidSlug("atlantis"))
}

func TestTierFilters(t *testing.T) {
	r, err := New(testPlaces())
	require.NoError(t, err)

	assert.Len(t, r.Tier(1), 2)
	assert.Len(t, r.Tier(2), 1)
	assert.Empty(t, r.Tier(3))
	assert.Len(t, r.UpToTier(1), 2)
	assert.Len(t, r.UpToTier(2), 3)
}

func TestByStateAndPopulation(t *testing.T) {
	r, err := New(testPlaces())
	require.NoError(t, err)

	mh := r.ByState("maharashtra")
	require.Len(t, mh, 2)
	assert.Equal(t, "Mumbai", mh[0].Name)

	top := r.ByPopulation(2)
	require.Len(t, top, 2)
	assert.Equal(t, "Delhi", top[0].Name)
	assert.Equal(t, "Mumbai", top[1].Name)

	all := r.ByPopulation(0)
	assert.Len(t, all, 3)
}

func TestDefault(t *testing.T) {
	r, err := New(testPlaces())
	require.NoError(t, err)
	assert.Equal(t, "delhi", r.Default().Slug)

	noDelhi, err := New(testPlaces()[1:])
	require.NoError(t, err)
	assert.Equal(t, "mumbai", noDelhi.Default().Slug)
}
