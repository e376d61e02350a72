package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreekundli/panchang-cli/internal/aggregate"
	"github.com/shreekundli/panchang-cli/internal/config"
	"github.com/shreekundli/panchang-cli/internal/match"
	"github.com/shreekundli/panchang-cli/internal/model"
	"github.com/shreekundli/panchang-cli/internal/registry"
	"github.com/shreekundli/panchang-cli/internal/resolver"
	"github.com/shreekundli/panchang-cli/internal/sitemap"
	"github.com/shreekundli/panchang-cli/pkg/shreeng"
)

func testConfig() *config.Config {
	return &config.Config{
		Shreeng: config.ShreengConfig{PriorityCountry: "India"},
		Match: config.MatchConfig{
			ExactBonus:    100,
			PrefixBonus:   50,
			ContainsBonus: 25,
			Tier1Bonus:    10,
			Tier2Bonus:    5,
			DefaultLimit:  10,
		},
		Sitemap: config.SitemapConfig{SiteURL: "https://shreekundli.com"},
	}
}

// newTestServer wires an apiServer against a stub engine.
func newTestServer(t *testing.T, engine http.HandlerFunc, clientOpts ...shreeng.Option) *apiServer {
	t.Helper()

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	reg, err := registry.New([]model.Place{
		{ID: 1, Name: "Delhi", NameHindi: "दिल्ली", Slug: "delhi", State: "Delhi", Country: "India", Latitude: 28.6139, Longitude: 77.209, Timezone: "Asia/Kolkata", Tier: 1},
		{ID: 2, Name: "Mumbai", NameHindi: "मुंबई", Slug: "mumbai", State: "Maharashtra", Country: "India", Latitude: 19.076, Longitude: 72.8777, Timezone: "Asia/Kolkata", Tier: 1},
	})
	require.NoError(t, err)

	opts := append([]shreeng.Option{shreeng.WithBaseURL(srv.URL + "/v2")}, clientOpts...)
	client := shreeng.NewClient(opts...)
	cfg := testConfig()

	return &apiServer{
		cfg:      cfg,
		reg:      reg,
		matcher:  match.New(reg, cfg.Match),
		resolver: resolver.New(client, reg),
		orch:     aggregate.New(client),
		sitemaps: sitemap.New(reg, cfg.Sitemap.SiteURL),
		now:      func() time.Time { return time.Date(2026, 2, 4, 11, 0, 0, 0, time.UTC) },
	}
}

func doGet(t *testing.T, s *apiServer, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, func(http.ResponseWriter, *http.Request) {})
	rec := doGet(t, s, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"ok"`)
}

func TestCitySearchServedLocally(t *testing.T) {
	s := newTestServer(t, func(http.ResponseWriter, *http.Request) {
		t.Error("engine must not be called when the registry matches")
	})
	rec := doGet(t, s, "/api/city-search?q=delhi")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var places []model.Place
	require.NoError(t, json.Unmarshal(env.Data, &places))
	require.Len(t, places, 1)
	assert.Equal(t, "Delhi", places[0].Name)
}

func TestCitySearchFallsBackToEngine(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "varanasi", r.URL.Query().Get("city"))
		_, _ = io.WriteString(w, `{
			"success": true,
			"data": [{"locationId": 9, "name": "Varanasi", "state": "Uttar Pradesh", "country": "India", "latitude": 25.3176, "longitude": 82.9739, "timezone": "Asia/Kolkata"}],
			"meta": {}
		}`)
	})
	rec := doGet(t, s, "/api/city-search?q=varanasi")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var results []model.ResolvedLocation
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 1)
	assert.Equal(t, 9, results[0].ID)
	assert.Equal(t, "varanasi", results[0].Slug)
}

func TestCitySearchEngineFailure(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	rec := doGet(t, s, "/api/city-search?q=varanasi")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
}

func TestResolveNotFound(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"success": true, "data": [], "meta": {}}`)
	})
	rec := doGet(t, s, "/api/resolve/atlantis")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestResolveFound(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{
			"success": true,
			"data": [{"locationId": 101, "name": "Mumbai", "state": "Maharashtra", "country": "India", "latitude": 19.076, "longitude": 72.8777, "timezone": "Asia/Kolkata"}],
			"meta": {}
		}`)
	})
	rec := doGet(t, s, "/api/resolve/mumbai")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var loc model.ResolvedLocation
	require.NoError(t, json.Unmarshal(env.Data, &loc))
	assert.Equal(t, 101, loc.ID)
	assert.Equal(t, "मुंबई", loc.NameHindi) // registry enrichment
}

func dailyEngineStub(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/geocode/search":
			_, _ = io.WriteString(w, `{
				"success": true,
				"data": [{"locationId": 101, "name": "Mumbai", "state": "Maharashtra", "country": "India", "latitude": 19.076, "longitude": 72.8777, "timezone": "Asia/Kolkata"}],
				"meta": {}
			}`)
		case "/v2/panchang":
			_, _ = io.WriteString(w, `{"tithi": {"name": "Dwitiya", "number": 2}}`)
		case "/v2/astronomical":
			_, _ = io.WriteString(w, `{"sun": {"sunrise": "07:05 AM", "sunset": "06:10 PM"}}`)
		case "/v2/panchang/muhurta":
			_, _ = io.WriteString(w, `{"rahuKaal": {"start": "10:30 AM", "end": "12:00 PM"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}
}

func TestDaily(t *testing.T) {
	s := newTestServer(t, dailyEngineStub(t))
	rec := doGet(t, s, "/api/daily/mumbai?date=2026-02-04")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var body struct {
		Location model.ResolvedLocation `json:"location"`
		Datetime string                 `json:"datetime"`
		Daily    aggregate.DailyData    `json:"daily"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, 101, body.Location.ID)
	assert.Equal(t, "2026-02-04T12:00:00", body.Datetime)
	assert.Equal(t, "Dwitiya", body.Daily.Panchang.Tithi.Name)
	// now is 11:00 AM, inside rahu kaal
	assert.True(t, body.Daily.Muhurta.RahuKaal.IsActive)
}

func TestDailyBadDate(t *testing.T) {
	s := newTestServer(t, dailyEngineStub(t))
	rec := doGet(t, s, "/api/daily/mumbai?date=yesterday")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "BAD_DATE", env.Error.Code)
}

func TestDailyEngineErrorBecomes502(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/geocode/search" {
			_, _ = io.WriteString(w, `{
				"success": true,
				"data": [{"locationId": 101, "name": "Mumbai", "state": "Maharashtra", "country": "India", "latitude": 19.076, "longitude": 72.8777, "timezone": "Asia/Kolkata"}],
				"meta": {}
			}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})
	rec := doGet(t, s, "/api/daily/mumbai?date=2026-02-04")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDailyTimeoutBecomes504(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/geocode/search" {
			_, _ = io.WriteString(w, `{
				"success": true,
				"data": [{"locationId": 101, "name": "Mumbai", "state": "Maharashtra", "country": "India", "latitude": 19.076, "longitude": 72.8777, "timezone": "Asia/Kolkata"}],
				"meta": {}
			}`)
			return
		}
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, shreeng.WithTimeout(50*time.Millisecond))
	rec := doGet(t, s, "/api/daily/mumbai?date=2026-02-04")

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestSitemapEndpoints(t *testing.T) {
	s := newTestServer(t, func(http.ResponseWriter, *http.Request) {})

	for _, path := range []string{"/sitemap-index.xml", "/sitemap-core.xml", "/sitemap-cities.xml"} {
		rec := doGet(t, s, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"), path)
		assert.True(t, strings.Contains(rec.Body.String(), "sitemaps.org"), path)
	}
}
