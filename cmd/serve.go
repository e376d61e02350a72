package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shreekundli/panchang-cli/internal/aggregate"
	"github.com/shreekundli/panchang-cli/internal/config"
	"github.com/shreekundli/panchang-cli/internal/match"
	"github.com/shreekundli/panchang-cli/internal/registry"
	"github.com/shreekundli/panchang-cli/internal/resolver"
	"github.com/shreekundli/panchang-cli/internal/sitemap"
	"github.com/shreekundli/panchang-cli/internal/slug"
	"github.com/shreekundli/panchang-cli/pkg/shreeng"
)

var servePort int

// apiServer holds the dependencies behind the HTTP handlers.
type apiServer struct {
	cfg      *config.Config
	reg      *registry.Registry
	matcher  *match.Matcher
	resolver *resolver.Resolver
	orch     *aggregate.Orchestrator
	sitemaps *sitemap.Generator
	now      func() time.Time
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the location and daily data API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		client := newEngineClient()
		res, closeCache, err := newResolver(client, reg)
		if err != nil {
			return err
		}
		defer closeCache()

		s := &apiServer{
			cfg:      cfg,
			reg:      reg,
			matcher:  match.New(reg, cfg.Match),
			resolver: res,
			orch:     aggregate.New(client),
			sitemaps: sitemap.New(reg, cfg.Sitemap.SiteURL),
			now:      time.Now,
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: s.router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func (s *apiServer) router() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/api/city-search", s.handleCitySearch)
	r.Get("/api/resolve/{slug}", s.handleResolve)
	r.Get("/api/daily/{slug}", s.handleDaily)
	r.Get("/sitemap-index.xml", s.handleSitemap(func() any { return s.sitemaps.IndexDoc() }))
	r.Get("/sitemap-core.xml", s.handleSitemap(func() any { return s.sitemaps.Core() }))
	r.Get("/sitemap-cities.xml", s.handleSitemap(func() any { return s.sitemaps.Cities() }))

	return r
}

// requestLogger tags each request with a uuid and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)

		start := time.Now()
		next.ServeHTTP(w, r)

		zap.L().Info("request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// respond writes the success envelope the site's frontend expects.
func (s *apiServer) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    data,
		"meta": map[string]any{
			"timestamp": s.now().UTC().Format(time.RFC3339),
		},
	})
}

func respondError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"message": message, "code": code},
	})
}

// respondEngineError maps the engine error taxonomy onto gateway statuses:
// timeouts become 504, missing data stays 404, everything else is a 502.
func respondEngineError(w http.ResponseWriter, err error) {
	ae, ok := shreeng.AsAPIError(err)
	if !ok {
		respondError(w, http.StatusInternalServerError, "internal error", "INTERNAL")
		return
	}
	switch {
	case shreeng.IsTimeout(err):
		respondError(w, http.StatusGatewayTimeout, ae.Message, ae.Code)
	case shreeng.IsNotFound(err):
		respondError(w, http.StatusNotFound, ae.Message, ae.Code)
	default:
		respondError(w, http.StatusBadGateway, ae.Message, ae.Code)
	}
}

func (s *apiServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCitySearch serves typeahead queries: the local registry answers
// first, the engine's geocode index fills in when the registry has nothing.
func (s *apiServer) handleCitySearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		fmt.Sscanf(v, "%d", &limit) //nolint:errcheck
	}

	if places := s.matcher.Search(q, limit); len(places) > 0 {
		s.respond(w, http.StatusOK, places)
		return
	}

	results, err := s.resolver.Search(r.Context(), q, shreeng.SearchOptions{
		PriorityCountry: s.cfg.Shreeng.PriorityCountry,
		Limit:           limit,
	})
	if err != nil {
		respondEngineError(w, err)
		return
	}
	s.respond(w, http.StatusOK, results)
}

func (s *apiServer) handleResolve(w http.ResponseWriter, r *http.Request) {
	loc := s.resolver.ResolveSlug(r.Context(), slug.ToSlug(chi.URLParam(r, "slug")), s.cfg.Shreeng.PriorityCountry)
	if loc == nil {
		respondError(w, http.StatusNotFound, "location not found", "NOT_FOUND")
		return
	}
	s.respond(w, http.StatusOK, loc)
}

func (s *apiServer) handleDaily(w http.ResponseWriter, r *http.Request) {
	loc := s.resolver.ResolveSlug(r.Context(), slug.ToSlug(chi.URLParam(r, "slug")), s.cfg.Shreeng.PriorityCountry)
	if loc == nil {
		respondError(w, http.StatusNotFound, "location not found", "NOT_FOUND")
		return
	}

	datetime, err := datetimeArg(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), "BAD_DATE")
		return
	}

	data, err := s.orch.DailyAnnotated(r.Context(), loc.ID, datetime, s.now())
	if err != nil {
		respondEngineError(w, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]any{
		"location": loc,
		"datetime": datetime,
		"daily":    data,
	})
}

func (s *apiServer) handleSitemap(doc func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		b, err := sitemap.Marshal(doc())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "sitemap generation failed", "INTERNAL")
			return
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write(b)
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
