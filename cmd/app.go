package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/shreekundli/panchang-cli/internal/registry"
	"github.com/shreekundli/panchang-cli/internal/resolver"
	"github.com/shreekundli/panchang-cli/pkg/shreeng"
)

// engineDatetimeLayout is the local datetime format the engine expects.
const engineDatetimeLayout = "2006-01-02T15:04:05"

// newEngineClient builds the Shreeng client from config.
func newEngineClient() shreeng.Client {
	return shreeng.NewClient(
		shreeng.WithBaseURL(cfg.Shreeng.BaseURL),
		shreeng.WithAPIKey(cfg.Shreeng.APIKey),
		shreeng.WithTimeout(time.Duration(cfg.Shreeng.TimeoutSecs)*time.Second),
		shreeng.WithRateLimit(cfg.Shreeng.RateLimitRPS),
	)
}

// loadRegistry loads the configured dataset, or the embedded one.
func loadRegistry() (*registry.Registry, error) {
	return registry.Load(cfg.Registry.Path)
}

// newResolver builds the resolver, attaching the SQLite cache when a cache
// path is configured. The returned closer is a no-op without a cache.
func newResolver(client shreeng.Client, reg *registry.Registry) (*resolver.Resolver, func(), error) {
	opts := []resolver.Option{resolver.WithCandidateLimit(cfg.Resolver.CandidateLimit)}
	closer := func() {}

	if cfg.Resolver.CachePath != "" {
		ttl := time.Duration(cfg.Resolver.CacheTTLHours) * time.Hour
		cache, err := resolver.NewCache(cfg.Resolver.CachePath, ttl)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, resolver.WithCache(cache))
		closer = func() {
			if err := cache.Close(); err != nil {
				zap.L().Warn("close resolver cache", zap.Error(err))
			}
		}
	}

	return resolver.New(client, reg, opts...), closer, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(b))
	return nil
}

// datetimeArg resolves the --date flag: empty means now, a bare date gets
// noon attached so panchang elements are sampled mid-day.
func datetimeArg(date string) (string, error) {
	if date == "" {
		return time.Now().Format(engineDatetimeLayout), nil
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Add(12 * time.Hour).Format(engineDatetimeLayout), nil
	}
	if _, err := time.Parse(engineDatetimeLayout, date); err != nil {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS", date)
	}
	return date, nil
}
