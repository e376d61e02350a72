// Package aggregate fans out the per-day engine calls a daily panchang page
// needs and joins them into one result.
package aggregate

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/shreekundli/panchang-cli/internal/schedule"
	"github.com/shreekundli/panchang-cli/pkg/shreeng"
)

// DailyData is everything a daily page renders for one location and datetime.
type DailyData struct {
	Panchang     *shreeng.PanchangResponse     `json:"panchang"`
	Astronomical *shreeng.AstronomicalResponse `json:"astronomical"`
	Muhurta      *shreeng.MuhurtaResponse      `json:"muhurta"`
}

// Orchestrator aggregates engine responses for page renders.
type Orchestrator struct {
	client shreeng.Client
}

// New creates an Orchestrator.
func New(client shreeng.Client) *Orchestrator {
	return &Orchestrator{client: client}
}

// Daily fetches panchang, astronomical, and muhurta data concurrently.
// The first failure cancels the remaining calls and the whole aggregation
// fails. There is no partial result: a page render either has everything or
// shows an error.
func (o *Orchestrator) Daily(ctx context.Context, locationID int, datetime string) (*DailyData, error) {
	var data DailyData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := o.client.Panchang(ctx, locationID, datetime)
		if err != nil {
			return eris.Wrap(err, "aggregate: panchang")
		}
		data.Panchang = p
		return nil
	})
	g.Go(func() error {
		a, err := o.client.Astronomical(ctx, locationID, datetime)
		if err != nil {
			return eris.Wrap(err, "aggregate: astronomical")
		}
		data.Astronomical = a
		return nil
	})
	g.Go(func() error {
		m, err := o.client.Muhurta(ctx, locationID, datetime)
		if err != nil {
			return eris.Wrap(err, "aggregate: muhurta")
		}
		data.Muhurta = m
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// DailyAnnotated fetches the daily aggregate and recomputes the muhurta
// window flags against now.
func (o *Orchestrator) DailyAnnotated(ctx context.Context, locationID int, datetime string, now time.Time) (*DailyData, error) {
	data, err := o.Daily(ctx, locationID, datetime)
	if err != nil {
		return nil, err
	}
	schedule.AnnotateMuhurta(data.Muhurta, now)
	return data, nil
}
