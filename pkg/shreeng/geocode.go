package shreeng

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultSearchLimit is the candidate count for city searches.
const DefaultSearchLimit = 8

// SearchCities queries the geocode search endpoint and unwraps the
// {success, data, meta} envelope, mapping locationId to ID.
func (c *httpClient) SearchCities(ctx context.Context, query string, opts SearchOptions) ([]GeoResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	params := url.Values{
		"city":  {query},
		"limit": {strconv.Itoa(limit)},
	}
	if opts.Country != "" {
		params.Set("country", opts.Country)
	}
	if opts.PriorityCountry != "" {
		params.Set("priorityCountry", opts.PriorityCountry)
	}

	var env envelope
	if err := c.get(ctx, true, "/geocode/search", params, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Message: "geocode search unsuccessful", Status: http.StatusBadGateway}
	}

	out := make([]GeoResult, 0, len(env.Data))
	for _, r := range env.Data {
		out = append(out, mapGeoResult(r))
	}
	return out, nil
}

// ReverseGeocode returns the nearest city for a coordinate, or nil when the
// index has no match.
func (c *httpClient) ReverseGeocode(ctx context.Context, lat, lng float64) (*GeoResult, error) {
	params := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lng":   {strconv.FormatFloat(lng, 'f', -1, 64)},
		"limit": {"1"},
	}

	var env envelope
	if err := c.get(ctx, true, "/geocode/reverse", params, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &APIError{Message: "reverse geocode unsuccessful", Status: http.StatusBadGateway}
	}
	if len(env.Data) == 0 {
		return nil, nil
	}

	r := mapGeoResult(env.Data[0])
	return &r, nil
}

func mapGeoResult(r rawGeoResult) GeoResult {
	return GeoResult{
		ID:        r.LocationID,
		Name:      r.Name,
		State:     r.State,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timezone:  r.Timezone,
	}
}
