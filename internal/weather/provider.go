package weather

import (
	"context"
)

// Fetcher abstracts the remote forecast source (WeatherAPI.com in production).
//
// FetchForecast issues at most one outbound request. Errors wrap one of
// ErrNotFound, ErrTransport or ErrMalformedResponse. A returned response has
// already passed Validate.
type Fetcher interface {
	Name() string
	FetchForecast(ctx context.Context, query string, days int) (ForecastResponse, error)
}
