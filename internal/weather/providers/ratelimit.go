package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// RateLimited wraps a Fetcher so outbound calls stay under the API key's quota.
// It only delays calls; it never repeats one.
type RateLimited struct {
	fetcher weather.Fetcher
	limiter *rate.Limiter
	name    string
}

var _ weather.Fetcher = (*RateLimited)(nil)

// NewRateLimited allows rps requests per second with the given burst.
// A non-positive rps disables limiting.
func NewRateLimited(fetcher weather.Fetcher, rps float64, burst int) *RateLimited {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}

	return &RateLimited{
		fetcher: fetcher,
		limiter: rate.NewLimiter(limit, burst),
		name:    fmt.Sprintf("%s [rate limited]", fetcher.Name()),
	}
}

func (r *RateLimited) Name() string {
	return r.name
}

// FetchForecast waits for a token, then forwards to the wrapped fetcher.
func (r *RateLimited) FetchForecast(ctx context.Context, query string, days int) (weather.ForecastResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return weather.ForecastResponse{}, fmt.Errorf("%w: rate limit wait canceled: %v", weather.ErrTransport, err)
	}
	return r.fetcher.FetchForecast(ctx, query, days)
}
