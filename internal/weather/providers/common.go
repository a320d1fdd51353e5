package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	errServerError  = errors.New("server error")
	errNoHTTPClient = errors.New("http client not configured")
)

// rawResponse is what a single attempt yields once the body has been drained.
type rawResponse struct {
	status int
	body   []byte
}

// newCircuitBreaker builds the breaker guarding one upstream. Only transport
// failures and 5xx answers count as failures (see doRequest); a 4xx means the
// service is up.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("INFO: circuit %s changed from %s to %s", name, from, to)
		},
	})
}

// doRequest executes exactly one attempt through the circuit breaker. There is
// no retry: a failed attempt is reported to the caller as is.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	req *http.Request,
) (rawResponse, error) {
	if client == nil {
		return rawResponse{}, fmt.Errorf("%w: %v", weather.ErrTransport, errNoHTTPClient)
	}

	// Ensure the request obeys context cancellation.
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read response body: %w", readErr)
		}

		raw := rawResponse{status: resp.StatusCode, body: body}
		if resp.StatusCode >= 500 {
			return raw, errServerError
		}
		return raw, nil
	})

	// A 5xx still carries a response; the caller classifies it by status.
	if raw, ok := result.(rawResponse); ok {
		return raw, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return rawResponse{}, fmt.Errorf("%w: circuit breaker open: %v", weather.ErrTransport, err)
	}
	if err != nil {
		return rawResponse{}, fmt.Errorf("%w: %v", weather.ErrTransport, err)
	}
	return rawResponse{}, fmt.Errorf("%w: unexpected result type from circuit breaker", weather.ErrTransport)
}
