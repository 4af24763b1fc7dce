package wind

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Fetcher performs the single outbound GET of an acquisition cycle and maps
// every transport and HTTP outcome onto the acquisition error taxonomy. It
// issues exactly one request per call; retrying is the scheduler's job.
//
// A circuit breaker guards the upstream. While open it fails fast, surfaced
// as a transport failure like any other unreachable-host condition.
type Fetcher struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewFetcher wraps client with a circuit breaker named after the provider.
// The client's Timeout is the hard ceiling on a request; expiry is reported
// as FailureTimeout.
func NewFetcher(client *http.Client, name ProviderName) *Fetcher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(name),
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Fetcher{client: client, breaker: cb}
}

// Fetch issues one GET against rawURL and buffers the complete body.
// Any status other than 200 fails with FailureHTTPStatus before the body
// is read; success never depends on interpreting an error response.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, headers http.Header) ([]byte, error) {
	result, err := f.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, NewTransportError(err)
		}
		for key, values := range headers {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, classifyTransportError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, NewHTTPStatusError(resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, classifyTransportError(err)
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, NewTransportError(err)
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, NewTransportError(errors.New("unexpected circuit breaker result type"))
	}
	return body, nil
}

// classifyTransportError separates deadline expiry from other network
// faults. http.Client surfaces its Timeout as a net.Error with Timeout()
// true, so both the client ceiling and a context deadline land on
// FailureTimeout.
func classifyTransportError(err error) *AcquisitionError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(err)
	}
	return NewTransportError(err)
}
