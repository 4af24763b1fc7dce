package wind

import "net/http"

// Provider is one meteorological data source. Each implementation supplies
// the same three operations: building the request URL for a location, the
// header set its API requires, and parsing its response schema into the
// normalized observation.
type Provider interface {
	Name() ProviderName

	// BuildURL renders the provider endpoint for loc. It is pure: no I/O,
	// no failure. Formatting quirks (decimal precision, parameter order,
	// altitude truncation) live here and nowhere else.
	BuildURL(loc Location) string

	// Headers returns the header set sent on every request to this
	// provider.
	Headers() http.Header

	// Parse extracts the observation from a complete response body. Bad
	// input yields an error of kind FailureMalformedBody or
	// FailureSchemaMismatch, never partial data.
	Parse(body []byte) (Observation, error)
}

// Store receives each cycle's outcome and serves the latest state to
// consumers. Implementations must be safe for concurrent use.
type Store interface {
	SetObservation(obs Observation)
	// SetFailure discards any held observation so stale data is never
	// served as current.
	SetFailure()
	Latest() (Observation, error)
}
