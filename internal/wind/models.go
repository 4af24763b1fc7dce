package wind

// ProviderName identifies one of the supported meteorological data providers.
// The set is closed; the providers package rejects anything else.
type ProviderName string

const (
	ProviderSMHI ProviderName = "smhi"
	ProviderYR   ProviderName = "yr"
)

// Location is the geographic point observations are fetched for.
// It is immutable for the duration of an acquisition cycle.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Altitude in metres; consumed by the YR provider only and 0 when
	// not configured. No validation error is raised for other providers.
	Altitude float64 `json:"altitude"`
}

// Observation is the normalized view of current wind conditions, produced
// fresh on every successful fetch. Both fields are always populated; a
// partially-valid observation is never constructed.
//
// WindDirection 0 is the provider sentinel for "direction unknown" (calm
// air); every other value is a heading in degrees. See ClassifyDirection.
type Observation struct {
	// WindSpeed in meters per second, as reported by the provider.
	WindSpeed float64 `json:"windSpeed"`
	// WindDirection in degrees, [0,360).
	WindDirection float64 `json:"windDirection"`
}
