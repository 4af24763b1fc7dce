package providers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/vhenriksson/wind-monitor/internal/wind"
)

const (
	yrBaseURL = "https://api.met.no/weatherapi/locationforecast/2.0/complete"

	// met.no rejects anonymous User-Agents by policy, so a descriptive
	// fallback is always sent even when none is configured.
	yrDefaultUserAgent = "wind-monitor/1.0 github.com/vhenriksson/wind-monitor"
)

// YR reads location forecasts from the Norwegian Meteorological Institute
// (api.met.no).
type YR struct {
	baseURL   string
	userAgent string
}

func NewYR(userAgent string) *YR {
	if userAgent == "" {
		userAgent = yrDefaultUserAgent
	}
	return &YR{baseURL: yrBaseURL, userAgent: userAgent}
}

func (p *YR) Name() wind.ProviderName { return wind.ProviderYR }

// BuildURL passes the coordinates as query parameters. Altitude is
// truncated to a whole metre, not rounded; latitude and longitude keep
// their shortest exact decimal form.
func (p *YR) BuildURL(loc wind.Location) string {
	query := url.Values{}
	query.Set("altitude", strconv.Itoa(int(loc.Altitude)))
	query.Set("lat", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	return p.baseURL + "?" + query.Encode()
}

func (p *YR) Headers() http.Header {
	h := http.Header{}
	h.Set("User-Agent", p.userAgent)
	h.Set("Accept", "application/json")
	return h
}

// yrResponse mirrors the instantaneous details block of the locationforecast
// schema. Every link on the path is a pointer so a missing block is
// distinguishable from an empty one.
type yrResponse struct {
	Properties *yrProperties `json:"properties"`
}

type yrProperties struct {
	Timeseries []yrTimeStep `json:"timeseries"`
}

type yrTimeStep struct {
	Data *yrData `json:"data"`
}

type yrData struct {
	Instant *yrInstant `json:"instant"`
}

type yrInstant struct {
	Details *yrDetails `json:"details"`
}

type yrDetails struct {
	WindSpeed     *float64 `json:"wind_speed"`
	WindDirection *float64 `json:"wind_from_direction"`
}

// Parse walks properties.timeseries[0].data.instant.details and reads the
// wind_speed and wind_from_direction values. The first broken link on that
// path is reported as the mismatched field.
func (p *YR) Parse(body []byte) (wind.Observation, error) {
	var doc yrResponse
	if err := decodeStrict(wind.ProviderYR, body, &doc); err != nil {
		return wind.Observation{}, err
	}

	if doc.Properties == nil {
		return wind.Observation{}, p.mismatch("properties")
	}
	if len(doc.Properties.Timeseries) == 0 {
		return wind.Observation{}, p.mismatch("properties.timeseries")
	}

	first := doc.Properties.Timeseries[0]
	switch {
	case first.Data == nil:
		return wind.Observation{}, p.mismatch("timeseries[0].data")
	case first.Data.Instant == nil:
		return wind.Observation{}, p.mismatch("timeseries[0].data.instant")
	case first.Data.Instant.Details == nil:
		return wind.Observation{}, p.mismatch("timeseries[0].data.instant.details")
	}

	details := first.Data.Instant.Details
	if details.WindSpeed == nil {
		return wind.Observation{}, p.mismatch("details.wind_speed")
	}
	if details.WindDirection == nil {
		return wind.Observation{}, p.mismatch("details.wind_from_direction")
	}

	return wind.Observation{
		WindSpeed:     *details.WindSpeed,
		WindDirection: *details.WindDirection,
	}, nil
}

func (p *YR) mismatch(field string) error {
	return wind.NewSchemaMismatchError(wind.ProviderYR, field)
}
