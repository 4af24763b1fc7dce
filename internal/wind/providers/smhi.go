package providers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vhenriksson/wind-monitor/internal/wind"
)

const smhiBaseURL = "https://opendata-download-metfcst.smhi.se/api/category/pmp3g/version/2/geotype/point"

// SMHI reads point forecasts from the Swedish Meteorological and
// Hydrological Institute open data API.
type SMHI struct {
	baseURL string
}

func NewSMHI() *SMHI {
	return &SMHI{baseURL: smhiBaseURL}
}

func (p *SMHI) Name() wind.ProviderName { return wind.ProviderSMHI }

// BuildURL embeds longitude then latitude in the path, in that order. The
// endpoint rejects coordinates not formatted with exactly six decimal
// places, so both are rendered with a fixed precision of 6.
func (p *SMHI) BuildURL(loc wind.Location) string {
	lon := strconv.FormatFloat(loc.Longitude, 'f', 6, 64)
	lat := strconv.FormatFloat(loc.Latitude, 'f', 6, 64)
	return fmt.Sprintf("%s/lon/%s/lat/%s/data.json", p.baseURL, lon, lat)
}

func (p *SMHI) Headers() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	return h
}

// smhiResponse mirrors the slice of the SMHI schema this service consumes.
// Values decode as pointers so absent and null entries stay distinguishable
// from a legitimate 0.
type smhiResponse struct {
	TimeSeries []smhiTimeStep `json:"timeSeries"`
}

type smhiTimeStep struct {
	Parameters []smhiParameter `json:"parameters"`
}

type smhiParameter struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

// Parse locates the "ws" (wind speed) and "wd" (wind direction) parameters
// in the first time-series entry. Parameters this service does not consume
// are ignored; both wind parameters missing their first value is a schema
// mismatch, not a zero observation.
func (p *SMHI) Parse(body []byte) (wind.Observation, error) {
	var doc smhiResponse
	if err := decodeStrict(wind.ProviderSMHI, body, &doc); err != nil {
		return wind.Observation{}, err
	}

	if len(doc.TimeSeries) == 0 {
		return wind.Observation{}, wind.NewSchemaMismatchError(wind.ProviderSMHI, "timeSeries")
	}
	params := doc.TimeSeries[0].Parameters
	if len(params) == 0 {
		return wind.Observation{}, wind.NewSchemaMismatchError(wind.ProviderSMHI, "timeSeries[0].parameters")
	}

	speed, err := firstParameterValue(params, "ws")
	if err != nil {
		return wind.Observation{}, err
	}
	direction, err := firstParameterValue(params, "wd")
	if err != nil {
		return wind.Observation{}, err
	}

	return wind.Observation{WindSpeed: speed, WindDirection: direction}, nil
}

func firstParameterValue(params []smhiParameter, name string) (float64, error) {
	for _, param := range params {
		if param.Name != name {
			continue
		}
		if len(param.Values) == 0 || param.Values[0] == nil {
			return 0, wind.NewSchemaMismatchError(wind.ProviderSMHI,
				fmt.Sprintf("parameters[%s].values", name))
		}
		return *param.Values[0], nil
	}
	return 0, wind.NewSchemaMismatchError(wind.ProviderSMHI,
		fmt.Sprintf("parameters[%s]", name))
}
