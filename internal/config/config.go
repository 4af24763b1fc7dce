package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelvins/geocoder"

	"github.com/vhenriksson/wind-monitor/internal/logger"
	"github.com/vhenriksson/wind-monitor/internal/wind"
)

var validate = validator.New()

type AppConfig struct {
	// Provider selects the meteorological data source.
	Provider wind.ProviderName `validate:"required,oneof=smhi yr"`

	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`

	// Altitude in metres; consumed by the YR provider only.
	Altitude float64

	// UpdateInterval controls the steady-state refresh cadence.
	UpdateInterval time.Duration `validate:"gt=0"`

	// RetryDelay and MaxRetries bound the retry budget of one period.
	RetryDelay time.Duration `validate:"gt=0"`
	MaxRetries int           `validate:"gte=0"`

	// HTTPTimeout is the hard ceiling on a single provider request.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// UserAgent identifies this service to providers that require one.
	UserAgent string

	Port string

	// Geocoding fallback, used only when WIND_LAT/WIND_LON are not set.
	GeocoderAPIKey  string
	LocationCity    string
	LocationCountry string

	coordinatesSet bool
}

// Load reads configuration from environment with sensible defaults: 30m
// refresh, 2s retry delay, 3 retries, 10s HTTP timeout. Malformed numeric
// values fail here rather than leaking into request URLs.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Infof("config: no .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Provider:        wind.ProviderName(getenvDefault("WIND_PROVIDER", "smhi")),
		UserAgent:       os.Getenv("WIND_USER_AGENT"),
		Port:            getenvDefault("PORT", "8080"),
		GeocoderAPIKey:  os.Getenv("GEOCODER_API_KEY"),
		LocationCity:    os.Getenv("WIND_LOCATION_CITY"),
		LocationCountry: os.Getenv("WIND_LOCATION_COUNTRY"),
	}

	var err error
	if cfg.UpdateInterval, err = getenvDuration("UPDATE_INTERVAL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RetryDelay, err = getenvDuration("RETRY_DELAY", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.MaxRetries, err = getenvInt("MAX_RETRIES", 3); err != nil {
		return nil, err
	}
	if cfg.Altitude, err = getenvFloat("WIND_ALTITUDE", 0); err != nil {
		return nil, err
	}

	latStr, lonStr := os.Getenv("WIND_LAT"), os.Getenv("WIND_LON")
	switch {
	case latStr != "" && lonStr != "":
		if cfg.Latitude, err = parseFloat("WIND_LAT", latStr); err != nil {
			return nil, err
		}
		if cfg.Longitude, err = parseFloat("WIND_LON", lonStr); err != nil {
			return nil, err
		}
		cfg.coordinatesSet = true
	case cfg.LocationCity != "":
		// Coordinates are filled in by ResolveCoordinates.
	default:
		return nil, fmt.Errorf("either WIND_LAT/WIND_LON or WIND_LOCATION_CITY must be set")
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ResolveCoordinates fills Latitude/Longitude from the configured city when
// explicit coordinates were not provided. Requires GEOCODER_API_KEY.
func (c *AppConfig) ResolveCoordinates() error {
	if c.coordinatesSet {
		return nil
	}
	if c.GeocoderAPIKey == "" {
		return fmt.Errorf("geocoding %q requires GEOCODER_API_KEY", c.LocationCity)
	}

	geocoder.ApiKey = c.GeocoderAPIKey
	loc, err := geocoder.Geocoding(geocoder.Address{
		City:    c.LocationCity,
		Country: c.LocationCountry,
	})
	if err != nil {
		return fmt.Errorf("failed to geocode %q: %w", c.LocationCity, err)
	}
	c.Latitude = loc.Latitude
	c.Longitude = loc.Longitude
	c.coordinatesSet = true

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Infof("config: resolved %s to %.4f,%.4f", c.LocationCity, c.Latitude, c.Longitude)
	return nil
}

// Location returns the acquisition target.
func (c *AppConfig) Location() wind.Location {
	return wind.Location{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Altitude:  c.Altitude,
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return parseFloat(key, v)
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseFloat(key, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
