package config

import (
	"strings"
	"testing"
	"time"

	"github.com/vhenriksson/wind-monitor/internal/wind"
)

// clearEnv blanks every variable Load consumes so ambient shell state can
// not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WIND_PROVIDER", "WIND_LAT", "WIND_LON", "WIND_ALTITUDE",
		"UPDATE_INTERVAL", "RETRY_DELAY", "MAX_RETRIES", "HTTP_TIMEOUT",
		"WIND_USER_AGENT", "PORT", "GEOCODER_API_KEY",
		"WIND_LOCATION_CITY", "WIND_LOCATION_COUNTRY",
	} {
		t.Setenv(key, "")
	}
}

// TestLoadDefaults verifies the documented defaults with only coordinates
// provided.
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIND_LAT", "57.7089")
	t.Setenv("WIND_LON", "11.9746")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != wind.ProviderSMHI {
		t.Errorf("Provider = %q, want smhi", cfg.Provider)
	}
	if cfg.UpdateInterval != 30*time.Minute {
		t.Errorf("UpdateInterval = %v, want 30m", cfg.UpdateInterval)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}

	loc := cfg.Location()
	if loc.Latitude != 57.7089 || loc.Longitude != 11.9746 || loc.Altitude != 0 {
		t.Errorf("unexpected location: %+v", loc)
	}
}

// TestLoadOverrides verifies every tunable is read from the environment.
func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIND_PROVIDER", "yr")
	t.Setenv("WIND_LAT", "60.39")
	t.Setenv("WIND_LON", "5.32")
	t.Setenv("WIND_ALTITUDE", "12.9")
	t.Setenv("UPDATE_INTERVAL", "5m")
	t.Setenv("RETRY_DELAY", "500ms")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("WIND_USER_AGENT", "acme-wind/2.1 ops@acme.example")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != wind.ProviderYR {
		t.Errorf("Provider = %q, want yr", cfg.Provider)
	}
	if cfg.UpdateInterval != 5*time.Minute || cfg.RetryDelay != 500*time.Millisecond {
		t.Errorf("unexpected intervals: %v / %v", cfg.UpdateInterval, cfg.RetryDelay)
	}
	if cfg.MaxRetries != 5 || cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("unexpected retry/timeout: %d / %v", cfg.MaxRetries, cfg.HTTPTimeout)
	}
	if cfg.UserAgent != "acme-wind/2.1 ops@acme.example" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.Altitude != 12.9 {
		t.Errorf("Altitude = %v, want 12.9", cfg.Altitude)
	}
}

// TestLoadRejectsBadValues verifies malformed or out-of-range settings fail
// at startup instead of reaching a provider URL.
func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"no location at all", map[string]string{}},
		{"latitude not a number", map[string]string{"WIND_LAT": "abc", "WIND_LON": "11.97"}},
		{"longitude not a number", map[string]string{"WIND_LAT": "57.7", "WIND_LON": "east"}},
		{"latitude out of range", map[string]string{"WIND_LAT": "95", "WIND_LON": "11.97"}},
		{"longitude out of range", map[string]string{"WIND_LAT": "57.7", "WIND_LON": "181"}},
		{"latitude NaN", map[string]string{"WIND_LAT": "NaN", "WIND_LON": "11.97"}},
		{"bad interval", map[string]string{"WIND_LAT": "57.7", "WIND_LON": "11.97", "UPDATE_INTERVAL": "soon"}},
		{"bad retry delay", map[string]string{"WIND_LAT": "57.7", "WIND_LON": "11.97", "RETRY_DELAY": "2 seconds"}},
		{"bad max retries", map[string]string{"WIND_LAT": "57.7", "WIND_LON": "11.97", "MAX_RETRIES": "many"}},
		{"negative max retries", map[string]string{"WIND_LAT": "57.7", "WIND_LON": "11.97", "MAX_RETRIES": "-1"}},
		{"unknown provider", map[string]string{"WIND_LAT": "57.7", "WIND_LON": "11.97", "WIND_PROVIDER": "noaa"}},
		{"bad altitude", map[string]string{"WIND_LAT": "57.7", "WIND_LON": "11.97", "WIND_ALTITUDE": "high"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := Load(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

// TestResolveCoordinatesNeedsKey verifies the geocoding fallback demands an
// API key instead of failing mid-request.
func TestResolveCoordinatesNeedsKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIND_LOCATION_CITY", "Gothenburg")
	t.Setenv("WIND_LOCATION_COUNTRY", "Sweden")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = cfg.ResolveCoordinates()
	if err == nil {
		t.Fatal("expected an error without GEOCODER_API_KEY")
	}
	if !strings.Contains(err.Error(), "GEOCODER_API_KEY") {
		t.Errorf("error %q does not mention the missing key", err)
	}
}

// TestResolveCoordinatesSkipsWhenExplicit verifies explicit coordinates
// bypass geocoding entirely.
func TestResolveCoordinatesSkipsWhenExplicit(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIND_LAT", "57.7089")
	t.Setenv("WIND_LON", "11.9746")
	t.Setenv("WIND_LOCATION_CITY", "Gothenburg")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.ResolveCoordinates(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Latitude != 57.7089 {
		t.Errorf("Latitude = %v, want the explicit value", cfg.Latitude)
	}
}
