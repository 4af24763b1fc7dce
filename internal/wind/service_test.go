package wind

import (
	"context"
	"net/http"
	"testing"
)

// stubProvider is a minimal Provider whose parse behaviour the tests
// control directly.
type stubProvider struct {
	parseCalls int
	obs        Observation
	parseErr   error
}

func (s *stubProvider) Name() ProviderName { return "stub" }

func (s *stubProvider) BuildURL(Location) string { return "https://example.test/data.json" }

func (s *stubProvider) Headers() http.Header { return nil }

func (s *stubProvider) Parse([]byte) (Observation, error) {
	s.parseCalls++
	if s.parseErr != nil {
		return Observation{}, s.parseErr
	}
	return s.obs, nil
}

// stubStore records which outcome the service delivered.
type stubStore struct {
	observations []Observation
	failures     int
}

func (s *stubStore) SetObservation(obs Observation) { s.observations = append(s.observations, obs) }

func (s *stubStore) SetFailure() { s.failures++ }

func (s *stubStore) Latest() (Observation, error) { return Observation{}, nil }

func newTestService(provider Provider, st Store, handler http.Handler) *Service {
	client := &http.Client{Transport: &mockRoundTripper{handler: handler}}
	return NewService(provider, NewFetcher(client, provider.Name()), st, Location{Latitude: 57.7, Longitude: 11.9})
}

// TestRunCycleStoresObservation verifies a successful cycle lands the
// parsed observation in the store.
func TestRunCycleStoresObservation(t *testing.T) {
	provider := &stubProvider{obs: Observation{WindSpeed: 7.5, WindDirection: 180}}
	st := &stubStore{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	svc := newTestService(provider, st, handler)
	if err := svc.RunCycle(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(st.observations) != 1 {
		t.Fatalf("expected one stored observation, got %d", len(st.observations))
	}
	if st.observations[0] != (Observation{WindSpeed: 7.5, WindDirection: 180}) {
		t.Errorf("unexpected observation: %+v", st.observations[0])
	}
	if st.failures != 0 {
		t.Errorf("expected no failures recorded, got %d", st.failures)
	}
}

// TestRunCycleHTTPFailureSkipsParser verifies that a non-200 response fails
// the cycle before the parser ever sees the body.
func TestRunCycleHTTPFailureSkipsParser(t *testing.T) {
	provider := &stubProvider{}
	st := &stubStore{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`this is not json`))
	})

	svc := newTestService(provider, st, handler)
	err := svc.RunCycle(context.Background())
	if !IsFailure(err, FailureHTTPStatus) {
		t.Fatalf("expected http-status failure, got %v", err)
	}

	if provider.parseCalls != 0 {
		t.Errorf("parser ran %d times on an error response", provider.parseCalls)
	}
	if st.failures != 1 {
		t.Errorf("expected one recorded failure, got %d", st.failures)
	}
	if len(st.observations) != 0 {
		t.Errorf("no observation may be stored on failure, got %d", len(st.observations))
	}
}

// TestRunCycleParseFailureClearsStore verifies a schema mismatch is
// reported and the store enters the failure state.
func TestRunCycleParseFailureClearsStore(t *testing.T) {
	provider := &stubProvider{parseErr: NewSchemaMismatchError("stub", "wind_speed")}
	st := &stubStore{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	svc := newTestService(provider, st, handler)
	err := svc.RunCycle(context.Background())
	if !IsFailure(err, FailureSchemaMismatch) {
		t.Fatalf("expected schema-mismatch failure, got %v", err)
	}
	if st.failures != 1 {
		t.Errorf("expected one recorded failure, got %d", st.failures)
	}
}

// TestAcquireOnceLeavesStoreAlone verifies the one-shot acquisition path
// never writes to the store.
func TestAcquireOnceLeavesStoreAlone(t *testing.T) {
	provider := &stubProvider{obs: Observation{WindSpeed: 3.2, WindDirection: 90}}
	st := &stubStore{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	svc := newTestService(provider, st, handler)
	obs, err := svc.AcquireOnce(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs.WindSpeed != 3.2 {
		t.Errorf("unexpected observation: %+v", obs)
	}
	if len(st.observations) != 0 || st.failures != 0 {
		t.Errorf("AcquireOnce must not touch the store: %+v", st)
	}
}
