package providers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vhenriksson/wind-monitor/internal/wind"
)

// Options carries provider tuning shared across variants.
type Options struct {
	// UserAgent identifies this service to providers that require a
	// descriptive User-Agent (met.no policy). Empty selects a default.
	UserAgent string
}

// New returns the provider implementation for name. The set is closed;
// unknown names are rejected here instead of falling through at runtime.
func New(name wind.ProviderName, opts Options) (wind.Provider, error) {
	switch name {
	case wind.ProviderSMHI:
		return NewSMHI(), nil
	case wind.ProviderYR:
		return NewYR(opts.UserAgent), nil
	default:
		return nil, fmt.Errorf("unknown wind provider %q", name)
	}
}

// decodeStrict unmarshals body into v, separating the two document-level
// failure modes: bodies that are not JSON at all, and JSON whose values
// do not fit the provider's schema. Type errors name the offending field.
func decodeStrict(provider wind.ProviderName, body []byte, v interface{}) error {
	err := json.Unmarshal(body, v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = typeErr.Value
		}
		return wind.NewSchemaMismatchError(provider, field)
	}
	return wind.NewMalformedBodyError(err)
}
