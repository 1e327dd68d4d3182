package location

import "context"

// Location is what a zip code resolves to. Any field may be nil when the provider
// did not report it.
type Location struct {
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	TimezoneOffset *int     `json:"timezone,omitempty"`
}

// Lookup resolves a postal code to a Location.
type Lookup interface {
	Lookup(ctx context.Context, zipCode string) (Location, error)
}
