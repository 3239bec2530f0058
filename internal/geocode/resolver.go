package geocode

import (
	"context"
	"strings"

	"weatherapp/internal/apperr"
	"weatherapp/internal/geo"
)

// Geocoder is the slice of Client the resolver needs.
type Geocoder interface {
	HasCredentials() bool
	Geocode(ctx context.Context, query string) (*Location, error)
}

// Resolver turns free text into a canonical location: literal "lat,lon"
// pairs resolve without a network call, everything else goes through the
// geocoding provider.
type Resolver struct {
	geocoder Geocoder
}

func NewResolver(geocoder Geocoder) *Resolver {
	return &Resolver{geocoder: geocoder}
}

func (r *Resolver) Resolve(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validationf("missing query")
	}

	// Credentials are checked once, up front, so a misconfigured server
	// fails the same way on every input.
	if !r.geocoder.HasCredentials() {
		return nil, apperr.Configf("missing geocoding API key")
	}

	if lat, lon, ok := geo.ParseCoords(query); ok {
		return &Location{Label: query, Lat: lat, Lon: lon}, nil
	}
	return r.geocoder.Geocode(ctx, query)
}
