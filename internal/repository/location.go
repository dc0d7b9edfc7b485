package repository

import (
	"context"

	"eggslist/internal/model"
)

// LocationLevel names one table of the location hierarchy.
type LocationLevel string

const (
	LevelCountry LocationLevel = "location_countries"
	LevelState   LocationLevel = "location_states"
	LevelCity    LocationLevel = "location_cities"
	LevelZipCode LocationLevel = "location_zip_codes"
)

// Valid reports whether l is one of the known levels.
func (l LocationLevel) Valid() bool {
	switch l {
	case LevelCountry, LevelState, LevelCity, LevelZipCode:
		return true
	}
	return false
}

// CityFilter narrows the city list. Search is split into terms; each term
// must match the city, state or country name.
type CityFilter struct {
	StateSlug   string
	CountrySlug string
	Search      string
}

// IsZero reports whether no filter is set.
func (f CityFilter) IsZero() bool {
	return f == CityFilter{}
}

// ZipCodeFilter narrows the zip code list.
type ZipCodeFilter struct {
	Name      string
	CitySlug  string
	StateSlug string
}

// LocationRepository reads and writes the country/state/city/zip hierarchy.
// List methods return rows joined with their parents' names.
type LocationRepository interface {
	ListStates(ctx context.Context) ([]model.StateView, error)
	ListCities(ctx context.Context, f CityFilter) ([]model.CityView, error)
	ListZipCodes(ctx context.Context, f ZipCodeFilter) ([]model.ZipCodeView, error)
	// NearbyZipCodes returns geo-pointed zip codes within radiusMeters of p, nearest first.
	NearbyZipCodes(ctx context.Context, p model.GeoPoint, radiusMeters float64) ([]model.ZipCodeView, error)

	FindIDBySlug(ctx context.Context, level LocationLevel, slug string) (int64, error)
	SlugExists(ctx context.Context, level LocationLevel, slug string) (bool, error)

	CreateCountry(ctx context.Context, c *model.Country) (*model.Country, error)
	CreateState(ctx context.Context, s *model.State) (*model.State, error)
	CreateCity(ctx context.Context, c *model.City) (*model.City, error)
	CreateZipCode(ctx context.Context, z *model.ZipCode) (*model.ZipCode, error)

	// Delete removes the row with slug and, through cascades, its descendants.
	Delete(ctx context.Context, level LocationLevel, slug string) error
}
