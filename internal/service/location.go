package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"eggslist/internal/cache"
	"eggslist/internal/model"
	"eggslist/internal/repository"
)

const (
	CacheKeyStates = "location_states"
	CacheKeyCities = "location_cities"

	metersPerMile = 1609.344
	maxSlugTries  = 100
)

// CountryInput is the admin payload for a new country.
type CountryInput struct {
	Name string `json:"name" validate:"required,max=64"`
}

// StateInput is the admin payload for a new state. Country is the parent slug.
type StateInput struct {
	Country  string `json:"country" validate:"required"`
	Name     string `json:"name" validate:"required,max=64"`
	FullName string `json:"full_name" validate:"required,max=64"`
}

// CityInput is the admin payload for a new city. State is the parent slug.
type CityInput struct {
	State    string          `json:"state" validate:"required"`
	Name     string          `json:"name" validate:"required,max=64"`
	Location *model.GeoPoint `json:"location"`
}

// ZipCodeInput is the admin payload for a new zip code. City is the parent slug.
type ZipCodeInput struct {
	City       string          `json:"city" validate:"required"`
	Name       string          `json:"name" validate:"required,max=64"`
	SystemName string          `json:"system_name" validate:"max=64"`
	Location   *model.GeoPoint `json:"location"`
}

// LocationService serves the location lookups and their admin writes.
type LocationService interface {
	ListStates(ctx context.Context) ([]model.StateView, error)
	// ListCities caches only the unfiltered list.
	ListCities(ctx context.Context, f repository.CityFilter) ([]model.CityView, error)
	ListZipCodes(ctx context.Context, f repository.ZipCodeFilter) ([]model.ZipCodeView, error)
	// NearbyZipCodes searches around (lat, lng). A radius <= 0 uses the configured default, in miles.
	NearbyZipCodes(ctx context.Context, lat, lng, radiusMiles float64) ([]model.ZipCodeView, error)

	CreateCountry(ctx context.Context, in CountryInput) (*model.Country, error)
	CreateState(ctx context.Context, in StateInput) (*model.State, error)
	CreateCity(ctx context.Context, in CityInput) (*model.City, error)
	CreateZipCode(ctx context.Context, in ZipCodeInput) (*model.ZipCode, error)
	Delete(ctx context.Context, level repository.LocationLevel, slug string) error
}

type locationService struct {
	repo          repository.LocationRepository
	cache         cache.Cache
	ttl           time.Duration
	defaultRadius float64
	logger        *zap.Logger
}

// NewLocationService constructs a LocationService. ttl applies to the cached
// lists; defaultRadiusMiles is used when a nearby search gives no radius.
func NewLocationService(repo repository.LocationRepository, c cache.Cache, ttl time.Duration, defaultRadiusMiles float64, logger *zap.Logger) LocationService {
	return &locationService{repo: repo, cache: c, ttl: ttl, defaultRadius: defaultRadiusMiles, logger: logger}
}

func (s *locationService) ListStates(ctx context.Context) ([]model.StateView, error) {
	return cached(ctx, s.cache, s.logger, CacheKeyStates, s.ttl, s.repo.ListStates)
}

func (s *locationService) ListCities(ctx context.Context, f repository.CityFilter) ([]model.CityView, error) {
	if !f.IsZero() {
		return s.repo.ListCities(ctx, f)
	}
	return cached(ctx, s.cache, s.logger, CacheKeyCities, s.ttl, func(ctx context.Context) ([]model.CityView, error) {
		return s.repo.ListCities(ctx, f)
	})
}

func (s *locationService) ListZipCodes(ctx context.Context, f repository.ZipCodeFilter) ([]model.ZipCodeView, error) {
	return s.repo.ListZipCodes(ctx, f)
}

func (s *locationService) NearbyZipCodes(ctx context.Context, lat, lng, radiusMiles float64) ([]model.ZipCodeView, error) {
	p := model.GeoPoint{Lat: lat, Lng: lng}
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	if radiusMiles <= 0 {
		radiusMiles = s.defaultRadius
	}
	return s.repo.NearbyZipCodes(ctx, p, radiusMiles*metersPerMile)
}

func (s *locationService) CreateCountry(ctx context.Context, in CountryInput) (*model.Country, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	sl, err := s.uniqueSlug(ctx, repository.LevelCountry, in.Name)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.CreateCountry(ctx, &model.Country{Name: in.Name, Slug: sl})
	if err != nil {
		return nil, err
	}
	return out, s.invalidate(ctx)
}

func (s *locationService) CreateState(ctx context.Context, in StateInput) (*model.State, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	countryID, err := s.parentID(ctx, repository.LevelCountry, "country", in.Country)
	if err != nil {
		return nil, err
	}
	sl, err := s.uniqueSlug(ctx, repository.LevelState, in.Name)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.CreateState(ctx, &model.State{CountryID: countryID, Name: in.Name, FullName: in.FullName, Slug: sl})
	if err != nil {
		return nil, err
	}
	return out, s.invalidate(ctx)
}

func (s *locationService) CreateCity(ctx context.Context, in CityInput) (*model.City, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	stateID, err := s.parentID(ctx, repository.LevelState, "state", in.State)
	if err != nil {
		return nil, err
	}
	sl, err := s.uniqueSlug(ctx, repository.LevelCity, in.Name)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.CreateCity(ctx, &model.City{StateID: stateID, Name: in.Name, Slug: sl, Location: in.Location})
	if err != nil {
		return nil, err
	}
	return out, s.invalidate(ctx)
}

func (s *locationService) CreateZipCode(ctx context.Context, in ZipCodeInput) (*model.ZipCode, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	cityID, err := s.parentID(ctx, repository.LevelCity, "city", in.City)
	if err != nil {
		return nil, err
	}
	sl, err := s.uniqueSlug(ctx, repository.LevelZipCode, in.Name)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateZipCode(ctx, &model.ZipCode{
		CityID:     cityID,
		Name:       in.Name,
		Slug:       sl,
		SystemName: in.SystemName,
		Location:   in.Location,
	})
}

// Delete removes a location and its descendants, then drops the cached lists.
func (s *locationService) Delete(ctx context.Context, level repository.LocationLevel, sl string) error {
	if err := s.repo.Delete(ctx, level, sl); err != nil {
		return notFound(err)
	}
	return s.invalidate(ctx)
}

func (s *locationService) parentID(ctx context.Context, level repository.LocationLevel, field, sl string) (int64, error) {
	id, err := s.repo.FindIDBySlug(ctx, level, sl)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fieldError(field, fmt.Sprintf("%s %q does not exist", field, sl))
	}
	return id, err
}

// uniqueSlug slugifies name and appends -2, -3, ... until the slug is free within level.
func (s *locationService) uniqueSlug(ctx context.Context, level repository.LocationLevel, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", fieldError("name", "name must contain letters or digits")
	}
	candidate := base
	for i := 2; i <= maxSlugTries+1; i++ {
		taken, err := s.repo.SlugExists(ctx, level, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q", name)
}

// invalidate drops both cached location lists. Zip codes are never cached.
func (s *locationService) invalidate(ctx context.Context) error {
	if err := s.cache.Delete(ctx, CacheKeyStates, CacheKeyCities); err != nil {
		return fmt.Errorf("invalidate location cache: %w", err)
	}
	return nil
}
