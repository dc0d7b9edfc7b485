package mocks

import (
	"context"

	"eggslist/internal/model"
	"eggslist/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) ListStates(ctx context.Context) ([]model.StateView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StateView), args.Error(1)
}

func (m *MockLocationRepository) ListCities(ctx context.Context, f repository.CityFilter) ([]model.CityView, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CityView), args.Error(1)
}

func (m *MockLocationRepository) ListZipCodes(ctx context.Context, f repository.ZipCodeFilter) ([]model.ZipCodeView, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ZipCodeView), args.Error(1)
}

func (m *MockLocationRepository) NearbyZipCodes(ctx context.Context, p model.GeoPoint, radiusMeters float64) ([]model.ZipCodeView, error) {
	args := m.Called(ctx, p, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ZipCodeView), args.Error(1)
}

func (m *MockLocationRepository) FindIDBySlug(ctx context.Context, level repository.LocationLevel, slug string) (int64, error) {
	args := m.Called(ctx, level, slug)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationRepository) SlugExists(ctx context.Context, level repository.LocationLevel, slug string) (bool, error) {
	args := m.Called(ctx, level, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocationRepository) CreateCountry(ctx context.Context, c *model.Country) (*model.Country, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *MockLocationRepository) CreateState(ctx context.Context, s *model.State) (*model.State, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *MockLocationRepository) CreateCity(ctx context.Context, c *model.City) (*model.City, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *MockLocationRepository) CreateZipCode(ctx context.Context, z *model.ZipCode) (*model.ZipCode, error) {
	args := m.Called(ctx, z)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ZipCode), args.Error(1)
}

func (m *MockLocationRepository) Delete(ctx context.Context, level repository.LocationLevel, slug string) error {
	args := m.Called(ctx, level, slug)
	return args.Error(0)
}
