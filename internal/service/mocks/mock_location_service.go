package mocks

import (
	"context"

	"eggslist/internal/model"
	"eggslist/internal/repository"
	"eggslist/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) ListStates(ctx context.Context) ([]model.StateView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StateView), args.Error(1)
}

func (m *MockLocationService) ListCities(ctx context.Context, f repository.CityFilter) ([]model.CityView, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CityView), args.Error(1)
}

func (m *MockLocationService) ListZipCodes(ctx context.Context, f repository.ZipCodeFilter) ([]model.ZipCodeView, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ZipCodeView), args.Error(1)
}

func (m *MockLocationService) NearbyZipCodes(ctx context.Context, lat, lng, radiusMiles float64) ([]model.ZipCodeView, error) {
	args := m.Called(ctx, lat, lng, radiusMiles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ZipCodeView), args.Error(1)
}

func (m *MockLocationService) CreateCountry(ctx context.Context, in service.CountryInput) (*model.Country, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

func (m *MockLocationService) CreateState(ctx context.Context, in service.StateInput) (*model.State, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *MockLocationService) CreateCity(ctx context.Context, in service.CityInput) (*model.City, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *MockLocationService) CreateZipCode(ctx context.Context, in service.ZipCodeInput) (*model.ZipCode, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ZipCode), args.Error(1)
}

func (m *MockLocationService) Delete(ctx context.Context, level repository.LocationLevel, slug string) error {
	args := m.Called(ctx, level, slug)
	return args.Error(0)
}
