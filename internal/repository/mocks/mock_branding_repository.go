package mocks

import (
	"context"

	"eggslist/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockBrandingRepository struct {
	mock.Mock
}

func (m *MockBrandingRepository) Get(ctx context.Context) (*model.SiteBranding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteBranding), args.Error(1)
}

func (m *MockBrandingRepository) Save(ctx context.Context, b *model.SiteBranding) (*model.SiteBranding, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteBranding), args.Error(1)
}
