package mocks

import (
	"context"
	"io"

	"eggslist/internal/model"
	"eggslist/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockBrandingService struct {
	mock.Mock
}

func (m *MockBrandingService) Get(ctx context.Context) (*model.BrandingView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BrandingView), args.Error(1)
}

func (m *MockBrandingService) Settings(ctx context.Context) (*model.SiteBranding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteBranding), args.Error(1)
}

func (m *MockBrandingService) Update(ctx context.Context, patch service.BrandingPatch) (*model.SiteBranding, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteBranding), args.Error(1)
}

func (m *MockBrandingService) UploadLogo(ctx context.Context, r io.Reader) (*model.SiteBranding, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteBranding), args.Error(1)
}

func (m *MockBrandingService) UploadFavicon(ctx context.Context, f service.FileUpload) (*model.SiteBranding, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SiteBranding), args.Error(1)
}

func (m *MockBrandingService) SiteName(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
