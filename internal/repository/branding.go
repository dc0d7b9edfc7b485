package repository

import (
	"context"

	"eggslist/internal/model"
)

// BrandingRepository persists the SiteBranding singleton.
type BrandingRepository interface {
	// Get returns the singleton, creating it with defaults on first access.
	Get(ctx context.Context) (*model.SiteBranding, error)
	// Save writes every field of b to the singleton row and returns the stored row.
	Save(ctx context.Context, b *model.SiteBranding) (*model.SiteBranding, error)
}
