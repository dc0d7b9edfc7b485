package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"eggslist/internal/cache"
	"eggslist/internal/model"
	"eggslist/internal/repository"
	"eggslist/internal/storage"
)

const (
	CacheKeyBranding = "site_branding_api"
	BrandingCacheTTL = time.Hour

	brandingPrefix = "branding"
)

// BrandingPatch holds the admin-editable branding fields. Nil fields are left unchanged.
// Custom colors may be set to "" to fall back to the classic palette.
type BrandingPatch struct {
	SiteName              *string `json:"site_name" validate:"omitempty,min=1,max=128"`
	Tagline               *string `json:"tagline" validate:"omitempty,max=256"`
	SiteDescription       *string `json:"site_description"`
	PrimaryColor          *string `json:"primary_color" validate:"omitempty,rgbhex"`
	ColorScheme           *string `json:"color_scheme" validate:"omitempty,oneof=classic ocean forest berry slate relief custom"`
	CustomPrimary         *string `json:"custom_primary" validate:"omitempty,rgbhex=blank"`
	CustomPrimaryDark     *string `json:"custom_primary_dark" validate:"omitempty,rgbhex=blank"`
	CustomBackground      *string `json:"custom_background" validate:"omitempty,rgbhex=blank"`
	CustomBackgroundLight *string `json:"custom_background_light" validate:"omitempty,rgbhex=blank"`
	CustomText            *string `json:"custom_text" validate:"omitempty,rgbhex=blank"`
	CopyrightText         *string `json:"copyright_text" validate:"omitempty,max=256"`
	CTAText               *string `json:"cta_text" validate:"omitempty,max=256"`
}

func (p *BrandingPatch) fields() []**string {
	return []**string{
		&p.SiteName, &p.Tagline, &p.SiteDescription, &p.PrimaryColor, &p.ColorScheme,
		&p.CustomPrimary, &p.CustomPrimaryDark, &p.CustomBackground, &p.CustomBackgroundLight, &p.CustomText,
		&p.CopyrightText, &p.CTAText,
	}
}

// trim strips surrounding whitespace from every supplied field. It runs
// before validation so the stored value is the one that was checked.
func (p *BrandingPatch) trim() {
	for _, f := range p.fields() {
		if *f != nil {
			v := strings.TrimSpace(**f)
			*f = &v
		}
	}
}

func (p BrandingPatch) apply(b *model.SiteBranding) {
	dst := []*string{
		&b.SiteName, &b.Tagline, &b.SiteDescription, &b.PrimaryColor, &b.ColorScheme,
		&b.CustomPrimary, &b.CustomPrimaryDark, &b.CustomBackground, &b.CustomBackgroundLight, &b.CustomText,
		&b.CopyrightText, &b.CTAText,
	}
	for i, f := range p.fields() {
		if *f != nil {
			*dst[i] = **f
		}
	}
}

// FileUpload is a raw file as received from a multipart form.
type FileUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// BrandingService reads and edits the SiteBranding singleton. Every write
// deletes the cached public payload once the row is saved.
type BrandingService interface {
	// Get returns the public branding payload, served from cache when present.
	Get(ctx context.Context) (*model.BrandingView, error)
	// Settings returns the stored singleton, bypassing the cache.
	Settings(ctx context.Context) (*model.SiteBranding, error)
	Update(ctx context.Context, patch BrandingPatch) (*model.SiteBranding, error)
	// UploadLogo resizes the image to a 400x400 PNG and makes it the logo.
	UploadLogo(ctx context.Context, r io.Reader) (*model.SiteBranding, error)
	// UploadFavicon stores the file as is and makes it the favicon.
	UploadFavicon(ctx context.Context, f FileUpload) (*model.SiteBranding, error)
	SiteName(ctx context.Context) (string, error)
}

type brandingService struct {
	repo   repository.BrandingRepository
	cache  cache.Cache
	store  storage.Storage
	logger *zap.Logger
}

// NewBrandingService constructs a BrandingService.
func NewBrandingService(repo repository.BrandingRepository, c cache.Cache, store storage.Storage, logger *zap.Logger) BrandingService {
	return &brandingService{repo: repo, cache: c, store: store, logger: logger}
}

func (s *brandingService) Get(ctx context.Context) (*model.BrandingView, error) {
	v, err := cached(ctx, s.cache, s.logger, CacheKeyBranding, BrandingCacheTTL, func(ctx context.Context) (model.BrandingView, error) {
		b, err := s.repo.Get(ctx)
		if err != nil {
			return model.BrandingView{}, err
		}
		return s.view(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *brandingService) Settings(ctx context.Context) (*model.SiteBranding, error) {
	return s.repo.Get(ctx)
}

func (s *brandingService) SiteName(ctx context.Context) (string, error) {
	b, err := s.repo.Get(ctx)
	if err != nil {
		return "", err
	}
	return b.SiteName, nil
}

func (s *brandingService) Update(ctx context.Context, patch BrandingPatch) (*model.SiteBranding, error) {
	patch.trim()
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	b, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	patch.apply(b)
	return s.save(ctx, b)
}

func (s *brandingService) UploadLogo(ctx context.Context, r io.Reader) (*model.SiteBranding, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	buf, err := storage.ResizeToFill(r, storage.LogoProfile)
	if err != nil {
		return nil, err
	}
	key := path.Join(brandingPrefix, uuid.New().String()+storage.LogoProfile.Ext())
	return s.replaceMedia(ctx, key, buf, storage.PutObjectOptions{
		Size:        int64(buf.Len()),
		ContentType: storage.LogoProfile.ContentType(),
	}, func(b *model.SiteBranding) *string { return &b.Logo })
}

func (s *brandingService) UploadFavicon(ctx context.Context, f FileUpload) (*model.SiteBranding, error) {
	if f.Reader == nil {
		return nil, ErrReaderNil
	}
	key := path.Join(brandingPrefix, uuid.New().String()+strings.ToLower(path.Ext(f.Filename)))
	return s.replaceMedia(ctx, key, f.Reader, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
		Metadata:    map[string]string{"original-filename": f.Filename},
	}, func(b *model.SiteBranding) *string { return &b.Favicon })
}

// replaceMedia uploads r under key, points field at it and saves. The new
// object is removed when the save fails; the previous object is removed
// once the save succeeds.
func (s *brandingService) replaceMedia(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions, field func(*model.SiteBranding) *string) (*model.SiteBranding, error) {
	b, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Put(ctx, key, r, opt); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	slot := field(b)
	previous := *slot
	*slot = key
	saved, err := s.save(ctx, b)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Error("rollback upload failed", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}
	if previous != "" {
		if err := s.store.Delete(ctx, previous); err != nil {
			s.logger.Warn("delete replaced media failed", zap.String("key", previous), zap.Error(err))
		}
	}
	return saved, nil
}

// save writes b and then drops the cached public payload.
func (s *brandingService) save(ctx context.Context, b *model.SiteBranding) (*model.SiteBranding, error) {
	saved, err := s.repo.Save(ctx, b)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, CacheKeyBranding); err != nil {
		return nil, fmt.Errorf("invalidate branding cache: %w", err)
	}
	return saved, nil
}

func (s *brandingService) view(ctx context.Context, b *model.SiteBranding) (model.BrandingView, error) {
	logo, err := storage.OptionalURL(ctx, s.store, b.Logo)
	if err != nil {
		return model.BrandingView{}, fmt.Errorf("logo url: %w", err)
	}
	favicon, err := storage.OptionalURL(ctx, s.store, b.Favicon)
	if err != nil {
		return model.BrandingView{}, fmt.Errorf("favicon url: %w", err)
	}
	c := b.Colors()
	return model.BrandingView{
		SiteName:             b.SiteName,
		Tagline:              b.Tagline,
		SiteDescription:      b.SiteDescription,
		PrimaryColor:         b.PrimaryColor,
		ColorPrimary:         c.Primary,
		ColorPrimaryDark:     c.PrimaryDark,
		ColorBackground:      c.Background,
		ColorBackgroundLight: c.BackgroundLight,
		ColorText:            c.Text,
		Logo:                 logo,
		Favicon:              favicon,
		CopyrightText:        b.CopyrightText,
		CTAText:              b.CTAText,
	}, nil
}
