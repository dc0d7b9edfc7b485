package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eggslist/internal/model"
	"eggslist/internal/repository"
)

// BrandingPostgres stores the SiteBranding singleton in the single-row
// site_branding table (id is constrained to 1).
type BrandingPostgres struct {
	db *sql.DB
}

// NewBrandingPostgres creates a new BrandingPostgres repository.
func NewBrandingPostgres(db *sql.DB) *BrandingPostgres {
	return &BrandingPostgres{db: db}
}

var _ repository.BrandingRepository = (*BrandingPostgres)(nil)

const brandingColumns = `site_name, tagline, site_description, primary_color, color_scheme,
		custom_primary, custom_primary_dark, custom_background, custom_background_light, custom_text,
		logo, favicon, copyright_text, cta_text`

// Get returns the singleton row, inserting the defaults when it does not exist yet.
func (r *BrandingPostgres) Get(ctx context.Context) (*model.SiteBranding, error) {
	b, err := r.find(ctx)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	def := model.DefaultSiteBranding()
	const q = `
		INSERT INTO site_branding (id, ` + brandingColumns + `)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, q, brandingArgs(&def)...); err != nil {
		return nil, err
	}
	return r.find(ctx)
}

// Save upserts every column of the singleton and returns the stored row.
func (r *BrandingPostgres) Save(ctx context.Context, b *model.SiteBranding) (*model.SiteBranding, error) {
	const q = `
		INSERT INTO site_branding (id, ` + brandingColumns + `, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())
		ON CONFLICT (id) DO UPDATE SET
			site_name = EXCLUDED.site_name,
			tagline = EXCLUDED.tagline,
			site_description = EXCLUDED.site_description,
			primary_color = EXCLUDED.primary_color,
			color_scheme = EXCLUDED.color_scheme,
			custom_primary = EXCLUDED.custom_primary,
			custom_primary_dark = EXCLUDED.custom_primary_dark,
			custom_background = EXCLUDED.custom_background,
			custom_background_light = EXCLUDED.custom_background_light,
			custom_text = EXCLUDED.custom_text,
			logo = EXCLUDED.logo,
			favicon = EXCLUDED.favicon,
			copyright_text = EXCLUDED.copyright_text,
			cta_text = EXCLUDED.cta_text,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + brandingColumns + `, updated_at
	`
	return scanBranding(r.db.QueryRowContext(ctx, q, brandingArgs(b)...))
}

func (r *BrandingPostgres) find(ctx context.Context) (*model.SiteBranding, error) {
	const q = `SELECT ` + brandingColumns + `, updated_at FROM site_branding WHERE id = 1`
	return scanBranding(r.db.QueryRowContext(ctx, q))
}

func brandingArgs(b *model.SiteBranding) []any {
	return []any{
		b.SiteName,
		b.Tagline,
		b.SiteDescription,
		b.PrimaryColor,
		b.ColorScheme,
		b.CustomPrimary,
		b.CustomPrimaryDark,
		b.CustomBackground,
		b.CustomBackgroundLight,
		b.CustomText,
		b.Logo,
		b.Favicon,
		b.CopyrightText,
		b.CTAText,
	}
}

func scanBranding(row *sql.Row) (*model.SiteBranding, error) {
	var b model.SiteBranding
	if err := row.Scan(
		&b.SiteName,
		&b.Tagline,
		&b.SiteDescription,
		&b.PrimaryColor,
		&b.ColorScheme,
		&b.CustomPrimary,
		&b.CustomPrimaryDark,
		&b.CustomBackground,
		&b.CustomBackgroundLight,
		&b.CustomText,
		&b.Logo,
		&b.Favicon,
		&b.CopyrightText,
		&b.CTAText,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
