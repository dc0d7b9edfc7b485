package model

import "time"

const (
	SchemeClassic = "classic"
	SchemeOcean   = "ocean"
	SchemeForest  = "forest"
	SchemeBerry   = "berry"
	SchemeSlate   = "slate"
	SchemeRelief  = "relief"
	SchemeCustom  = "custom"
)

// Colors is a resolved theme palette.
type Colors struct {
	Primary         string `json:"primary"`
	PrimaryDark     string `json:"primary_dark"`
	Background      string `json:"background"`
	BackgroundLight string `json:"background_light"`
	Text            string `json:"text"`
}

// ColorSchemePresets maps every named scheme to its palette.
var ColorSchemePresets = map[string]Colors{
	SchemeClassic: {Primary: "#F9AA29", PrimaryDark: "#E49006", Background: "#FEF3E1", BackgroundLight: "#FBECD5", Text: "#282220"},
	SchemeOcean:   {Primary: "#42A5F5", PrimaryDark: "#2196F3", Background: "#E3F2FD", BackgroundLight: "#BBDEFB", Text: "#0D253B"},
	SchemeForest:  {Primary: "#66BB6A", PrimaryDark: "#43A047", Background: "#E8F5E9", BackgroundLight: "#C8E6C9", Text: "#1B2E1B"},
	SchemeBerry:   {Primary: "#F06292", PrimaryDark: "#EC407A", Background: "#FCE4EC", BackgroundLight: "#F8BBD0", Text: "#3E1929"},
	SchemeSlate:   {Primary: "#90A4AE", PrimaryDark: "#78909C", Background: "#ECEFF1", BackgroundLight: "#CFD8DC", Text: "#263238"},
	SchemeRelief:  {Primary: "#4DB6AC", PrimaryDark: "#26A69A", Background: "#E0F2F1", BackgroundLight: "#B2DFDB", Text: "#1A2E2B"},
}

// ColorSchemes lists the values accepted for SiteBranding.ColorScheme, in display order.
var ColorSchemes = []string{
	SchemeClassic, SchemeOcean, SchemeForest, SchemeBerry, SchemeSlate, SchemeRelief, SchemeCustom,
}

// SiteBranding is the singleton row holding site-wide theme and copy.
// Logo and Favicon are object storage keys, empty when unset.
type SiteBranding struct {
	SiteName              string    `json:"site_name"`
	Tagline               string    `json:"tagline"`
	SiteDescription       string    `json:"site_description"`
	PrimaryColor          string    `json:"primary_color"`
	ColorScheme           string    `json:"color_scheme"`
	CustomPrimary         string    `json:"custom_primary"`
	CustomPrimaryDark     string    `json:"custom_primary_dark"`
	CustomBackground      string    `json:"custom_background"`
	CustomBackgroundLight string    `json:"custom_background_light"`
	CustomText            string    `json:"custom_text"`
	Logo                  string    `json:"logo"`
	Favicon               string    `json:"favicon"`
	CopyrightText         string    `json:"copyright_text"`
	CTAText               string    `json:"cta_text"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// DefaultSiteBranding returns the values a fresh installation starts with.
func DefaultSiteBranding() SiteBranding {
	return SiteBranding{
		SiteName: "Eggslist",
		Tagline:  "Find Farmers Near You",
		SiteDescription: "Your virtual Farmer's Market, where you can buy, sell, and connect" +
			" with local farmers and gardeners to keep your food fresh and local!",
		PrimaryColor:  "#D4A843",
		ColorScheme:   SchemeClassic,
		CopyrightText: "Eggslist. All rights reserved.",
		CTAText:       "Sign up to start buying and selling local food!",
	}
}

// Colors resolves the active palette. A custom scheme takes each blank
// custom field from the classic preset; an unknown scheme resolves to classic.
func (b SiteBranding) Colors() Colors {
	classic := ColorSchemePresets[SchemeClassic]
	if b.ColorScheme == SchemeCustom {
		return Colors{
			Primary:         orDefault(b.CustomPrimary, classic.Primary),
			PrimaryDark:     orDefault(b.CustomPrimaryDark, classic.PrimaryDark),
			Background:      orDefault(b.CustomBackground, classic.Background),
			BackgroundLight: orDefault(b.CustomBackgroundLight, classic.BackgroundLight),
			Text:            orDefault(b.CustomText, classic.Text),
		}
	}
	if c, ok := ColorSchemePresets[b.ColorScheme]; ok {
		return c
	}
	return classic
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// BrandingView is the public branding payload. Logo and Favicon are absolute URLs.
type BrandingView struct {
	SiteName             string  `json:"site_name"`
	Tagline              string  `json:"tagline"`
	SiteDescription      string  `json:"site_description"`
	PrimaryColor         string  `json:"primary_color"`
	ColorPrimary         string  `json:"color_primary"`
	ColorPrimaryDark     string  `json:"color_primary_dark"`
	ColorBackground      string  `json:"color_background"`
	ColorBackgroundLight string  `json:"color_background_light"`
	ColorText            string  `json:"color_text"`
	Logo                 *string `json:"logo"`
	Favicon              *string `json:"favicon"`
	CopyrightText        string  `json:"copyright_text"`
	CTAText              string  `json:"cta_text"`
}
