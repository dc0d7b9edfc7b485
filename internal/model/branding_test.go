package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiteBranding_Colors_Presets(t *testing.T) {
	for name, want := range ColorSchemePresets {
		t.Run(name, func(t *testing.T) {
			b := SiteBranding{ColorScheme: name}
			assert.Equal(t, want, b.Colors())
		})
	}
}

func TestSiteBranding_Colors_UnknownFallsBackToClassic(t *testing.T) {
	for _, scheme := range []string{"", "neon", "CLASSIC", "Custom", " ocean"} {
		b := SiteBranding{ColorScheme: scheme}
		assert.Equal(t, ColorSchemePresets[SchemeClassic], b.Colors(), "scheme %q", scheme)
	}
}

func TestSiteBranding_Colors_Custom(t *testing.T) {
	classic := ColorSchemePresets[SchemeClassic]

	t.Run("all blank", func(t *testing.T) {
		b := SiteBranding{ColorScheme: SchemeCustom}
		assert.Equal(t, classic, b.Colors())
	})

	t.Run("all set", func(t *testing.T) {
		b := SiteBranding{
			ColorScheme:           SchemeCustom,
			CustomPrimary:         "#111111",
			CustomPrimaryDark:     "#222222",
			CustomBackground:      "#333333",
			CustomBackgroundLight: "#444444",
			CustomText:            "#555555",
		}
		assert.Equal(t, Colors{
			Primary:         "#111111",
			PrimaryDark:     "#222222",
			Background:      "#333333",
			BackgroundLight: "#444444",
			Text:            "#555555",
		}, b.Colors())
	})

	t.Run("partial", func(t *testing.T) {
		b := SiteBranding{
			ColorScheme:      SchemeCustom,
			CustomPrimary:    "#123456",
			CustomBackground: "#ABCDEF",
		}
		got := b.Colors()
		assert.Equal(t, "#123456", got.Primary)
		assert.Equal(t, classic.PrimaryDark, got.PrimaryDark)
		assert.Equal(t, "#ABCDEF", got.Background)
		assert.Equal(t, classic.BackgroundLight, got.BackgroundLight)
		assert.Equal(t, classic.Text, got.Text)
	})

	t.Run("custom fields ignored for presets", func(t *testing.T) {
		b := SiteBranding{ColorScheme: SchemeOcean, CustomPrimary: "#000000"}
		assert.Equal(t, ColorSchemePresets[SchemeOcean], b.Colors())
	})
}

func TestDefaultSiteBranding(t *testing.T) {
	b := DefaultSiteBranding()
	assert.Equal(t, "Eggslist", b.SiteName)
	assert.Equal(t, SchemeClassic, b.ColorScheme)
	assert.Equal(t, "#D4A843", b.PrimaryColor)
	assert.Len(t, ColorSchemes, len(ColorSchemePresets)+1)
}
