package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// ErrInvalidImage is returned when an upload cannot be decoded as an image.
var ErrInvalidImage = errors.New("invalid image")

// ImageProfile describes how an uploaded image is normalised before storage.
type ImageProfile struct {
	Width   int
	Height  int
	Format  imaging.Format
	Quality int // JPEG only
}

var (
	// LogoProfile is applied to branding logos.
	LogoProfile = ImageProfile{Width: 400, Height: 400, Format: imaging.PNG}
	// TeamImageProfile is applied to team member portraits.
	TeamImageProfile = ImageProfile{Width: 300, Height: 300, Format: imaging.JPEG, Quality: 70}
)

// Ext returns the file extension for the profile's output format.
func (p ImageProfile) Ext() string {
	switch p.Format {
	case imaging.JPEG:
		return ".jpg"
	case imaging.PNG:
		return ".png"
	case imaging.GIF:
		return ".gif"
	}
	return ""
}

// ContentType returns the MIME type for the profile's output format.
func (p ImageProfile) ContentType() string {
	switch p.Format {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.PNG:
		return "image/png"
	case imaging.GIF:
		return "image/gif"
	}
	return "application/octet-stream"
}

// ResizeToFill decodes r, scales and center-crops it to exactly the profile's
// dimensions and encodes it in the profile's format.
func ResizeToFill(r io.Reader, profile ImageProfile) (*bytes.Buffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	img = imaging.Fill(img, profile.Width, profile.Height, imaging.Center, imaging.Lanczos)

	var opts []imaging.EncodeOption
	if profile.Format == imaging.JPEG && profile.Quality > 0 {
		opts = append(opts, imaging.JPEGQuality(profile.Quality))
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, profile.Format, opts...); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf, nil
}
