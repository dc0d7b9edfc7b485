package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"eggslist/internal/service"
)

// GetBranding returns the public branding payload with resolved colors.
//
// @Summary Site branding
// @Tags branding
// @Produce json
// @Success 200 {object} model.BrandingView
// @Router /api/site-configuration/branding [get]
func GetBranding(svc service.BrandingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Get(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetBrandingSettings returns the stored branding row, bypassing the cache.
func GetBrandingSettings(svc service.BrandingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Settings(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// UpdateBranding applies a partial update. Absent fields keep their value.
//
// @Summary Update branding
// @Tags admin-branding
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.BrandingPatch true "fields to change"
// @Success 200 {object} model.SiteBranding
// @Failure 400 {object} errorPayload
// @Router /api/admin/branding [put]
func UpdateBranding(svc service.BrandingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch service.BrandingPatch
		if err := c.BodyParser(&patch); err != nil {
			return invalidBody(c)
		}
		res, err := svc.Update(c.UserContext(), patch)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadLogo replaces the logo with the uploaded image, resized to 400x400.
//
// @Summary Upload logo
// @Tags admin-branding
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "image"
// @Success 200 {object} model.SiteBranding
// @Failure 400 {object} errorPayload
// @Router /api/admin/branding/logo [post]
func UploadLogo(svc service.BrandingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return withUpload(c, func(_ *multipart.FileHeader, f multipart.File) error {
			res, err := svc.UploadLogo(c.UserContext(), f)
			if err != nil {
				return serviceError(c, err)
			}
			return c.JSON(res)
		})
	}
}

// UploadFavicon stores the uploaded file unchanged as the favicon.
func UploadFavicon(svc service.BrandingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return withUpload(c, func(fh *multipart.FileHeader, f multipart.File) error {
			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}
			res, err := svc.UploadFavicon(c.UserContext(), service.FileUpload{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: ct,
				Size:        fh.Size,
			})
			if err != nil {
				return serviceError(c, err)
			}
			return c.JSON(res)
		})
	}
}
