package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"eggslist/internal/repository"
	"eggslist/internal/service"
)

// ListTestimonials returns the public testimonials in display order.
//
// @Summary List testimonials
// @Tags content
// @Produce json
// @Success 200 {array} model.TestimonialView
// @Router /api/site-configuration/testimonials [get]
func ListTestimonials(svc service.ContentService) fiber.Handler {
	return listHandler(svc.TestimonialViews)
}

// ListFAQs returns the public FAQ entries in display order.
//
// @Summary List FAQs
// @Tags content
// @Produce json
// @Success 200 {array} model.FAQView
// @Router /api/site-configuration/faqs [get]
func ListFAQs(svc service.ContentService) fiber.Handler {
	return listHandler(svc.FAQViews)
}

// ListTeamMembers returns the public team in display order, with image URLs.
//
// @Summary List team members
// @Tags content
// @Produce json
// @Success 200 {array} model.TeamMemberView
// @Router /api/site-configuration/team-members [get]
func ListTeamMembers(svc service.ContentService) fiber.Handler {
	return listHandler(svc.TeamMemberViews)
}

func AdminListTestimonials(svc service.ContentService) fiber.Handler {
	return listHandler(svc.ListTestimonials)
}

// CreateTestimonial adds a testimonial. A zero position appends it.
//
// @Summary Create testimonial
// @Tags admin-content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.TestimonialInput true "testimonial"
// @Success 201 {object} model.Testimonial
// @Failure 400 {object} errorPayload
// @Router /api/admin/testimonials [post]
func CreateTestimonial(svc service.ContentService) fiber.Handler {
	return createHandler(svc.CreateTestimonial)
}

func UpdateTestimonial(svc service.ContentService) fiber.Handler {
	return updateHandler(svc.UpdateTestimonial)
}

func AdminListFAQs(svc service.ContentService) fiber.Handler {
	return listHandler(svc.ListFAQs)
}

func CreateFAQ(svc service.ContentService) fiber.Handler {
	return createHandler(svc.CreateFAQ)
}

func UpdateFAQ(svc service.ContentService) fiber.Handler {
	return updateHandler(svc.UpdateFAQ)
}

func AdminListTeamMembers(svc service.ContentService) fiber.Handler {
	return listHandler(svc.ListTeamMembers)
}

func CreateTeamMember(svc service.ContentService) fiber.Handler {
	return createHandler(svc.CreateTeamMember)
}

func UpdateTeamMember(svc service.ContentService) fiber.Handler {
	return updateHandler(svc.UpdateTeamMember)
}

// UploadTeamImage replaces a team member's photo (multipart field "file").
//
// @Summary Upload team member image
// @Tags admin-content
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "team member id"
// @Param file formData file true "image"
// @Success 200 {object} model.TeamMember
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/admin/team-members/{id}/image [post]
func UploadTeamImage(svc service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return invalidID(c)
		}
		return withUpload(c, func(_ *multipart.FileHeader, f multipart.File) error {
			res, err := svc.UploadTeamImage(c.UserContext(), id, f)
			if err != nil {
				return serviceError(c, err)
			}
			return c.JSON(res)
		})
	}
}

// DeleteContent removes one item of kind by :id.
func DeleteContent(svc service.ContentService, kind repository.ContentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), kind, id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ReorderContent assigns positions 1..n to the ids of kind in body order.
//
// @Summary Reorder content
// @Tags admin-content
// @Security BearerAuth
// @Accept json
// @Param body body service.ReorderInput true "ids in display order"
// @Success 204
// @Failure 400 {object} errorPayload
// @Router /api/admin/testimonials/reorder [post]
// @Router /api/admin/faqs/reorder [post]
// @Router /api/admin/team-members/reorder [post]
func ReorderContent(svc service.ContentService, kind repository.ContentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ReorderInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		if err := svc.Reorder(c.UserContext(), kind, in); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
