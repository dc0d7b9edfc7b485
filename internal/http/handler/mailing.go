package handler

import (
	"github.com/gofiber/fiber/v2"

	"eggslist/internal/service"
)

type mailingResponse struct {
	Sent int `json:"sent"`
}

// SendMailing renders a template for each recipient and sends the batch.
//
// @Summary Send a mailing
// @Tags admin-mailings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.MailingInput true "mailing"
// @Success 200 {object} mailingResponse
// @Failure 400 {object} errorPayload
// @Router /api/admin/mailings [post]
func SendMailing(svc service.MailingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.MailingInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		n, err := svc.Send(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(mailingResponse{Sent: n})
	}
}
