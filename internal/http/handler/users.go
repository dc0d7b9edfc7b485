package handler

import (
	"github.com/gofiber/fiber/v2"

	"eggslist/internal/service"
)

type tokenResponse struct {
	Access string `json:"access"`
}

// Login exchanges email and password for an access token.
//
// @Summary Obtain access token
// @Tags users
// @Accept json
// @Produce json
// @Param body body service.LoginInput true "credentials"
// @Success 200 {object} tokenResponse
// @Failure 401 {object} errorPayload
// @Router /api/users/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LoginInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		token, err := svc.Login(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(tokenResponse{Access: token})
	}
}
