package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"eggslist/internal/auth"
	"eggslist/internal/service"
)

// PrincipalLocalKey is the Fiber locals key holding the *service.Principal.
const PrincipalLocalKey = "principal"

// Auth resolves the Bearer token in the Authorization header and stores the
// caller under PrincipalLocalKey. Missing or bad tokens end the request with 401;
// a failed user lookup is passed to the error handler.
func Auth(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication credentials were not provided")
		}
		p, err := svc.Verify(c.UserContext(), token)
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrTokenExpired) {
			return fiber.NewError(fiber.StatusUnauthorized, "token is invalid or expired")
		}
		if err != nil {
			return err
		}
		c.Locals(PrincipalLocalKey, p)
		return c.Next()
	}
}

// RequireStaff rejects callers that Auth did not mark as staff.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := c.Locals(PrincipalLocalKey).(*service.Principal)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication credentials were not provided")
		}
		if !p.IsStaff {
			return fiber.NewError(fiber.StatusForbidden, "you do not have permission to perform this action")
		}
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
