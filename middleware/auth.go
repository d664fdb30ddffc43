package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/careslot/booking-app/models"
	"github.com/careslot/booking-app/services"
)

// Protected gates a route on a valid bearer token and stashes the
// token's identity and role in the request locals.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return invalidToken(c)
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return invalidToken(c)
			}

			id, ok := claims["id"].(float64)
			if !ok {
				return invalidToken(c)
			}
			roleStr, _ := claims["role"].(string)
			role := models.Role(roleStr)
			if !role.Valid() {
				return invalidToken(c)
			}

			c.Locals("userID", uint(id))
			c.Locals("role", role)
			return c.Next()
		},
	})
}

// RequireRole allows the request through iff the token's role is in the
// allowed set. An empty set means public.
func RequireRole(allowed ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(models.Role)
		if !services.Authorize(role, allowed...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: insufficient rights",
			})
		}
		return c.Next()
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	// jwtware reports an absent Authorization header with this exact
	// message; everything else is a bad or expired token.
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "No token provided",
		})
	}
	return invalidToken(c)
}

func invalidToken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Invalid token",
	})
}
