package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/careslot/booking-app/services"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// Register handles POST /api/register.
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	user, err := ctl.Auth.Register(in)
	if err != nil {
		var verr *services.ValidationError
		var cerr *services.ConflictError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
		case errors.As(err, &cerr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": cerr.Message})
		default:
			log.Printf("Registration error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server error during registration",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Login handles POST /api/login.
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, role, err := ctl.Auth.Login(in.Email, in.Password)
	if err != nil {
		var aerr *services.AuthError
		if errors.As(err, &aerr) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": aerr.Message})
		}
		log.Printf("Login error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error during login",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"role":  role,
	})
}
