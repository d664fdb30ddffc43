package services

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/careslot/booking-app/config"
	"github.com/careslot/booking-app/models"
)

// AuthService owns credential verification and token issuance.
type AuthService struct {
	db       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
	validate *validator.Validate
}

func NewAuthService(gdb *gorm.DB, secret string) *AuthService {
	return &AuthService{
		db:       gdb,
		secret:   []byte(secret),
		tokenTTL: config.TokenTTL,
		validate: validator.New(),
	}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a patient account. The plaintext password is hashed
// with bcrypt and never stored; the email uniqueness constraint is the
// duplicate check.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "email" {
					return nil, &ValidationError{Message: "Invalid email address"}
				}
			}
		}
		return nil, &ValidationError{Message: "All fields are required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.RolePatient,
	}
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Message: "Email already in use"}
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed token carrying the
// user's id and role. Unknown email and wrong password return the same
// error so callers cannot tell which check failed.
func (s *AuthService) Login(email, password string) (string, models.Role, error) {
	invalid := &AuthError{Message: "Invalid credentials"}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", invalid
		}
		return "", "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", "", invalid
	}

	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// Authorize is the capability-set check used on protected routes: an
// empty allowed set means the operation is public.
func Authorize(role models.Role, allowed ...models.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
