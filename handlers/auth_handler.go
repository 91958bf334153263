package handlers

import (
	"strings"
	"time"

	config "github.com/anjiri1684/omnilearn/configs"
	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/middleware"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func AdminLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var admin models.AdminUser
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&admin).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	t, err := IssueAdminToken(admin.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"token": t,
		"admin": AdminResponse{ID: admin.ID, FullName: admin.FullName, Email: admin.Email, Role: middleware.RoleAdmin},
	})
}

func IssueAdminToken(adminID string) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": adminID,
		"role":     middleware.RoleAdmin,
		"exp":      time.Now().Add(config.ConfigDuration("JWT_TTL", 72*time.Hour)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

// AdminSession reports whether the bearer token still grants admin access.
func AdminSession(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"is_admin": middleware.IsAdmin(c)})
}
