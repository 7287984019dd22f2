package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/auth"
	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	db         *gorm.DB
}

func NewAuthMiddleware(jwtService *auth.JWTService, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		db:         db,
	}
}

// Required authentication
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"UNAUTHORIZED",
				"Missing authorization token",
			))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"UNAUTHORIZED",
				"Invalid token format",
			))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
					"TOKEN_EXPIRED",
					"Token has expired",
				))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"INVALID_TOKEN",
				"Invalid token",
			))
		}

		// Deactivated accounts lose access immediately, not at token expiry
		var active int64
		m.db.Table("users").
			Where("id = ? AND is_active = ? AND deleted_at IS NULL", claims.Sub, true).
			Count(&active)
		if active == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"ACCOUNT_DISABLED",
				"Account is disabled",
			))
		}

		userID, _ := uuid.Parse(claims.Sub)
		c.Locals("userID", userID)
		c.Locals("userRole", claims.Role)
		c.Locals("jti", claims.JTI)

		return c.Next()
	}
}

// Optional authentication
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			return c.Next()
		}

		userID, _ := uuid.Parse(claims.Sub)
		c.Locals("userID", userID)
		c.Locals("userRole", claims.Role)
		c.Locals("jti", claims.JTI)

		return c.Next()
	}
}

// Admin only
func (m *AuthMiddleware) AdminOnly() fiber.Handler {
	return m.RequireRoles(domain.RoleAdmin)
}

// RequireRoles allows only the listed roles through.
func (m *AuthMiddleware) RequireRoles(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetUserRole(c)
		for _, r := range roles {
			if role == string(r) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse(
			"FORBIDDEN",
			"You do not have permission to perform this action",
		))
	}
}

// Get current user ID from context
func GetUserID(c *fiber.Ctx) *uuid.UUID {
	userID := c.Locals("userID")
	if userID == nil {
		return nil
	}
	id := userID.(uuid.UUID)
	return &id
}

// Get current user role from context
func GetUserRole(c *fiber.Ctx) string {
	role := c.Locals("userRole")
	if role == nil {
		return ""
	}
	return role.(string)
}

// GetActor builds the workflow actor for the authenticated user. FacultyID
// stays nil for roles without a faculty profile.
func (m *AuthMiddleware) GetActor(c *fiber.Ctx) (domain.Actor, error) {
	userID := GetUserID(c)
	if userID == nil {
		return domain.Actor{}, domain.ErrForbidden
	}
	actor := domain.Actor{
		UserID: *userID,
		Role:   domain.UserRole(GetUserRole(c)),
	}
	if actor.Role == domain.RoleFaculty || actor.Role == domain.RoleHOD {
		var faculty domain.Faculty
		err := m.db.Where("user_id = ? AND deleted_at IS NULL", *userID).First(&faculty).Error
		if err == nil {
			actor.FacultyID = &faculty.ID
		}
	}
	return actor, nil
}

// GetJWTService returns the JWT service for token validation
func (m *AuthMiddleware) GetJWTService() *auth.JWTService {
	return m.jwtService
}
