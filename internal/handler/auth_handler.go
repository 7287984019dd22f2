package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/GitKaran4723/attendanceModule/internal/auth"
	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/middleware"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
)

type AuthHandler struct {
	userRepo *repository.UserRepository
	authRepo *repository.AuthRepository
	jwt      *auth.JWTService
}

func NewAuthHandler(userRepo *repository.UserRepository, authRepo *repository.AuthRepository, jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		authRepo: authRepo,
		jwt:      jwt,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid request body",
		))
	}

	user, err := h.userRepo.FindByUsername(req.Username)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"INVALID_CREDENTIALS", "Invalid username or password",
		))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"INVALID_CREDENTIALS", "Invalid username or password",
		))
	}

	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse(
			"ACCOUNT_DISABLED", "Your account has been disabled. Contact the administrator.",
		))
	}

	accessToken, _, err := h.jwt.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Could not create token",
		))
	}

	refreshToken, tokenHash, expiresAt := h.jwt.GenerateRefreshToken()
	rt := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	if err := h.authRepo.CreateRefreshToken(rt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Could not store token",
		))
	}

	h.userRepo.UpdateLastLogin(user.ID)

	h.setRefreshCookie(c, refreshToken, expiresAt)

	return c.JSON(dto.SuccessResponse(dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.jwt.GetAccessExpiry().Seconds()),
		User: dto.UserBriefDTO{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		},
	}, ""))
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"TOKEN_EXPIRED", "Missing refresh token. Please sign in again.",
		))
	}

	tokenHash := auth.HashToken(refreshToken)
	storedToken, err := h.authRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"TOKEN_EXPIRED", "Invalid refresh token. Please sign in again.",
		))
	}

	if storedToken.IsRevoked {
		// Reused token: revoke everything this user holds.
		h.authRepo.RevokeAllUserTokens(storedToken.UserID)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"TOKEN_REUSE_DETECTED", "Suspicious activity detected. All sessions have been terminated.",
		))
	}

	if time.Now().After(storedToken.ExpiresAt) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"TOKEN_EXPIRED", "Refresh token has expired. Please sign in again.",
		))
	}

	user, err := h.userRepo.FindByID(storedToken.UserID)
	if err != nil || !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "User not found or inactive",
		))
	}

	// Rotate: revoke old, issue new.
	h.authRepo.RevokeRefreshToken(storedToken.ID)

	accessToken, _, err := h.jwt.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Could not create token",
		))
	}

	newRefreshToken, newTokenHash, expiresAt := h.jwt.GenerateRefreshToken()
	rt := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: newTokenHash,
		ExpiresAt: expiresAt,
	}
	if err := h.authRepo.CreateRefreshToken(rt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Could not store token",
		))
	}

	h.setRefreshCookie(c, newRefreshToken, expiresAt)

	return c.JSON(dto.SuccessResponse(dto.RefreshResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.jwt.GetAccessExpiry().Seconds()),
	}, ""))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken != "" {
		tokenHash := auth.HashToken(refreshToken)
		if storedToken, err := h.authRepo.FindRefreshTokenByHash(tokenHash); err == nil {
			h.authRepo.RevokeRefreshToken(storedToken.ID)
		}
	}

	h.clearRefreshCookie(c)

	return c.JSON(dto.SuccessResponse(nil, "Signed out"))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid request body",
		))
	}
	if len(req.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "New password must be at least 8 characters",
		))
	}

	user, err := h.userRepo.FindByID(*userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse(
			"NOT_FOUND", "User not found",
		))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"INVALID_CREDENTIALS", "Current password is incorrect",
		))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Could not update password",
		))
	}

	user.PasswordHash = string(hash)
	if err := h.userRepo.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Could not update password",
		))
	}

	// Changing the password ends every other session.
	h.authRepo.RevokeAllUserTokens(user.ID)

	return c.JSON(dto.SuccessResponse(nil, "Password updated"))
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: "Strict",
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: "Strict",
	})
}
