package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
)

// respondError maps service errors onto the response envelope.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		details := make([]dto.ErrorDetail, 0, len(validationErr.Errors))
		for _, e := range validationErr.Errors {
			details = append(details, dto.ErrorDetail{Field: e.Field, Message: e.Reason})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", validationErr.Error(), details...,
		))
	}

	var transitionErr *domain.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"INVALID_TRANSITION", transitionErr.Error(),
		))
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse(
			"NOT_FOUND", "Resource not found",
		))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse(
			"FORBIDDEN", "You do not have permission to perform this action",
		))
	case errors.Is(err, domain.ErrLockedForEditing):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"LOCKED_FOR_EDITING", "This entry has been submitted and can no longer be edited",
		))
	case errors.Is(err, domain.ErrInvalidSessionState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"INVALID_SESSION_STATE", "The attendance session is not in the required state",
		))
	case errors.Is(err, domain.ErrDiaryCapacityExceeded):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"CAPACITY_EXCEEDED", "The diary number sequence for this year is exhausted",
		))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Something went wrong",
		))
	}
}

func pageParams(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("per_page", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
