package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/middleware"
	"github.com/GitKaran4723/attendanceModule/internal/service"
)

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	authMw            *middleware.AuthMiddleware
	validate          *validator.Validate
}

func NewAttendanceHandler(attendanceService *service.AttendanceService, authMw *middleware.AuthMiddleware) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		authMw:            authMw,
		validate:          validator.New(),
	}
}

// CreateSession starts taking attendance for a scheduled class.
func (h *AttendanceHandler) CreateSession(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid request body",
		))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", err.Error(),
		))
	}

	session, err := h.attendanceService.CreateSession(actor, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(dto.ToSessionDTO(session), "Attendance session created"))
}

func (h *AttendanceHandler) UpdateSession(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid session id",
		))
	}

	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid request body",
		))
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", err.Error(),
		))
	}

	session, err := h.attendanceService.UpdateSession(actor, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.ToSessionDTO(session), "Attendance session updated"))
}

// FinalizeSession locks the session and returns the derived work diary.
func (h *AttendanceHandler) FinalizeSession(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid session id",
		))
	}

	session, diary, err := h.attendanceService.FinalizeSession(actor, id)
	if err != nil {
		return respondError(c, err)
	}

	resp := dto.FinalizeSessionResponse{Session: dto.ToSessionDTO(session)}
	if diary != nil {
		d := dto.ToDiaryDTO(diary)
		resp.Diary = &d
	}
	return c.JSON(dto.SuccessResponse(resp, "Attendance session finalized"))
}

func (h *AttendanceHandler) GetSession(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid session id",
		))
	}

	session, err := h.attendanceService.GetSession(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.ToSessionDTO(session), ""))
}

func (h *AttendanceHandler) ListSessions(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}

	facultyID := actor.FacultyID
	if raw := c.Query("faculty_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "Invalid faculty_id",
			))
		}
		facultyID = &id
	}
	if facultyID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "faculty_id is required",
		))
	}

	var from, to *time.Time
	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "date_from must be YYYY-MM-DD",
			))
		}
		from = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "date_to must be YYYY-MM-DD",
			))
		}
		to = &t
	}

	page, limit := pageParams(c)
	sessions, total, err := h.attendanceService.ListSessions(actor, *facultyID, from, to, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.SessionDTO, 0, len(sessions))
	for i := range sessions {
		out = append(out, dto.ToSessionDTO(&sessions[i]))
	}
	return c.JSON(dto.SuccessWithMeta(out, dto.NewMeta(page, limit, total)))
}

// CheckIn records campus presence for the current user.
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	var req dto.CheckInRequest
	_ = c.BodyParser(&req)

	checkIn, err := h.attendanceService.CheckIn(*userID, req.Method)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.ToCheckInDTO(checkIn), "Checked in"))
}

func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"UNAUTHORIZED", "Authentication required",
		))
	}

	checkIn, err := h.attendanceService.CheckOut(*userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.ToCheckInDTO(checkIn), "Checked out"))
}
