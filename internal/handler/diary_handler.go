package handler

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/middleware"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
	"github.com/GitKaran4723/attendanceModule/internal/service"
	"github.com/GitKaran4723/attendanceModule/internal/storage"
)

type DiaryHandler struct {
	diaryService *service.DiaryService
	diaryRepo    *repository.DiaryRepository
	authMw       *middleware.AuthMiddleware
	storage      *storage.MinIOClient
	validate     *validator.Validate
}

func NewDiaryHandler(
	diaryService *service.DiaryService,
	diaryRepo *repository.DiaryRepository,
	authMw *middleware.AuthMiddleware,
	storage *storage.MinIOClient,
) *DiaryHandler {
	return &DiaryHandler{
		diaryService: diaryService,
		diaryRepo:    diaryRepo,
		authMw:       authMw,
		storage:      storage,
		validate:     validator.New(),
	}
}

// List returns the caller's diaries; HOD and admin see everyone's.
func (h *DiaryHandler) List(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}

	var filter repository.DiaryFilter
	if raw := c.Query("status"); raw != "" {
		status := domain.DiaryStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("activity_type"); raw != "" {
		at := domain.ActivityType(raw)
		filter.ActivityType = &at
	}
	if raw := c.Query("faculty_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "Invalid faculty_id",
			))
		}
		filter.FacultyID = &id
	}
	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "date_from must be YYYY-MM-DD",
			))
		}
		filter.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "date_to must be YYYY-MM-DD",
			))
		}
		filter.DateTo = &t
	}

	page, limit := pageParams(c)
	diaries, total, err := h.diaryService.List(actor, filter, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.SuccessWithMeta(dto.ToDiaryDTOs(diaries), dto.NewMeta(page, limit, total)))
}

func (h *DiaryHandler) Get(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid diary id",
		))
	}

	diary, err := h.diaryService.Get(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.ToDiaryDTO(diary), ""))
}

// Create authors a manual diary entry in draft.
func (h *DiaryHandler) Create(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CreateDiaryRequest
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

	diary, err := h.diaryService.CreateManual(actor, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(dto.ToDiaryDTO(diary), "Diary entry created"))
}

func (h *DiaryHandler) Update(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid diary id",
		))
	}

	var req dto.UpdateDiaryRequest
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

	diary, err := h.diaryService.Update(actor, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.ToDiaryDTO(diary), "Diary entry updated"))
}

func (h *DiaryHandler) Delete(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid diary id",
		))
	}

	if err := h.diaryService.Delete(actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(nil, "Diary entry deleted"))
}

func (h *DiaryHandler) Submit(c *fiber.Ctx) error {
	return h.transition(c, func(actor domain.Actor, id uuid.UUID, _ string) (*domain.WorkDiary, error) {
		return h.diaryService.Submit(actor, id)
	}, "Diary submitted for review")
}

func (h *DiaryHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, h.diaryService.Approve, "Diary approved")
}

func (h *DiaryHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, h.diaryService.Reject, "Diary rejected")
}

func (h *DiaryHandler) transition(
	c *fiber.Ctx,
	fn func(domain.Actor, uuid.UUID, string) (*domain.WorkDiary, error),
	message string,
) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid diary id",
		))
	}

	var req dto.ReviewDiaryRequest
	_ = c.BodyParser(&req)

	diary, err := fn(actor, id, req.Remarks)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.ToDiaryDTO(diary), message))
}

// AttachmentUploadURL presigns a PUT for a diary attachment and records the
// resulting object URL on the diary.
func (h *DiaryHandler) AttachmentUploadURL(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid diary id",
		))
	}

	diary, err := h.diaryService.Get(actor, id)
	if err != nil {
		return respondError(c, err)
	}

	contentType := c.Query("content_type", "application/octet-stream")
	objectKey := fmt.Sprintf("diaries/%s/attachment", diary.ID)
	uploadURL, err := h.storage.GetPresignedPutURL(objectKey, contentType, 15*time.Minute)
	if err != nil {
		return respondError(c, err)
	}

	publicURL := h.storage.GetPublicURL(objectKey)
	diary.AttachmentURL = &publicURL
	if err := h.diaryRepo.Update(diary); err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.SuccessResponse(fiber.Map{
		"upload_url":     uploadURL,
		"attachment_url": publicURL,
	}, ""))
}
