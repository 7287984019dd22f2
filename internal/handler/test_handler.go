package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/middleware"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
)

type TestHandler struct {
	testRepo *repository.TestRepository
	authMw   *middleware.AuthMiddleware
	validate *validator.Validate
}

func NewTestHandler(testRepo *repository.TestRepository, authMw *middleware.AuthMiddleware) *TestHandler {
	return &TestHandler{
		testRepo: testRepo,
		authMw:   authMw,
		validate: validator.New(),
	}
}

func (h *TestHandler) Create(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}
	if actor.FacultyID == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse(
			"FORBIDDEN", "No faculty profile is linked to this account",
		))
	}

	var req dto.CreateTestRequest
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

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "date must be YYYY-MM-DD",
		))
	}

	test := &domain.Test{
		SubjectID:  req.SubjectID,
		SectionID:  req.SectionID,
		FacultyID:  *actor.FacultyID,
		SemesterID: req.SemesterID,
		Name:       req.Name,
		Date:       date,
		MaxMarks:   req.MaxMarks,
	}
	if err := h.testRepo.Create(test); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(dto.ToTestDTO(test), "Test created"))
}

func (h *TestHandler) ListBySection(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Query("section_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "a valid section_id is required",
		))
	}

	tests, err := h.testRepo.ListBySection(sectionID)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.TestDTO, 0, len(tests))
	for i := range tests {
		out = append(out, dto.ToTestDTO(&tests[i]))
	}
	return c.JSON(dto.SuccessResponse(out, ""))
}

// RecordResults replaces the marks of the listed students for one test.
// Marks above the test's maximum are rejected before anything is written.
func (h *TestHandler) RecordResults(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}

	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid test id",
		))
	}

	test, err := h.testRepo.FindByID(testID)
	if err != nil {
		return respondError(c, err)
	}
	if actor.Role == domain.RoleFaculty && (actor.FacultyID == nil || *actor.FacultyID != test.FacultyID) {
		return respondError(c, domain.ErrForbidden)
	}

	var req dto.RecordResultsRequest
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

	results := make([]domain.TestResult, 0, len(req.Results))
	for _, entry := range req.Results {
		if entry.MarksObtained > test.MaxMarks {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "marks_obtained cannot exceed the test's max_marks",
			))
		}
		results = append(results, domain.TestResult{
			TestID:        testID,
			StudentID:     entry.StudentID,
			MarksObtained: entry.MarksObtained,
			Remarks:       entry.Remarks,
		})
	}

	if err := h.testRepo.UpsertResults(testID, results); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(fiber.Map{"recorded": len(results)}, "Results recorded"))
}

func (h *TestHandler) ListResults(c *fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid test id",
		))
	}

	results, err := h.testRepo.ListResultsByTest(testID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(results, ""))
}
