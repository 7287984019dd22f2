package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/middleware"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
	"github.com/GitKaran4723/attendanceModule/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	authMw           *middleware.AuthMiddleware
	userRepo         *repository.UserRepository
	studentRepo      *repository.StudentRepository
}

func NewDashboardHandler(
	dashboardService *service.DashboardService,
	authMw *middleware.AuthMiddleware,
	userRepo *repository.UserRepository,
	studentRepo *repository.StudentRepository,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		authMw:           authMw,
		userRepo:         userRepo,
		studentRepo:      studentRepo,
	}
}

// Faculty returns today's teaching load and diary state for the signed-in
// faculty member.
func (h *DashboardHandler) Faculty(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}
	if actor.FacultyID == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse(
			"FORBIDDEN", "No faculty profile is linked to this account",
		))
	}

	dashboard, err := h.dashboardService.FacultyDashboard(*actor.FacultyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dashboard, ""))
}

// Admin returns the headline entity counts and the pending diary backlog.
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	stats, err := h.dashboardService.AdminStats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(stats, ""))
}

// HOD returns the pending approval queue and department-wide counters.
func (h *DashboardHandler) HOD(c *fiber.Ctx) error {
	dashboard, err := h.dashboardService.ApprovalQueue()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dashboard, ""))
}

// Student returns the attendance and test summary for one student.
// Students see their own summary, parents see their child's, and admins
// may pass ?student_id= to inspect anyone.
func (h *DashboardHandler) Student(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}

	student, err := h.resolveStudent(c, actor)
	if err != nil {
		return respondError(c, err)
	}

	summary, err := h.dashboardService.StudentSummary(student.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(summary, ""))
}

func (h *DashboardHandler) resolveStudent(c *fiber.Ctx, actor domain.Actor) (*domain.Student, error) {
	switch actor.Role {
	case domain.RoleStudent:
		return h.studentRepo.FindByUserID(actor.UserID)
	case domain.RoleParent:
		// Parent accounts are provisioned as "<roll>_parent" alongside
		// the student account.
		user, err := h.userRepo.FindByID(actor.UserID)
		if err != nil {
			return nil, err
		}
		roll := strings.TrimSuffix(user.Username, "_parent")
		if roll == user.Username {
			return nil, domain.ErrNotFound
		}
		return h.studentRepo.FindByRollNumber(roll)
	case domain.RoleAdmin, domain.RoleHOD:
		id, err := uuid.Parse(c.Query("student_id"))
		if err != nil {
			return nil, domain.NewValidationError("student_id", "a valid student_id is required")
		}
		return h.studentRepo.FindByID(id)
	default:
		return nil, domain.ErrForbidden
	}
}
