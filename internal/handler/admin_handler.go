package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
)

// AdminHandler carries the reference-data CRUD behind attendance and
// diaries. All routes sit behind the admin-only middleware.
type AdminHandler struct {
	userRepo     *repository.UserRepository
	facultyRepo  *repository.FacultyRepository
	studentRepo  *repository.StudentRepository
	academicRepo *repository.AcademicRepository
	scheduleRepo *repository.ScheduleRepository
	validate     *validator.Validate
}

func NewAdminHandler(
	userRepo *repository.UserRepository,
	facultyRepo *repository.FacultyRepository,
	studentRepo *repository.StudentRepository,
	academicRepo *repository.AcademicRepository,
	scheduleRepo *repository.ScheduleRepository,
) *AdminHandler {
	return &AdminHandler{
		userRepo:     userRepo,
		facultyRepo:  facultyRepo,
		studentRepo:  studentRepo,
		academicRepo: academicRepo,
		scheduleRepo: scheduleRepo,
		validate:     validator.New(),
	}
}

// Faculty

func (h *AdminHandler) ListFaculty(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	faculties, total, err := h.facultyRepo.List(c.Query("search"), page, limit)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.FacultyDTO, 0, len(faculties))
	for i := range faculties {
		out = append(out, dto.ToFacultyDTO(&faculties[i]))
	}
	return c.JSON(dto.SuccessWithMeta(out, dto.NewMeta(page, limit, total)))
}

func (h *AdminHandler) CreateFaculty(c *fiber.Ctx) error {
	var req dto.CreateFacultyRequest
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

	if exists, _ := h.facultyRepo.EmployeeIDExists(req.EmployeeID); exists {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"DUPLICATE", "A faculty member with this employee id already exists",
		))
	}
	if exists, _ := h.userRepo.UsernameExists(req.EmployeeID); exists {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"DUPLICATE", "A user with this username already exists",
		))
	}

	password := req.Password
	if password == "" {
		password = req.EmployeeID
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, err)
	}

	role := domain.RoleFaculty
	if req.IsHOD {
		role = domain.RoleHOD
	}
	user := &domain.User{
		Username:     req.EmployeeID,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := h.userRepo.Create(user); err != nil {
		return respondError(c, err)
	}

	faculty := &domain.Faculty{
		UserID:        user.ID,
		EmployeeID:    req.EmployeeID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Department:    req.Department,
		Designation:   req.Designation,
		Qualification: req.Qualification,
		Phone:         req.Phone,
		IsHOD:         req.IsHOD,
		Status:        "active",
	}
	if err := h.facultyRepo.Create(faculty); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(dto.ToFacultyDTO(faculty), "Faculty created"))
}

func (h *AdminHandler) UpdateFaculty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid faculty id",
		))
	}

	var req dto.UpdateFacultyRequest
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

	faculty, err := h.facultyRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	if req.FirstName != nil {
		faculty.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		faculty.LastName = *req.LastName
	}
	if req.Email != nil {
		faculty.Email = *req.Email
	}
	if req.Department != nil {
		faculty.Department = *req.Department
	}
	if req.Designation != nil {
		faculty.Designation = *req.Designation
	}
	if req.Qualification != nil {
		faculty.Qualification = *req.Qualification
	}
	if req.Phone != nil {
		faculty.Phone = *req.Phone
	}
	if req.Status != nil {
		faculty.Status = *req.Status
	}
	if req.IsHOD != nil && *req.IsHOD != faculty.IsHOD {
		faculty.IsHOD = *req.IsHOD
		// Role follows the HOD flag so approval rights stay in sync.
		if user, err := h.userRepo.FindByID(faculty.UserID); err == nil {
			if faculty.IsHOD {
				user.Role = domain.RoleHOD
			} else {
				user.Role = domain.RoleFaculty
			}
			if err := h.userRepo.Update(user); err != nil {
				return respondError(c, err)
			}
		}
	}

	if err := h.facultyRepo.Update(faculty); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.ToFacultyDTO(faculty), "Faculty updated"))
}

func (h *AdminHandler) DeleteFaculty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid faculty id",
		))
	}
	if _, err := h.facultyRepo.FindByID(id); err != nil {
		return respondError(c, err)
	}
	if err := h.facultyRepo.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(nil, "Faculty deleted"))
}

// Students

func (h *AdminHandler) ListStudents(c *fiber.Ctx) error {
	var sectionID *uuid.UUID
	if raw := c.Query("section_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "Invalid section_id",
			))
		}
		sectionID = &id
	}

	page, limit := pageParams(c)
	students, total, err := h.studentRepo.List(c.Query("search"), sectionID, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.StudentDTO, 0, len(students))
	for i := range students {
		out = append(out, dto.ToStudentDTO(&students[i]))
	}
	return c.JSON(dto.SuccessWithMeta(out, dto.NewMeta(page, limit, total)))
}

func (h *AdminHandler) CreateStudent(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
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

	if exists, _ := h.studentRepo.RollNumberExists(req.RollNumber); exists {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"DUPLICATE", "A student with this roll number already exists",
		))
	}
	if exists, _ := h.userRepo.UsernameExists(req.RollNumber); exists {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"DUPLICATE", "A user with this username already exists",
		))
	}

	var dob *time.Time
	password := req.RollNumber
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "date_of_birth must be YYYY-MM-DD",
			))
		}
		dob = &parsed
		password = parsed.Format("02012006")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, err)
	}

	user := &domain.User{
		Username:     req.RollNumber,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
		IsActive:     true,
	}
	if err := h.userRepo.Create(user); err != nil {
		return respondError(c, err)
	}

	student := &domain.Student{
		UserID:        user.ID,
		RollNumber:    req.RollNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   dob,
		Email:         req.Email,
		Phone:         req.Phone,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		ProgramID:     req.ProgramID,
		SectionID:     req.SectionID,
		AdmissionYear: req.AdmissionYear,
		Gender:        req.Gender,
		Status:        "active",
	}
	if err := h.studentRepo.Create(student); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(dto.ToStudentDTO(student), "Student created"))
}

func (h *AdminHandler) UpdateStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid student id",
		))
	}

	var req dto.UpdateStudentRequest
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

	student, err := h.studentRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.GuardianName != nil {
		student.GuardianName = *req.GuardianName
	}
	if req.GuardianPhone != nil {
		student.GuardianPhone = *req.GuardianPhone
	}
	if req.SectionID != nil {
		student.SectionID = req.SectionID
	}
	if req.Status != nil {
		student.Status = *req.Status
	}

	if err := h.studentRepo.Update(student); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.ToStudentDTO(student), "Student updated"))
}

func (h *AdminHandler) DeleteStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid student id",
		))
	}
	if _, err := h.studentRepo.FindByID(id); err != nil {
		return respondError(c, err)
	}
	if err := h.studentRepo.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(nil, "Student deleted"))
}

// Programs

func (h *AdminHandler) ListPrograms(c *fiber.Ctx) error {
	programs, err := h.academicRepo.ListPrograms()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(programs, ""))
}

func (h *AdminHandler) CreateProgram(c *fiber.Ctx) error {
	var req dto.CreateProgramRequest
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

	if _, err := h.academicRepo.FindProgramByCode(req.ProgramCode); err == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"DUPLICATE", "A program with this code already exists",
		))
	}

	duration := req.DurationYears
	if duration == 0 {
		duration = 3
	}
	program := &domain.Program{
		ProgramCode:   req.ProgramCode,
		ProgramName:   req.ProgramName,
		DurationYears: duration,
	}
	if err := h.academicRepo.CreateProgram(program); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(program, "Program created"))
}

// Sections

func (h *AdminHandler) ListSections(c *fiber.Ctx) error {
	var programID *uuid.UUID
	if raw := c.Query("program_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "Invalid program_id",
			))
		}
		programID = &id
	}
	sections, err := h.academicRepo.ListSections(programID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(sections, ""))
}

func (h *AdminHandler) CreateSection(c *fiber.Ctx) error {
	var req dto.CreateSectionRequest
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

	semester := req.CurrentSemester
	if semester == 0 {
		semester = 1
	}
	section := &domain.Section{
		SectionName:     req.SectionName,
		ProgramID:       req.ProgramID,
		CurrentSemester: semester,
		ClassTeacherID:  req.ClassTeacherID,
	}
	if err := h.academicRepo.CreateSection(section); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(section, "Section created"))
}

// Semesters

func (h *AdminHandler) ListSemesters(c *fiber.Ctx) error {
	semesters, err := h.academicRepo.ListSemesters()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(semesters, ""))
}

func (h *AdminHandler) CreateSemester(c *fiber.Ctx) error {
	var req dto.CreateSemesterRequest
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

	semester := &domain.Semester{
		Name:         req.Name,
		AcademicYear: req.AcademicYear,
	}
	if req.StartDate != "" {
		t, _ := time.Parse("2006-01-02", req.StartDate)
		semester.StartDate = &t
	}
	if req.EndDate != "" {
		t, _ := time.Parse("2006-01-02", req.EndDate)
		semester.EndDate = &t
	}
	if semester.StartDate != nil && semester.EndDate != nil && semester.EndDate.Before(*semester.StartDate) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "end_date must be on or after start_date",
		))
	}

	if err := h.academicRepo.CreateSemester(semester); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(semester, "Semester created"))
}

// Subjects

func (h *AdminHandler) ListSubjects(c *fiber.Ctx) error {
	var programID *uuid.UUID
	if raw := c.Query("program_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "Invalid program_id",
			))
		}
		programID = &id
	}

	page, limit := pageParams(c)
	subjects, total, err := h.academicRepo.ListSubjects(programID, page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessWithMeta(subjects, dto.NewMeta(page, limit, total)))
}

func (h *AdminHandler) CreateSubject(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
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

	if exists, _ := h.academicRepo.SubjectCodeExists(req.SubjectCode); exists {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"DUPLICATE", "A subject with this code already exists",
		))
	}

	subjectType := req.SubjectType
	if subjectType == "" {
		subjectType = "theory"
	}
	subject := &domain.Subject{
		SubjectCode:    req.SubjectCode,
		SubjectName:    req.SubjectName,
		Credits:        req.Credits,
		SubjectType:    subjectType,
		ProgramID:      req.ProgramID,
		SemesterNumber: req.SemesterNumber,
		TotalHours:     req.TotalHours,
	}
	if err := h.academicRepo.CreateSubject(subject); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(subject, "Subject created"))
}

func (h *AdminHandler) DeleteSubject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid subject id",
		))
	}
	if _, err := h.academicRepo.FindSubjectByID(id); err != nil {
		return respondError(c, err)
	}
	if err := h.academicRepo.DeleteSubject(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(nil, "Subject deleted"))
}

// Allocations

func (h *AdminHandler) CreateAllocation(c *fiber.Ctx) error {
	var req dto.CreateAllocationRequest
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

	allocationType := req.AllocationType
	if allocationType == "" {
		allocationType = "primary"
	}
	allocation := &domain.SubjectAllocation{
		SubjectID:      req.SubjectID,
		FacultyID:      req.FacultyID,
		SectionID:      req.SectionID,
		SemesterID:     req.SemesterID,
		AllocationType: allocationType,
	}
	if err := h.academicRepo.CreateAllocation(allocation); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(allocation, "Subject allocated"))
}

func (h *AdminHandler) ListAllocations(c *fiber.Ctx) error {
	facultyID, err := uuid.Parse(c.Query("faculty_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "A valid faculty_id is required",
		))
	}
	allocations, err := h.academicRepo.ListAllocationsByFaculty(facultyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(allocations, ""))
}

// Schedules

func (h *AdminHandler) ListSchedules(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Query("section_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "A valid section_id is required",
		))
	}

	from, err := time.Parse("2006-01-02", c.Query("date_from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "date_from must be YYYY-MM-DD",
		))
	}
	to, err := time.Parse("2006-01-02", c.Query("date_to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "date_to must be YYYY-MM-DD",
		))
	}

	schedules, err := h.scheduleRepo.ListBySectionAndRange(sectionID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(schedules, ""))
}

func (h *AdminHandler) CreateSchedule(c *fiber.Ctx) error {
	var req dto.CreateScheduleRequest
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
	if req.EndTime <= req.StartTime {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "end_time must be after start_time",
		))
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "date must be YYYY-MM-DD",
		))
	}

	if exists, _ := h.scheduleRepo.Exists(req.SubjectID, req.FacultyID, req.SectionID, date, req.StartTime); exists {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"DUPLICATE", "This schedule slot already exists",
		))
	}

	classType := domain.ClassTheory
	if req.ClassType == string(domain.ClassPractical) {
		classType = domain.ClassPractical
	}
	schedule := &domain.ClassSchedule{
		SubjectID:  req.SubjectID,
		FacultyID:  req.FacultyID,
		SectionID:  req.SectionID,
		SemesterID: req.SemesterID,
		Room:       req.Room,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		ClassType:  classType,
	}
	if err := h.scheduleRepo.Create(schedule); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(schedule, "Schedule created"))
}

func (h *AdminHandler) DeleteSchedule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid schedule id",
		))
	}
	if _, err := h.scheduleRepo.FindByID(id); err != nil {
		return respondError(c, err)
	}
	if err := h.scheduleRepo.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(nil, "Schedule deleted"))
}
