package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

// Programs
type CreateProgramRequest struct {
	ProgramCode   string `json:"program_code" validate:"required,max=50"`
	ProgramName   string `json:"program_name" validate:"required,max=150"`
	DurationYears int    `json:"duration_years" validate:"omitempty,min=1,max=6"`
}

// Sections
type CreateSectionRequest struct {
	SectionName     string     `json:"section_name" validate:"required,max=64"`
	ProgramID       uuid.UUID  `json:"program_id" validate:"required"`
	CurrentSemester int        `json:"current_semester" validate:"omitempty,min=1,max=12"`
	ClassTeacherID  *uuid.UUID `json:"class_teacher_id,omitempty"`
}

// Subjects
type CreateSubjectRequest struct {
	SubjectCode    string     `json:"subject_code" validate:"required,max=64"`
	SubjectName    string     `json:"subject_name" validate:"required,max=255"`
	Credits        float64    `json:"credits" validate:"omitempty,min=0"`
	SubjectType    string     `json:"subject_type" validate:"omitempty,oneof=theory practical"`
	ProgramID      *uuid.UUID `json:"program_id,omitempty"`
	SemesterNumber *int       `json:"semester_number,omitempty" validate:"omitempty,min=1,max=12"`
	TotalHours     *int       `json:"total_hours,omitempty" validate:"omitempty,min=0"`
}

// Subject allocations
type CreateAllocationRequest struct {
	SubjectID      uuid.UUID  `json:"subject_id" validate:"required"`
	FacultyID      uuid.UUID  `json:"faculty_id" validate:"required"`
	SectionID      *uuid.UUID `json:"section_id,omitempty"`
	SemesterID     *uuid.UUID `json:"semester_id,omitempty"`
	AllocationType string     `json:"allocation_type" validate:"omitempty,oneof=primary secondary"`
}

// Schedules
type CreateScheduleRequest struct {
	SubjectID  uuid.UUID  `json:"subject_id" validate:"required"`
	FacultyID  uuid.UUID  `json:"faculty_id" validate:"required"`
	SectionID  uuid.UUID  `json:"section_id" validate:"required"`
	SemesterID *uuid.UUID `json:"semester_id,omitempty"`
	Room       string     `json:"room" validate:"omitempty,max=64"`
	Date       string     `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string     `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string     `json:"end_time" validate:"required,datetime=15:04"`
	ClassType  string     `json:"class_type" validate:"omitempty,oneof=theory practical"`
}

// Semesters
type CreateSemesterRequest struct {
	Name         string `json:"name" validate:"required,max=64"`
	AcademicYear string `json:"academic_year" validate:"omitempty,max=32"`
	StartDate    string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// Faculty
type CreateFacultyRequest struct {
	EmployeeID    string `json:"employee_id" validate:"required,max=50"`
	FirstName     string `json:"first_name" validate:"required,max=100"`
	LastName      string `json:"last_name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Department    string `json:"department" validate:"omitempty,max=100"`
	Designation   string `json:"designation" validate:"omitempty,max=128"`
	Qualification string `json:"qualification" validate:"omitempty,max=200"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
	IsHOD         bool   `json:"is_hod"`
	Password      string `json:"password" validate:"omitempty,min=8"`
}

// UpdateFacultyRequest applies only the fields it carries; identity fields
// (employee_id, username) stay fixed.
type UpdateFacultyRequest struct {
	FirstName     *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName      *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Department    *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Designation   *string `json:"designation,omitempty" validate:"omitempty,max=128"`
	Qualification *string `json:"qualification,omitempty" validate:"omitempty,max=200"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	IsHOD         *bool   `json:"is_hod,omitempty"`
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// Students
type CreateStudentRequest struct {
	RollNumber    string     `json:"roll_number" validate:"required,max=64"`
	FirstName     string     `json:"first_name" validate:"required,max=100"`
	LastName      string     `json:"last_name" validate:"required,max=100"`
	Email         string     `json:"email" validate:"required,email"`
	DateOfBirth   string     `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Phone         string     `json:"phone" validate:"omitempty,max=20"`
	GuardianName  string     `json:"guardian_name" validate:"omitempty,max=200"`
	GuardianPhone string     `json:"guardian_phone" validate:"omitempty,max=20"`
	ProgramID     *uuid.UUID `json:"program_id,omitempty"`
	SectionID     *uuid.UUID `json:"section_id,omitempty"`
	AdmissionYear *int       `json:"admission_year,omitempty"`
	Gender        string     `json:"gender" validate:"omitempty,max=10"`
}

type UpdateStudentRequest struct {
	FirstName     *string    `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName      *string    `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email         *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string    `json:"phone,omitempty" validate:"omitempty,max=20"`
	GuardianName  *string    `json:"guardian_name,omitempty" validate:"omitempty,max=200"`
	GuardianPhone *string    `json:"guardian_phone,omitempty" validate:"omitempty,max=20"`
	SectionID     *uuid.UUID `json:"section_id,omitempty"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type FacultyDTO struct {
	ID          uuid.UUID `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Department  string    `json:"department,omitempty"`
	Designation string    `json:"designation,omitempty"`
	IsHOD       bool      `json:"is_hod"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type StudentDTO struct {
	ID          uuid.UUID `json:"id"`
	RollNumber  string    `json:"roll_number"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	SectionName string    `json:"section_name,omitempty"`
	ProgramName string    `json:"program_name,omitempty"`
	Status      string    `json:"status"`
}

func ToFacultyDTO(f *domain.Faculty) FacultyDTO {
	return FacultyDTO{
		ID:          f.ID,
		EmployeeID:  f.EmployeeID,
		Name:        f.FullName(),
		Email:       f.Email,
		Department:  f.Department,
		Designation: f.Designation,
		IsHOD:       f.IsHOD,
		Status:      f.Status,
		CreatedAt:   f.CreatedAt,
	}
}

func ToStudentDTO(s *domain.Student) StudentDTO {
	out := StudentDTO{
		ID:         s.ID,
		RollNumber: s.RollNumber,
		Name:       s.FullName(),
		Email:      s.Email,
		Status:     s.Status,
	}
	if s.Section != nil {
		out.SectionName = s.Section.SectionName
	}
	if s.Program != nil {
		out.ProgramName = s.Program.ProgramName
	}
	return out
}
