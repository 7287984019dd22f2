package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

// AcademicRepository covers the reference entities behind attendance and
// diaries: programs, sections, semesters, subjects, allocations and
// elective enrollments.
type AcademicRepository struct {
	db *gorm.DB
}

func NewAcademicRepository(db *gorm.DB) *AcademicRepository {
	return &AcademicRepository{db: db}
}

// Programs

func (r *AcademicRepository) CreateProgram(program *domain.Program) error {
	return r.db.Create(program).Error
}

func (r *AcademicRepository) FindProgramByCode(code string) (*domain.Program, error) {
	var program domain.Program
	err := r.db.Where("program_code = ? AND deleted_at IS NULL", code).First(&program).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

func (r *AcademicRepository) ListPrograms() ([]domain.Program, error) {
	var programs []domain.Program
	err := r.db.Where("deleted_at IS NULL").Order("program_code ASC").Find(&programs).Error
	return programs, err
}

// Sections

func (r *AcademicRepository) CreateSection(section *domain.Section) error {
	return r.db.Create(section).Error
}

func (r *AcademicRepository) FindSectionByID(id uuid.UUID) (*domain.Section, error) {
	var section domain.Section
	err := r.db.Preload("Program").Where("id = ? AND deleted_at IS NULL", id).First(&section).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &section, nil
}

func (r *AcademicRepository) ListSections(programID *uuid.UUID) ([]domain.Section, error) {
	var sections []domain.Section
	query := r.db.Preload("Program").Where("deleted_at IS NULL")
	if programID != nil {
		query = query.Where("program_id = ?", *programID)
	}
	err := query.Order("section_name ASC").Find(&sections).Error
	return sections, err
}

// Semesters

func (r *AcademicRepository) CreateSemester(semester *domain.Semester) error {
	return r.db.Create(semester).Error
}

func (r *AcademicRepository) ListSemesters() ([]domain.Semester, error) {
	var semesters []domain.Semester
	err := r.db.Where("deleted_at IS NULL").Order("start_date DESC").Find(&semesters).Error
	return semesters, err
}

func (r *AcademicRepository) CurrentSemester() (*domain.Semester, error) {
	var semester domain.Semester
	err := r.db.Where("deleted_at IS NULL AND start_date <= CURRENT_DATE AND end_date >= CURRENT_DATE").
		Order("start_date DESC").
		First(&semester).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &semester, nil
}

// Subjects

func (r *AcademicRepository) CreateSubject(subject *domain.Subject) error {
	return r.db.Create(subject).Error
}

func (r *AcademicRepository) FindSubjectByID(id uuid.UUID) (*domain.Subject, error) {
	var subject domain.Subject
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&subject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &subject, nil
}

func (r *AcademicRepository) FindSubjectByCode(code string) (*domain.Subject, error) {
	var subject domain.Subject
	err := r.db.Where("subject_code = ? AND deleted_at IS NULL", code).First(&subject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &subject, nil
}

func (r *AcademicRepository) SubjectCodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Subject{}).
		Where("subject_code = ? AND deleted_at IS NULL", code).
		Count(&count).Error
	return count > 0, err
}

func (r *AcademicRepository) ListSubjects(programID *uuid.UUID, page, limit int) ([]domain.Subject, int64, error) {
	var subjects []domain.Subject
	var total int64

	query := r.db.Model(&domain.Subject{}).Where("deleted_at IS NULL")
	if programID != nil {
		query = query.Where("program_id = ?", *programID)
	}

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Offset(offset).Limit(limit).
		Order("subject_code ASC").
		Find(&subjects).Error

	return subjects, total, err
}

func (r *AcademicRepository) DeleteSubject(id uuid.UUID) error {
	return r.db.Model(&domain.Subject{}).
		Where("id = ?", id).
		Update("deleted_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (r *AcademicRepository) CountSubjects() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Subject{}).Where("deleted_at IS NULL").Count(&count).Error
	return count, err
}

func (r *AcademicRepository) CountSections() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Section{}).Where("deleted_at IS NULL").Count(&count).Error
	return count, err
}

// Allocations

func (r *AcademicRepository) CreateAllocation(allocation *domain.SubjectAllocation) error {
	return r.db.Create(allocation).Error
}

func (r *AcademicRepository) ListAllocationsByFaculty(facultyID uuid.UUID) ([]domain.SubjectAllocation, error) {
	var allocations []domain.SubjectAllocation
	err := r.db.Preload("Subject").Preload("Section").
		Where("faculty_id = ? AND deleted_at IS NULL", facultyID).
		Find(&allocations).Error
	return allocations, err
}

// Enrollments

func (r *AcademicRepository) CreateEnrollment(enrollment *domain.StudentSubjectEnrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *AcademicRepository) ListEnrolledStudents(subjectID uuid.UUID) ([]domain.Student, error) {
	var students []domain.Student
	err := r.db.
		Joins("JOIN student_subject_enrollments e ON e.student_id = students.id").
		Where("e.subject_id = ? AND e.deleted_at IS NULL AND students.deleted_at IS NULL", subjectID).
		Order("students.roll_number ASC").
		Find(&students).Error
	return students, err
}
