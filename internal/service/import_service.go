package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
)

// ImportRow is one parsed line of an upload, keyed by lower-cased header.
type ImportRow map[string]string

type ImportService struct {
	db       *gorm.DB
	logs     *repository.ImportRepository
	validate *validator.Validate
}

func NewImportService(db *gorm.DB, logs *repository.ImportRepository) *ImportService {
	return &ImportService{
		db:       db,
		logs:     logs,
		validate: validator.New(),
	}
}

// seenSets tracks keys accepted earlier in the same file, so intra-file
// duplicates fail even before they reach the database.
type seenSets struct {
	keys map[string]bool
}

func newSeenSets() *seenSets {
	return &seenSets{keys: make(map[string]bool)}
}

func (s *seenSets) mark(kind, key string) bool {
	k := kind + ":" + strings.ToLower(key)
	if s.keys[k] {
		return false
	}
	s.keys[k] = true
	return true
}

// Run processes one upload row-by-row. Every accepted row commits in its own
// transaction; a bad row records an error entry and never aborts its
// siblings. Cancelling ctx stops the loop and finalizes the log from the
// rows already committed.
func (s *ImportService) Run(ctx context.Context, importType domain.ImportType, fileName string, rows []ImportRow, actor domain.Actor) (*domain.ImportLog, error) {
	log := &domain.ImportLog{
		ImportType: importType,
		ImportedBy: actor.UserID,
		FileName:   fileName,
		TotalRows:  len(rows),
		Status:     domain.ImportProcessing,
	}
	if err := s.logs.Create(log); err != nil {
		return nil, err
	}

	seen := newSeenSets()
	var accepted domain.RowDataList

	for i, row := range rows {
		if ctx.Err() != nil {
			break
		}
		// Data rows start at 2: row 1 is the header.
		rowNum := i + 2

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			switch importType {
			case domain.ImportStudents:
				return s.importStudentRow(tx, row, rowNum, seen)
			case domain.ImportFaculty:
				return s.importFacultyRow(tx, row, rowNum, seen)
			case domain.ImportSubjects:
				return s.importSubjectRow(tx, row, rowNum, seen)
			case domain.ImportSchedules:
				return s.importScheduleRow(tx, row, rowNum, seen)
			default:
				return domain.RowError{Row: rowNum, Reason: fmt.Sprintf("unsupported import type %q", importType)}
			}
		})
		if err != nil {
			log.ErrorLog = append(log.ErrorLog, toRowError(err, rowNum))
			log.FailedRows++
			continue
		}
		log.SuccessfulRows++
		accepted = append(accepted, row)
	}

	log.ImportData = accepted
	log.Status = finalStatus(log)
	if err := s.logs.Update(log); err != nil {
		return nil, err
	}
	return log, nil
}

func finalStatus(log *domain.ImportLog) domain.ImportStatus {
	switch {
	case log.SuccessfulRows == 0:
		return domain.ImportFailed
	case log.FailedRows == 0:
		return domain.ImportCompleted
	default:
		return domain.ImportPartial
	}
}

func toRowError(err error, rowNum int) domain.RowError {
	if re, ok := err.(domain.RowError); ok {
		return re
	}
	return domain.RowError{Row: rowNum, Reason: err.Error()}
}

func (s *ImportService) requireColumns(row ImportRow, rowNum int, columns ...string) error {
	for _, col := range columns {
		if strings.TrimSpace(row[col]) == "" {
			return domain.RowError{Row: rowNum, Field: col, Reason: "required value is missing"}
		}
	}
	return nil
}

func (s *ImportService) validEmail(email string, rowNum int) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return domain.RowError{Row: rowNum, Field: "email", Reason: "invalid email address"}
	}
	return nil
}

// importStudentRow creates the student, a login account with the date of
// birth as initial password (DDMMYYYY), and the companion parent account.
func (s *ImportService) importStudentRow(tx *gorm.DB, row ImportRow, rowNum int, seen *seenSets) error {
	if err := s.requireColumns(row, rowNum, "roll_number", "first_name", "last_name", "email", "date_of_birth"); err != nil {
		return err
	}

	rollNumber := strings.TrimSpace(row["roll_number"])
	email := strings.TrimSpace(row["email"])

	if err := s.validEmail(email, rowNum); err != nil {
		return err
	}
	dob, err := time.Parse("2006-01-02", strings.TrimSpace(row["date_of_birth"]))
	if err != nil {
		return domain.RowError{Row: rowNum, Field: "date_of_birth", Reason: "must be in YYYY-MM-DD format"}
	}

	if !seen.mark("roll", rollNumber) {
		return domain.RowError{Row: rowNum, Field: "roll_number", Reason: "duplicate roll number in file"}
	}

	var count int64
	tx.Model(&domain.Student{}).Where("roll_number = ? AND deleted_at IS NULL", rollNumber).Count(&count)
	if count > 0 {
		return domain.RowError{Row: rowNum, Field: "roll_number", Reason: fmt.Sprintf("student %s already exists", rollNumber)}
	}
	tx.Model(&domain.User{}).Where("username = ? AND deleted_at IS NULL", rollNumber).Count(&count)
	if count > 0 {
		return domain.RowError{Row: rowNum, Field: "roll_number", Reason: fmt.Sprintf("username %s already exists", rollNumber)}
	}

	var programID *uuid.UUID
	if code := strings.TrimSpace(row["program_code"]); code != "" {
		var program domain.Program
		if err := tx.Where("program_code = ? AND deleted_at IS NULL", code).First(&program).Error; err != nil {
			return domain.RowError{Row: rowNum, Field: "program_code", Reason: fmt.Sprintf("program %s not found", code)}
		}
		programID = &program.ID
	}
	var sectionID *uuid.UUID
	if name := strings.TrimSpace(row["section_name"]); name != "" {
		var section domain.Section
		if err := tx.Where("section_name = ? AND deleted_at IS NULL", name).First(&section).Error; err != nil {
			return domain.RowError{Row: rowNum, Field: "section_name", Reason: fmt.Sprintf("section %s not found", name)}
		}
		sectionID = &section.ID
	}
	var admissionYear *int
	if raw := strings.TrimSpace(row["admission_year"]); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1950 || year > 2100 {
			return domain.RowError{Row: rowNum, Field: "admission_year", Reason: "must be a valid year"}
		}
		admissionYear = &year
	}

	// Initial password is the date of birth as DDMMYYYY.
	password := dob.Format("02012006")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:     rollNumber,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		return err
	}

	student := &domain.Student{
		UserID:        user.ID,
		RollNumber:    rollNumber,
		FirstName:     strings.TrimSpace(row["first_name"]),
		LastName:      strings.TrimSpace(row["last_name"]),
		DateOfBirth:   &dob,
		Email:         email,
		Phone:         strings.TrimSpace(row["phone"]),
		GuardianName:  strings.TrimSpace(row["guardian_name"]),
		GuardianPhone: strings.TrimSpace(row["guardian_phone"]),
		Address:       strings.TrimSpace(row["address"]),
		ProgramID:     programID,
		SectionID:     sectionID,
		AdmissionYear: admissionYear,
		Gender:        strings.TrimSpace(row["gender"]),
		Status:        "active",
	}
	if err := tx.Create(student).Error; err != nil {
		return err
	}

	// Guardians sign in with <roll>_parent and the same initial password.
	parentUsername := rollNumber + "_parent"
	tx.Model(&domain.User{}).Where("username = ? AND deleted_at IS NULL", parentUsername).Count(&count)
	if count == 0 {
		parent := &domain.User{
			Username:     parentUsername,
			Email:        "parent_" + email,
			PasswordHash: string(hash),
			Role:         domain.RoleParent,
			IsActive:     true,
		}
		if err := tx.Create(parent).Error; err != nil {
			return err
		}
	}
	return nil
}

// importFacultyRow creates the faculty profile and a login account with the
// employee id as initial password.
func (s *ImportService) importFacultyRow(tx *gorm.DB, row ImportRow, rowNum int, seen *seenSets) error {
	if err := s.requireColumns(row, rowNum, "employee_id", "first_name", "last_name", "email"); err != nil {
		return err
	}

	employeeID := strings.TrimSpace(row["employee_id"])
	email := strings.TrimSpace(row["email"])

	if err := s.validEmail(email, rowNum); err != nil {
		return err
	}
	if !seen.mark("employee", employeeID) {
		return domain.RowError{Row: rowNum, Field: "employee_id", Reason: "duplicate employee id in file"}
	}

	var count int64
	tx.Model(&domain.Faculty{}).Where("employee_id = ? AND deleted_at IS NULL", employeeID).Count(&count)
	if count > 0 {
		return domain.RowError{Row: rowNum, Field: "employee_id", Reason: fmt.Sprintf("faculty %s already exists", employeeID)}
	}
	tx.Model(&domain.User{}).Where("username = ? AND deleted_at IS NULL", employeeID).Count(&count)
	if count > 0 {
		return domain.RowError{Row: rowNum, Field: "employee_id", Reason: fmt.Sprintf("username %s already exists", employeeID)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(employeeID), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:     employeeID,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleFaculty,
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		return err
	}

	faculty := &domain.Faculty{
		UserID:      user.ID,
		EmployeeID:  employeeID,
		FirstName:   strings.TrimSpace(row["first_name"]),
		LastName:    strings.TrimSpace(row["last_name"]),
		Email:       email,
		Phone:       strings.TrimSpace(row["phone"]),
		Designation: strings.TrimSpace(row["designation"]),
		Department:  strings.TrimSpace(row["department"]),
		Status:      "active",
	}
	return tx.Create(faculty).Error
}

func (s *ImportService) importSubjectRow(tx *gorm.DB, row ImportRow, rowNum int, seen *seenSets) error {
	if err := s.requireColumns(row, rowNum, "subject_code", "subject_name", "semester"); err != nil {
		return err
	}

	subjectCode := strings.TrimSpace(row["subject_code"])

	semester, err := strconv.Atoi(strings.TrimSpace(row["semester"]))
	if err != nil || semester < 1 || semester > 12 {
		return domain.RowError{Row: rowNum, Field: "semester", Reason: "must be a number between 1 and 12"}
	}

	credits := 4.0
	if raw := strings.TrimSpace(row["credits"]); raw != "" {
		credits, err = strconv.ParseFloat(raw, 64)
		if err != nil || credits < 0 {
			return domain.RowError{Row: rowNum, Field: "credits", Reason: "must be a non-negative number"}
		}
	}

	subjectType := strings.TrimSpace(row["subject_type"])
	if subjectType == "" {
		subjectType = "theory"
	}

	if !seen.mark("subject", subjectCode) {
		return domain.RowError{Row: rowNum, Field: "subject_code", Reason: "duplicate subject code in file"}
	}

	var count int64
	tx.Model(&domain.Subject{}).Where("subject_code = ? AND deleted_at IS NULL", subjectCode).Count(&count)
	if count > 0 {
		return domain.RowError{Row: rowNum, Field: "subject_code", Reason: fmt.Sprintf("subject %s already exists", subjectCode)}
	}

	var programID *uuid.UUID
	if code := strings.TrimSpace(row["program_code"]); code != "" {
		var program domain.Program
		if err := tx.Where("program_code = ? AND deleted_at IS NULL", code).First(&program).Error; err != nil {
			return domain.RowError{Row: rowNum, Field: "program_code", Reason: fmt.Sprintf("program %s not found", code)}
		}
		programID = &program.ID
	}

	subject := &domain.Subject{
		SubjectCode:    subjectCode,
		SubjectName:    strings.TrimSpace(row["subject_name"]),
		Credits:        credits,
		SubjectType:    subjectType,
		ProgramID:      programID,
		SemesterNumber: &semester,
	}
	return tx.Create(subject).Error
}

func (s *ImportService) importScheduleRow(tx *gorm.DB, row ImportRow, rowNum int, seen *seenSets) error {
	if err := s.requireColumns(row, rowNum, "subject_code", "faculty_employee_id", "section_name", "date", "start_time", "end_time"); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(row["date"]))
	if err != nil {
		return domain.RowError{Row: rowNum, Field: "date", Reason: "must be in YYYY-MM-DD format"}
	}
	startTime := strings.TrimSpace(row["start_time"])
	endTime := strings.TrimSpace(row["end_time"])
	if _, err := domain.ParseClock(startTime); err != nil {
		return domain.RowError{Row: rowNum, Field: "start_time", Reason: "must be in HH:MM format"}
	}
	if _, err := domain.ParseClock(endTime); err != nil {
		return domain.RowError{Row: rowNum, Field: "end_time", Reason: "must be in HH:MM format"}
	}
	if endTime <= startTime {
		return domain.RowError{Row: rowNum, Field: "end_time", Reason: "must be after start_time"}
	}

	classType := domain.ClassTheory
	if raw := strings.TrimSpace(row["class_type"]); raw != "" {
		switch domain.ClassType(raw) {
		case domain.ClassTheory, domain.ClassPractical:
			classType = domain.ClassType(raw)
		default:
			return domain.RowError{Row: rowNum, Field: "class_type", Reason: "must be theory or practical"}
		}
	}

	var subject domain.Subject
	if err := tx.Where("subject_code = ? AND deleted_at IS NULL", strings.TrimSpace(row["subject_code"])).First(&subject).Error; err != nil {
		return domain.RowError{Row: rowNum, Field: "subject_code", Reason: fmt.Sprintf("subject %s not found", row["subject_code"])}
	}
	var faculty domain.Faculty
	if err := tx.Where("employee_id = ? AND deleted_at IS NULL", strings.TrimSpace(row["faculty_employee_id"])).First(&faculty).Error; err != nil {
		return domain.RowError{Row: rowNum, Field: "faculty_employee_id", Reason: fmt.Sprintf("faculty %s not found", row["faculty_employee_id"])}
	}
	var section domain.Section
	if err := tx.Where("section_name = ? AND deleted_at IS NULL", strings.TrimSpace(row["section_name"])).First(&section).Error; err != nil {
		return domain.RowError{Row: rowNum, Field: "section_name", Reason: fmt.Sprintf("section %s not found", row["section_name"])}
	}

	slotKey := fmt.Sprintf("%s|%s|%s|%s|%s", subject.ID, faculty.ID, section.ID, date.Format("2006-01-02"), startTime)
	if !seen.mark("slot", slotKey) {
		return domain.RowError{Row: rowNum, Field: "start_time", Reason: "duplicate schedule slot in file"}
	}

	var count int64
	tx.Model(&domain.ClassSchedule{}).
		Where("subject_id = ? AND faculty_id = ? AND section_id = ? AND date = ? AND start_time = ? AND deleted_at IS NULL",
			subject.ID, faculty.ID, section.ID, date.Format("2006-01-02"), startTime).
		Count(&count)
	if count > 0 {
		return domain.RowError{Row: rowNum, Field: "start_time", Reason: "schedule slot already exists"}
	}

	schedule := &domain.ClassSchedule{
		SubjectID: subject.ID,
		FacultyID: faculty.ID,
		SectionID: section.ID,
		Room:      strings.TrimSpace(row["room"]),
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		ClassType: classType,
	}
	return tx.Create(schedule).Error
}
