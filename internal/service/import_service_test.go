package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
)

func newImportService(db *gorm.DB) *ImportService {
	return NewImportService(db, repository.NewImportRepository(db))
}

func studentRow(roll string) ImportRow {
	return ImportRow{
		"roll_number":   roll,
		"first_name":    "Rahul",
		"last_name":     "Kumar",
		"email":         roll + "@student.college.edu",
		"date_of_birth": "2005-06-15",
	}
}

func TestImportStudents_AllRowsAccepted(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newImportService(db)

	rows := []ImportRow{studentRow("U0301"), studentRow("U0302"), studentRow("U0303")}
	log, err := svc.Run(context.Background(), domain.ImportStudents, "students.csv", rows, f.actor)
	require.NoError(t, err)

	assert.Equal(t, domain.ImportCompleted, log.Status)
	assert.Equal(t, 3, log.TotalRows)
	assert.Equal(t, 3, log.SuccessfulRows)
	assert.Equal(t, 0, log.FailedRows)
	assert.Empty(t, log.ErrorLog)
	assert.Len(t, log.ImportData, 3)

	var students int64
	db.Model(&domain.Student{}).Count(&students)
	assert.Equal(t, int64(3), students)

	// Each student gets a login plus a parent login.
	var user domain.User
	require.NoError(t, db.Where("username = ?", "U0301").First(&user).Error)
	assert.Equal(t, domain.RoleStudent, user.Role)

	var parent domain.User
	require.NoError(t, db.Where("username = ?", "U0301_parent").First(&parent).Error)
	assert.Equal(t, domain.RoleParent, parent.Role)
	assert.Equal(t, "parent_U0301@student.college.edu", parent.Email)
}

func TestImportStudents_BadRowDoesNotAbortSiblings(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newImportService(db)

	rows := make([]ImportRow, 0, 10)
	for i := 1; i <= 10; i++ {
		row := studentRow(fmt.Sprintf("U03%02d", i))
		if i == 3 {
			row["email"] = ""
		}
		rows = append(rows, row)
	}

	log, err := svc.Run(context.Background(), domain.ImportStudents, "students.csv", rows, f.actor)
	require.NoError(t, err)

	assert.Equal(t, domain.ImportPartial, log.Status)
	assert.Equal(t, 10, log.TotalRows)
	assert.Equal(t, 9, log.SuccessfulRows)
	assert.Equal(t, 1, log.FailedRows)
	require.Len(t, log.ErrorLog, 1)
	// The header is row 1, so the third data row reports as row 4.
	assert.Equal(t, 4, log.ErrorLog[0].Row)
	assert.Equal(t, "email", log.ErrorLog[0].Field)

	var students int64
	db.Model(&domain.Student{}).Count(&students)
	assert.Equal(t, int64(9), students, "committed rows survive the failed one")
}

func TestImportStudents_DuplicateInFileRejected(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newImportService(db)

	rows := []ImportRow{studentRow("U0301"), studentRow("U0301")}
	log, err := svc.Run(context.Background(), domain.ImportStudents, "students.csv", rows, f.actor)
	require.NoError(t, err)

	assert.Equal(t, domain.ImportPartial, log.Status)
	assert.Equal(t, 1, log.SuccessfulRows)
	assert.Equal(t, 1, log.FailedRows)
	require.Len(t, log.ErrorLog, 1)
	assert.Equal(t, 3, log.ErrorLog[0].Row)
	assert.Equal(t, "roll_number", log.ErrorLog[0].Field)
}

func TestImportStudents_ExistingRollRejected(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 1)
	svc := newImportService(db)

	rows := []ImportRow{studentRow(f.students[0].RollNumber)}
	log, err := svc.Run(context.Background(), domain.ImportStudents, "students.csv", rows, f.actor)
	require.NoError(t, err)

	assert.Equal(t, domain.ImportFailed, log.Status)
	assert.Equal(t, 1, log.FailedRows)
}

func TestImport_EmptyFileEndsFailed(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newImportService(db)

	log, err := svc.Run(context.Background(), domain.ImportStudents, "empty.csv", nil, f.actor)
	require.NoError(t, err)

	assert.Equal(t, domain.ImportFailed, log.Status)
	assert.Equal(t, 0, log.TotalRows)
}

func TestImport_CancelledContextKeepsCommittedRows(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newImportService(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := []ImportRow{studentRow("U0301"), studentRow("U0302")}
	log, err := svc.Run(ctx, domain.ImportStudents, "students.csv", rows, f.actor)
	require.NoError(t, err)

	// No row was processed, so the log closes as failed.
	assert.Equal(t, domain.ImportFailed, log.Status)
	assert.Equal(t, 0, log.SuccessfulRows)
}

func TestImportFaculty_CreatesLoginAccount(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newImportService(db)

	rows := []ImportRow{{
		"employee_id": "EMP042",
		"first_name":  "Meera",
		"last_name":   "Iyer",
		"email":       "meera.iyer@college.edu",
		"designation": "Assistant Professor",
	}}
	log, err := svc.Run(context.Background(), domain.ImportFaculty, "faculty.csv", rows, f.actor)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportCompleted, log.Status)

	var faculty domain.Faculty
	require.NoError(t, db.Where("employee_id = ?", "EMP042").First(&faculty).Error)
	assert.Equal(t, "Assistant Professor", faculty.Designation)

	var user domain.User
	require.NoError(t, db.Where("username = ?", "EMP042").First(&user).Error)
	assert.Equal(t, domain.RoleFaculty, user.Role)
}

func TestImportSubjects_DefaultsAndValidation(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newImportService(db)

	rows := []ImportRow{
		{"subject_code": "BCA401", "subject_name": "Computer Networks", "semester": "4"},
		{"subject_code": "BCA402", "subject_name": "Web Programming", "semester": "13"},
	}
	log, err := svc.Run(context.Background(), domain.ImportSubjects, "subjects.csv", rows, f.actor)
	require.NoError(t, err)

	assert.Equal(t, domain.ImportPartial, log.Status)
	require.Len(t, log.ErrorLog, 1)
	assert.Equal(t, "semester", log.ErrorLog[0].Field)

	var subject domain.Subject
	require.NoError(t, db.Where("subject_code = ?", "BCA401").First(&subject).Error)
	assert.Equal(t, 4.0, subject.Credits, "credits default to 4")
	assert.Equal(t, "theory", subject.SubjectType)
}

func TestImportSchedules_ResolvesReferences(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newImportService(db)

	rows := []ImportRow{
		{
			"subject_code":        f.subject.SubjectCode,
			"faculty_employee_id": f.faculty.EmployeeID,
			"section_name":        f.section.SectionName,
			"date":                "2026-09-07",
			"start_time":          "10:00",
			"end_time":            "11:00",
			"room":                "R202",
			"class_type":          "practical",
		},
		{
			"subject_code":        "NOPE999",
			"faculty_employee_id": f.faculty.EmployeeID,
			"section_name":        f.section.SectionName,
			"date":                "2026-09-07",
			"start_time":          "11:00",
			"end_time":            "12:00",
		},
	}
	log, err := svc.Run(context.Background(), domain.ImportSchedules, "schedules.csv", rows, f.actor)
	require.NoError(t, err)

	assert.Equal(t, domain.ImportPartial, log.Status)
	require.Len(t, log.ErrorLog, 1)
	assert.Equal(t, "subject_code", log.ErrorLog[0].Field)

	var schedule domain.ClassSchedule
	require.NoError(t, db.Where("room = ?", "R202").First(&schedule).Error)
	assert.Equal(t, f.subject.ID, schedule.SubjectID)
	assert.Equal(t, f.faculty.ID, schedule.FacultyID)
	assert.Equal(t, domain.ClassPractical, schedule.ClassType)
	assert.Equal(t, "10:00", schedule.StartTime)
}

func TestImportSchedules_RejectsBackwardSlot(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newImportService(db)

	rows := []ImportRow{{
		"subject_code":        f.subject.SubjectCode,
		"faculty_employee_id": f.faculty.EmployeeID,
		"section_name":        f.section.SectionName,
		"date":                "2026-09-07",
		"start_time":          "11:00",
		"end_time":            "10:00",
	}}
	log, err := svc.Run(context.Background(), domain.ImportSchedules, "schedules.csv", rows, f.actor)
	require.NoError(t, err)

	assert.Equal(t, domain.ImportFailed, log.Status)
	require.Len(t, log.ErrorLog, 1)
	assert.Equal(t, "end_time", log.ErrorLog[0].Field)
}
