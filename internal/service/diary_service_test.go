package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
)

// setupServiceDB creates an in-memory SQLite database for testing
func setupServiceDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(domain.AllModels()...)
	require.NoError(t, err)

	return db
}

// fixture carries the reference rows most tests need: a faculty with a
// login, a section of students, one subject and one scheduled class.
type fixture struct {
	db       *gorm.DB
	faculty  domain.Faculty
	actor    domain.Actor
	program  domain.Program
	section  domain.Section
	subject  domain.Subject
	schedule domain.ClassSchedule
	students []domain.Student
}

func newFixture(t *testing.T, db *gorm.DB, studentCount int) *fixture {
	t.Helper()

	f := &fixture{db: db}

	facultyUser := domain.User{
		Username:     "EMP001",
		Email:        "asha.rao@college.edu",
		PasswordHash: "x",
		Role:         domain.RoleFaculty,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&facultyUser).Error)

	f.faculty = domain.Faculty{
		UserID:     facultyUser.ID,
		EmployeeID: "EMP001",
		FirstName:  "Asha",
		LastName:   "Rao",
		Email:      facultyUser.Email,
		Status:     "active",
	}
	require.NoError(t, db.Create(&f.faculty).Error)

	f.actor = domain.Actor{
		UserID:    facultyUser.ID,
		Role:      domain.RoleFaculty,
		FacultyID: &f.faculty.ID,
	}

	f.program = domain.Program{ProgramCode: "BCA", ProgramName: "Bachelor of Computer Applications", DurationYears: 3}
	require.NoError(t, db.Create(&f.program).Error)

	f.section = domain.Section{SectionName: "BCA-A", ProgramID: f.program.ID, CurrentSemester: 3}
	require.NoError(t, db.Create(&f.section).Error)

	f.subject = domain.Subject{SubjectCode: "BCA301", SubjectName: "Data Structures", Credits: 4, SubjectType: "theory"}
	require.NoError(t, db.Create(&f.subject).Error)

	f.schedule = domain.ClassSchedule{
		SubjectID: f.subject.ID,
		FacultyID: f.faculty.ID,
		SectionID: f.section.ID,
		Room:      "R101",
		Date:      time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
		ClassType: domain.ClassTheory,
	}
	require.NoError(t, db.Create(&f.schedule).Error)

	for i := 0; i < studentCount; i++ {
		roll := fmt.Sprintf("U03%04d", i+1)
		user := domain.User{
			Username:     roll,
			Email:        roll + "@student.college.edu",
			PasswordHash: "x",
			Role:         domain.RoleStudent,
			IsActive:     true,
		}
		require.NoError(t, db.Create(&user).Error)

		student := domain.Student{
			UserID:     user.ID,
			RollNumber: roll,
			FirstName:  "Student",
			LastName:   fmt.Sprintf("%d", i+1),
			Email:      user.Email,
			SectionID:  &f.section.ID,
			Status:     "active",
		}
		require.NoError(t, db.Create(&student).Error)
		f.students = append(f.students, student)
	}

	return f
}

// finalizedSession inserts a finalized session where the first present
// students are marked present, the next late ones late, and the rest absent.
func (f *fixture) finalizedSession(t *testing.T, present, late int) domain.AttendanceSession {
	t.Helper()

	now := time.Now()
	session := domain.AttendanceSession{
		ScheduleID:    f.schedule.ID,
		TakenByUserID: f.actor.UserID,
		TakenAt:       now,
		Status:        domain.SessionFinalized,
		FinalizedAt:   &now,
		TopicTaught:   "Binary search trees",
	}
	require.NoError(t, f.db.Create(&session).Error)

	for i, student := range f.students {
		status := domain.RecordAbsent
		if i < present {
			status = domain.RecordPresent
		} else if i < present+late {
			status = domain.RecordLate
		}
		record := domain.AttendanceRecord{
			SessionID: session.ID,
			StudentID: student.ID,
			Status:    status,
		}
		require.NoError(t, f.db.Create(&record).Error)
	}
	return session
}

func newDiaryService(db *gorm.DB) *DiaryService {
	return NewDiaryService(db, repository.NewDiaryRepository(db), repository.NewAttendanceRepository(db))
}

func manualDiaryRequest(date string) dto.CreateDiaryRequest {
	return dto.CreateDiaryRequest{
		Date:          date,
		StartTime:     "14:00",
		EndTime:       "15:30",
		ActivityType:  string(domain.ActivityMeeting),
		ActivityTitle: "Department meeting",
		TopicsCovered: "Exam planning",
	}
}

func TestDeriveFromSession_BuildsDraftDiaryFromRecords(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 30)
	svc := newDiaryService(db)

	session := f.finalizedSession(t, 25, 3)

	diary, err := svc.DeriveFromSession(session.ID)
	require.NoError(t, err)

	assert.Equal(t, "WD-2026-0001", diary.DiaryNumber)
	assert.Equal(t, domain.DiaryDraft, diary.Status)
	assert.Equal(t, domain.ActivityTheoryClass, diary.ActivityType)
	assert.Equal(t, 28, diary.StudentsPresent, "present and late both count")
	assert.Equal(t, 30, diary.TotalStudents)
	assert.Equal(t, "Data Structures - BCA-A", diary.ActivityTitle)
	assert.Equal(t, "Binary search trees", diary.TopicsCovered)
	assert.Equal(t, "R101", diary.Location)
	assert.Equal(t, "2026-2027", diary.AcademicYear)
	assert.Equal(t, 1.0, diary.DurationHours)
	require.NotNil(t, diary.AttendanceSessionID)
	assert.Equal(t, session.ID, *diary.AttendanceSessionID)
}

func TestDeriveFromSession_SecondCallReturnsExistingDiary(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 5)
	svc := newDiaryService(db)

	session := f.finalizedSession(t, 5, 0)

	first, err := svc.DeriveFromSession(session.ID)
	require.NoError(t, err)

	// Approve it so the second derivation cannot silently reset status.
	first.Status = domain.DiaryApproved
	require.NoError(t, db.Save(first).Error)

	second, err := svc.DeriveFromSession(session.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.DiaryNumber, second.DiaryNumber)
	assert.Equal(t, domain.DiaryApproved, second.Status)

	var count int64
	db.Model(&domain.WorkDiary{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeriveFromSession_RejectsDraftSession(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 3)
	svc := newDiaryService(db)

	session := domain.AttendanceSession{
		ScheduleID:    f.schedule.ID,
		TakenByUserID: f.actor.UserID,
		TakenAt:       time.Now(),
		Status:        domain.SessionDraft,
	}
	require.NoError(t, db.Create(&session).Error)

	_, err := svc.DeriveFromSession(session.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidSessionState)
}

func TestDiaryNumbers_SequentialWithinYear(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)

	for i := 1; i <= 3; i++ {
		diary, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("WD-2026-%04d", i), diary.DiaryNumber)
	}
}

func TestDiaryNumbers_RestartEachYear(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)

	first, err := svc.CreateManual(f.actor, manualDiaryRequest("2025-11-01"))
	require.NoError(t, err)
	assert.Equal(t, "WD-2025-0001", first.DiaryNumber)

	second, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-01-05"))
	require.NoError(t, err)
	assert.Equal(t, "WD-2026-0001", second.DiaryNumber)

	third, err := svc.CreateManual(f.actor, manualDiaryRequest("2025-12-31"))
	require.NoError(t, err)
	assert.Equal(t, "WD-2025-0002", third.DiaryNumber)
}

// TestDiaryNumbers_RetryAfterUniqueConflict plays the losing side of the
// allocation race: just before the insert lands, another diary claims the
// computed number, so the unique index rejects the insert and the allocator
// must re-read the max and try again.
func TestDiaryNumbers_RetryAfterUniqueConflict(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)

	var attempts int
	var injecting, collided bool
	err := db.Callback().Create().Before("gorm:create").Register("steal_diary_number", func(tx *gorm.DB) {
		if injecting {
			return
		}
		target, ok := tx.Statement.Dest.(*domain.WorkDiary)
		if !ok {
			return
		}
		attempts++
		if collided {
			return
		}
		collided = true
		decoy := domain.WorkDiary{
			DiaryNumber:   target.DiaryNumber,
			FacultyID:     f.faculty.ID,
			Date:          target.Date,
			StartTime:     "08:00",
			EndTime:       "09:00",
			ActivityType:  domain.ActivityOther,
			ActivityTitle: "Occupied slot",
			Status:        domain.DiaryDraft,
		}
		injecting = true
		_ = tx.Session(&gorm.Session{NewDB: true}).Create(&decoy).Error
		injecting = false
	})
	require.NoError(t, err)
	defer db.Callback().Create().Remove("steal_diary_number")

	diary, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "WD-2026-0001", diary.DiaryNumber)
	assert.GreaterOrEqual(t, attempts, 2, "the conflicting insert forces a second attempt")

	// The follow-up allocation is undisturbed by the rolled-back conflict.
	next, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "WD-2026-0002", next.DiaryNumber)
}

func TestDiaryNumbers_CapacityExhausted(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)

	last := domain.WorkDiary{
		DiaryNumber:   "WD-2026-9999",
		FacultyID:     f.faculty.ID,
		Date:          time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		StartTime:     "09:00",
		EndTime:       "10:00",
		ActivityType:  domain.ActivityOther,
		ActivityTitle: "Last slot",
		Status:        domain.DiaryDraft,
	}
	require.NoError(t, db.Create(&last).Error)

	_, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	assert.ErrorIs(t, err, domain.ErrDiaryCapacityExceeded)
}

func TestAcademicYearFor_JuneBoundary(t *testing.T) {
	may := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	june := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-2026", AcademicYearFor(may))
	assert.Equal(t, "2026-2027", AcademicYearFor(june))
}

func TestDiaryWorkflow_SubmitApprove(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)

	diary, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)

	submitted, err := svc.Submit(f.actor, diary.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DiarySubmitted, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	hod := domain.Actor{UserID: uuid.New(), Role: domain.RoleHOD}
	approved, err := svc.Approve(hod, diary.ID, "Looks good")
	require.NoError(t, err)
	assert.Equal(t, domain.DiaryApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, hod.UserID, *approved.ApprovedBy)
	assert.Equal(t, "Looks good", approved.ApprovalRemarks)
}

func TestDiaryWorkflow_ReviewMirroredOntoSession(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 3)
	svc := newDiaryService(db)

	session := f.finalizedSession(t, 2, 1)
	diary, err := svc.DeriveFromSession(session.ID)
	require.NoError(t, err)

	_, err = svc.Submit(f.actor, diary.ID)
	require.NoError(t, err)

	hod := domain.Actor{UserID: uuid.New(), Role: domain.RoleHOD}
	_, err = svc.Approve(hod, diary.ID, "Verified")
	require.NoError(t, err)

	var got domain.AttendanceSession
	require.NoError(t, db.First(&got, "id = ?", session.ID).Error)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, hod.UserID, *got.ApprovedBy)
	assert.NotNil(t, got.ApprovedAt)
}

func TestDiaryWorkflow_RejectThenResubmit(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)
	hod := domain.Actor{UserID: uuid.New(), Role: domain.RoleHOD}

	diary, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)

	_, err = svc.Submit(f.actor, diary.ID)
	require.NoError(t, err)

	rejected, err := svc.Reject(hod, diary.ID, "Missing topic details")
	require.NoError(t, err)
	assert.Equal(t, domain.DiaryRejected, rejected.Status)
	assert.Nil(t, rejected.ApprovedAt)
	assert.Nil(t, rejected.ApprovedBy, "a rejected diary carries no approver")

	// A rejected diary may be resubmitted directly.
	resubmitted, err := svc.Submit(f.actor, diary.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DiarySubmitted, resubmitted.Status)
}

func TestDiaryWorkflow_EditRejectedReturnsToDraft(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)
	hod := domain.Actor{UserID: uuid.New(), Role: domain.RoleHOD}

	diary, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)
	_, err = svc.Submit(f.actor, diary.ID)
	require.NoError(t, err)
	_, err = svc.Reject(hod, diary.ID, "Wrong date")
	require.NoError(t, err)

	newDate := "2026-03-11"
	edited, err := svc.Update(f.actor, diary.ID, dto.UpdateDiaryRequest{Date: &newDate})
	require.NoError(t, err)
	assert.Equal(t, domain.DiaryDraft, edited.Status)
	assert.Equal(t, "2026-03-11", edited.Date.Format("2006-01-02"))
	assert.Equal(t, "Wrong date", edited.ApprovalRemarks, "remarks stay visible after rework")
}

func TestDiaryWorkflow_SubmittedAndApprovedAreLocked(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)
	hod := domain.Actor{UserID: uuid.New(), Role: domain.RoleHOD}

	diary, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)
	_, err = svc.Submit(f.actor, diary.ID)
	require.NoError(t, err)

	title := "Changed"
	_, err = svc.Update(f.actor, diary.ID, dto.UpdateDiaryRequest{ActivityTitle: &title})
	assert.ErrorIs(t, err, domain.ErrLockedForEditing)

	_, err = svc.Approve(hod, diary.ID, "")
	require.NoError(t, err)

	_, err = svc.Update(f.actor, diary.ID, dto.UpdateDiaryRequest{ActivityTitle: &title})
	assert.ErrorIs(t, err, domain.ErrLockedForEditing)
}

func TestDiaryDelete_DraftAndRejectedOnly(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)

	diary, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(f.actor, diary.ID))
	_, err = svc.Get(f.actor, diary.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Submitted entries are part of the review trail and cannot go away.
	diary, err = svc.CreateManual(f.actor, manualDiaryRequest("2026-03-11"))
	require.NoError(t, err)
	_, err = svc.Submit(f.actor, diary.ID)
	require.NoError(t, err)

	err = svc.Delete(f.actor, diary.ID)
	assert.ErrorIs(t, err, domain.ErrLockedForEditing)
}

func TestDiaryDelete_OnlyOwnerMayDelete(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)

	diary, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)

	otherID := uuid.New()
	stranger := domain.Actor{UserID: uuid.New(), Role: domain.RoleFaculty, FacultyID: &otherID}
	err = svc.Delete(stranger, diary.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDiaryWorkflow_InvalidTransitionsRejected(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)
	hod := domain.Actor{UserID: uuid.New(), Role: domain.RoleHOD}

	diary, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)

	// Approving a draft skips the review queue.
	_, err = svc.Approve(hod, diary.ID, "")
	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.DiaryDraft, transitionErr.From)
	assert.Equal(t, domain.DiaryApproved, transitionErr.Target)
	assert.Contains(t, transitionErr.Error(), `"draft" -> "approved"`, "the error names the state pair")

	// Submitting twice.
	_, err = svc.Submit(f.actor, diary.ID)
	require.NoError(t, err)
	_, err = svc.Submit(f.actor, diary.ID)
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.DiarySubmitted, transitionErr.From)

	// Rejecting an approved diary.
	_, err = svc.Approve(hod, diary.ID, "")
	require.NoError(t, err)
	_, err = svc.Reject(hod, diary.ID, "Too late")
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.DiaryApproved, transitionErr.From)
}

func TestDiaryWorkflow_RejectRequiresRemarks(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)
	hod := domain.Actor{UserID: uuid.New(), Role: domain.RoleHOD}

	diary, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)
	_, err = svc.Submit(f.actor, diary.ID)
	require.NoError(t, err)

	_, err = svc.Reject(hod, diary.ID, "   ")
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestDiaryWorkflow_ManualSubmitNeedsTopics(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)

	req := manualDiaryRequest("2026-03-10")
	req.TopicsCovered = ""
	req.ActivityDescription = ""
	diary, err := svc.CreateManual(f.actor, req)
	require.NoError(t, err)

	_, err = svc.Submit(f.actor, diary.ID)
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestDiaryAccess_FacultyCannotTouchOthersDiaries(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)

	diary, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)

	otherID := uuid.New()
	other := domain.Actor{UserID: uuid.New(), Role: domain.RoleFaculty, FacultyID: &otherID}

	_, err = svc.Submit(other, diary.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Get(other, diary.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Faculty cannot review at all, even their own.
	_, err = svc.Submit(f.actor, diary.ID)
	require.NoError(t, err)
	_, err = svc.Approve(f.actor, diary.ID, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDiaryList_FacultyScopedToOwnEntries(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newDiaryService(db)

	_, err := svc.CreateManual(f.actor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)

	otherUser := domain.User{Username: "EMP999", Email: "other@college.edu", PasswordHash: "x", Role: domain.RoleFaculty, IsActive: true}
	require.NoError(t, db.Create(&otherUser).Error)
	otherFaculty := domain.Faculty{UserID: otherUser.ID, EmployeeID: "EMP999", FirstName: "Other", LastName: "Person", Status: "active"}
	require.NoError(t, db.Create(&otherFaculty).Error)
	otherActor := domain.Actor{UserID: otherUser.ID, Role: domain.RoleFaculty, FacultyID: &otherFaculty.ID}
	_, err = svc.CreateManual(otherActor, manualDiaryRequest("2026-03-10"))
	require.NoError(t, err)

	// The filter asks for everything; scoping still wins.
	mine, total, err := svc.List(f.actor, repository.DiaryFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, f.faculty.ID, mine[0].FacultyID)

	hod := domain.Actor{UserID: uuid.New(), Role: domain.RoleHOD}
	all, total, err := svc.List(hod, repository.DiaryFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}
