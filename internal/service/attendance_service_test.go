package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
)

func newAttendanceService(db *gorm.DB) *AttendanceService {
	return NewAttendanceService(
		repository.NewAttendanceRepository(db),
		repository.NewScheduleRepository(db),
		repository.NewStudentRepository(db),
		newDiaryService(db),
	)
}

func (f *fixture) sessionRequest(marks ...dto.RecordMarkDTO) dto.CreateSessionRequest {
	return dto.CreateSessionRequest{
		ScheduleID:  f.schedule.ID,
		TopicTaught: "Binary search trees",
		Records:     marks,
	}
}

func (f *fixture) markAll(status domain.RecordStatus) []dto.RecordMarkDTO {
	marks := make([]dto.RecordMarkDTO, 0, len(f.students))
	for _, s := range f.students {
		marks = append(marks, dto.RecordMarkDTO{StudentID: s.ID, Status: string(status)})
	}
	return marks
}

func TestCreateSession_RecordsMarksAsDraft(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 4)
	svc := newAttendanceService(db)

	session, err := svc.CreateSession(f.actor, f.sessionRequest(f.markAll(domain.RecordPresent)...))
	require.NoError(t, err)

	assert.Equal(t, domain.SessionDraft, session.Status)
	assert.Nil(t, session.FinalizedAt)
	assert.Len(t, session.Records, 4)
	assert.Equal(t, "Binary search trees", session.TopicTaught)
}

func TestCreateSession_OnePerScheduleSlot(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 2)
	svc := newAttendanceService(db)

	_, err := svc.CreateSession(f.actor, f.sessionRequest(f.markAll(domain.RecordPresent)...))
	require.NoError(t, err)

	_, err = svc.CreateSession(f.actor, f.sessionRequest(f.markAll(domain.RecordPresent)...))
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateSession_RejectsDuplicateStudent(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 2)
	svc := newAttendanceService(db)

	marks := []dto.RecordMarkDTO{
		{StudentID: f.students[0].ID, Status: string(domain.RecordPresent)},
		{StudentID: f.students[0].ID, Status: string(domain.RecordAbsent)},
	}
	_, err := svc.CreateSession(f.actor, f.sessionRequest(marks...))
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateSession_RejectsUnknownStudent(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 1)
	svc := newAttendanceService(db)

	marks := []dto.RecordMarkDTO{{StudentID: uuid.New(), Status: string(domain.RecordPresent)}}
	_, err := svc.CreateSession(f.actor, f.sessionRequest(marks...))
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateSession_OnlyOwningFaculty(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 1)
	svc := newAttendanceService(db)

	otherID := uuid.New()
	other := domain.Actor{UserID: uuid.New(), Role: domain.RoleFaculty, FacultyID: &otherID}
	_, err := svc.CreateSession(other, f.sessionRequest(f.markAll(domain.RecordPresent)...))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFinalizeSession_LocksAndDerivesDiary(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 3)
	svc := newAttendanceService(db)

	created, err := svc.CreateSession(f.actor, f.sessionRequest(f.markAll(domain.RecordPresent)...))
	require.NoError(t, err)

	session, diary, err := svc.FinalizeSession(f.actor, created.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.SessionFinalized, session.Status)
	assert.NotNil(t, session.FinalizedAt)
	require.NotNil(t, diary)
	assert.Equal(t, domain.DiaryDraft, diary.Status)
	assert.Equal(t, 3, diary.StudentsPresent)
	assert.Equal(t, 3, diary.TotalStudents)
}

func TestFinalizeSession_RepeatReturnsSameDiary(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 2)
	svc := newAttendanceService(db)

	created, err := svc.CreateSession(f.actor, f.sessionRequest(f.markAll(domain.RecordPresent)...))
	require.NoError(t, err)

	_, first, err := svc.FinalizeSession(f.actor, created.ID)
	require.NoError(t, err)

	_, second, err := svc.FinalizeSession(f.actor, created.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.DiaryNumber, second.DiaryNumber)

	var count int64
	db.Model(&domain.WorkDiary{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFinalizeSession_RequiresRecords(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newAttendanceService(db)

	created, err := svc.CreateSession(f.actor, f.sessionRequest())
	require.NoError(t, err)

	_, _, err = svc.FinalizeSession(f.actor, created.ID)
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpdateSession_FinalizedIsImmutable(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 2)
	svc := newAttendanceService(db)

	created, err := svc.CreateSession(f.actor, f.sessionRequest(f.markAll(domain.RecordPresent)...))
	require.NoError(t, err)
	_, _, err = svc.FinalizeSession(f.actor, created.ID)
	require.NoError(t, err)

	topic := "Changed"
	_, err = svc.UpdateSession(f.actor, created.ID, dto.UpdateSessionRequest{TopicTaught: &topic})
	assert.ErrorIs(t, err, domain.ErrInvalidSessionState)
}

func TestUpdateSession_ReplacesMarksWhileDraft(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 2)
	svc := newAttendanceService(db)

	created, err := svc.CreateSession(f.actor, f.sessionRequest(f.markAll(domain.RecordAbsent)...))
	require.NoError(t, err)

	updated, err := svc.UpdateSession(f.actor, created.ID, dto.UpdateSessionRequest{
		Records: f.markAll(domain.RecordPresent),
	})
	require.NoError(t, err)

	require.Len(t, updated.Records, 2)
	for _, rec := range updated.Records {
		assert.Equal(t, domain.RecordPresent, rec.Status)
	}
}

func TestCampusCheckIn_ReusesOpenEntry(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newAttendanceService(db)

	first, err := svc.CheckIn(f.actor.UserID, "qr")
	require.NoError(t, err)

	second, err := svc.CheckIn(f.actor.UserID, "qr")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	closed, err := svc.CheckOut(f.actor.UserID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, closed.ID)
	assert.NotNil(t, closed.CheckOutAt)

	// Once closed, checking in again opens a fresh entry.
	third, err := svc.CheckIn(f.actor.UserID, "manual")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestCheckOut_WithoutOpenEntryFails(t *testing.T) {
	db := setupServiceDB(t)
	f := newFixture(t, db, 0)
	svc := newAttendanceService(db)

	_, err := svc.CheckOut(f.actor.UserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
