package repository

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
)

// setupDiaryTestDB creates an in-memory SQLite database for testing
func setupDiaryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&domain.WorkDiary{}, &domain.Faculty{}, &domain.Subject{}, &domain.Section{})
	require.NoError(t, err)

	return db
}

func insertDiary(t *testing.T, db *gorm.DB, number string, facultyID uuid.UUID, date time.Time, status domain.DiaryStatus, hours float64) domain.WorkDiary {
	t.Helper()
	diary := domain.WorkDiary{
		DiaryNumber:   number,
		FacultyID:     facultyID,
		Date:          date,
		StartTime:     "09:00",
		EndTime:       "10:00",
		DurationHours: hours,
		ActivityType:  domain.ActivityTheoryClass,
		ActivityTitle: "Session " + number,
		Status:        status,
	}
	require.NoError(t, db.Create(&diary).Error)
	return diary
}

func TestMaxSequenceForYear_IgnoresOtherYears(t *testing.T) {
	db := setupDiaryTestDB(t)
	repo := NewDiaryRepository(db)
	facultyID := uuid.New()

	max, err := repo.MaxSequenceForYear(2026)
	require.NoError(t, err)
	assert.Equal(t, 0, max, "empty table yields zero")

	insertDiary(t, db, "WD-2025-0042", facultyID, time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), domain.DiaryDraft, 1)
	insertDiary(t, db, "WD-2026-0007", facultyID, time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC), domain.DiaryDraft, 1)
	insertDiary(t, db, "WD-2026-0011", facultyID, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), domain.DiaryDraft, 1)

	max, err = repo.MaxSequenceForYear(2026)
	require.NoError(t, err)
	assert.Equal(t, 11, max)

	max, err = repo.MaxSequenceForYear(2025)
	require.NoError(t, err)
	assert.Equal(t, 42, max)
}

func TestMaxSequenceForYear_ParsesFourDigitPadding(t *testing.T) {
	db := setupDiaryTestDB(t)
	repo := NewDiaryRepository(db)
	facultyID := uuid.New()

	// Padded and unpadded forms compare numerically, not lexically.
	insertDiary(t, db, "WD-2026-0999", facultyID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), domain.DiaryDraft, 1)
	insertDiary(t, db, "WD-2026-1000", facultyID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), domain.DiaryDraft, 1)

	max, err := repo.MaxSequenceForYear(2026)
	require.NoError(t, err)
	assert.Equal(t, 1000, max)
}

func TestDiaryList_FiltersCombine(t *testing.T) {
	db := setupDiaryTestDB(t)
	repo := NewDiaryRepository(db)

	facultyA := uuid.New()
	facultyB := uuid.New()
	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	insertDiary(t, db, "WD-2026-0001", facultyA, march, domain.DiaryDraft, 1)
	insertDiary(t, db, "WD-2026-0002", facultyA, april, domain.DiarySubmitted, 1)
	insertDiary(t, db, "WD-2026-0003", facultyB, april, domain.DiarySubmitted, 1)

	status := domain.DiarySubmitted
	items, total, err := repo.List(DiaryFilter{FacultyID: &facultyA, Status: &status}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "WD-2026-0002", items[0].DiaryNumber)

	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	items, total, err = repo.List(DiaryFilter{DateFrom: &from}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
}

func TestDiaryList_Paginates(t *testing.T) {
	db := setupDiaryTestDB(t)
	repo := NewDiaryRepository(db)
	facultyID := uuid.New()

	for i := 1; i <= 5; i++ {
		date := time.Date(2026, 3, i, 0, 0, 0, 0, time.UTC)
		insertDiary(t, db, fmt.Sprintf("WD-2026-%04d", i), facultyID, date, domain.DiaryDraft, 1)
	}

	page1, total, err := repo.List(DiaryFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page1, 2)

	page3, _, err := repo.List(DiaryFilter{}, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestHoursInRange_SumsOnlyWindow(t *testing.T) {
	db := setupDiaryTestDB(t)
	repo := NewDiaryRepository(db)
	facultyID := uuid.New()

	insertDiary(t, db, "WD-2026-0001", facultyID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), domain.DiaryApproved, 1.5)
	insertDiary(t, db, "WD-2026-0002", facultyID, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), domain.DiaryApproved, 2)
	insertDiary(t, db, "WD-2026-0003", facultyID, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), domain.DiaryApproved, 3)

	hours, err := repo.HoursInRange(facultyID,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3.5, hours)
}

func TestFindBySessionID_MissingReturnsNotFound(t *testing.T) {
	db := setupDiaryTestDB(t)
	repo := NewDiaryRepository(db)

	_, err := repo.FindBySessionID(uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
