package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

type DiaryRepository struct {
	db *gorm.DB
}

func NewDiaryRepository(db *gorm.DB) *DiaryRepository {
	return &DiaryRepository{db: db}
}

// WithTx rebinds the repository to an open transaction.
func (r *DiaryRepository) WithTx(tx *gorm.DB) *DiaryRepository {
	return &DiaryRepository{db: tx}
}

// DB exposes the underlying handle for transaction scoping in services.
func (r *DiaryRepository) DB() *gorm.DB {
	return r.db
}

func (r *DiaryRepository) Create(diary *domain.WorkDiary) error {
	return r.db.Create(diary).Error
}

func (r *DiaryRepository) FindByID(id uuid.UUID) (*domain.WorkDiary, error) {
	var diary domain.WorkDiary
	err := r.db.Preload("Faculty").Preload("Subject").Preload("Section").
		Where("id = ? AND deleted_at IS NULL", id).First(&diary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &diary, nil
}

func (r *DiaryRepository) FindByDiaryNumber(number string) (*domain.WorkDiary, error) {
	var diary domain.WorkDiary
	err := r.db.Where("diary_number = ? AND deleted_at IS NULL", number).First(&diary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &diary, nil
}

// FindBySessionID resolves the diary derived from an attendance session.
func (r *DiaryRepository) FindBySessionID(sessionID uuid.UUID) (*domain.WorkDiary, error) {
	var diary domain.WorkDiary
	err := r.db.Where("attendance_session_id = ? AND deleted_at IS NULL", sessionID).First(&diary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &diary, nil
}

// MaxSequenceForYear extracts the highest allocated sequence from diary
// numbers of the form WD-YYYY-NNNN. The SUBSTR offset skips the eight
// characters of "WD-YYYY-".
func (r *DiaryRepository) MaxSequenceForYear(year int) (int, error) {
	var max *int
	prefix := fmt.Sprintf("WD-%d-%%", year)
	err := r.db.Model(&domain.WorkDiary{}).
		Select("MAX(CAST(SUBSTR(diary_number, 9) AS INTEGER))").
		Where("diary_number LIKE ?", prefix).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

type DiaryFilter struct {
	FacultyID    *uuid.UUID
	Status       *domain.DiaryStatus
	ActivityType *domain.ActivityType
	DateFrom     *time.Time
	DateTo       *time.Time
}

func (r *DiaryRepository) List(filter DiaryFilter, page, limit int) ([]domain.WorkDiary, int64, error) {
	var diaries []domain.WorkDiary
	var total int64

	query := r.db.Model(&domain.WorkDiary{}).Where("deleted_at IS NULL")

	if filter.FacultyID != nil {
		query = query.Where("faculty_id = ?", *filter.FacultyID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ActivityType != nil {
		query = query.Where("activity_type = ?", *filter.ActivityType)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", filter.DateTo.Format("2006-01-02"))
	}

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Preload("Faculty").Preload("Subject").Preload("Section").
		Offset(offset).Limit(limit).
		Order("date DESC, created_at DESC").
		Find(&diaries).Error

	return diaries, total, err
}

func (r *DiaryRepository) Update(diary *domain.WorkDiary) error {
	return r.db.Save(diary).Error
}

func (r *DiaryRepository) Delete(id uuid.UUID) error {
	return r.db.Model(&domain.WorkDiary{}).
		Where("id = ?", id).
		Update("deleted_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (r *DiaryRepository) CountByStatus(facultyID uuid.UUID, status domain.DiaryStatus) (int64, error) {
	var count int64
	err := r.db.Model(&domain.WorkDiary{}).
		Where("faculty_id = ? AND status = ? AND deleted_at IS NULL", facultyID, status).
		Count(&count).Error
	return count, err
}

func (r *DiaryRepository) CountAllByStatus(status domain.DiaryStatus) (int64, error) {
	var count int64
	err := r.db.Model(&domain.WorkDiary{}).
		Where("status = ? AND deleted_at IS NULL", status).
		Count(&count).Error
	return count, err
}

// CountByActivityType groups submitted-or-later diaries for dashboards.
func (r *DiaryRepository) CountByActivityType() (map[string]int64, error) {
	type row struct {
		ActivityType string
		Count        int64
	}
	var rows []row
	err := r.db.Model(&domain.WorkDiary{}).
		Select("activity_type, COUNT(*) as count").
		Where("status IN ? AND deleted_at IS NULL",
			[]domain.DiaryStatus{domain.DiarySubmitted, domain.DiaryApproved}).
		Group("activity_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.ActivityType] = r.Count
	}
	return out, nil
}

// HoursInRange sums diary durations for one faculty between two dates.
func (r *DiaryRepository) HoursInRange(facultyID uuid.UUID, from, to time.Time) (float64, error) {
	var hours *float64
	err := r.db.Model(&domain.WorkDiary{}).
		Select("SUM(duration_hours)").
		Where("faculty_id = ? AND date >= ? AND date <= ? AND deleted_at IS NULL",
			facultyID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Scan(&hours).Error
	if err != nil || hours == nil {
		return 0, err
	}
	return *hours, nil
}
