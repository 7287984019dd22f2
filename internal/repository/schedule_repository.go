package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(schedule *domain.ClassSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *ScheduleRepository) FindByID(id uuid.UUID) (*domain.ClassSchedule, error) {
	var schedule domain.ClassSchedule
	err := r.db.Preload("Subject").Preload("Faculty").Preload("Section").Preload("Semester").
		Where("id = ? AND deleted_at IS NULL", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleRepository) ListByFacultyAndDate(facultyID uuid.UUID, date time.Time) ([]domain.ClassSchedule, error) {
	var schedules []domain.ClassSchedule
	err := r.db.Preload("Subject").Preload("Section").
		Where("faculty_id = ? AND date = ? AND deleted_at IS NULL", facultyID, date.Format("2006-01-02")).
		Order("start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *ScheduleRepository) ListBySectionAndRange(sectionID uuid.UUID, from, to time.Time) ([]domain.ClassSchedule, error) {
	var schedules []domain.ClassSchedule
	err := r.db.Preload("Subject").Preload("Faculty").
		Where("section_id = ? AND date >= ? AND date <= ? AND deleted_at IS NULL",
			sectionID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC, start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

// Exists reports whether an identical slot is already scheduled. Used by the
// bulk import to skip duplicate rows.
func (r *ScheduleRepository) Exists(subjectID, facultyID, sectionID uuid.UUID, date time.Time, startTime string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.ClassSchedule{}).
		Where("subject_id = ? AND faculty_id = ? AND section_id = ? AND date = ? AND start_time = ? AND deleted_at IS NULL",
			subjectID, facultyID, sectionID, date.Format("2006-01-02"), startTime).
		Count(&count).Error
	return count > 0, err
}

func (r *ScheduleRepository) Update(schedule *domain.ClassSchedule) error {
	return r.db.Save(schedule).Error
}

func (r *ScheduleRepository) Delete(id uuid.UUID) error {
	return r.db.Model(&domain.ClassSchedule{}).
		Where("id = ?", id).
		Update("deleted_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
