package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// CreateSession stores the session together with its records in one
// transaction.
func (r *AttendanceRepository) CreateSession(session *domain.AttendanceSession) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(session).Error
	})
}

func (r *AttendanceRepository) FindSessionByID(id uuid.UUID) (*domain.AttendanceSession, error) {
	var session domain.AttendanceSession
	err := r.db.
		Preload("Schedule.Subject").
		Preload("Schedule.Section").
		Preload("Schedule.Faculty").
		Preload("Schedule.Semester").
		Preload("Records.Student").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *AttendanceRepository) FindSessionByScheduleID(scheduleID uuid.UUID) (*domain.AttendanceSession, error) {
	var session domain.AttendanceSession
	err := r.db.Where("schedule_id = ? AND deleted_at IS NULL", scheduleID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *AttendanceRepository) UpdateSession(session *domain.AttendanceSession) error {
	return r.db.Save(session).Error
}

// ReplaceRecords swaps all marks of a draft session in one transaction.
func (r *AttendanceRepository) ReplaceRecords(sessionID uuid.UUID, records []domain.AttendanceRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&domain.AttendanceRecord{}).Error; err != nil {
			return err
		}
		for i := range records {
			records[i].SessionID = sessionID
		}
		return tx.Create(&records).Error
	})
}

func (r *AttendanceRepository) ListSessionsByFaculty(facultyID uuid.UUID, from, to *time.Time, page, limit int) ([]domain.AttendanceSession, int64, error) {
	var sessions []domain.AttendanceSession
	var total int64

	query := r.db.Model(&domain.AttendanceSession{}).
		Joins("JOIN class_schedules s ON s.id = attendance_sessions.schedule_id").
		Where("s.faculty_id = ? AND attendance_sessions.deleted_at IS NULL", facultyID)

	if from != nil {
		query = query.Where("s.date >= ?", from.Format("2006-01-02"))
	}
	if to != nil {
		query = query.Where("s.date <= ?", to.Format("2006-01-02"))
	}

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.
		Preload("Schedule.Subject").
		Preload("Schedule.Section").
		Offset(offset).Limit(limit).
		Order("attendance_sessions.taken_at DESC").
		Find(&sessions).Error

	return sessions, total, err
}

// StudentCounts returns present-or-late and total marks for a student,
// optionally narrowed to one subject.
func (r *AttendanceRepository) StudentCounts(studentID uuid.UUID, subjectID *uuid.UUID) (present int64, total int64, err error) {
	base := r.db.Model(&domain.AttendanceRecord{}).
		Joins("JOIN attendance_sessions sess ON sess.id = attendance_records.session_id").
		Where("attendance_records.student_id = ? AND sess.status = ? AND attendance_records.deleted_at IS NULL",
			studentID, domain.SessionFinalized)

	if subjectID != nil {
		base = base.
			Joins("JOIN class_schedules sch ON sch.id = sess.schedule_id").
			Where("sch.subject_id = ?", *subjectID)
	}

	if err = base.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = base.Where("attendance_records.status IN ?", []domain.RecordStatus{domain.RecordPresent, domain.RecordLate}).
		Count(&present).Error
	return present, total, err
}

// Campus check-ins

func (r *AttendanceRepository) CreateCheckIn(checkIn *domain.CampusCheckIn) error {
	return r.db.Create(checkIn).Error
}

func (r *AttendanceRepository) OpenCheckIn(userID uuid.UUID) (*domain.CampusCheckIn, error) {
	var checkIn domain.CampusCheckIn
	err := r.db.Where("user_id = ? AND check_out_at IS NULL AND deleted_at IS NULL", userID).
		Order("check_in_at DESC").
		First(&checkIn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

func (r *AttendanceRepository) LastCheckIn(userID uuid.UUID) (*domain.CampusCheckIn, error) {
	var checkIn domain.CampusCheckIn
	err := r.db.Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("check_in_at DESC").
		First(&checkIn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

func (r *AttendanceRepository) CloseCheckIn(id uuid.UUID) error {
	return r.db.Model(&domain.CampusCheckIn{}).
		Where("id = ?", id).
		Update("check_out_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (r *AttendanceRepository) CountOnCampus(role domain.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&domain.CampusCheckIn{}).
		Joins("JOIN users u ON u.id = campus_check_ins.user_id").
		Where("campus_check_ins.check_out_at IS NULL AND campus_check_ins.deleted_at IS NULL AND u.role = ?", role).
		Count(&count).Error
	return count, err
}
