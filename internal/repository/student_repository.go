package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(student *domain.Student) error {
	return r.db.Create(student).Error
}

func (r *StudentRepository) FindByID(id uuid.UUID) (*domain.Student, error) {
	var student domain.Student
	err := r.db.Preload("User").Preload("Program").Preload("Section").
		Where("id = ? AND deleted_at IS NULL", id).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) FindByUserID(userID uuid.UUID) (*domain.Student, error) {
	var student domain.Student
	err := r.db.Where("user_id = ? AND deleted_at IS NULL", userID).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) FindByRollNumber(rollNumber string) (*domain.Student, error) {
	var student domain.Student
	err := r.db.Where("roll_number = ? AND deleted_at IS NULL", rollNumber).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) RollNumberExists(rollNumber string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Student{}).
		Where("roll_number = ? AND deleted_at IS NULL", rollNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *StudentRepository) ListBySection(sectionID uuid.UUID) ([]domain.Student, error) {
	var students []domain.Student
	err := r.db.Where("section_id = ? AND status = ? AND deleted_at IS NULL", sectionID, "active").
		Order("roll_number ASC").
		Find(&students).Error
	return students, err
}

func (r *StudentRepository) List(search string, sectionID *uuid.UUID, page, limit int) ([]domain.Student, int64, error) {
	var students []domain.Student
	var total int64

	query := r.db.Model(&domain.Student{}).Where("deleted_at IS NULL")

	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR roll_number LIKE ?",
			like, like, like,
		)
	}
	if sectionID != nil {
		query = query.Where("section_id = ?", *sectionID)
	}

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Preload("Section").Preload("Program").
		Offset(offset).Limit(limit).
		Order("roll_number ASC").
		Find(&students).Error

	return students, total, err
}

func (r *StudentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Student{}).Where("deleted_at IS NULL").Count(&count).Error
	return count, err
}

func (r *StudentRepository) Update(student *domain.Student) error {
	return r.db.Save(student).Error
}

func (r *StudentRepository) Delete(id uuid.UUID) error {
	return r.db.Model(&domain.Student{}).
		Where("id = ?", id).
		Update("deleted_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
