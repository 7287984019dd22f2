package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

type FacultyRepository struct {
	db *gorm.DB
}

func NewFacultyRepository(db *gorm.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

func (r *FacultyRepository) Create(faculty *domain.Faculty) error {
	return r.db.Create(faculty).Error
}

func (r *FacultyRepository) FindByID(id uuid.UUID) (*domain.Faculty, error) {
	var faculty domain.Faculty
	err := r.db.Preload("User").Where("id = ? AND deleted_at IS NULL", id).First(&faculty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &faculty, nil
}

func (r *FacultyRepository) FindByUserID(userID uuid.UUID) (*domain.Faculty, error) {
	var faculty domain.Faculty
	err := r.db.Where("user_id = ? AND deleted_at IS NULL", userID).First(&faculty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &faculty, nil
}

func (r *FacultyRepository) FindByEmployeeID(employeeID string) (*domain.Faculty, error) {
	var faculty domain.Faculty
	err := r.db.Where("employee_id = ? AND deleted_at IS NULL", employeeID).First(&faculty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &faculty, nil
}

func (r *FacultyRepository) EmployeeIDExists(employeeID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Faculty{}).
		Where("employee_id = ? AND deleted_at IS NULL", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *FacultyRepository) List(search string, page, limit int) ([]domain.Faculty, int64, error) {
	var faculties []domain.Faculty
	var total int64

	query := r.db.Model(&domain.Faculty{}).Where("deleted_at IS NULL")

	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR employee_id LIKE ?",
			like, like, like,
		)
	}

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Offset(offset).Limit(limit).
		Order("employee_id ASC").
		Find(&faculties).Error

	return faculties, total, err
}

func (r *FacultyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Faculty{}).Where("deleted_at IS NULL").Count(&count).Error
	return count, err
}

func (r *FacultyRepository) Update(faculty *domain.Faculty) error {
	return r.db.Save(faculty).Error
}

func (r *FacultyRepository) Delete(id uuid.UUID) error {
	return r.db.Model(&domain.Faculty{}).
		Where("id = ?", id).
		Update("deleted_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
