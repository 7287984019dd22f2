package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

type ImportRepository struct {
	db *gorm.DB
}

func NewImportRepository(db *gorm.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

func (r *ImportRepository) Create(log *domain.ImportLog) error {
	return r.db.Create(log).Error
}

// Update persists counters and final status. ImportLog rows are append-only
// from the caller's point of view: only the service finalizing a run writes
// here.
func (r *ImportRepository) Update(log *domain.ImportLog) error {
	return r.db.Save(log).Error
}

func (r *ImportRepository) FindByID(id uuid.UUID) (*domain.ImportLog, error) {
	var log domain.ImportLog
	err := r.db.Preload("ImportedUser").Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *ImportRepository) List(importType *domain.ImportType, page, limit int) ([]domain.ImportLog, int64, error) {
	var logs []domain.ImportLog
	var total int64

	query := r.db.Model(&domain.ImportLog{})
	if importType != nil {
		query = query.Where("import_type = ?", *importType)
	}

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Preload("ImportedUser").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&logs).Error

	return logs, total, err
}
