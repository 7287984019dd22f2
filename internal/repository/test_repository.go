package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

type TestRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{db: db}
}

func (r *TestRepository) Create(test *domain.Test) error {
	return r.db.Create(test).Error
}

func (r *TestRepository) FindByID(id uuid.UUID) (*domain.Test, error) {
	var test domain.Test
	err := r.db.Preload("Subject").Preload("Section").
		Where("id = ? AND deleted_at IS NULL", id).First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) ListBySection(sectionID uuid.UUID) ([]domain.Test, error) {
	var tests []domain.Test
	err := r.db.Preload("Subject").
		Where("section_id = ? AND deleted_at IS NULL", sectionID).
		Order("date DESC").
		Find(&tests).Error
	return tests, err
}

// UpsertResults records marks for a test, replacing any earlier entry for
// the same student.
func (r *TestRepository) UpsertResults(testID uuid.UUID, results []domain.TestResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range results {
			results[i].TestID = testID
			var existing domain.TestResult
			err := tx.Where("test_id = ? AND student_id = ? AND deleted_at IS NULL",
				testID, results[i].StudentID).First(&existing).Error
			switch {
			case err == nil:
				existing.MarksObtained = results[i].MarksObtained
				existing.Remarks = results[i].Remarks
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&results[i]).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
}

func (r *TestRepository) ListResultsByStudent(studentID uuid.UUID) ([]domain.TestResult, error) {
	var results []domain.TestResult
	err := r.db.Preload("Test.Subject").
		Where("student_id = ? AND deleted_at IS NULL", studentID).
		Find(&results).Error
	return results, err
}

func (r *TestRepository) ListResultsByTest(testID uuid.UUID) ([]domain.TestResult, error) {
	var results []domain.TestResult
	err := r.db.Preload("Student").
		Where("test_id = ? AND deleted_at IS NULL", testID).
		Order("created_at ASC").
		Find(&results).Error
	return results, err
}
