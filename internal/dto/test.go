package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

type CreateTestRequest struct {
	SubjectID  uuid.UUID  `json:"subject_id" validate:"required"`
	SectionID  uuid.UUID  `json:"section_id" validate:"required"`
	SemesterID *uuid.UUID `json:"semester_id,omitempty"`
	Name       string     `json:"name" validate:"required,max=128"`
	Date       string     `json:"date" validate:"required,datetime=2006-01-02"`
	MaxMarks   float64    `json:"max_marks" validate:"required,gt=0"`
}

type TestResultEntryDTO struct {
	StudentID     uuid.UUID `json:"student_id" validate:"required"`
	MarksObtained float64   `json:"marks_obtained" validate:"min=0"`
	Remarks       string    `json:"remarks" validate:"omitempty,max=255"`
}

type RecordResultsRequest struct {
	Results []TestResultEntryDTO `json:"results" validate:"required,min=1,dive"`
}

type TestDTO struct {
	ID          uuid.UUID `json:"id"`
	SubjectID   uuid.UUID `json:"subject_id"`
	SubjectName string    `json:"subject_name,omitempty"`
	SectionID   uuid.UUID `json:"section_id"`
	SectionName string    `json:"section_name,omitempty"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	MaxMarks    float64   `json:"max_marks"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToTestDTO(t *domain.Test) TestDTO {
	out := TestDTO{
		ID:        t.ID,
		SubjectID: t.SubjectID,
		SectionID: t.SectionID,
		Name:      t.Name,
		Date:      t.Date.Format("2006-01-02"),
		MaxMarks:  t.MaxMarks,
		CreatedAt: t.CreatedAt,
	}
	if t.Subject != nil {
		out.SubjectName = t.Subject.SubjectName
	}
	if t.Section != nil {
		out.SectionName = t.Section.SectionName
	}
	return out
}
