package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

// CreateDiaryRequest authors a manual work diary entry in draft.
type CreateDiaryRequest struct {
	Date                string     `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime           string     `json:"start_time" validate:"required,datetime=15:04"`
	EndTime             string     `json:"end_time" validate:"required,datetime=15:04"`
	ActivityType        string     `json:"activity_type" validate:"required,oneof=theory_class practical_class tutorial invigilation meeting seminar workshop exam_duty other"`
	ActivityTitle       string     `json:"activity_title" validate:"required,max=255"`
	ActivityDescription string     `json:"activity_description"`
	TopicsCovered       string     `json:"topics_covered"`
	Location            string     `json:"location"`
	SubjectID           *uuid.UUID `json:"subject_id,omitempty"`
	SectionID           *uuid.UUID `json:"section_id,omitempty"`
	SemesterID          *uuid.UUID `json:"semester_id,omitempty"`
	StudentsPresent     int        `json:"students_present" validate:"min=0"`
	TotalStudents       int        `json:"total_students" validate:"min=0"`
}

// UpdateDiaryRequest edits a draft or rejected diary. Nil fields stay.
type UpdateDiaryRequest struct {
	Date                *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime           *string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime             *string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	ActivityType        *string `json:"activity_type,omitempty" validate:"omitempty,oneof=theory_class practical_class tutorial invigilation meeting seminar workshop exam_duty other"`
	ActivityTitle       *string `json:"activity_title,omitempty" validate:"omitempty,max=255"`
	ActivityDescription *string `json:"activity_description,omitempty"`
	TopicsCovered       *string `json:"topics_covered,omitempty"`
	Location            *string `json:"location,omitempty"`
	StudentsPresent     *int    `json:"students_present,omitempty" validate:"omitempty,min=0"`
	TotalStudents       *int    `json:"total_students,omitempty" validate:"omitempty,min=0"`
}

// ReviewDiaryRequest approves or rejects a submitted diary.
type ReviewDiaryRequest struct {
	Remarks string `json:"remarks"`
}

type DiaryDTO struct {
	ID                  uuid.UUID  `json:"id"`
	DiaryNumber         string     `json:"diary_number"`
	FacultyID           uuid.UUID  `json:"faculty_id"`
	FacultyName         string     `json:"faculty_name,omitempty"`
	SubjectID           *uuid.UUID `json:"subject_id,omitempty"`
	SubjectName         string     `json:"subject_name,omitempty"`
	SectionID           *uuid.UUID `json:"section_id,omitempty"`
	SectionName         string     `json:"section_name,omitempty"`
	AcademicYear        string     `json:"academic_year,omitempty"`
	Date                string     `json:"date"`
	StartTime           string     `json:"start_time"`
	EndTime             string     `json:"end_time"`
	DurationHours       float64    `json:"duration_hours"`
	ActivityType        string     `json:"activity_type"`
	ActivityTitle       string     `json:"activity_title"`
	ActivityDescription string     `json:"activity_description,omitempty"`
	TopicsCovered       string     `json:"topics_covered,omitempty"`
	Location            string     `json:"location,omitempty"`
	AttendanceSessionID *uuid.UUID `json:"attendance_session_id,omitempty"`
	StudentsPresent     int        `json:"students_present"`
	TotalStudents       int        `json:"total_students"`
	Status              string     `json:"status"`
	SubmittedAt         *time.Time `json:"submitted_at,omitempty"`
	ApprovedBy          *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt          *time.Time `json:"approved_at,omitempty"`
	ApprovalRemarks     string     `json:"approval_remarks,omitempty"`
	AttachmentURL       *string    `json:"attachment_url,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// DiaryListQuery carries list filters from the query string.
type DiaryListQuery struct {
	Status       string `query:"status"`
	ActivityType string `query:"activity_type"`
	FacultyID    string `query:"faculty_id"`
	DateFrom     string `query:"date_from"`
	DateTo       string `query:"date_to"`
	Page         int    `query:"page"`
	PerPage      int    `query:"per_page"`
}

func ToDiaryDTO(d *domain.WorkDiary) DiaryDTO {
	out := DiaryDTO{
		ID:                  d.ID,
		DiaryNumber:         d.DiaryNumber,
		FacultyID:           d.FacultyID,
		SubjectID:           d.SubjectID,
		SectionID:           d.SectionID,
		AcademicYear:        d.AcademicYear,
		Date:                d.Date.Format("2006-01-02"),
		StartTime:           d.StartTime,
		EndTime:             d.EndTime,
		DurationHours:       d.DurationHours,
		ActivityType:        string(d.ActivityType),
		ActivityTitle:       d.ActivityTitle,
		ActivityDescription: d.ActivityDescription,
		TopicsCovered:       d.TopicsCovered,
		Location:            d.Location,
		AttendanceSessionID: d.AttendanceSessionID,
		StudentsPresent:     d.StudentsPresent,
		TotalStudents:       d.TotalStudents,
		Status:              string(d.Status),
		SubmittedAt:         d.SubmittedAt,
		ApprovedBy:          d.ApprovedBy,
		ApprovedAt:          d.ApprovedAt,
		ApprovalRemarks:     d.ApprovalRemarks,
		AttachmentURL:       d.AttachmentURL,
		CreatedAt:           d.CreatedAt,
	}
	if d.Faculty != nil {
		out.FacultyName = d.Faculty.FullName()
	}
	if d.Subject != nil {
		out.SubjectName = d.Subject.SubjectName
	}
	if d.Section != nil {
		out.SectionName = d.Section.SectionName
	}
	return out
}

func ToDiaryDTOs(diaries []domain.WorkDiary) []DiaryDTO {
	out := make([]DiaryDTO, 0, len(diaries))
	for i := range diaries {
		out = append(out, ToDiaryDTO(&diaries[i]))
	}
	return out
}
