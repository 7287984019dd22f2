package dto

import (
	"github.com/google/uuid"
)

// FacultyDashboardDTO summarizes a faculty member's current standing.
type FacultyDashboardDTO struct {
	TodayClasses    []SessionDTO `json:"today_classes"`
	PendingDiaries  int64        `json:"pending_diaries"`
	DraftDiaries    int64        `json:"draft_diaries"`
	RejectedDiaries int64        `json:"rejected_diaries"`
	ApprovedDiaries int64        `json:"approved_diaries"`
	TotalHoursMonth float64      `json:"total_hours_month"`
}

// HODDashboardDTO is the approval queue view for HOD and admin users.
type HODDashboardDTO struct {
	SubmittedDiaries []DiaryDTO      `json:"submitted_diaries"`
	DiaryCountByType map[string]int64 `json:"diary_count_by_type"`
	FacultyOnCampus  int64           `json:"faculty_on_campus"`
}

// AdminDashboardDTO carries the headline counts for the admin landing page.
type AdminDashboardDTO struct {
	FacultyCount   int64 `json:"faculty_count"`
	StudentCount   int64 `json:"student_count"`
	SubjectCount   int64 `json:"subject_count"`
	SectionCount   int64 `json:"section_count"`
	PendingDiaries int64 `json:"pending_diaries"`
}

// StudentAttendanceSummaryDTO is per-subject attendance for one student.
type StudentAttendanceSummaryDTO struct {
	StudentID   uuid.UUID              `json:"student_id"`
	RollNumber  string                 `json:"roll_number"`
	Name        string                 `json:"name"`
	Overall     AttendancePercentDTO   `json:"overall"`
	BySubject   []SubjectAttendanceDTO `json:"by_subject"`
	TestScores  []StudentTestScoreDTO  `json:"test_scores,omitempty"`
	LastCheckIn *CheckInDTO            `json:"last_check_in,omitempty"`
}

type AttendancePercentDTO struct {
	Present int     `json:"present"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

type SubjectAttendanceDTO struct {
	SubjectID   uuid.UUID `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	Present     int       `json:"present"`
	Total       int       `json:"total"`
	Percent     float64   `json:"percent"`
}

type StudentTestScoreDTO struct {
	TestID        uuid.UUID `json:"test_id"`
	TestName      string    `json:"test_name"`
	SubjectName   string    `json:"subject_name"`
	MarksObtained float64   `json:"marks_obtained"`
	MaxMarks      float64   `json:"max_marks"`
}
