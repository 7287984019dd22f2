package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

// RecordMarkDTO is one student's mark when creating or updating a session.
type RecordMarkDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent late excused"`
	Remarks   string    `json:"remarks"`
}

type CreateSessionRequest struct {
	ScheduleID  uuid.UUID       `json:"schedule_id" validate:"required"`
	TopicTaught string          `json:"topic_taught"`
	Records     []RecordMarkDTO `json:"records" validate:"required,min=1,dive"`
}

type UpdateSessionRequest struct {
	TopicTaught *string         `json:"topic_taught,omitempty"`
	Records     []RecordMarkDTO `json:"records,omitempty" validate:"omitempty,dive"`
}

type SessionDTO struct {
	ID          uuid.UUID   `json:"id"`
	ScheduleID  uuid.UUID   `json:"schedule_id"`
	Status      string      `json:"status"`
	TopicTaught string      `json:"topic_taught"`
	TakenAt     time.Time   `json:"taken_at"`
	FinalizedAt *time.Time  `json:"finalized_at,omitempty"`
	ApprovedBy  *uuid.UUID  `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time  `json:"approved_at,omitempty"`
	SubjectName string      `json:"subject_name,omitempty"`
	SectionName string      `json:"section_name,omitempty"`
	Date        string      `json:"date"`
	StartTime   string      `json:"start_time"`
	EndTime     string      `json:"end_time"`
	Records     []RecordDTO `json:"records,omitempty"`
	Present     int         `json:"present"`
	Total       int         `json:"total"`
}

type RecordDTO struct {
	ID          uuid.UUID `json:"id"`
	StudentID   uuid.UUID `json:"student_id"`
	RollNumber  string    `json:"roll_number,omitempty"`
	StudentName string    `json:"student_name,omitempty"`
	Status      string    `json:"status"`
	Remarks     string    `json:"remarks,omitempty"`
}

// FinalizeSessionResponse reports the session and, when derivation applies,
// the work diary that now covers it.
type FinalizeSessionResponse struct {
	Session SessionDTO `json:"session"`
	Diary   *DiaryDTO  `json:"diary,omitempty"`
}

// CheckInRequest records campus presence.
type CheckInRequest struct {
	Method string `json:"method" validate:"omitempty,oneof=manual qr"`
}

type CheckInDTO struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	CheckInAt  time.Time  `json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at,omitempty"`
	Method     string     `json:"method"`
}

func ToSessionDTO(s *domain.AttendanceSession) SessionDTO {
	out := SessionDTO{
		ID:          s.ID,
		ScheduleID:  s.ScheduleID,
		Status:      string(s.Status),
		TopicTaught: s.TopicTaught,
		TakenAt:     s.TakenAt,
		FinalizedAt: s.FinalizedAt,
		ApprovedBy:  s.ApprovedBy,
		ApprovedAt:  s.ApprovedAt,
	}
	if s.Schedule != nil {
		out.Date = s.Schedule.Date.Format("2006-01-02")
		out.StartTime = s.Schedule.StartTime
		out.EndTime = s.Schedule.EndTime
		if s.Schedule.Subject != nil {
			out.SubjectName = s.Schedule.Subject.SubjectName
		}
		if s.Schedule.Section != nil {
			out.SectionName = s.Schedule.Section.SectionName
		}
	}
	for _, r := range s.Records {
		rd := RecordDTO{
			ID:        r.ID,
			StudentID: r.StudentID,
			Status:    string(r.Status),
			Remarks:   r.Remarks,
		}
		if r.Student != nil {
			rd.RollNumber = r.Student.RollNumber
			rd.StudentName = r.Student.FullName()
		}
		if r.Counted() {
			out.Present++
		}
		out.Total++
		out.Records = append(out.Records, rd)
	}
	return out
}

func ToCheckInDTO(c *domain.CampusCheckIn) CheckInDTO {
	return CheckInDTO{
		ID:         c.ID,
		UserID:     c.UserID,
		CheckInAt:  c.CheckInAt,
		CheckOutAt: c.CheckOutAt,
		Method:     c.Method,
	}
}
