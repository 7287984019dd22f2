package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
)

type AttendanceService struct {
	attendance *repository.AttendanceRepository
	schedules  *repository.ScheduleRepository
	students   *repository.StudentRepository
	diaries    *DiaryService
}

func NewAttendanceService(
	attendance *repository.AttendanceRepository,
	schedules *repository.ScheduleRepository,
	students *repository.StudentRepository,
	diaries *DiaryService,
) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		schedules:  schedules,
		students:   students,
		diaries:    diaries,
	}
}

// CreateSession records a draft attendance session for a scheduled class.
// One session exists per schedule slot.
func (s *AttendanceService) CreateSession(actor domain.Actor, req dto.CreateSessionRequest) (*domain.AttendanceSession, error) {
	schedule, err := s.schedules.FindByID(req.ScheduleID)
	if err != nil {
		return nil, err
	}
	if err := s.requireScheduleOwner(actor, schedule); err != nil {
		return nil, err
	}

	if _, err := s.attendance.FindSessionByScheduleID(schedule.ID); err == nil {
		return nil, domain.NewValidationError("schedule_id", "attendance has already been taken for this class")
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	records, err := s.buildRecords(req.Records)
	if err != nil {
		return nil, err
	}

	session := &domain.AttendanceSession{
		ScheduleID:    schedule.ID,
		TakenByUserID: actor.UserID,
		TakenAt:       time.Now(),
		Status:        domain.SessionDraft,
		TopicTaught:   req.TopicTaught,
		Records:       records,
	}
	if err := s.attendance.CreateSession(session); err != nil {
		return nil, err
	}
	return s.attendance.FindSessionByID(session.ID)
}

// UpdateSession edits a draft session. Finalized sessions are immutable.
func (s *AttendanceService) UpdateSession(actor domain.Actor, id uuid.UUID, req dto.UpdateSessionRequest) (*domain.AttendanceSession, error) {
	session, err := s.attendance.FindSessionByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.requireSessionOwner(actor, session); err != nil {
		return nil, err
	}
	if session.Status != domain.SessionDraft {
		return nil, domain.ErrInvalidSessionState
	}

	if req.TopicTaught != nil {
		session.TopicTaught = *req.TopicTaught
	}
	session.Records = nil
	if err := s.attendance.UpdateSession(session); err != nil {
		return nil, err
	}

	if len(req.Records) > 0 {
		records, err := s.buildRecords(req.Records)
		if err != nil {
			return nil, err
		}
		if err := s.attendance.ReplaceRecords(session.ID, records); err != nil {
			return nil, err
		}
	}

	return s.attendance.FindSessionByID(id)
}

// FinalizeSession locks the session and derives its work diary. Finalizing
// an already finalized session re-runs the idempotent derivation and
// returns the diary that covers it.
func (s *AttendanceService) FinalizeSession(actor domain.Actor, id uuid.UUID) (*domain.AttendanceSession, *domain.WorkDiary, error) {
	session, err := s.attendance.FindSessionByID(id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.requireSessionOwner(actor, session); err != nil {
		return nil, nil, err
	}

	if session.Status != domain.SessionFinalized {
		if len(session.Records) == 0 {
			return nil, nil, domain.NewValidationError("records", "cannot finalize a session without attendance records")
		}
		now := time.Now()
		session.Status = domain.SessionFinalized
		session.FinalizedAt = &now
		session.Records = nil
		if err := s.attendance.UpdateSession(session); err != nil {
			return nil, nil, err
		}
		session, err = s.attendance.FindSessionByID(id)
		if err != nil {
			return nil, nil, err
		}
	}

	diary, err := s.diaries.DeriveFromSession(session.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, diary, nil
}

func (s *AttendanceService) GetSession(actor domain.Actor, id uuid.UUID) (*domain.AttendanceSession, error) {
	session, err := s.attendance.FindSessionByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanApproveDiaries() {
		if err := s.requireSessionOwner(actor, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

func (s *AttendanceService) ListSessions(actor domain.Actor, facultyID uuid.UUID, from, to *time.Time, page, limit int) ([]domain.AttendanceSession, int64, error) {
	if !actor.CanApproveDiaries() {
		if actor.FacultyID == nil || *actor.FacultyID != facultyID {
			return nil, 0, domain.ErrForbidden
		}
	}
	return s.attendance.ListSessionsByFaculty(facultyID, from, to, page, limit)
}

func (s *AttendanceService) buildRecords(marks []dto.RecordMarkDTO) ([]domain.AttendanceRecord, error) {
	seen := make(map[uuid.UUID]bool, len(marks))
	records := make([]domain.AttendanceRecord, 0, len(marks))
	for _, m := range marks {
		if seen[m.StudentID] {
			return nil, domain.NewValidationError("records", "duplicate student in attendance records")
		}
		seen[m.StudentID] = true
		if _, err := s.students.FindByID(m.StudentID); err != nil {
			if err == domain.ErrNotFound {
				return nil, domain.NewValidationError("records", "unknown student "+m.StudentID.String())
			}
			return nil, err
		}
		records = append(records, domain.AttendanceRecord{
			StudentID: m.StudentID,
			Status:    domain.RecordStatus(m.Status),
			Remarks:   m.Remarks,
		})
	}
	return records, nil
}

func (s *AttendanceService) requireScheduleOwner(actor domain.Actor, schedule *domain.ClassSchedule) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if actor.FacultyID == nil || *actor.FacultyID != schedule.FacultyID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *AttendanceService) requireSessionOwner(actor domain.Actor, session *domain.AttendanceSession) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if session.Schedule == nil {
		return domain.ErrForbidden
	}
	if actor.FacultyID == nil || *actor.FacultyID != session.Schedule.FacultyID {
		return domain.ErrForbidden
	}
	return nil
}

// Campus check-in

func (s *AttendanceService) CheckIn(userID uuid.UUID, method string) (*domain.CampusCheckIn, error) {
	if existing, err := s.attendance.OpenCheckIn(userID); err == nil {
		return existing, nil
	} else if err != domain.ErrNotFound {
		return nil, err
	}
	if method == "" {
		method = "manual"
	}
	checkIn := &domain.CampusCheckIn{
		UserID:    userID,
		CheckInAt: time.Now(),
		Method:    method,
	}
	if err := s.attendance.CreateCheckIn(checkIn); err != nil {
		return nil, err
	}
	return checkIn, nil
}

func (s *AttendanceService) CheckOut(userID uuid.UUID) (*domain.CampusCheckIn, error) {
	open, err := s.attendance.OpenCheckIn(userID)
	if err != nil {
		return nil, err
	}
	if err := s.attendance.CloseCheckIn(open.ID); err != nil {
		return nil, err
	}
	now := time.Now()
	open.CheckOutAt = &now
	return open, nil
}
