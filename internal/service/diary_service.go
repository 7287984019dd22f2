package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
)

const diaryNumberCapacity = 9999

// Diary workflow events.
const (
	eventSubmit  = "submit"
	eventApprove = "approve"
	eventReject  = "reject"
	eventEdit    = "edit"
)

// diaryTransitions is the full approval workflow. Any (status, event) pair
// absent from this table is invalid.
var diaryTransitions = map[domain.DiaryStatus]map[string]domain.DiaryStatus{
	domain.DiaryDraft: {
		eventSubmit: domain.DiarySubmitted,
		eventEdit:   domain.DiaryDraft,
	},
	domain.DiarySubmitted: {
		eventApprove: domain.DiaryApproved,
		eventReject:  domain.DiaryRejected,
	},
	domain.DiaryRejected: {
		eventEdit:   domain.DiaryDraft,
		eventSubmit: domain.DiarySubmitted,
	},
}

// eventTargets names the status each event drives toward, used to report
// the offending state pair on invalid transitions.
var eventTargets = map[string]domain.DiaryStatus{
	eventSubmit:  domain.DiarySubmitted,
	eventApprove: domain.DiaryApproved,
	eventReject:  domain.DiaryRejected,
	eventEdit:    domain.DiaryDraft,
}

func nextDiaryStatus(from domain.DiaryStatus, event string) (domain.DiaryStatus, error) {
	if to, ok := diaryTransitions[from][event]; ok {
		return to, nil
	}
	if event == eventEdit && (from == domain.DiarySubmitted || from == domain.DiaryApproved) {
		return "", domain.ErrLockedForEditing
	}
	return "", &domain.InvalidTransitionError{From: from, Event: event, Target: eventTargets[event]}
}

type DiaryService struct {
	db       *gorm.DB
	diaries  *repository.DiaryRepository
	sessions *repository.AttendanceRepository
}

func NewDiaryService(db *gorm.DB, diaries *repository.DiaryRepository, sessions *repository.AttendanceRepository) *DiaryService {
	return &DiaryService{
		db:       db,
		diaries:  diaries,
		sessions: sessions,
	}
}

// AcademicYearFor maps an activity date onto the academic year label. Years
// run June through May.
func AcademicYearFor(date time.Time) string {
	year := date.Year()
	if date.Month() >= time.June {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

// nextDiaryNumber allocates the next WD-YYYY-NNNN number inside tx. The
// sequence is per calendar year, dense, and capped at four digits.
func (s *DiaryService) nextDiaryNumber(tx *gorm.DB, year int) (string, error) {
	max, err := s.diaries.WithTx(tx).MaxSequenceForYear(year)
	if err != nil {
		return "", err
	}
	next := max + 1
	if next > diaryNumberCapacity {
		return "", domain.ErrDiaryCapacityExceeded
	}
	return fmt.Sprintf("WD-%d-%04d", year, next), nil
}

// createNumbered inserts a diary with a freshly allocated number. Concurrent
// allocators can both read the same max; the unique index on diary_number
// turns the loser's insert into a retry. Each attempt runs in its own
// transaction because PostgreSQL rejects further statements after an error.
// Every retry re-reads the committed max, so the loop advances past each
// conflict and ends only with a free number or ErrDiaryCapacityExceeded.
func (s *DiaryService) createNumbered(diary *domain.WorkDiary) error {
	for {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			number, err := s.nextDiaryNumber(tx, diary.Date.Year())
			if err != nil {
				return err
			}
			diary.DiaryNumber = number
			return s.diaries.WithTx(tx).Create(diary)
		})
		if err == nil {
			return nil
		}
		if isUniqueViolation(err, "diary_number") {
			diary.ID = uuid.Nil
			continue
		}
		return err
	}
}

func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return (strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")) &&
		strings.Contains(msg, column)
}

// DeriveFromSession creates the work diary covering a finalized attendance
// session. Calling it again for the same session returns the existing diary
// unchanged, whatever its status.
func (s *DiaryService) DeriveFromSession(sessionID uuid.UUID) (*domain.WorkDiary, error) {
	if existing, err := s.diaries.FindBySessionID(sessionID); err == nil {
		return existing, nil
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	session, err := s.sessions.FindSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionFinalized {
		return nil, domain.ErrInvalidSessionState
	}
	if session.Schedule == nil {
		return nil, fmt.Errorf("session %s has no schedule", sessionID)
	}

	schedule := session.Schedule

	present := 0
	for _, rec := range session.Records {
		if rec.Counted() {
			present++
		}
	}

	activityType := domain.ActivityTheoryClass
	if schedule.ClassType == domain.ClassPractical {
		activityType = domain.ActivityPracticalClass
	}

	title := "Class session"
	if schedule.Subject != nil {
		title = schedule.Subject.SubjectName
		if schedule.Section != nil {
			title += " - " + schedule.Section.SectionName
		}
	}

	sectionID := schedule.SectionID
	diary := &domain.WorkDiary{
		FacultyID:           schedule.FacultyID,
		SubjectID:           &schedule.SubjectID,
		SectionID:           &sectionID,
		SemesterID:          schedule.SemesterID,
		AcademicYear:        AcademicYearFor(schedule.Date),
		Date:                schedule.Date,
		StartTime:           schedule.StartTime,
		EndTime:             schedule.EndTime,
		DurationHours:       domain.DurationHours(schedule.StartTime, schedule.EndTime),
		ActivityType:        activityType,
		AttendanceSessionID: &session.ID,
		StudentsPresent:     present,
		TotalStudents:       len(session.Records),
		ActivityTitle:       title,
		TopicsCovered:       session.TopicTaught,
		Location:            schedule.Room,
		Status:              domain.DiaryDraft,
	}

	err = s.createNumbered(diary)
	if err != nil {
		// Lost a race against another deriver for the same session. The
		// unique session link guarantees a diary now exists.
		if isUniqueViolation(err, "attendance_session_id") {
			return s.diaries.FindBySessionID(sessionID)
		}
		return nil, err
	}
	return diary, nil
}

// CreateManual authors a draft diary for an activity with no attendance
// session behind it.
func (s *DiaryService) CreateManual(actor domain.Actor, req dto.CreateDiaryRequest) (*domain.WorkDiary, error) {
	if actor.FacultyID == nil {
		return nil, domain.ErrForbidden
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, domain.NewValidationError("date", "must be in YYYY-MM-DD format")
	}
	if _, err := domain.ParseClock(req.StartTime); err != nil {
		return nil, domain.NewValidationError("start_time", "must be in HH:MM format")
	}
	if _, err := domain.ParseClock(req.EndTime); err != nil {
		return nil, domain.NewValidationError("end_time", "must be in HH:MM format")
	}
	if req.EndTime <= req.StartTime {
		return nil, domain.NewValidationError("end_time", "must be after start_time")
	}

	diary := &domain.WorkDiary{
		FacultyID:           *actor.FacultyID,
		SubjectID:           req.SubjectID,
		SectionID:           req.SectionID,
		SemesterID:          req.SemesterID,
		AcademicYear:        AcademicYearFor(date),
		Date:                date,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		DurationHours:       domain.DurationHours(req.StartTime, req.EndTime),
		ActivityType:        domain.ActivityType(req.ActivityType),
		StudentsPresent:     req.StudentsPresent,
		TotalStudents:       req.TotalStudents,
		ActivityTitle:       req.ActivityTitle,
		ActivityDescription: req.ActivityDescription,
		TopicsCovered:       req.TopicsCovered,
		Location:            req.Location,
		Status:              domain.DiaryDraft,
	}

	if err := s.createNumbered(diary); err != nil {
		return nil, err
	}
	return diary, nil
}

// Update edits a draft or rejected diary. Editing a rejected diary moves it
// back to draft.
func (s *DiaryService) Update(actor domain.Actor, id uuid.UUID, req dto.UpdateDiaryRequest) (*domain.WorkDiary, error) {
	diary, err := s.diaries.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(actor, diary); err != nil {
		return nil, err
	}

	newStatus, err := nextDiaryStatus(diary.Status, eventEdit)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, domain.NewValidationError("date", "must be in YYYY-MM-DD format")
		}
		diary.Date = date
		diary.AcademicYear = AcademicYearFor(date)
	}
	if req.StartTime != nil {
		if _, err := domain.ParseClock(*req.StartTime); err != nil {
			return nil, domain.NewValidationError("start_time", "must be in HH:MM format")
		}
		diary.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if _, err := domain.ParseClock(*req.EndTime); err != nil {
			return nil, domain.NewValidationError("end_time", "must be in HH:MM format")
		}
		diary.EndTime = *req.EndTime
	}
	if diary.EndTime <= diary.StartTime {
		return nil, domain.NewValidationError("end_time", "must be after start_time")
	}
	diary.DurationHours = domain.DurationHours(diary.StartTime, diary.EndTime)

	if req.ActivityType != nil {
		diary.ActivityType = domain.ActivityType(*req.ActivityType)
	}
	if req.ActivityTitle != nil {
		diary.ActivityTitle = *req.ActivityTitle
	}
	if req.ActivityDescription != nil {
		diary.ActivityDescription = *req.ActivityDescription
	}
	if req.TopicsCovered != nil {
		diary.TopicsCovered = *req.TopicsCovered
	}
	if req.Location != nil {
		diary.Location = *req.Location
	}
	if req.StudentsPresent != nil {
		diary.StudentsPresent = *req.StudentsPresent
	}
	if req.TotalStudents != nil {
		diary.TotalStudents = *req.TotalStudents
	}

	// A rejected diary re-enters draft once edited; its remarks stay
	// visible until the next review.
	diary.Status = newStatus

	if err := s.diaries.Update(diary); err != nil {
		return nil, err
	}
	return diary, nil
}

// Submit moves a draft or rejected diary into the review queue.
func (s *DiaryService) Submit(actor domain.Actor, id uuid.UUID) (*domain.WorkDiary, error) {
	diary, err := s.diaries.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(actor, diary); err != nil {
		return nil, err
	}

	newStatus, err := nextDiaryStatus(diary.Status, eventSubmit)
	if err != nil {
		return nil, err
	}

	// Manual diaries must describe the activity before review; derived
	// diaries already carry the session's topic.
	if diary.IsManual() && diary.TopicsCovered == "" && diary.ActivityDescription == "" {
		return nil, domain.NewValidationError("topics_covered", "topics covered or a description is required before submitting")
	}

	now := time.Now()
	diary.Status = newStatus
	diary.SubmittedAt = &now

	if err := s.diaries.Update(diary); err != nil {
		return nil, err
	}
	return diary, nil
}

// Approve accepts a submitted diary.
func (s *DiaryService) Approve(actor domain.Actor, id uuid.UUID, remarks string) (*domain.WorkDiary, error) {
	return s.review(actor, id, eventApprove, remarks)
}

// Reject returns a submitted diary to its author with mandatory remarks.
func (s *DiaryService) Reject(actor domain.Actor, id uuid.UUID, remarks string) (*domain.WorkDiary, error) {
	if strings.TrimSpace(remarks) == "" {
		return nil, domain.NewValidationError("remarks", "remarks are required when rejecting")
	}
	return s.review(actor, id, eventReject, remarks)
}

func (s *DiaryService) review(actor domain.Actor, id uuid.UUID, event, remarks string) (*domain.WorkDiary, error) {
	if !actor.CanApproveDiaries() {
		return nil, domain.ErrForbidden
	}

	diary, err := s.diaries.FindByID(id)
	if err != nil {
		return nil, err
	}

	newStatus, err := nextDiaryStatus(diary.Status, event)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	diary.Status = newStatus
	diary.ApprovalRemarks = remarks
	if event == eventApprove {
		reviewer := actor.UserID
		diary.ApprovedBy = &reviewer
		diary.ApprovedAt = &now
	} else {
		// A rejected diary carries no approval; only the remarks remain.
		diary.ApprovedBy = nil
		diary.ApprovedAt = nil
	}

	if err := s.diaries.Update(diary); err != nil {
		return nil, err
	}

	// The review verdict on a derived diary is mirrored onto its session.
	if diary.AttendanceSessionID != nil {
		session, err := s.sessions.FindSessionByID(*diary.AttendanceSessionID)
		if err != nil {
			return nil, err
		}
		session.ApprovedBy = diary.ApprovedBy
		session.ApprovedAt = diary.ApprovedAt
		if err := s.sessions.UpdateSession(session); err != nil {
			return nil, err
		}
	}

	return diary, nil
}

// Delete removes a draft or rejected diary. Submitted and approved entries
// are part of the review trail and stay.
func (s *DiaryService) Delete(actor domain.Actor, id uuid.UUID) error {
	diary, err := s.diaries.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.requireOwner(actor, diary); err != nil {
		return err
	}
	if diary.Status != domain.DiaryDraft && diary.Status != domain.DiaryRejected {
		return domain.ErrLockedForEditing
	}
	return s.diaries.Delete(id)
}

func (s *DiaryService) Get(actor domain.Actor, id uuid.UUID) (*domain.WorkDiary, error) {
	diary, err := s.diaries.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanApproveDiaries() {
		if actor.FacultyID == nil || *actor.FacultyID != diary.FacultyID {
			return nil, domain.ErrForbidden
		}
	}
	return diary, nil
}

func (s *DiaryService) List(actor domain.Actor, filter repository.DiaryFilter, page, limit int) ([]domain.WorkDiary, int64, error) {
	// Faculty only ever see their own diaries.
	if !actor.CanApproveDiaries() {
		if actor.FacultyID == nil {
			return nil, 0, domain.ErrForbidden
		}
		filter.FacultyID = actor.FacultyID
	}
	return s.diaries.List(filter, page, limit)
}

func (s *DiaryService) requireOwner(actor domain.Actor, diary *domain.WorkDiary) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if actor.FacultyID == nil || *actor.FacultyID != diary.FacultyID {
		return domain.ErrForbidden
	}
	return nil
}
