package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
)

type DashboardService struct {
	diaries    *repository.DiaryRepository
	attendance *repository.AttendanceRepository
	schedules  *repository.ScheduleRepository
	students   *repository.StudentRepository
	faculty    *repository.FacultyRepository
	academic   *repository.AcademicRepository
	tests      *repository.TestRepository
}

func NewDashboardService(
	diaries *repository.DiaryRepository,
	attendance *repository.AttendanceRepository,
	schedules *repository.ScheduleRepository,
	students *repository.StudentRepository,
	faculty *repository.FacultyRepository,
	academic *repository.AcademicRepository,
	tests *repository.TestRepository,
) *DashboardService {
	return &DashboardService{
		diaries:    diaries,
		attendance: attendance,
		schedules:  schedules,
		students:   students,
		faculty:    faculty,
		academic:   academic,
		tests:      tests,
	}
}

// AdminStats is the headline count block on the admin landing page.
func (s *DashboardService) AdminStats() (*dto.AdminDashboardDTO, error) {
	out := &dto.AdminDashboardDTO{}

	counters := []struct {
		fn     func() (int64, error)
		target *int64
	}{
		{s.faculty.Count, &out.FacultyCount},
		{s.students.Count, &out.StudentCount},
		{s.academic.CountSubjects, &out.SubjectCount},
		{s.academic.CountSections, &out.SectionCount},
		{func() (int64, error) { return s.diaries.CountAllByStatus(domain.DiarySubmitted) }, &out.PendingDiaries},
	}
	for _, c := range counters {
		n, err := c.fn()
		if err != nil {
			return nil, err
		}
		*c.target = n
	}

	return out, nil
}

// FacultyDashboard summarizes today's classes and the diary pipeline for
// one faculty member.
func (s *DashboardService) FacultyDashboard(facultyID uuid.UUID) (*dto.FacultyDashboardDTO, error) {
	today := time.Now()

	schedules, err := s.schedules.ListByFacultyAndDate(facultyID, today)
	if err != nil {
		return nil, err
	}

	var todayClasses []dto.SessionDTO
	for i := range schedules {
		sched := schedules[i]
		entry := dto.SessionDTO{
			ScheduleID: sched.ID,
			Date:       sched.Date.Format("2006-01-02"),
			StartTime:  sched.StartTime,
			EndTime:    sched.EndTime,
			Status:     "pending",
		}
		if sched.Subject != nil {
			entry.SubjectName = sched.Subject.SubjectName
		}
		if sched.Section != nil {
			entry.SectionName = sched.Section.SectionName
		}
		if session, err := s.attendance.FindSessionByScheduleID(sched.ID); err == nil {
			entry.ID = session.ID
			entry.Status = string(session.Status)
		}
		todayClasses = append(todayClasses, entry)
	}

	out := &dto.FacultyDashboardDTO{TodayClasses: todayClasses}
	counts := map[domain.DiaryStatus]*int64{
		domain.DiarySubmitted: &out.PendingDiaries,
		domain.DiaryDraft:     &out.DraftDiaries,
		domain.DiaryRejected:  &out.RejectedDiaries,
		domain.DiaryApproved:  &out.ApprovedDiaries,
	}
	for status, target := range counts {
		n, err := s.diaries.CountByStatus(facultyID, status)
		if err != nil {
			return nil, err
		}
		*target = n
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	hours, err := s.diaries.HoursInRange(facultyID, monthStart, today)
	if err != nil {
		return nil, err
	}
	out.TotalHoursMonth = hours

	return out, nil
}

// ApprovalQueue is the HOD/admin view: everything waiting for review plus
// activity aggregates.
func (s *DashboardService) ApprovalQueue() (*dto.HODDashboardDTO, error) {
	status := domain.DiarySubmitted
	submitted, _, err := s.diaries.List(repository.DiaryFilter{Status: &status}, 1, 100)
	if err != nil {
		return nil, err
	}

	byType, err := s.diaries.CountByActivityType()
	if err != nil {
		return nil, err
	}

	onCampus, err := s.attendance.CountOnCampus(domain.RoleFaculty)
	if err != nil {
		return nil, err
	}

	return &dto.HODDashboardDTO{
		SubmittedDiaries: dto.ToDiaryDTOs(submitted),
		DiaryCountByType: byType,
		FacultyOnCampus:  onCampus,
	}, nil
}

// StudentSummary builds the attendance and results view used by the student
// and parent dashboards.
func (s *DashboardService) StudentSummary(studentID uuid.UUID) (*dto.StudentAttendanceSummaryDTO, error) {
	student, err := s.students.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	out := &dto.StudentAttendanceSummaryDTO{
		StudentID:  student.ID,
		RollNumber: student.RollNumber,
		Name:       student.FullName(),
	}

	present, total, err := s.attendance.StudentCounts(studentID, nil)
	if err != nil {
		return nil, err
	}
	out.Overall = dto.AttendancePercentDTO{
		Present: int(present),
		Total:   int(total),
		Percent: percent(present, total),
	}

	var subjects []domain.Subject
	if student.SectionID != nil {
		section, err := s.academic.FindSectionByID(*student.SectionID)
		if err == nil && section.Program != nil {
			subjects, _, err = s.academic.ListSubjects(&section.ProgramID, 1, 100)
			if err != nil {
				return nil, err
			}
		}
	}
	for i := range subjects {
		subj := subjects[i]
		p, t, err := s.attendance.StudentCounts(studentID, &subj.ID)
		if err != nil {
			return nil, err
		}
		if t == 0 {
			continue
		}
		out.BySubject = append(out.BySubject, dto.SubjectAttendanceDTO{
			SubjectID:   subj.ID,
			SubjectName: subj.SubjectName,
			Present:     int(p),
			Total:       int(t),
			Percent:     percent(p, t),
		})
	}

	results, err := s.tests.ListResultsByStudent(studentID)
	if err != nil {
		return nil, err
	}
	if last, err := s.attendance.LastCheckIn(student.UserID); err == nil {
		ci := dto.ToCheckInDTO(last)
		out.LastCheckIn = &ci
	}

	for _, r := range results {
		score := dto.StudentTestScoreDTO{
			TestID:        r.TestID,
			MarksObtained: r.MarksObtained,
		}
		if r.Test != nil {
			score.TestName = r.Test.Name
			score.MaxMarks = r.Test.MaxMarks
			if r.Test.Subject != nil {
				score.SubjectName = r.Test.Subject.SubjectName
			}
		}
		out.TestScores = append(out.TestScores, score)
	}

	return out, nil
}

func percent(present, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(present) * 100 / float64(total)
}
