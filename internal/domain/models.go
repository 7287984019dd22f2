package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enum types
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleHOD     UserRole = "hod"
	RoleFaculty UserRole = "faculty"
	RoleStudent UserRole = "student"
	RoleParent  UserRole = "parent"
)

type ClassType string

const (
	ClassTheory    ClassType = "theory"
	ClassPractical ClassType = "practical"
)

type SessionStatus string

const (
	SessionDraft     SessionStatus = "draft"
	SessionFinalized SessionStatus = "finalized"
)

type RecordStatus string

const (
	RecordPresent RecordStatus = "present"
	RecordAbsent  RecordStatus = "absent"
	RecordLate    RecordStatus = "late"
	RecordExcused RecordStatus = "excused"
)

type ActivityType string

const (
	ActivityTheoryClass    ActivityType = "theory_class"
	ActivityPracticalClass ActivityType = "practical_class"
	ActivityTutorial       ActivityType = "tutorial"
	ActivityInvigilation   ActivityType = "invigilation"
	ActivityMeeting        ActivityType = "meeting"
	ActivitySeminar        ActivityType = "seminar"
	ActivityWorkshop       ActivityType = "workshop"
	ActivityExamDuty       ActivityType = "exam_duty"
	ActivityOther          ActivityType = "other"
)

type DiaryStatus string

const (
	DiaryDraft     DiaryStatus = "draft"
	DiarySubmitted DiaryStatus = "submitted"
	DiaryApproved  DiaryStatus = "approved"
	DiaryRejected  DiaryStatus = "rejected"
)

type ImportType string

const (
	ImportStudents  ImportType = "student"
	ImportFaculty   ImportType = "faculty"
	ImportSubjects  ImportType = "subject"
	ImportSchedules ImportType = "schedule"
)

type ImportStatus string

const (
	ImportProcessing ImportStatus = "processing"
	ImportCompleted  ImportStatus = "completed"
	ImportFailed     ImportStatus = "failed"
	ImportPartial    ImportStatus = "partial"
)

// Actor identifies the authenticated caller for workflow guards.
type Actor struct {
	UserID    uuid.UUID
	Role      UserRole
	FacultyID *uuid.UUID
}

func (a Actor) CanApproveDiaries() bool {
	return a.Role == RoleAdmin || a.Role == RoleHOD
}

// RowError is one failed row of a bulk import.
type RowError struct {
	Row    int    `json:"row"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Reason)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// RowErrorList is persisted as JSONB on ImportLog.
type RowErrorList []RowError

func (l RowErrorList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *RowErrorList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}
	return json.Unmarshal(data, l)
}

// RowDataList is the JSONB snapshot of accepted import rows.
type RowDataList []map[string]string

func (l RowDataList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *RowDataList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}
	return json.Unmarshal(data, l)
}

// Base model with soft delete
type BaseModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
}

// User
type User struct {
	BaseModel
	Username     string     `gorm:"type:varchar(128);not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(16);not null;default:'student'" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

func (User) TableName() string { return "users" }

// RefreshToken
type RefreshToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"-"`
	IsRevoked bool       `gorm:"not null;default:false" json:"is_revoked"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

// Faculty
type Faculty struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	EmployeeID    string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"employee_id"`
	FirstName     string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Department    string    `gorm:"type:varchar(100)" json:"department"`
	Designation   string    `gorm:"type:varchar(128)" json:"designation"`
	Qualification string    `gorm:"type:varchar(200)" json:"qualification"`
	Phone         string    `gorm:"type:varchar(20)" json:"phone"`
	Email         string    `gorm:"type:varchar(255)" json:"email"`
	IsHOD         bool      `gorm:"not null;default:false" json:"is_hod"`
	Status        string    `gorm:"type:varchar(32);not null;default:'active'" json:"status"`
	User          *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Faculty) TableName() string { return "faculties" }

// FullName returns the display name used on diaries and dashboards.
func (f Faculty) FullName() string {
	return f.FirstName + " " + f.LastName
}

// Program
type Program struct {
	BaseModel
	ProgramCode   string `gorm:"type:varchar(50);not null;uniqueIndex" json:"program_code"`
	ProgramName   string `gorm:"type:varchar(150);not null" json:"program_name"`
	DurationYears int    `gorm:"type:smallint;not null;default:3" json:"duration_years"`
}

func (Program) TableName() string { return "programs" }

// Section
type Section struct {
	BaseModel
	SectionName     string     `gorm:"type:varchar(64);not null" json:"section_name"`
	ProgramID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"program_id"`
	CurrentSemester int        `gorm:"type:smallint;not null;default:1" json:"current_semester"`
	ClassTeacherID  *uuid.UUID `gorm:"type:uuid" json:"class_teacher_id,omitempty"`
	Program         *Program   `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	ClassTeacher    *Faculty   `gorm:"foreignKey:ClassTeacherID" json:"class_teacher,omitempty"`
}

func (Section) TableName() string { return "sections" }

// Semester
type Semester struct {
	BaseModel
	Name         string     `gorm:"type:varchar(64);not null" json:"name"`
	AcademicYear string     `gorm:"type:varchar(32)" json:"academic_year"`
	StartDate    *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate      *time.Time `gorm:"type:date" json:"end_date,omitempty"`
}

func (Semester) TableName() string { return "semesters" }

// Student
type Student struct {
	BaseModel
	UserID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	RollNumber      string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"roll_number"`
	FirstName       string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string     `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfBirth     *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Email           string     `gorm:"type:varchar(255)" json:"email"`
	Phone           string     `gorm:"type:varchar(20)" json:"phone"`
	GuardianName    string     `gorm:"type:varchar(200)" json:"guardian_name"`
	GuardianPhone   string     `gorm:"type:varchar(20)" json:"guardian_phone"`
	Address         string     `gorm:"type:text" json:"address"`
	ProgramID       *uuid.UUID `gorm:"type:uuid;index" json:"program_id,omitempty"`
	SectionID       *uuid.UUID `gorm:"type:uuid;index" json:"section_id,omitempty"`
	AdmissionYear   *int       `json:"admission_year,omitempty"`
	CurrentSemester *int       `gorm:"type:smallint" json:"current_semester,omitempty"`
	Gender          string     `gorm:"type:varchar(10)" json:"gender"`
	Status          string     `gorm:"type:varchar(32);not null;default:'active'" json:"status"`
	User            *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Program         *Program   `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	Section         *Section   `gorm:"foreignKey:SectionID" json:"section,omitempty"`
}

func (Student) TableName() string { return "students" }

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Subject
type Subject struct {
	BaseModel
	SubjectCode    string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"subject_code"`
	SubjectName    string     `gorm:"type:varchar(255);not null" json:"subject_name"`
	Credits        float64    `gorm:"not null;default:0" json:"credits"`
	SubjectType    string     `gorm:"type:varchar(64);default:'theory'" json:"subject_type"`
	ProgramID      *uuid.UUID `gorm:"type:uuid;index" json:"program_id,omitempty"`
	SemesterNumber *int       `gorm:"type:smallint" json:"semester_number,omitempty"`
	TotalHours     *int       `json:"total_hours,omitempty"`
	Program        *Program   `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}

func (Subject) TableName() string { return "subjects" }

// SubjectAllocation assigns a subject to a faculty for a section.
type SubjectAllocation struct {
	BaseModel
	SubjectID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uix_sub_fac_sec" json:"subject_id"`
	FacultyID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uix_sub_fac_sec" json:"faculty_id"`
	SectionID      *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uix_sub_fac_sec" json:"section_id,omitempty"`
	SemesterID     *uuid.UUID `gorm:"type:uuid" json:"semester_id,omitempty"`
	AllocationType string     `gorm:"type:varchar(64);default:'primary'" json:"allocation_type"`
	Subject        *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Faculty        *Faculty   `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Section        *Section   `gorm:"foreignKey:SectionID" json:"section,omitempty"`
}

func (SubjectAllocation) TableName() string { return "subject_allocations" }

// ClassSchedule is one scheduled class occurrence. Clock values are stored
// as "HH:MM" strings so they behave identically on every database backend.
type ClassSchedule struct {
	BaseModel
	SubjectID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"subject_id"`
	FacultyID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"faculty_id"`
	SectionID  uuid.UUID  `gorm:"type:uuid;not null;index:ix_schedule_section_date" json:"section_id"`
	SemesterID *uuid.UUID `gorm:"type:uuid" json:"semester_id,omitempty"`
	Room       string     `gorm:"type:varchar(64)" json:"room"`
	Date       time.Time  `gorm:"type:date;not null;index:ix_schedule_section_date" json:"date"`
	StartTime  string     `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime    string     `gorm:"type:varchar(5);not null" json:"end_time"`
	ClassType  ClassType  `gorm:"type:varchar(16);not null;default:'theory'" json:"class_type"`
	Subject    *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Faculty    *Faculty   `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Section    *Section   `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Semester   *Semester  `gorm:"foreignKey:SemesterID" json:"semester,omitempty"`
}

func (ClassSchedule) TableName() string { return "class_schedules" }

// ParseClock parses an "HH:MM" clock value.
func ParseClock(v string) (time.Time, error) {
	return time.Parse("15:04", v)
}

// DurationHours computes end minus start in hours. Returns zero when either
// value is malformed or the range is negative.
func DurationHours(start, end string) float64 {
	s, err := ParseClock(start)
	if err != nil {
		return 0
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0
	}
	d := e.Sub(s).Hours()
	if d < 0 {
		return 0
	}
	return d
}

// AttendanceSession is one taken-attendance event for a scheduled class.
type AttendanceSession struct {
	BaseModel
	ScheduleID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"schedule_id"`
	TakenByUserID uuid.UUID          `gorm:"type:uuid;not null" json:"taken_by_user_id"`
	TakenAt       time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP" json:"taken_at"`
	Status        SessionStatus      `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`
	FinalizedAt   *time.Time         `json:"finalized_at,omitempty"`
	ApprovedBy    *uuid.UUID         `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt    *time.Time         `json:"approved_at,omitempty"`
	TopicTaught   string             `gorm:"type:varchar(255)" json:"topic_taught"`
	Schedule      *ClassSchedule     `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`
	Records       []AttendanceRecord `gorm:"foreignKey:SessionID" json:"records,omitempty"`
}

func (AttendanceSession) TableName() string { return "attendance_sessions" }

// AttendanceRecord is one student's mark inside a session.
type AttendanceRecord struct {
	BaseModel
	SessionID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uix_session_student" json:"session_id"`
	StudentID uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:uix_session_student" json:"student_id"`
	Status    RecordStatus `gorm:"type:varchar(16);not null" json:"status"`
	Remarks   string       `gorm:"type:varchar(400)" json:"remarks"`
	Student   *Student     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (AttendanceRecord) TableName() string { return "attendance_records" }

// Counted reports whether the record counts toward students present.
func (r AttendanceRecord) Counted() bool {
	return r.Status == RecordPresent || r.Status == RecordLate
}

// WorkDiary is a faculty activity record, derived from an attendance session
// or authored by hand, flowing through the approval workflow.
type WorkDiary struct {
	BaseModel
	DiaryNumber         string             `gorm:"type:varchar(64);not null;uniqueIndex" json:"diary_number"`
	FacultyID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"faculty_id"`
	SubjectID           *uuid.UUID         `gorm:"type:uuid" json:"subject_id,omitempty"`
	SectionID           *uuid.UUID         `gorm:"type:uuid" json:"section_id,omitempty"`
	SemesterID          *uuid.UUID         `gorm:"type:uuid" json:"semester_id,omitempty"`
	AcademicYear        string             `gorm:"type:varchar(32)" json:"academic_year"`
	Date                time.Time          `gorm:"type:date;not null;index" json:"date"`
	StartTime           string             `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime             string             `gorm:"type:varchar(5);not null" json:"end_time"`
	DurationHours       float64            `json:"duration_hours"`
	ActivityType        ActivityType       `gorm:"type:varchar(32);not null" json:"activity_type"`
	AttendanceSessionID *uuid.UUID         `gorm:"type:uuid;uniqueIndex" json:"attendance_session_id,omitempty"`
	StudentsPresent     int                `gorm:"not null;default:0" json:"students_present"`
	TotalStudents       int                `gorm:"not null;default:0" json:"total_students"`
	ActivityTitle       string             `gorm:"type:varchar(255)" json:"activity_title"`
	ActivityDescription string             `gorm:"type:text" json:"activity_description"`
	Location            string             `gorm:"type:varchar(128)" json:"location"`
	TopicsCovered       string             `gorm:"type:text" json:"topics_covered"`
	Status              DiaryStatus        `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`
	SubmittedAt         *time.Time         `json:"submitted_at,omitempty"`
	ApprovedBy          *uuid.UUID         `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt          *time.Time         `json:"approved_at,omitempty"`
	ApprovalRemarks     string             `gorm:"type:text" json:"approval_remarks"`
	AttachmentURL       *string            `gorm:"type:varchar(500)" json:"attachment_url,omitempty"`
	Faculty             *Faculty           `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Subject             *Subject           `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Section             *Section           `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	AttendanceSession   *AttendanceSession `gorm:"foreignKey:AttendanceSessionID" json:"attendance_session,omitempty"`
}

func (WorkDiary) TableName() string { return "work_diaries" }

// IsManual reports whether the diary was authored by hand rather than
// derived from an attendance session.
func (d *WorkDiary) IsManual() bool {
	return d.AttendanceSessionID == nil
}

// ImportLog is the audit record of one bulk import run. It is never soft
// deleted and never mutated after finalization.
type ImportLog struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ImportType     ImportType   `gorm:"type:varchar(16);not null" json:"import_type"`
	ImportedBy     uuid.UUID    `gorm:"type:uuid;not null" json:"imported_by"`
	FileName       string       `gorm:"type:varchar(255)" json:"file_name"`
	FileURL        *string      `gorm:"type:varchar(500)" json:"file_url,omitempty"`
	TotalRows      int          `gorm:"not null;default:0" json:"total_rows"`
	SuccessfulRows int          `gorm:"not null;default:0" json:"successful_rows"`
	FailedRows     int          `gorm:"not null;default:0" json:"failed_rows"`
	Status         ImportStatus `gorm:"type:varchar(16);not null;default:'processing'" json:"status"`
	ErrorLog       RowErrorList `gorm:"type:jsonb" json:"error_log,omitempty"`
	ImportData     RowDataList  `gorm:"type:jsonb" json:"-"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	ImportedUser   *User        `gorm:"foreignKey:ImportedBy" json:"imported_user,omitempty"`
}

func (ImportLog) TableName() string { return "import_logs" }

// CampusCheckIn
type CampusCheckIn struct {
	BaseModel
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CheckInAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at,omitempty"`
	Method     string     `gorm:"type:varchar(32);default:'manual'" json:"method"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CampusCheckIn) TableName() string { return "campus_check_ins" }

// Test
type Test struct {
	BaseModel
	SubjectID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"subject_id"`
	SectionID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"section_id"`
	FacultyID  uuid.UUID  `gorm:"type:uuid;not null" json:"faculty_id"`
	SemesterID *uuid.UUID `gorm:"type:uuid" json:"semester_id,omitempty"`
	Name       string     `gorm:"type:varchar(128);not null" json:"name"`
	Date       time.Time  `gorm:"type:date;not null" json:"date"`
	MaxMarks   float64    `gorm:"not null;default:100" json:"max_marks"`
	Subject    *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Section    *Section   `gorm:"foreignKey:SectionID" json:"section,omitempty"`
}

func (Test) TableName() string { return "tests" }

// TestResult
type TestResult struct {
	BaseModel
	TestID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uix_test_student" json:"test_id"`
	StudentID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uix_test_student" json:"student_id"`
	MarksObtained float64   `gorm:"not null;default:0" json:"marks_obtained"`
	Remarks       string    `gorm:"type:varchar(255)" json:"remarks"`
	Test          *Test     `gorm:"foreignKey:TestID" json:"test,omitempty"`
	Student       *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (TestResult) TableName() string { return "test_results" }

// StudentSubjectEnrollment covers elective subjects taken outside the
// student's own section.
type StudentSubjectEnrollment struct {
	BaseModel
	StudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uix_student_subject" json:"student_id"`
	SubjectID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uix_student_subject" json:"subject_id"`
	AcademicYear string    `gorm:"type:varchar(32)" json:"academic_year"`
	Student      *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Subject      *Subject  `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (StudentSubjectEnrollment) TableName() string { return "student_subject_enrollments" }

// ============================================================================
// HOOKS FOR UUID GENERATION
// ============================================================================

func setUUIDIfEmpty(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&b.ID)
	return nil
}

func (m *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

func (m *ImportLog) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}

// AllModels lists every model for auto migration, ordered so that foreign
// key targets migrate before their referrers.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&RefreshToken{},
		&Faculty{},
		&Program{},
		&Section{},
		&Semester{},
		&Student{},
		&Subject{},
		&SubjectAllocation{},
		&ClassSchedule{},
		&AttendanceSession{},
		&AttendanceRecord{},
		&WorkDiary{},
		&ImportLog{},
		&CampusCheckIn{},
		&Test{},
		&TestResult{},
		&StudentSubjectEnrollment{},
	}
}
