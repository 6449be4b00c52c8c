package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// User model
type User struct {
	BaseModel
	Username string `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
	Email    string `json:"email" gorm:"size:255"`
	Role     string `json:"role" gorm:"size:50;not null;default:'teacher'"` // owner, admin, teacher
	Status   string `json:"status" gorm:"size:50;not null;default:'active'"` // active, inactive
	Avatar   string `json:"avatar" gorm:"size:500"`
}

// Grade model (top-level academic level, e.g. "5to Grado")
type Grade struct {
	BaseModel
	Nombre string `json:"nombre" gorm:"size:50;not null"`

	// Relationships
	Sections []Section `json:"sections,omitempty" gorm:"foreignKey:GradeID;constraint:OnDelete:CASCADE"`
}

// Section model (class grouping within a grade, e.g. "A")
type Section struct {
	BaseModel
	Nombre  string `json:"nombre" gorm:"size:10;not null"`
	GradeID uint   `json:"grade_id" gorm:"not null;index"`

	// Relationships
	Grade    Grade     `json:"grade,omitempty" gorm:"foreignKey:GradeID"`
	Students []Student `json:"students,omitempty" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

// Student model
type Student struct {
	BaseModel
	Nombre    string `json:"nombre" gorm:"size:100;not null"`
	DNI       string `json:"dni" gorm:"size:15;index"`
	FotoURL   string `json:"foto_url" gorm:"size:500"`
	SectionID uint   `json:"section_id" gorm:"not null;index"`

	// Relationships
	Section Section          `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	Marks   []AttendanceMark `json:"marks,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// AttendanceMark records one presence observation for a student on a date.
// (student, fecha) is intentionally NOT unique: saving attendance twice for the
// same day duplicates marks, matching the register's observed behavior. The
// composite index below exists for range queries only.
type AttendanceMark struct {
	BaseModel
	Fecha     time.Time `json:"fecha" gorm:"type:date;not null;index:idx_marks_student_fecha"`
	Estado    string    `json:"estado" gorm:"size:1;not null"` // P, A, T
	StudentID uint      `json:"student_id" gorm:"not null;index:idx_marks_student_fecha"`

	// Relationships
	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

// Course model (academic planning tree root)
type Course struct {
	BaseModel
	Nombre string `json:"nombre" gorm:"size:100;not null"`

	// Relationships
	Competencies []Competency `json:"competencies,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// Competency model
type Competency struct {
	BaseModel
	Nombre   string `json:"nombre" gorm:"size:200;not null"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`

	// Relationships
	Course       Course       `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Capabilities []Capability `json:"capabilities,omitempty" gorm:"foreignKey:CompetencyID;constraint:OnDelete:CASCADE"`
}

// Capability model
type Capability struct {
	BaseModel
	Nombre       string `json:"nombre" gorm:"size:200;not null"`
	CompetencyID uint   `json:"competency_id" gorm:"not null;index"`

	// Relationships
	Competency Competency `json:"competency,omitempty" gorm:"foreignKey:CompetencyID"`
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// LogArchive model for tracking archived logs
type LogArchive struct {
	BaseModel
	FileName    string    `json:"file_name" gorm:"size:255;not null"`
	S3Key       string    `json:"s3_key" gorm:"size:500;not null"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	RecordCount int       `json:"record_count" gorm:"not null"`
	FileSize    int64     `json:"file_size" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'pending'"` // pending, completed, failed
	Error       string    `json:"error" gorm:"type:text"`
}
