package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is the root of the authoring tree. Descendants reference their parent by id
// only; the slices below exist for preloading read models.
type Course struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	InstructorID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	Instructor       *User      `gorm:"foreignKey:InstructorID"`
	Title            string     `gorm:"size:300;not null"`
	Slug             string     `gorm:"size:350;uniqueIndex;not null"`
	ShortDescription string     `gorm:"size:500;not null"`
	Description      string     `gorm:"size:4000;not null"`
	Category         string     `gorm:"size:100;not null"`
	Level            string     `gorm:"size:50;not null"`
	Language         string     `gorm:"size:50;not null"`
	Instructions     string     `gorm:"size:2000;not null"`
	Price            float64    `gorm:"type:decimal(18,2);not null;default:0"`
	DurationHours    int        `gorm:"not null;default:0"`
	ThumbnailURL     *string    `gorm:"size:500"`
	PublishedAt      *time.Time
	RatingAvg        float64 `gorm:"type:decimal(3,2);not null;default:0"`
	ReviewsCount     int     `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Sections    []Section    `gorm:"foreignKey:CourseID"`
	Faqs        []Faq        `gorm:"foreignKey:CourseID"`
	Reviews     []Review     `gorm:"foreignKey:CourseID"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Section struct {
	ID               uint      `gorm:"primaryKey"`
	CourseID         uuid.UUID `gorm:"type:uuid;index;not null"`
	Title            string    `gorm:"size:250;not null"`
	ShortDescription string    `gorm:"size:500;not null"`
	Description      string    `gorm:"size:4000;not null"`
	Lessons          []Lesson  `gorm:"foreignKey:SectionID"`
}

type Lesson struct {
	ID          uint         `gorm:"primaryKey"`
	SectionID   uint         `gorm:"index;not null"`
	Title       string       `gorm:"size:250;not null"`
	Description string       `gorm:"size:2000;not null"`
	VideoURL    *string      `gorm:"size:500"`
	Assignments []Assignment `gorm:"foreignKey:LessonID"`
}

type Assignment struct {
	ID               uint         `gorm:"primaryKey"`
	LessonID         uint         `gorm:"index;not null"`
	AssignmentNumber int          `gorm:"not null"`
	Title            string       `gorm:"size:250;not null"`
	Description      string       `gorm:"size:2000;not null"`
	PdfURL           *string      `gorm:"size:500"`
	MaxScore         float64      `gorm:"type:decimal(6,2);not null"`
	Attachments      []Attachment `gorm:"foreignKey:AssignmentID"`
}

// Attachment is a student's submission for an assignment.
type Attachment struct {
	ID           uint      `gorm:"primaryKey"`
	AssignmentID uint      `gorm:"index;not null"`
	StudentID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Student      *User     `gorm:"foreignKey:StudentID"`
	Title        string    `gorm:"size:200;not null"`
	Description  string    `gorm:"size:2000;not null"`
	PdfURL       *string   `gorm:"size:500"`
	Grade        *float64  `gorm:"type:decimal(6,2)"`
	CreatedAt    time.Time
}

type Faq struct {
	ID       uint      `gorm:"primaryKey"`
	CourseID uuid.UUID `gorm:"type:uuid;index;not null"`
	Question string    `gorm:"size:500;not null"`
	Answer   string    `gorm:"size:2000;not null"`
}
