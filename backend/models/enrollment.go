package models

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// Enrollment is keyed by (student, course); cancelling keeps the row.
type Enrollment struct {
	StudentID  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CourseID   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Student    *User            `gorm:"foreignKey:StudentID"`
	Status     EnrollmentStatus `gorm:"size:20;not null"`
	EnrolledAt time.Time        `gorm:"not null"`
}

type Review struct {
	ID            uint      `gorm:"primaryKey"`
	CourseID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_student_course,priority:2"`
	StudentID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_student_course,priority:1"`
	Student       *User     `gorm:"foreignKey:StudentID"`
	ReviewContent string    `gorm:"size:2000;not null"`
	Rate          int       `gorm:"not null;check:rate >= 1 AND rate <= 5"`
	CreatedAt     time.Time
}

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&Section{},
		&Lesson{},
		&Assignment{},
		&Attachment{},
		&Faq{},
		&Review{},
		&Enrollment{},
	}
}
