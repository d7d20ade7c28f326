package testutil

import (
	"fmt"
	"testing"
	"time"

	"marketplace/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, db *gorm.DB, role models.Role, email string) *models.User {
	tb.Helper()
	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     string(role),
		Role:         role,
	}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedInstructor(tb testing.TB, db *gorm.DB) *models.User {
	tb.Helper()
	return SeedUser(tb, db, models.RoleInstructor, fmt.Sprintf("instructor-%s@example.com", uuid.NewString()[:8]))
}

func SeedStudent(tb testing.TB, db *gorm.DB) *models.User {
	tb.Helper()
	return SeedUser(tb, db, models.RoleStudent, fmt.Sprintf("student-%s@example.com", uuid.NewString()[:8]))
}

func SeedCourse(tb testing.TB, db *gorm.DB, instructorID uuid.UUID, slug string) *models.Course {
	tb.Helper()
	c := &models.Course{
		ID:               uuid.New(),
		InstructorID:     instructorID,
		Title:            "Course " + slug,
		Slug:             slug,
		ShortDescription: "short",
		Description:      "description",
		Category:         "programming",
		Level:            "beginner",
		Language:         "en",
		Instructions:     "instructions",
		Price:            10,
		DurationHours:    3,
	}
	if err := db.Omit("Instructor").Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedSection(tb testing.TB, db *gorm.DB, courseID uuid.UUID, title string) *models.Section {
	tb.Helper()
	s := &models.Section{CourseID: courseID, Title: title, ShortDescription: "short", Description: "description"}
	if err := db.Create(s).Error; err != nil {
		tb.Fatalf("seed section: %v", err)
	}
	return s
}

func SeedLesson(tb testing.TB, db *gorm.DB, sectionID uint, title string) *models.Lesson {
	tb.Helper()
	l := &models.Lesson{SectionID: sectionID, Title: title, Description: "description"}
	if err := db.Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedAssignment(tb testing.TB, db *gorm.DB, lessonID uint, maxScore float64) *models.Assignment {
	tb.Helper()
	a := &models.Assignment{
		LessonID:         lessonID,
		AssignmentNumber: 1,
		Title:            "assignment",
		Description:      "description",
		MaxScore:         maxScore,
	}
	if err := db.Create(a).Error; err != nil {
		tb.Fatalf("seed assignment: %v", err)
	}
	return a
}

func SeedAttachment(tb testing.TB, db *gorm.DB, assignmentID uint, studentID uuid.UUID) *models.Attachment {
	tb.Helper()
	a := &models.Attachment{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Title:        "submission",
		Description:  "my work",
	}
	if err := db.Omit("Student").Create(a).Error; err != nil {
		tb.Fatalf("seed attachment: %v", err)
	}
	return a
}

func SeedEnrollment(tb testing.TB, db *gorm.DB, studentID, courseID uuid.UUID, status models.EnrollmentStatus) *models.Enrollment {
	tb.Helper()
	e := &models.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		Status:     status,
		EnrolledAt: time.Now().UTC().Add(-time.Hour),
	}
	if err := db.Omit("Student").Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}
