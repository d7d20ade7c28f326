package services

import (
	"errors"

	"marketplace/backend/apperr"
	"marketplace/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The loaders below walk the ownership chain upward to the course and fail with
// NotFound before Forbidden.

func loadOwnedCourse(tx *gorm.DB, ownerID, courseID uuid.UUID) (*models.Course, error) {
	var course models.Course
	if err := tx.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course", courseID)
		}
		return nil, err
	}
	if course.InstructorID != ownerID {
		return nil, apperr.Forbidden("course belongs to another instructor")
	}
	return &course, nil
}

func loadOwnedSection(tx *gorm.DB, ownerID uuid.UUID, sectionID uint) (*models.Section, *models.Course, error) {
	var section models.Section
	if err := tx.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("section", sectionID)
		}
		return nil, nil, err
	}
	course, err := loadOwnedCourse(tx, ownerID, section.CourseID)
	if err != nil {
		return nil, nil, err
	}
	return &section, course, nil
}

func loadOwnedLesson(tx *gorm.DB, ownerID uuid.UUID, lessonID uint) (*models.Lesson, *models.Section, *models.Course, error) {
	var lesson models.Lesson
	if err := tx.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, apperr.NotFound("lesson", lessonID)
		}
		return nil, nil, nil, err
	}
	section, course, err := loadOwnedSection(tx, ownerID, lesson.SectionID)
	if err != nil {
		return nil, nil, nil, err
	}
	return &lesson, section, course, nil
}

// requireEnrollment fails unless the student holds an active or completed enrollment.
func requireEnrollment(tx *gorm.DB, studentID, courseID uuid.UUID) error {
	var count int64
	err := tx.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND status IN ?", studentID, courseID,
			[]string{string(models.EnrollmentActive), string(models.EnrollmentCompleted)}).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.Forbidden("student is not enrolled in this course")
	}
	return nil
}

func touchCourse(tx *gorm.DB, course *models.Course) error {
	return tx.Model(&models.Course{}).Omit(clause.Associations).
		Where("id = ?", course.ID).
		UpdateColumn("updated_at", nowUTC()).Error
}

func translateConflict(err error, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(message)
	}
	return err
}
