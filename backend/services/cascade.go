package services

import (
	"marketplace/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The delete helpers remove rows leaves-first so foreign keys are never violated:
// attachments, assignments, lessons, sections, then the course-level records.

func deleteAssignments(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("assignment_id IN ?", ids).Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Assignment{}).Error
}

func deleteLessons(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var assignmentIDs []uint
	if err := tx.Model(&models.Assignment{}).Where("lesson_id IN ?", ids).Pluck("id", &assignmentIDs).Error; err != nil {
		return err
	}
	if err := deleteAssignments(tx, assignmentIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Lesson{}).Error
}

func deleteSections(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var lessonIDs []uint
	if err := tx.Model(&models.Lesson{}).Where("section_id IN ?", ids).Pluck("id", &lessonIDs).Error; err != nil {
		return err
	}
	if err := deleteLessons(tx, lessonIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Section{}).Error
}

func deleteCourseTree(tx *gorm.DB, courseID uuid.UUID) error {
	var sectionIDs []uint
	if err := tx.Model(&models.Section{}).Where("course_id = ?", courseID).Pluck("id", &sectionIDs).Error; err != nil {
		return err
	}
	if err := deleteSections(tx, sectionIDs); err != nil {
		return err
	}
	if err := tx.Where("course_id = ?", courseID).Delete(&models.Faq{}).Error; err != nil {
		return err
	}
	if err := tx.Where("course_id = ?", courseID).Delete(&models.Review{}).Error; err != nil {
		return err
	}
	if err := tx.Where("course_id = ?", courseID).Delete(&models.Enrollment{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", courseID).Delete(&models.Course{}).Error
}
