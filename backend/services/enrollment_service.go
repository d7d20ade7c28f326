package services

import (
	"context"
	"errors"

	"marketplace/backend/apperr"
	"marketplace/backend/cache"
	"marketplace/backend/dto"
	"marketplace/backend/models"
	"marketplace/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentService drives the enrollment state machine and student submissions.
type EnrollmentService struct {
	db    *gorm.DB
	cache cache.CourseCache
	log   *utils.Logger
}

func NewEnrollmentService(db *gorm.DB, courseCache cache.CourseCache, logger *utils.Logger) *EnrollmentService {
	if courseCache == nil {
		courseCache = cache.NopCache{}
	}
	return &EnrollmentService{db: db, cache: courseCache, log: logger.With("service", "enrollments")}
}

// Enroll activates the (student, course) record. A cancelled record is reactivated in
// place with a fresh enrollment time; an active or completed one is left as is.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID uuid.UUID) error {
	if courseID == uuid.Nil {
		return apperr.InvalidField("course_id", "required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Course{}).Where("id = ?", courseID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("course", courseID)
		}

		var enrollment models.Enrollment
		err := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			enrollment = models.Enrollment{
				StudentID:  studentID,
				CourseID:   courseID,
				Status:     models.EnrollmentActive,
				EnrolledAt: nowUTC(),
			}
			if err := tx.Omit("Student").Create(&enrollment).Error; err != nil {
				// A concurrent enroll of the same pair already produced the row.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return nil
				}
				return err
			}
			s.log.Info("student enrolled", "student_id", studentID, "course_id", courseID)
			return nil
		case err != nil:
			return err
		}

		if enrollment.Status != models.EnrollmentCancelled {
			return nil
		}
		if err := tx.Model(&models.Enrollment{}).
			Where("student_id = ? AND course_id = ?", studentID, courseID).
			UpdateColumns(map[string]interface{}{
				"status":      models.EnrollmentActive,
				"enrolled_at": nowUTC(),
			}).Error; err != nil {
			return err
		}
		s.log.Info("enrollment reactivated", "student_id", studentID, "course_id", courseID)
		return nil
	})
}

// CancelEnrollment moves an active enrollment to cancelled. Missing enrollments are ignored.
func (s *EnrollmentService) CancelEnrollment(ctx context.Context, studentID, courseID uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, models.EnrollmentActive).
		UpdateColumn("status", models.EnrollmentCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.log.Info("enrollment cancelled", "student_id", studentID, "course_id", courseID)
	}
	return nil
}

// SubmitAttachment stores an ungraded submission for an assignment of a course the
// student is enrolled in.
func (s *EnrollmentService) SubmitAttachment(ctx context.Context, studentID uuid.UUID, req dto.AttachmentSubmitRequest) (*models.Attachment, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var attachment models.Attachment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assignment models.Assignment
		if err := tx.First(&assignment, req.AssignmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("assignment", req.AssignmentID)
			}
			return err
		}

		var lesson models.Lesson
		if err := tx.Select("id", "section_id").First(&lesson, assignment.LessonID).Error; err != nil {
			return err
		}
		var section models.Section
		if err := tx.Select("id", "course_id").First(&section, lesson.SectionID).Error; err != nil {
			return err
		}
		if err := requireEnrollment(tx, studentID, section.CourseID); err != nil {
			return err
		}

		attachment = models.Attachment{
			AssignmentID: assignment.ID,
			StudentID:    studentID,
			Title:        req.Title,
			Description:  req.Description,
			PdfURL:       req.PdfURL,
			CreatedAt:    nowUTC(),
		}
		return tx.Omit("Student").Create(&attachment).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("attachment submitted", "attachment_id", attachment.ID, "student_id", studentID)
	return &attachment, nil
}
