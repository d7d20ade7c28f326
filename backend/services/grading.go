package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"marketplace/backend/apperr"
	"marketplace/backend/models"
	"marketplace/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GradingService struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewGradingService(db *gorm.DB, logger *utils.Logger) *GradingService {
	return &GradingService{db: db, log: logger.With("service", "grading")}
}

// GradeAttachment resolves Attachment -> Assignment -> Lesson -> Section -> Course and
// stores the grade when the caller owns the course and the grade fits the assignment.
func (s *GradingService) GradeAttachment(ctx context.Context, instructorID uuid.UUID, attachmentID uint, grade float64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attachment models.Attachment
		if err := tx.First(&attachment, attachmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("attachment", attachmentID)
			}
			return err
		}

		var assignment models.Assignment
		if err := tx.First(&assignment, attachment.AssignmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("assignment", attachment.AssignmentID)
			}
			return err
		}

		if _, _, _, err := loadOwnedLesson(tx, instructorID, assignment.LessonID); err != nil {
			return err
		}

		if math.IsNaN(grade) || grade < 0 || grade > assignment.MaxScore {
			return apperr.InvalidField("grade", fmt.Sprintf("must be between 0 and %g", assignment.MaxScore))
		}

		if err := tx.Model(&models.Attachment{}).
			Where("id = ?", attachment.ID).
			UpdateColumn("grade", grade).Error; err != nil {
			return err
		}

		s.log.Info("attachment graded", "attachment_id", attachment.ID, "grade", grade)
		return nil
	})
}
