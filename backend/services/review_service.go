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

type ReviewService struct {
	db    *gorm.DB
	cache cache.CourseCache
	log   *utils.Logger
}

func NewReviewService(db *gorm.DB, courseCache cache.CourseCache, logger *utils.Logger) *ReviewService {
	if courseCache == nil {
		courseCache = cache.NopCache{}
	}
	return &ReviewService{db: db, cache: courseCache, log: logger.With("service", "reviews")}
}

// CreateOrUpdateReview keeps one review per (student, course) and refreshes the course
// rating in the same transaction.
func (s *ReviewService) CreateOrUpdateReview(ctx context.Context, studentID uuid.UUID, req dto.ReviewRequest) error {
	if err := dto.Validate(req); err != nil {
		return err
	}

	var slug string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Select("id", "slug").First(&course, "id = ?", req.CourseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("course", req.CourseID)
			}
			return err
		}
		slug = course.Slug

		if err := requireEnrollment(tx, studentID, course.ID); err != nil {
			return err
		}

		var review models.Review
		err := tx.Where("student_id = ? AND course_id = ?", studentID, course.ID).First(&review).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = models.Review{
				CourseID:      course.ID,
				StudentID:     studentID,
				ReviewContent: req.ReviewContent,
				Rate:          req.Rate,
				CreatedAt:     nowUTC(),
			}
			if err := tx.Omit("Student").Create(&review).Error; err != nil {
				return translateConflict(err, "review already exists for this course")
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&review).UpdateColumns(map[string]interface{}{
				"review_content": req.ReviewContent,
				"rate":           req.Rate,
			}).Error; err != nil {
				return err
			}
		}

		return RecalculateCourseRating(tx, course.ID)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, slug)
	s.log.Info("review saved", "course_id", req.CourseID, "student_id", studentID, "rate", req.Rate)
	return nil
}
