package services

import (
	"math"

	"marketplace/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ratingAggregate struct {
	Count int64
	Avg   float64
}

// RecalculateCourseRating recomputes reviews_count and rating_avg from the current review
// set. It must run on the transaction that changed the reviews.
func RecalculateCourseRating(tx *gorm.DB, courseID uuid.UUID) error {
	var agg ratingAggregate
	if err := tx.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rate), 0) AS avg").
		Where("course_id = ?", courseID).
		Scan(&agg).Error; err != nil {
		return err
	}

	return tx.Model(&models.Course{}).
		Where("id = ?", courseID).
		UpdateColumns(map[string]interface{}{
			"rating_avg":    math.Round(agg.Avg*100) / 100,
			"reviews_count": agg.Count,
		}).Error
}
