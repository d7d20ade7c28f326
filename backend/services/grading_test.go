package services

import (
	"context"
	"math"
	"testing"

	"marketplace/backend/apperr"
	"marketplace/backend/models"
	"marketplace/backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeAttachment(t *testing.T) {
	db := testutil.DB(t)
	svc := NewGradingService(db, testutil.Logger(t))
	owner := testutil.SeedInstructor(t, db)
	intruder := testutil.SeedInstructor(t, db)
	student := testutil.SeedStudent(t, db)
	course := testutil.SeedCourse(t, db, owner.ID, "go-backend")
	section := testutil.SeedSection(t, db, course.ID, "S")
	lesson := testutil.SeedLesson(t, db, section.ID, "L")
	assignment := testutil.SeedAssignment(t, db, lesson.ID, 20)
	attachment := testutil.SeedAttachment(t, db, assignment.ID, student.ID)
	ctx := context.Background()

	gradeOf := func() *float64 {
		var a models.Attachment
		require.NoError(t, db.First(&a, attachment.ID).Error)
		return a.Grade
	}

	t.Run("stores grade within range", func(t *testing.T) {
		require.NoError(t, svc.GradeAttachment(ctx, owner.ID, attachment.ID, 17.5))
		require.NotNil(t, gradeOf())
		assert.InDelta(t, 17.5, *gradeOf(), 0.001)

		require.NoError(t, svc.GradeAttachment(ctx, owner.ID, attachment.ID, 20))
		assert.InDelta(t, 20, *gradeOf(), 0.001)
		require.NoError(t, svc.GradeAttachment(ctx, owner.ID, attachment.ID, 0))
		assert.InDelta(t, 0, *gradeOf(), 0.001)
	})

	t.Run("rejects out of range grades", func(t *testing.T) {
		for _, grade := range []float64{-1, 20.01, math.NaN()} {
			err := svc.GradeAttachment(ctx, owner.ID, attachment.ID, grade)
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, "grade")
		}
		assert.InDelta(t, 0, *gradeOf(), 0.001)
	})

	t.Run("rejects non owning instructor", func(t *testing.T) {
		err := svc.GradeAttachment(ctx, intruder.ID, attachment.ID, 5)
		var authz *apperr.AuthorizationError
		assert.ErrorAs(t, err, &authz)
		assert.InDelta(t, 0, *gradeOf(), 0.001)
	})

	t.Run("missing attachment", func(t *testing.T) {
		err := svc.GradeAttachment(ctx, owner.ID, 4242, 5)
		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "attachment", nf.Entity)
	})
}
