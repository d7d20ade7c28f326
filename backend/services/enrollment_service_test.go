package services

import (
	"context"
	"testing"

	"marketplace/backend/apperr"
	"marketplace/backend/dto"
	"marketplace/backend/models"
	"marketplace/backend/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func loadEnrollments(t *testing.T, db *gorm.DB, studentID, courseID uuid.UUID) []models.Enrollment {
	t.Helper()
	var rows []models.Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", studentID, courseID).Find(&rows).Error)
	return rows
}

func TestEnrollCancelEnrollReusesRecord(t *testing.T) {
	db := testutil.DB(t)
	svc := NewEnrollmentService(db, nil, testutil.Logger(t))
	owner := testutil.SeedInstructor(t, db)
	student := testutil.SeedStudent(t, db)
	course := testutil.SeedCourse(t, db, owner.ID, "go-backend")
	ctx := context.Background()

	require.NoError(t, svc.Enroll(ctx, student.ID, course.ID))
	rows := loadEnrollments(t, db, student.ID, course.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.EnrollmentActive, rows[0].Status)

	require.NoError(t, svc.CancelEnrollment(ctx, student.ID, course.ID))
	rows = loadEnrollments(t, db, student.ID, course.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.EnrollmentCancelled, rows[0].Status)

	// push the original enrollment time back so the refresh is observable
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		UpdateColumn("enrolled_at", rows[0].EnrolledAt.AddDate(0, 0, -7)).Error)
	before := loadEnrollments(t, db, student.ID, course.ID)[0].EnrolledAt

	require.NoError(t, svc.Enroll(ctx, student.ID, course.ID))
	rows = loadEnrollments(t, db, student.ID, course.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.EnrollmentActive, rows[0].Status)
	assert.True(t, rows[0].EnrolledAt.After(before))
}

func TestEnrollIsNoopWhenActiveOrCompleted(t *testing.T) {
	db := testutil.DB(t)
	svc := NewEnrollmentService(db, nil, testutil.Logger(t))
	owner := testutil.SeedInstructor(t, db)
	course := testutil.SeedCourse(t, db, owner.ID, "go-backend")
	ctx := context.Background()

	for _, status := range []models.EnrollmentStatus{models.EnrollmentActive, models.EnrollmentCompleted} {
		student := testutil.SeedStudent(t, db)
		seeded := testutil.SeedEnrollment(t, db, student.ID, course.ID, status)

		require.NoError(t, svc.Enroll(ctx, student.ID, course.ID))
		rows := loadEnrollments(t, db, student.ID, course.ID)
		require.Len(t, rows, 1)
		assert.Equal(t, status, rows[0].Status)
		assert.True(t, rows[0].EnrolledAt.Equal(seeded.EnrolledAt))
	}
}

func TestEnrollUnknownCourse(t *testing.T) {
	db := testutil.DB(t)
	svc := NewEnrollmentService(db, nil, testutil.Logger(t))
	student := testutil.SeedStudent(t, db)

	err := svc.Enroll(context.Background(), student.ID, uuid.New())
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCancelWithoutEnrollmentIsNoop(t *testing.T) {
	db := testutil.DB(t)
	svc := NewEnrollmentService(db, nil, testutil.Logger(t))
	owner := testutil.SeedInstructor(t, db)
	student := testutil.SeedStudent(t, db)
	course := testutil.SeedCourse(t, db, owner.ID, "go-backend")

	require.NoError(t, svc.CancelEnrollment(context.Background(), student.ID, course.ID))
	assert.Empty(t, loadEnrollments(t, db, student.ID, course.ID))

	testutil.SeedEnrollment(t, db, student.ID, course.ID, models.EnrollmentCompleted)
	require.NoError(t, svc.CancelEnrollment(context.Background(), student.ID, course.ID))
	assert.Equal(t, models.EnrollmentCompleted, loadEnrollments(t, db, student.ID, course.ID)[0].Status)
}

func TestSubmitAttachment(t *testing.T) {
	db := testutil.DB(t)
	svc := NewEnrollmentService(db, nil, testutil.Logger(t))
	owner := testutil.SeedInstructor(t, db)
	student := testutil.SeedStudent(t, db)
	outsider := testutil.SeedStudent(t, db)
	course := testutil.SeedCourse(t, db, owner.ID, "go-backend")
	section := testutil.SeedSection(t, db, course.ID, "S")
	lesson := testutil.SeedLesson(t, db, section.ID, "L")
	assignment := testutil.SeedAssignment(t, db, lesson.ID, 10)
	testutil.SeedEnrollment(t, db, student.ID, course.ID, models.EnrollmentActive)
	ctx := context.Background()

	req := dto.AttachmentSubmitRequest{AssignmentID: assignment.ID, Title: "my work", Description: "see pdf"}

	attachment, err := svc.SubmitAttachment(ctx, student.ID, req)
	require.NoError(t, err)
	assert.NotZero(t, attachment.ID)
	assert.Equal(t, student.ID, attachment.StudentID)
	assert.Nil(t, attachment.Grade)

	_, err = svc.SubmitAttachment(ctx, outsider.ID, req)
	var authz *apperr.AuthorizationError
	assert.ErrorAs(t, err, &authz)

	req.AssignmentID = 999
	_, err = svc.SubmitAttachment(ctx, student.ID, req)
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
