package dto

import (
	"errors"
	"testing"

	"marketplace/backend/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCourse() CourseUpsertRequest {
	return CourseUpsertRequest{
		Title:            "Go for backend developers",
		Slug:             "go-backend",
		ShortDescription: "Services in Go",
		Description:      "From net/http to production",
		Category:         "Programming",
		Level:            "Intermediate",
		Language:         "en",
		Instructions:     "Bring a laptop",
		Price:            49,
	}
}

func TestValidateAcceptsWellFormedTree(t *testing.T) {
	req := validCourse()
	req.Sections = []SectionNode{{
		Title: "Basics", ShortDescription: "s", Description: "d",
		Lessons: []LessonNode{{
			Title: "Hello", Description: "d",
			Assignments: []AssignmentNode{{AssignmentNumber: 1, Title: "hw", Description: "d", MaxScore: 100}},
		}},
	}}
	assert.NoError(t, Validate(req))
}

func TestValidateReportsNestedFieldPaths(t *testing.T) {
	req := validCourse()
	req.Price = -1
	req.Sections = []SectionNode{{
		Title: "Basics", ShortDescription: "s", Description: "d",
		Lessons: []LessonNode{{
			Title: "", Description: "d",
			Assignments: []AssignmentNode{{AssignmentNumber: 0, Title: "hw", Description: "d", MaxScore: 1001}},
		}},
	}}

	err := Validate(req)
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "gte", ve.Fields["price"])
	assert.Equal(t, "required", ve.Fields["sections[0].lessons[0].title"])
	assert.Equal(t, "gte", ve.Fields["sections[0].lessons[0].assignments[0].assignment_number"])
	assert.Equal(t, "lte", ve.Fields["sections[0].lessons[0].assignments[0].max_score"])
}

func TestValidateReviewRate(t *testing.T) {
	err := Validate(ReviewRequest{ReviewContent: "great", Rate: 6})
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "max", ve.Fields["rate"])
	assert.Equal(t, "required", ve.Fields["course_id"])
}
