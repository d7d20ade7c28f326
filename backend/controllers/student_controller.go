package controllers

import (
	"marketplace/backend/dto"
	"marketplace/backend/services"
	"marketplace/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// StudentController serves enrollment, reviews and submissions for the session student.
type StudentController struct {
	Enrollments *services.EnrollmentService
	Reviews     *services.ReviewService
	Log         *utils.Logger
}

func NewStudentController(enrollments *services.EnrollmentService, reviews *services.ReviewService, logger *utils.Logger) *StudentController {
	return &StudentController{Enrollments: enrollments, Reviews: reviews, Log: logger}
}

// [+] Enroll godoc
// @Summary Enroll in a course
// @Tags student
// @Accept json
// @Param request body dto.EnrollRequest true "Course"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /enrollments [post]
func (sc *StudentController) Enroll(c *fiber.Ctx) error {
	var req dto.EnrollRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, sc.Log, err)
	}
	if err := dto.Validate(req); err != nil {
		return utils.HandleError(c, sc.Log, err)
	}
	if err := sc.Enrollments.Enroll(c.UserContext(), session(c).UserID, req.CourseID); err != nil {
		return utils.HandleError(c, sc.Log, err)
	}
	return utils.NoContent(c)
}

// [+] CancelEnrollment godoc
// @Summary Cancel an enrollment
// @Tags student
// @Param courseId path string true "Course ID"
// @Success 204
// @Router /enrollments/{courseId} [delete]
func (sc *StudentController) CancelEnrollment(c *fiber.Ctx) error {
	courseID, err := uuidParam(c, "courseId")
	if err != nil {
		return utils.HandleError(c, sc.Log, err)
	}
	if err := sc.Enrollments.CancelEnrollment(c.UserContext(), session(c).UserID, courseID); err != nil {
		return utils.HandleError(c, sc.Log, err)
	}
	return utils.NoContent(c)
}

// [+] CreateOrUpdateReview godoc
// @Summary Review a course
// @Description A student keeps a single review per course; posting again replaces it.
// @Tags student
// @Accept json
// @Param request body dto.ReviewRequest true "Review"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /reviews [post]
func (sc *StudentController) CreateOrUpdateReview(c *fiber.Ctx) error {
	var req dto.ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, sc.Log, err)
	}
	if err := sc.Reviews.CreateOrUpdateReview(c.UserContext(), session(c).UserID, req); err != nil {
		return utils.HandleError(c, sc.Log, err)
	}
	return utils.NoContent(c)
}

// [+] SubmitAttachment godoc
// @Summary Submit work for an assignment
// @Tags student
// @Accept json
// @Param request body dto.AttachmentSubmitRequest true "Submission"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /attachments [post]
func (sc *StudentController) SubmitAttachment(c *fiber.Ctx) error {
	var req dto.AttachmentSubmitRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, sc.Log, err)
	}
	if _, err := sc.Enrollments.SubmitAttachment(c.UserContext(), session(c).UserID, req); err != nil {
		return utils.HandleError(c, sc.Log, err)
	}
	return utils.NoContent(c)
}
