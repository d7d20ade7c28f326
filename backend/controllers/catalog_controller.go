package controllers

import (
	"marketplace/backend/models"
	"marketplace/backend/services"
	"marketplace/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogController struct {
	Courses *services.CourseService
	Log     *utils.Logger
}

func NewCatalogController(courses *services.CourseService, logger *utils.Logger) *CatalogController {
	return &CatalogController{Courses: courses, Log: logger}
}

// [+] GetCourseBySlug godoc
// @Summary Public course page
// @Description is_enrolled is filled for an authenticated student.
// @Tags courses
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{slug} [get]
func (cc *CatalogController) GetCourseBySlug(c *fiber.Ctx) error {
	var viewerID *uuid.UUID
	if s, ok := utils.CurrentSession(c); ok && s.Role == models.RoleStudent {
		viewerID = &s.UserID
	}

	details, err := cc.Courses.GetCourseBySlug(c.UserContext(), c.Params("slug"), viewerID)
	if err != nil {
		return utils.HandleError(c, cc.Log, err)
	}
	return utils.OK(c, details)
}
