package controllers

import (
	"marketplace/backend/dto"
	"marketplace/backend/services"
	"marketplace/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// InstructorController exposes course authoring. Every handler runs behind
// AuthMiddleware and RequireRole(Instructor); the session user is the owner.
type InstructorController struct {
	Courses *services.CourseService
	Grading *services.GradingService
	Log     *utils.Logger
}

func NewInstructorController(courses *services.CourseService, grading *services.GradingService, logger *utils.Logger) *InstructorController {
	return &InstructorController{Courses: courses, Grading: grading, Log: logger}
}

// [+] ListCourses godoc
// @Summary List own courses
// @Tags instructor
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse
// @Router /instructor/courses [get]
func (ic *InstructorController) ListCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := ic.Courses.ListOwnedCourses(c.UserContext(), session(c).UserID, page, pageSize)
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.Paginate(c, items, total, page, pageSize)
}

// [+] GetCourse godoc
// @Summary Get an owned course with its full tree
// @Tags instructor
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /instructor/courses/{id} [get]
func (ic *InstructorController) GetCourse(c *fiber.Ctx) error {
	courseID, err := uuidParam(c, "id")
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	details, err := ic.Courses.GetOwnedCourse(c.UserContext(), session(c).UserID, courseID)
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.OK(c, details)
}

// [+] GetCourseStudents godoc
// @Summary List students enrolled in an owned course
// @Tags instructor
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /instructor/courses/{id}/students [get]
func (ic *InstructorController) GetCourseStudents(c *fiber.Ctx) error {
	courseID, err := uuidParam(c, "id")
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	students, err := ic.Courses.GetOwnedCourseStudents(c.UserContext(), session(c).UserID, courseID)
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.OK(c, students)
}

// [+] CreateCourse godoc
// @Summary Create a course with its sections, lessons and assignments
// @Tags instructor
// @Accept json
// @Produce json
// @Param course body dto.CourseUpsertRequest true "Course tree"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /instructor/courses [post]
func (ic *InstructorController) CreateCourse(c *fiber.Ctx) error {
	var req dto.CourseUpsertRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	details, err := ic.Courses.CreateCourse(c.UserContext(), session(c).UserID, req)
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.Created(c, details)
}

// [+] UpdateCourse godoc
// @Summary Synchronize a course tree
// @Description Nodes with an id overwrite the matching child, nodes without one are created,
// @Description and children missing from a non-empty list are deleted with their subtree.
// @Tags instructor
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param course body dto.CourseUpsertRequest true "Course tree"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /instructor/courses/{id} [put]
func (ic *InstructorController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := uuidParam(c, "id")
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	var req dto.CourseUpsertRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	details, err := ic.Courses.UpdateCourse(c.UserContext(), session(c).UserID, courseID, req)
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.OK(c, details)
}

// [+] CreateCourseSimple godoc
// @Summary Create a course without a tree
// @Tags instructor
// @Accept json
// @Produce json
// @Param course body dto.CourseSimpleRequest true "Course"
// @Success 201 {object} utils.SuccessResponse
// @Router /instructor/courses/simple [post]
func (ic *InstructorController) CreateCourseSimple(c *fiber.Ctx) error {
	var req dto.CourseSimpleRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	details, err := ic.Courses.CreateCourseSimple(c.UserContext(), session(c).UserID, req)
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.Created(c, details)
}

// [+] UpdateCourseSimple godoc
// @Summary Update course fields and optionally replace its FAQs
// @Tags instructor
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param course body dto.CourseSimpleRequest true "Course"
// @Success 200 {object} utils.SuccessResponse
// @Router /instructor/courses/{id}/simple [put]
func (ic *InstructorController) UpdateCourseSimple(c *fiber.Ctx) error {
	courseID, err := uuidParam(c, "id")
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	var req dto.CourseSimpleRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	details, err := ic.Courses.UpdateCourseSimple(c.UserContext(), session(c).UserID, courseID, req)
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.OK(c, details)
}

// [+] DeleteCourse godoc
// @Summary Delete a course and everything under it
// @Tags instructor
// @Param id path string true "Course ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /instructor/courses/{id} [delete]
func (ic *InstructorController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := uuidParam(c, "id")
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	if err := ic.Courses.DeleteCourse(c.UserContext(), session(c).UserID, courseID); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.NoContent(c)
}

// [+] CreateSection godoc
// @Summary Add a section to a course
// @Tags instructor
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param section body dto.SectionRequest true "Section"
// @Success 201 {object} utils.SuccessResponse
// @Router /instructor/courses/{id}/sections [post]
func (ic *InstructorController) CreateSection(c *fiber.Ctx) error {
	courseID, err := uuidParam(c, "id")
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	var req dto.SectionRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	section, err := ic.Courses.CreateSection(c.UserContext(), session(c).UserID, courseID, req)
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.Created(c, section)
}

// [+] UpdateSection godoc
// @Summary Update a section's fields
// @Tags instructor
// @Accept json
// @Produce json
// @Param id path int true "Section ID"
// @Param section body dto.SectionRequest true "Section"
// @Success 200 {object} utils.SuccessResponse
// @Router /instructor/sections/{id} [put]
func (ic *InstructorController) UpdateSection(c *fiber.Ctx) error {
	sectionID, err := uintParam(c, "id")
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	var req dto.SectionRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	section, err := ic.Courses.UpdateSection(c.UserContext(), session(c).UserID, sectionID, req)
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.OK(c, section)
}

// [+] CreateLesson godoc
// @Summary Add a lesson to a section
// @Tags instructor
// @Accept json
// @Produce json
// @Param id path int true "Section ID"
// @Param lesson body dto.LessonRequest true "Lesson"
// @Success 201 {object} utils.SuccessResponse
// @Router /instructor/sections/{id}/lessons [post]
func (ic *InstructorController) CreateLesson(c *fiber.Ctx) error {
	sectionID, err := uintParam(c, "id")
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	var req dto.LessonRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	lesson, err := ic.Courses.CreateLesson(c.UserContext(), session(c).UserID, sectionID, req)
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.Created(c, lesson)
}

// [+] UpdateLesson godoc
// @Summary Update a lesson's fields
// @Tags instructor
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param lesson body dto.LessonRequest true "Lesson"
// @Success 200 {object} utils.SuccessResponse
// @Router /instructor/lessons/{id} [put]
func (ic *InstructorController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, err := uintParam(c, "id")
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	var req dto.LessonRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	lesson, err := ic.Courses.UpdateLesson(c.UserContext(), session(c).UserID, lessonID, req)
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.OK(c, lesson)
}

// [+] GradeAttachment godoc
// @Summary Grade a student's submission
// @Tags instructor
// @Accept json
// @Param id path int true "Attachment ID"
// @Param grade body dto.GradeRequest true "Grade"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /instructor/attachments/{id}/grade [put]
func (ic *InstructorController) GradeAttachment(c *fiber.Ctx) error {
	attachmentID, err := uintParam(c, "id")
	if err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	var req dto.GradeRequest
	if err := parseBody(c, &req); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	if err := dto.Validate(req); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	if err := ic.Grading.GradeAttachment(c.UserContext(), session(c).UserID, attachmentID, *req.Grade); err != nil {
		return utils.HandleError(c, ic.Log, err)
	}
	return utils.NoContent(c)
}
