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
	"gorm.io/gorm/clause"
)

// CourseService implements instructor authoring: full-tree and single-node upserts,
// cascade delete, and the owned-course read models.
type CourseService struct {
	db    *gorm.DB
	cache cache.CourseCache
	log   *utils.Logger
}

func NewCourseService(db *gorm.DB, courseCache cache.CourseCache, logger *utils.Logger) *CourseService {
	if courseCache == nil {
		courseCache = cache.NopCache{}
	}
	return &CourseService{db: db, cache: courseCache, log: logger.With("service", "courses")}
}

func applyCourseScalars(c *models.Course, req dto.CourseUpsertRequest) {
	c.Title = req.Title
	c.Slug = req.Slug
	c.ShortDescription = req.ShortDescription
	c.Description = req.Description
	c.Category = req.Category
	c.Level = req.Level
	c.Language = req.Language
	c.Instructions = req.Instructions
	c.Price = req.Price
	c.DurationHours = req.DurationHours
	c.ThumbnailURL = req.ThumbnailURL
	c.PublishedAt = req.PublishedAt
}

func applySimpleScalars(c *models.Course, req dto.CourseSimpleRequest) {
	c.Title = req.Title
	c.ShortDescription = req.ShortDescription
	c.Description = req.Description
	c.Category = req.Category
	c.Level = req.Level
	c.Language = req.Language
	c.Price = req.Price
	c.DurationHours = req.DurationHours
	c.ThumbnailURL = req.ThumbnailURL
}

// CreateCourse stores a new course and its submitted tree. Nodes carrying ids are
// rejected since a new course has no children to match.
func (s *CourseService) CreateCourse(ctx context.Context, ownerID uuid.UUID, req dto.CourseUpsertRequest) (*dto.CourseDetails, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var courseID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSlugFree(tx, req.Slug, uuid.Nil); err != nil {
			return err
		}
		now := nowUTC()
		course := &models.Course{InstructorID: ownerID, CreatedAt: now, UpdatedAt: now}
		applyCourseScalars(course, req)
		if err := tx.Omit(clause.Associations).Create(course).Error; err != nil {
			return translateConflict(err, "slug already exists")
		}
		courseID = course.ID
		return sectionLevel().reconcile(tx, course, req.Sections)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("course created", "course_id", courseID, "owner_id", ownerID)
	return s.loadDetails(ctx, courseID)
}

// UpdateCourse overwrites the course scalars and reconciles sections, lessons and
// assignments against the submission in one transaction.
func (s *CourseService) UpdateCourse(ctx context.Context, ownerID, courseID uuid.UUID, req dto.CourseUpsertRequest) (*dto.CourseDetails, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var oldSlug string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := loadOwnedCourse(tx, ownerID, courseID)
		if err != nil {
			return err
		}
		oldSlug = course.Slug
		if req.Slug != course.Slug {
			if err := ensureSlugFree(tx, req.Slug, course.ID); err != nil {
				return err
			}
		}

		applyCourseScalars(course, req)
		course.UpdatedAt = nowUTC()
		if err := tx.Omit(clause.Associations).Save(course).Error; err != nil {
			return translateConflict(err, "slug already exists")
		}
		return sectionLevel().reconcile(tx, course, req.Sections)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, oldSlug, req.Slug)
	s.log.Info("course synchronized", "course_id", courseID, "owner_id", ownerID, "sections", len(req.Sections))
	return s.loadDetails(ctx, courseID)
}

// CreateCourseSimple creates a course without a tree; the slug is derived from the title.
func (s *CourseService) CreateCourseSimple(ctx context.Context, ownerID uuid.UUID, req dto.CourseSimpleRequest) (*dto.CourseDetails, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var courseID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := uniqueSlug(tx, slugify(req.Title))
		if err != nil {
			return err
		}
		now := nowUTC()
		course := &models.Course{InstructorID: ownerID, Slug: slug, CreatedAt: now, UpdatedAt: now}
		applySimpleScalars(course, req)
		if err := tx.Omit(clause.Associations).Create(course).Error; err != nil {
			return translateConflict(err, "slug already exists")
		}
		courseID = course.ID
		if req.Faqs != nil {
			return replaceFaqs(tx, course.ID, req.Faqs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.loadDetails(ctx, courseID)
}

// UpdateCourseSimple overwrites the course scalars (the slug is kept). A non-nil FAQ list
// replaces the course FAQs.
func (s *CourseService) UpdateCourseSimple(ctx context.Context, ownerID, courseID uuid.UUID, req dto.CourseSimpleRequest) (*dto.CourseDetails, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var slug string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := loadOwnedCourse(tx, ownerID, courseID)
		if err != nil {
			return err
		}
		slug = course.Slug
		applySimpleScalars(course, req)
		course.UpdatedAt = nowUTC()
		if err := tx.Omit(clause.Associations).Save(course).Error; err != nil {
			return err
		}
		if req.Faqs != nil {
			return replaceFaqs(tx, course.ID, req.Faqs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, slug)
	return s.loadDetails(ctx, courseID)
}

func replaceFaqs(tx *gorm.DB, courseID uuid.UUID, items []dto.FaqItem) error {
	if err := tx.Where("course_id = ?", courseID).Delete(&models.Faq{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	faqs := make([]models.Faq, 0, len(items))
	for _, it := range items {
		faqs = append(faqs, models.Faq{CourseID: courseID, Question: it.Question, Answer: it.Answer})
	}
	return tx.Create(&faqs).Error
}

func (s *CourseService) CreateSection(ctx context.Context, ownerID, courseID uuid.UUID, req dto.SectionRequest) (*dto.SectionSimple, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var (
		section *models.Section
		slug    string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := loadOwnedCourse(tx, ownerID, courseID)
		if err != nil {
			return err
		}
		slug = course.Slug
		section, err = sectionLevel().upsert(tx, course, nil, req.Node(nil))
		if err != nil {
			return err
		}
		return touchCourse(tx, course)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, slug)
	return dto.NewSectionSimple(section), nil
}

func (s *CourseService) UpdateSection(ctx context.Context, ownerID uuid.UUID, sectionID uint, req dto.SectionRequest) (*dto.SectionSimple, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var (
		section *models.Section
		slug    string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, course, err := loadOwnedSection(tx, ownerID, sectionID)
		if err != nil {
			return err
		}
		slug = course.Slug
		byID := map[uint]*models.Section{current.ID: current}
		section, err = sectionLevel().upsert(tx, course, byID, req.Node(&current.ID))
		if err != nil {
			return err
		}
		return touchCourse(tx, course)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, slug)
	return dto.NewSectionSimple(section), nil
}

func (s *CourseService) CreateLesson(ctx context.Context, ownerID uuid.UUID, sectionID uint, req dto.LessonRequest) (*dto.LessonSimple, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var (
		lesson *models.Lesson
		slug   string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		section, course, err := loadOwnedSection(tx, ownerID, sectionID)
		if err != nil {
			return err
		}
		slug = course.Slug
		lesson, err = lessonLevel().upsert(tx, section, nil, req.Node(nil))
		if err != nil {
			return err
		}
		return touchCourse(tx, course)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, slug)
	return dto.NewLessonSimple(lesson), nil
}

func (s *CourseService) UpdateLesson(ctx context.Context, ownerID uuid.UUID, lessonID uint, req dto.LessonRequest) (*dto.LessonSimple, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var (
		lesson *models.Lesson
		slug   string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, section, course, err := loadOwnedLesson(tx, ownerID, lessonID)
		if err != nil {
			return err
		}
		slug = course.Slug
		byID := map[uint]*models.Lesson{current.ID: current}
		lesson, err = lessonLevel().upsert(tx, section, byID, req.Node(&current.ID))
		if err != nil {
			return err
		}
		return touchCourse(tx, course)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, slug)
	return dto.NewLessonSimple(lesson), nil
}

// DeleteCourse removes the course and every dependent row, leaves first.
func (s *CourseService) DeleteCourse(ctx context.Context, ownerID, courseID uuid.UUID) error {
	var slug string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := loadOwnedCourse(tx, ownerID, courseID)
		if err != nil {
			return err
		}
		slug = course.Slug
		return deleteCourseTree(tx, course.ID)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, slug)
	s.log.Info("course deleted", "course_id", courseID, "owner_id", ownerID)
	return nil
}

func (s *CourseService) GetOwnedCourse(ctx context.Context, ownerID, courseID uuid.UUID) (*dto.CourseDetails, error) {
	if _, err := loadOwnedCourse(s.db.WithContext(ctx), ownerID, courseID); err != nil {
		return nil, err
	}
	return s.loadDetails(ctx, courseID)
}

func (s *CourseService) ListOwnedCourses(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]dto.CourseListItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := s.db.WithContext(ctx).Model(&models.Course{}).
		Where("instructor_id = ?", ownerID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []models.Course
	if err := query.Preload("Instructor").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	items := make([]dto.CourseListItem, 0, len(courses))
	for i := range courses {
		items = append(items, dto.NewCourseListItem(&courses[i]))
	}
	return items, total, nil
}

// GetOwnedCourseStudents lists enrollments of an owned course. Progress is not tracked
// yet and is always reported as 0.
func (s *CourseService) GetOwnedCourseStudents(ctx context.Context, ownerID, courseID uuid.UUID) ([]dto.EnrolledStudent, error) {
	db := s.db.WithContext(ctx)
	if _, err := loadOwnedCourse(db, ownerID, courseID); err != nil {
		return nil, err
	}

	var enrollments []models.Enrollment
	if err := db.Preload("Student").
		Where("course_id = ?", courseID).
		Order("enrolled_at").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	out := make([]dto.EnrolledStudent, 0, len(enrollments))
	for _, e := range enrollments {
		row := dto.EnrolledStudent{
			StudentID:  e.StudentID,
			Status:     string(e.Status),
			EnrolledAt: e.EnrolledAt,
		}
		if e.Student != nil {
			row.Name = e.Student.FullName()
			row.Email = e.Student.Email
		}
		out = append(out, row)
	}
	return out, nil
}

// GetCourseBySlug serves the public read model. viewerID, when set, is used to fill
// IsEnrolled and is never part of the cached value.
func (s *CourseService) GetCourseBySlug(ctx context.Context, slug string, viewerID *uuid.UUID) (*dto.CourseDetails, error) {
	details, ok := s.cache.Get(ctx, slug)
	if !ok {
		var course models.Course
		if err := s.db.WithContext(ctx).Select("id").Where("slug = ?", slug).First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("course", slug)
			}
			return nil, err
		}
		var err error
		details, err = s.loadDetails(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, slug, details)
	}

	if viewerID != nil {
		err := requireEnrollment(s.db.WithContext(ctx), *viewerID, details.ID)
		var authz *apperr.AuthorizationError
		switch {
		case err == nil:
			details.IsEnrolled = true
		case !errors.As(err, &authz):
			return nil, err
		}
	}
	return details, nil
}

func (s *CourseService) loadDetails(ctx context.Context, courseID uuid.UUID) (*dto.CourseDetails, error) {
	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id") }

	var course models.Course
	err := s.db.WithContext(ctx).
		Preload("Instructor").
		Preload("Sections", byID).
		Preload("Sections.Lessons", byID).
		Preload("Sections.Lessons.Assignments", byID).
		Preload("Faqs", byID).
		First(&course, "id = ?", courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course", courseID)
		}
		return nil, err
	}
	return dto.NewCourseDetails(&course), nil
}
