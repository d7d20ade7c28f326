package dto

import (
	"time"

	"marketplace/backend/models"

	"github.com/google/uuid"
)

type CourseDetails struct {
	ID               uuid.UUID         `json:"id"`
	Title            string            `json:"title"`
	Slug             string            `json:"slug"`
	ShortDescription string            `json:"short_description"`
	Description      string            `json:"description"`
	Category         string            `json:"category"`
	Level            string            `json:"level"`
	Language         string            `json:"language"`
	Instructions     string            `json:"instructions"`
	Price            float64           `json:"price"`
	DurationHours    int               `json:"duration_hours"`
	ThumbnailURL     *string           `json:"thumbnail_url"`
	PublishedAt      *time.Time        `json:"published_at"`
	RatingAvg        float64           `json:"rating_avg"`
	ReviewsCount     int               `json:"reviews_count"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	Instructor       InstructorSummary `json:"instructor"`
	Sections         []SectionDetails  `json:"sections"`
	Faqs             []FaqDetails      `json:"faqs"`
	IsEnrolled       bool              `json:"is_enrolled"`
}

type InstructorSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Title     *string   `json:"title"`
	Bio       *string   `json:"bio"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url"`
}

type SectionDetails struct {
	ID               uint            `json:"id"`
	Title            string          `json:"title"`
	ShortDescription string          `json:"short_description"`
	Description      string          `json:"description"`
	Lessons          []LessonDetails `json:"lessons"`
}

type LessonDetails struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	VideoURL    *string             `json:"video_url"`
	Assignments []AssignmentDetails `json:"assignments"`
}

type AssignmentDetails struct {
	ID               uint    `json:"id"`
	AssignmentNumber int     `json:"assignment_number"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	PdfURL           *string `json:"pdf_url"`
	MaxScore         float64 `json:"max_score"`
}

type FaqDetails struct {
	ID       uint   `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type CourseListItem struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"short_description"`
	Level            string    `json:"level"`
	DurationHours    int       `json:"duration_hours"`
	ThumbnailURL     *string   `json:"thumbnail_url"`
	Price            float64   `json:"price"`
	RatingAvg        float64   `json:"rating_avg"`
	ReviewsCount     int       `json:"reviews_count"`
	InstructorName   string    `json:"instructor_name"`
}

type SectionSimple struct {
	ID               uint      `json:"id"`
	CourseID         uuid.UUID `json:"course_id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"short_description"`
	Description      string    `json:"description"`
}

type LessonSimple struct {
	ID          uint    `json:"id"`
	SectionID   uint    `json:"section_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	VideoURL    *string `json:"video_url"`
}

type EnrolledStudent struct {
	StudentID   uuid.UUID `json:"student_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	EnrolledAt  time.Time `json:"enrolled_at"`
	ProgressPct int       `json:"progress_pct"`
}

// NewCourseDetails maps a course with preloaded Instructor, Sections (with lessons and
// assignments) and Faqs.
func NewCourseDetails(c *models.Course) *CourseDetails {
	out := &CourseDetails{
		ID:               c.ID,
		Title:            c.Title,
		Slug:             c.Slug,
		ShortDescription: c.ShortDescription,
		Description:      c.Description,
		Category:         c.Category,
		Level:            c.Level,
		Language:         c.Language,
		Instructions:     c.Instructions,
		Price:            c.Price,
		DurationHours:    c.DurationHours,
		ThumbnailURL:     c.ThumbnailURL,
		PublishedAt:      c.PublishedAt,
		RatingAvg:        c.RatingAvg,
		ReviewsCount:     c.ReviewsCount,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		Sections:         make([]SectionDetails, 0, len(c.Sections)),
		Faqs:             make([]FaqDetails, 0, len(c.Faqs)),
	}
	if c.Instructor != nil {
		out.Instructor = InstructorSummary{
			ID:        c.Instructor.ID,
			Username:  c.Instructor.Username(),
			Title:     c.Instructor.Title,
			Bio:       c.Instructor.Bio,
			Email:     c.Instructor.Email,
			AvatarURL: c.Instructor.AvatarURL,
		}
	}

	for _, s := range c.Sections {
		sd := SectionDetails{
			ID:               s.ID,
			Title:            s.Title,
			ShortDescription: s.ShortDescription,
			Description:      s.Description,
			Lessons:          make([]LessonDetails, 0, len(s.Lessons)),
		}
		for _, l := range s.Lessons {
			ld := LessonDetails{
				ID:          l.ID,
				Title:       l.Title,
				Description: l.Description,
				VideoURL:    l.VideoURL,
				Assignments: make([]AssignmentDetails, 0, len(l.Assignments)),
			}
			for _, a := range l.Assignments {
				ld.Assignments = append(ld.Assignments, AssignmentDetails{
					ID:               a.ID,
					AssignmentNumber: a.AssignmentNumber,
					Title:            a.Title,
					Description:      a.Description,
					PdfURL:           a.PdfURL,
					MaxScore:         a.MaxScore,
				})
			}
			sd.Lessons = append(sd.Lessons, ld)
		}
		out.Sections = append(out.Sections, sd)
	}

	for _, f := range c.Faqs {
		out.Faqs = append(out.Faqs, FaqDetails{ID: f.ID, Question: f.Question, Answer: f.Answer})
	}
	return out
}

func NewCourseListItem(c *models.Course) CourseListItem {
	item := CourseListItem{
		ID:               c.ID,
		Title:            c.Title,
		Slug:             c.Slug,
		ShortDescription: c.ShortDescription,
		Level:            c.Level,
		DurationHours:    c.DurationHours,
		ThumbnailURL:     c.ThumbnailURL,
		Price:            c.Price,
		RatingAvg:        c.RatingAvg,
		ReviewsCount:     c.ReviewsCount,
	}
	if c.Instructor != nil {
		item.InstructorName = c.Instructor.FullName()
	}
	return item
}

func NewSectionSimple(s *models.Section) *SectionSimple {
	return &SectionSimple{
		ID:               s.ID,
		CourseID:         s.CourseID,
		Title:            s.Title,
		ShortDescription: s.ShortDescription,
		Description:      s.Description,
	}
}

func NewLessonSimple(l *models.Lesson) *LessonSimple {
	return &LessonSimple{
		ID:          l.ID,
		SectionID:   l.SectionID,
		Title:       l.Title,
		Description: l.Description,
		VideoURL:    l.VideoURL,
	}
}
