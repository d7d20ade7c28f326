package dto

import "time"

// CourseUpsertRequest is the full-tree payload. Nodes without an id are created, nodes
// with an id overwrite the matching persisted child.
type CourseUpsertRequest struct {
	Title            string        `json:"title" validate:"required,max=300"`
	Slug             string        `json:"slug" validate:"required,max=350"`
	ShortDescription string        `json:"short_description" validate:"required,max=500"`
	Description      string        `json:"description" validate:"required,max=4000"`
	Category         string        `json:"category" validate:"required,max=100"`
	Level            string        `json:"level" validate:"required,max=50"`
	Language         string        `json:"language" validate:"required,max=50"`
	Instructions     string        `json:"instructions" validate:"required,max=2000"`
	Price            float64       `json:"price" validate:"gte=0"`
	DurationHours    int           `json:"duration_hours" validate:"gte=0"`
	ThumbnailURL     *string       `json:"thumbnail_url" validate:"omitempty,max=500"`
	PublishedAt      *time.Time    `json:"published_at"`
	Sections         []SectionNode `json:"sections" validate:"dive"`
}

type SectionNode struct {
	ID               *uint        `json:"id"`
	Title            string       `json:"title" validate:"required,max=250"`
	ShortDescription string       `json:"short_description" validate:"required,max=500"`
	Description      string       `json:"description" validate:"required,max=4000"`
	Lessons          []LessonNode `json:"lessons" validate:"dive"`
}

type LessonNode struct {
	ID          *uint            `json:"id"`
	Title       string           `json:"title" validate:"required,max=250"`
	Description string           `json:"description" validate:"required,max=2000"`
	VideoURL    *string          `json:"video_url" validate:"omitempty,max=500"`
	Assignments []AssignmentNode `json:"assignments" validate:"dive"`
}

type AssignmentNode struct {
	ID               *uint   `json:"id"`
	AssignmentNumber int     `json:"assignment_number" validate:"gte=1"`
	Title            string  `json:"title" validate:"required,max=250"`
	Description      string  `json:"description" validate:"required,max=2000"`
	PdfURL           *string `json:"pdf_url" validate:"omitempty,max=500"`
	MaxScore         float64 `json:"max_score" validate:"gte=1,lte=1000"`
}

// CourseSimpleRequest edits course scalars only. A nil Faqs leaves FAQs untouched; a
// non-nil list (even empty) replaces them.
type CourseSimpleRequest struct {
	Title            string    `json:"title" validate:"required,max=300"`
	ShortDescription string    `json:"short_description" validate:"required,max=500"`
	Description      string    `json:"description" validate:"required,max=4000"`
	Category         string    `json:"category" validate:"required,max=100"`
	Level            string    `json:"level" validate:"required,max=50"`
	Language         string    `json:"language" validate:"required,max=50"`
	Price            float64   `json:"price" validate:"gte=0"`
	DurationHours    int       `json:"duration_hours" validate:"gte=0"`
	ThumbnailURL     *string   `json:"thumbnail_url" validate:"omitempty,max=500"`
	Faqs             []FaqItem `json:"faqs" validate:"omitempty,dive"`
}

type FaqItem struct {
	Question string `json:"question" validate:"required,max=500"`
	Answer   string `json:"answer" validate:"required,max=2000"`
}

type SectionRequest struct {
	Title            string `json:"title" validate:"required,max=250"`
	ShortDescription string `json:"short_description" validate:"required,max=500"`
	Description      string `json:"description" validate:"required,max=4000"`
}

type LessonRequest struct {
	Title       string  `json:"title" validate:"required,max=250"`
	Description string  `json:"description" validate:"required,max=2000"`
	VideoURL    *string `json:"video_url" validate:"omitempty,max=500"`
}

// Node lifts a single-section request into the tree shape with no children.
func (r SectionRequest) Node(id *uint) SectionNode {
	return SectionNode{
		ID:               id,
		Title:            r.Title,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
	}
}

func (r LessonRequest) Node(id *uint) LessonNode {
	return LessonNode{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		VideoURL:    r.VideoURL,
	}
}

type GradeRequest struct {
	Grade *float64 `json:"grade" validate:"required"`
}
