package dto

import "github.com/google/uuid"

type EnrollRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
}

type ReviewRequest struct {
	CourseID      uuid.UUID `json:"course_id" validate:"required"`
	ReviewContent string    `json:"review_content" validate:"required,max=2000"`
	Rate          int       `json:"rate" validate:"required,min=1,max=5"`
}

type AttachmentSubmitRequest struct {
	AssignmentID uint    `json:"assignment_id" validate:"required"`
	Title        string  `json:"title" validate:"required,max=200"`
	Description  string  `json:"description" validate:"required,max=2000"`
	PdfURL       *string `json:"pdf_url" validate:"omitempty,max=500"`
}

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=256"`
	Password  string `json:"password" validate:"required,min=6,max=100"`
	Role      string `json:"role" validate:"required,oneof=Student Instructor"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
