package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Go for Backend Developers": "go-for-backend-developers",
		"  C++ & Rust!!  ":          "c-rust",
		"مقدمة في البرمجة":          "مقدمة-في-البرمجة",
		"???":                       "course",
		"Lesson 2: Channels":        "lesson-2-channels",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), in)
	}
}
