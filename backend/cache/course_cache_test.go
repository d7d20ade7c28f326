package cache

import (
	"context"
	"testing"

	"marketplace/backend/dto"

	"github.com/stretchr/testify/assert"
)

func TestNewWithoutRedisIsNop(t *testing.T) {
	c := New(nil)
	_, isNop := c.(NopCache)
	assert.True(t, isNop)

	c.Set(context.Background(), "go-backend", &dto.CourseDetails{Slug: "go-backend"})
	_, ok := c.Get(context.Background(), "go-backend")
	assert.False(t, ok)
}

func TestCourseKey(t *testing.T) {
	assert.Equal(t, "course:detail:go-backend", courseKey("go-backend"))
}
