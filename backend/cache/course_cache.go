// Package cache keeps the public course read model in redis. Mutations never read from
// it; they only invalidate.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/backend/dto"

	"github.com/redis/go-redis/v9"
)

type CourseCache interface {
	Get(ctx context.Context, slug string) (*dto.CourseDetails, bool)
	Set(ctx context.Context, slug string, course *dto.CourseDetails)
	Invalidate(ctx context.Context, slugs ...string)
}

const courseDetailTTL = time.Hour

func courseKey(slug string) string {
	return "course:detail:" + slug
}

type RedisCourseCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns a redis-backed cache, or a no-op cache when rdb is nil.
func New(rdb *redis.Client) CourseCache {
	if rdb == nil {
		return NopCache{}
	}
	return &RedisCourseCache{rdb: rdb, ttl: courseDetailTTL}
}

func (r *RedisCourseCache) Get(ctx context.Context, slug string) (*dto.CourseDetails, bool) {
	val, err := r.rdb.Get(ctx, courseKey(slug)).Result()
	if err != nil {
		return nil, false
	}
	var course dto.CourseDetails
	if json.Unmarshal([]byte(val), &course) != nil {
		return nil, false
	}
	return &course, true
}

func (r *RedisCourseCache) Set(ctx context.Context, slug string, course *dto.CourseDetails) {
	data, err := json.Marshal(course)
	if err != nil {
		return
	}
	r.rdb.Set(ctx, courseKey(slug), data, r.ttl)
}

func (r *RedisCourseCache) Invalidate(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, courseKey(s))
		}
	}
	if len(keys) == 0 {
		return
	}
	r.rdb.Del(ctx, keys...)
}

type NopCache struct{}

func (NopCache) Get(context.Context, string) (*dto.CourseDetails, bool) { return nil, false }
func (NopCache) Set(context.Context, string, *dto.CourseDetails)        {}
func (NopCache) Invalidate(context.Context, ...string)                  {}
