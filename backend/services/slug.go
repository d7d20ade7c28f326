package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"marketplace/backend/apperr"
	"marketplace/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxSlugBase = 340

func nowUTC() time.Time {
	return time.Now().UTC()
}

// slugify keeps letters and digits of any script, lowercases them and joins the runs
// with single dashes.
func slugify(title string) string {
	var b strings.Builder
	dash := false
	runes := 0
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if runes >= maxSlugBase {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			runes++
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
			runes++
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "course"
	}
	return out
}

// uniqueSlug returns base when it is free, otherwise base-N with N one above the largest
// suffix already taken.
func uniqueSlug(tx *gorm.DB, base string) (string, error) {
	var taken []string
	if err := tx.Model(&models.Course{}).
		Where("slug = ? OR slug LIKE ?", base, base+"-%").
		Pluck("slug", &taken).Error; err != nil {
		return "", err
	}

	baseTaken := false
	maxN := 1
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `-(\d+)$`)
	for _, s := range taken {
		if s == base {
			baseTaken = true
			continue
		}
		if m := re.FindStringSubmatch(s); len(m) == 2 {
			var n int
			fmt.Sscanf(m[1], "%d", &n)
			if n > maxN {
				maxN = n
			}
		}
	}
	if !baseTaken {
		return base, nil
	}
	return fmt.Sprintf("%s-%d", base, maxN+1), nil
}

func ensureSlugFree(tx *gorm.DB, slug string, except uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Course{}).
		Where("slug = ? AND id <> ?", slug, except).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict(fmt.Sprintf("slug %q already exists", slug))
	}
	return nil
}
