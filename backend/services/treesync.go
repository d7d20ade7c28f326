package services

import (
	"marketplace/backend/apperr"
	"marketplace/backend/dto"
	"marketplace/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// treeLevel describes one nesting level of the course tree: how to list the persisted
// children of a parent P, how to match them against submitted nodes N, and how to carry
// on one level down. The same reconciliation runs for sections, lessons and assignments.
type treeLevel[P any, E any, N any] struct {
	entity   string
	children func(tx *gorm.DB, parent P) ([]E, error)
	id       func(child E) uint
	nodeID   func(node N) *uint
	newChild func(parent P) E
	assign   func(child E, node N)
	remove   func(tx *gorm.DB, ids []uint) error
	descend  func(tx *gorm.DB, child E, node N) error
}

// reconcile makes the children of parent match submitted. Persisted children whose id is
// not submitted are removed with their subtree, unless submitted is empty: an empty list
// leaves the level untouched.
func (l treeLevel[P, E, N]) reconcile(tx *gorm.DB, parent P, submitted []N) error {
	existing, err := l.children(tx, parent)
	if err != nil {
		return err
	}

	if len(submitted) > 0 {
		keep := make(map[uint]struct{}, len(submitted))
		for _, n := range submitted {
			if id := l.nodeID(n); id != nil {
				keep[*id] = struct{}{}
			}
		}

		var stale []uint
		kept := make([]E, 0, len(existing))
		for _, e := range existing {
			if _, ok := keep[l.id(e)]; ok {
				kept = append(kept, e)
				continue
			}
			stale = append(stale, l.id(e))
		}
		if len(stale) > 0 {
			if err := l.remove(tx, stale); err != nil {
				return err
			}
		}
		existing = kept
	}

	byID := make(map[uint]E, len(existing))
	for _, e := range existing {
		byID[l.id(e)] = e
	}
	for _, n := range submitted {
		if _, err := l.upsert(tx, parent, byID, n); err != nil {
			return err
		}
	}
	return nil
}

// upsert overwrites the child matching the node's id, or creates a new child under parent
// when the node has none, then recurses into the node's own children.
func (l treeLevel[P, E, N]) upsert(tx *gorm.DB, parent P, byID map[uint]E, n N) (E, error) {
	var child E
	if id := l.nodeID(n); id != nil {
		found, ok := byID[*id]
		if !ok {
			return child, apperr.NotFound(l.entity, *id)
		}
		child = found
		l.assign(child, n)
		if err := tx.Omit(clause.Associations).Save(child).Error; err != nil {
			return child, err
		}
	} else {
		child = l.newChild(parent)
		l.assign(child, n)
		if err := tx.Omit(clause.Associations).Create(child).Error; err != nil {
			return child, err
		}
	}

	if l.descend != nil {
		if err := l.descend(tx, child, n); err != nil {
			return child, err
		}
	}
	return child, nil
}

func assignmentLevel() treeLevel[*models.Lesson, *models.Assignment, dto.AssignmentNode] {
	return treeLevel[*models.Lesson, *models.Assignment, dto.AssignmentNode]{
		entity: "assignment",
		children: func(tx *gorm.DB, lesson *models.Lesson) ([]*models.Assignment, error) {
			var rows []*models.Assignment
			err := tx.Where("lesson_id = ?", lesson.ID).Order("id").Find(&rows).Error
			return rows, err
		},
		id:     func(a *models.Assignment) uint { return a.ID },
		nodeID: func(n dto.AssignmentNode) *uint { return n.ID },
		newChild: func(lesson *models.Lesson) *models.Assignment {
			return &models.Assignment{LessonID: lesson.ID}
		},
		assign: func(a *models.Assignment, n dto.AssignmentNode) {
			a.AssignmentNumber = n.AssignmentNumber
			a.Title = n.Title
			a.Description = n.Description
			a.PdfURL = n.PdfURL
			a.MaxScore = n.MaxScore
		},
		remove: deleteAssignments,
	}
}

func lessonLevel() treeLevel[*models.Section, *models.Lesson, dto.LessonNode] {
	return treeLevel[*models.Section, *models.Lesson, dto.LessonNode]{
		entity: "lesson",
		children: func(tx *gorm.DB, section *models.Section) ([]*models.Lesson, error) {
			var rows []*models.Lesson
			err := tx.Where("section_id = ?", section.ID).Order("id").Find(&rows).Error
			return rows, err
		},
		id:     func(l *models.Lesson) uint { return l.ID },
		nodeID: func(n dto.LessonNode) *uint { return n.ID },
		newChild: func(section *models.Section) *models.Lesson {
			return &models.Lesson{SectionID: section.ID}
		},
		assign: func(l *models.Lesson, n dto.LessonNode) {
			l.Title = n.Title
			l.Description = n.Description
			l.VideoURL = n.VideoURL
		},
		remove: deleteLessons,
		descend: func(tx *gorm.DB, l *models.Lesson, n dto.LessonNode) error {
			return assignmentLevel().reconcile(tx, l, n.Assignments)
		},
	}
}

func sectionLevel() treeLevel[*models.Course, *models.Section, dto.SectionNode] {
	return treeLevel[*models.Course, *models.Section, dto.SectionNode]{
		entity: "section",
		children: func(tx *gorm.DB, course *models.Course) ([]*models.Section, error) {
			var rows []*models.Section
			err := tx.Where("course_id = ?", course.ID).Order("id").Find(&rows).Error
			return rows, err
		},
		id:     func(s *models.Section) uint { return s.ID },
		nodeID: func(n dto.SectionNode) *uint { return n.ID },
		newChild: func(course *models.Course) *models.Section {
			return &models.Section{CourseID: course.ID}
		},
		assign: func(s *models.Section, n dto.SectionNode) {
			s.Title = n.Title
			s.ShortDescription = n.ShortDescription
			s.Description = n.Description
		},
		remove: deleteSections,
		descend: func(tx *gorm.DB, s *models.Section, n dto.SectionNode) error {
			return lessonLevel().reconcile(tx, s, n.Lessons)
		},
	}
}
