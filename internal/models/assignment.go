package models

import "time"

// Assignment is a graded task attached to exactly one lesson.
type Assignment struct {
	ID          int64      `json:"id"`
	LessonID    int64      `json:"lesson_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	MaxScore    int        `json:"max_score"`
}

// IsPastDue reports whether the deadline has passed. Assignments without a
// deadline are never past due.
func (a Assignment) IsPastDue(now time.Time) bool {
	return a.Deadline != nil && now.After(*a.Deadline)
}
