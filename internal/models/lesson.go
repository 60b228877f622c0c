package models

import "sort"

// LessonType determines how a lesson's content is delivered.
type LessonType string

const (
	// LessonTypeText is inline rich-text content.
	LessonTypeText LessonType = "text"
	// LessonTypeVideo is a streamed video attachment.
	LessonTypeVideo LessonType = "video"
	// LessonTypeFile is a downloadable file attachment.
	LessonTypeFile LessonType = "file"
)

// Lesson is one unit of course content. Order is a plain integer unique
// within the course; it defines the display sequence and is re-sortable.
type Lesson struct {
	ID       int64      `json:"id"`
	CourseID int64      `json:"course_id"`
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Order    int        `json:"order"`
	Type     LessonType `json:"type"`
	FileURL  string     `json:"file_url"`
}

// SortLessons orders lessons ascending by Order. The sort is stable so
// lessons sharing an order value keep their relative server position.
// Display labels ("Lesson N") use the 1-based position in this sorted
// slice, never the raw Order value.
func SortLessons(lessons []Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].Order < lessons[j].Order
	})
}
