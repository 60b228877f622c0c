package models

import "encoding/json"

// CourseStatus is the publication state of a course.
type CourseStatus string

const (
	// CourseStatusDraft means the course is visible only to its teacher.
	CourseStatusDraft CourseStatus = "draft"
	// CourseStatusPublished means the course is open for enrollment.
	CourseStatusPublished CourseStatus = "published"
)

// Course is a teacher-owned course as returned by the courses endpoints.
type Course struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	TeacherID   int64        `json:"teacher_id"`
	Status      CourseStatus `json:"status"`
}

// Enrollment links a student to a course and tracks completion progress.
type Enrollment struct {
	ID          int64   `json:"id"`
	StudentID   int64   `json:"student_id"`
	CourseID    int64   `json:"course_id"`
	Progress    float64 `json:"progress"`
	CourseTitle string  `json:"course_title"`
}

// CourseRecord is one element of a /my/courses response. The endpoint is
// role-polymorphic: students receive enrollment records, teachers receive
// course records. Exactly one of the two fields is set after decoding.
type CourseRecord struct {
	Enrollment *Enrollment
	Course     *Course
}

// IsEnrollment reports whether the record came back in student shape.
func (r CourseRecord) IsEnrollment() bool {
	return r.Enrollment != nil
}

// UnmarshalJSON discriminates on the presence of a course_id field, which
// only enrollment records carry.
func (r *CourseRecord) UnmarshalJSON(data []byte) error {
	var probe struct {
		CourseID *int64 `json:"course_id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if probe.CourseID != nil {
		var enrollment Enrollment
		if err := json.Unmarshal(data, &enrollment); err != nil {
			return err
		}
		r.Enrollment = &enrollment
		r.Course = nil
		return nil
	}

	var course Course
	if err := json.Unmarshal(data, &course); err != nil {
		return err
	}
	r.Course = &course
	r.Enrollment = nil
	return nil
}

// CourseListItem is the unified projection both record shapes render as.
// Progress is nil for teacher-owned rows; Status is empty for student rows.
type CourseListItem struct {
	CourseID int64
	Title    string
	Progress *float64
	Status   CourseStatus
}

// ListItem projects the record into the unified display shape.
func (r CourseRecord) ListItem() CourseListItem {
	if r.Enrollment != nil {
		progress := r.Enrollment.Progress
		return CourseListItem{
			CourseID: r.Enrollment.CourseID,
			Title:    r.Enrollment.CourseTitle,
			Progress: &progress,
		}
	}

	return CourseListItem{
		CourseID: r.Course.ID,
		Title:    r.Course.Title,
		Status:   r.Course.Status,
	}
}
