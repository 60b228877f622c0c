package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noah-isme/classboard/internal/models"
)

// MyCoursesPage is one page of the role-polymorphic /my/courses listing,
// with the server-computed total for pagination math.
type MyCoursesPage struct {
	Records []models.CourseRecord `json:"items"`
	Total   int                   `json:"total"`
}

// StudentsPage is one page of a course's enrolled students.
type StudentsPage struct {
	Students []models.User `json:"items"`
	Total    int           `json:"total"`
}

// CoursePayload is the body for course create and update calls.
type CoursePayload struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	Status      models.CourseStatus `json:"status" validate:"omitempty,oneof=draft published"`
}

// FeaturedCourses lists the public landing-page courses. No token needed.
func (c *Client) FeaturedCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.getJSON(ctx, "/courses/featured", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// MyCourses fetches one page of the caller's courses. Students get
// enrollment records, teachers get course records; see models.CourseRecord.
func (c *Client) MyCourses(ctx context.Context, skip, limit int) (MyCoursesPage, error) {
	var page MyCoursesPage
	if err := c.getJSON(ctx, "/my/courses", pageQuery(skip, limit), &page); err != nil {
		return MyCoursesPage{}, err
	}
	return page, nil
}

// Course fetches a single course by id.
func (c *Client) Course(ctx context.Context, courseID int64) (models.Course, error) {
	var course models.Course
	if err := c.getJSON(ctx, fmt.Sprintf("/courses/%d", courseID), nil, &course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// CreateCourse creates a course owned by the calling teacher.
func (c *Client) CreateCourse(ctx context.Context, payload CoursePayload) (models.Course, error) {
	var course models.Course
	if err := c.sendJSON(ctx, http.MethodPost, "/courses", payload, &course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// UpdateCourse replaces a course's editable fields.
func (c *Client) UpdateCourse(ctx context.Context, courseID int64, payload CoursePayload) (models.Course, error) {
	var course models.Course
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/courses/%d", courseID), payload, &course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// DeleteCourse removes a course and everything under it.
func (c *Client) DeleteCourse(ctx context.Context, courseID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/courses/%d", courseID), nil, nil, "", nil)
}

// CourseStudents fetches one page of a course's enrolled students.
func (c *Client) CourseStudents(ctx context.Context, courseID int64, skip, limit int) (StudentsPage, error) {
	var page StudentsPage
	path := fmt.Sprintf("/courses/%d/students", courseID)
	if err := c.getJSON(ctx, path, pageQuery(skip, limit), &page); err != nil {
		return StudentsPage{}, err
	}
	return page, nil
}
