package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/noah-isme/classboard/internal/models"
)

// AssignmentPayload is the body for assignment create and update calls.
type AssignmentPayload struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	MaxScore    int        `json:"max_score" validate:"required,gt=0"`
}

func assignmentsPath(courseID, lessonID int64) string {
	return fmt.Sprintf("/courses/%d/lessons/%d/assignments", courseID, lessonID)
}

// Assignments lists a lesson's assignments.
func (c *Client) Assignments(ctx context.Context, courseID, lessonID int64) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := c.getJSON(ctx, assignmentsPath(courseID, lessonID), nil, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// Assignment fetches a single assignment.
func (c *Client) Assignment(ctx context.Context, courseID, lessonID, assignmentID int64) (models.Assignment, error) {
	var assignment models.Assignment
	path := fmt.Sprintf("%s/%d", assignmentsPath(courseID, lessonID), assignmentID)
	if err := c.getJSON(ctx, path, nil, &assignment); err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

// CreateAssignment attaches a new assignment to a lesson.
func (c *Client) CreateAssignment(ctx context.Context, courseID, lessonID int64, payload AssignmentPayload) (models.Assignment, error) {
	var assignment models.Assignment
	if err := c.sendJSON(ctx, http.MethodPost, assignmentsPath(courseID, lessonID), payload, &assignment); err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

// UpdateAssignment replaces an assignment's editable fields.
func (c *Client) UpdateAssignment(ctx context.Context, courseID, lessonID, assignmentID int64, payload AssignmentPayload) (models.Assignment, error) {
	var assignment models.Assignment
	path := fmt.Sprintf("%s/%d", assignmentsPath(courseID, lessonID), assignmentID)
	if err := c.sendJSON(ctx, http.MethodPut, path, payload, &assignment); err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

// DeleteAssignment removes an assignment.
func (c *Client) DeleteAssignment(ctx context.Context, courseID, lessonID, assignmentID int64) error {
	path := fmt.Sprintf("%s/%d", assignmentsPath(courseID, lessonID), assignmentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}
