package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noah-isme/classboard/internal/models"
)

// LessonPayload is the body for lesson create and update calls.
type LessonPayload struct {
	Title   string            `json:"title" validate:"required"`
	Content string            `json:"content"`
	Order   int               `json:"order" validate:"gte=0"`
	Type    models.LessonType `json:"type" validate:"required,oneof=text video file"`
}

// Lessons lists all lessons of a course in server order. Callers sort by
// the Order field for display; see models.SortLessons.
func (c *Client) Lessons(ctx context.Context, courseID int64) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := c.getJSON(ctx, fmt.Sprintf("/courses/%d/lessons", courseID), nil, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// CreateLesson appends a lesson to a course.
func (c *Client) CreateLesson(ctx context.Context, courseID int64, payload LessonPayload) (models.Lesson, error) {
	var lesson models.Lesson
	if err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/courses/%d/lessons", courseID), payload, &lesson); err != nil {
		return models.Lesson{}, err
	}
	return lesson, nil
}

// UpdateLesson replaces a lesson's editable fields.
func (c *Client) UpdateLesson(ctx context.Context, courseID, lessonID int64, payload LessonPayload) (models.Lesson, error) {
	var lesson models.Lesson
	path := fmt.Sprintf("/courses/%d/lessons/%d", courseID, lessonID)
	if err := c.sendJSON(ctx, http.MethodPut, path, payload, &lesson); err != nil {
		return models.Lesson{}, err
	}
	return lesson, nil
}

// DeleteLesson removes a lesson and its assignments.
func (c *Client) DeleteLesson(ctx context.Context, courseID, lessonID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/courses/%d/lessons/%d", courseID, lessonID), nil, nil, "", nil)
}

// ReorderLessons persists a new lesson sequence. The server rewrites each
// lesson's order field to match the slice position.
func (c *Client) ReorderLessons(ctx context.Context, courseID int64, lessonIDs []int64) error {
	payload := struct {
		LessonIDs []int64 `json:"lesson_ids"`
	}{LessonIDs: lessonIDs}
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/courses/%d/lessons/reorder", courseID), payload, nil)
}
