package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/noah-isme/classboard/internal/models"
)

// StatusFilter selects which review-queue rows to list.
type StatusFilter string

const (
	// FilterSubmitted lists work awaiting review. Default filter.
	FilterSubmitted StatusFilter = "submitted"
	// FilterGraded lists completed reviews.
	FilterGraded StatusFilter = "graded"
	// FilterReturned lists work sent back for revision.
	FilterReturned StatusFilter = "returned"
	// FilterAll lists everything regardless of status.
	FilterAll StatusFilter = "all"
)

// GradePayload is the body for grading calls. Score is validated by the
// caller against the assignment's max score before any network dispatch.
type GradePayload struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback,omitempty"`
}

// PendingSubmissions lists the teacher's review queue under a status
// filter. FilterAll omits the query parameter.
func (c *Client) PendingSubmissions(ctx context.Context, filter StatusFilter) ([]models.Submission, error) {
	var query url.Values
	if filter != "" && filter != FilterAll {
		query = url.Values{}
		query.Set("status_filter", string(filter))
	}

	var submissions []models.Submission
	if err := c.getJSON(ctx, "/gradebook/pending", query, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// GradeSubmission records a score and optional feedback; the submission
// transitions to graded.
func (c *Client) GradeSubmission(ctx context.Context, submissionID int64, payload GradePayload) (models.Submission, error) {
	var submission models.Submission
	path := fmt.Sprintf("/gradebook/submissions/%d/grade/", submissionID)
	if err := c.sendJSON(ctx, http.MethodPost, path, payload, &submission); err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

// UpdateGrade rewrites an existing grade's score or feedback.
func (c *Client) UpdateGrade(ctx context.Context, submissionID int64, payload GradePayload) (models.Submission, error) {
	var submission models.Submission
	path := fmt.Sprintf("/gradebook/submissions/%d/grade/", submissionID)
	if err := c.sendJSON(ctx, http.MethodPut, path, payload, &submission); err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

// ReturnSubmission sends work back for revision with optional feedback
// and no score; the submission transitions to returned.
func (c *Client) ReturnSubmission(ctx context.Context, submissionID int64, feedback string) (models.Submission, error) {
	payload := struct {
		Feedback string `json:"feedback,omitempty"`
	}{Feedback: feedback}

	var submission models.Submission
	path := fmt.Sprintf("/gradebook/submissions/%d/return", submissionID)
	if err := c.sendJSON(ctx, http.MethodPost, path, payload, &submission); err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

// Comments fetches a submission's discussion thread in server order.
func (c *Client) Comments(ctx context.Context, submissionID int64) ([]models.Comment, error) {
	var comments []models.Comment
	path := fmt.Sprintf("/gradebook/submissions/%d/comments", submissionID)
	if err := c.getJSON(ctx, path, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment appends to a submission's thread and returns the stored
// comment as acknowledged by the server.
func (c *Client) AddComment(ctx context.Context, submissionID int64, content string) (models.Comment, error) {
	payload := struct {
		Content string `json:"content"`
	}{Content: content}

	var comment models.Comment
	path := fmt.Sprintf("/gradebook/submissions/%d/comments", submissionID)
	if err := c.sendJSON(ctx, http.MethodPost, path, payload, &comment); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}
