package models

import (
	"fmt"
	"time"
)

// SubmissionStatus is the review state of a submission. It is the only
// state machine in the system.
type SubmissionStatus string

const (
	// SubmissionStatusDraft means the student has not submitted yet.
	SubmissionStatusDraft SubmissionStatus = "draft"
	// SubmissionStatusSubmitted means the work awaits review.
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	// SubmissionStatusGraded means a score has been recorded. Terminal from
	// the reviewer's perspective.
	SubmissionStatusGraded SubmissionStatus = "graded"
	// SubmissionStatusReturned means the work was sent back for revision.
	SubmissionStatusReturned SubmissionStatus = "returned"
)

// transitions is the full status graph. returned → submitted happens on the
// student side and is only ever observed here as a status value.
var transitions = map[SubmissionStatus][]SubmissionStatus{
	SubmissionStatusDraft:     {SubmissionStatusSubmitted},
	SubmissionStatusSubmitted: {SubmissionStatusGraded, SubmissionStatusReturned},
	SubmissionStatusReturned:  {SubmissionStatusSubmitted},
	SubmissionStatusGraded:    {},
}

// CanTransition reports whether moving a submission from one status to
// another is legal.
func CanTransition(from, to SubmissionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a descriptive error for an illegal move so
// callers can surface it inline without consulting the table themselves.
func ValidateTransition(from, to SubmissionStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("submission cannot move from %s to %s", from, to)
	}
	return nil
}

// Submission is a student's attempt at an assignment as seen by the
// review queue. The queue enriches each row with assignment and student
// display fields so the reviewer does not need extra lookups.
type Submission struct {
	SubmissionID    int64            `json:"submission_id"`
	StudentID       int64            `json:"student_id"`
	AssignmentID    int64            `json:"assignment_id"`
	Content         string           `json:"content"`
	FileURL         string           `json:"file_url"`
	SubmittedAt     time.Time        `json:"submitted_at"`
	Status          SubmissionStatus `json:"status"`
	StudentName     string           `json:"student_name"`
	AssignmentTitle string           `json:"assignment_title"`
	MaxScore        int              `json:"max_score"`
	Grade           *Grade           `json:"grade"`
}

// Grade is the score and feedback attached to a graded submission.
type Grade struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Comment is one entry in a submission's append-only discussion thread.
type Comment struct {
	ID           int64     `json:"id"`
	SubmissionID int64     `json:"submission_id"`
	UserID       int64     `json:"user_id"`
	UserName     string    `json:"user_name"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}
