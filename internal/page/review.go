package page

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classboard/internal/api"
	"github.com/noah-isme/classboard/internal/models"
)

// Review is the teacher's gradebook page: the submission queue under a
// status filter, grading and return-for-revision actions, and the lazy
// per-submission comment threads.
type Review struct {
	client    *api.Client
	validate  *validator.Validate
	out       io.Writer
	logger    zerolog.Logger
	sanitizer *bluemonday.Policy

	filter      api.StatusFilter
	submissions []models.Submission
	threads     map[int64][]models.Comment
	loading     bool
	submitting  bool
	lastErr     string
	inlineErr   string
}

// NewReview builds the review controller with the default submitted
// filter.
func NewReview(client *api.Client, validate *validator.Validate, out io.Writer, logger zerolog.Logger) *Review {
	return &Review{
		client:    client,
		validate:  validate,
		out:       out,
		logger:    logger.With().Str("component", "review_page").Logger(),
		sanitizer: bluemonday.StrictPolicy(),
		filter:    api.FilterSubmitted,
		threads:   map[int64][]models.Comment{},
	}
}

// Open fetches and renders the queue under the active filter.
func (p *Review) Open(ctx context.Context) error {
	return p.load(ctx)
}

// Filter returns the active status filter.
func (p *Review) Filter() api.StatusFilter {
	return p.filter
}

// SetFilter switches the queue filter and refetches.
func (p *Review) SetFilter(ctx context.Context, filter api.StatusFilter) error {
	if err := p.validate.Var(string(filter), "oneof=submitted graded returned all"); err != nil {
		p.inlineErr = "Unknown filter."
		return fmt.Errorf("invalid filter %q", filter)
	}
	p.filter = filter
	return p.load(ctx)
}

// Submissions returns the rows of the current queue.
func (p *Review) Submissions() []models.Submission {
	return p.submissions
}

// InlineError returns the message of the last rejected form input, or "".
func (p *Review) InlineError() string {
	return p.inlineErr
}

// Grade validates the raw score input and, when valid and the transition
// is legal, records the grade and refetches the queue under the active
// filter. Invalid input never reaches the network.
func (p *Review) Grade(ctx context.Context, submissionID int64, rawScore, feedback string) error {
	if p.submitting {
		return nil
	}
	p.inlineErr = ""

	submission, ok := p.find(submissionID)
	if !ok {
		p.inlineErr = "Submission is no longer in the queue."
		return fmt.Errorf("submission %d not listed", submissionID)
	}

	score, err := strconv.Atoi(strings.TrimSpace(rawScore))
	if err != nil {
		p.inlineErr = "Score must be a whole number."
		return fmt.Errorf("non-numeric score %q", rawScore)
	}

	if err := p.validate.Var(score, fmt.Sprintf("gte=0,lte=%d", submission.MaxScore)); err != nil {
		p.inlineErr = fmt.Sprintf("Score must be between 0 and %d.", submission.MaxScore)
		return fmt.Errorf("score %d out of range", score)
	}

	if err := models.ValidateTransition(submission.Status, models.SubmissionStatusGraded); err != nil {
		p.inlineErr = err.Error()
		return err
	}

	p.submitting = true
	defer func() { p.submitting = false }()

	if _, err := p.client.GradeSubmission(ctx, submissionID, api.GradePayload{Score: score, Feedback: feedback}); err != nil {
		p.inlineErr = formError(err)
		return err
	}

	p.logger.Info().Int64("submission_id", submissionID).Int("score", score).Msg("submission graded")
	return p.load(ctx)
}

// Return sends a submission back for revision with optional feedback and
// refetches the queue.
func (p *Review) Return(ctx context.Context, submissionID int64, feedback string) error {
	if p.submitting {
		return nil
	}
	p.inlineErr = ""

	submission, ok := p.find(submissionID)
	if !ok {
		p.inlineErr = "Submission is no longer in the queue."
		return fmt.Errorf("submission %d not listed", submissionID)
	}

	if err := models.ValidateTransition(submission.Status, models.SubmissionStatusReturned); err != nil {
		p.inlineErr = err.Error()
		return err
	}

	p.submitting = true
	defer func() { p.submitting = false }()

	if _, err := p.client.ReturnSubmission(ctx, submissionID, feedback); err != nil {
		p.inlineErr = formError(err)
		return err
	}

	p.logger.Info().Int64("submission_id", submissionID).Msg("submission returned for revision")
	return p.load(ctx)
}

// LoadComments lazily fetches a submission's thread. A fetch failure
// degrades to an empty thread; commenting stays available either way.
func (p *Review) LoadComments(ctx context.Context, submissionID int64) []models.Comment {
	comments, err := p.client.Comments(ctx, submissionID)
	if err != nil {
		p.logger.Warn().Err(err).Int64("submission_id", submissionID).Msg("comment fetch failed, showing empty thread")
		comments = []models.Comment{}
	}
	p.threads[submissionID] = comments
	return comments
}

// Thread returns the loaded comments for a submission, if any.
func (p *Review) Thread(submissionID int64) []models.Comment {
	return p.threads[submissionID]
}

// AddComment posts to a thread and appends the acknowledged comment to
// the in-memory list. Nothing is appended before the server confirms.
func (p *Review) AddComment(ctx context.Context, submissionID int64, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		p.inlineErr = "Comment cannot be empty."
		return fmt.Errorf("empty comment")
	}

	comment, err := p.client.AddComment(ctx, submissionID, content)
	if err != nil {
		p.inlineErr = formError(err)
		return err
	}

	p.threads[submissionID] = append(p.threads[submissionID], comment)
	return nil
}

func (p *Review) find(submissionID int64) (models.Submission, bool) {
	for _, submission := range p.submissions {
		if submission.SubmissionID == submissionID {
			return submission, true
		}
	}
	return models.Submission{}, false
}

func (p *Review) load(ctx context.Context) error {
	if p.loading {
		return nil
	}
	p.loading = true
	defer func() { p.loading = false }()
	p.lastErr = ""

	submissions, err := p.client.PendingSubmissions(ctx, p.filter)
	if err != nil {
		p.lastErr = loadErrMsg
		p.logger.Warn().Err(err).Str("filter", string(p.filter)).Msg("review queue fetch failed")
		p.render()
		return err
	}

	p.submissions = submissions
	p.render()
	return nil
}

func (p *Review) render() {
	if p.lastErr != "" {
		fmt.Fprintln(p.out, p.lastErr)
		return
	}

	fmt.Fprintf(p.out, "Review queue (%s): %d submissions\n", p.filter, len(p.submissions))
	for _, submission := range p.submissions {
		fmt.Fprintf(p.out, "  [%d] %s by %s - %s\n",
			submission.SubmissionID, submission.AssignmentTitle, submission.StudentName, submission.Status)
		if submission.Grade != nil {
			fmt.Fprintf(p.out, "      score %d/%d: %s\n",
				submission.Grade.Score, submission.MaxScore, p.sanitizer.Sanitize(submission.Grade.Feedback))
		}
	}
	if p.inlineErr != "" {
		fmt.Fprintln(p.out, p.inlineErr)
	}
}
