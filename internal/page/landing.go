// Package page holds the client's page controllers. Each controller owns
// its local UI state (loading flags, list data, form errors), fetches
// through the API client, and renders plain text to an injected writer.
// Consistency with the server is by re-fetching after mutations, never by
// client-side merging.
package page

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classboard/internal/api"
	"github.com/noah-isme/classboard/internal/models"
	"github.com/noah-isme/classboard/internal/session"
)

// loadErrMsg is the page-level message for transport failures.
const loadErrMsg = "Failed to load. Please try again."

// Landing is the public start page: the featured course list plus the
// login and registration forms.
type Landing struct {
	client   *api.Client
	session  *session.Manager
	validate *validator.Validate
	out      io.Writer
	logger   zerolog.Logger

	submitting bool
	lastErr    string
	formErr    string
}

// NewLanding builds the landing page controller.
func NewLanding(client *api.Client, sess *session.Manager, validate *validator.Validate, out io.Writer, logger zerolog.Logger) *Landing {
	return &Landing{
		client:   client,
		session:  sess,
		validate: validate,
		out:      out,
		logger:   logger.With().Str("component", "landing_page").Logger(),
	}
}

// Open fetches and renders the featured courses. A fetch failure renders
// a page-level load error instead of content.
func (p *Landing) Open(ctx context.Context) error {
	p.lastErr = ""

	courses, err := p.client.FeaturedCourses(ctx)
	if err != nil {
		p.lastErr = loadErrMsg
		p.logger.Warn().Err(err).Msg("featured courses fetch failed")
		p.render(nil)
		return err
	}

	p.render(courses)
	return nil
}

// Login exchanges credentials for a session. The resolved profile always
// comes from whoami, not from the login response.
func (p *Landing) Login(ctx context.Context, email, password string) error {
	if p.submitting {
		return nil
	}
	p.formErr = ""

	if err := p.validate.Var(email, "required,email"); err != nil {
		p.formErr = "Enter a valid email address."
		return fmt.Errorf("invalid email")
	}
	if password == "" {
		p.formErr = "Enter your password."
		return fmt.Errorf("empty password")
	}

	p.submitting = true
	defer func() { p.submitting = false }()

	pair, err := p.client.Login(ctx, email, password)
	if err != nil {
		p.formErr = formError(err)
		return err
	}

	if err := p.session.Establish(ctx, pair); err != nil {
		p.formErr = formError(err)
		return err
	}

	p.logger.Info().Str("email", email).Msg("logged in")
	return nil
}

// Register creates an account and immediately logs it in.
func (p *Landing) Register(ctx context.Context, req api.RegisterRequest) error {
	if p.submitting {
		return nil
	}
	p.formErr = ""

	if err := p.validate.Struct(req); err != nil {
		p.formErr = "Check the highlighted fields and try again."
		return err
	}

	p.submitting = true
	defer func() { p.submitting = false }()

	if _, err := p.client.Register(ctx, req); err != nil {
		p.formErr = formError(err)
		return err
	}

	pair, err := p.client.Login(ctx, req.Email, req.Password)
	if err != nil {
		p.formErr = formError(err)
		return err
	}
	if err := p.session.Establish(ctx, pair); err != nil {
		p.formErr = formError(err)
		return err
	}
	return nil
}

// FormError returns the inline message for the last auth attempt, or "".
func (p *Landing) FormError() string {
	return p.formErr
}

func (p *Landing) render(courses []models.Course) {
	if p.lastErr != "" {
		fmt.Fprintln(p.out, p.lastErr)
		return
	}

	fmt.Fprintln(p.out, "Featured courses")
	for _, course := range courses {
		fmt.Fprintf(p.out, "  [%d] %s\n", course.ID, course.Title)
	}
	if user := p.session.User(); user != nil {
		fmt.Fprintf(p.out, "Signed in as %s (%s)\n", user.FullName(), user.Role)
	}
}

// formError maps a failure to inline text: the server's detail message
// when one exists, otherwise a generic line.
func formError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return loadErrMsg
}
