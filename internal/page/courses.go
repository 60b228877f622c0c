package page

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/noah-isme/classboard/internal/api"
	"github.com/noah-isme/classboard/internal/models"
)

// Courses is the "my courses" page: one server-driven page of the
// role-polymorphic course list, with boundary-clamped navigation.
type Courses struct {
	client   *api.Client
	out      io.Writer
	logger   zerolog.Logger
	pageSize int

	page    int
	total   int
	items   []models.CourseListItem
	loading bool
	lastErr string
}

// NewCourses builds the course list controller starting on page 1.
func NewCourses(client *api.Client, pageSize int, out io.Writer, logger zerolog.Logger) *Courses {
	if pageSize <= 0 {
		pageSize = 6
	}
	return &Courses{
		client:   client,
		out:      out,
		logger:   logger.With().Str("component", "courses_page").Logger(),
		pageSize: pageSize,
		page:     1,
	}
}

// Open fetches and renders the current page.
func (p *Courses) Open(ctx context.Context) error {
	return p.load(ctx)
}

// Page returns the current 1-based page number.
func (p *Courses) Page() int {
	return p.page
}

// TotalPages derives the page count from the server total. An empty list
// still counts as one page so boundary controls stay disabled.
func (p *Courses) TotalPages() int {
	if p.total <= 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

// CanPrev reports whether backward navigation is enabled.
func (p *Courses) CanPrev() bool {
	return p.page > 1
}

// CanNext reports whether forward navigation is enabled.
func (p *Courses) CanNext() bool {
	return p.page < p.TotalPages()
}

// Next advances one page. Disabled at the last page: no request is made.
func (p *Courses) Next(ctx context.Context) error {
	if !p.CanNext() {
		return nil
	}
	p.page++
	return p.load(ctx)
}

// Prev goes back one page. Disabled at the first page.
func (p *Courses) Prev(ctx context.Context) error {
	if !p.CanPrev() {
		return nil
	}
	p.page--
	return p.load(ctx)
}

// GoTo jumps to a page, clamping out-of-range targets before dispatch.
func (p *Courses) GoTo(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	if max := p.TotalPages(); page > max {
		page = max
	}
	p.page = page
	return p.load(ctx)
}

// Items returns the projected rows of the current page.
func (p *Courses) Items() []models.CourseListItem {
	return p.items
}

func (p *Courses) load(ctx context.Context) error {
	if p.loading {
		return nil
	}
	p.loading = true
	defer func() { p.loading = false }()
	p.lastErr = ""

	skip := (p.page - 1) * p.pageSize
	result, err := p.client.MyCourses(ctx, skip, p.pageSize)
	if err != nil {
		p.lastErr = loadErrMsg
		p.logger.Warn().Err(err).Int("page", p.page).Msg("course list fetch failed")
		p.render()
		return err
	}

	p.total = result.Total
	p.items = p.items[:0]
	for _, record := range result.Records {
		p.items = append(p.items, record.ListItem())
	}

	// The list may have shrunk since the total was last seen; snap back to
	// the new last page once.
	if p.page > p.TotalPages() {
		p.page = p.TotalPages()
		p.loading = false
		return p.load(ctx)
	}

	p.render()
	return nil
}

func (p *Courses) render() {
	if p.lastErr != "" {
		fmt.Fprintln(p.out, p.lastErr)
		return
	}

	fmt.Fprintf(p.out, "My courses (page %d of %d)\n", p.page, p.TotalPages())
	for _, item := range p.items {
		if item.Progress != nil {
			fmt.Fprintf(p.out, "  [%d] %s - %.0f%% complete\n", item.CourseID, item.Title, *item.Progress)
			continue
		}
		fmt.Fprintf(p.out, "  [%d] %s - %s\n", item.CourseID, item.Title, item.Status)
	}
}
