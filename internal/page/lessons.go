package page

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classboard/internal/api"
	"github.com/noah-isme/classboard/internal/models"
)

// LessonEntry pairs a lesson with its assignments in the merged view.
type LessonEntry struct {
	Lesson      models.Lesson
	Assignments []models.Assignment
}

// Lessons is the course detail page: the lesson list merged with each
// lesson's assignments, ordered by the lessons' order field.
type Lessons struct {
	client    *api.Client
	out       io.Writer
	logger    zerolog.Logger
	sanitizer *bluemonday.Policy

	courseID int64
	entries  []LessonEntry
	loading  bool
	lastErr  string
}

// NewLessons builds the lesson list controller. Lesson content is
// sanitized to plain text before rendering.
func NewLessons(client *api.Client, out io.Writer, logger zerolog.Logger) *Lessons {
	return &Lessons{
		client:    client,
		out:       out,
		logger:    logger.With().Str("component", "lessons_page").Logger(),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Select sets the course whose lessons the page shows.
func (p *Lessons) Select(courseID int64) {
	p.courseID = courseID
	p.entries = nil
}

// Open fetches the course's lessons, then every lesson's assignments, and
// renders the merged list. A failed assignment fetch degrades that lesson
// to an empty assignment list; only the lesson fetch itself is fatal to
// the page.
func (p *Lessons) Open(ctx context.Context) error {
	if p.loading {
		return nil
	}
	p.loading = true
	defer func() { p.loading = false }()
	p.lastErr = ""

	lessons, err := p.client.Lessons(ctx, p.courseID)
	if err != nil {
		p.lastErr = loadErrMsg
		p.logger.Warn().Err(err).Int64("course_id", p.courseID).Msg("lesson fetch failed")
		p.render()
		return err
	}

	models.SortLessons(lessons)

	entries := make([]LessonEntry, 0, len(lessons))
	for _, lesson := range lessons {
		assignments, err := p.client.Assignments(ctx, p.courseID, lesson.ID)
		if err != nil {
			p.logger.Warn().Err(err).Int64("lesson_id", lesson.ID).Msg("assignment fetch failed, showing empty list")
			assignments = []models.Assignment{}
		}
		entries = append(entries, LessonEntry{Lesson: lesson, Assignments: assignments})
	}

	p.entries = entries
	p.render()
	return nil
}

// Entries returns the merged, order-sorted lesson list.
func (p *Lessons) Entries() []LessonEntry {
	return p.entries
}

// allowedUploads maps a lesson type to the MIME types its attachment may
// carry. Text lessons take no attachment at all.
var allowedUploads = map[models.LessonType][]string{
	models.LessonTypeVideo: {"video/mp4", "video/webm", "video/x-matroska", "video/quicktime"},
	models.LessonTypeFile:  {"application/pdf", "application/zip", "application/x-zip-compressed", "text/plain"},
}

// Upload attaches a file to a lesson. The payload is sniffed and checked
// against the lesson type's allowed formats before any network call; a
// mismatch is rejected with a message naming the acceptable formats.
func (p *Lessons) Upload(ctx context.Context, lesson models.Lesson, filename string, file io.Reader) (api.UploadResult, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return api.UploadResult{}, fmt.Errorf("read upload: %w", err)
	}

	if err := checkUploadType(lesson.Type, data); err != nil {
		return api.UploadResult{}, err
	}

	result, err := p.client.UploadLessonFile(ctx, p.courseID, lesson.ID, filename, bytes.NewReader(data))
	if err != nil {
		return api.UploadResult{}, err
	}

	p.logger.Info().Int64("lesson_id", lesson.ID).Str("path", result.StoredPath).Msg("lesson file uploaded")
	return result, nil
}

// checkUploadType sniffs the payload and matches it against the lesson
// type's allow-list. Detection trusts content, not the file extension.
func checkUploadType(lessonType models.LessonType, data []byte) error {
	allowed, ok := allowedUploads[lessonType]
	if !ok {
		return fmt.Errorf("%s lessons do not take file attachments", lessonType)
	}

	detected := mimetype.Detect(data)
	for _, candidate := range allowed {
		if detected.Is(candidate) {
			return nil
		}
	}

	return fmt.Errorf("unsupported file type %s for a %s lesson; acceptable formats: %s",
		detected.String(), lessonType, strings.Join(allowed, ", "))
}

func (p *Lessons) render() {
	if p.lastErr != "" {
		fmt.Fprintln(p.out, p.lastErr)
		return
	}

	// Labels use the 1-based position in the sorted list; the raw order
	// value only drives the sort and the editor field.
	for i, entry := range p.entries {
		fmt.Fprintf(p.out, "Lesson %d: %s (%s)\n", i+1, entry.Lesson.Title, entry.Lesson.Type)
		if entry.Lesson.Type == models.LessonTypeText && entry.Lesson.Content != "" {
			fmt.Fprintf(p.out, "  %s\n", p.sanitizer.Sanitize(entry.Lesson.Content))
		}
		for _, assignment := range entry.Assignments {
			fmt.Fprintf(p.out, "  assignment [%d] %s (max %d)\n", assignment.ID, assignment.Title, assignment.MaxScore)
		}
	}
}
