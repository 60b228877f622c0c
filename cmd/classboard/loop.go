package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/classboard/internal/api"
	"github.com/noah-isme/classboard/internal/models"
	"github.com/noah-isme/classboard/internal/page"
	"github.com/noah-isme/classboard/internal/router"
	"github.com/noah-isme/classboard/internal/session"
)

// commandLoop reads line commands from stdin and drives the pages. All
// operations run on this single goroutine, one round trip at a time.
type commandLoop struct {
	router  *router.Router
	session *session.Manager
	landing *page.Landing
	courses *page.Courses
	lessons *page.Lessons
	review  *page.Review
	out     io.Writer
	logger  zerolog.Logger
}

func (l *commandLoop) run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(l.out, `Type "help" for commands.`)

	for {
		fmt.Fprintf(l.out, "%s> ", l.router.Current())
		if !scanner.Scan() {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if quit := l.dispatch(ctx, fields[0], fields[1:]); quit {
			return
		}
	}
}

func (l *commandLoop) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		l.printHelp()
	case "open":
		l.navigate(ctx, firstOr(args, "/"))
	case "login":
		if len(args) < 2 {
			fmt.Fprintln(l.out, "usage: login <email> <password>")
			break
		}
		if err := l.landing.Login(ctx, args[0], args[1]); err != nil {
			fmt.Fprintln(l.out, l.landing.FormError())
			break
		}
		l.navigate(ctx, "/courses")
	case "register":
		l.register(ctx, args)
	case "logout":
		l.session.Logout()
		l.navigate(ctx, "/")
	case "next":
		l.report(l.courses.Next(ctx))
	case "prev":
		l.report(l.courses.Prev(ctx))
	case "page":
		if n, err := strconv.Atoi(firstOr(args, "1")); err == nil {
			l.report(l.courses.GoTo(ctx, n))
		}
	case "course":
		l.openCourse(ctx, args)
	case "upload":
		l.upload(ctx, args)
	case "filter":
		l.report(l.review.SetFilter(ctx, api.StatusFilter(firstOr(args, "submitted"))))
	case "grade":
		if len(args) < 2 {
			fmt.Fprintln(l.out, "usage: grade <submission> <score> [feedback]")
			break
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		if err := l.review.Grade(ctx, id, args[1], strings.Join(args[2:], " ")); err != nil {
			fmt.Fprintln(l.out, l.review.InlineError())
		}
	case "return":
		if len(args) < 1 {
			fmt.Fprintln(l.out, "usage: return <submission> [feedback]")
			break
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		if err := l.review.Return(ctx, id, strings.Join(args[1:], " ")); err != nil {
			fmt.Fprintln(l.out, l.review.InlineError())
		}
	case "comments":
		if len(args) < 1 {
			break
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		for _, comment := range l.review.LoadComments(ctx, id) {
			fmt.Fprintf(l.out, "  %s: %s\n", comment.UserName, comment.Content)
		}
	case "comment":
		if len(args) < 2 {
			fmt.Fprintln(l.out, "usage: comment <submission> <text>")
			break
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		if err := l.review.AddComment(ctx, id, strings.Join(args[1:], " ")); err != nil {
			fmt.Fprintln(l.out, l.review.InlineError())
		}
	default:
		fmt.Fprintf(l.out, "unknown command %q\n", cmd)
	}
	return false
}

func (l *commandLoop) register(ctx context.Context, args []string) {
	if len(args) < 5 {
		fmt.Fprintln(l.out, "usage: register <email> <password> <first> <last> <student|teacher>")
		return
	}
	req := api.RegisterRequest{
		Email:     args[0],
		Password:  args[1],
		FirstName: args[2],
		LastName:  args[3],
		Role:      models.Role(args[4]),
	}
	if err := l.landing.Register(ctx, req); err != nil {
		fmt.Fprintln(l.out, l.landing.FormError())
		return
	}
	l.navigate(ctx, "/courses")
}

func (l *commandLoop) openCourse(ctx context.Context, args []string) {
	if !l.session.Authenticated() {
		l.navigate(ctx, "/")
		return
	}
	if len(args) < 1 {
		fmt.Fprintln(l.out, "usage: course <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(l.out, "usage: course <id>")
		return
	}
	l.lessons.Select(id)
	l.report(l.lessons.Open(ctx))
}

func (l *commandLoop) upload(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(l.out, "usage: upload <lesson-number> <path>")
		return
	}
	position, err := strconv.Atoi(args[0])
	entries := l.lessons.Entries()
	if err != nil || position < 1 || position > len(entries) {
		fmt.Fprintln(l.out, "no such lesson")
		return
	}

	file, err := os.Open(args[1])
	if err != nil {
		fmt.Fprintf(l.out, "cannot open %s\n", args[1])
		return
	}
	defer file.Close()

	result, err := l.lessons.Upload(ctx, entries[position-1].Lesson, file.Name(), file)
	if err != nil {
		fmt.Fprintln(l.out, err)
		return
	}
	fmt.Fprintln(l.out, result.Message)
}

func (l *commandLoop) navigate(ctx context.Context, path string) {
	l.report(l.router.Navigate(ctx, path))
}

// report swallows page errors: the page already rendered its own message
// and every failure waits for a fresh user action, never a retry.
func (l *commandLoop) report(err error) {
	if err != nil {
		l.logger.Debug().Err(err).Msg("page action failed")
	}
}

func (l *commandLoop) printHelp() {
	fmt.Fprintln(l.out, `commands:
  open </|/courses|/review>   navigate between pages
  login <email> <password>    sign in
  register <email> <password> <first> <last> <role>
  logout
  next | prev | page <n>      course list pagination
  course <id>                 show a course's lessons and assignments
  upload <lesson#> <path>     attach a file to a lesson
  filter <submitted|graded|returned|all>
  grade <submission> <score> [feedback]
  return <submission> [feedback]
  comments <submission>       show a submission's thread
  comment <submission> <text>
  quit`)
}

func firstOr(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}
