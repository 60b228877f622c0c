package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classboard/internal/api"
	"github.com/noah-isme/classboard/internal/config"
	"github.com/noah-isme/classboard/internal/page"
	"github.com/noah-isme/classboard/internal/router"
	"github.com/noah-isme/classboard/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if cfg.AppEnv == "production" {
		logger = logger.Level(zerolog.InfoLevel)
	}

	store, err := session.NewStore(cfg.StateDir, logger)
	if err != nil {
		log.Fatalf("failed to open session store: %v", err)
	}

	manager := session.NewManager(store, logger)

	client, err := api.New(api.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
		Tokens:  manager,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create api client: %v", err)
	}
	manager.UseResolver(client)

	validate := validator.New(validator.WithRequiredStructEnabled())
	out := os.Stdout

	landing := page.NewLanding(client, manager, validate, out, logger)
	courses := page.NewCourses(client, cfg.PageSize, out, logger)
	lessons := page.NewLessons(client, out, logger)
	review := page.NewReview(client, validate, out, logger)

	appRouter := router.New(router.Dependencies{
		Landing: landing,
		Courses: courses,
		Review:  review,
		Session: manager,
	}, logger)

	client.HandleUnauthorized(func() {
		manager.Clear()
		appRouter.ForceHome()
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager.Bootstrap(ctx)

	start := "/"
	if len(os.Args) > 1 {
		start = os.Args[1]
	}
	if err := appRouter.Navigate(ctx, start); err != nil {
		logger.Warn().Err(err).Str("path", start).Msg("initial page load failed")
	}

	loop := &commandLoop{
		router:  appRouter,
		session: manager,
		landing: landing,
		courses: courses,
		lessons: lessons,
		review:  review,
		out:     out,
		logger:  logger,
	}
	loop.run(ctx, os.Stdin)
}
