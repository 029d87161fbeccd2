package app

import (
	"context"
	"log/slog"
	"net/http"

	"service-timetable-assistant/internal/domain"
	transport "service-timetable-assistant/internal/http"
	"service-timetable-assistant/internal/http/handlers"
	"service-timetable-assistant/internal/repository"
	"service-timetable-assistant/internal/service"
)

type Options struct {
	Store              service.TimetableStore
	TxManager          repository.TxManager
	AdminToken         string
	ContextLifespan    int
	RecordInteractions bool
	Logger             *slog.Logger
}

type App struct {
	handler          http.Handler
	timetableService *service.TimetableService
}

func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	intentRouter := service.NewIntentRouter(opts.Store, logger)
	timetableService := service.NewTimetableService(opts.TxManager)

	var recorder handlers.InteractionRecorder
	if opts.RecordInteractions {
		recorder = timetableService
	}

	webhookHandler := handlers.NewWebhookHandler(intentRouter, recorder, opts.ContextLifespan, logger)
	adminHandler := handlers.NewAdminHandler(timetableService, logger)
	router := transport.NewRouter(webhookHandler, adminHandler, opts.AdminToken)

	return &App{handler: router.Handler(), timetableService: timetableService}
}

func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) ImportTimetable(ctx context.Context, timetable map[string][]domain.ClassEntry) error {
	return a.timetableService.Import(ctx, timetable)
}
