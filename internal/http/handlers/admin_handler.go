package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"service-timetable-assistant/internal/domain"
	"service-timetable-assistant/internal/service"
)

type DayReplacer interface {
	ReplaceDay(ctx context.Context, day string, entries []domain.ClassEntry) error
}

type AdminHandler struct {
	service DayReplacer
	logger  *slog.Logger
}

func NewAdminHandler(svc DayReplacer, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{service: svc, logger: logger}
}

func (h *AdminHandler) Register(r chi.Router) {
	r.Put("/admin/timetable/{day}", h.handleReplaceDay)
}

type replaceDayRequest struct {
	Classes []domain.ClassEntry `json:"classes"`
}

func (h *AdminHandler) handleReplaceDay(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")

	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodySize)
	defer r.Body.Close()

	var req replaceDayRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	if err := h.service.ReplaceDay(r.Context(), day, req.Classes); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, http.StatusBadRequest)
		default:
			h.logger.ErrorContext(r.Context(), "replace day failed", "day", day, "error", err)
			writeError(w, http.StatusInternalServerError)
		}
		return
	}

	h.logger.InfoContext(r.Context(), "timetable day replaced", "day", day, "classes", len(req.Classes))
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte("{}"))
}
