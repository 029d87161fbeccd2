package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"service-timetable-assistant/internal/service"
)

const (
	maxWebhookBodySize = 1 << 20
	dayContextName     = "timetable-day"
	livenessText       = "Timetable webhook is live."
)

type Fulfiller interface {
	Fulfill(ctx context.Context, req service.FulfillmentRequest) (service.Fulfillment, error)
}

type InteractionRecorder interface {
	RecordInteraction(ctx context.Context, session, intent, queryText, reply string) error
}

type WebhookHandler struct {
	fulfiller       Fulfiller
	recorder        InteractionRecorder
	contextLifespan int
	logger          *slog.Logger
}

// NewWebhookHandler builds the fulfillment endpoint. recorder may be nil,
// in which case interactions are not persisted.
func NewWebhookHandler(fulfiller Fulfiller, recorder InteractionRecorder, contextLifespan int, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{
		fulfiller:       fulfiller,
		recorder:        recorder,
		contextLifespan: contextLifespan,
		logger:          logger,
	}
}

func (h *WebhookHandler) Register(r chi.Router) {
	r.Get("/", h.handleLiveness)
	r.Get("/health", h.handleHealth)
	r.Post("/webhook", h.handleWebhook)
}

type webhookRequest struct {
	Session     string       `json:"session"`
	QueryResult *queryResult `json:"queryResult"`
}

type queryResult struct {
	QueryText  string         `json:"queryText"`
	Parameters map[string]any `json:"parameters"`
	Intent     struct {
		DisplayName string `json:"displayName"`
	} `json:"intent"`
}

type webhookResponse struct {
	FulfillmentText string          `json:"fulfillmentText"`
	OutputContexts  []outputContext `json:"outputContexts,omitempty"`
}

type outputContext struct {
	Name          string         `json:"name"`
	LifespanCount int            `json:"lifespanCount"`
	Parameters    map[string]any `json:"parameters"`
}

func (h *WebhookHandler) handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(livenessText))
}

func (h *WebhookHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleWebhook always answers 200. Decoding problems, store failures and
// panics all degrade to a reply text.
func (h *WebhookHandler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", middleware.GetReqID(ctx))

	defer func() {
		if rec := recover(); rec != nil {
			logger.ErrorContext(ctx, "webhook panic", "panic", rec)
			writeFulfillment(w, webhookResponse{FulfillmentText: service.ReplyUpstreamFailure()})
		}
	}()

	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodySize)
	defer r.Body.Close()

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "undecodable webhook payload", "error", err)
	}

	var query queryResult
	if req.QueryResult != nil {
		query = *req.QueryResult
	}
	intent := query.Intent.DisplayName

	logger.InfoContext(ctx, "intent triggered", "intent", intent, "session", req.Session)
	logger.DebugContext(ctx, "intent parameters", "parameters", query.Parameters)

	fulfillment, err := h.fulfiller.Fulfill(ctx, service.FulfillmentRequest{
		Intent:     intent,
		Parameters: query.Parameters,
	})
	if err != nil {
		logger.ErrorContext(ctx, "webhook error", "intent", intent, "error", err)
		fulfillment = service.Fulfillment{Text: service.ReplyUpstreamFailure()}
	}

	resp := webhookResponse{FulfillmentText: fulfillment.Text}
	if fulfillment.Context != nil {
		resp.OutputContexts = []outputContext{{
			Name:          contextName(req.Session),
			LifespanCount: h.contextLifespan,
			Parameters:    map[string]any{"day": fulfillment.Context.Day},
		}}
	}

	h.record(ctx, logger, req.Session, intent, query.QueryText, resp.FulfillmentText)
	writeFulfillment(w, resp)
}

func (h *WebhookHandler) record(ctx context.Context, logger *slog.Logger, session, intent, queryText, reply string) {
	if h.recorder == nil {
		return
	}
	if err := h.recorder.RecordInteraction(ctx, session, intent, queryText, reply); err != nil {
		logger.WarnContext(ctx, "record interaction failed", "error", err)
	}
}

func contextName(session string) string {
	session = strings.TrimRight(session, "/")
	if session == "" {
		return dayContextName
	}
	return session + "/contexts/" + dayContextName
}

func writeFulfillment(w http.ResponseWriter, resp webhookResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
