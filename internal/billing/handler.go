// AngelaMos | 2026
// handler.go

package billing

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/voice-to-ppt/internal/core"
	"github.com/carterperez-dev/voice-to-ppt/internal/middleware"
)

const maxWebhookBody = 64 << 10

type Handler struct {
	service  *Service
	secret   string
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler with an empty secret accepts every event.
func NewHandler(service *Service, secret string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service:  service,
		secret:   secret,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/revenuecat-webhook", h.Webhook)
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return true
	}
	return core.SecretsEqual(middleware.ExtractToken(r), h.secret)
}

func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.authorized(r) {
		h.logger.WarnContext(ctx, "billing webhook rejected: bad credential",
			"remote_ip", core.ClientIP(r),
		)
		core.Unauthorized(w, "invalid webhook credential")
		return
	}

	var payload WebhookPayload
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		core.JSON(w, http.StatusBadRequest, WebhookResponse{Status: StatusInvalidPayload})
		return
	}

	if !h.service.Available() {
		h.logger.WarnContext(ctx, "billing webhook dropped: store unavailable")
		core.OK(w, WebhookResponse{Status: StatusRedisUnavailable})
		return
	}

	if payload.Event == nil {
		core.OK(w, WebhookResponse{Status: StatusInvalidPayload})
		return
	}

	if err := h.validate.Struct(payload.Event); err != nil {
		h.logger.InfoContext(ctx, "billing webhook missing fields",
			"detail", core.FormatValidationError(err),
		)
		core.OK(w, WebhookResponse{Status: StatusMissingFields})
		return
	}

	status, err := h.service.Apply(ctx, *payload.Event)
	if err != nil {
		h.logger.ErrorContext(ctx, "billing webhook failed",
			"event", payload.Event.Type,
			"error", err,
		)
	}

	core.OK(w, WebhookResponse{Status: status})
}
