// AngelaMos | 2026
// handler.go

package presentation

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/voice-to-ppt/internal/core"
	"github.com/carterperez-dev/voice-to-ppt/internal/entitlement"
	"github.com/carterperez-dev/voice-to-ppt/internal/history"
	"github.com/carterperez-dev/voice-to-ppt/internal/middleware"
	"github.com/carterperez-dev/voice-to-ppt/internal/storage"
	"github.com/carterperez-dev/voice-to-ppt/internal/templates"
)

const maxOutlineBody = 1 << 20

type Handler struct {
	service   *Service
	templates *templates.Repository
	history   *history.Service
	store     storage.Store
	validate  *validator.Validate
}

func NewHandler(
	service *Service,
	repo *templates.Repository,
	hist *history.Service,
	store storage.Store,
) *Handler {
	return &Handler{
		service:   service,
		templates: repo,
		history:   hist,
		store:     store,
		validate:  validator.New(),
	}
}

// RegisterRoutes mounts the public API. generate wraps only the generation
// endpoint, which is where the entitlement guard sits.
func (h *Handler) RegisterRoutes(r chi.Router, generate ...func(http.Handler) http.Handler) {
	r.Get("/api/templates", h.ListTemplates)
	r.Get("/api/ppt-history", h.History)
	r.With(generate...).Post("/api/generate-pptx", h.Generate)
	r.Get(DownloadPrefix+"{filename}", h.Download)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GenerateRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxOutlineBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.JSON(w, http.StatusBadRequest, GenerateResponse{
			Status:  StatusError,
			Message: "invalid request body",
		})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.JSON(w, http.StatusBadRequest, GenerateResponse{
			Status:  StatusError,
			Message: core.FormatValidationError(err),
		})
		return
	}

	d, ok := entitlement.DecisionFromContext(ctx)
	if !ok {
		d = entitlement.Decision{
			Tier:    entitlement.TierGuest,
			UserID:  middleware.GetUserID(ctx),
			GuestID: entitlement.RequestFingerprint(r),
		}
	}

	core.OK(w, h.service.Generate(ctx, req, d))
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetUserID(r.Context())
	if identity == "" {
		identity = entitlement.RequestFingerprint(r)
	}

	entries := h.history.List(r.Context(), identity)
	core.OK(w, HistoryResponse{
		History: entries,
		Count:   len(entries),
	})
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	core.OK(w, TemplatesResponse{
		Status:    StatusSuccess,
		Templates: h.templates.List(),
	})
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if !validFilename(name) {
		core.BadRequest(w, "invalid filename")
		return
	}

	data, err := h.store.Get(r.Context(), name)
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "presentation")
		return
	}
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	w.Header().Set("Content-Type", storage.ContentTypePPTX)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // best-effort response write
	_, _ = w.Write(data)
}

func validFilename(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, FileExtension) {
		return false
	}
	if strings.ContainsAny(name, `/\"`) || path.Base(name) != name {
		return false
	}
	return !strings.Contains(name, "..")
}
