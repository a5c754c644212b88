package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xilidan/echotube/gateways/api/clients/youtube"
	"github.com/xilidan/echotube/gateways/api/contract"
	pkgjson "github.com/xilidan/echotube/pkg/json"
	"github.com/xilidan/echotube/pkg/logger"
)

type Handler struct {
	registry   *contract.Registry
	newService ServiceFactory
	language   string
	log        *slog.Logger
}

type response struct {
	Status int
	Body   any
}

// operation receives the request body as decoded and validated by the
// registry, so required fields are present with their declared types.
type operation func(ctx context.Context, input map[string]any) (response, error)

type validationErrorResponse struct {
	Error  string   `json:"error"`
	Issues []string `json:"issues"`
}

// New wires the handlers to registry. language is reported verbatim as the
// transcript language.
func New(registry *contract.Registry, newService ServiceFactory, language string, log *slog.Logger) *Handler {
	log.Debug("creating new handler", slog.String("language", language))
	return &Handler{
		registry:   registry,
		newService: newService,
		language:   language,
		log:        log,
	}
}

func (h *Handler) operations() map[string]operation {
	return map[string]operation{
		contract.TranscribeVideo:  h.transcribeVideo,
		contract.GetTranscript:    h.getTranscript,
		contract.GetVideoInfo:     h.getVideoInfo,
		contract.FindChannel:      h.findChannel,
		contract.GetChannelVideos: h.getChannelVideos,
	}
}

// Mount registers one route per registry endpoint. An endpoint without an
// implementation is an error.
func (h *Handler) Mount(r chi.Router) error {
	ops := h.operations()
	for _, e := range h.registry.Endpoints() {
		op, ok := ops[e.Name]
		if !ok {
			return fmt.Errorf("no handler for endpoint %q", e.Name)
		}
		r.Method(e.Method, e.Path, h.endpoint(e, op))
		h.log.Debug("registered route",
			slog.String("operation", e.Name),
			slog.String("method", e.Method),
			slog.String("path", e.Path))
	}
	h.log.Info("all routes registered successfully", slog.Int("count", len(h.registry.Endpoints())))
	return nil
}

func (h *Handler) endpoint(e contract.Endpoint, op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx).With(slog.String("operation", e.Name))
		ctx = logger.WithContext(ctx, log)

		body, err := pkgjson.ReadBody(w, r)
		if err != nil {
			log.Warn("failed to read request body", slog.String("error", err.Error()))
			status := http.StatusBadRequest
			if errors.Is(err, pkgjson.ErrBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			pkgjson.WriteError(w, status, err)
			return
		}

		input, err := h.registry.ValidateRequest(e.Name, body)
		if err != nil {
			var verr *contract.ValidationError
			if errors.As(err, &verr) {
				log.Warn("request validation failed", slog.Any("issues", verr.Issues))
				pkgjson.WriteJSON(w, http.StatusBadRequest, validationErrorResponse{
					Error:  "request validation failed",
					Issues: verr.Issues,
				})
				return
			}
			log.Error("request validation error", slog.String("error", err.Error()))
			pkgjson.WriteError(w, http.StatusInternalServerError, err)
			return
		}

		resp, err := op(ctx, input)
		if err != nil {
			resp = h.upstreamError(ctx, err)
		}

		if err := h.registry.ValidateResponse(e.Name, resp.Status, resp.Body); err != nil {
			log.Error("response does not match contract",
				slog.Int("status", resp.Status),
				slog.String("error", err.Error()))
			pkgjson.WriteError(w, http.StatusInternalServerError, errors.New("internal server error"))
			return
		}

		if resp.Body == nil {
			pkgjson.WriteEmpty(w, resp.Status)
			return
		}
		if err := pkgjson.WriteJSON(w, resp.Status, resp.Body); err != nil {
			log.Error("failed to write response", slog.String("error", err.Error()))
		}
	}
}

// upstreamError translates service failures into responses.
func (h *Handler) upstreamError(ctx context.Context, err error) response {
	switch {
	case errors.Is(err, youtube.ErrChannelNotFound):
		logger.Info(ctx, "channel not found", slog.String("error", err.Error()))
		return response{Status: http.StatusNotFound}
	case errors.Is(err, youtube.ErrVideoUnavailable), errors.Is(err, youtube.ErrTranscriptsDisabled):
		logger.Info(ctx, "video resource unavailable", slog.String("error", err.Error()))
		return errorResponse(http.StatusNotFound, err)
	case errors.Is(err, context.Canceled):
		logger.Warn(ctx, "request canceled by client")
		return errorResponse(http.StatusBadGateway, err)
	}
	logger.ErrorErr(ctx, "upstream request failed", err)
	return errorResponse(http.StatusBadGateway, fmt.Errorf("upstream request failed: %w", err))
}

func errorResponse(status int, err error) response {
	return response{Status: status, Body: map[string]string{"error": err.Error()}}
}

func stringField(input map[string]any, name string) string {
	s, _ := input[name].(string)
	return s
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.Debug(r.Context(), "health check request received",
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("user_agent", r.UserAgent()))
	pkgjson.WriteJSON(w, http.StatusOK, map[string]bool{"status": true})
}
