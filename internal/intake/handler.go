package intake

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/wolfman30/lead-intake-ai/pkg/logging"
)

// WebhookSecretHeader carries the shared secret on inbound webhook calls.
const WebhookSecretHeader = "X-Webhook-Secret"

// Handler handles HTTP requests for the intake webhook.
type Handler struct {
	pipeline *Pipeline
	secret   string
	logger   *logging.Logger
}

// NewHandler creates a new intake handler. An empty secret disables the
// shared-secret check.
func NewHandler(pipeline *Pipeline, secret string, logger *logging.Logger) *Handler {
	if pipeline == nil {
		panic("intake: pipeline cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		pipeline: pipeline,
		secret:   strings.TrimSpace(secret),
		logger:   logger,
	}
}

// HandleLead handles POST /webhooks/lead requests.
func (h *Handler) HandleLead(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		supplied := r.Header.Get(WebhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(h.secret)) != 1 {
			h.logger.Warn("rejected webhook with bad secret", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
	}

	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	taskType := strings.TrimSpace(req.TaskType)
	if taskType == "" || taskType == TaskTypeLeadReply {
		h.handleLeadReply(w, r, &req)
		return
	}
	h.handleFreeText(w, r, &req)
}

func (h *Handler) handleLeadReply(w http.ResponseWriter, r *http.Request, req *IntakeRequest) {
	res, err := h.pipeline.Process(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmptyBody) {
			writeError(w, http.StatusBadRequest, "body is required")
			return
		}
		h.logger.Error("pipeline failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleFreeText(w http.ResponseWriter, r *http.Request, req *IntakeRequest) {
	res, err := h.pipeline.FreeText(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmptyBody) {
			writeError(w, http.StatusBadRequest, "body is required")
			return
		}
		h.logger.Error("free-text task failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HealthCheck returns liveness with a timestamp; it has no dependency on the
// completion service.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
