package chat

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type Handler struct {
	svc Service
	log zerolog.Logger
}

func NewHandler(svc Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: logger}
}

// HandleChat: form submission. Configuration problems answer 200 with an
// error field, failures inside the agent run answer 500.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	answer, err := h.svc.Respond(r.Context(), req)
	if err != nil {
		if IsConfigError(err) {
			h.log.Warn().Err(err).
				Str("provider", req.ModelProvider).
				Str("model", req.ModelName).
				Msg("chat request rejected")
			writeError(w, http.StatusOK, err.Error())
			return
		}
		h.log.Error().Err(err).
			Str("provider", req.ModelProvider).
			Str("model", req.ModelName).
			Msg("chat request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": answer})
}

// HandleModels lists the selectable models per provider.
func (h *Handler) HandleModels(w http.ResponseWriter, _ *http.Request) {
	catalog := h.svc.Catalog()
	out := make(map[string][]string, len(catalog))
	for p, models := range catalog {
		out[string(p)] = models
	}
	writeJSON(w, http.StatusOK, out)
}

// writeError answers with a body carrying only the error key.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
