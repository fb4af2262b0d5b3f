package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// BaseHandler carries the pieces shared by every HTTP handler
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON writes data as a JSON body with the given status code.
// An encoding failure is logged only; the status line has already been
// sent at that point, so nothing else can go on the wire.
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError writes the error envelope {"error": message} used by all
// failure responses in the API
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}
