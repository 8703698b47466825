package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tlagarde/folbase/internal/fol"
	"github.com/tlagarde/folbase/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeRejection renders a builder rejection as a structured body: the
// stable kind string plus the human-readable detail.
func writeRejection(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error":  fol.Kind(err),
		"detail": err.Error(),
	})
}

// writeServiceError dispatches a service-layer error to the right status.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionNotFinalized):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnknownOperation):
		writeError(w, http.StatusBadRequest, err.Error())
	case fol.IsRejection(err):
		writeRejection(w, err)
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
