package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tlagarde/folbase/internal/domain"
	"github.com/tlagarde/folbase/internal/store"
)

type TheoryHandler struct {
	archive domain.ArchiveStore
}

func NewTheoryHandler(archive domain.ArchiveStore) *TheoryHandler {
	return &TheoryHandler{archive: archive}
}

func (h *TheoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid theory id")
		return
	}

	rec, err := h.archive.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "theory not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch theory")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *TheoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	records, err := h.archive.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list theories")
		return
	}
	if records == nil {
		records = []domain.TheoryRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"theories": records})
}
