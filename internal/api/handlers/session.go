package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tlagarde/folbase/internal/domain"
	"github.com/tlagarde/folbase/internal/fol"
	"github.com/tlagarde/folbase/internal/service"
)

type SessionHandler struct {
	svc *service.SessionService
}

func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := h.svc.Create(r.Context())
	writeJSON(w, http.StatusCreated, session)
}

func (h *SessionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	session, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) ApplyOperation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var op domain.Operation
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !domain.ValidOperationName(string(op.Name)) {
		writeError(w, http.StatusBadRequest, "unknown operation")
		return
	}

	session, err := h.svc.Apply(r.Context(), id, op)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	rec, err := h.svc.Finalize(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *SessionHandler) GetTheory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	rec, err := h.svc.Theory(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type validateQueryRequest struct {
	PredicateName string   `json:"predicate_name"`
	Arguments     []string `json:"arguments"`
}

type validateQueryResponse struct {
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func (h *SessionHandler) ValidateQuery(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var req validateQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.svc.ValidateQuery(r.Context(), id, req.PredicateName, req.Arguments)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, validateQueryResponse{Valid: true})
	case fol.IsRejection(err):
		writeJSON(w, http.StatusOK, validateQueryResponse{Valid: false, Error: fol.Kind(err), Detail: err.Error()})
	default:
		writeServiceError(w, err)
	}
}
