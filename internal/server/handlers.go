package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/stoich/internal/molecule"
	"github.com/leapstack-labs/stoich/internal/state"
	"github.com/leapstack-labs/stoich/pkg/formula"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// invalidFormulaMessage is the error text for every rejected formula.
const invalidFormulaMessage = "invalid formula entered, please enter a valid formula"

// formulaRequest is the body of POST /weigh, /normalize and /molecules.
type formulaRequest struct {
	Formula   string `json:"formula"`
	Normalize bool   `json:"normalize,omitempty"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	Column    int    `json:"column,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type handlers struct {
	service  *molecule.Service
	notifier *Notifier
	logger   *slog.Logger
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"elements": h.service.Elements().Len(),
	})
}

func (h *handlers) listElements(w http.ResponseWriter, _ *http.Request) {
	elems := h.service.Elements().Elements()
	writeJSON(w, http.StatusOK, map[string]any{
		"elements": elems,
		"count":    len(elems),
	})
}

func (h *handlers) getElement(w http.ResponseWriter, r *http.Request) {
	sym := formula.Symbol(chi.URLParam(r, "symbol"))
	el, ok := h.service.Elements().Lookup(sym)
	if !ok {
		h.writeError(w, r, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown element %q", sym)})
		return
	}
	writeJSON(w, http.StatusOK, el)
}

func (h *handlers) weigh(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, err := h.service.Calculate(r.Context(), req.Formula)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handlers) normalize(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, err := h.service.Normalize(r.Context(), req.Formula)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handlers) listMolecules(w http.ResponseWriter, r *http.Request) {
	molecules, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if molecules == nil {
		molecules = []*state.Molecule{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"molecules": molecules,
		"count":     len(molecules),
	})
}

func (h *handlers) saveMolecule(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	m, err := h.service.Save(r.Context(), req.Formula, req.Normalize)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.notifier.Broadcast(Event{Kind: EventMoleculeSaved, Formula: m.Formula})
	writeJSON(w, http.StatusCreated, m)
}

func (h *handlers) recallMolecule(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Recall(r.Context(), chi.URLParam(r, "formula"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// events streams notifications as server-sent events until the client goes away.
func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeError(w, r, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	keepAlive := time.NewTicker(30 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-updates:
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data)
			flusher.Flush()
		case <-keepAlive.C:
			_, _ = fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}

func (h *handlers) decode(w http.ResponseWriter, r *http.Request) (formulaRequest, bool) {
	var req formulaRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, errorResponse{Error: "invalid request body", Detail: err.Error()})
		return req, false
	}
	return req, true
}

// fail maps a service error onto a status code.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		syntaxErr  *formula.SyntaxError
		unknownErr *formula.UnknownElementError
	)
	switch {
	case errors.As(err, &syntaxErr):
		h.writeError(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error: invalidFormulaMessage, Detail: err.Error(), Column: syntaxErr.Pos.Column,
		})
	case errors.As(err, &unknownErr):
		h.writeError(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error: invalidFormulaMessage, Detail: err.Error(), Column: unknownErr.Pos.Column,
		})
	case errors.Is(err, formula.ErrInvalidFormula):
		h.writeError(w, r, http.StatusUnprocessableEntity, errorResponse{Error: invalidFormulaMessage, Detail: err.Error()})
	case errors.Is(err, state.ErrDuplicate):
		h.writeError(w, r, http.StatusConflict, errorResponse{Error: "formula already saved", Detail: err.Error()})
	case errors.Is(err, state.ErrNotFound):
		h.writeError(w, r, http.StatusNotFound, errorResponse{Error: "formula not saved", Detail: err.Error()})
	case errors.Is(err, molecule.ErrNoCatalog):
		h.writeError(w, r, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
		h.writeError(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, status int, body errorResponse) {
	body.RequestID = middleware.GetReqID(r.Context())
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
