package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// Handler serves the REST routes over a Store.
type Handler struct {
	store Store
	log   *zap.Logger
}

// NewHandler returns a configured Handler.
func NewHandler(store Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// RegisterRoutes mounts all job routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /jobs", h.listJobs)
	mux.HandleFunc("POST /jobs", h.createJob)
	mux.HandleFunc("GET /jobs/{id}", h.getJob)
	mux.HandleFunc("PATCH /jobs/{id}", h.updateJob)
	mux.HandleFunc("DELETE /jobs/{id}", h.removeJob)
}

// ─── Individual handlers ──────────────────────────────────────────────────────

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	raw := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}

	f, err := ParseFilter(raw)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.store.FindAll(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	jsonOK(w, http.StatusOK, map[string]any{"jobs": list})
}

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	var body NewJob
	if err := decodeStrict(r, &body); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job, err := h.store.Create(r.Context(), body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	jsonOK(w, http.StatusCreated, map[string]any{"job": job})
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	job, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	jsonOK(w, http.StatusOK, map[string]any{"job": job})
}

func (h *Handler) updateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	// Unknown fields, including id and companyHandle, are rejected here.
	var body JobUpdate
	if err := decodeStrict(r, &body); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job, err := h.store.Update(r.Context(), id, body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	jsonOK(w, http.StatusOK, map[string]any{"job": job})
}

func (h *Handler) removeJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.store.Remove(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	jsonOK(w, http.StatusOK, map[string]any{"deleted": id})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// writeError maps domain errors to HTTP status codes. Unexpected errors are
// logged and reported as a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *ValidationError
		ce *ConstraintError
	)
	switch {
	case errors.As(err, &ve):
		jsonError(w, ve.Msg, http.StatusBadRequest)
	case errors.Is(err, ErrNoData):
		jsonError(w, "no fields to update", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &ce):
		jsonError(w, ce.Msg, http.StatusConflict)
	default:
		h.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		jsonError(w, "database error", http.StatusInternalServerError)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		jsonError(w, fmt.Sprintf("invalid job id %q", r.PathValue("id")), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func jsonOK(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
