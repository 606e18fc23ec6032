package chats

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tmeadows/templar/pkg/handlers"
	"github.com/tmeadows/templar/pkg/pagination"
	"github.com/tmeadows/templar/pkg/routes"
)

// Handler provides HTTP endpoints for chat session operations.
type Handler struct {
	sys     System
	pageCfg pagination.Config
	logger  *slog.Logger
}

// NewHandler creates a Handler with the given system, pagination config,
// and logger.
func NewHandler(sys System, pageCfg pagination.Config, logger *slog.Logger) *Handler {
	return &Handler{
		sys:     sys,
		pageCfg: pageCfg,
		logger:  logger.With("handler", "chats"),
	}
}

// Routes returns the route group definition for chat session endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/chats",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/statuses", Handler: h.Statuses},
			{Method: "GET", Pattern: "/session-status/{userId}", Handler: h.SessionStatus},
			{Method: "GET", Pattern: "/counts/{userId}", Handler: h.Counts},
			{Method: "GET", Pattern: "/history/{userId}", Handler: h.History},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// Create processes a JSON body to save a new chat session.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd SaveCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Statuses returns the list of valid session statuses.
func (h *Handler) Statuses(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Statuses())
}

// SessionStatus reports whether the user should resume a live session or
// start fresh.
func (h *Handler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	state, err := h.sys.SessionStatus(r.Context(), r.PathValue("userId"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// Counts returns the user's session totals grouped by status.
func (h *Handler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.sys.Counts(r.Context(), r.PathValue("userId"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, counts)
}

// History returns a page of the user's sessions, optionally filtered by
// status (?status=all|active|<status>).
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	req := pagination.PageRequestFromQuery(params, h.pageCfg)

	page, err := h.sys.History(r.Context(), r.PathValue("userId"), params.Get("status"), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, page)
}

// Find returns a single session by ID.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	session, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// Update processes a JSON body to replace a session's conversation and status.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete removes a session by ID.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	deleted, err := h.sys.Delete(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, deleted)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}
