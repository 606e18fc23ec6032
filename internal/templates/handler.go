package templates

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tmeadows/templar/pkg/handlers"
	"github.com/tmeadows/templar/pkg/routes"
)

// Handler provides HTTP endpoints for template operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// KindContent is the response type for default-content endpoints.
type KindContent struct {
	Kind    Kind   `json:"kind"`
	Content string `json:"content"`
}

// DeleteResult reports how many versions a delete removed.
type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}

// ResetAllRequest selects the kind for a bulk default reset.
// Kind defaults to defaultTemplateValues when the body is empty.
type ResetAllRequest struct {
	Kind Kind `json:"kind"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "templates"),
	}
}

// Routes returns the route group definition for template endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/templates",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/kinds", Handler: h.Kinds},
			{Method: "GET", Pattern: "/defaults/{kind}", Handler: h.Default},
			{Method: "POST", Pattern: "/defaults/reset-all", Handler: h.ResetAll},
			{Method: "GET", Pattern: "/{owner}", Handler: h.List},
			{Method: "GET", Pattern: "/{owner}/{kind}", Handler: h.Read},
			{Method: "POST", Pattern: "", Handler: h.Upsert},
			{Method: "DELETE", Pattern: "/{owner}/{kind}", Handler: h.Delete},
			{Method: "POST", Pattern: "/{owner}/{kind}/reset", Handler: h.Reset},
			{Method: "POST", Pattern: "/{owner}/{kind}/restore/{version}", Handler: h.Restore},
		},
	}
}

// Kinds returns the list of valid template kinds.
func (h *Handler) Kinds(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Kinds())
}

// List returns all of an owner's template versions grouped by kind.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.sys.List(r.Context(), r.PathValue("owner"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, grouped)
}

// Read returns template versions for an owner and kind in one of three
// modes: exact version (?version=N), full history (?history=true), or the
// active version (default).
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	owner, kind, err := pathScope(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	params := r.URL.Query()

	if v := params.Get("version"); v != "" {
		version, err := strconv.Atoi(v)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidVersion)
			return
		}

		t, err := h.sys.FindVersion(r.Context(), owner, kind, version)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, t)
		return
	}

	if history, _ := strconv.ParseBool(params.Get("history")); history {
		versions, err := h.sys.History(r.Context(), owner, kind)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, versions)
		return
	}

	t, err := h.sys.Active(r.Context(), owner, kind)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, t)
}

// Upsert processes a JSON body to publish a new template version.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var cmd UpsertCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	t, err := h.sys.Upsert(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, t)
}

// Delete removes template versions for an owner and kind in one of three
// modes: exact version (?version=N), everything (?all=true), or just the
// active version (default).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, kind, err := pathScope(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	params := r.URL.Query()

	if v := params.Get("version"); v != "" {
		version, err := strconv.Atoi(v)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidVersion)
			return
		}

		if err := h.sys.DeleteVersion(r.Context(), owner, kind, version); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, DeleteResult{Deleted: 1})
		return
	}

	if all, _ := strconv.ParseBool(params.Get("all")); all {
		count, err := h.sys.DeleteAll(r.Context(), owner, kind)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, DeleteResult{Deleted: count})
		return
	}

	if err := h.sys.DeleteActive(r.Context(), owner, kind); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, DeleteResult{Deleted: 1})
}

// Restore activates an existing version for an owner and kind.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	owner, kind, err := pathScope(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	version, err := strconv.Atoi(r.PathValue("version"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidVersion)
		return
	}

	t, err := h.sys.Restore(r.Context(), owner, kind, version)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, t)
}

// Default returns the canonical default content for a kind.
func (h *Handler) Default(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseKind(r.PathValue("kind"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	content, err := h.sys.Default(r.Context(), kind)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, KindContent{Kind: kind, Content: content})
}

// Reset publishes the canonical default content as a new version for one owner.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	owner, kind, err := pathScope(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	t, err := h.sys.ResetToDefault(r.Context(), owner, kind)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, t)
}

// ResetAll applies the latest default content to every owner, reporting
// per-owner outcomes. The batch succeeds even when individual owners fail.
func (h *Handler) ResetAll(w http.ResponseWriter, r *http.Request) {
	req := ResetAllRequest{Kind: KindDefaultValues}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	batch, err := h.sys.ResetAllOwners(r.Context(), req.Kind)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, batch)
}

func pathScope(r *http.Request) (string, Kind, error) {
	owner := r.PathValue("owner")
	if owner == "" {
		return "", "", ErrOwnerRequired
	}

	kind, err := ParseKind(r.PathValue("kind"))
	if err != nil {
		return "", "", err
	}

	return owner, kind, nil
}
