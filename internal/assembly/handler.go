package assembly

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tmeadows/templar/pkg/handlers"
	"github.com/tmeadows/templar/pkg/routes"
)

// Handler provides HTTP endpoints for prompt assembly.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "assembly"),
	}
}

// Routes returns the route group definition for assembly endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/assembly",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/process", Handler: h.Process},
		},
	}
}

// Process renders a prompt from a JSON assembly request.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	var cmd AssembleCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	assembled, err := h.sys.Assemble(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, assembled)
}
