package api

import (
	"net/http"

	"github.com/tmeadows/templar/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Templates.Handler().Routes(),
		domain.Chats.Handler().Routes(),
		domain.Assembly.Handler().Routes(),
	)
}
