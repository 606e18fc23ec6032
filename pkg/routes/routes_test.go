package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tmeadows/templar/pkg/routes"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRegisterHandlers(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/templates",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: okHandler},
			{Method: "GET", Pattern: "/{owner}/{kind}", Handler: okHandler},
		},
	})

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"collection route", "POST", "/templates"},
		{"scoped route", "GET", "/templates/course-101/conceptMentor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status: got %d, want 200", rec.Code)
			}
		})
	}
}

func TestNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/api",
		Children: []routes.Group{
			{
				Prefix: "/chats",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/statuses", Handler: okHandler},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/chats/statuses", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("nested route: got %d, want 200", rec.Code)
	}
}
