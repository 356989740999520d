package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/team-roster-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /ready", handler.Ready)
	mux.HandleFunc("GET /groups", handler.ListGroups)
	mux.HandleFunc("POST /groups", handler.CreateGroup)
	mux.HandleFunc("GET /groups/{group}", handler.GetGroup)
	mux.HandleFunc("DELETE /groups/{group}", handler.RemoveGroup)
	mux.HandleFunc("GET /groups/{group}/teams", handler.ListTeams)
	mux.HandleFunc("GET /groups/{group}/players", handler.ListPlayers)
	mux.HandleFunc("POST /groups/{group}/players", handler.AddPlayer)
	mux.HandleFunc("GET /groups/{group}/players/{player}", handler.GetPlayer)
	mux.HandleFunc("DELETE /groups/{group}/players/{player}", handler.RemovePlayer)
	return mux
}
