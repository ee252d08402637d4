package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Nirjal444/MATHBOT/internal/handler/ws"
	"github.com/Nirjal444/MATHBOT/internal/service/registry"
	"github.com/Nirjal444/MATHBOT/internal/service/tutor"
	"github.com/Nirjal444/MATHBOT/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(tutorSvc *tutor.Service, reg *registry.Registry, staticDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	wsHandler := ws.New(tutorSvc, reg)
	wsHandler.RegisterRoutes(r)

	r.Get("/", serveIndex(staticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "mathbot",
		})
	})

	return r
}

// serveIndex returns the frontend entry document.
func serveIndex(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(path); err != nil {
			utils.RespondError(w, http.StatusNotFound, "index.html not found")
			return
		}
		http.ServeFile(w, r, path)
	}
}
