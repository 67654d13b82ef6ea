package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/portfolio/internal/web/handlers"
	"github.com/kozaktomas/portfolio/internal/web/middleware"
)

// publicMaxAge is the browser cache lifetime of processed photos, in seconds.
const publicMaxAge = 24 * 60 * 60

func (s *Server) setupRoutes() {
	gallery := &s.config.Gallery

	galleryHandler := handlers.NewGalleryHandler(s.library, gallery)
	magazineHandler := handlers.NewMagazineHandler(s.library, gallery)
	videosHandler := handlers.NewVideosHandler(s.library, gallery)
	statsHandler := handlers.NewStatsHandler(s.library)
	photosHandler := handlers.NewPhotosHandler(s.library, s.finder)
	configHandler := handlers.NewConfigHandler(s.library, gallery)
	catalogHandler := handlers.NewCatalogHandler(s.library)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/config", configHandler.Get)

		r.Get("/galleries/{category}", galleryHandler.Get)
		r.Get("/magazine", magazineHandler.Get)
		r.Get("/videos/playlist", videosHandler.Playlist)

		r.Get("/stats", statsHandler.Get)
		r.Get("/photos/near", photosHandler.Near)

		r.Get("/catalog", catalogHandler.Status)

		if token := s.config.Web.AdminToken; token != "" {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireToken(token))
				r.Post("/catalog/reload", catalogHandler.Reload)
			})
		}
	})

	if dir := s.config.Catalog.PublicDir; dir != "" {
		s.router.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(publicMaxAge))
			r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir(dir))))
		})
	}
}
