package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/knagase/wardrobe-api/api/controllers"
	"github.com/knagase/wardrobe-api/api/middleware"
	authsvc "github.com/knagase/wardrobe-api/internal/auth"
	"github.com/knagase/wardrobe-api/internal/clothing"
	"github.com/knagase/wardrobe-api/internal/media"
	"github.com/knagase/wardrobe-api/internal/rooms"
	"github.com/knagase/wardrobe-api/internal/seasons"
	"github.com/knagase/wardrobe-api/internal/users"
	"github.com/knagase/wardrobe-api/pkg/config"
	"github.com/knagase/wardrobe-api/pkg/db"
	"github.com/knagase/wardrobe-api/pkg/logger"
	"github.com/knagase/wardrobe-api/pkg/metrics"
)

// RouterParams collects everything the HTTP surface needs.
type RouterParams struct {
	Config *config.Config
	Logger *logger.Logger
	DB     db.Pinger

	Registry *prometheus.Registry

	AuthService     authsvc.Service
	UserService     users.Service
	RoomService     rooms.Service
	ClothingService clothing.Service
	MediaService    media.Service
	SeasonRepo      *seasons.Repository

	// UploadDir, when set, is served read-only under the media public path.
	UploadDir string
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	var httpMetrics *metrics.HTTPMetrics
	if p.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(p.Registry)
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, logg))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	if p.UploadDir != "" {
		prefix := cfg.Media.PublicPath
		fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(p.UploadDir)))
		r.Method(http.MethodGet, prefix+"/*", fileServer)
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", controllers.Register(p.AuthService, logg))
		r.Post("/login", controllers.Login(p.AuthService, logg))
		r.Post("/refresh", controllers.Refresh(p.AuthService, logg))
		r.Post("/logout", controllers.Logout(logg))
	})

	// The season catalog is fixed and user-agnostic.
	r.Get("/api/seasons", controllers.SeasonsList(p.SeasonRepo, logg))

	maxUpload := cfg.Media.MaxUploadBytes

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", controllers.Me(p.UserService, logg))
			r.Put("/", controllers.UpdateMe(p.UserService, logg))
			r.Put("/avatar", controllers.UploadAvatar(p.UserService, p.MediaService, maxUpload, logg))
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", controllers.RoomsList(p.RoomService, logg))
			r.Post("/", controllers.RoomsCreate(p.RoomService, logg))
			r.Get("/{roomID}", controllers.RoomsGet(p.RoomService, logg))
			r.Put("/{roomID}", controllers.RoomsUpdate(p.RoomService, logg))
			r.Delete("/{roomID}", controllers.RoomsDelete(p.RoomService, logg))
		})

		r.Route("/clothing", func(r chi.Router) {
			r.Get("/", controllers.ClothingList(p.ClothingService, logg))
			r.Post("/", controllers.ClothingCreate(p.ClothingService, p.MediaService, maxUpload, logg))
			r.Post("/upload", controllers.UploadImage(p.MediaService, maxUpload, logg))
			r.Get("/{clothingID}", controllers.ClothingGet(p.ClothingService, logg))
			r.Put("/{clothingID}", controllers.ClothingUpdate(p.ClothingService, p.MediaService, maxUpload, logg))
			r.Delete("/{clothingID}", controllers.ClothingDelete(p.ClothingService, p.MediaService, logg))
		})
	})

	return r
}
