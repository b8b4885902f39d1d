package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/isdelr/birthdaybot-be/internal/api/handlers"
	"github.com/isdelr/birthdaybot-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(logger zerolog.Logger, corsOrigins []string, birthdayService services.BirthdayServiceProvider, statusService services.StatusServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(logger))
	r.Use(requestIDLogger)
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "PUT", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	birthdayHandler := handlers.NewBirthdayHandler(birthdayService)
	statusHandler := handlers.NewStatusHandler(statusService)

	r.Route("/hello/{username}", func(r chi.Router) {
		r.Get("/", birthdayHandler.Get)
		r.Put("/", birthdayHandler.Put)
	})

	r.Get("/status", statusHandler.Get)
	r.Post("/selftest", birthdayHandler.SelfTest)

	return r
}

// requestIDLogger tags the request logger with chi's request id.
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			l := zerolog.Ctx(r.Context()).With().Str("request_id", id).Logger()
			r = r.WithContext(l.WithContext(r.Context()))
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("Request handled")
}
