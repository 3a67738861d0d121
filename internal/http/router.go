package http

import (
	"net/http"

	"studynotes/internal/auth"
	"studynotes/internal/config"
	"studynotes/internal/http/handler"
	mw "studynotes/internal/http/middleware"
	"studynotes/internal/study"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, log *zap.Logger) http.Handler {
	authSvc := &auth.Service{DB: db, JWT: jwtSvc, Seed: study.SeedDefaultCategories, Log: log}
	studySvc := &study.Service{DB: db, Log: log}
	return newRouter(cfg, authSvc, studySvc, log)
}

// studyService is the full set of owner-scoped resource operations.
type studyService interface {
	handler.CategoryService
	handler.NoteService
}

type authService interface {
	handler.AuthService
	auth.TokenValidator
}

func newRouter(cfg config.Config, authSvc authService, studySvc studyService, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(log))
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{Svc: authSvc, Log: log}
	me := &handler.MeHandler{}
	ch := &handler.CategoryHandler{Svc: studySvc, Log: log}
	nh := &handler.NoteHandler{Svc: studySvc, Log: log}
	requireAuth := auth.RequireAuth(authSvc)

	api := func(r chi.Router) {
		r.Post("/auth/register", ah.Register)
		r.Post("/auth/login", ah.Login)

		r.With(requireAuth).Get("/me", me.Me)

		r.Route("/categories", func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/", ch.List)
			r.Post("/", ch.Create)
			r.Put("/{id}", ch.Update)
			r.Delete("/{id}", ch.Delete)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/", nh.List)
			r.Post("/", nh.Create)
			r.Put("/{id}", nh.Update)
			r.Delete("/{id}", nh.Delete)
			r.Patch("/{id}/bookmark", nh.ToggleBookmark)
		})
	}

	api(r)
	r.Route("/api", api)

	return r
}
