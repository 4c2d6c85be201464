package router

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"scholarhub/internal/handlers"
	"scholarhub/internal/middleware"
)

type Options struct {
	CORSOrigins []string
	// StaticDir holds the built frontend; ignored when it does not exist.
	StaticDir string
}

func RegisterRouter(h *handlers.Handler, log *zap.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(log))
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))
	r.Use(middleware.LoggingMiddleware(log))
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	r.Post("/find_indian_scholarships", h.FindIndianScholarships)
	r.Post("/find_international_scholarships", h.FindInternationalScholarships)
	r.Get("/search_scholarships", h.SearchScholarships)
	r.Get("/scholarship_qrcode", h.ScholarshipQRCode)
	r.Post("/submit_contact", h.SubmitContact)
	r.Post("/signup", h.Signup)
	r.Post("/signin", h.Signin)
	r.Post("/ask_assistant", h.AskAssistant)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(h.JWTSecret))
		r.Get("/api/me", h.Me)
	})

	if opts.StaticDir != "" {
		if info, err := os.Stat(opts.StaticDir); err == nil && info.IsDir() {
			r.NotFound(handlers.SPA(opts.StaticDir))
		} else {
			log.Info("static frontend not found, serving API only", zap.String("dir", opts.StaticDir))
		}
	}
	return r
}
