package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zelig/zelig-backend/internal/handlers"
	"github.com/zelig/zelig-backend/internal/middleware"
)

// Handler returns the full HTTP stack: request ids, panic recovery, access
// logging and CORS around the router.
func (a *App) Handler() http.Handler {
	logger := a.named("http")

	var h http.Handler = a.Router()
	h = middleware.CORS(a.Config.CORSAllowedOrigins)(h)
	h = middleware.LoggingMiddleware(logger)(h)
	h = middleware.RecoverPanic(logger)(h)
	return middleware.RequestID(h)
}

// Router mounts every route. Admin routes exist only when an admin JWT
// secret is configured.
func (a *App) Router() *mux.Router {
	logger := a.named("http")

	var (
		chat       handlers.ChatAnswerer
		agent      handlers.SafetyAnalyzer
		translator handlers.Translator
	)
	if a.Chat != nil {
		chat = a.Chat
	}
	if a.Safety != nil {
		agent = a.Safety
	}
	if a.Translation != nil {
		translator = a.Translation
	}

	chatHandler := handlers.NewChatHandler(chat, logger)
	safetyHandler := handlers.NewSafetyHandler(agent, logger)
	translateHandler := handlers.NewTranslateHandler(translator, logger)
	logHandler := handlers.NewLogHandler(a.named("frontend"))

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	r.HandleFunc("/", handlers.Home).Methods(http.MethodGet)
	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	limit := middleware.RateLimitMiddleware(a.apiLimiter, "api", logger)
	r.Handle("/api/chat", limit(http.HandlerFunc(chatHandler.Chat))).Methods(http.MethodPost)
	r.Handle("/api/security", limit(http.HandlerFunc(safetyHandler.Check))).Methods(http.MethodPost)
	r.Handle("/api/translate", limit(http.HandlerFunc(translateHandler.Translate))).Methods(http.MethodPost)
	r.Handle("/api/log", limit(http.HandlerFunc(logHandler.LogFrontendEvent))).Methods(http.MethodPost)

	if a.Config.AdminJWTSecret != "" {
		a.mountAdmin(r)
	}
	return r
}

func (a *App) mountAdmin(r *mux.Router) {
	logger := a.named("admin")
	secret := []byte(a.Config.AdminJWTSecret)
	adminHandler := handlers.NewAdminHandler(a.Chat, a.Translation, secret, a.Config.AdminPasswordHash, logger)

	admin := r.PathPrefix("/api/admin").Subrouter()

	login := middleware.RateLimitMiddleware(a.authLimiter, "admin_login", logger)(
		middleware.AuthSuccessMiddleware(a.authLimiter, "admin_login", logger)(http.HandlerFunc(adminHandler.Login)),
	)
	admin.Handle("/login", login).Methods(http.MethodPost)

	protected := admin.NewRoute().Subrouter()
	protected.Use(middleware.RequireAdmin(secret, logger))
	protected.HandleFunc("/places", adminHandler.ListPlaces).Methods(http.MethodGet)
	protected.HandleFunc("/places", adminHandler.SavePlace).Methods(http.MethodPost)
	protected.HandleFunc("/places.csv", adminHandler.ExportPlacesCSV).Methods(http.MethodGet)
	protected.HandleFunc("/reindex", adminHandler.Reindex).Methods(http.MethodPost)
	protected.HandleFunc("/translations", adminHandler.ListTranslations).Methods(http.MethodGet)
}
