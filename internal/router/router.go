package router

import (
	"net/http"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/backend"
	"github.com/kingdavid103/Tracking-payment6/internal/chat"
	"github.com/kingdavid103/Tracking-payment6/internal/config"
	"github.com/kingdavid103/Tracking-payment6/internal/handlers"
	"github.com/kingdavid103/Tracking-payment6/internal/middleware"
	"github.com/kingdavid103/Tracking-payment6/internal/notify"
	"github.com/kingdavid103/Tracking-payment6/internal/services"
	"github.com/kingdavid103/Tracking-payment6/internal/session"
	"github.com/kingdavid103/Tracking-payment6/internal/templates"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const chatBacklog = 32

func SetupRouter(cfg config.Config, client *backend.Client, tc *templates.TemplateCache, gatherer prometheus.Gatherer, logger zerolog.Logger) http.Handler {
	store := session.NewStore(cfg.SessionKey, cfg.CookieSecure, logger)
	guard := session.NewGuard(store, logger)
	notes := notify.NewCenter(cfg.NotificationTTL)
	hub := chat.NewHub(chatBacklog)

	authService := services.NewAuthService(client, logger)
	orderService := services.NewOrderService(client, logger)
	chatService := services.NewChatService(client, chat.NewResponder(nil), hub, logger)
	profileService := services.NewProfileService(client, logger)

	shell := handlers.NewShell(store, notes, tc, chatService, logger)
	authHandler := handlers.NewAuthHandler(shell, authService, store, guard, logger)
	dashboardHandler := handlers.NewDashboardHandler(shell, orderService)
	trackingHandler := handlers.NewTrackingHandler(shell, orderService, logger)
	adminHandler := handlers.NewAdminHandler(shell, orderService, logger)
	profileHandler := handlers.NewProfileHandler(shell, profileService, store, logger)
	chatHandler := handlers.NewChatHandler(shell, chatService, cfg.ChatPollInterval, logger)
	weatherHandler := handlers.NewWeatherHandler(client, logger)
	notificationHandler := handlers.NewNotificationHandler(shell)

	r := mux.NewRouter()

	// LoginRateLimit is attempts per minute per client.
	authLimiter := middleware.NewRateLimiter(rate.Every(time.Minute/time.Duration(cfg.LoginRateLimit)), int(cfg.LoginRateLimit), logger)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.PerformanceMonitoring(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders(cfg.CookieSecure))
	r.Use(middleware.RequireForm())

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", templates.Static())).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.CORS(cfg.AllowedOrigins))
	api.HandleFunc("/weather", weatherHandler.Weather).Methods("GET", "OPTIONS")

	r.HandleFunc("/", authHandler.Landing).Methods("GET")
	r.HandleFunc("/index.html", authHandler.Landing).Methods("GET")
	r.HandleFunc("/login.html", authHandler.LoginPage).Methods("GET")
	r.Handle("/login.html", authLimiter.Middleware()(http.HandlerFunc(authHandler.Login))).Methods("POST")
	r.HandleFunc("/register.html", authHandler.RegisterPage).Methods("GET")
	r.Handle("/register.html", authLimiter.Middleware()(http.HandlerFunc(authHandler.Register))).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/notifications/dismiss", notificationHandler.Dismiss).Methods("POST")

	user := func(h http.HandlerFunc) http.Handler { return guard.RequireUser(h) }
	r.Handle("/dashboard.html", user(dashboardHandler.Dashboard)).Methods("GET")
	r.Handle("/place-order.html", user(dashboardHandler.PlaceOrder)).Methods("GET")
	r.Handle("/track.html", user(trackingHandler.Track)).Methods("GET")
	r.Handle("/track/{id}/receipt.pdf", user(trackingHandler.Receipt)).Methods("GET")
	r.Handle("/chat.html", user(chatHandler.Page)).Methods("GET")
	r.Handle("/chat/send", user(chatHandler.Send)).Methods("POST")
	r.Handle("/chat/stream", user(chatHandler.Stream)).Methods("GET")
	r.Handle("/profile.html", user(profileHandler.Profile)).Methods("GET")
	r.Handle("/profile/update", user(profileHandler.Update)).Methods("POST")
	r.Handle("/profile/avatar", user(profileHandler.UploadAvatar)).Methods("POST")
	r.Handle("/profile/avatar/remove", user(profileHandler.RemoveAvatar)).Methods("POST")
	r.Handle("/profile/preferences", user(profileHandler.Preferences)).Methods("POST")

	admin := func(h http.HandlerFunc) http.Handler { return guard.RequireAdmin(h) }
	r.Handle("/admin.html", admin(adminHandler.Dashboard)).Methods("GET")
	r.Handle("/admin/create-order", admin(adminHandler.CreateOrder)).Methods("POST")
	r.Handle("/admin/orders/{id}", admin(adminHandler.ViewOrder)).Methods("GET")

	protect := csrf.Protect(cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// An oversized upload is cut off before the token field is read.
			if middleware.BodyTooLarge(r) {
				logger.Warn().Str("path", r.URL.Path).Msg("Request body too large")
				http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			logger.Warn().Str("path", r.URL.Path).Err(csrf.FailureReason(r)).Msg("CSRF check failed")
			http.Error(w, "Forbidden - invalid CSRF token", http.StatusForbidden)
		})),
	)
	// The body cap sits outside csrf, which parses the form first.
	return middleware.MaxBodySize(handlers.MaxFormBytes)(protect(r))
}
