package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "virtualconf/docs"
	"virtualconf/internal/delivery/http/controllers"
	h "virtualconf/internal/delivery/http/helpers"
	"virtualconf/internal/delivery/http/middleware"
)

// Controllers bundles the route handlers.
type Controllers struct {
	Auth        *controllers.AuthController
	Schedule    *controllers.ScheduleController
	Preference  *controllers.PreferenceController
	Leaderboard *controllers.LeaderboardController
	Challenge   *controllers.ChallengeController
	Content     *controllers.ContentController
	Ticket      *controllers.TicketController
}

// RouterConfig holds what the middleware stack needs.
type RouterConfig struct {
	Resolver       middleware.SessionResolver
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireSession

	// Sign-in
	mux.HandleFunc("POST /auth/register", c.Auth.Register)
	mux.HandleFunc("POST /auth/admin", c.Auth.AdminLogin)
	mux.HandleFunc("POST /auth/logout", auth(c.Auth.Logout))
	mux.HandleFunc("GET /me", auth(c.Auth.Me))

	// Schedule and bookings
	mux.HandleFunc("GET /schedule", c.Schedule.Schedule)
	mux.HandleFunc("GET /warmup", c.Schedule.Warmup)
	mux.HandleFunc("GET /talks/{slug}", c.Schedule.Talk)
	mux.HandleFunc("POST /talks/{slug}/join", auth(c.Schedule.Join))
	mux.HandleFunc("POST /talks/{slug}/drop", auth(c.Schedule.Drop))
	mux.HandleFunc("GET /me/talks", auth(c.Schedule.MyTalks))
	mux.HandleFunc("GET /me/talks.ics", auth(c.Schedule.Calendar))

	// Preferences
	mux.HandleFunc("GET /preferences/timezone", c.Preference.GetTimezone)
	mux.HandleFunc("PUT /preferences/timezone", auth(c.Preference.SetTimezone))

	// Points
	mux.HandleFunc("GET /leaderboard", c.Leaderboard.Leaderboard)
	mux.HandleFunc("GET /challenges", c.Challenge.List)
	mux.HandleFunc("POST /challenges/{code}/claim", auth(c.Challenge.Claim))

	// Content
	mux.HandleFunc("GET /shop/products", c.Content.Products)
	mux.HandleFunc("GET /speakers", c.Content.Speakers)
	mux.HandleFunc("GET /site", c.Content.Site)

	// Tickets and reporting
	mux.HandleFunc("GET /tickets/{username}", c.Ticket.Ticket)
	mux.HandleFunc("GET /admin/report", auth(c.Ticket.Report))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.Session(cfg.Resolver, cfg.Logger, handler)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	return middleware.Recovery(cfg.Logger, handler)
}
