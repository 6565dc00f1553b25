package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"GLOBETROTTER_BACK-END/internal/config"
	"GLOBETROTTER_BACK-END/internal/handlers"
	"GLOBETROTTER_BACK-END/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth       *handlers.AuthHandler
	GoogleAuth *handlers.GoogleAuthHandler // nil when Google OAuth is not configured
	Health     *handlers.HealthHandler
	Profile    *handlers.ProfileHandler
	Trips      *handlers.TripsHandler
	Public     *handlers.PublicTripsHandler
	Plan       *handlers.PlanHandler
	Itinerary  *handlers.ItineraryHandler
	Community  *handlers.CommunityHandler
	Admin      *handlers.AdminHandler
	Dashboard  *handlers.DashboardHandler
}

// SetupRoutes configures all application routes and wraps them with CORS
func SetupRoutes(h Handlers, auth *middleware.Authenticator, corsCfg config.CORSConfig) http.Handler {
	r := mux.NewRouter()

	// Health check routes
	r.HandleFunc("/healthz", h.Health.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/livez", h.Health.LivenessCheck).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.Health.ReadinessCheck).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := r.PathPrefix("/api").Subrouter()

	// Authentication routes
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.Handle("/auth/logout", auth.AuthMiddleware(http.HandlerFunc(h.Auth.Logout))).Methods(http.MethodPost)
	api.Handle("/auth/me", auth.OptionalAuth(http.HandlerFunc(h.Auth.Me))).Methods(http.MethodGet)
	if h.GoogleAuth != nil {
		api.HandleFunc("/auth/google/login", h.GoogleAuth.GoogleLogin).Methods(http.MethodGet)
		api.HandleFunc("/auth/google/callback", h.GoogleAuth.GoogleCallback).Methods(http.MethodGet)
	}

	// Reference data and explore pages need no session
	api.HandleFunc("/cities", h.Plan.ListCities).Methods(http.MethodGet)
	api.HandleFunc("/cities/{cityId}/activity-templates", h.Plan.ListActivityTemplates).Methods(http.MethodGet)
	api.HandleFunc("/public/trips", h.Public.List).Methods(http.MethodGet)
	api.HandleFunc("/public/trips/{id}", h.Public.Detail).Methods(http.MethodGet)

	// Everything else runs as the signed-in user, or as the guest when allowed
	app := api.NewRoute().Subrouter()
	app.Use(auth.OptionalAuth)

	app.HandleFunc("/public/trips/{id}/duplicate", h.Public.Duplicate).Methods(http.MethodPost)

	app.HandleFunc("/profile", h.Profile.GetMe).Methods(http.MethodGet)
	app.HandleFunc("/profile", h.Profile.Update).Methods(http.MethodPut)

	app.HandleFunc("/dashboard", h.Dashboard.Get).Methods(http.MethodGet)

	app.HandleFunc("/trips", h.Trips.ListTrips).Methods(http.MethodGet)
	app.HandleFunc("/trips", h.Trips.CreateTrip).Methods(http.MethodPost)
	app.HandleFunc("/trips/{id}", h.Trips.TripDetail).Methods(http.MethodGet)
	app.HandleFunc("/trips/{id}", h.Trips.UpdateTrip).Methods(http.MethodPut, http.MethodPatch)
	app.HandleFunc("/trips/{id}", h.Trips.DeleteTrip).Methods(http.MethodDelete)
	app.HandleFunc("/trips/{id}/visibility", h.Trips.ToggleVisibility).Methods(http.MethodPost)
	app.HandleFunc("/trips/{id}/budget", h.Trips.Budget).Methods(http.MethodGet)
	app.HandleFunc("/trips/{id}/itinerary", h.Trips.Itinerary).Methods(http.MethodGet)

	app.HandleFunc("/trips/{id}/stops", h.Plan.ListStops).Methods(http.MethodGet)
	app.HandleFunc("/trips/{id}/stops", h.Plan.AddStop).Methods(http.MethodPost)
	app.HandleFunc("/trips/{id}/stops/{stopId}", h.Plan.DeleteStop).Methods(http.MethodDelete)
	app.HandleFunc("/stops/{stopId}/activities", h.Plan.ListActivities).Methods(http.MethodGet)
	app.HandleFunc("/stops/{stopId}/activities", h.Plan.AddActivity).Methods(http.MethodPost)
	app.HandleFunc("/trips/{id}/expenses", h.Plan.ListExpenses).Methods(http.MethodGet)
	app.HandleFunc("/trips/{id}/expenses", h.Plan.AddExpense).Methods(http.MethodPost)
	app.HandleFunc("/trips/{id}/expenses/{expenseId}", h.Plan.DeleteExpense).Methods(http.MethodDelete)

	app.HandleFunc("/itinerary/{tripId}/sections", h.Itinerary.GetSections).Methods(http.MethodGet)
	app.HandleFunc("/itinerary/{tripId}/sections", h.Itinerary.SaveSections).Methods(http.MethodPut)
	app.HandleFunc("/itinerary/{tripId}/sections/flush", h.Itinerary.Flush).Methods(http.MethodPost)
	app.HandleFunc("/itinerary/{tripId}/timeline", h.Itinerary.Timeline).Methods(http.MethodGet)
	app.HandleFunc("/itinerary/{tripId}/save", h.Itinerary.SaveItinerary).Methods(http.MethodPost)

	app.HandleFunc("/community/posts", h.Community.ListPosts).Methods(http.MethodGet)
	app.HandleFunc("/community/posts", h.Community.CreatePost).Methods(http.MethodPost)
	app.HandleFunc("/community/posts/{id}/like", h.Community.ToggleLike).Methods(http.MethodPost)
	app.HandleFunc("/community/posts/{id}/comments", h.Community.AddComment).Methods(http.MethodPost)

	// Admin routes require a real admin session
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AuthMiddleware, middleware.AdminOnly)
	admin.HandleFunc("/analytics", h.Admin.Analytics).Methods(http.MethodGet)

	// Root route
	r.HandleFunc("/", rootHandler).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   corsCfg.AllowedMethods,
		AllowedHeaders:   corsCfg.AllowedHeaders,
		AllowCredentials: corsCfg.AllowCredentials,
	})
	return c.Handler(r)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("GlobeTrotter backend is running."))
}
