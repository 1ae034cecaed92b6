package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// Controllers bundles every HTTP controller the router mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Organizer *controllers.OrganizerController
	Admin     *controllers.AdminController
	User      *controllers.UserController
	Event     *controllers.EventController
	Ticket    *controllers.TicketController
	Health    *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	authed := middleware.RequireAuth(verifier, logger)
	role := func(roles ...domain.Role) func(http.HandlerFunc) http.HandlerFunc {
		gate := middleware.RequireRole(roles...)
		return func(next http.HandlerFunc) http.HandlerFunc { return authed(gate(next)) }
	}
	admin := role(domain.RoleSuperAdmin)
	organizer := role(domain.RoleInstitution)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("POST /auth/institution/login", c.Auth.LoginInstitution)
	mux.HandleFunc("POST /auth/admin/login", c.Auth.LoginSuperAdmin)
	mux.HandleFunc("POST /auth/identity", c.Auth.SignInWithIdentity)
	mux.HandleFunc("POST /auth/identity/onboarding", c.Auth.CompleteIdentityOnboarding)

	// Organizer onboarding
	mux.HandleFunc("POST /organizer-requests", c.Organizer.Submit)
	mux.HandleFunc("GET /admin/organizer-requests", admin(c.Organizer.List))
	mux.HandleFunc("POST /admin/organizer-requests/{requestID}/approve", admin(c.Organizer.Approve))
	mux.HandleFunc("POST /admin/organizer-requests/{requestID}/reject", admin(c.Organizer.Reject))

	// Admin
	mux.HandleFunc("GET /admin/users", admin(c.Admin.ListUsers))
	mux.HandleFunc("POST /admin/users/{userID}/toggle-block", admin(c.Admin.ToggleBlock))

	// Users
	mux.HandleFunc("GET /users/me", authed(c.User.GetMe))
	mux.HandleFunc("PATCH /users/me", authed(c.User.UpdateMe))
	mux.HandleFunc("GET /users/{userID}", authed(c.User.GetByID))

	// Events
	mux.HandleFunc("GET /events", c.Event.List)
	mux.HandleFunc("GET /events/{eventID}", c.Event.Get)
	mux.HandleFunc("POST /events", organizer(c.Event.Create))
	mux.HandleFunc("GET /events/mine", organizer(c.Event.ListMine))
	mux.HandleFunc("POST /events/images", organizer(c.Event.UploadImage))

	// Tickets
	mux.HandleFunc("POST /tickets/validate", organizer(c.Ticket.Validate))
	mux.HandleFunc("GET /tickets/{code}/qr", authed(c.Ticket.QR))

	mux.HandleFunc("GET /healthz", c.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
