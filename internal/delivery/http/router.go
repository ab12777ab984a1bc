package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// Controllers bundles all HTTP controllers for router wiring.
type Controllers struct {
	Auth         *controllers.AuthController
	College      *controllers.CollegeController
	Event        *controllers.EventController
	Registration *controllers.RegistrationController
	Attendance   *controllers.AttendanceController
	Feedback     *controllers.FeedbackController
}

// NewRouter initializes the HTTP router with all application routes.
// Admin-only routes are wrapped with RequireRole(admin); everything except
// signup, login, college and event reads requires a bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleAdmin)(h))
	}

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Colleges
	mux.HandleFunc("POST /colleges", admin(c.College.Create))
	mux.HandleFunc("GET /colleges", c.College.List)

	// Events
	mux.HandleFunc("POST /events", admin(c.Event.Create))
	mux.HandleFunc("GET /events", c.Event.List)
	mux.HandleFunc("GET /events/{eventID}", c.Event.GetByID)
	mux.HandleFunc("PATCH /events/{eventID}/status", admin(c.Event.SetStatus))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", auth(c.Registration.Register))
	mux.HandleFunc("GET /events/{eventID}/registrations", admin(c.Registration.ListByEvent))
	mux.HandleFunc("GET /me/registrations", auth(c.Registration.ListMine))
	mux.HandleFunc("POST /registrations/{registrationID}/cancel", auth(c.Registration.Cancel))
	mux.HandleFunc("POST /registrations/{registrationID}/payment", admin(c.Registration.RecordPayment))

	// Attendance
	mux.HandleFunc("POST /events/{eventID}/checkin", auth(c.Attendance.CheckIn))
	mux.HandleFunc("GET /events/{eventID}/attendance", admin(c.Attendance.ListByEvent))
	mux.HandleFunc("POST /attendance/{attendanceID}/checkout", auth(c.Attendance.CheckOut))
	mux.HandleFunc("POST /attendance/{attendanceID}/verify", admin(c.Attendance.Verify))

	// Feedback
	mux.HandleFunc("POST /events/{eventID}/feedback", auth(c.Feedback.Create))
	mux.HandleFunc("GET /events/{eventID}/feedback", auth(c.Feedback.ListByEvent))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
