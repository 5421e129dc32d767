package misc

import (
	"net/http"

	"github.com/2beens/kraft/internal/middleware"
	"github.com/2beens/kraft/internal/telemetry/metrics"
	"github.com/2beens/kraft/pkg"

	"github.com/gorilla/mux"
)

type sessionHandler interface {
	HandleLogin(w http.ResponseWriter, r *http.Request)
	HandleLogout(w http.ResponseWriter, r *http.Request)
	HandleNewUserSession(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	versionInfo string
	sessions    sessionHandler
}

func NewHandler(versionInfo string, sessions sessionHandler) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		sessions:    sessions,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	loginAllowedPerMin int,
) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/admin/sessions", handler.sessions.HandleNewUserSession).Methods("POST", "OPTIONS").Name("new-user-session")

	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/login", handler.sessions.HandleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/logout", handler.sessions.HandleLogout).
		Methods("GET", "POST", "OPTIONS").Name("logout")

	// operator login is guessable by brute force, keep it slow
	loginSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, metricsManager))
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "kraft stats")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
