package stubapi

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the HTTP handler serving every endpoint of the API.
func NewRouter(s *Server, logRequests bool) *chi.Mux {
	r := chi.NewRouter()
	if logRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	RegisterRoutes(r, s)
	return r
}

func RegisterRoutes(r *chi.Mux, s *Server) {
	config := huma.DefaultConfig("RESO Registration API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"tokenAuth": {
			Type: "apiKey",
			In:   "header",
			Name: "Authorization",
		},
	}
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"tokenAuth": {}}}
	}

	// Participant
	huma.Post(api, "/users/signup", s.HandleSignup)
	huma.Post(api, "/users/signin", s.HandleSignin)
	huma.Get(api, "/users/status", s.HandleStatus)
	huma.Get(api, "/users/game-status", s.HandleGameStatus)
	huma.Get(api, "/islogIn", s.HandleIsLoggedIn, secured)
	huma.Get(api, "/users/check", s.HandleCheck, secured)
	huma.Post(api, "/users/register", s.HandleRegister, secured)
	huma.Get(api, "/users/registered", s.HandleRegistered, secured)
	huma.Get(api, "/user/profile", s.HandleUserProfile, secured)

	// Event admin
	huma.Post(api, "/admin/signin", s.HandleAdminSignin)
	huma.Get(api, "/admin/profile", s.HandleAdminProfile, secured)
	huma.Get(api, "/admin/event", s.HandleAdminEvent, secured)
	huma.Put(api, "/admin/event", s.HandleAdminUpdateEvent, secured)
	huma.Get(api, "/admin/registered", s.HandleAdminRegistered, secured)

	// Super admin
	huma.Post(api, "/sadmin/signin", s.HandleSuperAdminSignin)
	huma.Get(api, "/sadmin/profile", s.HandleSuperAdminProfile, secured)
	huma.Post(api, "/sadmin/event-admin", s.HandleCreateEventAdmin, secured)
	huma.Get(api, "/sadmin/event-admin", s.HandleEventAdmins, secured)
	huma.Put(api, "/sadmin/event", s.HandleSuperAdminUpdateEvent, secured)
	huma.Get(api, "/sadmin/registration-open", s.HandleGetRegistrationOpen, secured)
	huma.Put(api, "/sadmin/registration-open", s.HandleSetRegistrationOpen, secured)
	huma.Get(api, "/sadmin/game-registration-open", s.HandleGetGameRegistrationOpen, secured)
	huma.Put(api, "/sadmin/game-registration-open", s.HandleSetGameRegistrationOpen, secured)
	huma.Get(api, "/sadmin/user-registered", s.HandleUserRegistered, secured)
	huma.Put(api, "/sadmin/approve/{id}", s.HandleApprove, secured)
}
