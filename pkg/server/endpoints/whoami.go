package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/identity"
	"github.com/finbound/curator/pkg/server"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	Principal string   `json:"principal"`
	Roles     []string `json:"roles"`
	ClientIP  string   `json:"client_ip,omitempty"`
	TokenIAT  int64    `json:"token_iat,omitempty"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(s.Auth.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami(s)).Methods("GET")
}

func handleWhoami(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok || id.PrincipalID == "" {
			http.Error(w, "Unable to determine identity", http.StatusUnauthorized)
			return
		}

		roles := make([]string, 0, 2)
		for _, role := range []string{authz.RoleAdmin, authz.RoleOperator} {
			if s.AuthzStore.HasRole(id.PrincipalID, role) {
				roles = append(roles, role)
			}
		}

		response := WhoamiResponse{
			Principal: id.PrincipalID,
			Roles:     roles,
			ClientIP:  clientIP(r, s.Config),
		}
		if !id.IssuedAt.IsZero() {
			response.TokenIAT = id.IssuedAt.Unix()
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}
}
