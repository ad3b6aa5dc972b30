package endpoints

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/finbound/curator/pkg/server"
)

// VaultResponse represents one vault and its attached adapters
type VaultResponse struct {
	ID       string   `json:"id"`
	Owner    string   `json:"owner,omitempty"`
	Adapters []string `json:"adapters"`
}

// VaultListResponse represents the response from GET /vaults
type VaultListResponse struct {
	Vaults []VaultResponse `json:"vaults"`
}

func RegisterVaultsEndpoints(s *server.Server) {
	vaultsRouter := s.Router.PathPrefix("/vaults").Subrouter()
	vaultsRouter.Use(s.Auth.Middleware)

	// GET /vaults - List registered vaults
	vaultsRouter.HandleFunc("", handleListVaults(s)).Methods("GET")

	// GET /vaults/{vault} - Fetch a vault and its attached adapters
	vaultsRouter.HandleFunc("/{vault:.+}", handleGetVault(s)).Methods("GET")
}

func handleListVaults(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := s.Config.APIListLimitMax
		if param := r.URL.Query().Get("limit"); param != "" {
			parsed, err := strconv.Atoi(param)
			if err != nil || parsed < 1 {
				respondWithError(w, http.StatusUnprocessableEntity, map[string]string{
					"message": "limit must be a positive integer",
				})
				return
			}
			if parsed < limit {
				limit = parsed
			}
		}

		offset := 0
		if param := r.URL.Query().Get("offset"); param != "" {
			parsed, err := strconv.Atoi(param)
			if err != nil || parsed < 0 {
				respondWithError(w, http.StatusUnprocessableEntity, map[string]string{
					"message": "offset must be a non-negative integer",
				})
				return
			}
			offset = parsed
		}

		vaults := s.VaultsStore.ListVaults(limit, offset)

		response := VaultListResponse{Vaults: make([]VaultResponse, 0, len(vaults))}
		for _, v := range vaults {
			adapters := v.Adapters
			if adapters == nil {
				adapters = []string{}
			}
			response.Vaults = append(response.Vaults, VaultResponse{
				ID:       v.ID,
				Owner:    v.Owner,
				Adapters: adapters,
			})
		}

		respondWithJSON(w, http.StatusOK, response)
	}
}

func handleGetVault(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vaultID, err := url.PathUnescape(mux.Vars(r)["vault"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		vault := s.VaultsStore.FetchVault(vaultID)
		if vault == nil {
			respondWithError(w, http.StatusNotFound, map[string]string{
				"message": "vault is not registered",
			})
			return
		}

		adapters := vault.Adapters
		if adapters == nil {
			adapters = []string{}
		}
		respondWithJSON(w, http.StatusOK, VaultResponse{
			ID:       vault.ID,
			Owner:    vault.Owner,
			Adapters: adapters,
		})
	}
}
