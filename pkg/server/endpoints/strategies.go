package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/finbound/curator/pkg/audit"
	"github.com/finbound/curator/pkg/identity"
	"github.com/finbound/curator/pkg/registry"
	"github.com/finbound/curator/pkg/server"
	"github.com/finbound/curator/pkg/store"
)

// StrategyResponse represents one adapter-to-vault binding
type StrategyResponse struct {
	Adapter string `json:"adapter"`
	Vault   string `json:"vault"`
}

// StrategyListResponse represents the response from GET /strategies
type StrategyListResponse struct {
	Strategies []StrategyResponse `json:"strategies"`
	Count      int                `json:"count"`
}

// SetStrategyRequest is the body of PUT /strategies/{adapter}
type SetStrategyRequest struct {
	Vault string `json:"vault"`
	Force bool   `json:"force,omitempty"`
}

func RegisterStrategiesEndpoints(s *server.Server) {
	strategiesRouter := s.Router.PathPrefix("/strategies").Subrouter()
	strategiesRouter.Use(s.Auth.Middleware)

	// GET /strategies - List bindings
	strategiesRouter.HandleFunc("", handleListStrategies(s)).Methods("GET")

	// GET /strategies/{adapter} - Fetch the vault bound to an adapter
	strategiesRouter.HandleFunc("/{adapter:.+}", handleGetStrategy(s)).Methods("GET")

	// PUT /strategies/{adapter} - Bind an adapter to a vault
	strategiesRouter.HandleFunc("/{adapter:.+}", handleSetStrategy(s)).Methods("PUT")

	// DELETE /strategies/{adapter} - Remove a binding
	strategiesRouter.HandleFunc("/{adapter:.+}", handleRemoveStrategy(s)).Methods("DELETE")
}

func handleListStrategies(s *server.Server) http.HandlerFunc {
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

		bindings := s.BindingsStore.ListBindings(limit, offset)

		response := StrategyListResponse{
			Strategies: make([]StrategyResponse, 0, len(bindings)),
			Count:      s.BindingsStore.CountBindings(),
		}
		for _, b := range bindings {
			response.Strategies = append(response.Strategies, StrategyResponse{
				Adapter: b.Adapter,
				Vault:   b.Vault,
			})
		}

		respondWithJSON(w, http.StatusOK, response)
	}
}

func handleGetStrategy(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adapter, err := url.PathUnescape(mux.Vars(r)["adapter"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		vault, bound := s.Registry.VaultFor(adapter)
		if !bound {
			respondWithError(w, http.StatusNotFound, map[string]string{
				"message": "adapter has no strategy",
			})
			return
		}

		respondWithJSON(w, http.StatusOK, StrategyResponse{Adapter: adapter, Vault: vault})
	}
}

func handleSetStrategy(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adapter, err := url.PathUnescape(mux.Vars(r)["adapter"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req SetStrategyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{
				"message": "Invalid JSON body",
			})
			return
		}
		defer func() { _ = r.Body.Close() }()

		// ?force=true takes precedence over the body flag so callers can
		// retry a 409 without re-encoding the request
		force := req.Force
		if r.URL.Query().Get("force") == "true" {
			force = true
		}

		id, _ := identity.Get(r.Context())
		principal := id.PrincipalID
		ip := clientIP(r, s.Config)

		previous, _ := s.Registry.VaultFor(adapter)

		err = s.Registry.SetStrategy(principal, adapter, req.Vault, force)
		if err != nil {
			audit.Log(audit.BindEvent{
				PrincipalID:   principal,
				ClientIP:      ip,
				AdapterID:     adapter,
				VaultID:       req.Vault,
				PreviousVault: previous,
				Forced:        force,
				Success:       false,
				ErrorMessage:  err.Error(),
			})
			respondWithRegistryError(w, err, principal, adapter, ip, "bind")
			return
		}

		audit.Log(audit.BindEvent{
			PrincipalID:   principal,
			ClientIP:      ip,
			AdapterID:     adapter,
			VaultID:       req.Vault,
			PreviousVault: previous,
			Forced:        force,
			Success:       true,
		})

		status := http.StatusCreated
		if previous != "" {
			status = http.StatusOK
		}
		respondWithJSON(w, status, StrategyResponse{Adapter: adapter, Vault: req.Vault})
	}
}

func handleRemoveStrategy(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adapter, err := url.PathUnescape(mux.Vars(r)["adapter"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id, _ := identity.Get(r.Context())
		principal := id.PrincipalID
		ip := clientIP(r, s.Config)

		previous, _ := s.Registry.VaultFor(adapter)

		err = s.Registry.RemoveStrategy(principal, adapter)
		if err != nil {
			audit.Log(audit.UnbindEvent{
				PrincipalID:  principal,
				ClientIP:     ip,
				AdapterID:    adapter,
				VaultID:      previous,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithRegistryError(w, err, principal, adapter, ip, "unbind")
			return
		}

		audit.Log(audit.UnbindEvent{
			PrincipalID: principal,
			ClientIP:    ip,
			AdapterID:   adapter,
			VaultID:     previous,
			Success:     true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

// respondWithRegistryError maps the registry's error taxonomy to HTTP
// statuses. Denials additionally emit a DeniedEvent.
func respondWithRegistryError(w http.ResponseWriter, err error, principal, adapter, ip, operation string) {
	var unauthorized *registry.UnauthorizedError
	if errors.As(err, &unauthorized) {
		audit.Log(audit.DeniedEvent{
			PrincipalID: principal,
			ClientIP:    ip,
			AdapterID:   adapter,
			Role:        unauthorized.Role,
			Operation:   operation,
		})
		respondWithError(w, http.StatusForbidden, map[string]string{
			"message": unauthorized.Error(),
		})
		return
	}

	var alreadyBound *registry.AlreadyBoundError
	if errors.As(err, &alreadyBound) {
		respondWithError(w, http.StatusConflict, map[string]string{
			"message": alreadyBound.Error(),
			"adapter": alreadyBound.Adapter,
			"vault":   alreadyBound.Vault,
		})
		return
	}

	var notBound *registry.NotBoundError
	if errors.As(err, &notBound) {
		respondWithError(w, http.StatusNotFound, map[string]string{
			"message": notBound.Error(),
		})
		return
	}

	var invalidIdentity *registry.InvalidIdentityError
	if errors.As(err, &invalidIdentity) {
		respondWithError(w, http.StatusUnprocessableEntity, map[string]string{
			"message": invalidIdentity.Error(),
		})
		return
	}

	if errors.Is(err, store.ErrVaultNotFound) {
		respondWithError(w, http.StatusNotFound, map[string]string{
			"message": "vault is not registered",
		})
		return
	}

	respondWithError(w, http.StatusInternalServerError, map[string]string{
		"message": err.Error(),
	})
}
