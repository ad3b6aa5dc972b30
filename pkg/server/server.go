package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/finbound/curator/pkg/config"
	"github.com/finbound/curator/pkg/registry"
	"github.com/finbound/curator/pkg/server/middleware"
	"github.com/finbound/curator/pkg/store"
)

// Server holds the router, the registry, and the stores the endpoint
// handlers read from.
type Server struct {
	Router        *mux.Router
	DB            *gorm.DB
	Registry      *registry.Registry
	BindingsStore store.BindingsStore
	VaultsStore   store.VaultsStore
	AuthzStore    store.AuthzStore
	HealthStore   store.HealthStore
	Config        *config.CuratorConfig
	Auth          *middleware.TokenAuthenticator
	srv           *http.Server
}

func NewServer(
	reg *registry.Registry,
	bindingsStore store.BindingsStore,
	vaultsStore store.VaultsStore,
	authzStore store.AuthzStore,
	healthStore store.HealthStore,
	cfg *config.CuratorConfig,
	auth *middleware.TokenAuthenticator,
	db *gorm.DB,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:        router,
		DB:            db,
		Registry:      reg,
		BindingsStore: bindingsStore,
		VaultsStore:   vaultsStore,
		AuthzStore:    authzStore,
		HealthStore:   healthStore,
		Config:        cfg,
		Auth:          auth,
		srv:           srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
