package endpoints

import (
	"github.com/finbound/curator/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStrategiesEndpoints(srv)
	RegisterVaultsEndpoints(srv)
	RegisterStatusEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
}
