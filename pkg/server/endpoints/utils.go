package endpoints

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/finbound/curator/pkg/config"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// clientIP returns the address audit events should attribute the request
// to. X-Forwarded-For is honored only when the peer is a trusted proxy,
// and only its first element: the header can carry a comma-separated
// chain of proxies after the originating client.
func clientIP(r *http.Request, cfg *config.CuratorConfig) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(peer); err == nil {
		peer = host
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if cfg != nil && cfg.IsTrustedProxy(peer) {
			first, _, _ := strings.Cut(forwarded, ",")
			return strings.TrimSpace(first)
		}
	}
	return peer
}
