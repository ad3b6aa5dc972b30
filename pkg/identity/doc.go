// Package identity provides authenticated principal management for
// curator requests.
//
// This package separates the concept of an authenticated principal from
// the raw token parsing. An Identity combines token claims (principal ID,
// validity window) with request-specific context (remote IP).
//
// # Basic Usage
//
//	// Create identity from verified token claims
//	id := identity.New(principalID).
//	   WithClaims(issuedAt, expiresAt).
//	   WithRemoteIP(clientIP)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
//
// The middleware package handles parsing and validating the bearer token;
// this package carries the result through the request.
package identity
