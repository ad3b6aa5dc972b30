// Package audit provides audit logging for curator operations.
//
// This package implements structured audit logging for security-relevant
// operations: binding assignments, removals, and denied mutation attempts.
//
// # Event Types
//
//   - BindEvent: SetStrategy outcomes, including forced reassignments
//   - UnbindEvent: RemoveStrategy outcomes
//   - DeniedEvent: mutating calls rejected by the authorization policy
//
// # Usage
//
//	audit.Log(audit.BindEvent{
//	    PrincipalID: id.PrincipalID,
//	    AdapterID:   adapter,
//	    VaultID:     vault,
//	    Success:     true,
//	})
//
// Events are written in RFC5424 syslog format and, when an audit database
// is configured, persisted to the messages table.
package audit
