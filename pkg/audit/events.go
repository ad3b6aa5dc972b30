package audit

import "fmt"

// BindEvent represents a SetStrategy audit event
type BindEvent struct {
	PrincipalID   string
	ClientIP      string
	AdapterID     string
	VaultID       string
	PreviousVault string
	Forced        bool
	Success       bool
	ErrorMessage  string
}

func (e BindEvent) MessageID() string {
	return "bind"
}

func (e BindEvent) Message() string {
	if e.Success {
		if e.PreviousVault != "" {
			return fmt.Sprintf("%s rebound %s from %s to %s", e.PrincipalID, e.AdapterID, e.PreviousVault, e.VaultID)
		}
		return fmt.Sprintf("%s bound %s to %s", e.PrincipalID, e.AdapterID, e.VaultID)
	}
	msg := fmt.Sprintf("%s tried to bind %s to %s", e.PrincipalID, e.AdapterID, e.VaultID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e BindEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e BindEvent) Facility() int {
	return FacilityAuthPriv
}

func (e BindEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"principal": e.PrincipalID,
		},
		SDIDSubject: {
			"adapter": e.AdapterID,
			"vault":   e.VaultID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "bind",
		},
	}
	if e.PreviousVault != "" {
		sd[SDIDSubject]["previous_vault"] = e.PreviousVault
	}
	if e.Forced {
		sd[SDIDAction]["forced"] = "true"
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}

// UnbindEvent represents a RemoveStrategy audit event
type UnbindEvent struct {
	PrincipalID  string
	ClientIP     string
	AdapterID    string
	VaultID      string
	Success      bool
	ErrorMessage string
}

func (e UnbindEvent) MessageID() string {
	return "unbind"
}

func (e UnbindEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s unbound %s from %s", e.PrincipalID, e.AdapterID, e.VaultID)
	}
	msg := fmt.Sprintf("%s tried to unbind %s", e.PrincipalID, e.AdapterID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e UnbindEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e UnbindEvent) Facility() int {
	return FacilityAuthPriv
}

func (e UnbindEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"principal": e.PrincipalID,
		},
		SDIDSubject: {
			"adapter": e.AdapterID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "unbind",
		},
	}
	if e.VaultID != "" {
		sd[SDIDSubject]["vault"] = e.VaultID
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}

// DeniedEvent represents a mutating call rejected by the authorization policy
type DeniedEvent struct {
	PrincipalID string
	ClientIP    string
	AdapterID   string
	Role        string
	Operation   string
}

func (e DeniedEvent) MessageID() string {
	return "denied"
}

func (e DeniedEvent) Message() string {
	return fmt.Sprintf("%s denied %s on %s: missing role %s", e.PrincipalID, e.Operation, e.AdapterID, e.Role)
}

func (e DeniedEvent) Severity() Severity {
	return SeverityWarning
}

func (e DeniedEvent) Facility() int {
	return FacilityAuthPriv
}

func (e DeniedEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"principal": e.PrincipalID,
			"role":      e.Role,
		},
		SDIDSubject: {
			"adapter": e.AdapterID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    "denied",
		},
	}
}
