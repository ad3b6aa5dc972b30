package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := BindEvent{
		PrincipalID: "ops@curator",
		ClientIP:    "192.168.1.1",
		AdapterID:   "adapter/aave-v3",
		VaultID:     "vault/usdc-prime",
		Success:     true,
	}

	logger.Log(event)

	output := buf.String()

	// Check RFC5424 format components
	if !strings.Contains(output, "curator") {
		t.Error("Expected app name 'curator' in output")
	}
	if !strings.Contains(output, "bind") {
		t.Error("Expected message ID 'bind' in output")
	}
	if !strings.Contains(output, "ops@curator") {
		t.Error("Expected principal in output")
	}
	if !strings.Contains(output, "192.168.1.1") {
		t.Error("Expected client IP in output")
	}
	if !strings.Contains(output, "bound adapter/aave-v3 to vault/usdc-prime") {
		t.Error("Expected bind message in output")
	}
}

func TestBindEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     BindEvent
		wantMsg   string
		wantSev   Severity
		wantMsgID string
	}{
		{
			name: "first binding",
			event: BindEvent{
				PrincipalID: "ops@curator",
				AdapterID:   "adapter/aave-v3",
				VaultID:     "vault/usdc-prime",
				Success:     true,
			},
			wantMsg:   "bound adapter/aave-v3 to vault/usdc-prime",
			wantSev:   SeverityInfo,
			wantMsgID: "bind",
		},
		{
			name: "forced reassignment",
			event: BindEvent{
				PrincipalID:   "ops@curator",
				AdapterID:     "adapter/aave-v3",
				VaultID:       "vault/usdc-degen",
				PreviousVault: "vault/usdc-prime",
				Forced:        true,
				Success:       true,
			},
			wantMsg:   "rebound adapter/aave-v3 from vault/usdc-prime to vault/usdc-degen",
			wantSev:   SeverityInfo,
			wantMsgID: "bind",
		},
		{
			name: "rejected rebinding",
			event: BindEvent{
				PrincipalID:  "ops@curator",
				AdapterID:    "adapter/aave-v3",
				VaultID:      "vault/usdc-degen",
				Success:      false,
				ErrorMessage: "already bound",
			},
			wantMsg:   "tried to bind",
			wantSev:   SeverityWarning,
			wantMsgID: "bind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.MessageID() != tt.wantMsgID {
				t.Errorf("MessageID() = %v, want %v", tt.event.MessageID(), tt.wantMsgID)
			}
		})
	}
}

func TestDeniedEvent(t *testing.T) {
	event := DeniedEvent{
		PrincipalID: "mallory@curator",
		AdapterID:   "adapter/aave-v3",
		Role:        "operator",
		Operation:   "bind",
	}

	if event.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want warning", event.Severity())
	}
	if !strings.Contains(event.Message(), "missing role operator") {
		t.Errorf("Message() = %q, want role mention", event.Message())
	}
	sd := event.StructuredData()
	if sd[SDIDAction]["result"] != "denied" {
		t.Errorf("structured data result = %q, want denied", sd[SDIDAction]["result"])
	}
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `"plain"`},
		{`with"quote`, `"with\"quote"`},
		{`with]bracket`, `"with\]bracket"`},
		{`with\slash`, `"with\\slash"`},
	}

	for _, tt := range tests {
		if got := escapeSDValue(tt.in); got != tt.want {
			t.Errorf("escapeSDValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
