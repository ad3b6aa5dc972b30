package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	tokens       map[string]string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:     tc,
		tokens: make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a curator server is running$`, s.aCuratorServerIsRunning)
	sc.Step(`^a principal "([^"]*)" with role "([^"]*)"$`, s.aPrincipalWithRole)
	sc.Step(`^a vault "([^"]*)" owned by "([^"]*)"$`, s.aVaultOwnedBy)

	// Request steps
	sc.Step(`^"([^"]*)" binds adapter "([^"]*)" to vault "([^"]*)"$`, s.bindsAdapterToVault)
	sc.Step(`^"([^"]*)" force-binds adapter "([^"]*)" to vault "([^"]*)"$`, s.forceBindsAdapterToVault)
	sc.Step(`^"([^"]*)" unbinds adapter "([^"]*)"$`, s.unbindsAdapter)
	sc.Step(`^"([^"]*)" looks up the strategy for adapter "([^"]*)"$`, s.looksUpStrategy)
	sc.Step(`^"([^"]*)" lists the strategies$`, s.listsStrategies)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)

	// Database assertion steps
	sc.Step(`^adapter "([^"]*)" should be bound to vault "([^"]*)"$`, s.adapterShouldBeBoundTo)
	sc.Step(`^adapter "([^"]*)" should not be bound$`, s.adapterShouldNotBeBound)
	sc.Step(`^vault "([^"]*)" should not list adapter "([^"]*)"$`, s.vaultShouldNotListAdapter)
}

// Background steps

func (s *StepsContext) aCuratorServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aPrincipalWithRole(principal, role string) error {
	if err := s.tc.DB.Exec(`
		INSERT INTO role_memberships (role_id, member_id) VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, role, principal).Error; err != nil {
		return err
	}

	token, err := s.tc.Auth.IssueToken(principal, 5*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to issue token for %s: %w", principal, err)
	}
	s.tokens[principal] = token
	return nil
}

func (s *StepsContext) aVaultOwnedBy(vaultID, ownerID string) error {
	return s.tc.DB.Exec(`
		INSERT INTO vaults (vault_id, owner_id) VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, vaultID, ownerID).Error
}

// Request steps

func (s *StepsContext) doRequest(principal, method, path string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if token, ok := s.tokens[principal]; ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

func (s *StepsContext) bindsAdapterToVault(principal, adapter, vault string) error {
	body, _ := json.Marshal(map[string]interface{}{"vault": vault})
	return s.doRequest(principal, "PUT", "/strategies/"+url.PathEscape(adapter), body)
}

func (s *StepsContext) forceBindsAdapterToVault(principal, adapter, vault string) error {
	body, _ := json.Marshal(map[string]interface{}{"vault": vault, "force": true})
	return s.doRequest(principal, "PUT", "/strategies/"+url.PathEscape(adapter), body)
}

func (s *StepsContext) unbindsAdapter(principal, adapter string) error {
	return s.doRequest(principal, "DELETE", "/strategies/"+url.PathEscape(adapter), nil)
}

func (s *StepsContext) looksUpStrategy(principal, adapter string) error {
	return s.doRequest(principal, "GET", "/strategies/"+url.PathEscape(adapter), nil)
}

func (s *StepsContext) listsStrategies(principal string) error {
	return s.doRequest(principal, "GET", "/strategies", nil)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldBe(field, expected string) error {
	var result map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	actual, ok := result[field]
	if !ok {
		return fmt.Errorf("field %q not found in response: %s", field, string(s.responseBody))
	}
	if fmt.Sprintf("%v", actual) != expected {
		return fmt.Errorf("expected field %q to be %q, got %v", field, expected, actual)
	}
	return nil
}

// Database assertion steps

func (s *StepsContext) adapterShouldBeBoundTo(adapter, vault string) error {
	var boundVault string
	if err := s.tc.DB.Raw(`SELECT vault_id FROM bindings WHERE adapter_id = ?`, adapter).Scan(&boundVault).Error; err != nil {
		return err
	}
	if boundVault != vault {
		return fmt.Errorf("expected adapter %s bound to %s, got %q", adapter, vault, boundVault)
	}

	var count int64
	if err := s.tc.DB.Raw(`
		SELECT COUNT(*) FROM vault_adapters WHERE vault_id = ? AND adapter_id = ?
	`, vault, adapter).Scan(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("vault %s does not list adapter %s", vault, adapter)
	}
	return nil
}

func (s *StepsContext) adapterShouldNotBeBound(adapter string) error {
	var count int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM bindings WHERE adapter_id = ?`, adapter).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("adapter %s should not be bound but is", adapter)
	}
	return nil
}

func (s *StepsContext) vaultShouldNotListAdapter(vault, adapter string) error {
	var count int64
	if err := s.tc.DB.Raw(`
		SELECT COUNT(*) FROM vault_adapters WHERE vault_id = ? AND adapter_id = ?
	`, vault, adapter).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("vault %s should not list adapter %s but does", vault, adapter)
	}
	return nil
}
