package policy

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Statement is a marker interface for policy statements.
type Statement interface {
	isStatement()
}

// Vault declares a vault identity the registry may bind adapters to.
type Vault struct {
	Statement `yaml:"-"`
	Id        string `yaml:"id"`
	Owner     string `yaml:"owner,omitempty"`
}

func (Vault) isStatement() {}

// UnmarshalYAML for Vault handles both scalar (just ID) and mapping forms
func (v *Vault) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		v.Id = value.Value
		return nil
	}
	type vaultAlias Vault
	return value.Decode((*vaultAlias)(v))
}

// Grant represents a role membership grant.
type Grant struct {
	Statement `yaml:"-"`
	Role      string   `yaml:"role"`
	Member    string   `yaml:"-"` // Use custom unmarshaler
	Members   []string `yaml:"-"` // Plural form
}

func (Grant) isStatement() {}

// UnmarshalYAML for Grant handles both "member" and "members" fields
func (g *Grant) UnmarshalYAML(value *yaml.Node) error {
	type grantRaw struct {
		Role    string   `yaml:"role"`
		Member  string   `yaml:"member"`
		Members []string `yaml:"members"`
	}
	var raw grantRaw
	if err := value.Decode(&raw); err != nil {
		return err
	}
	g.Role = raw.Role
	// If members (plural) is provided, use it; otherwise use member (singular)
	if len(raw.Members) > 0 {
		g.Members = raw.Members
	} else if raw.Member != "" {
		g.Members = []string{raw.Member}
	}
	if len(g.Members) > 0 {
		g.Member = g.Members[0]
	}
	return nil
}

// Bind represents an adapter strategy assignment.
type Bind struct {
	Statement `yaml:"-"`
	Adapter   string `yaml:"adapter"`
	Vault     string `yaml:"vault"`
	Force     bool   `yaml:"force,omitempty"`
}

func (Bind) isStatement() {}

// Unbind represents a strategy removal.
type Unbind struct {
	Statement `yaml:"-"`
	Adapter   string `yaml:"adapter"`
}

func (Unbind) isStatement() {}

// UnmarshalYAML for Unbind handles both scalar (just the adapter) and
// mapping forms
func (u *Unbind) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		u.Adapter = value.Value
		return nil
	}
	type unbindAlias Unbind
	return value.Decode((*unbindAlias)(u))
}

// Statements is a slice of Statement that can be unmarshaled from YAML.
type Statements []Statement

func (s *Statements) UnmarshalYAML(value *yaml.Node) error {
	var statements []Statement
	for _, node := range value.Content {
		var statement Statement

		switch node.Tag {
		case KindVault.Tag():
			var vault Vault
			if err := node.Decode(&vault); err != nil {
				return err
			}
			statement = vault
		case KindGrant.Tag():
			var grant Grant
			if err := node.Decode(&grant); err != nil {
				return err
			}
			statement = grant
		case KindBind.Tag():
			var bind Bind
			if err := node.Decode(&bind); err != nil {
				return err
			}
			statement = bind
		case KindUnbind.Tag():
			var unbind Unbind
			if err := node.Decode(&unbind); err != nil {
				return err
			}
			statement = unbind
		default:
			return fmt.Errorf("unknown policy statement tag: %s", node.Tag)
		}

		statements = append(statements, statement)
	}

	*s = statements
	return nil
}
