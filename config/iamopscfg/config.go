// Package iamopscfg loads and validates the iamops configuration.
//
// Sources, lowest precedence first: built-in defaults, an optional
// iamops.yml file, environment variables, command line flags. Credentials
// have no defaults and must always be supplied externally.
package iamopscfg

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	URLEnvKey      = "KEYCLOAK_URL"
	RealmEnvKey    = "KEYCLOAK_REALM"
	EmailEnvKey    = "KEYCLOAK_ADMIN_EMAIL"
	PasswordEnvKey = "KEYCLOAK_ADMIN_PASSWORD"
)

// DefaultConfigPath is the config file looked up when --config is not given.
const DefaultConfigPath = "iamops.yml"

// Config holds everything a provisioning run needs, resolved before any
// network call is made.
type Config struct {
	URL           string `yaml:"url"`
	Realm         string `yaml:"realm"`
	AdminEmail    string `yaml:"adminEmail"`
	AdminPassword string `yaml:"-"` // environment or flag only, never from file
	UserEmail     string `yaml:"userEmail"` // provisioned user; defaults to AdminEmail

	Client ClientConfig `yaml:"client"`
	Roles  RolesConfig  `yaml:"roles"`
	Scope  ScopeConfig  `yaml:"scope"`
	Group  GroupConfig  `yaml:"group"`
}

// ClientConfig describes the application client registration.
type ClientConfig struct {
	ClientID            string   `yaml:"clientId"`
	Name                string   `yaml:"name"`
	Description         string   `yaml:"description"`
	RedirectURIs        []string `yaml:"redirectUris"`
	WebOrigins          []string `yaml:"webOrigins"`
	AccessTokenLifespan string   `yaml:"accessTokenLifespan"`
}

// RolesConfig describes the realm role set.
type RolesConfig struct {
	// Names are the canonical realm roles ensured and assigned to the user.
	Names []string `yaml:"names"`
	// Legacy are role names removed by `roles fix`.
	Legacy []string `yaml:"legacy"`
	// DescriptionFmt renders a role description from the role name.
	DescriptionFmt string `yaml:"descriptionFormat"`
}

// ScopeConfig describes the tenant claim scope and its protocol mappers.
type ScopeConfig struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	ClaimName       string `yaml:"claimName"`
	MapperName      string `yaml:"mapperName"`
	GroupMapperName string `yaml:"groupMapperName"`
}

// GroupConfig describes the tenant group.
type GroupConfig struct {
	Name        string `yaml:"name"`
	CompanyName string `yaml:"companyName"`
}

// New returns a Config populated with the built-in defaults.
func New() *Config {
	return &Config{
		Realm: "spooliq",
		Client: ClientConfig{
			ClientID:            "spooliq",
			Name:                "Spooliq Application",
			Description:         "Main Spooliq application client",
			RedirectURIs:        []string{"http://localhost:8000/*"},
			WebOrigins:          []string{"http://localhost:8000"},
			AccessTokenLifespan: "3600",
		},
		Roles: RolesConfig{
			Names:          []string{"PlatformAdmin", "OrgAdmin", "Owner", "User"},
			Legacy:         []string{"user", "adm"},
			DescriptionFmt: "%s role for Spooliq SaaS platform",
		},
		Scope: ScopeConfig{
			Name:            "organization",
			Description:     "Organization multi-tenancy scope",
			ClaimName:       "organization_id",
			MapperName:      "organization-id-mapper",
			GroupMapperName: "organization-group-mapper",
		},
		Group: GroupConfig{
			Name:        "spooliq-platform",
			CompanyName: "Spooliq Platform",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file at the
// default path is not an error; an explicitly requested file must exist.
func Load(path string, required bool) (*Config, error) {
	cfg := New()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(URLEnvKey); v != "" {
		c.URL = v
	}
	if v := os.Getenv(RealmEnvKey); v != "" {
		c.Realm = v
	}
	if v := os.Getenv(EmailEnvKey); v != "" {
		c.AdminEmail = v
	}
	if v := os.Getenv(PasswordEnvKey); v != "" {
		c.AdminPassword = v
	}
}

// RoleDescription renders the configured description for a role name.
func (c *Config) RoleDescription(name string) string {
	return fmt.Sprintf(c.Roles.DescriptionFmt, name)
}

// Validate checks that everything required to reach the IAM service is
// present. It runs before any network call; the returned error doubles as
// usage guidance.
func (c *Config) Validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, URLEnvKey)
	}
	if c.Realm == "" {
		missing = append(missing, RealmEnvKey)
	}
	if c.AdminEmail == "" {
		missing = append(missing, EmailEnvKey)
	}
	if c.AdminPassword == "" {
		missing = append(missing, PasswordEnvKey)
	}
	if len(missing) > 0 {
		return &MissingConfigError{Keys: missing}
	}
	if c.Client.ClientID == "" {
		return errors.New("client.clientId must not be empty")
	}
	if len(c.Roles.Names) == 0 {
		return errors.New("roles.names must not be empty")
	}
	if c.Scope.Name == "" || c.Scope.ClaimName == "" {
		return errors.New("scope.name and scope.claimName must not be empty")
	}
	return nil
}

// UserEmailOrDefault returns the user to provision, falling back to the
// administrator email when no explicit target user is configured.
func (c *Config) UserEmailOrDefault() string {
	if c.UserEmail != "" {
		return c.UserEmail
	}
	return c.AdminEmail
}

// MissingConfigError lists required configuration keys that were not
// supplied by file, environment, or flag.
type MissingConfigError struct {
	Keys []string
}

func (e *MissingConfigError) Error() string {
	msg := "missing required configuration:"
	for _, k := range e.Keys {
		msg += " " + k
	}
	return msg + " (set the environment variables or the matching flags)"
}
