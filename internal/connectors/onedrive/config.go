package onedrive

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultAuthorityURL is the Microsoft identity platform endpoint.
const DefaultAuthorityURL = "https://login.microsoftonline.com"

// GraphScope is the client-credentials scope for the Graph API.
const GraphScope = "https://graph.microsoft.com/.default"

// Config holds OneDrive connector configuration. Credentials follow the
// client-credentials flow against the configured tenant.
type Config struct {
	// ClientID is the application (client) ID. Required.
	ClientID string

	// ClientSecret is the client credential. Required.
	ClientSecret string

	// Tenant is the directory (tenant) ID or domain. Required.
	Tenant string

	// UserPrincipalName selects whose drive to read. Required.
	UserPrincipalName string

	// AuthorityURL overrides the token authority. Defaults to
	// DefaultAuthorityURL.
	AuthorityURL string

	// FolderPath restricts ingestion to a folder below the drive root.
	// Empty means the whole drive.
	FolderPath string

	// Recursive selects full subtree enumeration instead of direct children.
	Recursive bool

	// DownloadDir is the local root downloads are mirrored under.
	DownloadDir string

	// OutputDir is the local root processed artifacts are expected under.
	OutputDir string

	// Retain keeps download artifacts after successful runs. Debug flag.
	Retain bool
}

// Validate checks the mandatory access parameters.
func (c *Config) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "client-id")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client-secret")
	}
	if c.Tenant == "" {
		missing = append(missing, "tenant")
	}
	if c.UserPrincipalName == "" {
		missing = append(missing, "user-pname")
	}
	if len(missing) > 0 {
		return fmt.Errorf("onedrive config: missing mandatory values: %s", strings.Join(missing, ", "))
	}
	return nil
}

// tokenURL returns the v2 token endpoint for the configured tenant.
func (c *Config) tokenURL() (string, error) {
	authority := c.AuthorityURL
	if authority == "" {
		authority = DefaultAuthorityURL
	}
	if c.Tenant == "" {
		return "", errors.New("onedrive config: tenant is required")
	}
	return strings.TrimSuffix(authority, "/") + "/" + c.Tenant + "/oauth2/v2.0/token", nil
}
