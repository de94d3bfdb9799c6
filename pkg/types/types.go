package types

// DeployMode selects how the stack is exposed to the outside world.
type DeployMode string

const (
	// ModeQuickTunnel runs an ephemeral provider-assigned tunnel. The
	// public URL only becomes known through the tunnel helper's logs.
	ModeQuickTunnel DeployMode = "quick-tunnel"

	// ModeTokenTunnel runs a pre-registered tunnel using a credential
	// from the environment. The public URL is derived from the
	// configured hostname, or stays unknown if none is configured.
	ModeTokenTunnel DeployMode = "token-tunnel"
)

// Credentials is the set of operator-facing values scraped out of
// container logs after bring-up. Fields are filled in monotonically by
// the extractor; an empty string means "not found yet".
type Credentials struct {
	AccessToken string
	Password    string
	PublicURL   string
}

// Complete reports whether all values mandatory for the given mode are
// present. The public URL is optional in token-tunnel mode, where it is
// either derived from the configured hostname or intentionally unknown.
func (c Credentials) Complete(mode DeployMode) bool {
	if c.AccessToken == "" || c.Password == "" {
		return false
	}
	return c.PublicURL != "" || mode == ModeTokenTunnel
}

// Missing returns the names of mandatory values that are still absent,
// in a fixed order suitable for error messages.
func (c Credentials) Missing(mode DeployMode) []string {
	var missing []string
	if c.AccessToken == "" {
		missing = append(missing, "access token")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if c.PublicURL == "" && mode == ModeQuickTunnel {
		missing = append(missing, "public URL")
	}
	return missing
}

// ServiceNames maps the stack's logical roles to compose service names.
type ServiceNames struct {
	Gateway  string `yaml:"gateway"`
	Terminal string `yaml:"terminal"`
	Tunnel   string `yaml:"tunnel"`
}

// DefaultServiceNames returns the service names used by the stock
// compose files.
func DefaultServiceNames() ServiceNames {
	return ServiceNames{
		Gateway:  "gateway",
		Terminal: "terminal",
		Tunnel:   "cloudflared",
	}
}
