package stack

import (
	"fmt"
	"os"
	"path/filepath"
)

// TunnelConfigFile is the ingress configuration consumed by the tunnel
// helper service.
const TunnelConfigFile = "cloudflared-config.yml"

// The two fixed shapes of the tunnel ingress file. With a hostname the
// gateway is published under it and everything else 404s; without one a
// single catch-all rule forwards to the gateway.
const (
	tunnelConfigWithHostname = `ingress:
  - hostname: %s
    service: http://gateway:8080
  - service: http_status:404
`

	tunnelConfigCatchAll = `ingress:
  - service: http://gateway:8080
`
)

// WriteTunnelConfig materializes the tunnel ingress file in dir, picking
// the shape from hostname presence. Re-running overwrites in place.
func WriteTunnelConfig(dir, hostname string) (string, error) {
	content := tunnelConfigCatchAll
	if hostname != "" {
		content = fmt.Sprintf(tunnelConfigWithHostname, hostname)
	}

	path := filepath.Join(dir, TunnelConfigFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write tunnel config: %w", err)
	}
	return path, nil
}
