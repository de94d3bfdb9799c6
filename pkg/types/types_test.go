package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialsComplete(t *testing.T) {
	full := Credentials{AccessToken: "t", Password: "p", PublicURL: "https://x"}
	noURL := Credentials{AccessToken: "t", Password: "p"}

	assert.True(t, full.Complete(ModeQuickTunnel))
	assert.True(t, full.Complete(ModeTokenTunnel))

	// The public URL is mandatory only behind a quick tunnel.
	assert.False(t, noURL.Complete(ModeQuickTunnel))
	assert.True(t, noURL.Complete(ModeTokenTunnel))

	assert.False(t, Credentials{Password: "p", PublicURL: "https://x"}.Complete(ModeQuickTunnel))
	assert.False(t, Credentials{AccessToken: "t", PublicURL: "https://x"}.Complete(ModeQuickTunnel))
}

func TestCredentialsMissing(t *testing.T) {
	assert.Equal(t,
		[]string{"access token", "password", "public URL"},
		Credentials{}.Missing(ModeQuickTunnel))
	assert.Equal(t,
		[]string{"access token", "password"},
		Credentials{}.Missing(ModeTokenTunnel))
	assert.Equal(t,
		[]string{"password"},
		Credentials{AccessToken: "t", PublicURL: "https://x"}.Missing(ModeQuickTunnel))
	assert.Empty(t,
		Credentials{AccessToken: "t", Password: "p", PublicURL: "https://x"}.Missing(ModeQuickTunnel))
}
