package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RunClawd/runclawd/pkg/config"
	"github.com/RunClawd/runclawd/pkg/log"
	"github.com/RunClawd/runclawd/pkg/types"
)

func init() {
	log.Init(log.Config{Level: log.ErrorLevel})
}

// scriptedLogs serves per-service log lines, optionally only after a
// number of polls have happened, to mimic services that start slowly.
type scriptedLogs struct {
	lines      map[string][]string
	availAfter map[string]int
	polls      map[string]int
	err        error
}

func newScriptedLogs() *scriptedLogs {
	return &scriptedLogs{
		lines:      map[string][]string{},
		availAfter: map[string]int{},
		polls:      map[string]int{},
	}
}

func (s *scriptedLogs) TailLines(ctx context.Context, service string, tail int) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.polls[service]++
	if s.polls[service] <= s.availAfter[service] {
		return nil, nil
	}
	return s.lines[service], nil
}

func fastConfig() *config.Config {
	cfg := config.Default()
	cfg.PollInterval = time.Millisecond
	cfg.PollDeadline = 250 * time.Millisecond
	return cfg
}

func TestRunConvergesQuickTunnel(t *testing.T) {
	logs := newScriptedLogs()
	logs.lines["gateway"] = []string{
		"gateway starting up",
		"Access Token: abc123",
	}
	logs.lines["terminal"] = []string{
		"Web Terminal Password: xyz789",
	}
	logs.lines["cloudflared"] = []string{
		"INF +--------------------------------+",
		"INF |  https://foo-bar.trycloudflare.com  |",
	}

	e := New(logs, fastConfig())
	creds, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.Credentials{
		AccessToken: "abc123",
		Password:    "xyz789",
		PublicURL:   "https://foo-bar.trycloudflare.com",
	}, creds)
}

func TestRunConvergesAfterSlowStart(t *testing.T) {
	logs := newScriptedLogs()
	logs.lines["gateway"] = []string{"Access Token: tok"}
	logs.lines["terminal"] = []string{"Web Terminal Password: pw"}
	logs.lines["cloudflared"] = []string{"https://slow-start.trycloudflare.com"}
	// The tunnel helper only begins logging on the fourth poll.
	logs.availAfter["cloudflared"] = 3

	e := New(logs, fastConfig())
	creds, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://slow-start.trycloudflare.com", creds.PublicURL)
}

func TestRunPrefersMostRecentMatch(t *testing.T) {
	logs := newScriptedLogs()
	logs.lines["gateway"] = []string{
		"Access Token: stale-token",
		"restarted after config change",
		"Access Token: fresh-token",
	}
	logs.lines["terminal"] = []string{"Web Terminal Password: pw"}
	logs.lines["cloudflared"] = []string{"https://x-y.trycloudflare.com"}

	e := New(logs, fastConfig())
	creds, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", creds.AccessToken)
}

func TestRunTimeoutReportsMissing(t *testing.T) {
	logs := newScriptedLogs()
	// Token appears, password never does.
	logs.lines["gateway"] = []string{"Access Token: abc123"}
	logs.lines["cloudflared"] = []string{"https://a-b.trycloudflare.com"}

	cfg := fastConfig()
	cfg.PollDeadline = 30 * time.Millisecond

	e := New(logs, cfg)
	creds, err := e.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Contains(t, err.Error(), "password")
	assert.NotContains(t, err.Error(), "access token")
	assert.Equal(t, "abc123", creds.AccessToken)
}

func TestRunTokenModeDerivesURLUpFront(t *testing.T) {
	logs := newScriptedLogs()
	logs.lines["gateway"] = []string{
		"Access Token: t0k",
		"Admin Password: s3cret",
	}

	cfg := fastConfig()
	cfg.TunnelToken = "tunnel-token"
	cfg.Hostname = "clawd.example.com"

	e := New(logs, cfg)
	creds, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://clawd.example.com", creds.PublicURL)
	assert.Equal(t, "s3cret", creds.Password)
	// The tunnel helper must never be polled in token mode.
	assert.Zero(t, logs.polls["cloudflared"])
}

func TestRunTokenModeToleratesUnknownURL(t *testing.T) {
	logs := newScriptedLogs()
	logs.lines["gateway"] = []string{
		"Access Token: t0k",
		"Admin Password: s3cret",
	}

	cfg := fastConfig()
	cfg.TunnelToken = "tunnel-token" // no hostname

	e := New(logs, cfg)
	creds, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, creds.PublicURL)
}

func TestRunQuickModeRequiresURL(t *testing.T) {
	logs := newScriptedLogs()
	logs.lines["gateway"] = []string{"Access Token: t"}
	logs.lines["terminal"] = []string{"Web Terminal Password: p"}

	cfg := fastConfig()
	cfg.PollDeadline = 30 * time.Millisecond

	e := New(logs, cfg)
	_, err := e.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Contains(t, err.Error(), "public URL")
}

func TestRunPropagatesLogSourceErrors(t *testing.T) {
	logs := newScriptedLogs()
	logs.err = errors.New("docker daemon unreachable")

	e := New(logs, fastConfig())
	_, err := e.Run(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTimeout))
	assert.Contains(t, err.Error(), "unreachable")
}

func TestValueAfterLabel(t *testing.T) {
	tests := []struct {
		line     string
		label    string
		expected string
	}{
		{"Access Token: abc123", AccessTokenLabel, "abc123"},
		{"2024-01-01 12:00:00 gateway | Access Token:   padded", AccessTokenLabel, "padded"},
		{"Access Token: first second", AccessTokenLabel, "first"},
		{"Access Token:", AccessTokenLabel, ""},
		{"unrelated line", AccessTokenLabel, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, valueAfterLabel(tt.line, tt.label), tt.line)
	}
}
