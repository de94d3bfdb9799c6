package extract

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/RunClawd/runclawd/pkg/config"
	"github.com/RunClawd/runclawd/pkg/log"
	"github.com/RunClawd/runclawd/pkg/types"
)

// ErrTimeout is returned when the poll deadline elapses before every
// mandatory value showed up in the logs.
var ErrTimeout = errors.New("timed out waiting for credentials")

// errNotConverged drives the retry loop; never surfaced to callers.
var errNotConverged = errors.New("not converged")

// Labels the services print their secrets under. The password label
// depends on the deployment mode.
const (
	AccessTokenLabel      = "Access Token:"
	TerminalPasswordLabel = "Web Terminal Password:"
	AdminPasswordLabel    = "Admin Password:"
)

// tunnelURLPattern matches the ephemeral hostnames handed out by quick
// tunnels.
var tunnelURLPattern = regexp.MustCompile(`https://[a-zA-Z0-9-]+\.trycloudflare\.com`)

// LogSource produces the trailing log lines of a named service. A
// service that does not exist yet yields no lines and no error.
type LogSource interface {
	TailLines(ctx context.Context, service string, tail int) ([]string, error)
}

// Extractor polls service logs until the credential set converges or the
// deadline elapses. Values are filled in monotonically: once found, a
// value is never re-derived or cleared.
type Extractor struct {
	logs     LogSource
	mode     types.DeployMode
	services types.ServiceNames
	interval time.Duration
	deadline time.Duration
	tail     int
	creds    types.Credentials
}

// New creates an extractor for the configured deployment. In token mode
// the public URL is derived up front from the configured hostname; it is
// never polled for.
func New(logs LogSource, cfg *config.Config) *Extractor {
	return &Extractor{
		logs:     logs,
		mode:     cfg.Mode(),
		services: cfg.Services,
		interval: cfg.PollInterval,
		deadline: cfg.PollDeadline,
		tail:     cfg.LogTail,
		creds:    types.Credentials{PublicURL: cfg.PublicURL()},
	}
}

// Run polls until convergence and returns the full credential set. On
// deadline it reports exactly which values are still missing; there is
// no partial success.
func (e *Extractor) Run(ctx context.Context) (types.Credentials, error) {
	logger := log.WithComponent("extract")
	logger.Info().
		Dur("deadline", e.deadline).
		Msg("waiting for credentials in service logs")

	backoff := retry.WithMaxDuration(e.deadline, retry.NewConstant(e.interval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := e.poll(ctx); err != nil {
			return err
		}
		if e.creds.Complete(e.mode) {
			return nil
		}
		return retry.RetryableError(errNotConverged)
	})
	if err != nil {
		if errors.Is(err, errNotConverged) {
			missing := strings.Join(e.creds.Missing(e.mode), ", ")
			return e.creds, fmt.Errorf("%w: still missing %s after %v", ErrTimeout, missing, e.deadline)
		}
		return e.creds, err
	}

	logger.Info().Msg("credentials extracted")
	return e.creds, nil
}

// poll runs one extraction pass over the unresolved values.
func (e *Extractor) poll(ctx context.Context) error {
	if e.creds.AccessToken == "" {
		token, err := e.labeledValue(ctx, e.services.Gateway, AccessTokenLabel)
		if err != nil {
			return err
		}
		e.creds.AccessToken = token
	}

	if e.creds.Password == "" {
		service, label := e.passwordSource()
		password, err := e.labeledValue(ctx, service, label)
		if err != nil {
			return err
		}
		e.creds.Password = password
	}

	if e.mode == types.ModeQuickTunnel && e.creds.PublicURL == "" {
		url, err := e.tunnelURL(ctx)
		if err != nil {
			return err
		}
		e.creds.PublicURL = url
	}

	return nil
}

// passwordSource picks the service and label the password is read from:
// the gateway's admin password in token mode, the web terminal's
// password behind the quick tunnel.
func (e *Extractor) passwordSource() (service, label string) {
	if e.mode == types.ModeTokenTunnel {
		return e.services.Gateway, AdminPasswordLabel
	}
	return e.services.Terminal, TerminalPasswordLabel
}

// labeledValue scans the service's trailing log lines for the label and
// returns the first whitespace-delimited token after it, preferring the
// most recent matching line. Empty when not present yet.
func (e *Extractor) labeledValue(ctx context.Context, service, label string) (string, error) {
	lines, err := e.logs.TailLines(ctx, service, e.tail)
	if err != nil {
		return "", err
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if v := valueAfterLabel(lines[i], label); v != "" {
			return v, nil
		}
	}
	return "", nil
}

// tunnelURL scans the tunnel helper's logs for the first ephemeral
// hostname.
func (e *Extractor) tunnelURL(ctx context.Context) (string, error) {
	lines, err := e.logs.TailLines(ctx, e.services.Tunnel, e.tail)
	if err != nil {
		return "", err
	}
	for _, line := range lines {
		if m := tunnelURLPattern.FindString(line); m != "" {
			return m, nil
		}
	}
	return "", nil
}

func valueAfterLabel(line, label string) string {
	idx := strings.Index(line, label)
	if idx < 0 {
		return ""
	}
	fields := strings.Fields(line[idx+len(label):])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
