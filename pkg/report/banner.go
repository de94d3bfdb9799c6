package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/RunClawd/runclawd/pkg/types"
)

const rule = "============================================================"

// Render formats the post-install summary for the operator. It is pure
// formatting: nothing downstream parses this output, its only contract
// is legibility.
func Render(w io.Writer, mode types.DeployMode, creds types.Credentials) {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("  RunClawd is up\n")
	b.WriteString(rule + "\n\n")

	if creds.PublicURL != "" {
		fmt.Fprintf(&b, "  Gateway URL:   %s\n", creds.PublicURL)
	}
	fmt.Fprintf(&b, "  Access Token:  %s\n", creds.AccessToken)
	fmt.Fprintf(&b, "  Password:      %s\n", creds.Password)

	if creds.PublicURL == "" {
		// Token-tunnel install without a configured hostname: the URL
		// lives in the tunnel provider's dashboard, not in our logs.
		b.WriteString("\n  Public URL:    set RUNCLAWD_HOSTNAME or check your tunnel dashboard\n")
		w.Write([]byte(b.String()))
		return
	}

	fmt.Fprintf(&b, "\n  Onboarding:    %s/onboard\n", creds.PublicURL)
	fmt.Fprintf(&b, "  Web Terminal:  %s/terminal\n", creds.PublicURL)

	b.WriteString("\n  To approve a new device:\n")
	fmt.Fprintf(&b, "    1. Open %s/terminal\n", creds.PublicURL)
	b.WriteString("    2. Sign in with the password above\n")
	b.WriteString("    3. Run: clawd devices approve\n")

	if mode == types.ModeQuickTunnel {
		b.WriteString("\n  Note: quick-tunnel URLs are ephemeral and change on restart.\n")
	}

	w.Write([]byte(b.String()))
}
