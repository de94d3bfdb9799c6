/*
Package extract recovers operator credentials from container log output.

The gateway stack has no synchronous "startup complete" signal: the access
token, the password, and (for quick tunnels) the public URL only ever
appear as free-text log lines, at some point after bring-up. The extractor
therefore polls a LogSource on a fixed interval under a bounded deadline,
filling in values monotonically as they appear — a value found on one pass
is never re-derived on the next.

The LogSource capability keeps the format coupling in one place: the label
patterns can be exercised against synthetic line sequences in tests without
a container runtime, and the stack controller supplies the real
implementation in production.

Convergence is mode-dependent. Token-tunnel deployments derive their URL
up front from the configured hostname (or accept not having one); quick
tunnels must observe the ephemeral hostname in the tunnel helper's logs.
On deadline the extractor fails naming exactly the values still missing —
there is no partial success.
*/
package extract
