/*
Package config resolves the runtime configuration for RunClawd.

Configuration is assembled in three layers: built-in defaults, process
environment (RUNCLAWD_DIR, CLOUDFLARE_TUNNEL_TOKEN, RUNCLAWD_HOSTNAME),
and an optional runclawd.yaml in the install directory. The result is an
explicit Config struct handed to every component; nothing downstream reads
the environment directly, which keeps the deployment mode a first-class,
testable input.

The deployment mode is derived, not stored: a present tunnel token means
token-tunnel mode, an absent one means an ephemeral quick tunnel.
*/
package config
