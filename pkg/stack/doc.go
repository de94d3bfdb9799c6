/*
Package stack drives the docker-compose stack that makes up a RunClawd
deployment.

The controller owns two decisions that depend on the deployment mode: the
overlay set (the base definition alone, or base plus the token-tunnel
overlay, base always first since later files override earlier keys) and
the environment handed to compose (the tunnel token is always propagated,
set or empty, so overlay interpolation behaves identically in both modes).

Log reads are deliberately forgiving: during early polling the target
service may not have been created yet, and the controller reports that as
empty output instead of an error so the credential extractor can keep
polling.

The package also materializes the tunnel ingress file in one of its two
fixed shapes (explicit hostname vs. catch-all).
*/
package stack
