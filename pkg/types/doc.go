/*
Package types defines the shared data types used across RunClawd packages.

It carries the deployment mode enumeration, the credential set extracted
from container logs, and the naming of the compose services. Keeping these
in one leaf package lets config, stack, extract, and report agree on the
same vocabulary without import cycles.
*/
package types
