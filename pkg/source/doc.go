/*
Package source materializes the deployable tree: clone when the target is
missing or empty, fetch-and-rebase when it is already a checkout of the
expected origin, and refuse to touch anything else. Local-mode installs
skip acquisition entirely and only verify the stack definition is present.
*/
package source
