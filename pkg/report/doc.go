// Package report renders the human-readable result banner shown after a
// successful install. The banner's shape depends on whether the public
// URL is known; nothing machine-readable is promised.
package report
