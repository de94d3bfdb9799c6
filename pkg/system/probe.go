package system

import (
	"os/exec"
)

// PackageManager identifies the host's package manager family.
type PackageManager string

const (
	PkgApt    PackageManager = "apt"
	PkgDnf    PackageManager = "dnf"
	PkgYum    PackageManager = "yum"
	PkgApk    PackageManager = "apk"
	PkgPacman PackageManager = "pacman"
	PkgZypper PackageManager = "zypper"
	PkgNone   PackageManager = "none"
)

// probeOrder is the fixed detection priority; first match wins.
var probeOrder = []PackageManager{PkgApt, PkgDnf, PkgYum, PkgApk, PkgPacman, PkgZypper}

// probeBinary is the binary whose presence identifies each family.
var probeBinary = map[PackageManager]string{
	PkgApt:    "apt-get",
	PkgDnf:    "dnf",
	PkgYum:    "yum",
	PkgApk:    "apk",
	PkgPacman: "pacman",
	PkgZypper: "zypper",
}

// HasCommand reports whether the named binary is on PATH.
func HasCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// DetectPackageManager probes for a known package manager family. It
// returns PkgNone when no family is recognized; callers treat that as
// fatal only when an install is actually needed.
func DetectPackageManager() PackageManager {
	return detectPackageManager(HasCommand)
}

func detectPackageManager(has func(string) bool) PackageManager {
	for _, pm := range probeOrder {
		if has(probeBinary[pm]) {
			return pm
		}
	}
	return PkgNone
}
