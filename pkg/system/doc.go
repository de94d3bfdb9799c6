/*
Package system provides host capability probing, dependency installation,
and the command runner used by every component that shells out.

# Architecture

The package has three layers:

	┌──────────────────────────────────────────────────────┐
	│                     Installer                        │
	│  Ensures curl / git / ssh client / docker exist.     │
	│  Idempotent: present tools are never touched.        │
	└───────────────┬──────────────────────────────────────┘
	                │ selects one variant
	┌───────────────▼──────────────────────────────────────┐
	│                 PackageInstaller                     │
	│  One implementation per package manager family       │
	│  (apt, dnf, yum, apk, pacman, zypper), chosen by     │
	│  the probe. Family quirks (apt index refresh,        │
	│  non-interactive mode, ssh package naming) live      │
	│  inside the variant.                                 │
	└───────────────┬──────────────────────────────────────┘
	                │ executes through
	┌───────────────▼──────────────────────────────────────┐
	│                      Runner                          │
	│  Thin os/exec wrapper with env, cwd and stdin        │
	│  control. The single seam faked in tests.            │
	└──────────────────────────────────────────────────────┘

The probe itself (HasCommand, DetectPackageManager) is pure: it never
mutates the host, so callers may probe freely and only fail when an
install is actually required on an unsupported host.
*/
package system
