package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/RunClawd/runclawd/pkg/log"
)

// ErrUnsupportedPackageManager is returned when a tool must be installed
// but no recognized package manager family exists on the host.
var ErrUnsupportedPackageManager = errors.New("no supported package manager found")

// dockerInstallScript is the vendor convenience installer, used when the
// docker binary is absent.
const dockerInstallScript = "curl -fsSL https://get.docker.com | sh"

// PackageInstaller installs packages for one package manager family.
type PackageInstaller interface {
	// Install installs a single package, idempotently from the caller's
	// perspective (the caller only invokes it for missing tools).
	Install(ctx context.Context, pkg string) error

	// SSHClientPackage names the secure-shell client package for this
	// family. Some families ship a client-only package, others bundle
	// client and server.
	SSHClientPackage() string
}

// aptInstaller covers apt-like hosts. It refreshes the package index
// once before the first install and keeps installs non-interactive.
type aptInstaller struct {
	runner  Runner
	updated bool
}

func (a *aptInstaller) Install(ctx context.Context, pkg string) error {
	if !a.updated {
		if err := a.runner.Run(ctx, Command{Name: "apt-get", Args: []string{"update"}}); err != nil {
			return fmt.Errorf("apt-get update failed: %w", err)
		}
		a.updated = true
	}
	return a.runner.Run(ctx, Command{
		Name: "apt-get",
		Args: []string{"install", "-y", pkg},
		Env:  []string{"DEBIAN_FRONTEND=noninteractive"},
	})
}

func (a *aptInstaller) SSHClientPackage() string { return "openssh-client" }

// flagInstaller covers the families whose install is a single
// command with fixed arguments.
type flagInstaller struct {
	runner Runner
	name   string
	args   []string
	sshPkg string
}

func (f *flagInstaller) Install(ctx context.Context, pkg string) error {
	return f.runner.Run(ctx, Command{Name: f.name, Args: append(append([]string{}, f.args...), pkg)})
}

func (f *flagInstaller) SSHClientPackage() string { return f.sshPkg }

// installerFor selects the installer variant for a detected family.
func installerFor(pm PackageManager, runner Runner) (PackageInstaller, error) {
	switch pm {
	case PkgApt:
		return &aptInstaller{runner: runner}, nil
	case PkgDnf:
		return &flagInstaller{runner: runner, name: "dnf", args: []string{"install", "-y"}, sshPkg: "openssh"}, nil
	case PkgYum:
		return &flagInstaller{runner: runner, name: "yum", args: []string{"install", "-y"}, sshPkg: "openssh"}, nil
	case PkgApk:
		return &flagInstaller{runner: runner, name: "apk", args: []string{"add", "--no-cache"}, sshPkg: "openssh-client"}, nil
	case PkgPacman:
		return &flagInstaller{runner: runner, name: "pacman", args: []string{"-S", "--noconfirm"}, sshPkg: "openssh"}, nil
	case PkgZypper:
		return &flagInstaller{runner: runner, name: "zypper", args: []string{"install", "-y"}, sshPkg: "openssh"}, nil
	default:
		return nil, ErrUnsupportedPackageManager
	}
}

// Installer idempotently ensures the external tools RunClawd depends on.
type Installer struct {
	runner Runner
	has    func(string) bool
	detect func() PackageManager
}

// NewInstaller creates an installer using the real probe.
func NewInstaller(runner Runner) *Installer {
	return &Installer{
		runner: runner,
		has:    HasCommand,
		detect: DetectPackageManager,
	}
}

// EnsureDependencies installs curl, git, the ssh client, and docker if
// any of them are missing. Already-present tools are never touched, so
// re-running is safe.
func (i *Installer) EnsureDependencies(ctx context.Context) error {
	logger := log.WithComponent("deps")

	// binary on PATH -> package to install; ssh resolves per family.
	tools := []struct {
		binary string
		pkg    string
		sshPkg bool
	}{
		{binary: "curl", pkg: "curl"},
		{binary: "git", pkg: "git"},
		{binary: "ssh", sshPkg: true},
	}

	var installer PackageInstaller
	for _, tool := range tools {
		if i.has(tool.binary) {
			logger.Debug().Str("tool", tool.binary).Msg("already installed")
			continue
		}

		if installer == nil {
			var err error
			installer, err = installerFor(i.detect(), i.runner)
			if err != nil {
				return fmt.Errorf("cannot install %s: %w", tool.binary, err)
			}
		}

		pkg := tool.pkg
		if tool.sshPkg {
			pkg = installer.SSHClientPackage()
		}
		logger.Info().Str("tool", tool.binary).Str("package", pkg).Msg("installing")
		if err := installer.Install(ctx, pkg); err != nil {
			return fmt.Errorf("failed to install %s: %w", pkg, err)
		}
	}

	return i.ensureDocker(ctx)
}

// ensureDocker installs the container runtime via the vendor's install
// script. No-op when docker is already present.
func (i *Installer) ensureDocker(ctx context.Context) error {
	logger := log.WithComponent("deps")

	if i.has("docker") {
		logger.Debug().Msg("docker already installed")
		return nil
	}

	logger.Info().Msg("installing docker via vendor script")
	if err := i.runner.Run(ctx, Command{Name: "sh", Args: []string{"-c", dockerInstallScript}}); err != nil {
		return fmt.Errorf("failed to install docker: %w", err)
	}
	return nil
}
