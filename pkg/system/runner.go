package system

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command describes one external invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory; empty means the process cwd.
	Dir string

	// Env entries are appended to the inherited environment.
	Env []string

	// Stdin, when non-empty, is fed to the process on standard input.
	Stdin string
}

// Runner executes external commands. All stack, git, docker and crontab
// interactions go through this interface so they can be faked in tests.
type Runner interface {
	// Run executes the command, streaming its output to the operator.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and returns its captured stdout.
	Output(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns the default runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) build(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	if cmd.Stdin != "" {
		c.Stdin = strings.NewReader(cmd.Stdin)
	}
	return c
}

// Run executes the command with stdout and stderr attached to the
// process streams.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := r.build(ctx, cmd)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}

// Output executes the command and captures stdout. On failure the
// captured stderr is folded into the returned error.
func (r *ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c := r.build(ctx, cmd)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return stdout.String(), fmt.Errorf("%s: %w: %s", cmd.Name, err, msg)
		}
		return stdout.String(), fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return stdout.String(), nil
}
