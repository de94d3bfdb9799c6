package system

import (
	"context"
	"fmt"
	"strings"
)

// fakeRunner records every invocation and serves canned responses keyed
// by the joined command line.
type fakeRunner struct {
	calls   []Command
	outputs map[string]string
	fail    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]string),
		fail:    make(map[string]error),
	}
}

func key(cmd Command) string {
	return strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
}

func (f *fakeRunner) Run(ctx context.Context, cmd Command) error {
	f.calls = append(f.calls, cmd)
	if err, ok := f.fail[key(cmd)]; ok {
		return err
	}
	return nil
}

func (f *fakeRunner) Output(ctx context.Context, cmd Command) (string, error) {
	f.calls = append(f.calls, cmd)
	if err, ok := f.fail[key(cmd)]; ok {
		return "", err
	}
	return f.outputs[key(cmd)], nil
}

func (f *fakeRunner) commandLines() []string {
	lines := make([]string, len(f.calls))
	for i, c := range f.calls {
		lines[i] = key(c)
	}
	return lines
}

var _ Runner = (*fakeRunner)(nil)

// errExit is a stand-in for a nonzero exit.
var errExit = fmt.Errorf("exit status 1")
