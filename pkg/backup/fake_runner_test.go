package backup

import (
	"context"
	"fmt"
	"strings"

	"github.com/RunClawd/runclawd/pkg/log"
	"github.com/RunClawd/runclawd/pkg/system"
)

func init() {
	log.Init(log.Config{Level: log.ErrorLevel})
}

// fakeRunner records every invocation and serves canned responses keyed
// by the joined command line.
type fakeRunner struct {
	calls   []system.Command
	outputs map[string]string
	fail    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]string),
		fail:    make(map[string]error),
	}
}

func key(cmd system.Command) string {
	return strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
}

func (f *fakeRunner) Run(ctx context.Context, cmd system.Command) error {
	f.calls = append(f.calls, cmd)
	if err, ok := f.fail[key(cmd)]; ok {
		return err
	}
	return nil
}

func (f *fakeRunner) Output(ctx context.Context, cmd system.Command) (string, error) {
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

var _ system.Runner = (*fakeRunner)(nil)

var errExit = fmt.Errorf("exit status 1")
