package ytdlp

import (
	"context"

	goytdlp "github.com/lrstanley/go-ytdlp"
)

// DefaultBinary is the executable looked up on PATH when none is configured
const DefaultBinary = "yt-dlp"

// Result holds the captured outcome of one yt-dlp invocation
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success returns true if the process exited with status 0
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Invocation is a prepared yt-dlp command and the positional arguments it runs against
type Invocation struct {
	Command *goytdlp.Command
	Args    []string
}

// Runner spawns the external tool and waits for it to exit.
// A launch failure is returned as an error with a nil Result; a non-zero
// exit is a Result with ExitCode != 0 and a nil error.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (*Result, error)
}

// ExecRunner runs invocations through go-ytdlp
type ExecRunner struct {
	// Binary is the executable name or path, DefaultBinary when empty
	Binary string
}

// NewExecRunner creates a runner for the given binary
func NewExecRunner(binary string) *ExecRunner {
	return &ExecRunner{Binary: binary}
}

// Run executes the invocation with the configured binary and captures its output
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (*Result, error) {
	cmd := inv.Command
	if cmd == nil {
		cmd = goytdlp.New()
	}

	res, err := cmd.SetExecutable(r.binary()).Run(ctx, inv.Args...)
	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		return nil, ctxErr
	}

	// go-ytdlp reports a non-zero exit as an error alongside the result
	if res != nil && res.ExitCode != 0 {
		return &Result{
			ExitCode: res.ExitCode,
			Stdout:   []byte(res.Stdout),
			Stderr:   []byte(res.Stderr),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &Result{Stdout: []byte(res.Stdout), Stderr: []byte(res.Stderr)}, nil
}

// binary returns the configured executable
func (r *ExecRunner) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}
