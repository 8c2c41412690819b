package util

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CmdSpec describes a short-lived subprocess whose output is collected
// synchronously, such as an ffprobe query.
type CmdSpec struct {
	Path string   // binary path
	Args []string // arguments

	CaptureStdout bool         // buffer stdout into CmdResult
	StderrLine    func(string) // called per stderr line when non-nil
}

// CmdResult carries the captured output and exit status.
type CmdResult struct {
	Stdout []byte
	Stderr []byte
	Code   int
	Err    error
}

// CmdRunner abstracts subprocess execution so callers can substitute fakes
// in tests.
type CmdRunner interface {
	Run(ctx context.Context, spec CmdSpec) (CmdResult, error)
}

type defaultRunner struct{}

// NewDefaultRunner returns a runner backed by os/exec.
func NewDefaultRunner() CmdRunner {
	return defaultRunner{}
}

func (defaultRunner) Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	return Run(ctx, spec)
}

// Run executes the command and blocks until it exits. Stderr is always
// captured; a non-zero exit populates Code and returns an error alongside
// the buffers.
func Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	if spec.CaptureStdout {
		cmd.Stdout = &stdoutBuf
	}

	if spec.StderrLine == nil {
		cmd.Stderr = &stderrBuf
		if err := cmd.Start(); err != nil {
			return CmdResult{Code: -1, Err: err}, err
		}
	} else {
		pipe, err := cmd.StderrPipe()
		if err != nil {
			return CmdResult{Code: -1, Err: err}, err
		}
		if err := cmd.Start(); err != nil {
			return CmdResult{Code: -1, Err: err}, err
		}
		sc := bufio.NewScanner(pipe)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := sc.Text()
			spec.StderrLine(line)
			stderrBuf.WriteString(line)
			stderrBuf.WriteByte('\n')
		}
	}

	waitErr := cmd.Wait()

	code := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}

	res := CmdResult{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.Bytes(),
		Code:   code,
		Err:    waitErr,
	}
	if waitErr != nil {
		return res, fmt.Errorf("command failed (exit %d): %w", code, waitErr)
	}
	return res, nil
}

// ShellJoin returns a printable shell-like command string for logging.
func ShellJoin(path string, args []string) string {
	b := &strings.Builder{}
	b.WriteString(quote(path))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(quote(a))
	}
	return b.String()
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n\"'\\$`(){}[]*&;|<>?!") {
		return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
	}
	return s
}
