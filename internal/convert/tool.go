package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/samcharles93/quantconv/internal/logger"
)

// Tool runs an external conversion command as
//
//	<Command> [Args...] <src> <out> --quant <quant>
//
// and reports its exit status and combined output.
type Tool struct {
	Command string
	Args    []string
	// Env is appended to the current environment.
	Env []string
	// Dir is the working directory. Empty means the current one.
	Dir string
}

// ToolError is returned when the external command cannot be started or exits
// with a non-zero status.
type ToolError struct {
	Tool   string
	Args   []string
	Code   int
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\nOutput: " + out
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

func (t Tool) Name() string {
	return filepath.Base(t.Command)
}

// CommandArgs returns the argument list passed to the tool for req.
func (t Tool) CommandArgs(req Request) []string {
	args := make([]string, 0, len(t.Args)+4)
	args = append(args, t.Args...)
	return append(args, req.Src, req.Out, "--quant", req.Quant)
}

func (t Tool) Convert(ctx context.Context, req Request) (Result, error) {
	log := logger.FromContext(ctx).With("tool", t.Command)

	if strings.TrimSpace(t.Command) == "" {
		return Result{}, errors.New("convert: tool command is empty")
	}

	args := t.CommandArgs(req)
	cmd := exec.CommandContext(ctx, t.Command, args...)
	cmd.Dir = t.Dir
	if len(t.Env) > 0 {
		cmd.Env = append(os.Environ(), t.Env...)
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	log.Debug("starting converter", "args", args)
	start := time.Now()
	err := cmd.Run()
	log.Debug("converter finished", "elapsed", time.Since(start), "err", err)

	if err != nil {
		code := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			code = exitErr.ExitCode()
		}
		return Result{}, &ToolError{
			Tool:   t.Command,
			Args:   args,
			Code:   code,
			Output: out.String(),
			Err:    err,
		}
	}

	res := resultFor(req, t.Name())
	res.Artifact = req.Out
	res.Output = out.String()
	return res, nil
}
