package responsive

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/unity-responsive/pkg/codec"
	"github.com/provide-io/unity-responsive/pkg/logging"
	rerrors "github.com/provide-io/unity-responsive/pkg/responsive/errors"
)

// Result is the outcome of one CommandRunner invocation.
type Result struct {
	ExitCode int
	Output   string
	Err      error
}

// OK reports whether the command succeeded.
func (r Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// CommandRunner runs a decompression command. Implementations decide how
// "-d <path>" style arguments are carried out.
type CommandRunner interface {
	// Name identifies the runner in logs
	Name() string

	// IsAvailable reports whether Run can be attempted at all
	IsAvailable() bool

	// Run executes the command with args
	Run(args ...string) Result
}

// ExecRunner invokes an external binary found on PATH.
type ExecRunner struct {
	tool   string
	logger hclog.Logger
}

// NewExecRunner creates a runner for the external tool.
func NewExecRunner(tool string, logger hclog.Logger) *ExecRunner {
	return &ExecRunner{tool: tool, logger: logging.OrNull(logger)}
}

func (r *ExecRunner) Name() string {
	return r.tool
}

// IsAvailable looks the tool up on PATH.
func (r *ExecRunner) IsAvailable() bool {
	path, err := exec.LookPath(r.tool)
	if err != nil {
		r.logger.Debug("🔍 Tool not found on PATH", "tool", r.tool, "error", err)
		return false
	}
	r.logger.Debug("🔍 Tool found", "tool", r.tool, "path", path)
	return true
}

// Run spawns the tool and waits for it to exit.
func (r *ExecRunner) Run(args ...string) Result {
	cmd := exec.Command(r.tool, args...)
	r.logger.Debug("🚀 Running command", "tool", r.tool, "args", args)

	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.logger.Debug("⏹️ Process exited", "code", exitErr.ExitCode(), "output", output)
			return Result{
				ExitCode: exitErr.ExitCode(),
				Output:   output,
				Err:      fmt.Errorf("%s exited with code %d", r.tool, exitErr.ExitCode()),
			}
		}
		return Result{ExitCode: -1, Output: output, Err: fmt.Errorf("process error: %w", err)}
	}

	return Result{Output: output}
}

// BuiltinRunner decompresses in-process with a codec, accepting the same
// "-d [flags] <path>" arguments as the external tools. It is always available.
type BuiltinRunner struct {
	codec  codec.Codec
	logger hclog.Logger
}

// NewBuiltinRunner creates a runner backed by c.
func NewBuiltinRunner(c codec.Codec, logger hclog.Logger) *BuiltinRunner {
	return &BuiltinRunner{codec: c, logger: logging.OrNull(logger)}
}

func (r *BuiltinRunner) Name() string {
	return "builtin-" + r.codec.Name()
}

func (r *BuiltinRunner) IsAvailable() bool {
	return true
}

// Run decodes the last argument when "-d" is present.
func (r *BuiltinRunner) Run(args ...string) Result {
	decompress := false
	var path string
	for _, arg := range args {
		switch {
		case arg == "-d" || arg == "--decompress":
			decompress = true
		case strings.HasPrefix(arg, "-"):
			// -k and friends: the builtin always keeps its input
		default:
			path = arg
		}
	}

	if !decompress || path == "" {
		return Result{ExitCode: 2, Err: fmt.Errorf("%s: usage: -d <path>", r.Name())}
	}

	target, err := codec.DecompressFile(r.codec, path)
	if err != nil {
		return Result{ExitCode: 1, Err: fmt.Errorf("%w: %v", rerrors.ErrDecompressionFailed, err)}
	}
	r.logger.Debug("📦 Decompressed in-process", "source", path, "target", target)
	return Result{}
}
