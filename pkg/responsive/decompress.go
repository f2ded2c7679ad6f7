package responsive

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/unity-responsive/internal/buildpath"
	"github.com/provide-io/unity-responsive/pkg/codec"
	"github.com/provide-io/unity-responsive/pkg/logging"
	rerrors "github.com/provide-io/unity-responsive/pkg/responsive/errors"
)

// DecompressReport summarizes the decompression phase.
type DecompressReport struct {
	Runner        string
	ToolAvailable bool
	Decompressed  []Asset
	Skipped       []Asset
	Failed        map[Asset]error
}

// DecompressAssets turns compressed-only assets into uncompressed ones.
// Nothing here is fatal: an unavailable runner skips the phase and a failed
// file is recorded in the report while the others proceed. A nil runner
// disables the phase.
func DecompressAssets(l buildpath.Layout, c codec.Codec, runner CommandRunner, logger hclog.Logger) DecompressReport {
	logger = logging.OrNull(logger)
	report := DecompressReport{Failed: make(map[Asset]error)}

	if runner == nil {
		logger.Info("⏭️ Decompression disabled")
		return report
	}
	report.Runner = runner.Name()

	if !runner.IsAvailable() {
		logger.Warn(fmt.Sprintf("⚠️ '%s' command not found. Skipping decompression.", runner.Name()),
			"hint", "install it with your package manager or pass --decompressor builtin",
			"error", rerrors.ErrDecompressorUnavailable)
		return report
	}
	report.ToolAvailable = true

	logger.Info("🔓 Checking for compressed files...")
	for _, a := range Assets {
		compressed := a.File(l, c.Suffix())
		uncompressed := a.File(l, "")

		if !l.Exists(compressed) {
			continue
		}
		if l.Exists(uncompressed) {
			report.Skipped = append(report.Skipped, a)
			logger.Info("⏭️ Uncompressed file already exists, skipping", "file", uncompressed, "compressed", compressed)
			continue
		}

		logger.Info("📦 Decompressing", "file", compressed)
		res := runner.Run(c.ToolArgs(l.Path(compressed))...)
		if !res.OK() {
			err := res.Err
			if err == nil {
				err = fmt.Errorf("exit code %d", res.ExitCode)
			}
			err = fmt.Errorf("%w: %s: %v", rerrors.ErrDecompressionFailed, compressed, err)
			report.Failed[a] = err
			logger.Error("❌ Failed to decompress", "file", compressed, "error", err, "output", res.Output)
			continue
		}
		report.Decompressed = append(report.Decompressed, a)
	}

	switch {
	case len(report.Decompressed) > 0:
		logger.Info(fmt.Sprintf("✅ Decompressed %d file(s)", len(report.Decompressed)))
	case len(report.Skipped) > 0:
		logger.Info(fmt.Sprintf("ℹ️ All files already decompressed (%d skipped)", len(report.Skipped)))
	case len(report.Failed) == 0:
		logger.Info(fmt.Sprintf("ℹ️ No %s files found or already decompressed", c.Suffix()))
	}

	return report
}
