package responsive

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/unity-responsive/internal/buildpath"
	"github.com/provide-io/unity-responsive/pkg/logging"
)

// Options configures one conversion run.
type Options struct {
	// Path is the build directory, relative or absolute.
	Path string
	// Config is the product metadata; it must pass Validate.
	Config BuildConfig
	// Runner performs decompression. Nil disables the decompression phase.
	Runner CommandRunner
	// DryRun skips decompression and stops after rendering, so the build
	// directory is only read.
	DryRun bool
	Logger hclog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Summary describes a finished run.
type Summary struct {
	RunID      string
	BuildPath  string
	BackupDir  string
	Extensions FileExtensionState
	Decompress DecompressReport
	Backups    []string
	Written    []string
	Page       Page
	DryRun     bool
}

// Process converts the build directory at opts.Path. Every check runs before
// the first write: a missing file or a template failure leaves index.html and
// style.css untouched.
func Process(opts Options) (*Summary, error) {
	logger := logging.OrNull(opts.Logger)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cfg := opts.Config

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := cfg.Codec()
	if err != nil {
		return nil, err
	}

	layout, err := buildpath.Resolve(opts.Path, cfg.ProductName)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:     uuid.NewString(),
		BuildPath: layout.Root(),
		BackupDir: layout.Backup(),
		DryRun:    opts.DryRun,
	}
	logger = logger.With("run_id", summary.RunID)
	logger.Info("🚀 Processing Unity build", "path", layout.Root())

	// Phase 1: settle asset variants and check everything.
	runner := opts.Runner
	if opts.DryRun {
		runner = nil
	}
	summary.Decompress = DecompressAssets(layout, c, runner, logger.Named("decompress"))

	logger.Info("🔍 Detecting file extensions...")
	detected := DetectExtensions(layout, c)
	logger.Debug("Detected extensions", "extensions", detected.String())
	summary.Extensions = ResolveExtensions(layout, detected)
	logger.Info("✅ Resolved extensions", "extensions", summary.Extensions.String())

	logger.Info("📋 Checking required files...")
	if err := ValidateBuild(layout, summary.Extensions); err != nil {
		logger.Error("❌ Build is incomplete", "error", err)
		return nil, err
	}
	logger.Info("✅ All required files found")

	page, err := Render(summary.Extensions, cfg)
	if err != nil {
		return nil, err
	}
	summary.Page = page

	if opts.DryRun {
		logger.Info("🧪 Dry run: leaving index.html and style.css untouched")
		return summary, nil
	}

	// Phase 2: mutate.
	logger.Info("💾 Creating backups...")
	summary.Backups, err = CreateBackups(layout, BackupRun{
		RunID:     summary.RunID,
		Timestamp: now(),
		Config:    cfg,
		State:     summary.Extensions,
	}, logger.Named("backup"))
	if err != nil {
		return nil, err
	}

	logger.Info("📝 Writing responsive files...")
	summary.Written, err = WritePage(layout, page, logger.Named("writer"))
	if err != nil {
		return nil, fmt.Errorf("%w; originals are in %s", err, layout.Backup())
	}

	logger.Info("🎉 Unity build successfully converted to responsive!")
	return summary, nil
}
