package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/provide-io/unity-responsive/pkg/logging"
	"github.com/provide-io/unity-responsive/pkg/responsive"
	rerrors "github.com/provide-io/unity-responsive/pkg/responsive/errors"
)

const version = "1.0.0"

type cliOptions struct {
	configPath   string
	decompressor string
	tool         string
	logLevel     string
	dryRun       bool
	versionFlag  bool
}

func getBuildTimestamp() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}
	defaults := responsive.DefaultBuildConfig()

	cmd := &cobra.Command{
		Use:           "unity-responsive [path-to-unity-build]",
		Short:         "Convert a Unity web build into a responsive portrait page",
		Long:          helpText(defaults),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.versionFlag {
				fmt.Fprintf(stdout, "unity-responsive %s\n", version)
				fmt.Fprintf(stdout, "Built: %s\n", getBuildTimestamp())
				return nil
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return run(opts, args[0], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML file overriding the built-in product settings")
	cmd.Flags().StringVar(&opts.decompressor, "decompressor", "", "How to decompress payload files: external, builtin or none (default external)")
	cmd.Flags().StringVar(&opts.tool, "tool", "", "External decompression binary (defaults to the format's tool, e.g. brotli)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error; json:<level> for JSON)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate and render without changing any file")
	cmd.Flags().BoolVarP(&opts.versionFlag, "version", "V", false, "Show version information")

	return cmd
}

func run(opts *cliOptions, path string, stdout, stderr io.Writer) error {
	env, err := responsive.LoadEnv(".env")
	if err != nil {
		return err
	}

	configPath := firstNonEmpty(opts.configPath, env.ConfigPath)
	cfg, err := responsive.LoadBuildConfig(configPath)
	if err != nil {
		return err
	}

	logger := logging.NewLogger("unity-responsive", logging.Options{
		Level:  firstNonEmpty(opts.logLevel, env.LogLevel),
		JSON:   env.JSONLog,
		Path:   env.LogPath,
		Output: stderr,
	})
	logger.Debug("Configuration loaded", "config", configPath, "product", cfg.ProductName, "compression", cfg.Compression)

	runner, err := newRunner(firstNonEmpty(opts.decompressor, env.Decompressor), firstNonEmpty(opts.tool, env.Tool), cfg, logger)
	if err != nil {
		return err
	}

	summary, err := responsive.Process(responsive.Options{
		Path:   path,
		Config: cfg,
		Runner: runner,
		DryRun: opts.dryRun,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	printSummary(stdout, summary, cfg)
	return nil
}

// newRunner picks the decompression backend; a nil runner disables decompression.
func newRunner(mode, tool string, cfg responsive.BuildConfig, logger hclog.Logger) (responsive.CommandRunner, error) {
	logger = logging.OrNull(logger)
	c, err := cfg.Codec()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(mode) {
	case "", responsive.DecompressorExternal:
		if tool == "" {
			tool = c.Tool()
		}
		return responsive.NewExecRunner(tool, logger.Named("exec")), nil
	case responsive.DecompressorBuiltin:
		return responsive.NewBuiltinRunner(c, logger.Named("builtin")), nil
	case responsive.DecompressorNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown decompressor %q (want external, builtin or none)", rerrors.ErrInvalidConfig, mode)
	}
}

func printSummary(w io.Writer, s *responsive.Summary, cfg responsive.BuildConfig) {
	if s.DryRun {
		fmt.Fprintln(w, "🧪 Dry run complete, no files changed")
		fmt.Fprintf(w, "📄 index.html would be %d bytes, style.css %d bytes\n", len(s.Page.HTML), len(s.Page.CSS))
	} else {
		fmt.Fprintln(w, "🎉 Unity build successfully converted to responsive!")
	}
	fmt.Fprintf(w, "📱 Resolution: %dx%d\n", cfg.Resolution.Width, cfg.Resolution.Height)
	fmt.Fprintf(w, "🎮 Game: %s\n", cfg.GameTitle)
	fmt.Fprintf(w, "📁 Build path: %s\n", s.BuildPath)
	fmt.Fprintf(w, "🔍 Assets: %s\n", s.Extensions)
	if !s.DryRun {
		fmt.Fprintf(w, "💾 Backups saved in: %s\n", s.BackupDir)
	}
}

func helpText(cfg responsive.BuildConfig) string {
	product := cfg.ProductName
	return fmt.Sprintf(`🎮 Unity Web Build Responsive Converter

Converts a Unity web build into a responsive page for portrait orientation
at %dx%d.

Examples:
  unity-responsive .
  unity-responsive ./my-unity-build
  unity-responsive --decompressor builtin /path/to/unity/build

Features:
  ✅ Responsive scaling for any screen size
  ✅ Portrait orientation optimization
  ✅ Automatic canvas centering
  ✅ Backups of the original index.html and style.css
  ✅ Detection of compressed payload files (.br, .gz)
  ✅ Decompression with the brotli/gzip tools or in-process

Required files in the build directory:
  - index.html
  - TemplateData/style.css
  - Build/%[3]s.loader.js
  - Build/%[3]s.data (or .data.br)
  - Build/%[3]s.framework.js (or .framework.js.br)
  - Build/%[3]s.wasm (or .wasm.br)

Environment:
  RESPONSIVE_LOG_LEVEL, RESPONSIVE_JSON_LOG, RESPONSIVE_LOG_PATH,
  RESPONSIVE_DECOMPRESSOR, RESPONSIVE_TOOL, RESPONSIVE_CONFIG
  (also read from ./.env)`, cfg.Resolution.Width, cfg.Resolution.Height, product)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(rerrors.ExitFailure)
	}
}
