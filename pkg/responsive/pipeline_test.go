package responsive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/unity-responsive/internal/buildpath"
	"github.com/provide-io/unity-responsive/pkg/codec"
	rerrors "github.com/provide-io/unity-responsive/pkg/responsive/errors"
)

func processOpts(t *testing.T, dir string, runner CommandRunner) Options {
	return Options{
		Path:   dir,
		Config: testConfig(),
		Runner: runner,
		Logger: testLogger(t),
		Now:    func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) },
	}
}

func TestProcess_UncompressedBuild(t *testing.T) {
	dir := writeBuild(t, "Game", ".data", ".framework.js", ".wasm")

	summary, err := Process(processOpts(t, dir, &fakeRunner{available: true}))
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, FileExtensionState{}, summary.Extensions)

	// Backups are byte-identical to the originals.
	assert.Equal(t, originalHTML, readFile(t, filepath.Join(dir, "backup", "index.html.backup")))
	assert.Equal(t, originalCSS, readFile(t, filepath.Join(dir, "backup", "style.css.backup")))

	assert.Equal(t, summary.Page.HTML, readFile(t, filepath.Join(dir, "index.html")))
	assert.Equal(t, summary.Page.CSS, readFile(t, filepath.Join(dir, "TemplateData", "style.css")))
	assert.Contains(t, summary.Page.HTML, `width="1080"`)
	assert.Contains(t, summary.Page.HTML, `height="2400"`)

	marker, err := buildpath.ReadMarker(layoutFor(t, dir, "Game"))
	require.NoError(t, err)
	assert.Equal(t, summary.RunID, marker.RunID)
}

func TestProcess_DecompressesCompressedOnlyAssets(t *testing.T) {
	// ./build with Build/Game.data.br only (no .data), tool present.
	dir := writeBuild(t, "Game", ".data.br", ".framework.js", ".wasm")
	runner := &fakeRunner{available: true}

	summary, err := Process(processOpts(t, dir, runner))
	require.NoError(t, err)

	assert.Len(t, runner.calls, 1)
	assert.Equal(t, "payload .data.br", readFile(t, filepath.Join(dir, "Build", "Game.data.br")))
	_, err = os.Stat(filepath.Join(dir, "Build", "Game.data"))
	assert.NoError(t, err)
	assert.Equal(t, "", summary.Extensions.Data)
	assert.Contains(t, readFile(t, filepath.Join(dir, "index.html")), `dataUrl = "Build/Game.data";`)
}

func TestProcess_AllCompressedWithBuiltinRunner(t *testing.T) {
	dir := writeBuild(t, "Game")
	br := codec.NewBrotliCodec()
	for _, name := range []string{".data", ".framework.js", ".wasm"} {
		writeCompressed(t, br, filepath.Join(dir, "Build", "Game"+name+".br"), "content"+name)
	}

	summary, err := Process(processOpts(t, dir, NewBuiltinRunner(br, testLogger(t))))
	require.NoError(t, err)

	assert.Equal(t, FileExtensionState{}, summary.Extensions)
	assert.Equal(t, "content.wasm", readFile(t, filepath.Join(dir, "Build", "Game.wasm")))
	assert.Len(t, summary.Decompress.Decompressed, 3)
}

func TestProcess_BothVariantsLeavesCompressedUntouched(t *testing.T) {
	dir := writeBuild(t, "Game", ".data.br", ".data", ".framework.js.br", ".framework.js", ".wasm.br", ".wasm")
	runner := &fakeRunner{available: true}
	before, err := os.Stat(filepath.Join(dir, "Build", "Game.wasm.br"))
	require.NoError(t, err)

	summary, err := Process(processOpts(t, dir, runner))
	require.NoError(t, err)

	assert.Empty(t, runner.calls)
	assert.Len(t, summary.Decompress.Skipped, 3)
	assert.Equal(t, FileExtensionState{}, summary.Extensions)

	after, err := os.Stat(filepath.Join(dir, "Build", "Game.wasm.br"))
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	assert.Equal(t, "payload .wasm.br", readFile(t, filepath.Join(dir, "Build", "Game.wasm.br")))
}

func TestProcess_ToolMissingFallsBackToCompressedVariant(t *testing.T) {
	dir := writeBuild(t, "Game", ".data.br", ".framework.js", ".wasm")

	summary, err := Process(processOpts(t, dir, &fakeRunner{available: false}))
	require.NoError(t, err)

	assert.False(t, summary.Decompress.ToolAvailable)
	assert.Equal(t, ".br", summary.Extensions.Data)
	assert.Contains(t, readFile(t, filepath.Join(dir, "index.html")), `dataUrl = "Build/Game.data.br";`)
}

func TestProcess_MissingRequiredFileWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		payload []string
		remove  string
	}{
		{"missing loader", []string{".data", ".framework.js", ".wasm"}, "Build/Game.loader.js"},
		{"missing wasm", []string{".data", ".framework.js"}, ""},
		{"missing stylesheet", []string{".data", ".framework.js", ".wasm"}, "TemplateData/style.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeBuild(t, "Game", tt.payload...)
			if tt.remove != "" {
				require.NoError(t, os.Remove(filepath.Join(dir, filepath.FromSlash(tt.remove))))
			}

			_, err := Process(processOpts(t, dir, &fakeRunner{available: true}))
			require.Error(t, err)
			assert.True(t, errors.Is(err, rerrors.ErrMissingRequiredFile))

			assert.Equal(t, originalHTML, readFile(t, filepath.Join(dir, "index.html")))
			if tt.remove != "TemplateData/style.css" {
				assert.Equal(t, originalCSS, readFile(t, filepath.Join(dir, "TemplateData", "style.css")))
			}
			_, statErr := os.Stat(filepath.Join(dir, "backup"))
			assert.True(t, os.IsNotExist(statErr), "no backup directory before validation passes")
		})
	}
}

func TestProcess_FailedDecompressionKeepsCompressedReference(t *testing.T) {
	dir := writeBuild(t, "Game", ".data", ".framework.js.br", ".wasm")
	runner := &fakeRunner{available: true, fail: map[string]bool{"Game.framework.js.br": true}}

	summary, err := Process(processOpts(t, dir, runner))
	require.NoError(t, err, "the compressed framework is still a valid reference")
	assert.Equal(t, ".br", summary.Extensions.Framework)
	assert.Contains(t, summary.Decompress.Failed, AssetFramework)
}

func TestProcess_Idempotent(t *testing.T) {
	dir := writeBuild(t, "Game", ".data.br", ".framework.js", ".wasm")
	opts := processOpts(t, dir, &fakeRunner{available: true})

	first, err := Process(opts)
	require.NoError(t, err)
	firstHTML := readFile(t, filepath.Join(dir, "index.html"))
	firstCSS := readFile(t, filepath.Join(dir, "TemplateData", "style.css"))

	second, err := Process(opts)
	require.NoError(t, err)

	assert.Equal(t, firstHTML, readFile(t, filepath.Join(dir, "backup", "index.html.backup")))
	assert.Equal(t, firstCSS, readFile(t, filepath.Join(dir, "backup", "style.css.backup")))
	assert.Equal(t, first.Page, second.Page)
	assert.Equal(t, firstHTML, readFile(t, filepath.Join(dir, "index.html")))
	assert.Equal(t, firstCSS, readFile(t, filepath.Join(dir, "TemplateData", "style.css")))
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestProcess_DryRun(t *testing.T) {
	dir := writeBuild(t, "Game", ".data.br", ".framework.js", ".wasm")
	runner := &fakeRunner{available: true}
	opts := processOpts(t, dir, runner)
	opts.DryRun = true

	summary, err := Process(opts)
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.NotEmpty(t, summary.Page.HTML)
	assert.Empty(t, runner.calls)
	assert.Equal(t, originalHTML, readFile(t, filepath.Join(dir, "index.html")))
	_, statErr := os.Stat(filepath.Join(dir, "backup"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcess_BadInputs(t *testing.T) {
	_, err := Process(processOpts(t, filepath.Join(t.TempDir(), "missing"), nil))
	assert.True(t, errors.Is(err, rerrors.ErrBuildDirNotFound))

	opts := processOpts(t, t.TempDir(), nil)
	opts.Config.Resolution.Height = 0
	_, err = Process(opts)
	assert.True(t, errors.Is(err, rerrors.ErrInvalidConfig))
}
