package responsive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/unity-responsive/internal/buildpath"
)

const (
	originalHTML = "<html><body>unity default template</body></html>\n"
	originalCSS  = "body { background: #231F20; }\n"
)

func testConfig() BuildConfig {
	cfg := DefaultBuildConfig()
	cfg.ProductName = "Game"
	return cfg
}

func testLogger(t *testing.T) hclog.Logger {
	t.Helper()
	return hclog.New(&hclog.LoggerOptions{
		Name:   t.Name(),
		Level:  hclog.Trace,
		Output: testWriter{t},
	})
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// writeBuild creates a build directory holding index.html, style.css, the
// loader and the given payload files (relative to Build/, product-prefixed).
func writeBuild(t *testing.T, product string, payload ...string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), originalHTML)
	writeFile(t, filepath.Join(dir, "TemplateData", "style.css"), originalCSS)
	writeFile(t, filepath.Join(dir, "Build", product+".loader.js"), "// loader")
	for _, name := range payload {
		writeFile(t, filepath.Join(dir, "Build", product+name), "payload "+name)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func layoutFor(t *testing.T, dir, product string) buildpath.Layout {
	t.Helper()
	l, err := buildpath.Resolve(dir, product)
	require.NoError(t, err)
	return l
}

// fakeRunner stands in for the external decompression tool. On success it
// writes the suffix-stripped sibling of the last argument, like brotli -d.
type fakeRunner struct {
	available bool
	fail      map[string]bool
	calls     [][]string
}

func (f *fakeRunner) Name() string { return "fake" }

func (f *fakeRunner) IsAvailable() bool { return f.available }

func (f *fakeRunner) Run(args ...string) Result {
	f.calls = append(f.calls, args)
	path := args[len(args)-1]
	if f.fail[filepath.Base(path)] {
		return Result{ExitCode: 1, Output: "corrupt input", Err: fmt.Errorf("exit code 1")}
	}
	target := strings.TrimSuffix(path, filepath.Ext(path))
	if err := os.WriteFile(target, []byte("decompressed"), 0o644); err != nil {
		return Result{ExitCode: 1, Err: err}
	}
	return Result{}
}
