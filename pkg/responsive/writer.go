package responsive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/unity-responsive/internal/buildpath"
	"github.com/provide-io/unity-responsive/pkg/logging"
)

// WritePage overwrites the entry page and then the stylesheet. Each file is
// replaced through a rename so readers never see a partial file. The pair is
// not atomic: if the stylesheet fails, the entry page is restored from its
// backup and the stylesheet error is returned.
func WritePage(l buildpath.Layout, page Page, logger hclog.Logger) ([]string, error) {
	logger = logging.OrNull(logger)

	if err := replaceFile(l.Index(), []byte(page.HTML)); err != nil {
		return nil, fmt.Errorf("writing %s: %w", buildpath.IndexFile, err)
	}
	logger.Info("✅ index.html updated")

	if err := replaceFile(l.Style(), []byte(page.CSS)); err != nil {
		writeErr := fmt.Errorf("writing %s: %w", buildpath.StyleFile, err)
		if rerr := RestoreBackup(l, buildpath.IndexFile); rerr != nil {
			logger.Error("❌ Failed to restore index.html from backup", "error", rerr, "backup", l.BackupOf(buildpath.IndexFile))
			return nil, fmt.Errorf("%w (restoring index.html: %v)", writeErr, rerr)
		}
		logger.Warn("↩️ Restored index.html from backup after stylesheet failure")
		return nil, writeErr
	}
	logger.Info("✅ style.css updated")

	return []string{l.Index(), l.Style()}, nil
}

// replaceFile writes data to a temporary sibling of path and renames it over
// path, keeping path's permissions when it already exists.
func replaceFile(path string, data []byte) error {
	mode := os.FileMode(buildpath.GeneratedPerms)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
