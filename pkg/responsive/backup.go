package responsive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/unity-responsive/internal/buildpath"
	"github.com/provide-io/unity-responsive/pkg/logging"
)

// backedUpFiles are the files the writer overwrites, relative to the build directory.
var backedUpFiles = []string{buildpath.IndexFile, buildpath.StyleFile}

// BackupRun identifies the run a backup belongs to.
type BackupRun struct {
	RunID     string
	Timestamp time.Time
	Config    BuildConfig
	State     FileExtensionState
}

// CreateBackups copies the entry page and stylesheet into the backup
// directory, creating it if needed, and records a run marker. Existing
// backups are replaced.
func CreateBackups(l buildpath.Layout, run BackupRun, logger hclog.Logger) ([]string, error) {
	logger = logging.OrNull(logger)

	if err := os.MkdirAll(l.Backup(), buildpath.DirPerms); err != nil {
		return nil, fmt.Errorf("creating backup directory: %w", err)
	}

	checksums := make(map[string]string, len(backedUpFiles))
	var written []string
	for _, rel := range backedUpFiles {
		dst := l.BackupOf(rel)
		if err := copyFile(l.Path(rel), dst); err != nil {
			return written, fmt.Errorf("backing up %s: %w", rel, err)
		}
		written = append(written, dst)

		sum, err := buildpath.FileChecksum(dst)
		if err != nil {
			return written, fmt.Errorf("hashing backup of %s: %w", rel, err)
		}
		checksums[rel] = sum
		logger.Debug("💾 Backed up", "file", rel, "backup", dst, "sha256", sum)
	}

	marker := buildpath.RunMarker{
		RunID:          run.RunID,
		Timestamp:      run.Timestamp.UTC(),
		ProductName:    run.Config.ProductName,
		ProductVersion: run.Config.ProductVersion,
		Extensions:     run.State.Map(),
		Checksums:      checksums,
	}
	if err := buildpath.WriteMarker(l, marker); err != nil {
		return written, fmt.Errorf("writing run marker: %w", err)
	}

	logger.Info("✅ Backups created", "dir", l.Backup())
	return written, nil
}

// RestoreBackup copies the backup of rel back over the original.
func RestoreBackup(l buildpath.Layout, rel string) error {
	return copyFile(l.BackupOf(rel), l.Path(rel))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), buildpath.DirPerms); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
