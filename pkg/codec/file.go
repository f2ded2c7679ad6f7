package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DecompressFile decodes path into its sibling with the codec suffix removed
// and returns the sibling's path. The compressed source is left in place. The
// output is staged in a temporary file so a failed decode never leaves a
// truncated payload behind.
func DecompressFile(c Codec, path string) (string, error) {
	if !strings.HasSuffix(path, c.Suffix()) {
		return "", fmt.Errorf("%s does not end in %s", filepath.Base(path), c.Suffix())
	}
	target := strings.TrimSuffix(path, c.Suffix())

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := c.Decompress(src, tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if info, err := src.Stat(); err == nil {
		_ = os.Chmod(tmpPath, info.Mode().Perm())
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return "", fmt.Errorf("renaming into place: %w", err)
	}
	return target, nil
}
