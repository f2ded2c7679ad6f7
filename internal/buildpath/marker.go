package buildpath

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// RunMarker records the last conversion run next to its backups.
type RunMarker struct {
	RunID          string            `json:"run_id"`
	Timestamp      time.Time         `json:"timestamp"`
	ProductName    string            `json:"product_name"`
	ProductVersion string            `json:"product_version"`
	Extensions     map[string]string `json:"extensions"`
	Checksums      map[string]string `json:"checksums"`
}

// WriteMarker stores marker as indented JSON at the layout's marker path.
func WriteMarker(l Layout, marker RunMarker) error {
	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.Marker(), append(data, '\n'), GeneratedPerms)
}

// ReadMarker loads the run marker, if present.
func ReadMarker(l Layout) (*RunMarker, error) {
	data, err := os.ReadFile(l.Marker())
	if err != nil {
		return nil, err
	}

	var marker RunMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", MarkerFile, err)
	}
	return &marker, nil
}

// FileChecksum returns the hex SHA-256 of the file at path.
func FileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
