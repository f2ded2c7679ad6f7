// Package errors holds the sentinel errors and exit codes shared by the
// responsive conversion pipeline and its CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes returned by the CLI.
const (
	ExitOK      = 0
	ExitFailure = 1
)

var (
	// Input errors 📁
	ErrBuildDirNotFound    = errors.New("❌ build directory does not exist")
	ErrMissingRequiredFile = errors.New("❌ required file not found")
	ErrInvalidConfig       = errors.New("❌ invalid build configuration")

	// Decompression errors 🔓
	ErrDecompressorUnavailable = errors.New("⚠️ decompressor not available")
	ErrDecompressionFailed     = errors.New("❌ decompression failed")
	ErrUnknownCodec            = errors.New("❌ unknown compression format")
)

// MissingFilesError lists every required file absent from a build directory.
// Paths are relative to the build directory.
type MissingFilesError struct {
	Files []string
}

func (e *MissingFilesError) Error() string {
	if len(e.Files) == 1 {
		return fmt.Sprintf("%v: %s", ErrMissingRequiredFile, e.Files[0])
	}
	return fmt.Sprintf("%v: %s", ErrMissingRequiredFile, strings.Join(e.Files, ", "))
}

func (e *MissingFilesError) Unwrap() error {
	return ErrMissingRequiredFile
}
