package responsive

import (
	"github.com/provide-io/unity-responsive/internal/buildpath"
	rerrors "github.com/provide-io/unity-responsive/pkg/responsive/errors"
)

// RequiredFiles lists, relative to the build directory, every file that must
// exist before anything is written: the entry page, its stylesheet, the
// loader, and each asset in its resolved variant.
func RequiredFiles(l buildpath.Layout, state FileExtensionState) []string {
	files := []string{buildpath.IndexFile, buildpath.StyleFile, l.Loader()}
	for _, a := range Assets {
		files = append(files, a.File(l, state.Get(a)))
	}
	return files
}

// ValidateBuild checks every required file and reports all missing ones in
// a single *errors.MissingFilesError.
func ValidateBuild(l buildpath.Layout, state FileExtensionState) error {
	var missing []string
	for _, rel := range RequiredFiles(l, state) {
		if !l.Exists(rel) {
			missing = append(missing, rel)
		}
	}
	if len(missing) > 0 {
		return &rerrors.MissingFilesError{Files: missing}
	}
	return nil
}
