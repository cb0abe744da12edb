// Package fsutil prepares the output directory a project is scaffolded into.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	mkerrors "github.com/tacogips/mkapp/internal/errors"
)

// EnsureEmptyDir makes sure dir exists and is empty, creating it (and its
// parents) when missing. An existing non-empty directory or a non-directory
// at dir is a precondition error.
func EnsureEmptyDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return mkerrors.NewPreconditionError(
				fmt.Sprintf("output path exists and is not a directory: %s", dir), nil)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return mkerrors.NewPreconditionError(
				fmt.Sprintf("failed to read output directory: %s", dir), err)
		}
		if len(entries) > 0 {
			return mkerrors.NewPreconditionError(
				fmt.Sprintf("output directory is not empty: %s", dir), nil)
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return mkerrors.NewPreconditionError(
				fmt.Sprintf("failed to create output directory: %s", dir), err)
		}
		return nil
	default:
		return mkerrors.NewPreconditionError(
			fmt.Sprintf("failed to inspect output path: %s", dir), err)
	}
}

// Preparer adapts EnsureEmptyDir to the pipeline's directory preparer.
type Preparer struct{}

// Prepare implements the pipeline's DirectoryPreparer.
func (Preparer) Prepare(dir string) error {
	return EnsureEmptyDir(dir)
}
