package cli

import (
	"fmt"
	"io"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/models"
	"github.com/toyz/decorator/internal/utils/fileops"
)

// FileWriter places generated units below an output root
type FileWriter struct {
	root    string
	dryRun  bool
	out     io.Writer
	fileOps *fileops.FileOps
}

// NewFileWriter creates a writer for root. In dry-run mode units are
// printed to out instead of written.
func NewFileWriter(root string, dryRun bool, out io.Writer) *FileWriter {
	return &FileWriter{
		root:    root,
		dryRun:  dryRun,
		out:     out,
		fileOps: fileops.NewFileOps(),
	}
}

// Write stores unit at <root>/<package path>/<class>.java and returns the
// path. Paths that would leave root are refused.
func (w *FileWriter) Write(unit *models.GeneratedUnit) (string, error) {
	path, err := w.fileOps.PathValidator().JoinWithinRoot(w.root, unit.RelativePath())
	if err != nil {
		return "", errors.Wrap(errors.FileSystemErrorCode, err.Error(), err).
			WithContext("class", unit.ClassName)
	}

	if w.dryRun {
		if _, err := fmt.Fprintf(w.out, "// %s\n%s", path, unit.Source); err != nil {
			return "", errors.WrapFileSystemError("print", path, err)
		}
		return path, nil
	}

	if err := w.fileOps.WriteFileAtomic(path, []byte(unit.Source)); err != nil {
		return "", errors.WrapFileSystemError("write", path, err)
	}
	return path, nil
}
