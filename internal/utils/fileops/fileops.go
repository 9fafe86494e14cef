package fileops

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

const (
	defaultFilePerm os.FileMode = 0o644
	defaultDirPerm  os.FileMode = 0o755
)

// FileOps provides a unified interface for common file operations
// combining path validation and error handling
type FileOps struct {
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
}

// NewFileOps creates a new FileOps instance with all components
func NewFileOps() *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(),
		errorWrapper:  NewErrorWrapper(),
	}
}

// PathValidator returns the path validator instance
func (fo *FileOps) PathValidator() *PathValidator {
	return fo.pathValidator
}

// ReadFirstLine returns the first line of a file without its line ending.
// At most limit bytes are inspected.
func (fo *FileOps) ReadFirstLine(filePath string, limit int) (string, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return "", err
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return "", fo.errorWrapper.WrapFileReadError(cleanPath, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(io.LimitReader(f, int64(limit)))
	scanner.Buffer(make([]byte, 0, limit), limit)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fo.errorWrapper.WrapFileReadError(cleanPath, err)
	}
	return "", nil
}

// WriteFileAtomic writes content to filePath through a temporary file in
// the same directory followed by a rename, creating parent directories.
// Readers never observe a partially written file.
func (fo *FileOps) WriteFileAtomic(filePath string, content []byte) error {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(filePath)
	if err != nil {
		return fo.errorWrapper.WrapPathError(filePath, err)
	}

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
		return fo.errorWrapper.WrapDirectoryCreateError(dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, defaultFilePerm)

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}

	if _, err := tmp.Write(content); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	if err := os.Rename(tmpPath, cleanPath); err != nil {
		_ = os.Remove(tmpPath)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}

	return nil
}

// RemoveFile removes a file with path validation and error handling
func (fo *FileOps) RemoveFile(filePath string) error {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return err
	}

	if err := os.Remove(cleanPath); err != nil {
		return fo.errorWrapper.WrapFileRemovalError(cleanPath, err)
	}

	return nil
}

// Exists checks if a path exists using the path validator
func (fo *FileOps) Exists(path string) bool {
	return fo.pathValidator.Exists(path)
}

// IsDir checks if a path is a directory using the path validator
func (fo *FileOps) IsDir(path string) bool {
	return fo.pathValidator.IsDir(path)
}
