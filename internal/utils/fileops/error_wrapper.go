package fileops

import (
	"github.com/toyz/decorator/internal/errors"
)

// ErrorWrapper provides consistent error wrapping for file operations
type ErrorWrapper struct{}

// NewErrorWrapper creates a new ErrorWrapper instance
func NewErrorWrapper() *ErrorWrapper {
	return &ErrorWrapper{}
}

// WrapFileReadError wraps file reading errors with context
func (ew *ErrorWrapper) WrapFileReadError(filePath string, err error) error {
	return errors.WrapFileSystemError("read", filePath, err)
}

// WrapFileWriteError wraps file writing errors with context
func (ew *ErrorWrapper) WrapFileWriteError(filePath string, err error) error {
	return errors.WrapFileSystemError("write", filePath, err)
}

// WrapDirectoryCreateError wraps directory creation errors with context
func (ew *ErrorWrapper) WrapDirectoryCreateError(dirPath string, err error) error {
	return errors.WrapFileSystemError("create directory", dirPath, err)
}

// WrapFileRemovalError wraps file removal errors with context
func (ew *ErrorWrapper) WrapFileRemovalError(filePath string, err error) error {
	return errors.WrapFileSystemError("remove", filePath, err)
}

// WrapPathError wraps a rejected path with context
func (ew *ErrorWrapper) WrapPathError(path string, err error) error {
	return errors.WrapFileSystemError("resolve path", path, err)
}
