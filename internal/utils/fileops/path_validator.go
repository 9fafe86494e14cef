package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator provides centralized path validation and cleaning functionality
type PathValidator struct{}

// NewPathValidator creates a new PathValidator instance
func NewPathValidator() *PathValidator {
	return &PathValidator{}
}

// ValidateAndClean validates and cleans a file path, ensuring it's safe and exists
func (pv *PathValidator) ValidateAndClean(filePath string) (string, error) {
	cleanPath, err := pv.ValidateAndCleanOptional(filePath)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", cleanPath)
	}

	return cleanPath, nil
}

// ValidateAndCleanOptional validates and cleans a path but doesn't require it to exist
func (pv *PathValidator) ValidateAndCleanOptional(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	cleanPath := filepath.Clean(filePath)

	// ".." may only lead a relative path
	if strings.Contains(cleanPath, "..") && !strings.HasPrefix(cleanPath, "..") {
		return "", fmt.Errorf("path traversal not allowed in file path: %s", filePath)
	}

	return cleanPath, nil
}

// JoinWithinRoot joins a slash-separated relative path onto root and
// rejects results that would land outside root: absolute paths, volume
// names and parent escapes.
func (pv *PathValidator) JoinWithinRoot(root, relative string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("output root cannot be empty")
	}

	rel := filepath.Clean(filepath.FromSlash(relative))
	switch {
	case rel == "." || rel == "":
		return "", fmt.Errorf("path %q is empty", relative)
	case filepath.IsAbs(rel) || filepath.VolumeName(rel) != "":
		return "", fmt.Errorf("path %q must be relative", relative)
	case rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)):
		return "", fmt.Errorf("path %q escapes the output root", relative)
	}

	return filepath.Join(root, rel), nil
}

// Exists checks if a path exists
func (pv *PathValidator) Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsDir checks if a path exists and is a directory
func (pv *PathValidator) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile checks if a path exists and is a regular file
func (pv *PathValidator) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

