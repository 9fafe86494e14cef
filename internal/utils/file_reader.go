package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/decorator/internal/javasrc"
)

// FileReader provides common file reading functionality with caching
type FileReader struct {
	parser       *javasrc.Parser
	unitCache    *Cache[string, *javasrc.CompilationUnit]
	contentCache *Cache[string, string]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		parser:       javasrc.NewParser(),
		unitCache:    NewCache[string, *javasrc.CompilationUnit](),
		contentCache: NewCache[string, string](),
	}
}

// ParseJavaFile parses a Java source file and returns its compilation unit with caching
func (fr *FileReader) ParseJavaFile(filePath string) (*javasrc.CompilationUnit, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return nil, err
	}

	if cached, exists := fr.unitCache.GetWithFileValidation(cleanPath, cleanPath); exists {
		return cached, nil
	}

	content, err := fr.ReadFile(cleanPath)
	if err != nil {
		return nil, err
	}

	unit, err := fr.parser.Parse(cleanPath, content)
	if err != nil {
		return nil, err
	}

	fr.unitCache.SetWithFileInfo(cleanPath, unit, cleanPath)

	return unit, nil
}

// ParseJavaSource parses Java source code from a string
func (fr *FileReader) ParseJavaSource(filename, source string) (*javasrc.CompilationUnit, error) {
	return fr.parser.Parse(filename, source)
}

// ReadFile reads a file and returns its contents as a string with caching
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return "", err
	}

	if cached, exists := fr.contentCache.GetWithFileValidation(cleanPath, cleanPath); exists {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filepath.Base(cleanPath), err)
	}

	contentStr := string(content)
	fr.contentCache.SetWithFileInfo(cleanPath, contentStr, cleanPath)

	return contentStr, nil
}

// ClearCache clears all cached files
func (fr *FileReader) ClearCache() {
	fr.unitCache.Clear()
	fr.contentCache.Clear()
}

// InvalidateFile removes a specific file from the cache
func (fr *FileReader) InvalidateFile(filePath string) {
	cleanPath := filepath.Clean(filePath)
	fr.unitCache.Delete(cleanPath)
	fr.contentCache.Delete(cleanPath)
}

// GetCacheStats returns the number of cached compilation units and file contents
func (fr *FileReader) GetCacheStats() (units, contentFiles int) {
	return fr.unitCache.Size(), fr.contentCache.Size()
}

// validateAndCleanPath validates and cleans a file path
func (fr *FileReader) validateAndCleanPath(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", fmt.Errorf("file path %w", err)
	}

	cleanPath := filepath.Clean(filePath)

	// ".." may only lead a relative path
	if strings.Contains(cleanPath, "..") && !strings.HasPrefix(cleanPath, "..") {
		return "", fmt.Errorf("path traversal not allowed in file path: %s", filePath)
	}

	if _, err := os.Stat(cleanPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file does not exist: %s: %w", cleanPath, err)
		}
		return "", err
	}

	return cleanPath, nil
}
