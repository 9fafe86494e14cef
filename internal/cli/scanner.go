package cli

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/utils"
)

// DirectoryScanner finds the Java sources that may declare decorators
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a directory scanner sharing reader's cache.
// A nil reader gets a private one.
func NewDirectoryScanner(reader *utils.FileReader) *DirectoryScanner {
	if reader == nil {
		return &DirectoryScanner{fileProcessor: utils.NewFileProcessor()}
	}
	return &DirectoryScanner{fileProcessor: utils.NewFileProcessorWithReader(reader)}
}

// Reader returns the file reader scanned files are read through
func (s *DirectoryScanner) Reader() *utils.FileReader {
	return s.fileProcessor.GetFileReader()
}

// ScanDirectories returns the .java files below the given roots, sorted.
// A root ending in "/..." is walked recursively; any other root only
// contributes the files directly inside it.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var files []string
	for _, pattern := range rootDirs {
		base, recursive := Recursive(pattern)

		root, err := filepath.Abs(base)
		if err != nil {
			return nil, errors.WrapWithOperation("resolve", "path "+base, err)
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			return nil, errors.New(errors.FileSystemErrorCode, "source directory not found: "+base).
				WithContext("path", root).
				WithSuggestion("Check that the directory exists and is readable")
		}

		options := utils.FileWalkOptions{
			FileFilter:      utils.JavaFileFilter(),
			DirectoryFilter: s.fileProcessor.GetDirectoryFilter(),
		}
		if !recursive {
			options.DirectoryFilter = func(string, os.DirEntry) bool { return false }
		}

		matched, err := s.fileProcessor.CollectFiles([]string{root}, options)
		if err != nil {
			return nil, errors.WrapFileSystemError("scan", root, err)
		}
		files = append(files, matched...)
	}
	return dedupeSorted(files), nil
}

func dedupeSorted(files []string) []string {
	if len(files) == 0 {
		return files
	}
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	out := sorted[:1]
	for _, f := range sorted[1:] {
		if f != out[len(out)-1] {
			out = append(out, f)
		}
	}
	return out
}
