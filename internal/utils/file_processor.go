package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileReader: NewFileReader(),
	}
}

// NewFileProcessorWithReader creates a file processor with an existing FileReader
func NewFileProcessorWithReader(reader *FileReader) *FileProcessor {
	return &FileProcessor{
		fileReader: reader,
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// JavaFileFilter filters for .java compilation units, excluding package-info
// and module-info descriptors which never declare classes
func JavaFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := info.Name()
		return strings.HasSuffix(name, ".java") &&
			name != "package-info.java" &&
			name != "module-info.java"
	}
}

// ArchiveFileFilter filters for jar and zip archives
func ArchiveFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		return ext == ".jar" || ext == ".zip"
	}
}

// DefaultDirectoryFilter skips common directories that shouldn't contain source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		".git":         true,
		".svn":         true,
		".hg":          true,
		".gradle":      true,
		".idea":        true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
		"target":       true,
		"out":          true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// Skip hidden directories
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}

		return !skipDirs[name]
	}
}

// fileInfoDirEntry adapts os.FileInfo to os.DirEntry
type fileInfoDirEntry struct {
	info os.FileInfo
}

func (f fileInfoDirEntry) Name() string               { return f.info.Name() }
func (f fileInfoDirEntry) IsDir() bool                { return f.info.IsDir() }
func (f fileInfoDirEntry) Type() os.FileMode          { return f.info.Mode().Type() }
func (f fileInfoDirEntry) Info() (os.FileInfo, error) { return f.info, nil }

// WalkFiles walks through files in a directory tree with filtering. The root
// itself is never rejected by the directory filter.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		dirEntry := fileInfoDirEntry{info: info}

		if info.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, dirEntry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, dirEntry) {
			matchedFiles = append(matchedFiles, path)
		}

		return nil
	})

	return matchedFiles, err
}

// CollectFiles walks every root and returns the matching files sorted and
// without duplicates
func (fp *FileProcessor) CollectFiles(rootDirs []string, options FileWalkOptions) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, rootDir := range rootDirs {
		matched, err := fp.WalkFiles(rootDir, options)
		if err != nil {
			return nil, WrapProcessError(fmt.Sprintf("directory walk %s", rootDir), err)
		}
		for _, file := range matched {
			clean := filepath.Clean(file)
			if !seen[clean] {
				seen[clean] = true
				files = append(files, clean)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// RemoveFiles deletes every file under the base directories accepted by
// filter and returns the removed paths. Missing base directories are skipped.
func (fp *FileProcessor) RemoveFiles(baseDirs []string, filter FileFilter) ([]string, error) {
	var removedFiles []string

	for _, baseDir := range baseDirs {
		if _, err := os.Stat(baseDir); os.IsNotExist(err) {
			continue
		}

		matched, err := fp.WalkFiles(baseDir, FileWalkOptions{FileFilter: filter, SkipErrors: true})
		if err != nil {
			return removedFiles, WrapProcessError(fmt.Sprintf("directory clean %s", baseDir), err)
		}

		sort.Strings(matched)
		for _, file := range matched {
			if err := os.Remove(file); err != nil {
				return removedFiles, WrapProcessError(fmt.Sprintf("file removal %s", file), err)
			}
			fp.fileReader.InvalidateFile(file)
			removedFiles = append(removedFiles, file)
		}
	}

	return removedFiles, nil
}

// GetFileReader returns the underlying FileReader for advanced operations
func (fp *FileProcessor) GetFileReader() *FileReader {
	return fp.fileReader
}

// GetDirectoryFilter returns the default directory filter
func (fp *FileProcessor) GetDirectoryFilter() DirectoryFilter {
	return DefaultDirectoryFilter()
}
