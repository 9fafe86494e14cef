package typeload

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/toyz/decorator/internal/utils"
)

// archiveIndex lists the .java entries of jar and zip archives. Entry
// listings are read once per archive.
type archiveIndex struct {
	entries *utils.Cache[string, map[string]bool]
}

func newArchiveIndex() *archiveIndex {
	return &archiveIndex{entries: utils.NewCache[string, map[string]bool]()}
}

// Contains reports whether archive holds the entry with the slash-separated name
func (a *archiveIndex) Contains(archive, name string) (bool, error) {
	entries, err := a.entries.GetOrLoad(archive, func() (map[string]bool, error) {
		r, err := zip.OpenReader(archive)
		if err != nil {
			return nil, err
		}
		defer r.Close()

		entries := make(map[string]bool)
		for _, f := range r.File {
			if strings.HasSuffix(f.Name, ".java") {
				entries[strings.TrimPrefix(f.Name, "/")] = true
			}
		}
		return entries, nil
	})
	if err != nil {
		return false, err
	}
	return entries[name], nil
}

// Read returns the content of one archive entry
func (a *archiveIndex) Read(archive, name string) (string, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, f := range r.File {
		if strings.TrimPrefix(f.Name, "/") != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	return "", fmt.Errorf("entry %s not found in %s", name, archive)
}

func isArchive(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".jar") || strings.HasSuffix(lower, ".zip")
}
