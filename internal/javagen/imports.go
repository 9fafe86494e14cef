package javagen

import (
	"strings"

	"github.com/toyz/decorator/internal/models"
)

// ImportManager collects single-type imports in insertion order without
// duplicates. Types from java.lang and from the unit's own package need no
// import and are skipped.
type ImportManager struct {
	ownPackage string
	imports    []string
	seen       map[string]bool
}

// NewImportManager creates an import manager for a unit in ownPackage
func NewImportManager(ownPackage string) *ImportManager {
	return &ImportManager{
		ownPackage: ownPackage,
		seen:       make(map[string]bool),
	}
}

// AddImport adds a qualified type name. It reports whether the name was added.
func (im *ImportManager) AddImport(qualified string) bool {
	if qualified == "" || !strings.Contains(qualified, ".") || im.seen[qualified] {
		return false
	}
	pkg := models.PackageOf(qualified)
	if pkg == "java.lang" || pkg == im.ownPackage {
		return false
	}

	im.seen[qualified] = true
	im.imports = append(im.imports, qualified)
	return true
}

// Imports returns the collected imports in insertion order
func (im *ImportManager) Imports() []string {
	if im == nil {
		return nil
	}
	out := make([]string, len(im.imports))
	copy(out, im.imports)
	return out
}

// Len returns the number of collected imports
func (im *ImportManager) Len() int {
	if im == nil {
		return 0
	}
	return len(im.imports)
}
