package models

import "strings"

// GeneratedUnit is a synthesized Java compilation unit
type GeneratedUnit struct {
	PackageName string // package of the generated class
	ClassName   string // name of the generated class
	Source      string // complete Java source text
}

// RelativePath returns the slash-separated path of the unit below an output
// root, derived from its package, e.g. decorator/a/b/CImpl.java.
func (u *GeneratedUnit) RelativePath() string {
	dir := strings.ReplaceAll(u.PackageName, ".", "/")
	if dir == "" {
		return u.ClassName + ".java"
	}
	return dir + "/" + u.ClassName + ".java"
}
