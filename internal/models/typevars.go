package models

import (
	"strings"
	"unicode"
)

// SubstituteTypeVars replaces the unqualified identifiers of typeName that
// appear in mapping. Names in skip and segments of qualified names are left
// untouched, so "Map<K, V>" with K=String becomes "Map<String, V>".
func SubstituteTypeVars(typeName string, mapping map[string]string, skip map[string]bool) string {
	if len(mapping) == 0 {
		return typeName
	}
	return MapIdentifiers(typeName, func(ident string) string {
		if repl, ok := mapping[ident]; ok && !skip[ident] {
			return repl
		}
		return ident
	})
}

// MapIdentifiers rewrites every unqualified identifier of typeName with f.
// Identifiers that are part of a dotted name are kept as written.
func MapIdentifiers(typeName string, f func(ident string) string) string {
	var out strings.Builder
	runes := []rune(typeName)
	for i := 0; i < len(runes); {
		if !isIdentStart(runes[i]) {
			out.WriteRune(runes[i])
			i++
			continue
		}

		j := i + 1
		for j < len(runes) && isIdentPart(runes[j]) {
			j++
		}
		ident := string(runes[i:j])
		qualified := (i > 0 && runes[i-1] == '.') || (j < len(runes) && runes[j] == '.')

		if qualified {
			out.WriteString(ident)
		} else {
			out.WriteString(f(ident))
		}
		i = j
	}
	return out.String()
}

// TypeParamNames reduces declarations such as "T extends Comparable<T>" to "T"
func TypeParamNames(decls []string) []string {
	names := make([]string, 0, len(decls))
	for _, decl := range decls {
		if fields := strings.Fields(decl); len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return names
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
