package schema

import (
	"fmt"
	"strings"
)

// Code classifies why a field failed.
type Code string

const (
	CodeRequired        Code = "required_field_missing"
	CodeOutOfRange      Code = "out_of_range"
	CodeInvalidFormat   Code = "invalid_format"
	CodeInvalidChecksum Code = "invalid_checksum"
	CodePrecision       Code = "precision_violation"
)

// Issue is one failing field.
type Issue struct {
	Path    string
	Code    Code
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Issues is the ordered list of failures of one Decode call.
type Issues []Issue

// Has reports whether any issue targets path (or a path nested under it).
func (is Issues) Has(path string) bool {
	for _, i := range is {
		if root(i.Path) == path || i.Path == path {
			return true
		}
	}
	return false
}

func (is Issues) String() string {
	parts := make([]string, 0, len(is))
	for _, i := range is {
		parts = append(parts, i.String())
	}
	return strings.Join(parts, "; ")
}

func root(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}
