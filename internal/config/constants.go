package config

import "strings"

const SourceFileExt = ".jsc"

// TreeFileExt is the extension of syntax-tree dumps written by the parser.
const TreeFileExt = ".tree.yaml"

// SourceFileExtensions are all recognized module file extensions, longest first.
var SourceFileExtensions = []string{TreeFileExt, ".tree.yml", SourceFileExt}

// ProjectFileName is the project configuration looked up from the entry's directory upward.
const ProjectFileName = "jsc.yaml"

// Version is reported by `jsc version`.
const Version = "0.3.0"

// IsTestMode indicates if the program is running in test mode.
// Tests set it to get deterministic output (no colour, no run IDs).
var IsTestMode = false

// HasSourceExt reports whether path ends in a recognized extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized extension from path.
func TrimSourceExt(path string) string {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}

// Built-in value names
const (
	CastFuncName   = "cast"
	SizeofFuncName = "sizeof"
)

// Built-in type names
const (
	BooleanTypeName = "boolean"
	VoidTypeName    = "void"
	UnknownTypeName = "unknown"
)

// Type parameter used by the generic builtins.
const BuiltinTypeParam = "T"
