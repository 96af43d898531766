package utils

import (
	"path/filepath"
	"strings"

	"github.com/funvibe/jsc/internal/config"
)

// ResolveImportPath resolves an import path relative to a base directory if it starts with a dot.
// Otherwise returns the import path as is.
func ResolveImportPath(baseDir, importPath string) string {
	if len(importPath) > 0 && importPath[0] == '.' {
		if baseDir != "." && baseDir != "" {
			return filepath.Join(baseDir, importPath)
		}
		return filepath.Clean(importPath)
	}
	return importPath
}

// ImportCandidates lists the files an import may refer to, in lookup order:
// the path as written, then the path with each recognized extension.
func ImportCandidates(importerPath, importPath string) []string {
	base := ResolveImportPath(filepath.Dir(importerPath), importPath)
	if config.HasSourceExt(base) {
		return []string{base}
	}
	out := []string{base}
	for _, ext := range config.SourceFileExtensions {
		out = append(out, base+ext)
	}
	return out
}

// ExtractModuleName derives a module name from a file path.
// It takes the base filename and removes any recognized source extension.
func ExtractModuleName(path string) string {
	name := filepath.Base(path)
	return config.TrimSourceExt(name)
}

// GetModuleDir returns the directory context for a module path.
// If the path points to a source file, returns the file's directory.
// If the path points to a directory (no extension), returns the path itself.
func GetModuleDir(path string) string {
	if config.HasSourceExt(path) {
		return filepath.Dir(path)
	}
	return path
}

// QualifiedName derives the dotted module name of path relative to the
// entry file's directory: lib/math.tree.yaml -> lib.math. Files outside
// the entry directory keep their ".." segments as "_".
func QualifiedName(entryDir, path string) string {
	rel, err := filepath.Rel(entryDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = config.TrimSourceExt(filepath.ToSlash(rel))
	parts := strings.Split(rel, "/")
	for i, p := range parts {
		if p == ".." {
			parts[i] = "_"
		}
		parts[i] = strings.ReplaceAll(parts[i], ".", "_")
	}
	return strings.Join(parts, ".")
}
