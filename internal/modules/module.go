package modules

import (
	"errors"
	"io/fs"
	"os"

	"github.com/funvibe/jsc/internal/ast"
)

// Graph is the set of files reachable from an entry file.
type Graph struct {
	Entry    string
	EntryDir string
	// Files maps absolute paths to parsed programs.
	Files map[string]*ast.Program
	// Order lists Files breadth-first from the entry; paths on one level
	// are sorted.
	Order []string
}

func newGraph(entry, entryDir string) *Graph {
	return &Graph{Entry: entry, EntryDir: entryDir, Files: make(map[string]*ast.Program)}
}

// Imports returns the import paths written in prog, in source order.
func Imports(prog *ast.Program) []*ast.StringLiteral {
	var out []*ast.StringLiteral
	for _, stmt := range prog.Statements {
		if imp, ok := stmt.(*ast.ImportStatement); ok && imp.Path != nil {
			out = append(out, imp.Path)
		}
	}
	return out
}

// FileSystem is what the loader needs from the disk.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
}

// OSFileSystem reads from the real filesystem.
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// isFile reports whether name exists and is not a directory.
func isFile(fsys FileSystem, name string) bool {
	info, err := fsys.Stat(name)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ErrNoParser is returned by parsers for files they do not understand.
var ErrNoParser = errors.New("no parser for file")
