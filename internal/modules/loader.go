package modules

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/token"
	"github.com/funvibe/jsc/internal/utils"
)

// Parser turns the bytes of one file into a program. Nodes are allocated
// in arena so IDs are unique across the whole run.
type Parser interface {
	Parse(path string, data []byte, arena *ast.Arena) (*ast.Program, error)
}

// Loader walks the import graph breadth-first from an entry file. Each
// distinct absolute path is read and parsed at most once. The files of one
// level are read concurrently and parsed sequentially in path order, so
// NodeIDs do not depend on read timing.
type Loader struct {
	Parser      Parser
	FS          FileSystem
	Arena       *ast.Arena
	Diagnostics *diagnostics.Bag
	Logger      *log.Logger
}

func NewLoader(parser Parser, arena *ast.Arena, diags *diagnostics.Bag) *Loader {
	return &Loader{
		Parser:      parser,
		FS:          OSFileSystem{},
		Arena:       arena,
		Diagnostics: diags,
		Logger:      log.New(io.Discard, "", 0),
	}
}

// Load reads entry and everything it imports. An unreadable entry is an
// error; unreadable imports are skipped and left to the resolver to
// report. A file that fails to parse gets a diagnostic and is skipped.
func (l *Loader) Load(ctx context.Context, entry string) (*Graph, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	entry, err := filepath.Abs(entry)
	if err != nil {
		return nil, fmt.Errorf("resolving entry: %w", err)
	}
	graph := newGraph(entry, filepath.Dir(entry))

	seen := map[string]bool{entry: true}
	level := []string{entry}
	for depth := 0; len(level) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return graph, err
		}

		contents, errs, err := l.readLevel(ctx, level)
		if err != nil {
			return graph, err
		}

		var next []string
		for i, path := range level {
			if errs[i] != nil {
				if path == entry {
					return graph, fmt.Errorf("reading entry %s: %w", path, errs[i])
				}
				l.Logger.Printf("skipping unreadable import %s: %v", path, errs[i])
				continue
			}
			prog := l.parse(path, contents[i], graph.EntryDir)
			if prog == nil {
				continue
			}
			graph.Files[path] = prog
			graph.Order = append(graph.Order, path)

			for _, imp := range Imports(prog) {
				target, ok := l.locate(path, imp.Value)
				if !ok || seen[target] {
					continue
				}
				seen[target] = true
				next = append(next, target)
			}
		}
		slices.Sort(next)
		l.Logger.Printf("level %d: %d file(s), %d queued", depth, len(level), len(next))
		level = next
	}
	return graph, nil
}

// readLevel reads every path of one level concurrently. Per-file read
// errors are returned by index; the error result is only set when ctx is
// cancelled.
func (l *Loader) readLevel(ctx context.Context, level []string) ([][]byte, []error, error) {
	contents := make([][]byte, len(level))
	errs := make([]error, len(level))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range level {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			contents[i], errs[i] = l.FS.ReadFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return contents, errs, nil
}

func (l *Loader) parse(path string, data []byte, entryDir string) *ast.Program {
	prog, err := l.Parser.Parse(path, data, l.Arena)
	if err != nil {
		l.Diagnostics.Add(diagnostics.NewError(diagnostics.ErrL001, path, token.Span{}, err.Error()))
		return nil
	}
	prog.Path = path
	prog.QualifiedName = utils.QualifiedName(entryDir, path)
	return prog
}

// locate finds the file an import refers to: the first candidate that
// exists.
func (l *Loader) locate(importer, raw string) (string, bool) {
	for _, candidate := range utils.ImportCandidates(importer, raw) {
		if isFile(l.FS, candidate) {
			return candidate, true
		}
	}
	return "", false
}
