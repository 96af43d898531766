package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/funvibe/jsc/internal/ast"
	"github.com/funvibe/jsc/internal/config"
	"github.com/funvibe/jsc/internal/diagnostics"
	"github.com/funvibe/jsc/internal/symbols"
	"github.com/funvibe/jsc/internal/typesystem"
)

// PipelineContext carries the state of one compilation run between stages.
type PipelineContext struct {
	// Context bounds the loader's file reads.
	Context context.Context

	RunID     string
	EntryPath string
	Project   *config.Project
	Logger    *log.Logger

	// Loader output.
	Arena *ast.Arena
	Files map[string]*ast.Program
	Order []string // breadth-first from the entry

	Diagnostics *diagnostics.Bag

	// Resolver output.
	Bindings *symbols.Bindings

	// Checker output.
	ExprTypes       map[ast.NodeID]typesystem.Type
	AnnotationTypes map[ast.NodeID]typesystem.Type
	VarDecls        map[ast.NodeID][]symbols.DeclaredVar

	// Err is an environmental failure (unreadable entry, cancelled run).
	// User errors go to Diagnostics instead.
	Err error
}

// NewPipelineContext prepares a run for entryPath. A nil project means
// defaults; a nil logger discards stage logs.
func NewPipelineContext(ctx context.Context, entryPath string, project *config.Project, logger *log.Logger) *PipelineContext {
	if project == nil {
		project = config.DefaultProject()
	}
	runID := uuid.NewString()
	if config.IsTestMode {
		runID = "test"
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	} else {
		logger = log.New(logger.Writer(), fmt.Sprintf("%s[%s] ", logger.Prefix(), shortID(runID)), logger.Flags())
	}
	return &PipelineContext{
		Context:     ctx,
		RunID:       runID,
		EntryPath:   entryPath,
		Project:     project,
		Logger:      logger,
		Arena:       ast.NewArena(),
		Files:       make(map[string]*ast.Program),
		Diagnostics: diagnostics.NewBag(),
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Sources returns the source text of every loaded file, for rendering.
func (ctx *PipelineContext) Sources() map[string][]byte {
	out := make(map[string][]byte, len(ctx.Files))
	for path, prog := range ctx.Files {
		if prog.Source != nil {
			out[path] = prog.Source
		}
	}
	return out
}
