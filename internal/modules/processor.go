package modules

import (
	"github.com/funvibe/jsc/internal/pipeline"
)

// LoaderProcessor loads the entry file's import graph into the context.
type LoaderProcessor struct {
	Parser Parser
	// FS defaults to the real filesystem.
	FS FileSystem
}

func (lp *LoaderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.EntryPath == "" {
		return ctx
	}
	loader := NewLoader(lp.Parser, ctx.Arena, ctx.Diagnostics)
	if lp.FS != nil {
		loader.FS = lp.FS
	}
	loader.Logger = ctx.Logger

	graph, err := loader.Load(ctx.Context, ctx.EntryPath)
	if graph != nil {
		ctx.EntryPath = graph.Entry
		ctx.Files = graph.Files
		ctx.Order = graph.Order
	}
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.Logger.Printf("loaded %d file(s)", len(ctx.Order))
	return ctx
}
