package analyzer

import (
	"github.com/funvibe/jsc/internal/pipeline"
)

// ResolverProcessor binds every identifier of the loaded files.
type ResolverProcessor struct{}

func (rp *ResolverProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Order) == 0 {
		return ctx
	}
	before := ctx.Diagnostics.Len()
	ctx.Bindings = NewResolver(ctx.Files, ctx.Diagnostics).ResolveAll(ctx.Order)
	ctx.Logger.Printf("resolved %d value and %d type reference(s), %d diagnostic(s)",
		len(ctx.Bindings.Values), len(ctx.Bindings.Types), ctx.Diagnostics.Len()-before)
	return ctx
}

// CheckerProcessor type-checks the resolved files. It needs the resolver's
// bindings and does nothing without them.
type CheckerProcessor struct{}

func (cp *CheckerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Bindings == nil {
		return ctx
	}
	before := ctx.Diagnostics.Len()
	checker := NewChecker(ctx.Files, ctx.Bindings, ctx.Diagnostics)
	checker.CheckAll(ctx.Order)

	ctx.ExprTypes = checker.ExprTypes
	ctx.AnnotationTypes = checker.AnnotationTypes
	ctx.VarDecls = checker.VarDecls
	ctx.Logger.Printf("checked %d expression(s), %d diagnostic(s)", len(checker.ExprTypes), ctx.Diagnostics.Len()-before)
	return ctx
}
