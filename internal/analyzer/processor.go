package analyzer

import (
	"github.com/hdlvibe/vhdlang/internal/pipeline"
)

// Processor is the semantic-analysis pipeline stage. It adds the file's
// design units to the configured library of a shared root.
type Processor struct {
	Root    *Root
	Library string
}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.DesignFile == nil {
		return ctx
	}
	analyzer := New(p.Root, p.Library)
	analyzer.AnalyzeFile(ctx.DesignFile, ctx.Diags)
	ctx.Diags.StampFile(ctx.FilePath)
	return ctx
}
