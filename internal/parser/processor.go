package parser

import (
	"github.com/hdlvibe/vhdlang/internal/pipeline"
)

// Processor is the parsing pipeline stage.
type Processor struct{}

func (pp *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Tokens == nil {
		return ctx
	}
	parser := New(ctx.Tokens, ctx.FilePath, ctx.Diags)
	ctx.DesignFile = parser.ParseDesignFile()
	return ctx
}
