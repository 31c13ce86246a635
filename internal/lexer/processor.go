package lexer

import (
	"github.com/hdlvibe/vhdlang/internal/pipeline"
)

// Processor is the lexing pipeline stage.
type Processor struct{}

func (lp *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	ctx.Tokens = New(ctx.Source).Tokenize()
	return ctx
}
