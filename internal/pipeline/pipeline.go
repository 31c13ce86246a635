// Package pipeline chains the per-file processing stages: lexing, parsing
// and semantic analysis.
package pipeline

import (
	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// Context carries one design file through the stages.
type Context struct {
	FilePath string
	Source   string

	Tokens     []token.Token
	DesignFile *ast.DesignFile

	Diags *diagnostics.Bag
}

// NewContext prepares a context for a source file.
func NewContext(filePath, source string) *Context {
	return &Context{
		FilePath: filePath,
		Source:   source,
		Diags:    diagnostics.NewBag(),
	}
}

// Processor is a single stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages keep running after errors so that a
// single pass collects diagnostics from every stage.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
