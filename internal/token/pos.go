package token

import "fmt"

// Pos identifies a span of source text. Offset/EndOffset are byte offsets
// into the file; Line and Column are 1-based and point at the start of the
// span. The zero value means "no position" (libraries and other entities
// synthesized without source text).
type Pos struct {
	File      string
	Line      int
	Column    int
	Offset    int
	EndOffset int
}

// Valid reports whether the position refers to actual source text.
func (p Pos) Valid() bool {
	return p.Line > 0
}

// Before orders positions by file, then by start offset. Used wherever a
// collection must be reported in declaration order.
func (p Pos) Before(other Pos) bool {
	if p.File != other.File {
		return p.File < other.File
	}
	if p.Offset != other.Offset {
		return p.Offset < other.Offset
	}
	return p.EndOffset < other.EndOffset
}

func (p Pos) String() string {
	if !p.Valid() {
		return "<builtin>"
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
