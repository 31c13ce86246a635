package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hdlvibe/vhdlang/internal/token"
)

type Severity int

const (
	Hint Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Hint:
		return "hint"
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// Code is a stable machine-readable identifier for a class of diagnostic.
type Code string

const (
	Duplicate               Code = "duplicate_declaration"
	DeclarationNotAllowed   Code = "declaration_not_allowed"
	MismatchedEntityClass   Code = "mismatched_entity_class"
	NoDeclaration           Code = "no_declaration"
	NoDeclarationWithin     Code = "no_declaration_within"
	MissingDeferredConstant Code = "missing_deferred_constant"
	MissingProtectedBody    Code = "missing_protected_body"
	DimensionMismatch       Code = "dimension_mismatch"
	InvalidSelectedPrefix   Code = "invalid_selected_prefix"
	InvalidCall             Code = "invalid_call"
	TypeMismatch            Code = "type_mismatch"
	Ambiguous               Code = "ambiguous_reference"
	MismatchedKind          Code = "mismatched_kind"
	Syntax                  Code = "syntax_error"
)

// Related is a secondary note attached to a diagnostic, pointing at another
// source position ("Previously defined here", candidate listings, ...).
type Related struct {
	Pos     token.Pos
	Message string
}

// Diagnostic is a single structured message with a source position.
type Diagnostic struct {
	Severity Severity
	Pos      token.Pos
	Message  string
	Related  []Related
	Code     Code
}

// NewError constructs an error-severity diagnostic.
func NewError(code Code, pos token.Pos, message string) Diagnostic {
	return Diagnostic{Severity: Error, Pos: pos, Message: message, Code: code}
}

// NewWarning constructs a warning-severity diagnostic.
func NewWarning(code Code, pos token.Pos, message string) Diagnostic {
	return Diagnostic{Severity: Warning, Pos: pos, Message: message, Code: code}
}

// AddRelated appends a secondary note.
func (d *Diagnostic) AddRelated(pos token.Pos, message string) {
	d.Related = append(d.Related, Related{Pos: pos, Message: message})
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s", d.Pos, d.Severity, d.Message)
	for _, rel := range d.Related {
		fmt.Fprintf(&sb, "\n  %s: note: %s", rel.Pos, rel.Message)
	}
	return sb.String()
}

// Handler accepts diagnostics. The analyzer only ever pushes; rendering and
// filtering belong to the caller.
type Handler interface {
	Push(d Diagnostic)
}

// Bag is the standard Handler: an append-only collection.
type Bag struct {
	items []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

func (b *Bag) Push(d Diagnostic) {
	b.items = append(b.items, d)
}

// Errorf pushes a formatted error diagnostic.
func (b *Bag) Errorf(code Code, pos token.Pos, format string, args ...any) {
	b.Push(NewError(code, pos, fmt.Sprintf(format, args...)))
}

// Append moves every diagnostic from other into b.
func (b *Bag) Append(other *Bag) {
	b.items = append(b.items, other.items...)
	other.items = nil
}

func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether any item has error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Items returns the collected diagnostics in push order.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// StampFile fills in the file of every position that lacks one. The
// analyzer works on token positions that do not carry file names; the
// pipeline stamps them per file.
func (b *Bag) StampFile(file string) {
	for i := range b.items {
		if b.items[i].Pos.File == "" {
			b.items[i].Pos.File = file
		}
		for j := range b.items[i].Related {
			if b.items[i].Related[j].Pos.File == "" {
				b.items[i].Related[j].Pos.File = file
			}
		}
	}
}

// Sorted returns the diagnostics ordered by source position with stable
// tie-breaking, for rendering.
func (b *Bag) Sorted() []Diagnostic {
	items := make([]Diagnostic, len(b.items))
	copy(items, b.items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Pos.Before(items[j].Pos)
	})
	return items
}
