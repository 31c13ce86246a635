package ast

import (
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// Name is any syntactic name form. Every name is also an expression.
type Name interface {
	Expression
	nameNode()
}

// SimpleName is a bare designator occurrence.
type SimpleName struct {
	Token      token.Token
	Designator symbols.Designator
	Ref        *symbols.AnyEnt
}

func (s *SimpleName) GetToken() token.Token { return s.Token }
func (*SimpleName) nameNode()               {}
func (*SimpleName) expressionNode()         {}

// Selected is `prefix.suffix`.
type Selected struct {
	Token  token.Token
	Prefix Name
	Suffix *NamePart
}

func (s *Selected) GetToken() token.Token { return s.Token }
func (*Selected) nameNode()               {}
func (*Selected) expressionNode()         {}

// SelectedAll is `prefix.all`.
type SelectedAll struct {
	Token  token.Token
	Prefix Name
}

func (s *SelectedAll) GetToken() token.Token { return s.Token }
func (*SelectedAll) nameNode()               {}
func (*SelectedAll) expressionNode()         {}

// AssociationElement is one element of an association list; Open models the
// reserved word `open` as an actual.
type AssociationElement struct {
	Token  token.Token
	Formal *SimpleName
	Actual Expression
	Open   bool
}

func (a *AssociationElement) GetToken() token.Token { return a.Token }

// CallOrIndexed is the parse of `prefix(...)`: a function call, an indexed
// name or a type conversion — the parser cannot tell. The resolver
// disambiguates; when the form turns out to be an indexed name it rewrites
// the node in place by filling IndexedForm.
type CallOrIndexed struct {
	Token  token.Token
	Prefix Name
	Params []*AssociationElement

	// IndexedForm is the structural replacement performed by the resolver
	// when the prefix denotes an array object: the actuals reinterpreted as
	// index expressions. nil until (and unless) disambiguation happens.
	IndexedForm []Expression
}

func (c *CallOrIndexed) GetToken() token.Token { return c.Token }
func (*CallOrIndexed) nameNode()               {}
func (*CallOrIndexed) expressionNode()         {}

// ToIndexed converts the call form to index expressions: possible only when
// every actual is a positional, non-open expression.
func (c *CallOrIndexed) ToIndexed() ([]Expression, bool) {
	indexes := make([]Expression, 0, len(c.Params))
	for _, param := range c.Params {
		if param.Formal != nil || param.Open || param.Actual == nil {
			return nil, false
		}
		indexes = append(indexes, param.Actual)
	}
	if len(indexes) == 0 {
		return nil, false
	}
	return indexes, true
}

// SuffixRef returns the reference slot of the prefix's final designator,
// used to record the outcome of overload resolution on a call.
func (c *CallOrIndexed) SuffixRef() *RefSlot {
	return suffixRefOf(c.Prefix)
}

// RefSlot is a view of a name's mutable reference slot.
type RefSlot struct {
	Designator symbols.Designator
	Pos        token.Pos
	Set        func(*symbols.AnyEnt)
	Clear      func()
}

func suffixRefOf(name Name) *RefSlot {
	switch n := name.(type) {
	case *SimpleName:
		return &RefSlot{
			Designator: n.Designator,
			Pos:        n.Token.Pos(),
			Set:        func(e *symbols.AnyEnt) { n.Ref = e },
			Clear:      func() { n.Ref = nil },
		}
	case *Selected:
		return &RefSlot{
			Designator: n.Suffix.Designator,
			Pos:        n.Suffix.Token.Pos(),
			Set:        func(e *symbols.AnyEnt) { n.Suffix.Ref = e },
			Clear:      func() { n.Suffix.Ref = nil },
		}
	default:
		return nil
	}
}

// SliceName is `prefix(discrete_range)`; the parser produces it when the
// parenthesized argument is syntactically a range.
type SliceName struct {
	Token  token.Token
	Prefix Name
	Range  DiscreteRange
}

func (s *SliceName) GetToken() token.Token { return s.Token }
func (*SliceName) nameNode()               {}
func (*SliceName) expressionNode()         {}

// AttributeName is `prefix'attr` with an optional signature and argument.
type AttributeName struct {
	Token     token.Token
	Prefix    Name
	Attr      *Ident
	Signature *SignatureNode
	Expr      Expression
}

func (a *AttributeName) GetToken() token.Token { return a.Token }
func (*AttributeName) nameNode()               {}
func (*AttributeName) expressionNode()         {}

// ExternalName is `<< class path : subtype >>`.
type ExternalName struct {
	Token   token.Token
	Class   ObjectClass
	Path    string
	Subtype *SubtypeIndication
}

func (e *ExternalName) GetToken() token.Token { return e.Token }
func (*ExternalName) nameNode()               {}
func (*ExternalName) expressionNode()         {}
