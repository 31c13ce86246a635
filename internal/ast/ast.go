// Package ast defines the abstract syntax tree the analyzer consumes.
// Reference-bearing nodes carry a mutable Ref slot that the resolver sets
// when resolution is unambiguous and clears at the start of every
// resolution attempt.
package ast

import (
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// Node is the base interface of all AST nodes.
type Node interface {
	GetToken() token.Token
}

// Pos returns the source position of a node's primary token.
func Pos(n Node) token.Pos {
	return n.GetToken().Pos()
}

// Ident is an identifier occurrence with a resolved-entity slot.
type Ident struct {
	Token token.Token
	Value string // normalized (lower case)
	Ref   *symbols.AnyEnt
}

func (i *Ident) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// Designator returns the identifier as a resolution designator.
func (i *Ident) Designator() symbols.Designator {
	return symbols.Identifier(i.Value)
}

// DesignFile is the root node produced for one source file.
type DesignFile struct {
	File  string
	Units []DesignUnit
}

// DesignUnit is a primary or secondary design unit.
type DesignUnit interface {
	Node
	designUnitNode()
	ContextClause() []ContextItem
	Name() *Ident
}

// ContextItem is a library clause, use clause or context reference.
type ContextItem interface {
	Node
	contextItemNode()
}

// LibraryClause makes one or more libraries visible in a design unit.
type LibraryClause struct {
	Token token.Token
	Names []*Ident
}

func (l *LibraryClause) GetToken() token.Token { return l.Token }
func (*LibraryClause) contextItemNode()        {}

// UseClause makes names from packages potentially visible.
type UseClause struct {
	Token token.Token
	Names []*SelectedName
}

func (u *UseClause) GetToken() token.Token { return u.Token }
func (*UseClause) contextItemNode()        {}
func (*UseClause) declarationNode()        {}

// ContextReference pulls in the visibility of a context declaration.
type ContextReference struct {
	Token token.Token
	Names []*SelectedName
}

func (c *ContextReference) GetToken() token.Token { return c.Token }
func (*ContextReference) contextItemNode()        {}

// SelectedName is the restricted dotted-name form used by use clauses and
// type marks: a chain of designators, each with its own reference slot.
// All marks a trailing `.all`.
type SelectedName struct {
	Token token.Token
	Parts []*NamePart
	All   bool
}

func (s *SelectedName) GetToken() token.Token { return s.Token }

// Suffix returns the last part of the chain.
func (s *SelectedName) Suffix() *NamePart {
	return s.Parts[len(s.Parts)-1]
}

// SuffixPos returns the position of the final designator.
func (s *SelectedName) SuffixPos() token.Pos {
	return s.Suffix().Token.Pos()
}

// NamePart is one designator in a selected-name chain.
type NamePart struct {
	Token      token.Token
	Designator symbols.Designator
	Ref        *symbols.AnyEnt
}

func (p *NamePart) GetToken() token.Token { return p.Token }

// TypeMark is a reference to a type: a selected name, or an object name
// with the 'subtype attribute.
type TypeMark struct {
	Name    *SelectedName
	Subtype bool
}

func (t *TypeMark) GetToken() token.Token { return t.Name.GetToken() }

// SubtypeIndication is a type mark with an optional constraint.
type SubtypeIndication struct {
	Token      token.Token
	Mark       *SelectedName
	Constraint Constraint
}

func (s *SubtypeIndication) GetToken() token.Token { return s.Token }

// Constraint is an index or range constraint on a subtype indication.
type Constraint interface {
	Node
	constraintNode()
}

// RangeConstraintNode is `range <expr> to/downto <expr>` on a subtype.
type RangeConstraintNode struct {
	Token token.Token
	Range RangeExpr
}

func (r *RangeConstraintNode) GetToken() token.Token { return r.Token }
func (*RangeConstraintNode) constraintNode()         {}

// IndexConstraintNode is `( discrete_range {, discrete_range} )`.
type IndexConstraintNode struct {
	Token  token.Token
	Ranges []DiscreteRange
}

func (i *IndexConstraintNode) GetToken() token.Token { return i.Token }
func (*IndexConstraintNode) constraintNode()         {}
