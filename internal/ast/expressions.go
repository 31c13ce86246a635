package ast

import (
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// Expression is any expression node.
type Expression interface {
	Node
	expressionNode()
}

// Binary is a binary operator application. Op is the operator-symbol
// designator text; OpRef records the resolved operator entity.
type Binary struct {
	Token token.Token
	Op    string
	OpRef *symbols.AnyEnt
	Left  Expression
	Right Expression
}

func (b *Binary) GetToken() token.Token { return b.Token }
func (*Binary) expressionNode()         {}

// Unary is a unary operator application.
type Unary struct {
	Token   token.Token
	Op      string
	OpRef   *symbols.AnyEnt
	Operand Expression
}

func (u *Unary) GetToken() token.Token { return u.Token }
func (*Unary) expressionNode()         {}

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (i *IntegerLiteral) GetToken() token.Token { return i.Token }
func (*IntegerLiteral) expressionNode()         {}

type RealLiteral struct {
	Token token.Token
	Value float64
}

func (r *RealLiteral) GetToken() token.Token { return r.Token }
func (*RealLiteral) expressionNode()         {}

// CharacterLiteral doubles as an enumeration literal reference; Ref is set
// when an expected enumeration type disambiguates it.
type CharacterLiteral struct {
	Token token.Token
	Value rune
	Ref   *symbols.AnyEnt
}

func (c *CharacterLiteral) GetToken() token.Token { return c.Token }
func (*CharacterLiteral) expressionNode()         {}

type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) GetToken() token.Token { return s.Token }
func (*StringLiteral) expressionNode()         {}

// PhysicalLiteralExpr is `<abstract literal> <unit name>`.
type PhysicalLiteralExpr struct {
	Token token.Token
	Value Expression
	Unit  *SimpleName
}

func (p *PhysicalLiteralExpr) GetToken() token.Token { return p.Token }
func (*PhysicalLiteralExpr) expressionNode()         {}

type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) GetToken() token.Token { return n.Token }
func (*NullLiteral) expressionNode()         {}

// Aggregate is `( element_association {, element_association} )`.
type Aggregate struct {
	Token  token.Token
	Assocs []*ElementAssociation
}

func (a *Aggregate) GetToken() token.Token { return a.Token }
func (*Aggregate) expressionNode()         {}

// ElementAssociation is positional (Choices nil) or named.
type ElementAssociation struct {
	Token   token.Token
	Choices []Choice
	Expr    Expression
}

func (e *ElementAssociation) GetToken() token.Token { return e.Token }

// Choice is an element of a choice list.
type Choice interface {
	Node
	choiceNode()
}

type ChoiceExpression struct {
	Expr Expression
}

func (c *ChoiceExpression) GetToken() token.Token { return c.Expr.GetToken() }
func (*ChoiceExpression) choiceNode()             {}

type ChoiceRange struct {
	Range DiscreteRange
}

func (c *ChoiceRange) GetToken() token.Token { return c.Range.GetToken() }
func (*ChoiceRange) choiceNode()             {}

type ChoiceOthers struct {
	Token token.Token
}

func (c *ChoiceOthers) GetToken() token.Token { return c.Token }
func (*ChoiceOthers) choiceNode()             {}

// QualifiedExpression is `type_mark'(expr)`.
type QualifiedExpression struct {
	Token    token.Token
	TypeMark *TypeMark
	Expr     Expression
}

func (q *QualifiedExpression) GetToken() token.Token { return q.Token }
func (*QualifiedExpression) expressionNode()         {}

// Allocator is `new subtype_indication` or `new qualified_expression`.
type Allocator struct {
	Token     token.Token
	Qualified *QualifiedExpression
	Subtype   *SubtypeIndication
}

func (a *Allocator) GetToken() token.Token { return a.Token }
func (*Allocator) expressionNode()         {}

// Direction of a range constraint.
type Direction int

const (
	To Direction = iota
	Downto
)

// RangeExpr is a range: an explicit constraint or a range attribute.
type RangeExpr interface {
	Node
	rangeNode()
}

type RangeConstraint struct {
	Token token.Token
	Left  Expression
	Dir   Direction
	Right Expression
}

func (r *RangeConstraint) GetToken() token.Token { return r.Token }
func (*RangeConstraint) rangeNode()              {}

type RangeAttribute struct {
	Attr *AttributeName
}

func (r *RangeAttribute) GetToken() token.Token { return r.Attr.GetToken() }
func (*RangeAttribute) rangeNode()              {}

// DiscreteRange is a range or a discrete subtype indication.
type DiscreteRange interface {
	Node
	discreteRangeNode()
}

// DiscreteSubtype is `type_mark [range ...]`.
type DiscreteSubtype struct {
	Token token.Token
	Mark  *SelectedName
	Range RangeExpr
}

func (d *DiscreteSubtype) GetToken() token.Token { return d.Token }
func (*DiscreteSubtype) discreteRangeNode()      {}

// DiscreteRangeExpr wraps a plain range.
type DiscreteRangeExpr struct {
	Range RangeExpr
}

func (d *DiscreteRangeExpr) GetToken() token.Token { return d.Range.GetToken() }
func (*DiscreteRangeExpr) discreteRangeNode()      {}
