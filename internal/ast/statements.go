package ast

import "github.com/hdlvibe/vhdlang/internal/token"

// SequentialStatement is a statement of a process or subprogram body.
type SequentialStatement interface {
	Node
	sequentialNode()
}

// ConcurrentStatement is a statement of an architecture, entity or block.
type ConcurrentStatement interface {
	Node
	concurrentNode()
}

// Waveform is the right-hand side of a signal assignment.
type Waveform struct {
	Token      token.Token
	Elements   []*WaveformElement
	Unaffected bool
}

func (w *Waveform) GetToken() token.Token { return w.Token }

type WaveformElement struct {
	Value Expression
	After Expression
}

// Conditional pairs an item with its `when` condition.
type Conditional[T Node] struct {
	Item      T
	Condition Expression
}

// ConditionalRhs is `item when cond {else item when cond} [else item]`.
type ConditionalRhs[T Node] struct {
	Conditionals []Conditional[T]
	Else         T
}

// Alternative is one `item when choices` arm of a selected assignment.
type Alternative[T Node] struct {
	Item    T
	Choices []Choice
}

// SelectedRhs is `with expr select target <= item when choices, ...`.
type SelectedRhs[T Node] struct {
	Expression   Expression
	Alternatives []Alternative[T]
}

// AssignmentRightHand is the simple/conditional/selected right-hand side of
// an assignment; exactly one field is non-nil.
type AssignmentRightHand[T Node] struct {
	Simple      T
	Conditional *ConditionalRhs[T]
	Selected    *SelectedRhs[T]
}

// SignalAssignment is a sequential or concurrent signal assignment.
type SignalAssignment struct {
	Token  token.Token
	Target Name
	Rhs    AssignmentRightHand[*Waveform]
}

func (s *SignalAssignment) GetToken() token.Token { return s.Token }
func (*SignalAssignment) sequentialNode()         {}
func (*SignalAssignment) concurrentNode()         {}

// VariableAssignment is `target := expr`.
type VariableAssignment struct {
	Token  token.Token
	Target Name
	Rhs    AssignmentRightHand[Expression]
}

func (v *VariableAssignment) GetToken() token.Token { return v.Token }
func (*VariableAssignment) sequentialNode()         {}

// ProcedureCallStatement invokes a procedure; a call without parentheses
// parses as a bare name wrapped into CallOrIndexed with no params.
type ProcedureCallStatement struct {
	Token token.Token
	Call  *CallOrIndexed
}

func (p *ProcedureCallStatement) GetToken() token.Token { return p.Token }
func (*ProcedureCallStatement) sequentialNode()         {}
func (*ProcedureCallStatement) concurrentNode()         {}

// AssertStatement checks a condition with optional report and severity.
type AssertStatement struct {
	Token     token.Token
	Condition Expression
	Report    Expression
	Severity  Expression
}

func (a *AssertStatement) GetToken() token.Token { return a.Token }
func (*AssertStatement) sequentialNode()         {}
func (*AssertStatement) concurrentNode()         {}

// ReturnStatement returns from a subprogram.
type ReturnStatement struct {
	Token token.Token
	Expr  Expression
}

func (r *ReturnStatement) GetToken() token.Token { return r.Token }
func (*ReturnStatement) sequentialNode()         {}

// WaitStatement suspends a process (condition clause only).
type WaitStatement struct {
	Token     token.Token
	Condition Expression
}

func (w *WaitStatement) GetToken() token.Token { return w.Token }
func (*WaitStatement) sequentialNode()         {}

// NullStatement does nothing.
type NullStatement struct {
	Token token.Token
}

func (n *NullStatement) GetToken() token.Token { return n.Token }
func (*NullStatement) sequentialNode()         {}

// IfStatement is `if cond then ... {elsif} [else] end if`.
type IfStatement struct {
	Token    token.Token
	Branches []*IfBranch
	Else     []SequentialStatement
}

func (i *IfStatement) GetToken() token.Token { return i.Token }
func (*IfStatement) sequentialNode()         {}

type IfBranch struct {
	Condition Expression
	Stmts     []SequentialStatement
}

// ProcessStatement is a concurrent process with its own declarative region.
type ProcessStatement struct {
	Token       token.Token
	Label       *Ident
	Sensitivity []Name
	Decls       []Declaration
	Stmts       []SequentialStatement
}

func (p *ProcessStatement) GetToken() token.Token { return p.Token }
func (*ProcessStatement) concurrentNode()         {}

// BlockStatement is a concurrent block with its own declarative region.
type BlockStatement struct {
	Token token.Token
	Label *Ident
	Decls []Declaration
	Stmts []ConcurrentStatement
}

func (b *BlockStatement) GetToken() token.Token { return b.Token }
func (*BlockStatement) concurrentNode()         {}
