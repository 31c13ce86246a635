package ast

import (
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// Declaration is an item of a declarative part.
type Declaration interface {
	Node
	declarationNode()
}

// ObjectClass distinguishes object declarations syntactically.
type ObjectClass int

const (
	ClassConstant ObjectClass = iota
	ClassSignal
	ClassVariable
	ClassSharedVariable
)

func (c ObjectClass) String() string {
	switch c {
	case ClassConstant:
		return "constant"
	case ClassSignal:
		return "signal"
	case ClassSharedVariable:
		return "shared variable"
	default:
		return "variable"
	}
}

// ObjectDeclaration declares a constant, signal or variable. A constant
// without a value inside a package specification is a deferred constant.
type ObjectDeclaration struct {
	Token   token.Token
	Class   ObjectClass
	Ident   *Ident
	Subtype *SubtypeIndication
	Value   Expression
}

func (o *ObjectDeclaration) GetToken() token.Token { return o.Token }
func (*ObjectDeclaration) declarationNode()        {}

// FileDeclaration declares a file object.
type FileDeclaration struct {
	Token    token.Token
	Ident    *Ident
	Subtype  *SubtypeIndication
	OpenInfo Expression
	FileName Expression
}

func (f *FileDeclaration) GetToken() token.Token { return f.Token }
func (*FileDeclaration) declarationNode()        {}

// TypeDeclaration declares a type; Def is nil for an incomplete type
// declaration.
type TypeDeclaration struct {
	Token token.Token
	Ident *Ident
	Def   TypeDefinition
}

func (t *TypeDeclaration) GetToken() token.Token { return t.Token }
func (*TypeDeclaration) declarationNode()        {}

// SubtypeDeclaration names a constrained view of a type.
type SubtypeDeclaration struct {
	Token   token.Token
	Ident   *Ident
	Subtype *SubtypeIndication
}

func (s *SubtypeDeclaration) GetToken() token.Token { return s.Token }
func (*SubtypeDeclaration) declarationNode()        {}

// TypeDefinition is the right-hand side of a full type declaration.
type TypeDefinition interface {
	Node
	typeDefinitionNode()
}

// EnumLiteralNode is one literal of an enumeration definition: an
// identifier or a character literal.
type EnumLiteralNode struct {
	Token     token.Token
	Character bool
	Value     string // identifier text or the character itself
}

func (e *EnumLiteralNode) GetToken() token.Token { return e.Token }

// Designator returns the literal as a resolution designator.
func (e *EnumLiteralNode) Designator() symbols.Designator {
	if e.Character {
		return symbols.CharacterLiteral([]rune(e.Value)[0])
	}
	return symbols.Identifier(e.Value)
}

type EnumerationTypeDef struct {
	Token    token.Token
	Literals []*EnumLiteralNode
}

func (e *EnumerationTypeDef) GetToken() token.Token { return e.Token }
func (*EnumerationTypeDef) typeDefinitionNode()     {}

// IntegerTypeDef is `range <range>`; it also covers floating types when the
// bounds are real literals (analysis tells the two apart by the bounds).
type IntegerTypeDef struct {
	Token token.Token
	Range RangeExpr
}

func (i *IntegerTypeDef) GetToken() token.Token { return i.Token }
func (*IntegerTypeDef) typeDefinitionNode()     {}

// PhysicalUnitNode declares the primary or a secondary unit of a physical
// type.
type PhysicalUnitNode struct {
	Token token.Token
	Ident *Ident
	// Value/UnitName are nil for the primary unit.
	Value    Expression
	UnitName *Ident
}

func (p *PhysicalUnitNode) GetToken() token.Token { return p.Token }

type PhysicalTypeDef struct {
	Token token.Token
	Range RangeExpr
	Units []*PhysicalUnitNode
}

func (p *PhysicalTypeDef) GetToken() token.Token { return p.Token }
func (*PhysicalTypeDef) typeDefinitionNode()     {}

// ArrayIndexNode is one index of an array definition: either an
// unconstrained index subtype (`natural range <>`) or a discrete range.
type ArrayIndexNode struct {
	Token    token.Token
	TypeMark *SelectedName // non-nil for `mark range <>`
	Range    DiscreteRange // non-nil for a constrained index
}

func (a *ArrayIndexNode) GetToken() token.Token { return a.Token }

type ArrayTypeDef struct {
	Token   token.Token
	Indexes []*ArrayIndexNode
	Elem    *SubtypeIndication
}

func (a *ArrayTypeDef) GetToken() token.Token { return a.Token }
func (*ArrayTypeDef) typeDefinitionNode()     {}

// ElementDeclarationNode is one field of a record definition.
type ElementDeclarationNode struct {
	Token   token.Token
	Ident   *Ident
	Subtype *SubtypeIndication
}

func (e *ElementDeclarationNode) GetToken() token.Token { return e.Token }

type RecordTypeDef struct {
	Token    token.Token
	Elements []*ElementDeclarationNode
}

func (r *RecordTypeDef) GetToken() token.Token { return r.Token }
func (*RecordTypeDef) typeDefinitionNode()     {}

type AccessTypeDef struct {
	Token   token.Token
	Subtype *SubtypeIndication
}

func (a *AccessTypeDef) GetToken() token.Token { return a.Token }
func (*AccessTypeDef) typeDefinitionNode()     {}

type FileTypeDef struct {
	Token    token.Token
	TypeMark *SelectedName
}

func (f *FileTypeDef) GetToken() token.Token { return f.Token }
func (*FileTypeDef) typeDefinitionNode()     {}

type ProtectedTypeDef struct {
	Token token.Token
	Decls []Declaration
}

func (p *ProtectedTypeDef) GetToken() token.Token { return p.Token }
func (*ProtectedTypeDef) typeDefinitionNode()     {}

// ProtectedTypeBody is parsed as a type declaration whose definition is the
// body; the analyzer records its position on the declared type.
type ProtectedTypeBody struct {
	Token token.Token
	Decls []Declaration
}

func (p *ProtectedTypeBody) GetToken() token.Token { return p.Token }
func (*ProtectedTypeBody) typeDefinitionNode()     {}

// AliasDeclaration declares an alias of an object, a type or an overloaded
// name (optionally narrowed by a signature).
type AliasDeclaration struct {
	Token      token.Token
	Designator *Ident
	Subtype    *SubtypeIndication
	Name       Name
	Signature  *SignatureNode
}

func (a *AliasDeclaration) GetToken() token.Token { return a.Token }
func (*AliasDeclaration) declarationNode()        {}

// SignatureNode is the bracketed signature of an alias or attribute name:
// `[type_mark {, type_mark} [return type_mark]]`.
type SignatureNode struct {
	Token  token.Token
	Params []*SelectedName
	Return *SelectedName
}

func (s *SignatureNode) GetToken() token.Token { return s.Token }

// AttributeDeclaration declares a user attribute and its type.
type AttributeDeclaration struct {
	Token    token.Token
	Ident    *Ident
	TypeMark *SelectedName
}

func (a *AttributeDeclaration) GetToken() token.Token { return a.Token }
func (*AttributeDeclaration) declarationNode()        {}

// EntityClass is the class named in an attribute specification.
type EntityClass int

const (
	EntityClassEntity EntityClass = iota
	EntityClassArchitecture
	EntityClassConfiguration
	EntityClassPackage
	EntityClassSignal
	EntityClassVariable
	EntityClassConstant
	EntityClassType
	EntityClassSubtype
	EntityClassProcedure
	EntityClassFunction
	EntityClassLabel
	EntityClassFile
)

func (c EntityClass) String() string {
	switch c {
	case EntityClassEntity:
		return "entity"
	case EntityClassArchitecture:
		return "architecture"
	case EntityClassConfiguration:
		return "configuration"
	case EntityClassPackage:
		return "package"
	case EntityClassSignal:
		return "signal"
	case EntityClassVariable:
		return "variable"
	case EntityClassConstant:
		return "constant"
	case EntityClassType:
		return "type"
	case EntityClassSubtype:
		return "subtype"
	case EntityClassProcedure:
		return "procedure"
	case EntityClassFunction:
		return "function"
	case EntityClassLabel:
		return "label"
	default:
		return "file"
	}
}

// AttributeSpecification attaches an attribute value to a named entity of a
// given class.
type AttributeSpecification struct {
	Token      token.Token
	Ident      *Ident // the attribute designator
	EntityName *Ident // the decorated entity (or `others`/`all`, not modeled)
	Class      EntityClass
	Value      Expression
}

func (a *AttributeSpecification) GetToken() token.Token { return a.Token }
func (*AttributeSpecification) declarationNode()        {}

// InterfaceDeclaration is a generic, port or subprogram parameter.
type InterfaceDeclaration struct {
	Token   token.Token
	Class   ObjectClass
	File    bool
	Ident   *Ident
	Mode    Mode
	HasMode bool
	Subtype *SubtypeIndication
	Default Expression
}

func (i *InterfaceDeclaration) GetToken() token.Token { return i.Token }

type Mode int

const (
	ModeIn Mode = iota
	ModeOut
	ModeInOut
	ModeBuffer
	ModeLinkage
)

// SubprogramSpec is the header of a function or procedure.
type SubprogramSpec struct {
	Token      token.Token
	Function   bool
	Impure     bool
	Designator *Ident        // identifier designator
	Operator   string        // operator-symbol designator ("" when identifier)
	Params     []*InterfaceDeclaration
	Return     *SelectedName // nil for procedures
}

func (s *SubprogramSpec) GetToken() token.Token { return s.Token }

// Designate returns the subprogram's resolution designator.
func (s *SubprogramSpec) Designate() symbols.Designator {
	if s.Operator != "" {
		return symbols.OperatorSymbol(s.Operator)
	}
	return s.Designator.Designator()
}

// SubprogramDeclaration is a subprogram specification without a body.
type SubprogramDeclaration struct {
	Spec *SubprogramSpec
}

func (s *SubprogramDeclaration) GetToken() token.Token { return s.Spec.Token }
func (*SubprogramDeclaration) declarationNode()        {}

// SubprogramBody carries the declarative part and statements of a
// subprogram.
type SubprogramBody struct {
	Spec  *SubprogramSpec
	Decls []Declaration
	Stmts []SequentialStatement
}

func (s *SubprogramBody) GetToken() token.Token { return s.Spec.Token }
func (*SubprogramBody) declarationNode()        {}
