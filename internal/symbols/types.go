package symbols

import (
	"sync/atomic"

	"github.com/hdlvibe/vhdlang/internal/token"
)

// TypeDef is the payload of a type declaration. Every TypeDef is a Kind.
type TypeDef interface {
	Kind
	typeDef()
}

// EnumerationType carries the literal entities so character and identifier
// literals can be matched against an expected enumeration type.
type EnumerationType struct {
	Literals []*AnyEnt
}

func (*EnumerationType) kindName() string { return "type" }
func (*EnumerationType) typeDef()         {}

type IntegerType struct{}

func (*IntegerType) kindName() string { return "type" }
func (*IntegerType) typeDef()         {}

type FloatingType struct{}

func (*FloatingType) kindName() string { return "type" }
func (*FloatingType) typeDef()         {}

// PhysicalType is a physical type; its unit entities are published alongside
// the type in the same region.
type PhysicalType struct {
	Units []*AnyEnt
}

func (*PhysicalType) kindName() string { return "type" }
func (*PhysicalType) typeDef()         {}

// ArrayType has one index entry per dimension; an entry is nil for an
// unconstrained index whose type mark did not resolve.
type ArrayType struct {
	Indexes  []*TypeEnt
	ElemType *TypeEnt
}

func (*ArrayType) kindName() string { return "array type" }
func (*ArrayType) typeDef()         {}

// RecordType owns the region of its element declarations.
type RecordType struct {
	Region *Region
}

func (*RecordType) kindName() string { return "record type" }
func (*RecordType) typeDef()         {}

type AccessType struct {
	Subtype Subtype
}

func (*AccessType) kindName() string { return "access type" }
func (*AccessType) typeDef()         {}

type FileType struct {
	Subtype Subtype
}

func (*FileType) kindName() string { return "file type" }
func (*FileType) typeDef()         {}

// ProtectedType owns the region of its method declarations. The body
// position is the one place a published entity's data changes after
// publication; a one-shot atomic cell keeps concurrent readers safe.
type ProtectedType struct {
	Region  *Region
	bodyPos atomic.Pointer[token.Pos]
}

func (*ProtectedType) kindName() string { return "protected type" }
func (*ProtectedType) typeDef()         {}

// SetBodyPos records the position of the protected type body. Only the
// first call wins; the return value reports whether this call set it.
func (p *ProtectedType) SetBodyPos(pos token.Pos) bool {
	return p.bodyPos.CompareAndSwap(nil, &pos)
}

// BodyPos returns the recorded body position, or nil when no body has been
// analyzed yet.
func (p *ProtectedType) BodyPos() *token.Pos {
	return p.bodyPos.Load()
}

// InterfaceType is a generic interface type of an uninstantiated package;
// matching against it yields Unknown to suppress false positives.
type InterfaceType struct{}

func (*InterfaceType) kindName() string { return "type" }
func (*InterfaceType) typeDef()         {}

// IncompleteType is the placeholder published by an incomplete type
// declaration until the full declaration upgrades it.
type IncompleteType struct{}

func (*IncompleteType) kindName() string { return "type" }
func (*IncompleteType) typeDef()         {}

// SubtypeDef is a subtype declaration.
type SubtypeDef struct {
	Subtype Subtype
}

func (*SubtypeDef) kindName() string { return "subtype" }
func (*SubtypeDef) typeDef()         {}

// Subtype is a reference to a type mark, possibly with constraints the
// resolver does not model further.
type Subtype struct {
	typeMark *TypeEnt
}

func NewSubtype(typeMark *TypeEnt) Subtype {
	return Subtype{typeMark: typeMark}
}

// TypeMark returns the named type of the subtype, or nil when the type mark
// failed to resolve.
func (s Subtype) TypeMark() *TypeEnt { return s.typeMark }

// BaseType returns the base type of the subtype, or nil when unresolved.
func (s Subtype) BaseType() *TypeEnt {
	if s.typeMark == nil {
		return nil
	}
	return s.typeMark.BaseType()
}

// TypeEnt is an entity known to be a type or subtype declaration.
type TypeEnt struct {
	ent *AnyEnt
}

// TypeEntFromAny converts an entity to a TypeEnt if its kind is a type.
func TypeEntFromAny(ent *AnyEnt) (*TypeEnt, bool) {
	if _, ok := ent.kind.(TypeDef); ok {
		return &TypeEnt{ent: ent}, true
	}
	return nil, false
}

func (t *TypeEnt) Ent() *AnyEnt           { return t.ent }
func (t *TypeEnt) ID() EntityID           { return t.ent.id }
func (t *TypeEnt) Designator() Designator { return t.ent.designator }
func (t *TypeEnt) DeclPos() token.Pos     { return t.ent.declPos }

// Def returns the type definition payload.
func (t *TypeEnt) Def() TypeDef {
	return t.ent.kind.(TypeDef)
}

// BaseType peels subtype declarations down to the base type entity.
func (t *TypeEnt) BaseType() *TypeEnt {
	base := t
	for {
		sub, ok := base.Def().(*SubtypeDef)
		if !ok {
			return base
		}
		mark := sub.Subtype.TypeMark()
		if mark == nil || mark.ent.id == base.ent.id {
			return base
		}
		base = mark
	}
}

// Describe produces the human-readable form used in diagnostics.
func (t *TypeEnt) Describe() string {
	return t.ent.Describe()
}

// SameBase reports whether two types share a base type by identity.
func (t *TypeEnt) SameBase(other *TypeEnt) bool {
	if t == nil || other == nil {
		return false
	}
	return t.BaseType().ID() == other.BaseType().ID()
}

// SelectedRegion returns the region a selected-name suffix is looked up in
// when this type is the prefix's type: record element regions, and access
// types dereference once into their designated type's region.
func (t *TypeEnt) SelectedRegion() *Region {
	base := t.BaseType()
	if access, ok := base.Def().(*AccessType); ok {
		if mark := access.Subtype.TypeMark(); mark != nil {
			base = mark.BaseType()
		}
	}
	switch def := base.Def().(type) {
	case *RecordType:
		return def.Region
	case *ProtectedType:
		return def.Region
	default:
		return nil
	}
}
