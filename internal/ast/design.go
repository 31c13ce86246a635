package ast

import "github.com/hdlvibe/vhdlang/internal/token"

// EntityDeclaration is a primary design unit with a generic/port header and
// a declarative part.
type EntityDeclaration struct {
	Token    token.Token
	Ident    *Ident
	Context  []ContextItem
	Generics []*InterfaceDeclaration
	Ports    []*InterfaceDeclaration
	Decls    []Declaration
	Stmts    []ConcurrentStatement
}

func (e *EntityDeclaration) GetToken() token.Token      { return e.Token }
func (*EntityDeclaration) designUnitNode()              {}
func (e *EntityDeclaration) ContextClause() []ContextItem { return e.Context }
func (e *EntityDeclaration) Name() *Ident               { return e.Ident }

// ArchitectureBody is a secondary unit bound to an entity.
type ArchitectureBody struct {
	Token      token.Token
	Ident      *Ident
	EntityName *Ident
	Context    []ContextItem
	Decls      []Declaration
	Stmts      []ConcurrentStatement
}

func (a *ArchitectureBody) GetToken() token.Token        { return a.Token }
func (*ArchitectureBody) designUnitNode()                {}
func (a *ArchitectureBody) ContextClause() []ContextItem { return a.Context }
func (a *ArchitectureBody) Name() *Ident                 { return a.Ident }

// PackageDeclaration is a package specification.
type PackageDeclaration struct {
	Token   token.Token
	Ident   *Ident
	Context []ContextItem
	Decls   []Declaration
}

func (p *PackageDeclaration) GetToken() token.Token        { return p.Token }
func (*PackageDeclaration) designUnitNode()                {}
func (p *PackageDeclaration) ContextClause() []ContextItem { return p.Context }
func (p *PackageDeclaration) Name() *Ident                 { return p.Ident }

// PackageBody supplies the bodies deferred by a package specification.
type PackageBody struct {
	Token   token.Token
	Ident   *Ident
	Context []ContextItem
	Decls   []Declaration
}

func (p *PackageBody) GetToken() token.Token        { return p.Token }
func (*PackageBody) designUnitNode()                {}
func (p *PackageBody) ContextClause() []ContextItem { return p.Context }
func (p *PackageBody) Name() *Ident                 { return p.Ident }

// ContextDeclaration is a reusable bundle of context items.
type ContextDeclaration struct {
	Token token.Token
	Ident *Ident
	Items []ContextItem
}

func (c *ContextDeclaration) GetToken() token.Token        { return c.Token }
func (*ContextDeclaration) designUnitNode()                {}
func (c *ContextDeclaration) ContextClause() []ContextItem { return nil }
func (c *ContextDeclaration) Name() *Ident                 { return c.Ident }
