package analyzer

import (
	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// AnalyzeFile analyzes every design unit of a file, in order, into the
// analyzer's library.
func (a *Analyzer) AnalyzeFile(file *ast.DesignFile, diags diagnostics.Handler) {
	bodies := make(map[symbols.Designator]bool)
	for _, unit := range file.Units {
		if body, ok := unit.(*ast.PackageBody); ok {
			bodies[body.Ident.Designator()] = true
		}
	}

	for _, unit := range file.Units {
		switch u := unit.(type) {
		case *ast.EntityDeclaration:
			a.analyzeEntityDeclaration(u, diags)
		case *ast.ArchitectureBody:
			a.analyzeArchitectureBody(u, diags)
		case *ast.PackageDeclaration:
			a.analyzePackageDeclaration(u, bodies[u.Ident.Designator()], diags)
		case *ast.PackageBody:
			a.analyzePackageBody(u, diags)
		case *ast.ContextDeclaration:
			a.analyzeContextDeclaration(u, diags)
		}
	}
}

// unitRootScope builds the implicit context of a design unit: the std and
// work libraries are visible and everything in std.standard is potentially
// visible.
func (a *Analyzer) unitRootScope() *symbols.Scope {
	scope := symbols.NewScope(symbols.NewRegion())

	std, _ := a.root.Library("std")
	scope.MakePotentiallyVisible(nil, std.ent)
	scope.MakePotentiallyVisibleWithName(nil, symbols.Identifier("work"), a.library.ent)
	scope.MakePotentiallyVisible(nil, a.library.ent)
	scope.MakeAllPotentiallyVisible(nil, a.root.std.standardRegion)

	return scope
}

// analyzeContextClause applies library clauses, use clauses and context
// references to a unit's root scope.
func (a *Analyzer) analyzeContextClause(scope *symbols.Scope, items []ast.ContextItem, diags diagnostics.Handler) {
	for _, item := range items {
		switch clause := item.(type) {
		case *ast.LibraryClause:
			for _, name := range clause.Names {
				lib, ok := a.root.Library(name.Value)
				if !ok {
					diags.Push(diagnostics.NewError(
						diagnostics.NoDeclaration,
						ast.Pos(name),
						"No such library '"+name.Value+"'",
					))
					continue
				}
				name.Ref = lib.ent
				pos := ast.Pos(name)
				scope.MakePotentiallyVisible(&pos, lib.ent)
			}
		case *ast.UseClause:
			a.analyzeUseClause(scope, clause, diags)
		case *ast.ContextReference:
			a.analyzeContextReference(scope, clause, diags)
		}
	}
}

// analyzeUseClause makes the named entities potentially visible in the
// scope. Naming a type also surfaces its implicit operations; naming
// `pkg.all` surfaces the package's whole region.
func (a *Analyzer) analyzeUseClause(scope *symbols.Scope, clause *ast.UseClause, diags diagnostics.Handler) {
	for _, name := range clause.Names {
		pos := name.SuffixPos()
		if name.All {
			named, diag := a.resolveSelectedName(scope, name)
			if diag != nil {
				diags.Push(*diag)
				continue
			}
			ent, ok := named.AsUnique()
			if !ok {
				diags.Push(diagnostics.NewError(
					diagnostics.InvalidSelectedPrefix,
					pos,
					"Invalid prefix of a use clause with all",
				))
				continue
			}
			design, isDesign := ent.ActualKind().(*symbols.Design)
			if !isDesign || design.Region == nil {
				diags.Push(kindError(ent, pos, "package"))
				continue
			}
			scope.MakeAllPotentiallyVisible(&pos, design.Region)
			continue
		}

		named, diag := a.resolveSelectedName(scope, name)
		if diag != nil {
			diags.Push(*diag)
			continue
		}
		a.makeNamedPotentiallyVisible(scope, &pos, named)
	}
}

func (a *Analyzer) makeNamedPotentiallyVisible(scope *symbols.Scope, pos *token.Pos, named *symbols.NamedEntities) {
	if named.IsOverloaded() {
		for _, ent := range named.Overloaded().Entities() {
			scope.MakePotentiallyVisible(pos, ent.Ent())
		}
		return
	}
	ent := named.Single()
	scope.MakePotentiallyVisible(pos, ent)
	// A use clause naming a type makes the type's implicit operations
	// potentially visible as well.
	for _, implicit := range ent.Actual().Implicits() {
		scope.MakePotentiallyVisible(pos, implicit)
	}
	// Enumeration literals and physical units travel with their type.
	switch def := ent.ActualKind().(type) {
	case *symbols.EnumerationType:
		for _, lit := range def.Literals {
			scope.MakePotentiallyVisible(pos, lit)
		}
	case *symbols.PhysicalType:
		for _, unit := range def.Units {
			scope.MakePotentiallyVisible(pos, unit)
		}
	}
}

// analyzeContextReference merges a context declaration's visibility.
func (a *Analyzer) analyzeContextReference(scope *symbols.Scope, ref *ast.ContextReference, diags diagnostics.Handler) {
	for _, name := range ref.Names {
		named, diag := a.resolveSelectedName(scope, name)
		if diag != nil {
			diags.Push(*diag)
			continue
		}
		ent, ok := named.AsUnique()
		if !ok {
			continue
		}
		design, isContext := ent.ActualKind().(*symbols.Design)
		if !isContext || design.Kind != symbols.DesignContext {
			diags.Push(kindError(ent, name.SuffixPos(), "context"))
			continue
		}
		pos := name.SuffixPos()
		scope.AddContextVisibility(&pos, design.Region)
	}
}

func (a *Analyzer) analyzeEntityDeclaration(unit *ast.EntityDeclaration, diags diagnostics.Handler) {
	root := a.unitRootScope()
	scope := root.Nested()
	// Context clauses land in the unit's own region so that secondary
	// units re-entering it inherit the visibility.
	a.analyzeContextClause(scope, unit.Context, diags)

	for _, generic := range unit.Generics {
		a.addInterfaceItem(scope, generic, false, diags)
	}
	for _, port := range unit.Ports {
		a.addInterfaceItem(scope, port, false, diags)
	}
	generics, ports := scope.Region().ToEntityFormal()

	design := &symbols.Design{
		Kind:     symbols.DesignEntity,
		Region:   scope.Region(),
		Generics: generics,
		Ports:    ports,
	}
	ent := symbols.NewEntity(unit.Ident.Designator(), design, ast.Pos(unit.Ident))
	unit.Ident.Ref = ent
	// The unit's own name is visible inside its declarative region.
	root.Add(ent, diags)

	a.analyzeDeclarativePart(scope, unit.Decls, declEntity, diags)
	a.analyzeConcurrentStatements(scope, unit.Stmts, diags)
	scope.Close(diags)

	a.root.RegisterUnit(a.library, ent, diags)
}

func (a *Analyzer) analyzeArchitectureBody(unit *ast.ArchitectureBody, diags diagnostics.Handler) {
	root := a.unitRootScope()

	unit.EntityName.Ref = nil
	entityEnt, ok := a.root.LookupInLibrary(a.library.name, unit.EntityName.Designator())
	var design *symbols.Design
	if ok {
		design, _ = entityEnt.Kind().(*symbols.Design)
	}
	if design == nil || design.Kind != symbols.DesignEntity {
		diags.Push(diagnostics.NewError(
			diagnostics.NoDeclaration,
			ast.Pos(unit.EntityName),
			"No declaration of entity '"+unit.EntityName.Value+"' in library '"+a.library.name+"'",
		))
		// Analyze against an empty region so the architecture's own errors
		// still surface.
		scope := root.Nested()
		a.analyzeContextClause(scope, unit.Context, diags)
		a.analyzeDeclarativePart(scope, unit.Decls, declArchitecture, diags)
		a.analyzeConcurrentStatements(scope, unit.Stmts, diags)
		scope.Close(diags)
		return
	}
	unit.EntityName.Ref = entityEnt

	scope := symbols.Extend(design.Region, root)
	a.analyzeContextClause(scope, unit.Context, diags)
	a.analyzeDeclarativePart(scope, unit.Decls, declArchitecture, diags)
	a.analyzeConcurrentStatements(scope, unit.Stmts, diags)
	scope.Close(diags)
}

func (a *Analyzer) analyzePackageDeclaration(unit *ast.PackageDeclaration, hasBody bool, diags diagnostics.Handler) {
	root := a.unitRootScope()
	scope := root.Nested().InPackageDeclaration()
	a.analyzeContextClause(scope, unit.Context, diags)
	ent := symbols.NewEntity(unit.Ident.Designator(), &symbols.Design{
		Kind:   symbols.DesignPackage,
		Region: scope.Region(),
	}, ast.Pos(unit.Ident))
	unit.Ident.Ref = ent
	root.Add(ent, diags)

	a.analyzeDeclarativePart(scope, unit.Decls, declPackage, diags)
	if !hasBody {
		// With a body present the deferred-constant and protected-body
		// checks run at the body's close instead.
		scope.Close(diags)
	}
	a.root.RegisterUnit(a.library, ent, diags)
}

func (a *Analyzer) analyzePackageBody(unit *ast.PackageBody, diags diagnostics.Handler) {
	root := a.unitRootScope()

	unit.Ident.Ref = nil
	pkgEnt, ok := a.root.LookupInLibrary(a.library.name, unit.Ident.Designator())
	var design *symbols.Design
	if ok {
		design, _ = pkgEnt.Kind().(*symbols.Design)
	}
	if design == nil || design.Kind != symbols.DesignPackage {
		diags.Push(diagnostics.NewError(
			diagnostics.NoDeclaration,
			ast.Pos(unit.Ident),
			"No declaration of package '"+unit.Ident.Value+"' in library '"+a.library.name+"'",
		))
		return
	}
	unit.Ident.Ref = pkgEnt

	scope := symbols.Extend(design.Region, root)
	a.analyzeContextClause(scope, unit.Context, diags)
	a.analyzeDeclarativePart(scope, unit.Decls, declPackageBody, diags)
	scope.Close(diags)
}

func (a *Analyzer) analyzeContextDeclaration(unit *ast.ContextDeclaration, diags diagnostics.Handler) {
	root := a.unitRootScope()
	scope := root.Nested()
	a.analyzeContextClause(scope, unit.Items, diags)

	ent := symbols.NewEntity(unit.Ident.Designator(), &symbols.Design{
		Kind:   symbols.DesignContext,
		Region: scope.Region(),
	}, ast.Pos(unit.Ident))
	unit.Ident.Ref = ent
	a.root.RegisterUnit(a.library, ent, diags)
}
