// Package analyzer resolves names and type-checks expressions over the AST.
// It populates declarative regions with entities, binds every reference to
// its declaration and reports everything recoverable as diagnostics.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// Analyzer performs semantic analysis of design files against a shared
// design root. One Analyzer analyzes one unit at a time. Creating an
// Analyzer and analyzing units both write to the Root, which does no
// locking of its own.
type Analyzer struct {
	root    *Root
	library *LibraryData
}

// New creates an analyzer adding units to the named library of the root.
func New(root *Root, library string) *Analyzer {
	return &Analyzer{root: root, library: root.EnsureLibrary(library)}
}

// Root exposes the design root.
func (a *Analyzer) Root() *Root { return a.root }

// capitalize upper-cases the first letter of a message fragment that starts
// a sentence.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// kindError reports that an entity of the wrong kind was named where
// another kind was expected.
func kindError(ent *symbols.AnyEnt, pos token.Pos, expected string) diagnostics.Diagnostic {
	diag := diagnostics.NewError(
		diagnostics.MismatchedKind,
		pos,
		fmt.Sprintf("Expected %s, got %s", expected, ent.Describe()),
	)
	if ent.DeclPos().Valid() {
		diag.AddRelated(ent.DeclPos(), "Defined here")
	}
	return diag
}

func typeMismatch(pos token.Pos, ent *symbols.AnyEnt, target *symbols.TypeEnt) diagnostics.Diagnostic {
	return diagnostics.NewError(
		diagnostics.TypeMismatch,
		pos,
		fmt.Sprintf("%s does not match %s", ent.Describe(), target.Describe()),
	)
}

func invalidSelectedPrefix(ent *symbols.AnyEnt, pos token.Pos) diagnostics.Diagnostic {
	return diagnostics.NewError(
		diagnostics.InvalidSelectedPrefix,
		pos,
		capitalize(fmt.Sprintf("%s may not be the prefix of a selected name", ent.Describe())),
	)
}

func noDeclarationWithin(describe string, pos token.Pos, suffix symbols.Designator) diagnostics.Diagnostic {
	return diagnostics.NewError(
		diagnostics.NoDeclarationWithin,
		pos,
		fmt.Sprintf("No declaration of '%s' within %s", suffix, describe),
	)
}

func plural(singular, pluralForm string, count int) string {
	if count == 1 {
		return singular
	}
	return pluralForm
}

func dimensionMismatch(pos token.Pos, baseType *symbols.TypeEnt, got, expected int) diagnostics.Diagnostic {
	diag := diagnostics.NewError(
		diagnostics.DimensionMismatch,
		pos,
		"Number of indexes does not match array dimension",
	)
	if baseType.DeclPos().Valid() {
		diag.AddRelated(baseType.DeclPos(), capitalize(fmt.Sprintf(
			"%s has %d %s, got %d %s",
			baseType.Describe(),
			expected, plural("dimension", "dimensions", expected),
			got, plural("index", "indexes", got),
		)))
	}
	return diag
}

// setRef records a resolution outcome on a reference slot: unambiguous
// results bind, everything else leaves the slot cleared.
func setRef(set func(*symbols.AnyEnt), named *symbols.NamedEntities) {
	if ent, ok := named.AsUnique(); ok {
		set(ent)
	} else {
		set(nil)
	}
}

// addSubprogramCandidates appends a "candidate:" note per overload, sorted
// by declaration position.
func addSubprogramCandidates(diag *diagnostics.Diagnostic, set *symbols.OverloadedSet) {
	for _, ent := range set.SortedEntities() {
		if ent.Ent().DeclPos().Valid() {
			diag.AddRelated(
				ent.Ent().DeclPos(),
				fmt.Sprintf("candidate: %s%s", ent.Designator(), ent.Signature().Describe()),
			)
		}
	}
}
