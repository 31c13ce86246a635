package analyzer

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/symbols"
)

// Root is the design root of an analysis session: the libraries and the
// primary design units analyzed into them. Units already analyzed are
// immutable, but EnsureLibrary and RegisterUnit add to the library maps
// without locking.
type Root struct {
	session   uuid.UUID
	logger    *log.Logger
	libraries map[string]*LibraryData

	std stdTypes
}

// LibraryData is one design library and its primary units.
type LibraryData struct {
	name  string
	ent   *symbols.AnyEnt
	units map[symbols.Designator]*symbols.AnyEnt
}

func (l *LibraryData) Name() string          { return l.name }
func (l *LibraryData) Ent() *symbols.AnyEnt  { return l.ent }

// stdTypes are the predefined types the resolver needs by identity when
// synthesizing implicit declarations.
type stdTypes struct {
	boolean        *symbols.TypeEnt
	bit            *symbols.TypeEnt
	character      *symbols.TypeEnt
	severityLevel  *symbols.TypeEnt
	integer        *symbols.TypeEnt
	natural        *symbols.TypeEnt
	positive       *symbols.TypeEnt
	real           *symbols.TypeEnt
	timeType       *symbols.TypeEnt
	str            *symbols.TypeEnt
	bitVector      *symbols.TypeEnt
	fileOpenKind   *symbols.TypeEnt
	fileOpenStatus *symbols.TypeEnt

	standardRegion *symbols.Region
}

// NewRoot creates a design root with the std library (standard and textio)
// bootstrapped.
func NewRoot() *Root {
	root := &Root{
		session:   uuid.New(),
		logger:    log.WithPrefix("analyzer"),
		libraries: make(map[string]*LibraryData),
	}
	root.logger.Debug("new analysis session", "session", root.session)
	root.bootstrapStd()
	return root
}

// Session identifies this analysis session in logs.
func (r *Root) Session() uuid.UUID { return r.session }

// EnsureLibrary returns the library, creating it on first use.
func (r *Root) EnsureLibrary(name string) *LibraryData {
	name = strings.ToLower(name)
	if lib, ok := r.libraries[name]; ok {
		return lib
	}
	lib := &LibraryData{
		name:  name,
		ent:   symbols.NewEntity(symbols.Identifier(name), &symbols.Library{}, tokenlessPos()),
		units: make(map[symbols.Designator]*symbols.AnyEnt),
	}
	r.libraries[name] = lib
	return lib
}

// Library returns the library if it exists.
func (r *Root) Library(name string) (*LibraryData, bool) {
	lib, ok := r.libraries[strings.ToLower(name)]
	return lib, ok
}

// RegisterUnit publishes an analyzed primary unit into its library.
func (r *Root) RegisterUnit(lib *LibraryData, ent *symbols.AnyEnt, diags diagnostics.Handler) {
	des := ent.Designator()
	if prev, ok := lib.units[des]; ok && prev.ID() != ent.ID() {
		diag := diagnostics.NewError(
			diagnostics.Duplicate,
			ent.DeclPos(),
			"A primary unit has already been declared with name '"+des.String()+"' in library '"+lib.name+"'",
		)
		if prev.DeclPos().Valid() {
			diag.AddRelated(prev.DeclPos(), "Previously defined here")
		}
		diags.Push(diag)
		return
	}
	lib.units[des] = ent
	r.logger.Debug("registered design unit", "session", r.session, "library", lib.name, "unit", des.String())
}

// LookupInLibrary resolves a primary unit name within a library; used for
// the suffix of a selected name whose prefix is a library.
func (r *Root) LookupInLibrary(libraryName string, designator symbols.Designator) (*symbols.AnyEnt, bool) {
	lib, ok := r.libraries[strings.ToLower(libraryName)]
	if !ok {
		return nil, false
	}
	ent, ok := lib.units[designator]
	return ent, ok
}
