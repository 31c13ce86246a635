package symbols

import (
	"sort"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/token"
)

// visibleEntity is one entity made potentially visible, together with the
// position of the use clause that made it visible.
type visibleEntity struct {
	visiblePos *token.Pos
	ent        *AnyEnt
}

// visibleRegion is a whole region made potentially visible by
// `use lib.pkg.all`.
type visibleRegion struct {
	visiblePos *token.Pos
	region     *Region
}

// Visibility is the set of entities made potentially visible in a region by
// use and context clauses. Lookups walk this set independently of the
// lexical chain and may surface ambiguity.
type Visibility struct {
	all     []visibleRegion
	entities map[Designator][]visibleEntity
}

func (v *Visibility) clone() Visibility {
	clone := Visibility{
		all:      append([]visibleRegion(nil), v.all...),
		entities: make(map[Designator][]visibleEntity, len(v.entities)),
	}
	for des, ents := range v.entities {
		clone.entities[des] = append([]visibleEntity(nil), ents...)
	}
	return clone
}

func (v *Visibility) makePotentiallyVisibleWithName(visiblePos *token.Pos, designator Designator, ent *AnyEnt) {
	if v.entities == nil {
		v.entities = make(map[Designator][]visibleEntity)
	}
	v.entities[designator] = append(v.entities[designator], visibleEntity{visiblePos: visiblePos, ent: ent})
}

func (v *Visibility) makeAllPotentiallyVisible(visiblePos *token.Pos, region *Region) {
	v.all = append(v.all, visibleRegion{visiblePos: visiblePos, region: region})
}

// addContextVisibility merges the visibility of a context declaration's
// region into this one. Used when a context is referenced.
func (v *Visibility) addContextVisibility(visiblePos *token.Pos, other *Visibility) {
	for _, vr := range other.all {
		v.all = append(v.all, visibleRegion{visiblePos: visiblePos, region: vr.region})
	}
	for des, ents := range other.entities {
		for _, ve := range ents {
			v.makePotentiallyVisibleWithName(visiblePos, des, ve.ent)
		}
	}
}

// lookupInto collects every potentially-visible entry for the designator.
func (v *Visibility) lookupInto(designator Designator, visible *Visible) {
	for _, vr := range v.all {
		if named := vr.region.LookupImmediate(designator); named != nil {
			if named.IsOverloaded() {
				for _, ent := range named.overloaded.Entities() {
					visible.insert(ent.ent)
				}
			} else {
				visible.insert(named.single)
			}
		}
	}
	for _, ve := range v.entities[designator] {
		visible.insert(ve.ent)
	}
}

// Visible accumulates candidates across a scope chain's visibility sets and
// reduces them with unambiguous semantics.
type Visible struct {
	seen  map[EntityID]bool
	order []*AnyEnt
}

func (v *Visible) insert(ent *AnyEnt) {
	if v.seen == nil {
		v.seen = make(map[EntityID]bool)
	}
	if v.seen[ent.id] {
		return
	}
	v.seen[ent.id] = true
	v.order = append(v.order, ent)
}

// IntoUnambiguous reduces the collected candidates: exactly one candidate is
// returned as-is; all-overloadable candidates merge into one overload set;
// anything else is an ambiguity diagnostic naming each candidate.
func (v *Visible) IntoUnambiguous(pos token.Pos, designator Designator) (*NamedEntities, *diagnostics.Diagnostic) {
	if len(v.order) == 0 {
		return nil, nil
	}
	if len(v.order) == 1 {
		return NewNamed(v.order[0]), nil
	}

	allOverloaded := true
	for _, ent := range v.order {
		if !ent.IsOverloadable() {
			allOverloaded = false
			break
		}
	}
	if allOverloaded {
		set := newOverloadedSet()
		for _, ent := range v.order {
			over, _ := OverloadedFromAny(ent)
			key := over.Signature().Key()
			if _, taken := set.entities[key]; !taken {
				set.entities[key] = over
			}
		}
		return newNamedOverloaded(set), nil
	}

	diag := diagnostics.NewError(
		diagnostics.Ambiguous,
		pos,
		"Name '"+designator.String()+"' is ambiguous",
	)
	candidates := append([]*AnyEnt(nil), v.order...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].declPos.Before(candidates[j].declPos)
	})
	for _, ent := range candidates {
		if ent.declPos.Valid() {
			diag.AddRelated(ent.declPos, "Could be "+ent.Describe())
		}
	}
	return nil, &diag
}
