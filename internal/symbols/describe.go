package symbols

import "fmt"

// Describe produces the human-readable form of the entity used inside
// diagnostics, e.g. "signal 'clk'", "port 'clk' : in", "array type 'arr_t'".
func (e *AnyEnt) Describe() string {
	switch kind := e.kind.(type) {
	case *Object:
		if kind.IsInterface() {
			if kind.Class == ClassSignal {
				return fmt.Sprintf("port '%s' : %s", e.designator, *kind.Mode)
			}
			return fmt.Sprintf("interface %s '%s'", kind.Class, e.designator)
		}
		return fmt.Sprintf("%s '%s'", kind.Class, e.designator)
	case *OverloadedAlias:
		return fmt.Sprintf("alias '%s' of %s", e.designator, kind.Of.AsActual().Describe())
	case OverloadedKind:
		return fmt.Sprintf("%s '%s'", kind.kindName(), e.designator)
	default:
		return fmt.Sprintf("%s '%s'", e.kind.kindName(), e.designator)
	}
}

// DescribeNamed renders a NamedEntities value for messages about a selected
// name prefix.
func (n *NamedEntities) DescribeNamed() string {
	if n.single != nil {
		return n.single.Describe()
	}
	return fmt.Sprintf("overloaded name '%s'", n.Designator())
}
