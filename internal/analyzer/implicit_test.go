package analyzer

import "testing"

func TestAddsToStringForIntegerTypes(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type type_t is range 0 to 1;
  alias my_to_string is to_string[type_t, return string];
end package;
`)
}

func TestAddsToStringForArrayTypes(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type type_t is array (natural range 0 to 1) of integer;
  alias my_to_string is to_string[type_t, return string];
end package;
`)
}

func TestNoErrorForDuplicateAliasOfImplicit(t *testing.T) {
	// The alias republishes the predefined operations of the type; sharing
	// the source entities must keep that silent.
	expectNoDiagnostics(t, `
package pkg is
  type type_t is array (natural range 0 to 1) of integer;
  alias alias_t is type_t;
end package;
`)
}

func TestAddsFileSubprogramsImplicitly(t *testing.T) {
	expectNoDiagnostics(t, `
use std.textio.text;

package pkg is
end package;

package body pkg is
  procedure proc is
    file f : text;
  begin
    file_open(f, "foo.txt");
    assert not endfile(f);
    file_close(f);
  end procedure;
end package body;
`)
}

func TestDeallocateIsDefinedForAccessType(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type arr_t is array (natural range <>) of character;
  type ptr_t is access arr_t;

  procedure theproc is
      variable theptr : ptr_t;
  begin
      deallocate(theptr);
  end procedure;
end package;
`)
}

func TestImplicitOperatorsResolveForUserTypes(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type type_t is range 0 to 15;
  constant a : type_t := 1;
  constant b : type_t := a + 1;
  constant c : boolean := a < b;
end package;
`)
}

func TestExplicitOperatorReplacesImplicit(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type type_t is range 0 to 15;
  function "+"(l : type_t; r : type_t) return type_t;
end package;

package body pkg is
  function "+"(l : type_t; r : type_t) return type_t is
  begin
    return l;
  end function;
end package body;
`)
}

func TestAliasWithUnknownSignature(t *testing.T) {
	source := `
package pkg is
  type type_t is range 0 to 1;
  alias bad is to_string[type_t, return integer];
end package;
`
	diag := expectDiagnostic(t, source, "no_declaration",
		"Could not find declaration of 'to_string' with given signature")
	if len(diag.Related) == 0 {
		t.Error("expected candidate notes")
	}
}
