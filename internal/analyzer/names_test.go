package analyzer

import (
	"strings"
	"testing"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
)

func TestDimensionMismatch(t *testing.T) {
	source := `
package pkg is
  type arr_t is array (natural range <>) of character;
end package;

package body pkg is
  procedure proc is
    variable arr : arr_t(0 to 3);
    variable c : character;
  begin
    c := arr(0, 1);
  end procedure;
end package body;
`
	diag := expectDiagnostic(t, source, diagnostics.DimensionMismatch,
		"Number of indexes does not match array dimension")
	if len(diag.Related) != 1 {
		t.Fatalf("expected one related note, got %d", len(diag.Related))
	}
	want := "Array type 'arr_t' has 1 dimension, got 2 indexes"
	if diag.Related[0].Message != want {
		t.Errorf("related note mismatch:\nwant: %s\ngot:  %s", want, diag.Related[0].Message)
	}
	typeLine, _ := srcPos(t, source, "arr_t is array")
	if diag.Related[0].Pos.Line != typeLine {
		t.Errorf("note must point at the type declaration, got line %d", diag.Related[0].Pos.Line)
	}
}

func TestMatchingIndexCountRewritesToIndexedName(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type arr_t is array (natural range <>) of character;
end package;

package body pkg is
  procedure proc is
    variable arr : arr_t(0 to 3);
    variable c : character;
  begin
    c := arr(1);
  end procedure;
end package body;
`)
}

func TestNoDeclaration(t *testing.T) {
	source := `
package pkg is
  constant c : integer := missing;
end package;
`
	expectDiagAt(t, source, "missing", diagnostics.NoDeclaration, "No declaration of 'missing'")
}

func TestNoDeclarationWithinPackage(t *testing.T) {
	source := `
package pkg is
end package;

package body pkg is
  constant c : integer := work.pkg.missing;
end package body;
`
	expectDiagnostic(t, source, diagnostics.NoDeclarationWithin,
		"No declaration of 'missing' within package 'pkg'")
}

func TestNoDeclarationWithinLibrary(t *testing.T) {
	source := `
use std.nonexistent.all;

package pkg is
end package;
`
	expectDiagnostic(t, source, diagnostics.NoDeclarationWithin,
		"No declaration of 'nonexistent' within library 'std'")
}

func TestRecordFieldSelection(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type rec_t is record
    field : integer;
  end record;
end package;

package body pkg is
  procedure proc is
    variable r : rec_t;
    variable v : integer;
  begin
    v := r.field;
  end procedure;
end package body;
`)
}

func TestRecordFieldSelectionThroughAccessType(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type rec_t is record
    field : integer;
  end record;
  type rec_ptr_t is access rec_t;
end package;

package body pkg is
  procedure proc is
    variable p : rec_ptr_t;
    variable v : integer;
  begin
    v := p.field;
  end procedure;
end package body;
`)
}

func TestMissingRecordField(t *testing.T) {
	source := `
package pkg is
  type rec_t is record
    field : integer;
  end record;
end package;

package body pkg is
  procedure proc is
    variable r : rec_t;
    variable v : integer;
  begin
    v := r.missing;
  end procedure;
end package body;
`
	expectDiagnostic(t, source, diagnostics.NoDeclarationWithin,
		"No declaration of 'missing' within record type 'rec_t'")
}

func TestInvalidSelectedNamePrefix(t *testing.T) {
	source := `
package pkg is
  constant c : integer := 0;
  constant d : integer := c.field;
end package;
`
	diag := expectDiagnostic(t, source, diagnostics.InvalidSelectedPrefix,
		"may not be the prefix of a selected name")
	if !strings.Contains(diag.Message, "'c'") {
		t.Errorf("message should describe the prefix entity, got %q", diag.Message)
	}
}

func TestScalarCannotBeIndexed(t *testing.T) {
	source := `
package pkg is
end package;

package body pkg is
  procedure proc is
    variable v : integer;
    variable w : integer;
  begin
    w := v(0);
  end procedure;
end package body;
`
	expectDiagnostic(t, source, diagnostics.DimensionMismatch, "cannot be indexed")
}

func TestTypePrefixIsConversion(t *testing.T) {
	// A type prefix is a conversion and currently stays untyped.
	expectNoDiagnostics(t, `
package pkg is
end package;

package body pkg is
  procedure proc is
    variable v : integer;
  begin
    v := integer(v);
  end procedure;
end package body;
`)
}

func TestInvalidProcedureCall(t *testing.T) {
	source := `
package pkg is
end package;

package body pkg is
  procedure proc is
    variable v : integer;
  begin
    v;
  end procedure;
end package body;
`
	diag := expectDiagnostic(t, source, diagnostics.InvalidCall, "Invalid procedure call")
	if len(diag.Related) != 1 || !strings.Contains(diag.Related[0].Message, "is not a procedure") {
		t.Errorf("expected an 'is not a procedure' note, got %v", diag.Related)
	}
}

func TestFunctionIsNotAProcedure(t *testing.T) {
	source := `
package pkg is
  function f return integer;
end package;

package body pkg is
  function f return integer is
  begin
    return 0;
  end function;

  procedure proc is
  begin
    f;
  end procedure;
end package body;
`
	diag := expectDiagnostic(t, source, diagnostics.InvalidCall, "Invalid procedure call")
	if len(diag.Related) != 1 || !strings.Contains(diag.Related[0].Message, "function 'f' is not a procedure") {
		t.Errorf("expected a function note, got %v", diag.Related)
	}
}

func TestSliceOfArray(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type arr_t is array (natural range <>) of character;
end package;

package body pkg is
  procedure proc is
    variable arr : arr_t(0 to 7);
    variable part : arr_t(0 to 3);
  begin
    part := arr(0 to 3);
  end procedure;
end package body;
`)
}

func TestSelectedNameThroughWorkLibrary(t *testing.T) {
	expectNoDiagnostics(t, `
package util is
  constant width : integer := 8;
end package;

package user is
  constant w : integer := work.util.width;
end package;
`)
}

func TestUseClauseMakesNamesVisible(t *testing.T) {
	expectNoDiagnostics(t, `
package util is
  constant width : integer := 8;
end package;

use work.util.all;

package user is
  constant w : integer := width;
end package;
`)
}
