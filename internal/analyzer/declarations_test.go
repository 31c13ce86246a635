package analyzer

import (
	"strings"
	"testing"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
)

func TestDuplicateProcedureWithSignature(t *testing.T) {
	source := `
package pkg is
  procedure p(x : integer);
  procedure p(y : integer);
end package;
`
	diag := expectDiagnostic(t, source, diagnostics.Duplicate,
		"Duplicate declaration of 'p' with signature [integer]")
	line, column := srcPos(t, source, "procedure p(y : integer);")
	// The entity position anchors at the designator.
	if diag.Pos.Line != line || diag.Pos.Column != column+len("procedure ") {
		t.Errorf("expected error at the second declaration, got %d:%d", diag.Pos.Line, diag.Pos.Column)
	}
	if len(diag.Related) != 1 || diag.Related[0].Message != "Previously defined here" {
		t.Fatalf("expected a 'Previously defined here' note, got %v", diag.Related)
	}
	firstLine, _ := srcPos(t, source, "procedure p(x : integer);")
	if diag.Related[0].Pos.Line != firstLine {
		t.Errorf("note must point at the first declaration, got line %d", diag.Related[0].Pos.Line)
	}
}

func TestDeclarationNotAllowedEverywhere(t *testing.T) {
	source := `
entity ent is
end entity;

architecture arch of ent is

function my_func return natural is
    signal x : bit;
begin

end my_func;
begin

    my_block : block
        variable y : natural;
    begin
    end block my_block;

end architecture;
`
	sigLine, sigCol := srcPos(t, source, "signal x : bit;")
	varLine, varCol := srcPos(t, source, "variable y : natural;")
	expectDiagnostics(t, source, []expected{
		{Line: sigLine, Column: sigCol, Code: diagnostics.DeclarationNotAllowed,
			Message: "signal declaration not allowed here"},
		{Line: varLine, Column: varCol, Code: diagnostics.DeclarationNotAllowed,
			Message: "variable declaration not allowed here"},
	})
}

func TestAttributeWithWrongClass(t *testing.T) {
	source := `
entity test is
    attribute some_attr : string;
    attribute some_attr of test : signal is "some value";
end entity test;
`
	expectDiagAt(t, source, "test : signal", diagnostics.MismatchedEntityClass,
		"entity 'test' is not of class signal")
}

func TestAttributeSeesThroughAliases(t *testing.T) {
	source := `
entity test is
    port (
        clk : in bit
    );
    alias aliased_clk is clk;
    attribute some_attr : string;
    attribute some_attr of aliased_clk : entity is "some value";
end entity test;
`
	expectDiagAt(t, source, "aliased_clk : entity", diagnostics.MismatchedEntityClass,
		"port 'clk' : in is not of class entity")
}

func TestAttributeWithMatchingClassIsClean(t *testing.T) {
	expectNoDiagnostics(t, `
entity test is
    port (
        clk : in bit
    );
    attribute some_attr : string;
    attribute some_attr of clk : signal is "some value";
end entity test;
`)
}

func TestDuplicateObjectDeclaration(t *testing.T) {
	source := `
package pkg is
  constant a : integer := 0;
  constant a : integer := 1;
end package;
`
	diag := expectDiagnostic(t, source, diagnostics.Duplicate, "Duplicate declaration of 'a'")
	if len(diag.Related) != 1 {
		t.Fatalf("expected one related note, got %d", len(diag.Related))
	}
}

func TestHomographAcrossKinds(t *testing.T) {
	source := `
package pkg is
  type a is range 0 to 1;
  constant a : integer := 0;
end package;
`
	expectDiagnostic(t, source, diagnostics.Duplicate, "Duplicate declaration of 'a'")
}

func TestSubprogramDeclarationThenBodyIsClean(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  procedure p(x : integer);
end package;

package body pkg is
  procedure p(x : integer) is
  begin
    null;
  end procedure;
end package body;
`)
}

func TestRecordAndSubtypeDeclarations(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type rec_t is record
    field : integer;
  end record;
  subtype small_t is integer range 0 to 7;
  constant c : rec_t := (field => 0);
end package;
`)
}

func TestInterfaceDefaultsAreTypeChecked(t *testing.T) {
	source := `
entity ent is
  generic (
    depth : integer := "nope"
  );
end entity;
`
	diag := expectDiagnostic(t, source, diagnostics.TypeMismatch, "does not match")
	if !strings.Contains(diag.Message, "integer") {
		t.Errorf("message should mention the expected type, got %q", diag.Message)
	}
}
