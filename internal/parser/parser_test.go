package parser

import (
	"testing"

	"github.com/hdlvibe/vhdlang/internal/ast"
	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/lexer"
)

func parseSource(t *testing.T, source string) (*ast.DesignFile, *diagnostics.Bag) {
	t.Helper()
	bag := diagnostics.NewBag()
	file := New(lexer.New(source).Tokenize(), "t.vhd", bag).ParseDesignFile()
	return file, bag
}

func parseClean(t *testing.T, source string) *ast.DesignFile {
	t.Helper()
	file, bag := parseSource(t, source)
	if bag.Len() > 0 {
		for _, diag := range bag.Items() {
			t.Log(diag.String())
		}
		t.Fatalf("unexpected parse errors\nsource:\n%s", source)
	}
	return file
}

func TestParseEntityWithPorts(t *testing.T) {
	file := parseClean(t, `
entity ent is
  generic (
    width : integer := 8
  );
  port (
    clk : in bit;
    q   : out bit
  );
end entity;
`)
	if len(file.Units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(file.Units))
	}
	entity, ok := file.Units[0].(*ast.EntityDeclaration)
	if !ok {
		t.Fatalf("expected entity, got %T", file.Units[0])
	}
	if entity.Ident.Value != "ent" {
		t.Errorf("entity name: %s", entity.Ident.Value)
	}
	if len(entity.Generics) != 1 || len(entity.Ports) != 2 {
		t.Fatalf("got %d generics, %d ports", len(entity.Generics), len(entity.Ports))
	}
	if entity.Ports[0].Mode != ast.ModeIn || entity.Ports[1].Mode != ast.ModeOut {
		t.Error("port modes not parsed")
	}
	if entity.Generics[0].Default == nil {
		t.Error("generic default not parsed")
	}
}

func TestParseArchitectureWithProcess(t *testing.T) {
	file := parseClean(t, `
architecture rtl of ent is
  signal state : bit;
begin
  p0 : process (clk) is
    variable tmp : bit;
  begin
    tmp := state;
    state <= tmp;
  end process;
end architecture rtl;
`)
	arch := file.Units[0].(*ast.ArchitectureBody)
	if arch.EntityName.Value != "ent" {
		t.Errorf("entity name: %s", arch.EntityName.Value)
	}
	process, ok := arch.Stmts[0].(*ast.ProcessStatement)
	if !ok {
		t.Fatalf("expected process, got %T", arch.Stmts[0])
	}
	if process.Label == nil || process.Label.Value != "p0" {
		t.Error("process label not parsed")
	}
	if len(process.Sensitivity) != 1 || len(process.Decls) != 1 || len(process.Stmts) != 2 {
		t.Errorf("process shape: %d sensitivity, %d decls, %d stmts",
			len(process.Sensitivity), len(process.Decls), len(process.Stmts))
	}
}

func TestParsePackageWithTypes(t *testing.T) {
	file := parseClean(t, `
package pkg is
  type state_t is (idle, running, done);
  type word_t is array (natural range <>) of bit;
  type rec_t is record
    field : integer;
  end record;
  type ptr_t is access rec_t;
  type int_file_t is file of integer;
  type counter_t is range 0 to 255;
  subtype byte_t is integer range 0 to 255;
  constant k : integer;
end package;
`)
	pkg := file.Units[0].(*ast.PackageDeclaration)
	if len(pkg.Decls) != 8 {
		t.Fatalf("expected 8 declarations, got %d", len(pkg.Decls))
	}
	enum := pkg.Decls[0].(*ast.TypeDeclaration).Def.(*ast.EnumerationTypeDef)
	if len(enum.Literals) != 3 {
		t.Errorf("enum literals: %d", len(enum.Literals))
	}
	array := pkg.Decls[1].(*ast.TypeDeclaration).Def.(*ast.ArrayTypeDef)
	if len(array.Indexes) != 1 || array.Indexes[0].TypeMark == nil {
		t.Error("unconstrained array index not parsed")
	}
	constant := pkg.Decls[7].(*ast.ObjectDeclaration)
	if constant.Value != nil {
		t.Error("deferred constant must have no value")
	}
}

func TestParseUseClausesAndSelectedNames(t *testing.T) {
	file := parseClean(t, `
use std.textio.text;
use work.util.all;

package pkg is
end package;
`)
	pkg := file.Units[0].(*ast.PackageDeclaration)
	if len(pkg.Context) != 2 {
		t.Fatalf("expected 2 context items, got %d", len(pkg.Context))
	}
	first := pkg.Context[0].(*ast.UseClause)
	if len(first.Names[0].Parts) != 3 || first.Names[0].All {
		t.Error("use std.textio.text parsed wrong")
	}
	second := pkg.Context[1].(*ast.UseClause)
	if len(second.Names[0].Parts) != 2 || !second.Names[0].All {
		t.Error("use work.util.all parsed wrong")
	}
}

func TestParseAliasWithSignature(t *testing.T) {
	file := parseClean(t, `
package pkg is
  alias my_to_string is to_string[type_t, return string];
end package;
`)
	alias := file.Units[0].(*ast.PackageDeclaration).Decls[0].(*ast.AliasDeclaration)
	if alias.Signature == nil {
		t.Fatal("signature not parsed")
	}
	if len(alias.Signature.Params) != 1 || alias.Signature.Return == nil {
		t.Errorf("signature shape: %d params, return %v",
			len(alias.Signature.Params), alias.Signature.Return)
	}
}

func TestParseSubprogramsAndCalls(t *testing.T) {
	file := parseClean(t, `
package body pkg is
  function add(l : integer; r : integer) return integer is
  begin
    return l + r;
  end function;

  procedure run is
    file f : text;
  begin
    file_open(f, "foo.txt");
    assert not endfile(f) report "eof" severity warning;
    file_close(f);
  end procedure;
end package body;
`)
	body := file.Units[0].(*ast.PackageBody)
	fn := body.Decls[0].(*ast.SubprogramBody)
	if !fn.Spec.Function || len(fn.Spec.Params) != 2 || fn.Spec.Return == nil {
		t.Error("function spec parsed wrong")
	}
	proc := body.Decls[1].(*ast.SubprogramBody)
	if proc.Spec.Function || len(proc.Stmts) != 3 {
		t.Errorf("procedure shape: function=%v stmts=%d", proc.Spec.Function, len(proc.Stmts))
	}
	call, ok := proc.Stmts[0].(*ast.ProcedureCallStatement)
	if !ok || len(call.Call.Params) != 2 {
		t.Error("file_open call parsed wrong")
	}
}

func TestParseSliceVersusCall(t *testing.T) {
	file := parseClean(t, `
package body pkg is
  procedure proc is
  begin
    part := arr(0 to 3);
    elem := arr(0);
  end procedure;
end package body;
`)
	proc := file.Units[0].(*ast.PackageBody).Decls[0].(*ast.SubprogramBody)
	first := proc.Stmts[0].(*ast.VariableAssignment)
	if _, ok := first.Rhs.Simple.(*ast.SliceName); !ok {
		t.Errorf("arr(0 to 3) should parse as a slice, got %T", first.Rhs.Simple)
	}
	second := proc.Stmts[1].(*ast.VariableAssignment)
	if _, ok := second.Rhs.Simple.(*ast.CallOrIndexed); !ok {
		t.Errorf("arr(0) should parse as call-or-indexed, got %T", second.Rhs.Simple)
	}
}

func TestParseAggregates(t *testing.T) {
	file := parseClean(t, `
package pkg is
  constant a : word_t := (others => '0');
  constant b : rec_t := (field => 1, other_field => '1');
  constant c : integer := (1);
end package;
`)
	pkg := file.Units[0].(*ast.PackageDeclaration)
	agg := pkg.Decls[0].(*ast.ObjectDeclaration).Value.(*ast.Aggregate)
	if _, ok := agg.Assocs[0].Choices[0].(*ast.ChoiceOthers); !ok {
		t.Error("others choice not parsed")
	}
	named := pkg.Decls[1].(*ast.ObjectDeclaration).Value.(*ast.Aggregate)
	if len(named.Assocs) != 2 || named.Assocs[0].Choices == nil {
		t.Error("named record aggregate parsed wrong")
	}
	if _, ok := pkg.Decls[2].(*ast.ObjectDeclaration).Value.(*ast.IntegerLiteral); !ok {
		t.Error("a lone parenthesized expression must stay an expression")
	}
}

func TestParseAttributeSpecification(t *testing.T) {
	file := parseClean(t, `
entity test is
  attribute some_attr : string;
  attribute some_attr of test : signal is "some value";
end entity test;
`)
	entity := file.Units[0].(*ast.EntityDeclaration)
	if _, ok := entity.Decls[0].(*ast.AttributeDeclaration); !ok {
		t.Fatalf("expected attribute declaration, got %T", entity.Decls[0])
	}
	spec, ok := entity.Decls[1].(*ast.AttributeSpecification)
	if !ok {
		t.Fatalf("expected attribute specification, got %T", entity.Decls[1])
	}
	if spec.Class != ast.EntityClassSignal || spec.EntityName.Value != "test" {
		t.Error("attribute specification parsed wrong")
	}
}

func TestParseErrorRecovers(t *testing.T) {
	_, bag := parseSource(t, `
package pkg is
  constant : integer := 0;
  constant ok : integer := 1;
end package;
`)
	if !bag.HasErrors() {
		t.Fatal("expected a syntax error")
	}
}

func TestParseProtectedType(t *testing.T) {
	file := parseClean(t, `
package pkg is
  type shared_t is protected
    procedure increment;
  end protected;
  type shared_t is protected body
    procedure increment is
    begin
      null;
    end procedure;
  end protected body;
end package;
`)
	pkg := file.Units[0].(*ast.PackageDeclaration)
	if _, ok := pkg.Decls[0].(*ast.TypeDeclaration).Def.(*ast.ProtectedTypeDef); !ok {
		t.Error("protected type not parsed")
	}
	if _, ok := pkg.Decls[1].(*ast.TypeDeclaration).Def.(*ast.ProtectedTypeBody); !ok {
		t.Error("protected type body not parsed")
	}
}
