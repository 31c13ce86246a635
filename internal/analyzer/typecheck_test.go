package analyzer

import (
	"strings"
	"testing"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
)

func TestObjectTypeMismatch(t *testing.T) {
	source := `
package pkg is
  constant flag : boolean := true;
  constant num : integer := flag;
end package;
`
	diag := expectDiagnostic(t, source, diagnostics.TypeMismatch, "does not match")
	if !strings.Contains(diag.Message, "constant 'flag'") {
		t.Errorf("message should describe the resolved entity, got %q", diag.Message)
	}
}

func TestLiteralMismatch(t *testing.T) {
	source := `
package pkg is
  constant num : integer := "text";
end package;
`
	expectDiagnostic(t, source, diagnostics.TypeMismatch, "string literal does not match")
}

func TestCharacterLiteralResolvesAgainstEnum(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  constant b : bit := '1';
  constant c : character := 'x';
end package;
`)
}

func TestCharacterLiteralRejectedForWrongEnum(t *testing.T) {
	source := `
package pkg is
  constant b : bit := 'x';
end package;
`
	expectDiagnostic(t, source, diagnostics.TypeMismatch, "character literal 'x' does not match")
}

func TestEnumLiteralByName(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type state_t is (idle, running, done);
  constant reset_state : state_t := idle;
end package;
`)
}

func TestEnumLiteralSharedAcrossTypes(t *testing.T) {
	// `off` exists in both enums; the expected type disambiguates.
	expectNoDiagnostics(t, `
package pkg is
  type power_t is (off, on);
  type lamp_t is (off, dim, bright);
  constant p : power_t := off;
  constant l : lamp_t := off;
end package;
`)
}

func TestQualifiedExpressionMismatch(t *testing.T) {
	source := `
package pkg is
  constant num : integer := boolean'(true);
end package;
`
	expectDiagnostic(t, source, diagnostics.TypeMismatch, "does not match")
}

func TestQualifiedExpressionFlowsTargetInward(t *testing.T) {
	source := `
package pkg is
  constant flag : boolean := boolean'(1);
end package;
`
	expectDiagnostic(t, source, diagnostics.TypeMismatch, "integer literal does not match")
}

func TestPhysicalLiteralTyping(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  constant delay : time := 5 ns;
end package;
`)
}

func TestPhysicalLiteralWrongTarget(t *testing.T) {
	source := `
package pkg is
  constant num : integer := 5 ns;
end package;
`
	expectDiagnostic(t, source, diagnostics.TypeMismatch, "physical literal does not match")
}

func TestNullLiteralRequiresAccessType(t *testing.T) {
	source := `
package pkg is
  type ptr_t is access string;
  constant num : integer := null;
end package;
`
	expectDiagnostic(t, source, diagnostics.TypeMismatch, "null literal does not match")
}

func TestOverloadResolutionNoCandidate(t *testing.T) {
	source := `
package pkg is
  function f(x : integer) return integer;
  constant flag : boolean := f(0);
end package;
`
	diag := expectDiagnostic(t, source, diagnostics.InvalidCall, "Could not resolve 'f'")
	if len(diag.Related) != 1 {
		t.Fatalf("expected one candidate note, got %d", len(diag.Related))
	}
	if !strings.HasPrefix(diag.Related[0].Message, "candidate: f[integer return integer]") {
		t.Errorf("unexpected candidate note: %s", diag.Related[0].Message)
	}
}

func TestOverloadResolutionByReturnType(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  function f(x : integer) return integer;
  function f(x : integer) return boolean;
  constant flag : boolean := f(0);
  constant num : integer := f(1);
end package;
`)
}

func TestOverloadResolutionByArgumentType(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  function f(x : integer) return integer;
  function f(x : boolean) return integer;
  constant num : integer := f(true);
end package;
`)
}

func TestAggregateForRecordType(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type rec_t is record
    num  : integer;
    flag : boolean;
  end record;
  constant r : rec_t := (num => 1, flag => true);
end package;
`)
}

func TestRecordAggregateUnknownField(t *testing.T) {
	source := `
package pkg is
  type rec_t is record
    num : integer;
  end record;
  constant r : rec_t := (missing => 1);
end package;
`
	expectDiagnostic(t, source, diagnostics.NoDeclarationWithin,
		"No declaration of 'missing' within record type 'rec_t'")
}

func TestRecordAggregateFieldTypeFlows(t *testing.T) {
	source := `
package pkg is
  type rec_t is record
    num : integer;
  end record;
  constant r : rec_t := (num => true);
end package;
`
	expectDiagnostic(t, source, diagnostics.InvalidCall, "Could not resolve 'true'")
}

func TestRecordAggregateOthersAccepted(t *testing.T) {
	// `others` is accepted without content typing for now.
	expectNoDiagnostics(t, `
package pkg is
  type rec_t is record
    num : integer;
  end record;
  constant r : rec_t := (others => 0);
end package;
`)
}

func TestArrayAggregatePrefersElementType(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type arr_t is array (natural range <>) of bit;
  constant a : arr_t := ('0', '1');
  constant b : arr_t := (0 => '1', 1 => '0');
end package;
`)
}

func TestArrayAggregateFallsBackToArrayType(t *testing.T) {
	// A positional element can itself be a whole array value.
	expectNoDiagnostics(t, `
package pkg is
  type arr_t is array (natural range <>) of bit;
  constant a : arr_t := "01";
  constant b : arr_t := (others => '0');
  constant c : arr_t := ("01", "10");
end package;
`)
}

func TestArrayAggregateElementMismatch(t *testing.T) {
	source := `
package pkg is
  type arr_t is array (natural range <>) of bit;
  constant a : arr_t := (1, 2);
end package;
`
	bag := analyzeSource(t, source)
	if bag.Len() != 2 {
		t.Fatalf("expected one mismatch per element, got %d", bag.Len())
	}
	for _, diag := range bag.Items() {
		if diag.Code != diagnostics.TypeMismatch {
			t.Errorf("unexpected diagnostic: %s", diag)
		}
		if !strings.Contains(diag.Message, "integer literal does not match") {
			t.Errorf("unexpected message: %s", diag.Message)
		}
	}
}

func TestCompositeDoesNotMatchScalar(t *testing.T) {
	source := `
package pkg is
  constant num : integer := (1, 2);
end package;
`
	expectDiagnostic(t, source, diagnostics.TypeMismatch, "Composite does not match")
}
