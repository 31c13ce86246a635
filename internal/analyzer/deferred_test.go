package analyzer

import (
	"testing"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
)

func TestDeferredConstantWithoutFullDeclaration(t *testing.T) {
	source := `
package pkg is
  constant k : integer;
end package;

package body pkg is
end package body;
`
	expectDiagAt(t, source, "k : integer", diagnostics.MissingDeferredConstant,
		"Deferred constant 'k' lacks corresponding full constant declaration in package body")
}

func TestDeferredConstantWithoutBodyAtAll(t *testing.T) {
	source := `
package pkg is
  constant k : integer;
end package;
`
	expectDiagnostic(t, source, diagnostics.MissingDeferredConstant,
		"Deferred constant 'k' lacks corresponding full constant declaration in package body")
}

func TestDeferredConstantFulfilled(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  constant k : integer;
end package;

package body pkg is
  constant k : integer := 42;
end package body;
`)
}

func TestDeferredConstantOutsidePackage(t *testing.T) {
	source := `
entity ent is
end entity;

architecture arch of ent is
  constant k : integer;
begin
end architecture;
`
	expectDiagnostic(t, source, diagnostics.DeclarationNotAllowed,
		"Deferred constants are only allowed in package declarations")
}

func TestDeferredConstantUsableBeforeFulfillment(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  constant k : integer;
  constant twice : integer := k + k;
end package;

package body pkg is
  constant k : integer := 21;
end package body;
`)
}
