package analyzer

import (
	"testing"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
)

func TestProtectedTypeWithBodyIsClean(t *testing.T) {
	expectNoDiagnostics(t, `
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
}

func TestProtectedTypeMissingBody(t *testing.T) {
	source := `
package pkg is
  type shared_t is protected
    procedure increment;
  end protected;
end package;
`
	expectDiagnostic(t, source, diagnostics.MissingProtectedBody,
		"Missing body for protected type 'shared_t'")
}

func TestProtectedBodyDeferredToPackageBody(t *testing.T) {
	expectNoDiagnostics(t, `
package pkg is
  type shared_t is protected
    procedure increment;
  end protected;
end package;

package body pkg is
  type shared_t is protected body
    procedure increment is
    begin
      null;
    end procedure;
  end protected body;
end package body;
`)
}

func TestProtectedBodyWithoutDeclaration(t *testing.T) {
	source := `
package pkg is
  type shared_t is protected body
  end protected body;
end package;
`
	expectDiagnostic(t, source, diagnostics.NoDeclaration,
		"No declaration of protected type 'shared_t'")
}

func TestDuplicateProtectedBody(t *testing.T) {
	source := `
package pkg is
  type shared_t is protected
  end protected;
  type shared_t is protected body
  end protected body;
  type shared_t is protected body
  end protected body;
end package;
`
	expectDiagnostic(t, source, diagnostics.Duplicate,
		"Duplicate body for protected type 'shared_t'")
}
