package analyzer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hdlvibe/vhdlang/internal/diagnostics"
	"github.com/hdlvibe/vhdlang/internal/lexer"
	"github.com/hdlvibe/vhdlang/internal/parser"
)

const testFile = "t.vhd"

// analyzeSource lexes, parses and analyzes the input into a fresh root's
// libname library, returning all diagnostics. Syntax errors fail the test:
// these tests are about analysis.
func analyzeSource(t *testing.T, source string) *diagnostics.Bag {
	t.Helper()
	tokens := lexer.New(source).Tokenize()
	bag := diagnostics.NewBag()
	file := parser.New(tokens, testFile, bag).ParseDesignFile()
	for _, diag := range bag.Items() {
		if diag.Code == diagnostics.Syntax {
			t.Fatalf("syntax error: %s\nsource:\n%s", diag, source)
		}
	}

	root := NewRoot()
	analyzer := New(root, "libname")
	analyzer.AnalyzeFile(file, bag)
	return bag
}

// expectNoDiagnostics asserts that the source analyzes cleanly.
func expectNoDiagnostics(t *testing.T, source string) {
	t.Helper()
	bag := analyzeSource(t, source)
	if bag.Len() > 0 {
		var msgs []string
		for _, diag := range bag.Items() {
			msgs = append(msgs, diag.String())
		}
		t.Fatalf("expected no diagnostics, got:\n%s\nsource:\n%s", strings.Join(msgs, "\n"), source)
	}
}

// expected is the comparable shape of one diagnostic in end-to-end tests.
type expected struct {
	Line    int
	Column  int
	Code    diagnostics.Code
	Message string
}

func flatten(bag *diagnostics.Bag) []expected {
	var got []expected
	for _, diag := range bag.Sorted() {
		got = append(got, expected{
			Line:    diag.Pos.Line,
			Column:  diag.Pos.Column,
			Code:    diag.Code,
			Message: diag.Message,
		})
	}
	return got
}

// expectDiagnostics asserts the exact diagnostic list, in source order.
func expectDiagnostics(t *testing.T, source string, want []expected) *diagnostics.Bag {
	t.Helper()
	bag := analyzeSource(t, source)
	if diff := cmp.Diff(want, flatten(bag)); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s\nsource:\n%s", diff, source)
	}
	return bag
}

// expectDiagnostic asserts a single diagnostic with the given code whose
// message contains the fragment, and returns it for further checks.
func expectDiagnostic(t *testing.T, source string, code diagnostics.Code, contains string) diagnostics.Diagnostic {
	t.Helper()
	bag := analyzeSource(t, source)
	if bag.Len() != 1 {
		var msgs []string
		for _, diag := range bag.Items() {
			msgs = append(msgs, diag.String())
		}
		t.Fatalf("expected exactly one diagnostic, got %d:\n%s\nsource:\n%s",
			bag.Len(), strings.Join(msgs, "\n"), source)
	}
	diag := bag.Items()[0]
	if diag.Code != code {
		t.Errorf("expected code %s, got %s (%s)", code, diag.Code, diag.Message)
	}
	if !strings.Contains(diag.Message, contains) {
		t.Errorf("expected message to contain %q, got %q", contains, diag.Message)
	}
	return diag
}

// srcPos finds the 1-based line and column of the first occurrence of a
// fragment, mirroring how the expected positions are written in tests.
func srcPos(t *testing.T, source, fragment string) (line, column int) {
	t.Helper()
	index := strings.Index(source, fragment)
	if index < 0 {
		t.Fatalf("fragment %q not found in source", fragment)
	}
	line = 1 + strings.Count(source[:index], "\n")
	lastNL := strings.LastIndex(source[:index], "\n")
	column = index - lastNL
	return line, column
}

// expectDiagAt additionally pins the diagnostic to a source fragment.
func expectDiagAt(t *testing.T, source, fragment string, code diagnostics.Code, contains string) {
	t.Helper()
	diag := expectDiagnostic(t, source, code, contains)
	line, column := srcPos(t, source, fragment)
	if diag.Pos.Line != line || diag.Pos.Column != column {
		t.Errorf("expected diagnostic at %d:%d (%q), got %d:%d",
			line, column, fragment, diag.Pos.Line, diag.Pos.Column)
	}
}
