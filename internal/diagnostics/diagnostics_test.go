package diagnostics

import (
	"strings"
	"testing"

	"github.com/hdlvibe/vhdlang/internal/token"
)

func at(file string, line, offset int) token.Pos {
	return token.Pos{File: file, Line: line, Column: 1, Offset: offset, EndOffset: offset + 1}
}

func TestSortedIsStableByPosition(t *testing.T) {
	bag := NewBag()
	bag.Push(NewError(NoDeclaration, at("b.vhd", 1, 0), "third"))
	bag.Push(NewError(NoDeclaration, at("a.vhd", 9, 80), "second"))
	bag.Push(NewError(NoDeclaration, at("a.vhd", 2, 10), "first"))

	var got []string
	for _, diag := range bag.Sorted() {
		got = append(got, diag.Message)
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: want %v, got %v", want, got)
		}
	}

	// Push order is preserved in Items.
	if bag.Items()[0].Message != "third" {
		t.Error("Items must preserve push order")
	}
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	bag := NewBag()
	bag.Push(NewWarning(Duplicate, at("a.vhd", 1, 0), "meh"))
	if bag.HasErrors() {
		t.Error("warnings are not errors")
	}
	bag.Push(NewError(Duplicate, at("a.vhd", 2, 5), "boom"))
	if !bag.HasErrors() {
		t.Error("errors must be detected")
	}
}

func TestStringRendersRelated(t *testing.T) {
	diag := NewError(Duplicate, at("a.vhd", 3, 20), "Duplicate declaration of 'x'")
	diag.AddRelated(at("a.vhd", 1, 0), "Previously defined here")
	rendered := diag.String()
	if !strings.Contains(rendered, "a.vhd:3:1: error: Duplicate declaration of 'x'") {
		t.Errorf("unexpected rendering: %s", rendered)
	}
	if !strings.Contains(rendered, "note: Previously defined here") {
		t.Errorf("missing related note: %s", rendered)
	}
}

func TestAppendMovesItems(t *testing.T) {
	a := NewBag()
	b := NewBag()
	b.Push(NewError(Duplicate, at("a.vhd", 1, 0), "x"))
	a.Append(b)
	if a.Len() != 1 || b.Len() != 0 {
		t.Errorf("append must move items: a=%d b=%d", a.Len(), b.Len())
	}
}
