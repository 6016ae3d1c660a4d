package logger

import (
	"strings"
	"testing"
)

func TestDeferClientBuffersAndSortsByLocation(t *testing.T) {
	client := NewDeferClient()
	client.Report(Diagnostic{Severity: Warning, Location: &Location{File: "b.cpp", Line: 2, Column: 0}, Text: "second"})
	client.Report(Diagnostic{Severity: Error, Location: &Location{File: "a.cpp", Line: 1, Column: 0}, Text: "first"})

	if !client.HasErrors() {
		t.Fatalf("expected HasErrors to be true after an Error diagnostic")
	}

	diags := client.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}
	if diags[0].Text != "first" {
		t.Fatalf("expected diagnostics sorted by file/line, got %q first", diags[0].Text)
	}
}

func TestDeferClientWithoutErrorsReportsFalse(t *testing.T) {
	client := NewDeferClient()
	client.Report(Diagnostic{Severity: Warning, Text: "just a warning"})
	if client.HasErrors() {
		t.Fatalf("expected HasErrors to be false with only warnings")
	}
}

func TestDiagnosticStringIncludesCaret(t *testing.T) {
	d := Diagnostic{
		Severity: Error,
		Location: &Location{File: "x.cpp", Line: 3, Column: 4, LineText: "    int x"},
		Text:     "expected ';'",
	}
	s := d.String()
	if !strings.Contains(s, "^") {
		t.Fatalf("expected a caret line in %q", s)
	}
}

func TestDiscardClientIsANoOp(t *testing.T) {
	var c DiscardClient
	c.Report(Diagnostic{Severity: Fatal, Text: "should go nowhere"})
}
