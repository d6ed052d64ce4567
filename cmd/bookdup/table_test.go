package main

import (
	"strings"
	"testing"
)

func TestRenderTableWrapsFreeTextColumns(t *testing.T) {
	long := strings.Repeat("a", 60)
	out := renderTable(
		[]column{numCol("ID"), wideCol("Title")},
		[][]string{{"1", long}},
	)
	if !strings.Contains(out, strings.Repeat("a", freeTextWidth)) {
		t.Fatalf("long title not rendered: %q", out)
	}
	if strings.Contains(out, strings.Repeat("a", freeTextWidth+1)) {
		t.Fatalf("title column did not wrap at the width cap: %q", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]column{textCol("Key"), textCol("Value")},
		[][]string{{"only-key"}},
	)
	if !strings.Contains(out, "only-key") {
		t.Fatalf("row missing: %q", out)
	}
}

func TestRenderTableNoColumns(t *testing.T) {
	if out := renderTable(nil, nil); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}
