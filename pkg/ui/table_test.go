package ui

import (
	"strings"
	"testing"
)

func TestTable_Render(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "ASSET"},
		{Header: "SIZE", Align: "right"},
		{Header: "STATUS", Width: 10},
	})
	table.AddRow([]string{"home.ovpn", "312 B", "unpacked"})
	table.AddRow([]string{"a-much-longer-name.ovpn", "1.2 KB", "pending"})

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	for _, want := range []string{"ASSET", "home.ovpn", "a-much-longer-name.ovpn", "pending"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q", want)
		}
	}
}

func TestTable_Render_NoColumns(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("expected empty render, got %q", got)
	}
}

func TestPadString(t *testing.T) {
	tests := []struct {
		s, align string
		width    int
		expected string
	}{
		{"ab", "left", 4, "ab  "},
		{"ab", "right", 4, "  ab"},
		{"ab", "center", 5, " ab  "},
		{"abcdef", "left", 3, "abcdef"},
	}

	for _, tt := range tests {
		if got := padString(tt.s, tt.width, tt.align); got != tt.expected {
			t.Errorf("padString(%q, %d, %q) = %q, want %q", tt.s, tt.width, tt.align, got, tt.expected)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "0 B"},
		{312, "312 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}
