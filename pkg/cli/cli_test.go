package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_RowsAndHeaders(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTableTo(&buf, "DEVICE", "VRF", "PORT")
	tbl.Row("leaf1", "default", "443")
	tbl.Row("leaf2", "mgmt", "8443")
	tbl.Flush()

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (header, divider, 2 rows):\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "DEVICE") || !strings.Contains(lines[0], "PORT") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "------") {
		t.Errorf("divider line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "leaf1") || !strings.Contains(lines[3], "8443") {
		t.Errorf("rows:\n%s", out)
	}
}

func TestTable_EmptyProducesNoOutput(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTableTo(&buf, "DEVICE", "VRF")
	tbl.Flush()
	if buf.Len() != 0 {
		t.Errorf("empty table produced output: %q", buf.String())
	}
}

func TestColorFunctions(t *testing.T) {
	if !colorEnabled {
		t.Skip("NO_COLOR is set")
	}

	tests := []struct {
		name   string
		fn     func(string) string
		prefix string
	}{
		{"Green", Green, "\033[32m"},
		{"Yellow", Yellow, "\033[33m"},
		{"Red", Red, "\033[31m"},
		{"Bold", Bold, "\033[1m"},
		{"Dim", Dim, "\033[2m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn("hello")
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("%s should start with %q", tt.name, tt.prefix)
			}
			if !strings.Contains(got, "hello") {
				t.Errorf("%s should contain the input string", tt.name)
			}
			if !strings.HasSuffix(got, "\033[0m") {
				t.Errorf("%s should end with reset code", tt.name)
			}
		})
	}
}
