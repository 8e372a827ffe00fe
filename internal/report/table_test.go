package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Module", "Coef", "Mark"}
	rows := [][]string{
		{"ESP", "1", "12 / 20"},
		{"Library research", "2", "9.5 / 20"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Module            Coef      Mark" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "ESP                  1   12 / 20" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Library research     2  9.5 / 20" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableTrimsTrailingPadding(t *testing.T) {
	lines := formatTable([]string{"A", "B"}, [][]string{{"long value", ""}}, nil)
	if lines[1] != "long value" {
		t.Fatalf("expected trailing padding trimmed, got %q", lines[1])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil lines, got %v", lines)
	}
}
