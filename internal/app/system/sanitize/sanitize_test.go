package sanitize_test

import (
	"testing"

	"github.com/sharehub/sharehub/internal/app/system/sanitize"
)

func TestText_Empty(t *testing.T) {
	if got := sanitize.Text(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestText_PlainText(t *testing.T) {
	if got := sanitize.Text("Quarterly Report"); got != "Quarterly Report" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestText_StripsTags(t *testing.T) {
	if got := sanitize.Text("<b>Quarterly</b> Report"); got != "Quarterly Report" {
		t.Errorf("expected tags removed, got %q", got)
	}
}

func TestText_RemovesScript(t *testing.T) {
	got := sanitize.Text("Notes<script>alert('xss')</script>")
	if got != "Notes" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestText_TrimsWhitespace(t *testing.T) {
	if got := sanitize.Text("  padded  "); got != "padded" {
		t.Errorf("expected trimmed, got %q", got)
	}
}
