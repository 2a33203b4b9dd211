package canonical

import (
	"encoding/json"
	"testing"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("short text", 50); got != "short text" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("the quick brown fox jumps", 12); got != "the quick..." {
		t.Fatalf("unexpected %q", got)
	}
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	got := StripHTML("<p>Arsenal <b>win</b></p>\n<p>again &amp; again</p>")
	if got != "Arsenal win again & again" {
		t.Fatalf("unexpected %q", got)
	}
	if got := StripHTML("  plain   text "); got != "plain text" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	if got := Slugify("Atlético de Madrid -- 2025!"); got != "atletico-de-madrid-2025" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestFoldAccents(t *testing.T) {
	t.Parallel()

	if got := FoldAccents("bảng xếp hạng đội"); got != "bang xep hang doi" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSafeNumbers(t *testing.T) {
	t.Parallel()

	if SafeInt("1,234") != 1234 || SafeInt(12.9) != 12 || SafeInt(nil) != 0 || SafeInt("x") != 0 {
		t.Fatalf("unexpected SafeInt results")
	}
	if SafeInt(json.Number("42")) != 42 {
		t.Fatalf("stringer numbers must parse")
	}
	if SafeFloat("7.25") != 7.25 || SafeFloat(3) != 3 || SafeFloat("nan") != 0 {
		t.Fatalf("unexpected SafeFloat results")
	}
}
