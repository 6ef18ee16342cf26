package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Event", KeyEvent, "buildSuccess", Event("buildSuccess")},
		{"ProjectRoot", KeyProjectRoot, "/p", ProjectRoot("/p")},
		{"Source", KeySource, "/p/static", Source("/p/static")},
		{"Dest", KeyDest, "dist", Dest("dist")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Glob", KeyGlob, "**", Glob("**")},
		{"Plugin", KeyPlugin, "static-copy", Plugin("static-copy")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if tc.attr.Value.String() != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %s", tc.name, tc.attrVal, tc.attr.Value.String())
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if a := Entry(3); a.Key != KeyEntry || a.Value.Int64() != 3 {
		t.Fatalf("unexpected entry attr %v", a)
	}
	if a := Count(7); a.Key != KeyCount || a.Value.Int64() != 7 {
		t.Fatalf("unexpected count attr %v", a)
	}
	if a := DurationMS(1.5); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Fatalf("unexpected duration attr %v", a)
	}
}

func TestErrorHelper(t *testing.T) {
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("nil error should produce empty value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Key != KeyError || a.Value.String() != "boom" {
		t.Fatalf("unexpected error attr %v", a)
	}
}
