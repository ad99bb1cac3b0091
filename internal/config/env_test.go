package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestListEnvOrDefault(t *testing.T) {
	t.Setenv("LIST_TEST", "")
	if got := listEnvOrDefault("LIST_TEST", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected default when unset, got %v", got)
	}

	t.Setenv("LIST_TEST", " a, ,b ")
	got := listEnvOrDefault("LIST_TEST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected trimmed non-empty entries, got %v", got)
	}
}

func TestParseDurationAcceptsSecondsAndGoSyntax(t *testing.T) {
	if d, ok := parseDuration("600"); !ok || d.Seconds() != 600 {
		t.Fatalf("expected 600s, got %s (%v)", d, ok)
	}
	if d, ok := parseDuration("10m"); !ok || d.Minutes() != 10 {
		t.Fatalf("expected 10m, got %s (%v)", d, ok)
	}
	if _, ok := parseDuration("-5"); ok {
		t.Fatal("expected negative seconds to be rejected")
	}
}
