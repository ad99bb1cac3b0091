package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestWithCommonAppendsServiceAndVersion(t *testing.T) {
	attrs := WithCommon(nil, "nfl-draft-service", "v1")
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != FieldService || attrs[0].Value.String() != "nfl-draft-service" {
		t.Fatalf("expected service attr, got %+v", attrs[0])
	}
	if attrs[1].Key != FieldVersion || attrs[1].Value.String() != "v1" {
		t.Fatalf("expected version attr, got %+v", attrs[1])
	}
}

func TestWithCommonSkipsEmpty(t *testing.T) {
	attrs := WithCommon([]slog.Attr{{Key: FieldCycleID, Value: slog.StringValue("x")}}, "", "")
	if len(attrs) != 1 || attrs[0].Key != FieldCycleID {
		t.Fatalf("expected original attrs preserved, got %+v", attrs)
	}
}

func TestDraftFieldKeys(t *testing.T) {
	want := map[string]string{
		FieldCycleID:  "cycle_id",
		FieldCacheKey: "cache_key",
		FieldSeason:   "season",
		FieldRound:    "round",
		FieldStatus:   "draft_status",
		FieldLive:     "live",
		FieldMode:     "mode",
		FieldEndpoint: "endpoint",
		FieldURL:      "url",
		FieldError:    "error",
	}
	for got, expected := range want {
		if got != expected {
			t.Fatalf("expected key %q, got %q", expected, got)
		}
	}
}

func TestFieldKeysAreDistinct(t *testing.T) {
	keys := []string{
		FieldService, FieldVersion, FieldRequestID, FieldPath, FieldMethod,
		FieldStatusCode, FieldCount, FieldDurationMS, FieldURL, FieldEndpoint,
		FieldCacheKey, FieldSeason, FieldRound, FieldStatus, FieldLive,
		FieldMode, FieldCycleID, FieldError,
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			t.Fatalf("duplicate field key %q", k)
		}
		seen[k] = true
	}
}

func TestHelpersWriteDraftFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Info(logger, "draft data updated", FieldSeason, 2026, FieldStatus, "live", FieldRound, 2)
	Warn(logger, "cache read failed", FieldCacheKey, "nfl_draft_site_2026")
	Error(logger, "draft update failed", errors.New("boom"), FieldCycleID, "abc")

	out := buf.String()
	for _, frag := range []string{
		"season=2026", "draft_status=live", "round=2",
		"cache_key=nfl_draft_site_2026",
		"cycle_id=abc", "error=boom", "level=ERROR",
	} {
		if !strings.Contains(out, frag) {
			t.Fatalf("expected %q in output, got %s", frag, out)
		}
	}
}

func TestHelpersIgnoreNilLogger(t *testing.T) {
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", errors.New("boom"))
}
