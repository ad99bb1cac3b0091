package config

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParseRounds(t *testing.T) {
	cases := []struct {
		raw     string
		want    []int
		wantErr bool
	}{
		{"", []int{1, 2, 3}, false},
		{"all", []int{1, 2, 3, 4, 5, 6, 7}, false},
		{"ALL", []int{1, 2, 3, 4, 5, 6, 7}, false},
		{"3, 1,1", []int{1, 3}, false},
		{"0", nil, true},
		{"8", nil, true},
		{"one", nil, true},
		{" , ", nil, true},
	}

	for _, tc := range cases {
		got, err := ParseRounds(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidRounds) {
				t.Fatalf("expected ErrInvalidRounds for %q, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.raw, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("expected %v for %q, got %v", tc.want, tc.raw, got)
		}
	}
}

func TestResolveDraftYear(t *testing.T) {
	if got := ResolveDraftYear(time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), 0); got != 2025 {
		t.Fatalf("expected current year before May, got %d", got)
	}
	if got := ResolveDraftYear(time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), 0); got != 2026 {
		t.Fatalf("expected next year from May on, got %d", got)
	}
	if got := ResolveDraftYear(time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), 2022); got != 2022 {
		t.Fatalf("expected configured year to win, got %d", got)
	}
}

func TestNormalizeFavorites(t *testing.T) {
	got := NormalizeFavorites([]string{" kc", "", "dal", "phi", "nyg"})
	if !reflect.DeepEqual(got, []string{"KC", "DAL", "PHI"}) {
		t.Fatalf("unexpected favorites %v", got)
	}
}
