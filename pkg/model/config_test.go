package model_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardeditor/pkg/model"
)

func TestConfigCloneIsShallowCopy(t *testing.T) {
	original := model.Config{"mode": "auto", "tags": []string{"a"}}
	clone := original.Clone()
	clone["mode"] = "manual"

	if got := original["mode"]; got != "auto" {
		t.Fatalf("clone mutated original: %v", got)
	}
	if diff := cmp.Diff([]string{"a"}, clone["tags"]); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}

	var nilConfig model.Config
	if got := nilConfig.Clone(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil clone, got %#v", got)
	}
}

func TestConfigStringList(t *testing.T) {
	cfg := model.Config{
		"strings": []string{"a", "b"},
		"anys":    []any{"c"},
		"mixed":   []any{"c", 1},
		"scalar":  "x",
	}

	got, ok, err := cfg.StringList("strings")
	if err != nil || !ok {
		t.Fatalf("strings: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("strings mismatch (-want +got):\n%s", diff)
	}

	got, _, err = cfg.StringList("anys")
	if err != nil {
		t.Fatalf("anys: %v", err)
	}
	if diff := cmp.Diff([]string{"c"}, got); diff != "" {
		t.Fatalf("anys mismatch (-want +got):\n%s", diff)
	}

	if _, ok, err := cfg.StringList("missing"); ok || err != nil {
		t.Fatalf("missing: ok=%v err=%v", ok, err)
	}
	if _, _, err := cfg.StringList("mixed"); err == nil {
		t.Fatalf("expected error for mixed list")
	}
	if _, ok, err := cfg.StringList("scalar"); !ok || err == nil {
		t.Fatalf("expected error for scalar, ok=%v err=%v", ok, err)
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"empty string", "", false},
		{"string", "on", true},
		{"zero int", 0, false},
		{"int", 3, true},
		{"zero float", 0.0, false},
		{"nan", math.NaN(), false},
		{"uint", uint8(1), true},
		{"empty list", []string{}, true},
		{"map", map[string]any{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := model.Truthy(tc.value); got != tc.want {
				t.Fatalf("Truthy(%#v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestConfigStringValue(t *testing.T) {
	cfg := model.Config{"name": "Kitchen", "count": 2, "unset": nil}
	if got := cfg.StringValue("name"); got != "Kitchen" {
		t.Fatalf("name: got %q", got)
	}
	if got := cfg.StringValue("count"); got != "2" {
		t.Fatalf("count: got %q", got)
	}
	if got := cfg.StringValue("unset"); got != "" {
		t.Fatalf("unset: got %q", got)
	}
	if got := cfg.StringValue("missing"); got != "" {
		t.Fatalf("missing: got %q", got)
	}
}
