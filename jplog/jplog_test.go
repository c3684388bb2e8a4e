package jplog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFilterAllows(t *testing.T) {
	cases := []struct {
		name string
		f    Filter
		text string
		want bool
	}{
		{"disabled", Filter{}, "本を読む", false},
		{"enabled no filters", Filter{Enabled: true}, "本を読む", true},
		{"exact match", Filter{Enabled: true, Exact: "本を読む"}, "本を読む", true},
		{"exact mismatch", Filter{Enabled: true, Exact: "本"}, "本を読む", false},
		{"contains match", Filter{Enabled: true, Contains: "読む"}, "本を読む", true},
		{"contains mismatch", Filter{Enabled: true, Contains: "借りる"}, "本を読む", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.f.Allows(c.text); got != c.want {
				t.Errorf("Allows(%q) = %v, want %v", c.text, got, c.want)
			}
		})
	}
}

func TestFilterFromEnv(t *testing.T) {
	t.Setenv("JP_SEGMENT_DEBUG", "yes")
	t.Setenv("JP_SEGMENT_DEBUG_EXACT", "本")
	t.Setenv("JP_SEGMENT_DEBUG_CONTAINS", "")

	f := FilterFromEnv()
	if !f.Enabled || f.Exact != "本" || f.Contains != "" {
		t.Errorf("FilterFromEnv = %+v", f)
	}

	t.Setenv("JP_SEGMENT_DEBUG", "off")
	if FilterFromEnv().Enabled {
		t.Error("expected non-truthy JP_SEGMENT_DEBUG to leave the filter disabled")
	}
}

func TestDumpJSONWritesPrettyFile(t *testing.T) {
	dir := t.TempDir()
	if err := DumpJSON(dir, "trace", map[string]string{"text": "本"}); err != nil {
		t.Fatalf("DumpJSON: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "trace.json"))
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("dump is not valid JSON: %v", err)
	}
	if decoded["text"] != "本" {
		t.Errorf("dump content = %+v", decoded)
	}
}
