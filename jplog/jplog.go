// Package jplog is the module's structured-logging wrapper around zerolog.
// It also carries DumpJSON, which the Segmenter uses for its optional debug
// dump of anchored morpheme/word pairs.
package jplog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/pretty"
)

// Filter gates debug-level output on the text being processed: an enable
// flag plus an optional exact-match string and an optional contains-match
// string. Both string filters are applied only when non-empty.
type Filter struct {
	Enabled  bool
	Exact    string
	Contains string
}

// FilterFromEnv builds a Filter from the JP_SEGMENT_DEBUG enable flag and
// the JP_SEGMENT_DEBUG_EXACT / JP_SEGMENT_DEBUG_CONTAINS string filters.
func FilterFromEnv() Filter {
	return Filter{
		Enabled:  envTruthy("JP_SEGMENT_DEBUG"),
		Exact:    os.Getenv("JP_SEGMENT_DEBUG_EXACT"),
		Contains: os.Getenv("JP_SEGMENT_DEBUG_CONTAINS"),
	}
}

func envTruthy(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Allows reports whether diagnostics for text pass the filter's gates.
func (f Filter) Allows(text string) bool {
	if !f.Enabled {
		return false
	}
	if f.Exact != "" && text != f.Exact {
		return false
	}
	if f.Contains != "" && !strings.Contains(text, f.Contains) {
		return false
	}
	return true
}

// Debug logs a debug-level structured event through the package-level
// zerolog logger, gated by f against the text being processed.
func Debug(f Filter, text, label string, fields map[string]string) {
	if !f.Allows(text) {
		return
	}
	event := log.Debug().Str("component", label)
	for k, v := range fields {
		event = event.Str(k, v)
	}
	event.Msg(label)
}

// SetLevel adjusts the global zerolog level.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// DumpJSON pretty-prints v and atomically writes it to dir/name.json
// (temp-file-then-rename so a concurrent reader never observes a partial
// write).
func DumpJSON(dir, name string, v any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jplog: mkdir %s: %w", dir, err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("jplog: marshal %s: %w", name, err)
	}
	out := pretty.Pretty(raw)
	dest := filepath.Join(dir, name+".json")
	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("jplog: create temp for %s: %w", name, err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("jplog: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("jplog: close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("jplog: rename %s: %w", name, err)
	}
	return nil
}
