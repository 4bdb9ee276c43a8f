package keybinds

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSplitKeys(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"ctrl+r, f5", []string{"ctrl+r", "f5"}},
		{"space,x", []string{" ", "x"}},
		{",", []string{","}},
		{" , ", nil},
	}
	for _, tt := range tests {
		if got := SplitKeys(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitKeys(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseConfig_AllowsComments(t *testing.T) {
	data := []byte(`{
		// refresh on F5 only
		"normal": { "refresh": "f5" },
		"select": { "toggle": "space,x" }, /* trailing comma below */
	}`)

	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Normal["refresh"] != "f5" {
		t.Errorf("Normal[refresh] = %q, want f5", cfg.Normal["refresh"])
	}
	if cfg.Select["toggle"] != "space,x" {
		t.Errorf("Select[toggle] = %q, want space,x", cfg.Select["toggle"])
	}
}

func TestApplyConfig_ReplacesDefaults(t *testing.T) {
	r := NewDefaultRegistry()
	cfg := &Config{Normal: map[string]string{"refresh": "f5"}}

	if err := ApplyConfig(r, cfg); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}
	if _, ok := r.Match(ContextNormal, "ctrl+r"); ok {
		t.Error("ctrl+r should no longer refresh")
	}
	if got, _ := r.Match(ContextNormal, "f5"); got != ActionRefresh {
		t.Errorf("Match(f5) = %q, want %q", got, ActionRefresh)
	}
}

func TestApplyConfig_UnknownAction(t *testing.T) {
	err := ApplyConfig(NewRegistry(), &Config{Normal: map[string]string{"explode": "x"}})
	if err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Errorf("ApplyConfig() error = %v, want unknown action", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		r, err := LoadOrDefault(filepath.Join(dir, "none.jsonc"))
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if _, ok := r.Match(ContextNormal, "ctrl+r"); !ok {
			t.Error("expected default bindings")
		}
	})

	t.Run("override", func(t *testing.T) {
		path := filepath.Join(dir, "ok.jsonc")
		os.WriteFile(path, []byte(`{"viewer": {"close_modal": "esc,x"}}`), 0644)

		r, err := LoadOrDefault(path)
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if got, _ := r.Match(ContextViewer, "x"); got != ActionCloseModal {
			t.Errorf("Match(x) = %q, want %q", got, ActionCloseModal)
		}
		if _, ok := r.Match(ContextViewer, "q"); ok {
			t.Error("q should have been replaced")
		}
	})

	t.Run("reserved key falls back to defaults", func(t *testing.T) {
		path := filepath.Join(dir, "bad.jsonc")
		os.WriteFile(path, []byte(`{"normal": {"refresh": "ctrl+c"}}`), 0644)

		r, err := LoadOrDefault(path)
		if err == nil {
			t.Fatal("expected validation error")
		}
		if got, _ := r.Match(ContextNormal, "ctrl+c"); got != ActionQuitForce {
			t.Errorf("Match(ctrl+c) = %q, want %q", got, ActionQuitForce)
		}
	})

	t.Run("unreachable modal", func(t *testing.T) {
		path := filepath.Join(dir, "trap.jsonc")
		os.WriteFile(path, []byte(`{"viewer": {"close_modal": ""}}`), 0644)

		if _, err := LoadOrDefault(path); err == nil {
			t.Error("expected error when a modal has no close key")
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		path := filepath.Join(dir, "broken.jsonc")
		os.WriteFile(path, []byte(`{"normal": `), 0644)

		r, err := LoadOrDefault(path)
		if err == nil {
			t.Fatal("expected parse error")
		}
		if r == nil {
			t.Fatal("defaults must be returned alongside the error")
		}
	})
}
