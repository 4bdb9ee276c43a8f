package keybinds

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Type: "conflict", Context: ContextNormal, Key: "ctrl+c", Message: "reserved key rebound to refresh"}
	want := "[conflict] ctrl+c in context 'normal': reserved key rebound to refresh"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationResult_String(t *testing.T) {
	empty := &ValidationResult{}
	if got := empty.String(); got != "No issues found" {
		t.Errorf("String() = %q, want %q", got, "No issues found")
	}

	r := &ValidationResult{
		Errors:   []ValidationError{{Type: "invalid", Context: ContextViewer, Message: "x"}},
		Warnings: []ValidationError{{Type: "warning", Context: ContextField, Key: "esc", Message: "y"}},
	}
	s := r.String()
	if !strings.Contains(s, "Errors (1)") || !strings.Contains(s, "Warnings (1)") {
		t.Errorf("String() = %q", s)
	}
	if !r.HasErrors() || !r.HasWarnings() {
		t.Error("HasErrors/HasWarnings should be true")
	}
}

func TestValidator_Checks(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(r *Registry)
		wantErrors bool
		wantWarn   bool
	}{
		{"defaults", func(r *Registry) {}, false, false},
		{"unknown action", func(r *Registry) { r.Register(ContextNormal, "f9", Action("fly")) }, true, false},
		{"reserved key", func(r *Registry) { r.Register(ContextSelect, "ctrl+c", ActionToggle) }, true, true},
		{"select without cancel", func(r *Registry) { r.Unbind(ContextSelect, ActionCancel) }, true, false},
		{"shadowing", func(r *Registry) {
			r.Register(ContextGlobal, "f2", ActionOpenHelp)
			r.Register(ContextViewer, "f2", ActionCloseModal)
		}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewDefaultRegistry()
			tt.mutate(r)
			result := NewValidator().ValidateRegistry(r)
			if result.HasErrors() != tt.wantErrors {
				t.Errorf("HasErrors() = %v, want %v\n%s", result.HasErrors(), tt.wantErrors, result.String())
			}
			if result.HasWarnings() != tt.wantWarn {
				t.Errorf("HasWarnings() = %v, want %v\n%s", result.HasWarnings(), tt.wantWarn, result.String())
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"ctrl+s", false},
		{" ", false},
		{"", true},
		{"ctrl+", true},
	}
	for _, tt := range tests {
		if err := ValidateKey(tt.key); (err != nil) != tt.wantErr {
			t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
		}
	}
}
