package keybinds

import (
	"reflect"
	"testing"
)

func TestRegistry_MatchFallsBackToGlobal(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextField, "esc", ActionCancel)

	tests := []struct {
		name    string
		context Context
		key     string
		want    Action
		found   bool
	}{
		{"context binding", ContextField, "esc", ActionCancel, true},
		{"global fallback", ContextField, "ctrl+c", ActionQuitForce, true},
		{"other context", ContextSelect, "esc", "", false},
		{"unbound", ContextField, "x", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Match(tt.context, tt.key)
			if got != tt.want || ok != tt.found {
				t.Errorf("Match(%s, %q) = (%q, %v), want (%q, %v)", tt.context, tt.key, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestRegistry_MatchFirst(t *testing.T) {
	r := NewDefaultRegistry()

	if got, _ := r.MatchFirst(" ", ContextProduction, ContextField); got != ActionToggle {
		t.Errorf("MatchFirst(space) = %q, want %q", got, ActionToggle)
	}
	if got, _ := r.MatchFirst("up", ContextProduction, ContextField); got != ActionPrevField {
		t.Errorf("MatchFirst(up) = %q, want %q", got, ActionPrevField)
	}
	if got, _ := r.MatchFirst("ctrl+c", ContextProduction, ContextField); got != ActionQuitForce {
		t.Errorf("MatchFirst(ctrl+c) = %q, want %q", got, ActionQuitForce)
	}
}

func TestRegistry_UnbindAndBindingStrings(t *testing.T) {
	r := NewRegistry()
	r.RegisterMultiple(ContextNormal, []string{"f5", "ctrl+r"}, ActionRefresh)

	if got := r.GetBindingString(ContextNormal, ActionRefresh); got != "ctrl+r/f5" {
		t.Errorf("GetBindingString() = %q, want %q", got, "ctrl+r/f5")
	}

	r.Unbind(ContextNormal, ActionRefresh)
	if _, ok := r.Match(ContextNormal, "f5"); ok {
		t.Error("f5 still bound after Unbind")
	}
	if got := r.GetBindingString(ContextNormal, ActionRefresh); got != "unbound" {
		t.Errorf("GetBindingString() = %q, want unbound", got)
	}
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	r := NewDefaultRegistry()
	c := r.Clone()
	c.Unbind(ContextNormal, ActionRefresh)

	if _, ok := r.Match(ContextNormal, "ctrl+r"); !ok {
		t.Error("Unbind on clone changed the original")
	}
}

func TestRegistry_ListBindingsSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextViewer, "q", ActionCloseModal)
	r.Register(ContextViewer, "esc", ActionCloseModal)
	r.Register(ContextViewer, "C", ActionClearActivity)

	got := r.ListBindings(ContextViewer)
	want := []Binding{
		{Key: "C", Action: ActionClearActivity, Context: ContextViewer},
		{Key: "esc", Action: ActionCloseModal, Context: ContextViewer},
		{Key: "q", Action: ActionCloseModal, Context: ContextViewer},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListBindings() = %v, want %v", got, want)
	}
}

func TestDefaultRegistry_IsValid(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())
	if result.HasErrors() {
		t.Errorf("default registry has errors:\n%s", result.String())
	}
}

func TestDefaultRegistry_NormalKeysAreNotPrintable(t *testing.T) {
	r := NewDefaultRegistry()
	for _, b := range r.ListBindings(ContextNormal) {
		if len([]rune(b.Key)) == 1 {
			t.Errorf("normal context binds printable key %q to %s; it would swallow search input", b.Key, b.Action)
		}
	}
}
