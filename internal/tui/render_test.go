package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/printcat/internal/keybinds"
)

func TestView_MainTabs(t *testing.T) {
	m, _ := CreateTestModel(t)

	view := m.View()
	for _, want := range []string{"KEY-001", "VAS-001", "Keychain"} {
		if !strings.Contains(view, want) {
			t.Errorf("search view missing %q", want)
		}
	}

	m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	press(m, "right")
	view = m.View()
	if !strings.Contains(view, "Total Products: 2 | Total Value: $150.00 | Low Stock Items: 1") {
		t.Error("inventory view missing summary line")
	}
}

func TestView_EditFormShowsWorkingCopy(t *testing.T) {
	m, _ := CreateTestModel(t)
	press(m, "enter")
	typeText(m, "Z")

	if !strings.Contains(m.View(), "KeychainZ") {
		t.Error("edit form should show the working copy")
	}
}

func TestView_Modals(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, "ctrl+d")
	if !strings.Contains(m.View(), deleteOptions[deleteWithFiles]) {
		t.Error("delete modal should list both options")
	}
	press(m, "esc")

	openCreatePicker(t, m, false)
	press(m, "n")
	typeText(m, "x")
	if !strings.Contains(m.View(), "New tags") {
		t.Error("item form modal missing title")
	}
	press(m, "esc", "esc", "esc")

	press(m, "enter", "down", "down", "tab", "n")
	if !strings.Contains(m.View(), "New category") {
		t.Error("category form modal missing title")
	}
}

func TestView_StatusBar(t *testing.T) {
	m, _ := CreateTestModel(t)
	m.setErrorMessage("Error: something broke")

	if !strings.Contains(m.View(), "Error: something broke") {
		t.Error("status bar should show the error")
	}
}

func TestView_HintsFollowRemappedKeys(t *testing.T) {
	m, _ := CreateTestModel(t)
	m.keybinds.Unbind(keybinds.ContextNormal, keybinds.ActionRefresh)
	m.keybinds.Register(keybinds.ContextNormal, "f9", keybinds.ActionRefresh)
	m.keybinds.Unbind(keybinds.ContextNormal, keybinds.ActionOpenInspect)

	view := m.View()
	if !strings.Contains(view, "f9 refresh") {
		t.Error("status bar should show the remapped refresh key")
	}
	if strings.Contains(view, "ctrl+r refresh") {
		t.Error("status bar still shows the default refresh key")
	}
	if strings.Contains(view, "inspect") {
		t.Error("unbound actions should not be hinted")
	}
}

func TestHints_SkipUnbound(t *testing.T) {
	m, _ := CreateTestModel(t)

	got := m.hints(keybinds.ContextProduction,
		keyHint{keybinds.ActionToggle, "toggle"},
		keyHint{keybinds.ActionOpenHelp, "help"},
	)
	AssertModelField(t, "hints", got, "space/left/right toggle")
}
