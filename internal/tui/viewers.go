package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/printcat/internal/history"
	"github.com/studiowebux/printcat/internal/keybinds"
)

const (
	// activityLimit is how many entries the activity viewer loads
	activityLimit = 200
	// inspectActivityLimit is how many changes the inspector lists per product
	inspectActivityLimit = 10
)

// helpContexts is the order of sections in the help viewer
var helpContexts = []struct {
	context keybinds.Context
	title   string
}{
	{keybinds.ContextGlobal, "Global"},
	{keybinds.ContextNormal, "Product list"},
	{keybinds.ContextInventory, "Inventory stock pane"},
	{keybinds.ContextField, "Create / edit fields"},
	{keybinds.ContextProduction, "Production field"},
	{keybinds.ContextSelect, "Tag / material picker"},
	{keybinds.ContextCategorySelect, "Category picker"},
	{keybinds.ContextItemForm, "Tag / material form"},
	{keybinds.ContextCategoryForm, "Category form"},
	{keybinds.ContextTextInput, "Text editing"},
	{keybinds.ContextDeleteConfirm, "Delete product"},
	{keybinds.ContextDeleteFileConfirm, "Delete files"},
	{keybinds.ContextViewer, "Viewers"},
}

// openInspect shows the selected product as highlighted JSON
func (m *Model) openInspect() tea.Cmd {
	p := m.selectedProduct()
	if p == nil {
		return m.setErrorMessage("No product selected")
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return m.setErrorMessage("Failed to encode product: " + err.Error())
	}

	content := highlightJSON(string(data))
	if m.activity != nil {
		if entries, err := m.activity.ForTarget(p.SKU, inspectActivityLimit); err == nil && len(entries) > 0 {
			content += "\n\n" + styleTitle.Render("Recent changes") + "\n" + formatActivity(entries)
		}
	}

	m.viewerTitle = "Inspect " + p.SKU
	m.viewer.SetContent(content)
	m.viewer.GotoTop()
	m.mode = ModeInspect
	return nil
}

// highlightJSON colors src for a 256-color terminal, or returns it as is
func highlightJSON(src string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, src, "json", "terminal256", "monokai"); err != nil {
		return src
	}
	return buf.String()
}

// openActivity shows the most recent catalog mutations
func (m *Model) openActivity() tea.Cmd {
	if m.activity == nil {
		return m.setErrorMessage("Activity log unavailable")
	}

	entries, err := m.activity.Recent(activityLimit)
	if err != nil {
		return m.setErrorMessage("Failed to load activity: " + err.Error())
	}

	m.viewerTitle = fmt.Sprintf("Activity (%d)", len(entries))
	if total, err := m.activity.GetCount(); err == nil && total > len(entries) {
		m.viewerTitle = fmt.Sprintf("Activity (latest %d of %d)", len(entries), total)
	}
	m.viewer.SetContent(formatActivity(entries))
	m.viewer.GotoTop()
	m.mode = ModeActivity
	return nil
}

func formatActivity(entries []history.Entry) string {
	if len(entries) == 0 {
		return styleSubtle.Render("No activity recorded yet")
	}

	var b strings.Builder
	for _, e := range entries {
		mark := styleSuccess.Render("✓")
		if !e.OK {
			mark = styleError.Render("✗")
		}
		fmt.Fprintf(&b, "%s %s %-16s %s",
			styleSubtle.Render(e.Timestamp.Format("2006-01-02 15:04:05")),
			mark,
			e.Action,
			e.Target,
		)
		if e.Payload != "" {
			b.WriteString(" " + styleSubtle.Render(e.Payload))
		}
		if e.Error != "" {
			b.WriteString(" " + styleError.Render(e.Error))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// openHelp lists the active bindings per context
func (m *Model) openHelp() {
	var b strings.Builder
	for _, section := range helpContexts {
		bindings := m.keybinds.ListBindings(section.context)
		if len(bindings) == 0 {
			continue
		}
		b.WriteString(styleTitle.Render(section.title) + "\n")

		seen := make(map[keybinds.Action]bool)
		for _, binding := range bindings {
			if seen[binding.Action] {
				continue
			}
			seen[binding.Action] = true
			keys := m.keybinds.GetBindingString(section.context, binding.Action)
			fmt.Fprintf(&b, "  %-28s %s\n", displayKeys(keys), binding.Action.Description())
		}
		b.WriteString("\n")
	}

	m.viewerTitle = "Help"
	m.viewer.SetContent(strings.TrimRight(b.String(), "\n"))
	m.viewer.GotoTop()
	m.mode = ModeHelp
}

// displayKeys makes a bare space binding readable
func displayKeys(keys string) string {
	parts := strings.Split(keys, "/")
	for i, k := range parts {
		if k == " " {
			parts[i] = "space"
		}
	}
	return strings.Join(parts, "/")
}

// handleViewerKeys handles the activity, inspect and help viewers
func (m *Model) handleViewerKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextViewer, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
		m.viewerTitle = ""
	case keybinds.ActionNavigateUp:
		m.viewer.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.viewer.ScrollDown(1)
	case keybinds.ActionPageUp:
		m.viewer.PageUp()
	case keybinds.ActionPageDown:
		m.viewer.PageDown()
	case keybinds.ActionClearActivity:
		if m.mode != ModeActivity || m.activity == nil {
			return nil
		}
		if err := m.activity.Clear(); err != nil {
			return m.setErrorMessage("Failed to clear activity: " + err.Error())
		}
		m.viewerTitle = "Activity (0)"
		m.viewer.SetContent(formatActivity(nil))
		return m.setStatusMessage("Activity log cleared")
	}
	return nil
}
