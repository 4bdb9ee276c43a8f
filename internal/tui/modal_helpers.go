package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/printcat/internal/keybinds"
)

var (
	styleTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorCyan)

	styleTitleUnfocused = lipgloss.NewStyle().
				Foreground(colorGray)
)

// SplitPaneConfig defines the configuration for a generic split-pane modal
type SplitPaneConfig struct {
	// Modal dimensions
	ModalWidth  int
	ModalHeight int

	// Split view control
	IsSplitView bool // If false, shows only left pane at full width

	// Left pane
	LeftTitle       string
	LeftContent     string
	LeftBorderColor lipgloss.AdaptiveColor
	LeftIsFocused   bool

	// Right pane (only used if IsSplitView is true)
	RightTitle       string
	RightContent     string
	RightBorderColor lipgloss.AdaptiveColor
	RightIsFocused   bool

	// Footer
	Footer string

	// Width ratio for split view (0.0 to 1.0, default 0.5 for equal split)
	LeftWidthRatio float64
}

// renderSplitPaneModal renders a one or two pane modal centered on screen
func renderSplitPaneModal(cfg SplitPaneConfig, totalWidth, totalHeight int) string {
	paneHeight := cfg.ModalHeight - 4 // Account for borders and padding

	titleStyle := func(focused bool) lipgloss.Style {
		if focused {
			return styleTitleFocused
		}
		return styleTitleUnfocused
	}

	pane := func(color lipgloss.AdaptiveColor, width int, title, content string, focused bool) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Width(width).
			Height(paneHeight).
			Padding(0, 1).
			Render(titleStyle(focused).Render(title) + "\n" + content)
	}

	var mainView string
	if cfg.IsSplitView {
		ratio := cfg.LeftWidthRatio
		if ratio <= 0 || ratio >= 1 {
			ratio = SplitViewEqual
		}
		leftWidth := int(float64(cfg.ModalWidth-SplitPaneBorderWidth) * ratio)
		rightWidth := cfg.ModalWidth - leftWidth - SplitPaneBorderWidth

		mainView = lipgloss.JoinHorizontal(
			lipgloss.Top,
			pane(cfg.LeftBorderColor, leftWidth, cfg.LeftTitle, cfg.LeftContent, cfg.LeftIsFocused),
			pane(cfg.RightBorderColor, rightWidth, cfg.RightTitle, cfg.RightContent, cfg.RightIsFocused),
		)
	} else {
		mainView = pane(cfg.LeftBorderColor, cfg.ModalWidth, cfg.LeftTitle, cfg.LeftContent, true)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		mainView,
		styleSubtle.Render(cfg.Footer),
	)

	return lipgloss.Place(
		totalWidth,
		totalHeight,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// formModalSize returns compact modal dimensions for the current terminal
func (m *Model) formModalSize() (int, int) {
	width := min(FormModalMaxWidth, m.width-ModalWidthMargin)
	height := min(FormModalMaxHeight, m.height-ModalHeightMargin)
	return max(20, width), max(8, height)
}

// renderItemFormModal renders the new/rename tag or material form with
// similar existing names beside it
func (m *Model) renderItemFormModal() string {
	noun := m.itemKind().noun()
	width, height := m.formModalSize()

	title := "New " + noun + "s"
	hint := "Separate several names with commas"
	if m.itemForm.Original != "" {
		title = fmt.Sprintf("Rename %s '%s'", noun, m.itemForm.Original)
		hint = "Names are stored lowercase with hyphens"
	}

	left := withCursor(m.itemForm.Text, m.cursor) + "\n\n" + styleSubtle.Render(hint)
	if m.errorMsg != "" {
		left += "\n\n" + styleError.Render(m.errorMsg)
	}

	similar := m.similarNames()
	right := styleSubtle.Render("No similar names")
	if len(similar) > 0 {
		right = strings.Join(similar, "\n")
	}

	return renderSplitPaneModal(SplitPaneConfig{
		ModalWidth:       width,
		ModalHeight:      height,
		IsSplitView:      true,
		LeftTitle:        title,
		LeftContent:      left,
		LeftBorderColor:  colorCyan,
		LeftIsFocused:    true,
		RightTitle:       "Similar",
		RightContent:     right,
		RightBorderColor: colorGray,
		Footer: m.hints(keybinds.ContextItemForm,
			keyHint{keybinds.ActionTextSubmit, "save"},
			keyHint{keybinds.ActionTextCancel, "cancel"},
		),
		LeftWidthRatio: 0.6,
	}, m.width, m.height)
}

// renderCategoryFormModal renders the three-field category form
func (m *Model) renderCategoryFormModal() string {
	width, height := m.formModalSize()
	form := m.categoryForm

	title := "New category"
	if form.EditID != 0 {
		title = fmt.Sprintf("Edit category #%d", form.EditID)
	}

	labels := []string{"Name", "SKU (3 letters)", "Description"}
	values := []string{form.Name, form.SkuInitials, form.Description}

	var b strings.Builder
	for i, label := range labels {
		value := values[i]
		if i == form.Field {
			b.WriteString(styleFieldFocused.Render(fmt.Sprintf("> %-16s", label)) + " " + withCursor(value, m.cursor) + "\n")
			continue
		}
		b.WriteString(fmt.Sprintf("  %-16s %s\n", label, value))
	}
	if m.errorMsg != "" {
		b.WriteString("\n" + styleError.Render(m.errorMsg))
	}

	return renderSplitPaneModal(SplitPaneConfig{
		ModalWidth:      width,
		ModalHeight:     height,
		LeftTitle:       title,
		LeftContent:     b.String(),
		LeftBorderColor: colorCyan,
		Footer: m.hints(keybinds.ContextCategoryForm,
			keyHint{keybinds.ActionNextField, "next field"},
			keyHint{keybinds.ActionPrevField, "previous field"},
			keyHint{keybinds.ActionTextSubmit, "save"},
			keyHint{keybinds.ActionTextCancel, "cancel"},
		),
	}, m.width, m.height)
}

// renderDeleteConfirmModal renders the two delete options
func (m *Model) renderDeleteConfirmModal() string {
	width, height := m.formModalSize()

	var b strings.Builder
	fmt.Fprintf(&b, "Delete product %s?\n\n", styleWarning.Render(m.deleteSKU))
	for i, opt := range deleteOptions {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		if i == m.deleteOption {
			line = styleSelected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	return renderSplitPaneModal(SplitPaneConfig{
		ModalWidth:      width,
		ModalHeight:     height,
		LeftTitle:       "Delete product",
		LeftContent:     b.String(),
		LeftBorderColor: colorRed,
		Footer: m.hints(keybinds.ContextDeleteConfirm,
			keyHint{keybinds.ActionOption1, "record only"},
			keyHint{keybinds.ActionOption2, "with files"},
			keyHint{keybinds.ActionConfirm, "confirm"},
			keyHint{keybinds.ActionCancel, "cancel"},
		),
	}, m.width, m.height)
}

// renderDeleteFileConfirmModal renders the file tree that would be removed
func (m *Model) renderDeleteFileConfirmModal() string {
	width := m.width - ModalWidthMargin
	height := m.height - ModalHeightMargin

	content := styleError.Render(fmt.Sprintf("Delete %s and these files?", m.deleteSKU)) +
		"\n\n" + m.filePreview.View()

	return renderSplitPaneModal(SplitPaneConfig{
		ModalWidth:      width,
		ModalHeight:     height,
		LeftTitle:       "Delete files",
		LeftContent:     content,
		LeftBorderColor: colorRed,
		Footer: m.hints(keybinds.ContextDeleteFileConfirm,
			keyHint{keybinds.ActionConfirm, "delete"},
			keyHint{keybinds.ActionCancel, "cancel"},
			keyHint{keybinds.ActionNavigateUp, "scroll up"},
			keyHint{keybinds.ActionNavigateDown, "scroll down"},
		),
	}, m.width, m.height)
}

// renderViewerModal renders the activity, inspect and help viewers
func (m *Model) renderViewerModal() string {
	items := []keyHint{
		{keybinds.ActionPageUp, "page up"},
		{keybinds.ActionPageDown, "page down"},
		{keybinds.ActionCloseModal, "close"},
	}
	if m.mode == ModeActivity {
		items = append(items, keyHint{keybinds.ActionClearActivity, "clear"})
	}
	footer := m.hints(keybinds.ContextViewer, items...)

	return renderSplitPaneModal(SplitPaneConfig{
		ModalWidth:      m.width - ModalWidthMargin,
		ModalHeight:     m.height - ModalHeightMargin,
		LeftTitle:       m.viewerTitle,
		LeftContent:     m.viewer.View(),
		LeftBorderColor: colorCyan,
		Footer:          footer,
	}, m.width, m.height)
}

// updateViewports sizes the scrollable areas after a resize
func (m *Model) updateViewports() {
	contentWidth := max(10, m.width-ModalWidthMargin-ViewportPaddingHorizontal)
	contentHeight := max(3, m.height-ContentOffsetLarge)

	m.viewer.Width = contentWidth
	m.viewer.Height = contentHeight

	m.filePreview.Width = contentWidth
	m.filePreview.Height = max(3, contentHeight-2)
}
