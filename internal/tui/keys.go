package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/printcat/internal/keybinds"
	"github.com/studiowebux/printcat/internal/types"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		return tea.Quit
	}

	if _, _, ok := fieldOf(m.mode); ok {
		return m.handleFieldKeys(msg)
	}

	switch m.mode {
	case ModeNormal:
		if m.tab == TabInventory && m.pane == PaneRight {
			return m.handleInventoryKeys(msg)
		}
		return m.handleNormalKeys(msg)
	case ModeCreateTagSelect, ModeCreateMaterialSelect, ModeEditTagSelect, ModeEditMaterialSelect:
		return m.handleSelectKeys(msg)
	case ModeCreateCategorySelect:
		return m.handleCategorySelectKeys(msg)
	case ModeNewTag, ModeNewMaterial, ModeEditTagItem, ModeEditMaterialItem:
		return m.handleItemFormKeys(msg)
	case ModeNewCategory, ModeEditCategoryItem:
		return m.handleCategoryFormKeys(msg)
	case ModeDeleteConfirm:
		return m.handleDeleteConfirmKeys(msg)
	case ModeDeleteFileConfirm:
		return m.handleDeleteFileConfirmKeys(msg)
	case ModeActivity, ModeInspect, ModeHelp:
		return m.handleViewerKeys(msg)
	}

	return nil
}

// handleNormalKeys handles the product list, tabs and search typing
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextNormal, msg.String())
	if !ok {
		return m.appendQuery(msg)
	}

	switch action {
	case keybinds.ActionQuit:
		return tea.Quit

	case keybinds.ActionNavigateUp:
		m.moveSelection(-1)
	case keybinds.ActionNavigateDown:
		m.moveSelection(1)

	case keybinds.ActionNextTab:
		return m.switchTab(1)
	case keybinds.ActionPrevTab:
		return m.switchTab(-1)

	case keybinds.ActionSwitchPane:
		if m.pane == PaneLeft {
			m.pane = PaneRight
		} else {
			m.pane = PaneLeft
		}

	case keybinds.ActionOpen:
		switch m.tab {
		case TabCreate:
			return m.startCreate()
		case TabSearch:
			return m.startEdit()
		case TabInventory:
			if m.selectedProduct() == nil {
				return m.setErrorMessage("No product selected")
			}
			m.pane = PaneRight
		}

	case keybinds.ActionClearSearch:
		m.setActiveQuery("")
		m.ensureSelection()

	case keybinds.ActionTextBackspace:
		if q := []rune(m.activeQuery()); len(q) > 0 {
			m.setActiveQuery(string(q[:len(q)-1]))
			m.ensureSelection()
		}

	case keybinds.ActionDeleteProduct:
		return m.openDeleteConfirm()

	case keybinds.ActionOpenFolder:
		p := m.selectedProduct()
		if p == nil {
			return m.setErrorMessage("No product selected")
		}
		if err := m.openFolder(m.productRoot, p.SKU); err != nil {
			return m.setErrorMessage("Error opening folder: " + err.Error())
		}
		return m.setStatusMessage("Opened folder for " + p.SKU)

	case keybinds.ActionRefresh:
		if cmd := m.refresh(); cmd != nil {
			return cmd
		}
		return m.setStatusMessage("Data refreshed")

	case keybinds.ActionCopySKU:
		p := m.selectedProduct()
		if p == nil {
			return m.setErrorMessage("No product selected")
		}
		if err := m.writeClipboard(p.SKU); err != nil {
			return m.setErrorMessage("Failed to copy: " + err.Error())
		}
		return m.setStatusMessage("Copied " + p.SKU + " to clipboard")

	case keybinds.ActionOpenInspect:
		return m.openInspect()
	case keybinds.ActionOpenActivity:
		return m.openActivity()
	case keybinds.ActionOpenHelp:
		m.openHelp()
	}

	return nil
}

// appendQuery extends the active search with printable input.
// The Create tab has no list to filter.
func (m *Model) appendQuery(msg tea.KeyMsg) tea.Cmd {
	if m.tab == TabCreate {
		return nil
	}
	var text string
	switch msg.Type {
	case tea.KeyRunes:
		text = string(msg.Runes)
	case tea.KeySpace:
		text = " "
	default:
		return nil
	}
	m.setActiveQuery(m.activeQuery() + text)
	m.ensureSelection()
	return nil
}

// handleInventoryKeys handles the stock pane of the Inventory tab
func (m *Model) handleInventoryKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextInventory, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		return tea.Quit
	case keybinds.ActionSwitchPane:
		m.pane = PaneLeft
	case keybinds.ActionNavigateUp:
		m.moveSelection(-1)
	case keybinds.ActionNavigateDown:
		m.moveSelection(1)
	case keybinds.ActionStockUp:
		return m.adjustStock(1)
	case keybinds.ActionStockDown:
		return m.adjustStock(-1)
	}
	return nil
}

// adjustStock sends {stock_quantity} for the selected product. Stock
// never goes below zero.
func (m *Model) adjustStock(delta int) tea.Cmd {
	p := m.selectedProduct()
	if p == nil {
		return m.setErrorMessage("No product selected")
	}
	qty := p.Stock() + delta
	if qty < 0 {
		return m.setErrorMessage("Stock is already 0")
	}

	update := types.ProductUpdate{StockQuantity: &qty}
	err := m.repos.Products.Update(context.Background(), p.SKU, update)
	m.record(activityUpdateProduct, p.SKU, update, err)
	if err != nil {
		return m.setCallError(err)
	}

	p.StockQuantity = types.IntPtr(qty)
	return m.setStatusMessage(fmt.Sprintf("%s stock: %d", p.SKU, qty))
}

// handleTextInput edits input at cursor through the text_input bindings.
// It reports whether the key was consumed.
func (m *Model) handleTextInput(input *string, cursor *int, msg tea.KeyMsg) bool {
	return m.handleTextInputLimit(input, cursor, msg, 0)
}

// handleTextInputLimit is handleTextInput with a maximum rune count (0 = none)
func (m *Model) handleTextInputLimit(input *string, cursor *int, msg tea.KeyMsg, limit int) bool {
	runes := []rune(*input)
	if *cursor < 0 {
		*cursor = 0
	}
	if *cursor > len(runes) {
		*cursor = len(runes)
	}

	insert := func(text []rune) {
		if limit > 0 && len(runes)+len(text) > limit {
			text = text[:max(0, limit-len(runes))]
		}
		out := make([]rune, 0, len(runes)+len(text))
		out = append(out, runes[:*cursor]...)
		out = append(out, text...)
		runes = append(out, runes[*cursor:]...)
		*cursor += len(text)
	}

	action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String())
	if ok {
		switch action {
		case keybinds.ActionTextMoveLeft:
			if *cursor > 0 {
				*cursor--
			}
		case keybinds.ActionTextMoveRight:
			if *cursor < len(runes) {
				*cursor++
			}
		case keybinds.ActionTextMoveHome:
			*cursor = 0
		case keybinds.ActionTextMoveEnd:
			*cursor = len(runes)
		case keybinds.ActionTextBackspace:
			if *cursor > 0 {
				runes = append(runes[:*cursor-1], runes[*cursor:]...)
				*cursor--
			}
		case keybinds.ActionTextDelete:
			if *cursor < len(runes) {
				runes = append(runes[:*cursor], runes[*cursor+1:]...)
			}
		case keybinds.ActionTextClearBefore:
			runes = runes[*cursor:]
			*cursor = 0
		case keybinds.ActionTextClearAfter:
			runes = runes[:*cursor]
		case keybinds.ActionTextPaste:
			if text, err := m.readClipboard(); err == nil {
				insert([]rune(text))
			}
		default:
			return false
		}
		*input = string(runes)
		return true
	}

	switch msg.Type {
	case tea.KeyRunes:
		insert(msg.Runes)
	case tea.KeySpace:
		insert([]rune{' '})
	default:
		return false
	}
	*input = string(runes)
	return true
}
