package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/printcat/internal/files"
	"github.com/studiowebux/printcat/internal/keybinds"
)

// Delete options, in display order
const (
	deleteRecordOnly = iota
	deleteWithFiles
)

var deleteOptions = []string{
	"Remove from database only",
	"Remove from database and delete files",
}

// openDeleteConfirm asks how to delete the selected product
func (m *Model) openDeleteConfirm() tea.Cmd {
	if m.tab == TabCreate {
		return nil
	}
	p := m.selectedProduct()
	if p == nil {
		return m.setErrorMessage("No product selected")
	}
	m.deleteSKU = p.SKU
	m.deleteOption = deleteRecordOnly
	m.mode = ModeDeleteConfirm
	return nil
}

// handleDeleteConfirmKeys handles the option chooser
func (m *Model) handleDeleteConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextDeleteConfirm, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionNavigateUp, keybinds.ActionNavigateDown:
		m.deleteOption = 1 - m.deleteOption
	case keybinds.ActionOption1:
		m.deleteOption = deleteRecordOnly
	case keybinds.ActionOption2:
		m.deleteOption = deleteWithFiles
	case keybinds.ActionConfirm:
		if m.deleteOption == deleteRecordOnly {
			return m.deleteProduct(false)
		}
		m.filePreview.SetContent(files.Tree(m.productRoot, m.deleteSKU))
		m.filePreview.GotoTop()
		m.mode = ModeDeleteFileConfirm
	case keybinds.ActionCancel:
		return m.cancelDelete()
	}
	return nil
}

// handleDeleteFileConfirmKeys handles the y/n prompt under the file preview
func (m *Model) handleDeleteFileConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextDeleteFileConfirm, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionConfirm:
		return m.deleteProduct(true)
	case keybinds.ActionCancel:
		return m.cancelDelete()
	case keybinds.ActionNavigateUp:
		m.filePreview.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.filePreview.ScrollDown(1)
	}
	return nil
}

func (m *Model) cancelDelete() tea.Cmd {
	m.deleteSKU = ""
	m.mode = ModeNormal
	return m.setStatusMessage("Deletion cancelled")
}

// deleteProduct removes the pending product and reloads the catalog
func (m *Model) deleteProduct(withFiles bool) tea.Cmd {
	sku := m.deleteSKU
	m.deleteSKU = ""
	m.mode = ModeNormal

	message, err := m.repos.Products.Delete(context.Background(), sku, withFiles)
	m.record(activityDeleteProduct, sku, map[string]bool{"delete_files": withFiles}, err)
	if err != nil {
		return m.setCallError(err)
	}

	m.selectedSKU = ""
	return m.setMutationStatus(message, m.reloadAll())
}
