package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/printcat/internal/catalog"
	"github.com/studiowebux/printcat/internal/keybinds"
	"github.com/studiowebux/printcat/internal/types"
)

// startCreate focuses the first field of the create draft
func (m *Model) startCreate() tea.Cmd {
	m.pane = PaneRight
	m.gotoField(flowCreate, FieldName)
	return nil
}

// startEdit refreshes the selected product, snapshots it and opens the
// edit ladder on Name. A failed refresh keeps the local copy.
func (m *Model) startEdit() tea.Cmd {
	p := m.selectedProduct()
	if p == nil {
		return m.setErrorMessage("No product selected")
	}

	var cmd tea.Cmd
	fresh, err := m.repos.Products.Get(context.Background(), p.SKU)
	if catalog.IsNotFound(err) {
		sku := p.SKU
		if err := m.reloadProducts(); err == nil {
			m.ensureSelection()
		}
		return m.setErrorMessage(fmt.Sprintf("Product %s no longer exists", sku))
	}
	if err != nil {
		cmd = m.setCallError(err)
	} else if fresh != nil {
		*p = *fresh
	}

	backup := p.Clone()
	m.editBackup = &backup
	m.editSKU = p.SKU
	m.selectedSKU = p.SKU
	m.pane = PaneRight
	m.gotoField(flowEdit, FieldName)
	return cmd
}

// endEdit leaves the edit session without touching the working copy
func (m *Model) endEdit() {
	m.editBackup = nil
	m.editSKU = ""
	m.mode = ModeNormal
	m.pane = PaneLeft
}

// gotoField moves focus to a rung and puts the cursor at the end of its text
func (m *Model) gotoField(fl flow, f Field) {
	m.mode = fieldMode(fl, f)
	m.cursor = utf8.RuneCountInString(m.fieldText(fl, f))
}

// fieldText is the current text of a Name or Description rung
func (m *Model) fieldText(fl flow, f Field) string {
	if fl == flowCreate {
		switch f {
		case FieldName:
			return m.createForm.Name
		case FieldDescription:
			return m.createForm.Description
		}
		return ""
	}
	p := m.editingProduct()
	if p == nil {
		return ""
	}
	switch f {
	case FieldName:
		return p.Name
	case FieldDescription:
		return p.DescriptionText()
	}
	return ""
}

// handleFieldKeys handles every rung of both ladders
func (m *Model) handleFieldKeys(msg tea.KeyMsg) tea.Cmd {
	fl, field, _ := fieldOf(m.mode)
	key := msg.String()

	contexts := []keybinds.Context{keybinds.ContextField}
	if field == FieldProduction {
		contexts = []keybinds.Context{keybinds.ContextProduction, keybinds.ContextField}
	}

	if action, ok := m.keybinds.MatchFirst(key, contexts...); ok {
		switch action {
		case keybinds.ActionToggle, keybinds.ActionSetYes, keybinds.ActionSetNo:
			m.setProduction(fl, action)
		case keybinds.ActionPrevField:
			m.gotoField(fl, field.prev())
		case keybinds.ActionNextField:
			m.gotoField(fl, field.next())
		case keybinds.ActionCancel:
			return m.cancelFlow(fl)
		case keybinds.ActionOpenSelect:
			return m.openSelect(fl, field)
		case keybinds.ActionSave:
			if fl == flowCreate {
				return m.submitCreate()
			}
			return m.commitEditField(field)
		case keybinds.ActionCommit:
			if fl == flowEdit {
				return m.commitEditField(field)
			}
			if field == FieldMaterials {
				return m.submitCreate()
			}
			m.gotoField(fl, field.next())
		}
		return nil
	}

	if field.isText() {
		m.editFieldText(fl, field, msg)
	}
	return nil
}

func (m *Model) editFieldText(fl flow, field Field, msg tea.KeyMsg) {
	if fl == flowCreate {
		if field == FieldName {
			m.handleTextInput(&m.createForm.Name, &m.cursor, msg)
		} else {
			m.handleTextInput(&m.createForm.Description, &m.cursor, msg)
		}
		return
	}

	p := m.editingProduct()
	if p == nil {
		return
	}
	if field == FieldName {
		m.handleTextInput(&p.Name, &m.cursor, msg)
		return
	}
	text := p.DescriptionText()
	if m.handleTextInput(&text, &m.cursor, msg) && text != p.DescriptionText() {
		p.Description = &text
	}
}

func (m *Model) setProduction(fl flow, action keybinds.Action) {
	target := &m.createForm.Production
	if fl == flowEdit {
		p := m.editingProduct()
		if p == nil {
			return
		}
		target = &p.Production
	}

	switch action {
	case keybinds.ActionToggle:
		*target = !*target
	case keybinds.ActionSetYes:
		*target = true
	case keybinds.ActionSetNo:
		*target = false
	}
}

// cancelFlow discards the session. Edit restores the snapshot; create
// clears the draft.
func (m *Model) cancelFlow(fl flow) tea.Cmd {
	if fl == flowCreate {
		m.createForm = newCreateForm()
		m.mode = ModeNormal
		m.pane = PaneLeft
		return m.setStatusMessage("Create cancelled")
	}

	if p := m.editingProduct(); p != nil && m.editBackup != nil {
		*p = *m.editBackup
	}
	m.endEdit()
	return m.setStatusMessage("Changes discarded")
}

// openSelect enters the picker of a Tags, Materials or Category rung
func (m *Model) openSelect(fl flow, field Field) tea.Cmd {
	sel, ok := selectModes[m.mode]
	if !ok {
		return nil
	}

	if field == FieldCategory {
		m.categoryCursor = 0
		if id := m.createForm.CategoryID; id != nil {
			for i, c := range m.categories {
				if c.ID == *id {
					m.categoryCursor = i
				}
			}
		}
		m.mode = sel
		return nil
	}

	kind := selectTags
	if field == FieldMaterials {
		kind = selectMaterials
	}
	m.selection = Selection{
		Kind:  kind,
		Flags: seedFlags(m.entries(kind), m.currentNames(fl, kind)),
	}
	m.mode = sel
	return nil
}

// currentNames is the tag or material list of the draft or working copy
func (m *Model) currentNames(fl flow, kind selectKind) []string {
	if fl == flowCreate {
		if kind == selectMaterials {
			return m.createForm.Materials
		}
		return m.createForm.Tags
	}
	p := m.editingProduct()
	if p == nil {
		return nil
	}
	if kind == selectMaterials {
		return p.Materials
	}
	return p.Tags
}

func (m *Model) setCurrentNames(fl flow, kind selectKind, names []string) {
	if fl == flowCreate {
		if kind == selectMaterials {
			m.createForm.Materials = names
		} else {
			m.createForm.Tags = names
		}
		return
	}
	p := m.editingProduct()
	if p == nil {
		return
	}
	if kind == selectMaterials {
		p.Materials = names
	} else {
		p.Tags = names
	}
}

// commitEditField sends the partial update owned by one rung. On failure
// the session stays open so the user can retry or cancel.
func (m *Model) commitEditField(field Field) tea.Cmd {
	p := m.editingProduct()
	if p == nil {
		m.endEdit()
		return m.setErrorMessage("Product no longer exists")
	}

	var update types.ProductUpdate
	switch field {
	case FieldName:
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return m.setErrorMessage("Error: Product name is required")
		}
		update.Name = &name
	case FieldDescription:
		desc := p.DescriptionText()
		update.Description = &desc
	case FieldCategory:
		// read-only while editing
		m.gotoField(flowEdit, field.next())
		return nil
	case FieldProduction:
		update.Production = types.BoolPtr(p.Production)
	case FieldTags:
		tags := append([]string{}, p.Tags...)
		update.Tags = &tags
	case FieldMaterials:
		materials := append([]string{}, p.Materials...)
		update.Materials = &materials
	}

	sku := p.SKU
	err := m.repos.Products.Update(context.Background(), sku, update)
	m.record(activityUpdateProduct, sku, update, err)
	if err != nil {
		return m.setCallError(err)
	}

	m.endEdit()
	reloadErr := m.reloadAll()
	m.selectedSKU = sku
	m.ensureSelection()
	return m.setMutationStatus(fmt.Sprintf("Product %s updated (%s)", sku, strings.ToLower(field.String())), reloadErr)
}

// submitCreate validates and POSTs the draft
func (m *Model) submitCreate() tea.Cmd {
	req := m.createForm.Request()
	if err := catalog.ValidateProduct(req); err != nil {
		return m.setCallError(err)
	}

	resp, err := m.repos.Products.Create(context.Background(), req)
	target := req.Name
	if resp != nil {
		target = resp.SKU
	}
	m.record(activityCreateProduct, target, req, err)
	if err != nil {
		return m.setCallError(err)
	}

	m.createForm = newCreateForm()
	m.mode = ModeNormal
	m.pane = PaneLeft
	reloadErr := m.reloadAll()
	m.selectedSKU = resp.SKU
	m.ensureSelection()
	return m.setMutationStatus(fmt.Sprintf("Product %s created successfully", resp.SKU), reloadErr)
}
