package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/printcat/internal/catalog"
	"github.com/studiowebux/printcat/internal/keybinds"
	"github.com/studiowebux/printcat/internal/types"
)

// maxSimilarNames bounds the suggestions shown under the item form
const maxSimilarNames = 5

// itemKind is the catalog the open item form writes to
func (m *Model) itemKind() selectKind {
	if m.mode == ModeNewMaterial || m.mode == ModeEditMaterialItem {
		return selectMaterials
	}
	return selectTags
}

// handleItemFormKeys handles the new and rename modals for tags and materials
func (m *Model) handleItemFormKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextItemForm, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			if m.itemForm.Original != "" {
				return m.submitRename()
			}
			return m.submitNewItems()
		case keybinds.ActionTextCancel:
			m.closeItemForm()
		}
		return nil
	}

	m.handleTextInput(&m.itemForm.Text, &m.cursor, msg)
	return nil
}

func (m *Model) closeItemForm() {
	m.mode = m.itemForm.Return
	m.itemForm = ItemForm{}
}

// similarNames suggests existing entries close to the token being typed
func (m *Model) similarNames() []string {
	parts := strings.Split(m.itemForm.Text, ",")
	token := strings.TrimSpace(parts[len(parts)-1])
	if token == "" {
		return nil
	}
	return catalog.Similar(token, entryNames(m.entries(m.itemKind())), maxSimilarNames)
}

// submitNewItems creates every new name of the comma-separated batch.
// Names already in the catalog are skipped; created entries come back
// preselected.
func (m *Model) submitNewItems() tea.Cmd {
	kind := m.itemKind()
	noun := kind.noun()

	names := catalog.ParseNames(m.itemForm.Text)
	if len(names) == 0 {
		return m.setErrorMessage(fmt.Sprintf("Error: %s name required", capitalize(noun)))
	}

	entries := m.entries(kind)
	var fresh []string
	for _, name := range names {
		if indexOfName(entries, name) < 0 {
			fresh = append(fresh, name)
		}
	}
	if len(fresh) == 0 {
		return m.setErrorMessage(fmt.Sprintf("Error: %s '%s' already exists", capitalize(noun), catalog.NormalizeName(names[0])))
	}

	repo := m.nameRepo(kind)
	var created []types.NamedEntry
	var firstErr error
	for _, name := range fresh {
		entry, err := repo.Create(context.Background(), name)
		m.record(activityFor("create", kind), name, types.NameRequest{Name: name}, err)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		created = append(created, *entry)
	}

	createdNames := entryNames(created)
	oldFlags := append([]bool{}, m.selection.Flags...)
	if err := m.reloadEntries(kind); err != nil {
		merged := append(append([]types.NamedEntry{}, entries...), created...)
		sortEntries(merged)
		m.setEntries(kind, merged)
	}
	m.selection.Flags = remapFlags(entries, oldFlags, m.entries(kind), createdNames...)
	if len(createdNames) > 0 {
		m.selection.Cursor = max(0, indexOfName(m.entries(kind), createdNames[0]))
	}
	m.closeItemForm()

	if firstErr != nil {
		return m.setCallError(firstErr)
	}
	return m.setStatusMessage(fmt.Sprintf("%d %ss created", len(created), noun))
}

// submitRename renames the entry the form was opened on. Product lists
// that carried the old name follow the rename.
func (m *Model) submitRename() tea.Cmd {
	kind := m.itemKind()
	noun := kind.noun()
	oldName := m.itemForm.Original
	newName := strings.TrimSpace(m.itemForm.Text)

	if catalog.NormalizeName(newName) == "" {
		return m.setErrorMessage(fmt.Sprintf("Error: %s name required", capitalize(noun)))
	}
	if catalog.NormalizeName(newName) == catalog.NormalizeName(oldName) {
		m.closeItemForm()
		return nil
	}

	entries := m.entries(kind)
	if indexOfName(entries, newName) >= 0 {
		return m.setErrorMessage(fmt.Sprintf("Error: %s '%s' already exists", capitalize(noun), catalog.NormalizeName(newName)))
	}

	entry, err := m.nameRepo(kind).Rename(context.Background(), oldName, newName)
	m.record(activityFor("rename", kind), oldName, types.NameRequest{Name: newName}, err)
	if err != nil {
		return m.setCallError(err)
	}

	// Keep the open draft, working copy and snapshot consistent with the service
	fl := flowCreate
	if isEditMode(m.itemForm.Return) {
		fl = flowEdit
	}
	m.setCurrentNames(fl, kind, replaceName(m.currentNames(fl, kind), oldName, entry.Name))
	if fl == flowEdit && m.editBackup != nil {
		if kind == selectMaterials {
			m.editBackup.Materials = replaceName(m.editBackup.Materials, oldName, entry.Name)
		} else {
			m.editBackup.Tags = replaceName(m.editBackup.Tags, oldName, entry.Name)
		}
	}

	var extra []string
	if i := indexOfName(entries, oldName); i >= 0 && i < len(m.selection.Flags) && m.selection.Flags[i] {
		extra = append(extra, entry.Name)
	}
	oldFlags := append([]bool{}, m.selection.Flags...)
	entriesErr := m.reloadEntries(kind)
	if entriesErr != nil {
		renamed := append([]types.NamedEntry{}, entries...)
		if i := indexOfName(renamed, oldName); i >= 0 {
			renamed[i] = *entry
		}
		sortEntries(renamed)
		m.setEntries(kind, renamed)
	}
	reloadErr := errors.Join(entriesErr, m.reloadProducts())
	m.selection.Flags = remapFlags(entries, oldFlags, m.entries(kind), extra...)
	m.selection.Cursor = max(0, indexOfName(m.entries(kind), entry.Name))
	m.closeItemForm()

	return m.setMutationStatus(fmt.Sprintf("%s '%s' renamed to '%s'", capitalize(noun), oldName, entry.Name), reloadErr)
}

// handleCategoryFormKeys handles the three-field category form
func (m *Model) handleCategoryFormKeys(msg tea.KeyMsg) tea.Cmd {
	form := &m.categoryForm

	if action, ok := m.keybinds.Match(keybinds.ContextCategoryForm, msg.String()); ok {
		switch action {
		case keybinds.ActionNextField:
			form.Field = wrap(form.Field, 1, categoryFieldCount)
			m.cursor = utf8.RuneCountInString(*form.field())
		case keybinds.ActionPrevField:
			form.Field = wrap(form.Field, -1, categoryFieldCount)
			m.cursor = utf8.RuneCountInString(*form.field())
		case keybinds.ActionTextSubmit:
			return m.submitCategoryForm()
		case keybinds.ActionTextCancel:
			m.categoryForm = CategoryForm{}
			m.mode = ModeCreateCategorySelect
		}
		return nil
	}

	if form.Field == categoryFieldSKU {
		if m.handleTextInputLimit(&form.SkuInitials, &m.cursor, msg, 3) {
			form.SkuInitials = strings.Map(unicode.ToUpper, form.SkuInitials)
		}
		return nil
	}
	m.handleTextInput(form.field(), &m.cursor, msg)
	return nil
}

// submitCategoryForm validates locally, then creates or updates the category
func (m *Model) submitCategoryForm() tea.Cmd {
	req := m.categoryForm.Request()
	if err := catalog.ValidateCategory(req); err != nil {
		return m.setCallError(err)
	}

	ctx := context.Background()
	editing := m.categoryForm.EditID != 0

	var cat *types.Category
	var err error
	if editing {
		cat, err = m.repos.Categories.Update(ctx, m.categoryForm.EditID, req)
		m.record(activityUpdateCategory, fmt.Sprintf("%d", m.categoryForm.EditID), req, err)
	} else {
		cat, err = m.repos.Categories.Create(ctx, req)
		m.record(activityCreateCategory, req.Name, req, err)
	}
	if err != nil {
		return m.setCallError(err)
	}

	if err := m.reloadCategories(); err != nil {
		m.mergeCategory(*cat)
	}
	for i, c := range m.categories {
		if c.ID == cat.ID {
			m.categoryCursor = i
		}
	}

	m.categoryForm = CategoryForm{}
	m.mode = ModeCreateCategorySelect

	verb := "created"
	if editing {
		verb = "updated"
	}
	return m.setStatusMessage(fmt.Sprintf("Category '%s' %s", cat.Name, verb))
}

// mergeCategory applies a saved category locally when the reload failed
func (m *Model) mergeCategory(cat types.Category) {
	for i, c := range m.categories {
		if c.ID == cat.ID {
			m.categories[i] = cat
			return
		}
	}
	m.categories = append(m.categories, cat)
}
