package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/printcat/internal/catalog"
	"github.com/studiowebux/printcat/internal/keybinds"
	"github.com/studiowebux/printcat/internal/types"
)

// entries returns the loaded tag or material catalog
func (m *Model) entries(kind selectKind) []types.NamedEntry {
	if kind == selectMaterials {
		return m.materials
	}
	return m.tags
}

func (m *Model) setEntries(kind selectKind, entries []types.NamedEntry) {
	if kind == selectMaterials {
		m.materials = entries
	} else {
		m.tags = entries
	}
}

func (m *Model) nameRepo(kind selectKind) catalog.NameRepository {
	if kind == selectMaterials {
		return m.repos.Materials
	}
	return m.repos.Tags
}

func (m *Model) reloadEntries(kind selectKind) error {
	if kind == selectMaterials {
		return m.reloadMaterials()
	}
	return m.reloadTags()
}

// selectFlow reports which ladder the current picker belongs to
func (m *Model) selectFlow() flow {
	if isEditMode(m.mode) {
		return flowEdit
	}
	return flowCreate
}

// handleSelectKeys handles the tag and material pickers
func (m *Model) handleSelectKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextSelect, msg.String())
	if !ok {
		return nil
	}

	sel := &m.selection
	entries := m.entries(sel.Kind)
	parent, _ := parentMode(m.mode)
	sel.Cursor = clampIndex(sel.Cursor, len(entries))

	switch action {
	case keybinds.ActionNavigateUp:
		sel.Cursor = wrap(sel.Cursor, -1, len(entries))
	case keybinds.ActionNavigateDown:
		sel.Cursor = wrap(sel.Cursor, 1, len(entries))

	case keybinds.ActionToggle:
		if sel.Cursor < len(sel.Flags) {
			sel.Flags[sel.Cursor] = !sel.Flags[sel.Cursor]
		}

	case keybinds.ActionCommit:
		m.setCurrentNames(m.selectFlow(), sel.Kind, selectedNames(entries, sel.Flags))
		m.mode = parent

	case keybinds.ActionCancel:
		m.mode = parent

	case keybinds.ActionNewItem:
		m.itemForm = ItemForm{Return: m.mode}
		m.cursor = 0
		m.mode = ModeNewTag
		if sel.Kind == selectMaterials {
			m.mode = ModeNewMaterial
		}

	case keybinds.ActionEditItem:
		if len(entries) == 0 {
			return nil
		}
		name := entries[sel.Cursor].Name
		m.itemForm = ItemForm{Text: name, Original: name, Return: m.mode}
		m.cursor = utf8.RuneCountInString(name)
		m.mode = ModeEditTagItem
		if sel.Kind == selectMaterials {
			m.mode = ModeEditMaterialItem
		}

	case keybinds.ActionDeleteItem:
		return m.deleteSelectedEntry()
	}

	return nil
}

// deleteSelectedEntry removes the entry under the cursor when no loaded
// product references it
func (m *Model) deleteSelectedEntry() tea.Cmd {
	sel := &m.selection
	entries := m.entries(sel.Kind)
	if len(entries) == 0 {
		return nil
	}

	noun := sel.Kind.noun()
	name := entries[sel.Cursor].Name
	if m.usedByProducts(sel.Kind, name) {
		return m.setErrorMessage(fmt.Sprintf("Cannot delete %s '%s' - it is in use by products", noun, name))
	}

	err := m.nameRepo(sel.Kind).Delete(context.Background(), name)
	m.record(activityFor("delete", sel.Kind), name, nil, err)
	if err != nil {
		return m.setCallError(err)
	}

	oldFlags := append([]bool{}, sel.Flags...)
	if err := m.reloadEntries(sel.Kind); err != nil {
		m.setEntries(sel.Kind, removeEntry(entries, sel.Cursor))
	}
	sel.Flags = remapFlags(entries, oldFlags, m.entries(sel.Kind))
	sel.Cursor = clampIndex(sel.Cursor, len(sel.Flags))

	// The draft must not keep a name the catalog no longer has
	if m.selectFlow() == flowCreate {
		m.setCurrentNames(flowCreate, sel.Kind, removeName(m.currentNames(flowCreate, sel.Kind), name))
	}

	return m.setStatusMessage(fmt.Sprintf("%s '%s' deleted", capitalize(noun), name))
}

// handleCategorySelectKeys handles the single-select category picker of
// the create draft
func (m *Model) handleCategorySelectKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextCategorySelect, msg.String())
	if !ok {
		return nil
	}
	m.categoryCursor = clampIndex(m.categoryCursor, len(m.categories))

	switch action {
	case keybinds.ActionNavigateUp:
		m.categoryCursor = wrap(m.categoryCursor, -1, len(m.categories))
	case keybinds.ActionNavigateDown:
		m.categoryCursor = wrap(m.categoryCursor, 1, len(m.categories))

	case keybinds.ActionCommit:
		if len(m.categories) == 0 {
			return m.setErrorMessage("No categories - press n to create one")
		}
		id := m.categories[m.categoryCursor].ID
		m.createForm.CategoryID = &id
		m.mode = ModeCreateCategory

	case keybinds.ActionCancel:
		m.mode = ModeCreateCategory

	case keybinds.ActionNewItem:
		m.categoryForm = CategoryForm{}
		m.cursor = 0
		m.mode = ModeNewCategory

	case keybinds.ActionEditItem:
		if len(m.categories) == 0 {
			return nil
		}
		c := m.categories[m.categoryCursor]
		m.categoryForm = CategoryForm{
			Name:        c.Name,
			SkuInitials: c.SkuInitials,
			Description: c.Description,
			EditID:      c.ID,
		}
		m.cursor = utf8.RuneCountInString(c.Name)
		m.mode = ModeEditCategoryItem
	}

	return nil
}

// categoryName resolves an id against the loaded categories
func (m *Model) categoryName(id *int) string {
	if id == nil {
		return ""
	}
	for _, c := range m.categories {
		if c.ID == *id {
			return c.Name
		}
	}
	return fmt.Sprintf("#%d", *id)
}

func removeEntry(entries []types.NamedEntry, i int) []types.NamedEntry {
	out := append([]types.NamedEntry{}, entries[:i]...)
	return append(out, entries[i+1:]...)
}

func removeName(names []string, name string) []string {
	key := catalog.NormalizeName(name)
	var out []string
	for _, n := range names {
		if catalog.NormalizeName(n) != key {
			out = append(out, n)
		}
	}
	return out
}

func replaceName(names []string, oldName, newName string) []string {
	key := catalog.NormalizeName(oldName)
	out := make([]string, len(names))
	for i, n := range names {
		if catalog.NormalizeName(n) == key {
			out[i] = newName
		} else {
			out[i] = n
		}
	}
	return out
}

func sortEntries(entries []types.NamedEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
