package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/printcat/internal/catalog"
	"github.com/studiowebux/printcat/internal/history"
	"github.com/studiowebux/printcat/internal/keybinds"
	"github.com/studiowebux/printcat/internal/logging"
	"github.com/studiowebux/printcat/internal/types"
)

// Mode represents the current input mode
type Mode int

const (
	ModeNormal Mode = iota

	// Create ladder
	ModeCreateName
	ModeCreateDescription
	ModeCreateCategory
	ModeCreateCategorySelect
	ModeCreateProduction
	ModeCreateTags
	ModeCreateTagSelect
	ModeCreateMaterials
	ModeCreateMaterialSelect

	// Edit ladder
	ModeEditName
	ModeEditDescription
	ModeEditCategory
	ModeEditProduction
	ModeEditTags
	ModeEditTagSelect
	ModeEditMaterials
	ModeEditMaterialSelect

	// Catalog entry forms, opened from a selection sub-mode
	ModeNewTag
	ModeNewMaterial
	ModeNewCategory
	ModeEditTagItem
	ModeEditMaterialItem
	ModeEditCategoryItem

	ModeDeleteConfirm
	ModeDeleteFileConfirm

	ModeActivity
	ModeInspect
	ModeHelp
)

var modeNames = map[Mode]string{
	ModeNormal:               "Normal",
	ModeCreateName:           "CreateName",
	ModeCreateDescription:    "CreateDescription",
	ModeCreateCategory:       "CreateCategory",
	ModeCreateCategorySelect: "CreateCategorySelect",
	ModeCreateProduction:     "CreateProduction",
	ModeCreateTags:           "CreateTags",
	ModeCreateTagSelect:      "CreateTagSelect",
	ModeCreateMaterials:      "CreateMaterials",
	ModeCreateMaterialSelect: "CreateMaterialSelect",
	ModeEditName:             "EditName",
	ModeEditDescription:      "EditDescription",
	ModeEditCategory:         "EditCategory",
	ModeEditProduction:       "EditProduction",
	ModeEditTags:             "EditTags",
	ModeEditTagSelect:        "EditTagSelect",
	ModeEditMaterials:        "EditMaterials",
	ModeEditMaterialSelect:   "EditMaterialSelect",
	ModeNewTag:               "NewTag",
	ModeNewMaterial:          "NewMaterial",
	ModeNewCategory:          "NewCategory",
	ModeEditTagItem:          "EditTagItem",
	ModeEditMaterialItem:     "EditMaterialItem",
	ModeEditCategoryItem:     "EditCategoryItem",
	ModeDeleteConfirm:        "DeleteConfirm",
	ModeDeleteFileConfirm:    "DeleteFileConfirm",
	ModeActivity:             "Activity",
	ModeInspect:              "Inspect",
	ModeHelp:                 "Help",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Tab is one of the three top-level views
type Tab int

const (
	TabCreate Tab = iota
	TabSearch
	TabInventory
)

var tabOrder = []Tab{TabCreate, TabSearch, TabInventory}

func (t Tab) String() string {
	switch t {
	case TabCreate:
		return "Create"
	case TabSearch:
		return "Search"
	case TabInventory:
		return "Inventory"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// Pane is the focused half of the screen
type Pane int

const (
	PaneLeft Pane = iota
	PaneRight
)

// ActivityLog records every remote mutation. *history.Manager satisfies it.
type ActivityLog interface {
	Record(action, target string, payload any, callErr error) error
	Recent(limit int) ([]history.Entry, error)
	ForTarget(target string, limit int) ([]history.Entry, error)
	GetCount() (int, error)
	Clear() error
}

// Model represents the TUI state
type Model struct {
	// Collaborators
	repos          catalog.Repositories
	activity       ActivityLog
	keybinds       *keybinds.Registry
	productRoot    string
	apiURL         string
	messageTimeout time.Duration
	openFolder     func(root, sku string) error
	writeClipboard func(string) error
	readClipboard  func() (string, error)
	initCmd        tea.Cmd

	mode Mode
	tab  Tab
	pane Pane

	// Catalog snapshot
	products   []types.Product
	tags       []types.Tag
	materials  []types.Material
	categories []types.Category

	// Selection and filters
	selectedSKU    string
	searchQuery    string
	inventoryQuery string

	// Edit session
	editSKU    string
	editBackup *types.Product

	// Forms
	createForm   CreateForm
	categoryForm CategoryForm
	itemForm     ItemForm
	cursor       int // rune offset in the focused text field

	// Sub-mode state
	selection      Selection
	categoryCursor int
	deleteOption   int
	deleteSKU      string

	// Viewers
	filePreview viewport.Model
	viewer      viewport.Model
	viewerTitle string

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
	statusSeq int
}

// clearStatusMsg hides the status bar message it was scheduled for.
// A newer message bumps statusSeq, so stale ticks are ignored.
type clearStatusMsg struct {
	seq int
}

// Init returns the command produced by the initial data load
func (m *Model) Init() tea.Cmd {
	return m.initCmd
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.MouseMsg:
		// Keyboard only

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewports()

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
			m.errorMsg = ""
		}
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ModeNewTag, ModeNewMaterial, ModeEditTagItem, ModeEditMaterialItem:
		return m.renderItemFormModal()
	case ModeNewCategory, ModeEditCategoryItem:
		return m.renderCategoryFormModal()
	case ModeDeleteConfirm:
		return m.renderDeleteConfirmModal()
	case ModeDeleteFileConfirm:
		return m.renderDeleteFileConfirmModal()
	case ModeActivity, ModeInspect, ModeHelp:
		return m.renderViewerModal()
	}

	return m.renderMain()
}

// setStatusMessage shows msg and schedules it to disappear
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = truncate(msg, maxStatusWidth)
	m.errorMsg = ""
	return m.scheduleStatusClear()
}

// setErrorMessage shows msg in the error style and schedules it to disappear
func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = truncate(msg, maxStatusWidth)
	m.statusMsg = ""
	return m.scheduleStatusClear()
}

// setCallError reports a failed catalog call
func (m *Model) setCallError(err error) tea.Cmd {
	switch {
	case catalog.IsNetwork(err):
		logging.Warn("catalog unreachable", zap.String("api", m.apiURL), zap.Error(err))
		return m.setErrorMessage("Error: catalog service unreachable at " + m.apiURL)
	case !catalog.IsValidation(err):
		logging.Debug("catalog call failed", zap.Error(err))
	}
	return m.setErrorMessage("Error: " + err.Error())
}

// setMutationStatus reports a successful change. A failed reload after
// it is shown as an error so the stale list does not go unnoticed.
func (m *Model) setMutationStatus(msg string, reloadErr error) tea.Cmd {
	if reloadErr != nil {
		return m.setErrorMessage(fmt.Sprintf("%s; refresh failed: %s", msg, firstError(reloadErr)))
	}
	return m.setStatusMessage(msg)
}

func (m *Model) scheduleStatusClear() tea.Cmd {
	m.statusSeq++
	if m.messageTimeout <= 0 {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// Mode returns the current input mode
func (m *Model) Mode() Mode {
	return m.mode
}

// Tab returns the active tab
func (m *Model) Tab() Tab {
	return m.tab
}

// StatusText returns what the status bar currently shows
func (m *Model) StatusText() string {
	if m.errorMsg != "" {
		return m.errorMsg
	}
	return m.statusMsg
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
