package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the input mode family in which bindings are active
type Context string

const (
	ContextGlobal            Context = "global"              // Available everywhere
	ContextNormal            Context = "normal"              // Product list, search typing
	ContextInventory         Context = "inventory"           // Inventory stock pane
	ContextField             Context = "field"               // Any field of the create/edit ladder
	ContextProduction        Context = "production"          // Production toggle field
	ContextSelect            Context = "select"              // Tag/material multi-select
	ContextCategorySelect    Context = "category_select"     // Category single-select
	ContextItemForm          Context = "item_form"           // New/rename tag or material
	ContextCategoryForm      Context = "category_form"       // New/edit category
	ContextDeleteConfirm     Context = "delete_confirm"      // Delete option chooser
	ContextDeleteFileConfirm Context = "delete_file_confirm" // File removal y/n
	ContextTextInput         Context = "text_input"          // Cursor editing inside text fields
	ContextViewer            Context = "viewer"              // Read-only scrollable modals
)

const (
	// Global
	ActionQuit      Action = "quit"
	ActionQuitForce Action = "quit_force"

	// Navigation
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionNextTab      Action = "next_tab"
	ActionPrevTab      Action = "prev_tab"
	ActionSwitchPane   Action = "switch_pane"

	// Normal mode
	ActionOpen          Action = "open" // edit on Search, create on Create, stock pane on Inventory
	ActionClearSearch   Action = "clear_search"
	ActionDeleteProduct Action = "delete_product"
	ActionOpenFolder    Action = "open_folder"
	ActionRefresh       Action = "refresh"
	ActionCopySKU       Action = "copy_sku"
	ActionOpenInspect   Action = "open_inspect"
	ActionOpenActivity  Action = "open_activity"
	ActionOpenHelp      Action = "open_help"

	// Inventory
	ActionStockUp   Action = "stock_up"
	ActionStockDown Action = "stock_down"

	// Field ladder
	ActionPrevField  Action = "prev_field"
	ActionNextField  Action = "next_field"
	ActionCommit     Action = "commit"
	ActionCancel     Action = "cancel"
	ActionOpenSelect Action = "open_select"
	ActionSave       Action = "save"

	// Production toggle
	ActionToggle Action = "toggle"
	ActionSetYes Action = "set_yes"
	ActionSetNo  Action = "set_no"

	// Selection sub-mode
	ActionNewItem    Action = "new_item"
	ActionDeleteItem Action = "delete_item"
	ActionEditItem   Action = "edit_item"

	// Delete confirmation
	ActionOption1 Action = "option_1"
	ActionOption2 Action = "option_2"
	ActionConfirm Action = "confirm"

	// Text input
	ActionTextBackspace   Action = "text_backspace"
	ActionTextDelete      Action = "text_delete"
	ActionTextMoveLeft    Action = "text_move_left"
	ActionTextMoveRight   Action = "text_move_right"
	ActionTextMoveHome    Action = "text_move_home"
	ActionTextMoveEnd     Action = "text_move_end"
	ActionTextPaste       Action = "text_paste"
	ActionTextClearBefore Action = "text_clear_before"
	ActionTextClearAfter  Action = "text_clear_after"
	ActionTextSubmit      Action = "text_submit"
	ActionTextCancel      Action = "text_cancel"

	// Viewers
	ActionCloseModal    Action = "close_modal"
	ActionClearActivity Action = "clear_activity"
)

// Description returns a short help text for an action.
func (a Action) Description() string {
	if d, ok := actionDescriptions[a]; ok {
		return d
	}
	return string(a)
}

var actionDescriptions = map[Action]string{
	ActionQuit:            "Quit",
	ActionQuitForce:       "Force quit",
	ActionNavigateUp:      "Move up",
	ActionNavigateDown:    "Move down",
	ActionPageUp:          "Page up",
	ActionPageDown:        "Page down",
	ActionNextTab:         "Next tab",
	ActionPrevTab:         "Previous tab",
	ActionSwitchPane:      "Switch pane",
	ActionOpen:            "Edit / create / stock pane",
	ActionClearSearch:     "Clear search",
	ActionDeleteProduct:   "Delete product",
	ActionOpenFolder:      "Open product folder",
	ActionRefresh:         "Refresh data",
	ActionCopySKU:         "Copy SKU",
	ActionOpenInspect:     "Inspect product JSON",
	ActionOpenActivity:    "Activity log",
	ActionOpenHelp:        "Help",
	ActionStockUp:         "Stock +1",
	ActionStockDown:       "Stock -1",
	ActionPrevField:       "Previous field",
	ActionNextField:       "Next field",
	ActionCommit:          "Save field / continue",
	ActionCancel:          "Cancel",
	ActionOpenSelect:      "Open picker",
	ActionSave:            "Create product",
	ActionToggle:          "Toggle",
	ActionSetYes:          "Set yes",
	ActionSetNo:           "Set no",
	ActionNewItem:         "New entry",
	ActionDeleteItem:      "Delete unused entry",
	ActionEditItem:        "Rename entry",
	ActionOption1:         "Delete record only",
	ActionOption2:         "Delete record and files",
	ActionConfirm:         "Confirm",
	ActionTextBackspace:   "Delete before cursor",
	ActionTextDelete:      "Delete at cursor",
	ActionTextMoveLeft:    "Cursor left",
	ActionTextMoveRight:   "Cursor right",
	ActionTextMoveHome:    "Cursor to start",
	ActionTextMoveEnd:     "Cursor to end",
	ActionTextPaste:       "Paste",
	ActionTextClearBefore: "Clear before cursor",
	ActionTextClearAfter:  "Clear after cursor",
	ActionTextSubmit:      "Submit",
	ActionTextCancel:      "Cancel",
	ActionCloseModal:      "Close",
	ActionClearActivity:   "Clear activity log",
}

// IsKnown reports whether a is a defined action.
func (a Action) IsKnown() bool {
	_, ok := actionDescriptions[a]
	return ok
}
