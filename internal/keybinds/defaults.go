package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerInventoryBindings(r)
	registerFieldBindings(r)
	registerSelectBindings(r)
	registerFormBindings(r)
	registerTextInputBindings(r)
	registerConfirmBindings(r)
	registerViewerBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerNormalModeBindings only uses keys that cannot be typed into the
// search query, since printable keys extend it.
func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "ctrl+q", ActionQuit)
	r.Register(ContextNormal, "up", ActionNavigateUp)
	r.Register(ContextNormal, "down", ActionNavigateDown)
	r.Register(ContextNormal, "right", ActionNextTab)
	r.Register(ContextNormal, "left", ActionPrevTab)
	r.RegisterMultiple(ContextNormal, []string{"tab", "enter"}, ActionOpen)
	r.Register(ContextNormal, "shift+tab", ActionSwitchPane)
	r.Register(ContextNormal, "esc", ActionClearSearch)
	r.Register(ContextNormal, "backspace", ActionTextBackspace)
	r.Register(ContextNormal, "ctrl+d", ActionDeleteProduct)
	r.Register(ContextNormal, "ctrl+o", ActionOpenFolder)
	r.RegisterMultiple(ContextNormal, []string{"ctrl+r", "f5"}, ActionRefresh)
	r.Register(ContextNormal, "ctrl+y", ActionCopySKU)
	r.Register(ContextNormal, "ctrl+p", ActionOpenInspect)
	r.Register(ContextNormal, "ctrl+t", ActionOpenActivity)
	r.Register(ContextNormal, "f1", ActionOpenHelp)
}

func registerInventoryBindings(r *Registry) {
	r.RegisterMultiple(ContextInventory, []string{"+", "="}, ActionStockUp)
	r.Register(ContextInventory, "-", ActionStockDown)
	r.RegisterMultiple(ContextInventory, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextInventory, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextInventory, []string{"tab", "shift+tab", "esc"}, ActionSwitchPane)
	r.Register(ContextInventory, "ctrl+q", ActionQuit)
}

func registerFieldBindings(r *Registry) {
	r.Register(ContextField, "up", ActionPrevField)
	r.Register(ContextField, "down", ActionNextField)
	r.Register(ContextField, "enter", ActionCommit)
	r.Register(ContextField, "esc", ActionCancel)
	r.Register(ContextField, "tab", ActionOpenSelect)
	r.Register(ContextField, "ctrl+s", ActionSave)

	r.RegisterMultiple(ContextProduction, []string{" ", "left", "right"}, ActionToggle)
	r.RegisterMultiple(ContextProduction, []string{"y", "Y"}, ActionSetYes)
	r.RegisterMultiple(ContextProduction, []string{"n", "N"}, ActionSetNo)
}

func registerSelectBindings(r *Registry) {
	for _, ctx := range []Context{ContextSelect, ContextCategorySelect} {
		r.RegisterMultiple(ctx, []string{"up", "k"}, ActionNavigateUp)
		r.RegisterMultiple(ctx, []string{"down", "j"}, ActionNavigateDown)
		r.Register(ctx, "enter", ActionCommit)
		r.Register(ctx, "esc", ActionCancel)
		r.Register(ctx, "n", ActionNewItem)
		r.Register(ctx, "e", ActionEditItem)
	}
	r.Register(ContextSelect, " ", ActionToggle)
	r.Register(ContextSelect, "d", ActionDeleteItem)
}

func registerFormBindings(r *Registry) {
	r.Register(ContextItemForm, "enter", ActionTextSubmit)
	r.Register(ContextItemForm, "esc", ActionTextCancel)

	r.Register(ContextCategoryForm, "enter", ActionTextSubmit)
	r.Register(ContextCategoryForm, "esc", ActionTextCancel)
	r.RegisterMultiple(ContextCategoryForm, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextCategoryForm, []string{"shift+tab", "up"}, ActionPrevField)
}

func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "backspace", ActionTextBackspace)
	r.Register(ContextTextInput, "delete", ActionTextDelete)
	r.Register(ContextTextInput, "left", ActionTextMoveLeft)
	r.Register(ContextTextInput, "right", ActionTextMoveRight)
	r.RegisterMultiple(ContextTextInput, []string{"home", "ctrl+a"}, ActionTextMoveHome)
	r.RegisterMultiple(ContextTextInput, []string{"end", "ctrl+e"}, ActionTextMoveEnd)
	r.RegisterMultiple(ContextTextInput, []string{"ctrl+v", "shift+insert", "super+v"}, ActionTextPaste)
	r.Register(ContextTextInput, "ctrl+u", ActionTextClearBefore)
	r.Register(ContextTextInput, "ctrl+k", ActionTextClearAfter)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextDeleteConfirm, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextDeleteConfirm, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextDeleteConfirm, "1", ActionOption1)
	r.Register(ContextDeleteConfirm, "2", ActionOption2)
	r.Register(ContextDeleteConfirm, "enter", ActionConfirm)
	r.Register(ContextDeleteConfirm, "esc", ActionCancel)

	r.RegisterMultiple(ContextDeleteFileConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextDeleteFileConfirm, []string{"n", "N", "esc"}, ActionCancel)
	r.RegisterMultiple(ContextDeleteFileConfirm, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextDeleteFileConfirm, []string{"down", "j"}, ActionNavigateDown)
}

func registerViewerBindings(r *Registry) {
	r.RegisterMultiple(ContextViewer, []string{"esc", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextViewer, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextViewer, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextViewer, "pgup", ActionPageUp)
	r.Register(ContextViewer, "pgdown", ActionPageDown)
	r.Register(ContextViewer, "C", ActionClearActivity)
}
