/*
Package tui implements the terminal user interface for printcat.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

Catalog calls are made synchronously from Update. The UI waits for each
call, so the model is never touched from another goroutine.

# Key Components

  - model.go: Mode enum, Model struct and the status bar timer
  - keys.go: Key routing per mode, the product list and the stock pane
  - ladder.go: The circular field ladder shared by create and edit
  - fields.go: Field editing, partial updates and product creation
  - select.go: Tag, material and category pickers
  - item_forms.go: New/rename tag and material forms, the category form
  - delete_confirm.go: Two-step product deletion
  - viewers.go: Activity log, product inspector and help
  - render.go, modal_helpers.go: View rendering

# Modes

Normal is the resting mode. Enter opens the create ladder on the Create
tab and the edit ladder on the Search tab:

	Name -> Description -> Category -> Production -> Tags -> Materials -> Name

Up and Down move along the ladder and wrap in both directions. Esc leaves
the ladder and discards: the edit ladder restores the snapshot taken when
the session started, the create ladder resets the draft.

In the edit ladder Enter saves only the focused field with a sparse PUT.
In the create ladder Enter moves to the next field; Enter on Materials or
ctrl+s on any field posts the whole draft.

Tab on Tags, Materials or (create only) Category opens a picker. Pickers
apply on Enter and cancel on Esc. From a picker, n opens the new entry
form, e renames the entry under the cursor and d deletes it when no
loaded product uses it.

# Keybindings

Every non-text key is resolved through a keybinds.Registry by context, so
user overrides from keybinds.jsonc apply to all modes.
*/
package tui
