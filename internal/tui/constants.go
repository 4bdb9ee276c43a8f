package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin  = 6 // Standard horizontal margin (m.width - 6)
	ModalHeightMargin = 3 // Standard vertical margin (m.height - 3)

	// Form modals stay compact on wide terminals
	FormModalMaxWidth  = 80
	FormModalMaxHeight = 18

	// Viewport Padding and Borders
	ViewportBorderWidth       = 2 // Width consumed by borders
	ViewportPaddingHorizontal = 4 // Horizontal padding (left + right)

	// Content Area Offsets
	ContentOffsetLarge   = 9 // m.height - 9 for modals with footers
	MainViewHeightOffset = 4 // tab bar + status bar + pane borders

	// Split View Ratios
	SplitViewEqual = 0.5 // Equal 50/50 split for split-pane modals

	// Split Pane Layout
	SplitPaneBorderWidth = 3 // Border width between split panes

	// maxStatusWidth truncates status bar messages
	maxStatusWidth = 100
)
