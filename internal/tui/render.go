package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/printcat/internal/keybinds"
	"github.com/studiowebux/printcat/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan).
			Underline(true)

	styleFieldFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorYellow)
)

// renderMain renders the tab bar, both panes and the status bar
func (m *Model) renderMain() string {
	leftWidth := max(30, m.width*45/100)
	if m.width < 80 {
		leftWidth = m.width / 2
	}
	rightWidth := m.width - leftWidth - ViewportBorderWidth*2
	paneHeight := m.height - MainViewHeightOffset

	var left, right string
	var leftTitle, rightTitle string
	switch m.tab {
	case TabCreate:
		leftTitle, left = "New product", m.renderCreateForm()
		rightTitle, right = m.renderCreateSide(rightWidth - 2)
	case TabSearch:
		leftTitle, left = "Products", m.renderProductList(leftWidth-2, paneHeight-1)
		rightTitle, right = m.renderSearchSide()
	case TabInventory:
		leftTitle, left = "Inventory", m.renderInventoryTable(leftWidth-2, paneHeight-3)
		rightTitle, right = "Stock adjustment", m.renderStockPane()
	}

	leftBox := paneStyle(m.pane == PaneLeft, leftWidth, paneHeight).
		Render(styleTitle.Render(leftTitle) + "\n" + left)
	rightBox := paneStyle(m.pane == PaneRight, rightWidth, paneHeight).
		Render(styleTitle.Render(rightTitle) + "\n" + right)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox),
		m.renderStatusBar(),
	)
}

func paneStyle(focused bool, width, height int) lipgloss.Style {
	border := colorGray
	if focused {
		border = colorGreen
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Height(height).
		Padding(0, 1)
}

func (m *Model) renderTabs() string {
	parts := make([]string, len(tabOrder))
	for i, t := range tabOrder {
		if t == m.tab {
			parts[i] = styleTabActive.Render(t.String())
		} else {
			parts[i] = styleSubtle.Render(t.String())
		}
	}
	return " " + strings.Join(parts, styleSubtle.Render(" | "))
}

// renderProductList renders the filtered products with the search prompt
func (m *Model) renderProductList(width, height int) string {
	var b strings.Builder
	b.WriteString(m.renderQueryLine() + "\n")

	visible := m.filteredProducts()
	if len(visible) == 0 {
		b.WriteString(styleSubtle.Render("No products"))
		return b.String()
	}

	rows := max(1, height-1)
	start := 0
	if sel := m.selectedIndex(); sel >= rows {
		start = sel - rows + 1
	}
	end := min(len(visible), start+rows)

	for _, p := range visible[start:end] {
		line := truncate(fmt.Sprintf("%-10s %s", p.SKU, p.Name), max(4, width))
		if p.SKU == m.selectedSKU {
			line = styleSelected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderQueryLine() string {
	query := m.activeQuery()
	if query == "" {
		return styleSubtle.Render("Type to search")
	}
	return "Search: " + styleWarning.Render(query)
}

// renderSearchSide shows the edit form, its picker, or the product details
func (m *Model) renderSearchSide() (string, string) {
	switch m.mode {
	case ModeEditTagSelect, ModeEditMaterialSelect:
		return m.renderPicker()
	}
	if isEditMode(m.mode) {
		p := m.editingProduct()
		if p == nil {
			return "Edit", styleSubtle.Render("Product no longer exists")
		}
		return "Edit " + p.SKU, m.renderProductForm(flowEdit, productFormValues{
			Name:        p.Name,
			Description: p.DescriptionText(),
			Category:    m.categoryName(p.CategoryID),
			Production:  p.Production,
			Tags:        p.Tags,
			Materials:   p.Materials,
		})
	}

	p := m.selectedProduct()
	if p == nil {
		return "Details", styleSubtle.Render("No product selected")
	}
	return p.SKU, m.renderProductDetails(p)
}

func (m *Model) renderProductDetails(p *types.Product) string {
	lines := []string{
		"Name:        " + p.Name,
		"Description: " + orDash(p.DescriptionText()),
		"Category:    " + orDash(m.categoryName(p.CategoryID)),
		"Production:  " + yesNo(p.Production),
		"Tags:        " + orDash(strings.Join(p.Tags, ", ")),
		"Materials:   " + orDash(strings.Join(p.Materials, ", ")),
		"Stock:       " + fmt.Sprintf("%d", p.Stock()),
		"Price:       " + formatCents(p.Price()),
		"",
		styleSubtle.Render(m.hints(keybinds.ContextNormal,
			keyHint{keybinds.ActionOpen, "edit"},
			keyHint{keybinds.ActionDeleteProduct, "delete"},
			keyHint{keybinds.ActionOpenFolder, "folder"},
			keyHint{keybinds.ActionOpenInspect, "inspect"},
		)),
	}
	return strings.Join(lines, "\n")
}

// productFormValues is what the ladder form displays, for either flow
type productFormValues struct {
	Name        string
	Description string
	Category    string
	Production  bool
	Tags        []string
	Materials   []string
}

// renderProductForm renders the ladder with the focused rung highlighted
func (m *Model) renderProductForm(fl flow, v productFormValues) string {
	_, focused, inLadder := fieldOf(m.mode)
	if parent, ok := parentMode(m.mode); ok {
		_, focused, inLadder = fieldOf(parent)
	}

	var b strings.Builder
	for _, f := range fieldLadder {
		var value string
		switch f {
		case FieldName:
			value = v.Name
		case FieldDescription:
			value = v.Description
		case FieldCategory:
			value = orDash(v.Category)
			if fl == flowEdit {
				value += styleSubtle.Render(" (read-only)")
			}
		case FieldProduction:
			value = yesNo(v.Production)
		case FieldTags:
			value = orDash(strings.Join(v.Tags, ", "))
		case FieldMaterials:
			value = orDash(strings.Join(v.Materials, ", "))
		}

		label := fmt.Sprintf("%-12s", f.String()+":")
		if inLadder && f == focused {
			if f.isText() && fieldMode(fl, f) == m.mode {
				value = withCursor(value, m.cursor)
			}
			b.WriteString(styleFieldFocused.Render("> "+label) + " " + value + "\n")
			continue
		}
		b.WriteString("  " + label + " " + value + "\n")
	}

	b.WriteString("\n" + styleSubtle.Render(m.fieldHint(fl, focused)))
	return b.String()
}

func (m *Model) fieldHint(fl flow, f Field) string {
	parts := []string{m.hints(keybinds.ContextField,
		keyHint{keybinds.ActionPrevField, "prev field"},
		keyHint{keybinds.ActionNextField, "next field"},
		keyHint{keybinds.ActionCancel, "discard"},
	)}
	switch {
	case f == FieldProduction:
		parts = append(parts, m.hints(keybinds.ContextProduction, keyHint{keybinds.ActionToggle, "toggle"}))
	case f == FieldTags || f == FieldMaterials || (f == FieldCategory && fl == flowCreate):
		parts = append(parts, m.hints(keybinds.ContextField, keyHint{keybinds.ActionOpenSelect, "pick"}))
	}
	if fl == flowEdit {
		parts = append(parts, m.hints(keybinds.ContextField, keyHint{keybinds.ActionCommit, "save field"}))
	} else {
		parts = append(parts, m.hints(keybinds.ContextField,
			keyHint{keybinds.ActionCommit, "next"},
			keyHint{keybinds.ActionSave, "create"},
		))
	}
	return joinHints(parts...)
}

// keyHint pairs an action with its footer label
type keyHint struct {
	action keybinds.Action
	label  string
}

// hints renders footer hints from the live bindings. Unbound actions are left out.
func (m *Model) hints(ctx keybinds.Context, items ...keyHint) string {
	parts := make([]string, 0, len(items))
	for _, h := range items {
		keys := m.keybinds.GetBinding(ctx, h.action)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, displayKeys(strings.Join(keys, "/"))+" "+h.label)
	}
	return strings.Join(parts, " | ")
}

func joinHints(groups ...string) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		if g != "" {
			parts = append(parts, g)
		}
	}
	return strings.Join(parts, " | ")
}

// renderCreateForm renders the create draft
func (m *Model) renderCreateForm() string {
	f := m.createForm
	return m.renderProductForm(flowCreate, productFormValues{
		Name:        f.Name,
		Description: f.Description,
		Category:    m.categoryName(f.CategoryID),
		Production:  f.Production,
		Tags:        f.Tags,
		Materials:   f.Materials,
	})
}

// renderCreateSide shows the active picker of the create flow
func (m *Model) renderCreateSide(width int) (string, string) {
	switch m.mode {
	case ModeCreateTagSelect, ModeCreateMaterialSelect:
		return m.renderPicker()
	case ModeCreateCategorySelect:
		return m.renderCategoryPicker()
	}
	if m.mode == ModeNormal {
		return "Create", styleSubtle.Render(fmt.Sprintf("Press %s to start a new product",
			displayKeys(m.keybinds.GetBindingString(keybinds.ContextNormal, keybinds.ActionOpen))))
	}
	return "Create", styleSubtle.Render(truncate("Category assigns the SKU prefix. The service numbers products per category.", max(8, width*3)))
}

// renderPicker renders the tag or material multi-select
func (m *Model) renderPicker() (string, string) {
	sel := m.selection
	entries := m.entries(sel.Kind)
	title := "Select " + sel.Kind.noun() + "s"

	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString(styleSubtle.Render("Empty - press "+m.keybinds.GetBindingString(keybinds.ContextSelect, keybinds.ActionNewItem)+" to add") + "\n")
	}
	for i, e := range entries {
		box := "[ ]"
		if i < len(sel.Flags) && sel.Flags[i] {
			box = styleSuccess.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", box, e.Name)
		if e.UsageCount > 0 {
			line += styleSubtle.Render(fmt.Sprintf(" (%d)", e.UsageCount))
		}
		if i == sel.Cursor {
			line = styleSelected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + styleSubtle.Render(m.hints(keybinds.ContextSelect,
		keyHint{keybinds.ActionToggle, "toggle"},
		keyHint{keybinds.ActionCommit, "apply"},
		keyHint{keybinds.ActionCancel, "cancel"},
		keyHint{keybinds.ActionNewItem, "new"},
		keyHint{keybinds.ActionEditItem, "rename"},
		keyHint{keybinds.ActionDeleteItem, "delete"},
	)))
	return title, b.String()
}

// renderCategoryPicker renders the single-select category list
func (m *Model) renderCategoryPicker() (string, string) {
	var b strings.Builder
	if len(m.categories) == 0 {
		b.WriteString(styleSubtle.Render("No categories - press "+m.keybinds.GetBindingString(keybinds.ContextCategorySelect, keybinds.ActionNewItem)+" to create one") + "\n")
	}
	for i, c := range m.categories {
		mark := "( )"
		if id := m.createForm.CategoryID; id != nil && *id == c.ID {
			mark = styleSuccess.Render("(*)")
		}
		line := fmt.Sprintf("%s %s [%s]", mark, c.Name, c.SkuInitials)
		if i == m.categoryCursor {
			line = styleSelected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + styleSubtle.Render(m.hints(keybinds.ContextCategorySelect,
		keyHint{keybinds.ActionCommit, "select"},
		keyHint{keybinds.ActionCancel, "cancel"},
		keyHint{keybinds.ActionNewItem, "new"},
		keyHint{keybinds.ActionEditItem, "edit"},
	)))
	return "Select category", b.String()
}

// stockStatus labels a quantity for the inventory table
func stockStatus(qty int) string {
	switch {
	case qty > 5:
		return "In Stock"
	case qty > 0:
		return "Low Stock"
	default:
		return "Out of Stock"
	}
}

// inventorySummary totals the loaded products
func inventorySummary(products []types.Product) (count, valueCents, lowStock int) {
	for _, p := range products {
		valueCents += p.Price() * p.Stock()
		if q := p.Stock(); q > 0 && q <= 5 {
			lowStock++
		}
	}
	return len(products), valueCents, lowStock
}

// renderInventoryTable renders SKU, Name, Qty, Price and Status columns
func (m *Model) renderInventoryTable(width, height int) string {
	var b strings.Builder
	b.WriteString(m.renderQueryLine() + "\n")
	b.WriteString(styleSubtle.Render(fmt.Sprintf("%-10s %-20s %5s %10s  %s", "SKU", "Name", "Qty", "Price", "Status")) + "\n")

	visible := m.filteredProducts()
	rows := max(1, height-1)
	start := 0
	if sel := m.selectedIndex(); sel >= rows {
		start = sel - rows + 1
	}
	end := min(len(visible), start+rows)

	for _, p := range visible[start:end] {
		status := stockStatus(p.Stock())
		styled := styleSuccess.Render(status)
		switch status {
		case "Low Stock":
			styled = styleWarning.Render(status)
		case "Out of Stock":
			styled = styleError.Render(status)
		}
		line := fmt.Sprintf("%-10s %-20s %5d %10s  ", p.SKU, truncate(p.Name, 20), p.Stock(), formatCents(p.Price()))
		if p.SKU == m.selectedSKU {
			line = styleSelected.Render(line)
		}
		b.WriteString(line + styled + "\n")
	}

	count, value, low := inventorySummary(m.products)
	b.WriteString("\n" + styleSuccess.Render(truncate(
		fmt.Sprintf("Total Products: %d | Total Value: %s | Low Stock Items: %d", count, formatCents(value), low),
		max(8, width))))
	return b.String()
}

func (m *Model) renderStockPane() string {
	p := m.selectedProduct()
	if p == nil {
		return styleSubtle.Render("No product selected")
	}
	lines := []string{
		p.SKU + "  " + p.Name,
		"",
		fmt.Sprintf("Quantity: %d", p.Stock()),
		"Status:   " + stockStatus(p.Stock()),
		"",
	}
	if m.pane == PaneRight {
		lines = append(lines, styleSubtle.Render(m.hints(keybinds.ContextInventory,
			keyHint{keybinds.ActionStockUp, "add one"},
			keyHint{keybinds.ActionStockDown, "remove one"},
			keyHint{keybinds.ActionSwitchPane, "back"},
		)))
	} else {
		lines = append(lines, styleSubtle.Render(m.hints(keybinds.ContextNormal, keyHint{keybinds.ActionOpen, "to adjust stock"})))
	}
	return strings.Join(lines, "\n")
}

// renderStatusBar renders the tab hint on the left and the message on the right
func (m *Model) renderStatusBar() string {
	left := styleSubtle.Render(fmt.Sprintf("%s | %s", m.tab, m.mode))

	right := ""
	switch {
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		right = styleSuccess.Render(m.statusMsg)
	default:
		right = styleSubtle.Render(m.hints(keybinds.ContextNormal,
			keyHint{keybinds.ActionOpenHelp, "help"},
			keyHint{keybinds.ActionRefresh, "refresh"},
			keyHint{keybinds.ActionQuit, "quit"},
		))
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	return left + strings.Repeat(" ", spacing) + right
}

// withCursor draws a block cursor at rune offset pos
func withCursor(s string, pos int) string {
	r := []rune(s)
	pos = max(0, min(pos, len(r)))
	return string(r[:pos]) + "█" + string(r[pos:])
}

func formatCents(c int) string {
	sign := ""
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
