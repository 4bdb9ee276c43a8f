package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/printcat/internal/catalog"
	"github.com/studiowebux/printcat/internal/logging"
	"github.com/studiowebux/printcat/internal/types"
)

// Activity actions written to the log
const (
	activityCreateProduct  = "create_product"
	activityUpdateProduct  = "update_product"
	activityDeleteProduct  = "delete_product"
	activityCreateCategory = "create_category"
	activityUpdateCategory = "update_category"
)

// refresh reloads every collection. A collection whose call fails keeps
// its previous contents; the first failure is reported.
func (m *Model) refresh() tea.Cmd {
	if err := m.reloadAll(); err != nil {
		return m.setCallError(firstError(err))
	}
	return nil
}

// reloadAll reloads every collection and returns the joined failures
func (m *Model) reloadAll() error {
	err := errors.Join(
		m.reloadProducts(),
		m.reloadTags(),
		m.reloadMaterials(),
		m.reloadCategories(),
	)
	m.ensureSelection()
	return err
}

func (m *Model) reloadProducts() error {
	if m.repos.Products == nil {
		return nil
	}
	products, err := m.repos.Products.List(context.Background())
	if err != nil {
		logging.Warn("failed to load products", zap.Error(err))
		return err
	}

	// An open edit session keeps its working copy
	if m.editBackup != nil {
		if live := m.editingProduct(); live != nil {
			for i := range products {
				if products[i].SKU == live.SKU {
					products[i] = *live
				}
			}
		}
	}

	m.products = products
	return nil
}

func (m *Model) reloadTags() error {
	if m.repos.Tags == nil {
		return nil
	}
	tags, err := m.repos.Tags.List(context.Background())
	if err != nil {
		logging.Warn("failed to load tags", zap.Error(err))
		return err
	}
	m.tags = tags
	return nil
}

func (m *Model) reloadMaterials() error {
	if m.repos.Materials == nil {
		return nil
	}
	materials, err := m.repos.Materials.List(context.Background())
	if err != nil {
		logging.Warn("failed to load materials", zap.Error(err))
		return err
	}
	m.materials = materials
	return nil
}

func (m *Model) reloadCategories() error {
	if m.repos.Categories == nil {
		return nil
	}
	categories, err := m.repos.Categories.List(context.Background())
	if err != nil {
		logging.Warn("failed to load categories", zap.Error(err))
		return err
	}
	m.categories = categories
	return nil
}

func firstError(err error) error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		if errs := joined.Unwrap(); len(errs) > 0 {
			return errs[0]
		}
	}
	return err
}

// activeQuery returns the filter of the current tab
func (m *Model) activeQuery() string {
	if m.tab == TabInventory {
		return m.inventoryQuery
	}
	return m.searchQuery
}

func (m *Model) setActiveQuery(q string) {
	if m.tab == TabInventory {
		m.inventoryQuery = q
	} else {
		m.searchQuery = q
	}
}

// filteredProducts matches the active query against name or SKU, case-insensitively
func (m *Model) filteredProducts() []*types.Product {
	query := strings.ToLower(strings.TrimSpace(m.activeQuery()))
	var out []*types.Product
	for i := range m.products {
		p := &m.products[i]
		if query == "" ||
			strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.SKU), query) {
			out = append(out, p)
		}
	}
	return out
}

// selectedProduct returns the selected product if it is visible in the
// current filter, otherwise the first visible one
func (m *Model) selectedProduct() *types.Product {
	visible := m.filteredProducts()
	for _, p := range visible {
		if p.SKU == m.selectedSKU {
			return p
		}
	}
	if len(visible) > 0 {
		return visible[0]
	}
	return nil
}

// ensureSelection pins selectedSKU to a visible product, or clears it
func (m *Model) ensureSelection() {
	if p := m.selectedProduct(); p != nil {
		m.selectedSKU = p.SKU
	} else {
		m.selectedSKU = ""
	}
}

// moveSelection steps through the filtered list with wrap-around
func (m *Model) moveSelection(delta int) {
	visible := m.filteredProducts()
	if len(visible) == 0 {
		m.selectedSKU = ""
		return
	}
	idx := 0
	for i, p := range visible {
		if p.SKU == m.selectedSKU {
			idx = wrap(i, delta, len(visible))
			break
		}
	}
	m.selectedSKU = visible[idx].SKU
}

// selectedIndex is the position of the selection in the filtered list
func (m *Model) selectedIndex() int {
	for i, p := range m.filteredProducts() {
		if p.SKU == m.selectedSKU {
			return i
		}
	}
	return 0
}

// productBySKU looks up the working copy regardless of the filter
func (m *Model) productBySKU(sku string) *types.Product {
	for i := range m.products {
		if m.products[i].SKU == sku {
			return &m.products[i]
		}
	}
	return nil
}

// editingProduct is the working copy of the open edit session
func (m *Model) editingProduct() *types.Product {
	if m.editSKU == "" {
		return nil
	}
	return m.productBySKU(m.editSKU)
}

// switchTab moves to another tab, clears the selection and reloads.
func (m *Model) switchTab(delta int) tea.Cmd {
	idx := 0
	for i, t := range tabOrder {
		if t == m.tab {
			idx = i
		}
	}
	m.tab = tabOrder[wrap(idx, delta, len(tabOrder))]
	m.pane = PaneLeft
	m.selectedSKU = ""
	return m.refresh()
}

// activityFor names a tag or material mutation, e.g. "create_tag"
func activityFor(verb string, kind selectKind) string {
	return verb + "_" + kind.noun()
}

// record writes a mutation to the activity log. Failures are only logged.
func (m *Model) record(action, target string, payload any, callErr error) {
	if m.activity == nil {
		return
	}
	if err := m.activity.Record(action, target, payload, callErr); err != nil {
		logging.Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}

// usedByProducts reports whether any loaded product references name.
// An open edit backup counts too since it mirrors the stored record.
func (m *Model) usedByProducts(kind selectKind, name string) bool {
	uses := func(p types.Product) bool {
		if kind == selectMaterials {
			return catalog.ContainsName(p.Materials, name)
		}
		return catalog.ContainsName(p.Tags, name)
	}

	for _, p := range m.products {
		if uses(p) {
			return true
		}
	}
	return m.editBackup != nil && uses(*m.editBackup)
}
