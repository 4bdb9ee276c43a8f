package tui

import (
	"context"
	"errors"
	"sort"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/printcat/internal/catalog"
	"github.com/studiowebux/printcat/internal/history"
	"github.com/studiowebux/printcat/internal/types"
)

// fakeCatalog is an in-memory catalog service. Every mutating call is
// appended to calls so tests can assert on what reached the service.
type fakeCatalog struct {
	products   []types.Product
	tags       []types.NamedEntry
	materials  []types.NamedEntry
	categories []types.Category

	calls   []string
	updates []types.ProductUpdate
	created []types.ProductCreate

	nextSKU string
	failAll error
	failOn  map[string]error
}

func (f *fakeCatalog) fail(op string) error {
	if f.failAll != nil {
		return f.failAll
	}
	return f.failOn[op]
}

type fakeProducts struct{ f *fakeCatalog }

func (r fakeProducts) List(ctx context.Context) ([]types.Product, error) {
	if err := r.f.fail("products.list"); err != nil {
		return nil, err
	}
	out := make([]types.Product, len(r.f.products))
	for i, p := range r.f.products {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r fakeProducts) Get(ctx context.Context, sku string) (*types.Product, error) {
	if err := r.f.fail("products.get"); err != nil {
		return nil, err
	}
	for _, p := range r.f.products {
		if p.SKU == sku {
			c := p.Clone()
			return &c, nil
		}
	}
	return nil, &catalog.Error{Type: catalog.ErrTypeNotFound, Message: "Product not found"}
}

func (r fakeProducts) Create(ctx context.Context, draft types.ProductCreate) (*types.CreateResponse, error) {
	r.f.calls = append(r.f.calls, "products.create")
	if err := r.f.fail("products.create"); err != nil {
		return nil, err
	}
	r.f.created = append(r.f.created, draft)
	sku := r.f.nextSKU
	if sku == "" {
		sku = "NEW-001"
	}
	r.f.products = append(r.f.products, types.Product{
		SKU:        sku,
		Name:       draft.Name,
		CategoryID: draft.CategoryID,
		Production: draft.Production,
		Tags:       draft.Tags,
		Materials:  draft.Materials,
	})
	return &types.CreateResponse{SKU: sku, Message: "ok"}, nil
}

func (r fakeProducts) Update(ctx context.Context, sku string, update types.ProductUpdate) error {
	r.f.calls = append(r.f.calls, "products.update "+sku)
	if err := r.f.fail("products.update"); err != nil {
		return err
	}
	r.f.updates = append(r.f.updates, update)
	for i := range r.f.products {
		p := &r.f.products[i]
		if p.SKU != sku {
			continue
		}
		if update.Name != nil {
			p.Name = *update.Name
		}
		if update.Description != nil {
			p.Description = types.StringPtr(*update.Description)
		}
		if update.Production != nil {
			p.Production = *update.Production
		}
		if update.Tags != nil {
			p.Tags = *update.Tags
		}
		if update.Materials != nil {
			p.Materials = *update.Materials
		}
		if update.StockQuantity != nil {
			p.StockQuantity = types.IntPtr(*update.StockQuantity)
		}
	}
	return nil
}

func (r fakeProducts) Delete(ctx context.Context, sku string, deleteFiles bool) (string, error) {
	op := "products.delete " + sku
	if deleteFiles {
		op += " +files"
	}
	r.f.calls = append(r.f.calls, op)
	if err := r.f.fail("products.delete"); err != nil {
		return "", err
	}
	for i, p := range r.f.products {
		if p.SKU == sku {
			r.f.products = append(r.f.products[:i], r.f.products[i+1:]...)
			break
		}
	}
	return "Product " + sku + " deleted", nil
}

type fakeNames struct {
	f    *fakeCatalog
	kind string
}

func (r fakeNames) list() *[]types.NamedEntry {
	if r.kind == "material" {
		return &r.f.materials
	}
	return &r.f.tags
}

func (r fakeNames) Kind() string { return r.kind }

func (r fakeNames) List(ctx context.Context) ([]types.NamedEntry, error) {
	if err := r.f.fail(r.kind + "s.list"); err != nil {
		return nil, err
	}
	out := append([]types.NamedEntry{}, *r.list()...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r fakeNames) Create(ctx context.Context, name string) (*types.NamedEntry, error) {
	r.f.calls = append(r.f.calls, r.kind+"s.create "+name)
	if err := r.f.fail(r.kind + "s.create"); err != nil {
		return nil, err
	}
	entry := types.NamedEntry{Name: catalog.NormalizeName(name)}
	*r.list() = append(*r.list(), entry)
	return &entry, nil
}

func (r fakeNames) Rename(ctx context.Context, name, newName string) (*types.NamedEntry, error) {
	r.f.calls = append(r.f.calls, r.kind+"s.rename "+catalog.NormalizeName(name))
	if err := r.f.fail(r.kind + "s.rename"); err != nil {
		return nil, err
	}
	entry := types.NamedEntry{Name: catalog.NormalizeName(newName)}
	list := *r.list()
	for i := range list {
		if list[i].Name == catalog.NormalizeName(name) {
			list[i] = entry
		}
	}
	return &entry, nil
}

func (r fakeNames) Delete(ctx context.Context, name string) error {
	r.f.calls = append(r.f.calls, r.kind+"s.delete "+catalog.NormalizeName(name))
	if err := r.f.fail(r.kind + "s.delete"); err != nil {
		return err
	}
	list := *r.list()
	for i := range list {
		if list[i].Name == catalog.NormalizeName(name) {
			*r.list() = append(list[:i], list[i+1:]...)
			break
		}
	}
	return nil
}

type fakeCategories struct{ f *fakeCatalog }

func (r fakeCategories) List(ctx context.Context) ([]types.Category, error) {
	if err := r.f.fail("categories.list"); err != nil {
		return nil, err
	}
	out := append([]types.Category{}, r.f.categories...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r fakeCategories) Create(ctx context.Context, form types.CategoryCreate) (*types.Category, error) {
	r.f.calls = append(r.f.calls, "categories.create")
	if err := catalog.ValidateCategory(form); err != nil {
		return nil, err
	}
	cat := types.Category{ID: len(r.f.categories) + 100, Name: form.Name, SkuInitials: form.SkuInitials}
	r.f.categories = append(r.f.categories, cat)
	return &cat, nil
}

func (r fakeCategories) Update(ctx context.Context, id int, form types.CategoryCreate) (*types.Category, error) {
	r.f.calls = append(r.f.calls, "categories.update")
	for i := range r.f.categories {
		if r.f.categories[i].ID == id {
			r.f.categories[i].Name = form.Name
			r.f.categories[i].SkuInitials = form.SkuInitials
			c := r.f.categories[i]
			return &c, nil
		}
	}
	return nil, &catalog.Error{Type: catalog.ErrTypeNotFound, Message: "Category not found"}
}

func (f *fakeCatalog) repos() catalog.Repositories {
	return catalog.Repositories{
		Products:   fakeProducts{f},
		Tags:       fakeNames{f, "tag"},
		Materials:  fakeNames{f, "material"},
		Categories: fakeCategories{f},
	}
}

// newFakeCatalog returns a small catalog: two products, three tags, two
// materials and one category
func newFakeCatalog() *fakeCatalog {
	cat := 5
	return &fakeCatalog{
		products: []types.Product{
			{ID: 1, SKU: "KEY-001", Name: "Keychain", Tags: []string{"a", "c"}, CategoryID: &cat, Production: true, StockQuantity: types.IntPtr(3)},
			{ID: 2, SKU: "VAS-001", Name: "Vase", Description: types.StringPtr("Tall"), Tags: []string{}, Materials: []string{"pla"}, StockQuantity: types.IntPtr(10), SellingPrice: types.IntPtr(1500)},
		},
		tags:       []types.NamedEntry{{Name: "a", UsageCount: 1}, {Name: "b"}, {Name: "c", UsageCount: 1}},
		materials:  []types.NamedEntry{{Name: "petg"}, {Name: "pla", UsageCount: 1}},
		categories: []types.Category{{ID: 5, Name: "Keychains", SkuInitials: "KEY"}},
	}
}

// fakeActivity collects recorded actions in memory
type fakeActivity struct {
	entries []history.Entry
}

func (a *fakeActivity) Record(action, target string, payload any, callErr error) error {
	e := history.Entry{ID: int64(len(a.entries) + 1), Action: action, Target: target, OK: callErr == nil}
	if callErr != nil {
		e.Error = callErr.Error()
	}
	a.entries = append(a.entries, e)
	return nil
}

func (a *fakeActivity) Recent(limit int) ([]history.Entry, error) {
	out := make([]history.Entry, 0, len(a.entries))
	for i := len(a.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, a.entries[i])
	}
	return out, nil
}

func (a *fakeActivity) ForTarget(target string, limit int) ([]history.Entry, error) {
	var out []history.Entry
	for i := len(a.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if a.entries[i].Target == target {
			out = append(out, a.entries[i])
		}
	}
	return out, nil
}

func (a *fakeActivity) GetCount() (int, error) {
	return len(a.entries), nil
}

func (a *fakeActivity) Clear() error {
	a.entries = nil
	return nil
}

// CreateTestModel creates a Model backed by an in-memory catalog
func CreateTestModel(t *testing.T) (*Model, *fakeCatalog) {
	t.Helper()

	fake := newFakeCatalog()
	m := New(Options{
		Repos:       fake.repos(),
		Activity:    &fakeActivity{},
		ProductRoot: t.TempDir(),
	})
	m.openFolder = func(root, sku string) error { return errors.New("no file manager") }
	m.writeClipboard = func(string) error { return nil }
	m.readClipboard = func() (string, error) { return "pasted", nil }
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, fake
}

// press sends one key per argument. Single characters are sent as runes,
// anything else as a named key.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

// typeText sends every rune of s as typed input
func typeText(m *Model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"space":     tea.KeySpace,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+d":    tea.KeyCtrlD,
	"ctrl+o":    tea.KeyCtrlO,
	"ctrl+p":    tea.KeyCtrlP,
	"ctrl+q":    tea.KeyCtrlQ,
	"ctrl+r":    tea.KeyCtrlR,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+t":    tea.KeyCtrlT,
	"ctrl+u":    tea.KeyCtrlU,
	"ctrl+v":    tea.KeyCtrlV,
	"ctrl+y":    tea.KeyCtrlY,
	"f1":        tea.KeyF1,
}

func keyMsg(k string) tea.KeyMsg {
	if t, ok := namedKeys[k]; ok {
		if t == tea.KeySpace {
			return tea.KeyMsg{Type: t, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected error but got nil")
	}
}
