package tui

import (
	"strings"

	"github.com/studiowebux/printcat/internal/catalog"
	"github.com/studiowebux/printcat/internal/types"
)

// CreateForm is the draft of a product not yet sent to the catalog
type CreateForm struct {
	Name        string
	Description string
	CategoryID  *int
	Production  bool
	Tags        []string
	Materials   []string
}

// newCreateForm returns the draft defaults
func newCreateForm() CreateForm {
	return CreateForm{Production: true}
}

// Request builds the POST body
func (f CreateForm) Request() types.ProductCreate {
	req := types.ProductCreate{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		CategoryID:  f.CategoryID,
		Production:  f.Production,
		Tags:        append([]string{}, f.Tags...),
	}
	if len(f.Materials) > 0 {
		req.Materials = append([]string{}, f.Materials...)
	}
	return req
}

// Category form subfields
const (
	categoryFieldName = iota
	categoryFieldSKU
	categoryFieldDescription
	categoryFieldCount
)

// CategoryForm backs NewCategory and EditCategoryItem
type CategoryForm struct {
	Name        string
	SkuInitials string
	Description string
	Field       int
	EditID      int // zero when creating
}

func (f *CategoryForm) field() *string {
	switch f.Field {
	case categoryFieldSKU:
		return &f.SkuInitials
	case categoryFieldDescription:
		return &f.Description
	default:
		return &f.Name
	}
}

// Request builds the category body
func (f CategoryForm) Request() types.CategoryCreate {
	return types.CategoryCreate{
		Name:        strings.TrimSpace(f.Name),
		SkuInitials: strings.ToUpper(strings.TrimSpace(f.SkuInitials)),
		Description: strings.TrimSpace(f.Description),
	}
}

// ItemForm backs the tag/material new and rename modals
type ItemForm struct {
	Text     string
	Original string // entry being renamed; empty when creating
	Return   Mode   // selection sub-mode to go back to
}

type selectKind int

const (
	selectTags selectKind = iota
	selectMaterials
)

func (k selectKind) noun() string {
	if k == selectMaterials {
		return "material"
	}
	return "tag"
}

// Selection is the multi-select state over a tag or material catalog
type Selection struct {
	Kind   selectKind
	Flags  []bool
	Cursor int
}

// seedFlags marks every catalog entry that current already contains
func seedFlags(entries []types.NamedEntry, current []string) []bool {
	flags := make([]bool, len(entries))
	for i, e := range entries {
		flags[i] = catalog.ContainsName(current, e.Name)
	}
	return flags
}

// selectedNames filters the catalog by flags, keeping catalog order
func selectedNames(entries []types.NamedEntry, flags []bool) []string {
	names := []string{}
	for i, e := range entries {
		if i < len(flags) && flags[i] {
			names = append(names, e.Name)
		}
	}
	return names
}

// remapFlags carries selection across a catalog reload by name, since
// the reloaded list is re-sorted. Every name in extra is selected too.
func remapFlags(oldEntries []types.NamedEntry, oldFlags []bool, newEntries []types.NamedEntry, extra ...string) []bool {
	keep := make(map[string]bool)
	for _, name := range selectedNames(oldEntries, oldFlags) {
		keep[catalog.NormalizeName(name)] = true
	}
	for _, name := range extra {
		keep[catalog.NormalizeName(name)] = true
	}

	flags := make([]bool, len(newEntries))
	for i, e := range newEntries {
		flags[i] = keep[catalog.NormalizeName(e.Name)]
	}
	return flags
}

// indexOfName finds an entry by normalized name, or -1
func indexOfName(entries []types.NamedEntry, name string) int {
	key := catalog.NormalizeName(name)
	for i, e := range entries {
		if catalog.NormalizeName(e.Name) == key {
			return i
		}
	}
	return -1
}

func entryNames(entries []types.NamedEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// wrap moves i by delta inside [0, n) with wrap-around
func wrap(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

// clampIndex keeps i inside [0, n), or 0 for an empty list
func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	return max(0, i)
}
