package catalog

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/studiowebux/printcat/internal/types"
)

// ProductRepository is keyed by SKU.
type ProductRepository interface {
	List(ctx context.Context) ([]types.Product, error)
	Get(ctx context.Context, sku string) (*types.Product, error)
	Create(ctx context.Context, draft types.ProductCreate) (*types.CreateResponse, error)
	Update(ctx context.Context, sku string, update types.ProductUpdate) error
	Delete(ctx context.Context, sku string, deleteFiles bool) (string, error)
}

// NameRepository serves tags and materials. Entries are keyed by their
// normalized name, so a rename changes the key.
type NameRepository interface {
	Kind() string
	List(ctx context.Context) ([]types.NamedEntry, error)
	Create(ctx context.Context, name string) (*types.NamedEntry, error)
	Rename(ctx context.Context, name, newName string) (*types.NamedEntry, error)
	Delete(ctx context.Context, name string) error
}

// CategoryRepository is keyed by numeric id, which survives renames.
type CategoryRepository interface {
	List(ctx context.Context) ([]types.Category, error)
	Create(ctx context.Context, form types.CategoryCreate) (*types.Category, error)
	Update(ctx context.Context, id int, form types.CategoryCreate) (*types.Category, error)
}

// Repositories bundles everything the UI needs from the catalog.
type Repositories struct {
	Products   ProductRepository
	Tags       NameRepository
	Materials  NameRepository
	Categories CategoryRepository
}

// ProductService implements ProductRepository over HTTP.
type ProductService struct {
	client *Client
}

// List returns every product.
func (s *ProductService) List(ctx context.Context) ([]types.Product, error) {
	var products []types.Product
	if err := s.client.do(ctx, http.MethodGet, "/products/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches one product by SKU.
func (s *ProductService) Get(ctx context.Context, sku string) (*types.Product, error) {
	var p types.Product
	if err := s.client.do(ctx, http.MethodGet, "/products/"+url.PathEscape(sku), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create validates the draft locally, then POSTs it. The service assigns the SKU.
func (s *ProductService) Create(ctx context.Context, draft types.ProductCreate) (*types.CreateResponse, error) {
	if err := ValidateProduct(draft); err != nil {
		return nil, err
	}
	if draft.Tags == nil {
		draft.Tags = []string{}
	}
	var resp types.CreateResponse
	if err := s.client.do(ctx, http.MethodPost, "/products/", draft, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update sends a sparse update; unset fields are left untouched server side.
func (s *ProductService) Update(ctx context.Context, sku string, update types.ProductUpdate) error {
	if update.IsEmpty() {
		return newValidationError("nothing to update")
	}
	return s.client.do(ctx, http.MethodPut, "/products/"+url.PathEscape(sku), update, nil)
}

// Delete removes a product, optionally with its files on disk.
func (s *ProductService) Delete(ctx context.Context, sku string, deleteFiles bool) (string, error) {
	path := "/products/" + url.PathEscape(sku) + "?delete_files=" + strconv.FormatBool(deleteFiles)
	var resp types.MessageResponse
	if err := s.client.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return "", err
	}
	if resp.Message == "" {
		return "Deleted", nil
	}
	return resp.Message, nil
}

// NameService implements NameRepository for one collection.
type NameService struct {
	client     *Client
	kind       string
	collection string
}

// Kind is "tag" or "material".
func (s *NameService) Kind() string { return s.kind }

// List returns entries sorted by name.
func (s *NameService) List(ctx context.Context) ([]types.NamedEntry, error) {
	var entries []types.NamedEntry
	if err := s.client.do(ctx, http.MethodGet, s.collection, nil, &entries); err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Create adds an entry. The service normalizes the name.
func (s *NameService) Create(ctx context.Context, name string) (*types.NamedEntry, error) {
	if NormalizeName(name) == "" {
		return nil, newValidationError(s.kind + " name required")
	}
	var entry types.NamedEntry
	if err := s.client.do(ctx, http.MethodPost, s.collection+"/", types.NameRequest{Name: name}, &entry); err != nil {
		return nil, err
	}
	if entry.Name == "" {
		entry.Name = NormalizeName(name)
	}
	return &entry, nil
}

// Rename changes the name of an entry addressed by its current name.
func (s *NameService) Rename(ctx context.Context, name, newName string) (*types.NamedEntry, error) {
	if NormalizeName(newName) == "" {
		return nil, newValidationError(s.kind + " name required")
	}
	var entry types.NamedEntry
	if err := s.client.do(ctx, http.MethodPut, s.entryPath(name), types.NameRequest{Name: newName}, &entry); err != nil {
		return nil, err
	}
	if entry.Name == "" {
		entry.Name = NormalizeName(newName)
	}
	return &entry, nil
}

// Delete removes an entry. Callers are expected to check usage first.
func (s *NameService) Delete(ctx context.Context, name string) error {
	return s.client.do(ctx, http.MethodDelete, s.entryPath(name), nil, nil)
}

func (s *NameService) entryPath(name string) string {
	return s.collection + "/" + url.PathEscape(NormalizeName(name))
}

// CategoryService implements CategoryRepository over HTTP.
type CategoryService struct {
	client *Client
}

// List returns categories sorted by name.
func (s *CategoryService) List(ctx context.Context) ([]types.Category, error) {
	var cats []types.Category
	if err := s.client.do(ctx, http.MethodGet, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}

// Create validates and creates a category.
func (s *CategoryService) Create(ctx context.Context, form types.CategoryCreate) (*types.Category, error) {
	if err := ValidateCategory(form); err != nil {
		return nil, err
	}
	var cat types.Category
	if err := s.client.do(ctx, http.MethodPost, "/categories/", form, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Update validates and replaces a category's fields.
func (s *CategoryService) Update(ctx context.Context, id int, form types.CategoryCreate) (*types.Category, error) {
	if err := ValidateCategory(form); err != nil {
		return nil, err
	}
	var cat types.Category
	if err := s.client.do(ctx, http.MethodPut, idPath("/categories", id), form, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}
