package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/printcat/internal/types"
)

type recorded struct {
	method    string
	path      string
	rawQuery  string
	body      string
	requestID string
}

// newTestServer answers every request with status and response, and
// records what it saw.
func newTestServer(t *testing.T, status int, response string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.rawQuery = r.URL.RawQuery
		rec.body = string(data)
		rec.requestID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", time.Second), rec
}

func TestNewClient(t *testing.T) {
	c := NewClient("http://localhost:8000/", 0)

	assert.Equal(t, "http://localhost:8000", c.BaseURL)
	assert.Equal(t, DefaultTimeout, c.HTTPClient.Timeout)
	assert.Equal(t, "tag", c.Tags.Kind())
	assert.Equal(t, "material", c.Materials.Kind())

	repos := c.Repositories()
	assert.NotNil(t, repos.Products)
	assert.NotNil(t, repos.Categories)
}

func TestProducts_List(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK,
		`[{"id":1,"sku":"KEY-001","name":"Keychain","tags":["red"],"production":true,"stock_quantity":3}]`)

	products, err := c.Products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "KEY-001", products[0].SKU)
	assert.Equal(t, []string{"red"}, products[0].Tags)
	assert.Equal(t, 3, products[0].Stock())

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/products/", rec.path)
	assert.NotEmpty(t, rec.requestID)
}

func TestProducts_CreateScenario(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"product_id":7,"sku":"CAT-001","message":"ok"}`)
	catID := 5

	resp, err := c.Products.Create(context.Background(), types.ProductCreate{
		Name:       "Widget",
		CategoryID: &catID,
		Production: true,
		Tags:       []string{"red", "blue"},
	})
	require.NoError(t, err)
	assert.Equal(t, "CAT-001", resp.SKU)
	assert.Equal(t, "ok", resp.Message)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/products/", rec.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.body), &body))
	assert.Equal(t, "Widget", body["name"])
	assert.Equal(t, float64(5), body["category_id"])
	assert.Equal(t, []any{"red", "blue"}, body["tags"])
}

func TestProducts_CreateValidationSkipsNetwork(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{}`)

	_, err := c.Products.Create(context.Background(), types.ProductCreate{Name: ""})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, rec.method, "no request must be sent")
}

func TestProducts_UpdateIsSparse(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"product_id":1,"sku":"KEY-001","message":"updated"}`)

	err := c.Products.Update(context.Background(), "KEY-001", types.ProductUpdate{Name: types.StringPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/products/KEY-001", rec.path)
	assert.JSONEq(t, `{"name":"New"}`, rec.body)

	err = c.Products.Update(context.Background(), "KEY-001", types.ProductUpdate{})
	assert.True(t, IsValidation(err))
}

func TestProducts_Delete(t *testing.T) {
	tests := []struct {
		name        string
		deleteFiles bool
		response    string
		wantQuery   string
		wantMsg     string
	}{
		{"record only", false, `{"message":"Product removed"}`, "delete_files=false", "Product removed"},
		{"with files", true, `{}`, "delete_files=true", "Deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestServer(t, http.StatusOK, tt.response)

			msg, err := c.Products.Delete(context.Background(), "KEY-001", tt.deleteFiles)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, http.MethodDelete, rec.method)
			assert.Equal(t, "/products/KEY-001", rec.path)
			assert.Equal(t, tt.wantQuery, rec.rawQuery)
		})
	}
}

func TestNames_PathsUseNormalizedName(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"id":3,"name":"bright-red-edition","usage_count":0}`)
	ctx := context.Background()

	require.NoError(t, c.Tags.Delete(ctx, "  Bright Red_Edition  "))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/tags/bright-red-edition", rec.path)

	entry, err := c.Materials.Rename(ctx, "PLA Plus", "pla+")
	require.NoError(t, err)
	assert.Equal(t, "/materials/pla-plus", rec.path)
	assert.JSONEq(t, `{"name":"pla+"}`, rec.body)
	assert.Equal(t, "bright-red-edition", entry.Name)

	_, err = c.Tags.Create(ctx, "Neon")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/tags/", rec.path)
}

func TestNames_ListSorted(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `[{"name":"red","usage_count":2},{"name":"blue","usage_count":0}]`)

	tags, err := c.Tags.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/tags", rec.path)
	require.Len(t, tags, 2)
	assert.Equal(t, "blue", tags[0].Name)
	assert.Equal(t, 2, tags[1].UsageCount)
}

func TestCategories(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"id":9,"name":"Keychains","sku_initials":"KEY"}`)
	ctx := context.Background()

	_, err := c.Categories.Create(ctx, types.CategoryCreate{Name: "Keychains", SkuInitials: "KEYS"})
	require.Error(t, err)
	assert.Empty(t, rec.method, "invalid SKU must not reach the network")

	cat, err := c.Categories.Create(ctx, types.CategoryCreate{Name: "Keychains", SkuInitials: "KEY"})
	require.NoError(t, err)
	assert.Equal(t, 9, cat.ID)
	assert.Equal(t, "/categories/", rec.path)

	_, err = c.Categories.Update(ctx, 9, types.CategoryCreate{Name: "Keyrings", SkuInitials: "KEY"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/categories/9", rec.path)
}

func TestErrors_HTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType ErrorType
		wantMsg  string
	}{
		{"fastapi detail", http.StatusBadRequest, `{"detail":"Tag already exists"}`, ErrTypeHTTP, "Tag already exists"},
		{"not found", http.StatusNotFound, `{"detail":"Product not found"}`, ErrTypeNotFound, "Product not found"},
		{"empty body", http.StatusInternalServerError, ``, ErrTypeHTTP, "unexpected status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestServer(t, tt.status, tt.body)

			_, err := c.Products.Get(context.Background(), "KEY-001")
			require.Error(t, err)

			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.wantType, cerr.Type)
			assert.Equal(t, tt.status, cerr.StatusCode)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestErrors_ParseFailure(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `not json`)

	_, err := c.Products.List(context.Background())
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrTypeParse, cerr.Type)
}

func TestErrors_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient(url, time.Second)
	_, err := c.Tags.List(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err), "got %v", err)
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "Network Error", ErrTypeNetwork.String())
	assert.Equal(t, "Not Found", ErrTypeNotFound.String())
	assert.Equal(t, "ErrorType(42)", ErrorType(42).String())
}
