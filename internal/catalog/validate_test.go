package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/printcat/internal/types"
)

func TestValidateProduct(t *testing.T) {
	catID := 5

	tests := []struct {
		name    string
		draft   types.ProductCreate
		wantMsg string
	}{
		{"valid", types.ProductCreate{Name: "Widget", CategoryID: &catID}, ""},
		{"blank name", types.ProductCreate{Name: "   ", CategoryID: &catID}, "Product name is required"},
		{"missing category", types.ProductCreate{Name: "Widget"}, "Category must be selected"},
		{"both missing", types.ProductCreate{}, "Product name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProduct(tt.draft)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name  string
		form  types.CategoryCreate
		valid bool
	}{
		{"valid", types.CategoryCreate{Name: "Keychains", SkuInitials: "KEY"}, true},
		{"two letters", types.CategoryCreate{Name: "Keychains", SkuInitials: "KE"}, false},
		{"four letters", types.CategoryCreate{Name: "Keychains", SkuInitials: "KEYS"}, false},
		{"digits", types.CategoryCreate{Name: "Keychains", SkuInitials: "K3Y"}, false},
		{"no name", types.CategoryCreate{Name: " ", SkuInitials: "KEY"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategory(tt.form)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, "Name required, SKU must be 3 letters", err.Error())
		})
	}
}

func TestParseNames(t *testing.T) {
	assert.Equal(t, []string{"red", "Dark Blue"}, ParseNames(" red , ,Dark Blue,RED,"))
	assert.Empty(t, ParseNames(" , ,"))
	assert.Empty(t, ParseNames(""))
}
