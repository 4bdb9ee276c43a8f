package catalog

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/studiowebux/printcat/internal/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("notblank", validateNotBlank)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidateProduct checks a create draft before it is sent.
// The first failing rule wins so the status bar shows one message.
func ValidateProduct(p types.ProductCreate) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newValidationError(err.Error())
	}
	switch verrs[0].Field() {
	case "Name":
		return newValidationError("Product name is required")
	case "CategoryID":
		return newValidationError("Category must be selected")
	default:
		return newValidationError(verrs[0].Error())
	}
}

// ValidateCategory checks a category form before it is sent.
func ValidateCategory(c types.CategoryCreate) error {
	if err := validate.Struct(c); err != nil {
		return newValidationError("Name required, SKU must be 3 letters")
	}
	return nil
}

// ParseNames splits a comma-separated batch, trims each entry and drops
// empty ones. Order is preserved and later duplicates (after
// normalization) are removed.
func ParseNames(input string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(input, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		key := NormalizeName(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
