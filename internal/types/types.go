package types

// Product is a catalog item as returned by GET /products/.
type Product struct {
	ID            int      `json:"id,omitempty"`
	SKU           string   `json:"sku"`
	Name          string   `json:"name"`
	Description   *string  `json:"description,omitempty"`
	Production    bool     `json:"production"`
	Tags          []string `json:"tags"`
	CategoryID    *int     `json:"category_id,omitempty"`
	Materials     []string `json:"material,omitempty"`
	Color         *string  `json:"color,omitempty"`
	PrintTime     *int     `json:"print_time,omitempty"`
	Weight        *int     `json:"weight,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	ReorderPoint  *int     `json:"reorder_point,omitempty"`
	UnitCost      *int     `json:"unit_cost,omitempty"`     // cents
	SellingPrice  *int     `json:"selling_price,omitempty"` // cents
	Active        bool     `json:"active"`
}

// Clone returns a deep copy, used for the edit backup.
func (p Product) Clone() Product {
	c := p
	c.Description = cloneString(p.Description)
	c.Color = cloneString(p.Color)
	c.CategoryID = cloneInt(p.CategoryID)
	c.PrintTime = cloneInt(p.PrintTime)
	c.Weight = cloneInt(p.Weight)
	c.StockQuantity = cloneInt(p.StockQuantity)
	c.ReorderPoint = cloneInt(p.ReorderPoint)
	c.UnitCost = cloneInt(p.UnitCost)
	c.SellingPrice = cloneInt(p.SellingPrice)
	if p.Tags != nil {
		c.Tags = append([]string{}, p.Tags...)
	}
	if p.Materials != nil {
		c.Materials = append([]string{}, p.Materials...)
	}
	return c
}

// DescriptionText returns the description or an empty string.
func (p Product) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// Stock returns the stock quantity, zero when unknown.
func (p Product) Stock() int {
	if p.StockQuantity == nil {
		return 0
	}
	return *p.StockQuantity
}

// Price returns the selling price in cents, zero when unknown.
func (p Product) Price() int {
	if p.SellingPrice == nil {
		return 0
	}
	return *p.SellingPrice
}

// ProductCreate is the body of POST /products/.
type ProductCreate struct {
	Name        string   `json:"name" validate:"notblank"`
	Description string   `json:"description,omitempty"`
	CategoryID  *int     `json:"category_id" validate:"required"`
	Production  bool     `json:"production"`
	Tags        []string `json:"tags"`
	Materials   []string `json:"material,omitempty"`
}

// ProductUpdate is the sparse body of PUT /products/{sku}.
type ProductUpdate struct {
	Name          *string   `json:"name,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Production    *bool     `json:"production,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Materials     *[]string `json:"material,omitempty"`
	StockQuantity *int      `json:"stock_quantity,omitempty"`
}

// IsEmpty reports whether no field is set.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Production == nil &&
		u.Tags == nil && u.Materials == nil && u.StockQuantity == nil
}

// CreateResponse is returned by POST /products/.
type CreateResponse struct {
	ProductID int    `json:"product_id"`
	SKU       string `json:"sku"`
	Message   string `json:"message"`
}

// MessageResponse is the generic {"message": ...} body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Category groups products and provides the SKU prefix.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	SkuInitials string `json:"sku_initials"`
	Description string `json:"description,omitempty"`
}

// CategoryCreate is the body of POST /categories/ and PUT /categories/{id}.
type CategoryCreate struct {
	Name        string `json:"name" validate:"notblank"`
	SkuInitials string `json:"sku_initials" validate:"len=3,alpha"`
	Description string `json:"description,omitempty"`
}

// NamedEntry is a name-keyed catalog entry (tags and materials).
type NamedEntry struct {
	ID         int    `json:"id,omitempty"`
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
}

// Tag is a product label.
type Tag = NamedEntry

// Material is a printing material.
type Material = NamedEntry

// NameRequest is the body for creating or renaming a named entry.
type NameRequest struct {
	Name string `json:"name"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to i.
func IntPtr(i int) *int { return &i }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
