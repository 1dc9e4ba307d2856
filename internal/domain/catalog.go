package domain

// Product is a catalog entry as served by the commerce backend.
type Product struct {
	ID          string   `json:"id"`
	CategoryID  string   `json:"category_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Available   bool     `json:"available"`
	Featured    bool     `json:"featured"`
	Images      []string `json:"images"`
}

// Category groups products in the catalog.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductInput carries the fields an admin supplies when creating or
// updating a product.
type ProductInput struct {
	CategoryID  string   `json:"category_id" validate:"required"`
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	PriceCents  int64    `json:"price_cents" validate:"gt=0"`
	Available   bool     `json:"available"`
	Featured    bool     `json:"featured"`
	Images      []string `json:"images" validate:"dive,url"`
}

// SortOrder controls price sorting of catalog listings.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Valid reports whether the sort order is one of the known values.
func (s SortOrder) Valid() bool {
	return s == SortAscending || s == SortDescending
}
