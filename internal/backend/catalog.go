package backend

import (
	"context"
	"net/url"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
)

// ListProducts returns the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.get(ctx, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single product by ID.
func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(productID), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListFeaturedProducts returns products flagged for the storefront's
// featured rail.
func (c *Client) ListFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.get(ctx, "/products/featured", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts returns products matching the query string.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	q := url.Values{"q": []string{query}}
	var products []domain.Product
	if err := c.get(ctx, "/products/search", q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListProductsByCategory returns the products in a category.
func (c *Client) ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	q := url.Values{"category_id": []string{categoryID}}
	var products []domain.Product
	if err := c.get(ctx, "/products", q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListProductsSortedByPrice returns the catalog ordered by price.
func (c *Client) ListProductsSortedByPrice(ctx context.Context, order domain.SortOrder) ([]domain.Product, error) {
	q := url.Values{"sort": []string{"price"}, "order": []string{string(order)}}
	var products []domain.Product
	if err := c.get(ctx, "/products", q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// AddProduct creates a catalog entry and returns it with its assigned ID.
func (c *Client) AddProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.post(ctx, "/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a product's fields.
func (c *Client) UpdateProduct(ctx context.Context, productID string, input domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.put(ctx, "/products/"+url.PathEscape(productID), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.delete(ctx, "/products/"+url.PathEscape(productID))
}

// AddProductImage appends an image URL to a product's gallery.
func (c *Client) AddProductImage(ctx context.Context, productID, imageURL string) (*domain.Product, error) {
	body := map[string]string{"url": imageURL}
	var product domain.Product
	if err := c.post(ctx, "/products/"+url.PathEscape(productID)+"/images", body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// RemoveProductImage removes an image URL from a product's gallery.
func (c *Client) RemoveProductImage(ctx context.Context, productID, imageURL string) (*domain.Product, error) {
	body := map[string]string{"url": imageURL}
	var product domain.Product
	if err := c.post(ctx, "/products/"+url.PathEscape(productID)+"/images/remove", body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories returns all catalog categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// AddCategory creates a category and returns it with its assigned ID.
func (c *Client) AddCategory(ctx context.Context, name string) (*domain.Category, error) {
	body := map[string]string{"name": name}
	var category domain.Category
	if err := c.post(ctx, "/categories", body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}
