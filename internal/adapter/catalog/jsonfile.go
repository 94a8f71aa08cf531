// Package catalog reads dashboard inputs (products, orders) exported by the
// surrounding application as JSON array files.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ipang84/retailmaster/internal/domain"
)

// ProductFile is a domain.ProductCatalog reading a JSON array of products.
type ProductFile struct {
	Path string
}

func (f ProductFile) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := readJSON(ctx, f.Path, &products); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// OrderFile is a domain.OrderHistory reading a JSON array of orders.
type OrderFile struct {
	Path string
}

func (f OrderFile) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := readJSON(ctx, f.Path, &orders); err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

// An empty path yields an empty list.
func readJSON(ctx context.Context, path string, into any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
