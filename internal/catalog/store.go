package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidProduct = errors.New("invalid product data")
)

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// MarshalJSON writes the price as a JSON number rather than decimal's default
// quoted string.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int             `json:"id"`
		Name        string          `json:"name"`
		Description *string         `json:"description"`
		Price       json.RawMessage `json:"price"`
	}{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       json.RawMessage(p.Price.String()),
	})
}

func (p Product) Valid() bool {
	return strings.TrimSpace(p.Name) != ""
}

func (p Product) clone() Product {
	if p.Description != nil {
		d := *p.Description
		p.Description = &d
	}
	return p
}

type Store interface {
	Ping(ctx context.Context) error
	ListAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id int) (Product, error)
	Insert(ctx context.Context, p Product) (Product, error)
	Replace(ctx context.Context, id int, p Product) error
	Remove(ctx context.Context, id int) error
}

func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Name: "Laptop", Description: strPtr("Gaming Laptop"), Price: decimal.NewFromInt(1500)},
		{ID: 2, Name: "Mouse", Description: strPtr("Wireless Mouse"), Price: decimal.NewFromInt(25)},
		{ID: 3, Name: "Keyboard", Description: strPtr("Mechanical Keyboard"), Price: decimal.NewFromInt(80)},
	}
}

func strPtr(s string) *string { return &s }
