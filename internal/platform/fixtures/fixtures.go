// Package fixtures loads YAML catalog fixtures used to seed development databases.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	customers "github.com/Apurer/go-gin-orders-api/internal/domains/customers/domain"
	products "github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
)

// Catalog is the document layout of a fixture file.
type Catalog struct {
	Customers []Customer `yaml:"customers"`
	Products  []Product  `yaml:"products"`
}

type Customer struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type Product struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Quantity int    `yaml:"quantity"`
}

// CustomerSaver persists customers.
type CustomerSaver interface {
	Save(ctx context.Context, customer *customers.Customer) (*customers.Customer, error)
}

// ProductSaver persists products.
type ProductSaver interface {
	Save(ctx context.Context, product *products.Product) (*products.Product, error)
}

// Summary counts what Apply wrote.
type Summary struct {
	Customers int
	Products  int
}

// Load decodes a fixture document, rejecting unknown fields.
func Load(r io.Reader) (*Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var catalog Catalog
	if err := decoder.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return &catalog, nil
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &catalog, nil
}

// LoadFile reads and decodes the fixture file at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Apply validates every entry and saves customers first, then products.
func Apply(ctx context.Context, catalog *Catalog, customerSaver CustomerSaver, productSaver ProductSaver) (Summary, error) {
	var summary Summary
	if catalog == nil {
		return summary, nil
	}
	for i, entry := range catalog.Customers {
		customer, err := entry.toDomain()
		if err != nil {
			return summary, fmt.Errorf("customers[%d]: %w", i, err)
		}
		if _, err := customerSaver.Save(ctx, customer); err != nil {
			return summary, fmt.Errorf("save customer %s: %w", customer.ID, err)
		}
		summary.Customers++
	}
	for i, entry := range catalog.Products {
		product, err := entry.toDomain()
		if err != nil {
			return summary, fmt.Errorf("products[%d]: %w", i, err)
		}
		if _, err := productSaver.Save(ctx, product); err != nil {
			return summary, fmt.Errorf("save product %s: %w", product.ID, err)
		}
		summary.Products++
	}
	return summary, nil
}

func (c Customer) toDomain() (*customers.Customer, error) {
	id, err := fixtureID(c.ID, "customer", c.Name)
	if err != nil {
		return nil, err
	}
	return customers.NewCustomer(id, c.Name, c.Email)
}

func (p Product) toDomain() (*products.Product, error) {
	id, err := fixtureID(p.ID, "product", p.Name)
	if err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
	if err != nil {
		return nil, fmt.Errorf("price %q: %w", p.Price, err)
	}
	return products.NewProduct(id, p.Name, price, p.Quantity)
}

// fixtureID parses raw, or derives a stable id from kind and name when raw is empty.
func fixtureID(raw, kind, name string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+strings.TrimSpace(name))), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("id %q: %w", raw, err)
	}
	return id, nil
}
