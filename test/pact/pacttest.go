//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "orders-api"
	ConsumerName = "storefront"

	StateCatalogBaseline = "customer and products exist"
	StateOutOfStock      = "product is out of stock"
	StateOrderMissing    = "no order with the requested id"
)

const (
	CustomerID     = "7f1c5a52-4a0c-4b0e-9d4b-2f3c1d9a0001"
	MissingID      = "00000000-0000-4000-8000-000000000404"
	ProductID      = "3b0e2c1a-8e5f-4c7d-a1b2-5d6e7f8a0001"
	ProductPrice   = "89.90"
	ProductStock   = 25
	CustomerName   = "Ada Lovelace"
	CustomerEmail  = "ada@example.com"
	ProductName    = "Mechanical Keyboard"
	UUIDPattern    = `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`
	DecimalPattern = `^\d+\.\d{2}$`
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePlacementPayload is the order request used across interactions.
func ExamplePlacementPayload(quantity int) map[string]any {
	return map[string]any{
		"customer_id": CustomerID,
		"products": []map[string]any{
			{"id": ProductID, "quantity": quantity},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
