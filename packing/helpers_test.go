package packing

import (
	"errors"
	"os"
	"testing"

	"shipments-app/idgen"
)

func TestMain(m *testing.M) {
	idgen.Init()
	os.Exit(m.Run())
}

type fakeCatalog struct {
	skus map[string]SkuInfo
}

func (f *fakeCatalog) ResolveSku(sku string) (*SkuInfo, error) {
	if info, ok := f.skus[sku]; ok {
		return &info, nil
	}
	return nil, nil
}

type fakeCustomers struct {
	customers map[string]CustomerInfo
}

func (f *fakeCustomers) ResolveCustomer(code string) (*CustomerInfo, error) {
	if info, ok := f.customers[code]; ok {
		return &info, nil
	}
	return nil, nil
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{skus: map[string]SkuInfo{
		"SKU-1": {ProductID: 1, SKU: "SKU-1", ProductName: "Alpha", CategoryID: 1},
		"SKU-2": {ProductID: 2, SKU: "SKU-2", ProductName: "Beta", CategoryID: 1},
	}}
}

func testCustomers() *fakeCustomers {
	return &fakeCustomers{customers: map[string]CustomerInfo{
		"CUST1": {ID: 10, Code: "CUST1", Name: "Acme Trading"},
	}}
}

// failingStore lets a test flip persistence failures on and off.
type failingStore struct {
	*MemoryStore
	failSet bool
}

func (s *failingStore) Set(key string, value []byte) error {
	if s.failSet {
		return errors.New("storage unavailable")
	}
	return s.MemoryStore.Set(key, value)
}

func normalBoxSpec(weight float64, qty string) BoxSpec {
	return BoxSpec{
		Length: 10, Height: 10, Width: 10, Weight: weight,
		Products: []LineSpec{{SKU: "SKU-1", Quantity: qty}},
	}
}

func shortBoxSpec(qty string) BoxSpec {
	return BoxSpec{
		IsShortBox: true,
		Products:   []LineSpec{{SKU: "SKU-2", Quantity: qty}},
	}
}
