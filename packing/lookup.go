package packing

// SkuInfo is the canonical catalog record for a resolved SKU.
type SkuInfo struct {
	ProductID   uint   `json:"product_id"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	CategoryID  uint   `json:"category_id"`
}

// CustomerInfo is the canonical record for a resolved customer.
type CustomerInfo struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// CatalogLookup resolves a SKU to its catalog record. A nil result with a
// nil error means the SKU does not exist. Lookup failures are not retried;
// the validator surfaces them to the caller as UnknownSku.
type CatalogLookup interface {
	ResolveSku(sku string) (*SkuInfo, error)
}

// CustomerLookup resolves a customer code the same way.
type CustomerLookup interface {
	ResolveCustomer(code string) (*CustomerInfo, error)
}
