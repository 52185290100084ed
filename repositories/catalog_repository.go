package repositories

import (
	"errors"
	"strings"

	"shipments-app/models"
	"shipments-app/packing"

	"gorm.io/gorm"
)

// CatalogRepository resolves SKUs and customer codes against the master
// tables. It backs both lookup interfaces the packing core consumes.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ResolveSku(sku string) (*packing.SkuInfo, error) {
	var product models.Product
	err := r.DB.Where("sku = ? AND is_active = ?", strings.ToUpper(strings.TrimSpace(sku)), true).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &packing.SkuInfo{
		ProductID:   product.ID,
		SKU:         product.SKU,
		ProductName: product.Name,
		CategoryID:  product.CategoryID,
	}, nil
}

func (r *CatalogRepository) ResolveCustomer(code string) (*packing.CustomerInfo, error) {
	var customer models.Customer
	err := r.DB.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &packing.CustomerInfo{
		ID:   customer.ID,
		Code: customer.Code,
		Name: customer.Name,
	}, nil
}
