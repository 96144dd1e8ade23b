package ledger

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormStorage stores products and sales in a relational database through GORM.
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage creates a storage on an open, migrated database handle.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// CreateProduct inserts a product; the database assigns its ID.
func (r *GormStorage) CreateProduct(product *Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// ReadProduct retrieves a product by its ID.
func (r *GormStorage) ReadProduct(id int64) (*Product, error) {
	var product Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// UpdateProduct overwrites name, quantity and price, zero values included.
func (r *GormStorage) UpdateProduct(product *Product) error {
	result := r.db.Model(&Product{}).
		Where("id = ?", product.ID).
		Select("name", "quantity", "price").
		Updates(product)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product row. Sales referencing it are left in place.
func (r *GormStorage) DeleteProduct(id int64) error {
	result := r.db.Delete(&Product{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProducts retrieves all products ordered by ID.
func (r *GormStorage) ListProducts() ([]*Product, error) {
	var products []*Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

// ListLowStock retrieves products whose quantity is strictly below threshold.
func (r *GormStorage) ListLowStock(threshold int) ([]*Product, error) {
	var products []*Product
	if err := r.db.Where("quantity < ?", threshold).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find low stock products: %w", err)
	}
	return products, nil
}

// Sell runs the stock decrement and the sale insert in one transaction.
// The decrement is a single conditional UPDATE, so the stock check and the
// write cannot be split by another writer.
func (r *GormStorage) Sell(productID int64, quantity int, date string) (*Sale, error) {
	var sale *Sale
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Product{}).
			Where("id = ? AND quantity >= ?", productID, quantity).
			Update("quantity", gorm.Expr("quantity - ?", quantity))
		if result.Error != nil {
			return fmt.Errorf("failed to decrement stock: %w", result.Error)
		}

		var product Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to find product: %w", err)
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		sale = &Sale{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price,
			Date:      date,
		}
		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ListSales retrieves all sales ordered by ID.
func (r *GormStorage) ListSales() ([]*Sale, error) {
	var sales []*Sale
	if err := r.db.Order("id").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to find sales: %w", err)
	}
	return sales, nil
}
