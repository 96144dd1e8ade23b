package ledger

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service provides the ledger operations on a Storage backend.
type Service struct {
	storage   Storage
	logger    *zap.Logger
	threshold int
	now       func() time.Time
}

// NewService creates a new Service. A non-positive lowStockThreshold falls
// back to DefaultLowStockThreshold.
func NewService(storage Storage, logger *zap.Logger, lowStockThreshold int) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}

	return &Service{
		storage:   storage,
		logger:    logger,
		threshold: lowStockThreshold,
		now:       time.Now,
	}
}

// LowStockThreshold returns the threshold used to flag products in listings.
func (s *Service) LowStockThreshold() int {
	return s.threshold
}

// AddProduct validates and stores a new product, returning its ID.
func (s *Service) AddProduct(name string, quantity int, price float64) (int64, error) {
	name, err := validateProduct(name, quantity, price)
	if err != nil {
		s.logger.Warn("rejected product", zap.String("name", name), zap.Int("quantity", quantity), zap.Float64("price", price), zap.Error(err))
		return 0, err
	}

	product := &Product{Name: name, Quantity: quantity, Price: price}
	if err := s.storage.CreateProduct(product); err != nil {
		s.logger.Error("failed to save product", zap.String("name", name), zap.Error(err))
		return 0, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Info("product created", zap.Int64("product_id", product.ID), zap.Any("product", product))
	return product.ID, nil
}

// UpdateProduct replaces all fields of the product with the given ID.
func (s *Service) UpdateProduct(id int64, name string, quantity int, price float64) error {
	name, err := validateProduct(name, quantity, price)
	if err != nil {
		s.logger.Warn("rejected product update", zap.Int64("product_id", id), zap.Error(err))
		return err
	}

	product := &Product{ID: id, Name: name, Quantity: quantity, Price: price}
	if err := s.storage.UpdateProduct(product); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to update product", zap.Int64("product_id", id), zap.Error(err))
		}
		return err
	}

	s.logger.Info("product updated", zap.Int64("product_id", id), zap.Any("product", product))
	return nil
}

// DeleteProduct removes the product with the given ID regardless of its sales history.
func (s *Service) DeleteProduct(id int64) error {
	if err := s.storage.DeleteProduct(id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		}
		return err
	}

	s.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

// GetProduct returns the product with the given ID.
func (s *Service) GetProduct(id int64) (*Product, error) {
	return s.storage.ReadProduct(id)
}

// ListProducts returns every product in ID order, flagging those below the low stock threshold.
func (s *Service) ListProducts() ([]ProductView, error) {
	products, err := s.storage.ListProducts()
	if err != nil {
		s.logger.Error("failed to list products", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{Product: *p, Low: p.Quantity < s.threshold})
	}
	return views, nil
}

// RecordSale sells quantity units of a product, dated today.
func (s *Service) RecordSale(productID int64, quantity int) (*Sale, error) {
	if quantity <= 0 {
		return nil, invalidf("sale quantity must be greater than zero")
	}

	date := s.now().Format(DateFormat)
	sale, err := s.storage.Sell(productID, quantity, date)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInsufficientStock):
			s.logger.Warn("sale rejected", zap.Int64("product_id", productID), zap.Int("quantity", quantity), zap.Error(err))
			return nil, err
		default:
			s.logger.Error("failed to record sale", zap.Int64("product_id", productID), zap.Error(err))
			return nil, fmt.Errorf("failed to record sale: %w", err)
		}
	}

	s.logger.Info("sale recorded", zap.Int64("sale_id", sale.ID), zap.Any("sale", sale))
	return sale, nil
}

// ListSales returns all recorded sales.
func (s *Service) ListSales() ([]*Sale, error) {
	sales, err := s.storage.ListSales()
	if err != nil {
		s.logger.Error("failed to list sales", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}
	return sales, nil
}

// LowStock returns products with quantity strictly below threshold.
// A non-positive threshold uses the service default.
func (s *Service) LowStock(threshold int) ([]*Product, error) {
	if threshold <= 0 {
		threshold = s.threshold
	}

	products, err := s.storage.ListLowStock(threshold)
	if err != nil {
		s.logger.Error("failed to list low stock", zap.Int("threshold", threshold), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve low stock: %w", err)
	}
	return products, nil
}

// SalesSummary totals quantity and revenue per product name, ordered by name.
//
// Products sharing a name are merged into one row. Sales whose product no
// longer exists are skipped. With CurrentPrice, a later price change rewrites
// the revenue of past sales.
func (s *Service) SalesSummary(pricing Pricing) ([]SummaryRow, error) {
	if pricing == "" {
		pricing = CurrentPrice
	}

	products, err := s.storage.ListProducts()
	if err != nil {
		s.logger.Error("failed to list products for summary", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	sales, err := s.storage.ListSales()
	if err != nil {
		s.logger.Error("failed to list sales for summary", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	byID := make(map[int64]*Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	type total struct {
		quantity int
		revenue  decimal.Decimal
	}
	totals := map[string]*total{}
	for _, sale := range sales {
		p, ok := byID[sale.ProductID]
		if !ok {
			continue
		}

		price := p.Price
		if pricing == SalePrice {
			price = sale.UnitPrice
		}

		t, ok := totals[p.Name]
		if !ok {
			t = &total{}
			totals[p.Name] = t
		}
		t.quantity += sale.Quantity
		t.revenue = t.revenue.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(sale.Quantity))))
	}

	rows := make([]SummaryRow, 0, len(totals))
	for name, t := range totals {
		rows = append(rows, SummaryRow{
			ProductName:   name,
			TotalQuantity: t.quantity,
			TotalRevenue:  t.revenue.InexactFloat64(),
		})
	}
	slices.SortFunc(rows, func(a, b SummaryRow) int { return strings.Compare(a.ProductName, b.ProductName) })

	s.logger.Debug("sales summary computed", zap.String("pricing", string(pricing)), zap.Int("rows", len(rows)))
	return rows, nil
}

func validateProduct(name string, quantity int, price float64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return name, invalidf("product name cannot be empty")
	}
	if quantity < 0 {
		return name, invalidf("product quantity cannot be negative")
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return name, invalidf("product price must be a non-negative number")
	}
	return name, nil
}
