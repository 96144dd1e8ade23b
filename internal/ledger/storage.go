package ledger

import (
	"cmp"
	"slices"
	"sync"
)

// Storage is the persistence interface of the ledger.
//
// Sell must check and decrement stock as one indivisible step: no interleaving
// of concurrent callers may drive a product quantity below zero.
type Storage interface {
	CreateProduct(product *Product) error
	ReadProduct(id int64) (*Product, error)
	UpdateProduct(product *Product) error
	DeleteProduct(id int64) error
	ListProducts() ([]*Product, error)
	ListLowStock(threshold int) ([]*Product, error)
	Sell(productID int64, quantity int, date string) (*Sale, error)
	ListSales() ([]*Sale, error)
}

// LocalStorage provides an in-memory implementation of Storage.
type LocalStorage struct {
	mu            sync.RWMutex
	products      map[int64]*Product
	sales         []*Sale
	lastProductID int64
	lastSaleID    int64
}

// NewLocalStorage instantiates a new LocalStorage with no products.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		products: map[int64]*Product{},
	}
}

// CreateProduct assigns product a fresh ID and stores a copy of it.
func (l *LocalStorage) CreateProduct(product *Product) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastProductID++
	product.ID = l.lastProductID
	p := *product
	l.products[p.ID] = &p
	return nil
}

// ReadProduct returns a copy of the product with the given ID.
// Returns ErrNotFound if the product is not found.
func (l *LocalStorage) ReadProduct(id int64) (*Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *p
	return &c, nil
}

// UpdateProduct replaces every field of an existing product.
func (l *LocalStorage) UpdateProduct(product *Product) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.products[product.ID]; !ok {
		return ErrNotFound
	}
	p := *product
	l.products[p.ID] = &p
	return nil
}

// DeleteProduct removes a product. Its sales are kept.
func (l *LocalStorage) DeleteProduct(id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.products[id]; !ok {
		return ErrNotFound
	}
	delete(l.products, id)
	return nil
}

// ListProducts returns all products ordered by ID.
func (l *LocalStorage) ListProducts() ([]*Product, error) {
	return l.filter(func(*Product) bool { return true }), nil
}

// ListLowStock returns products whose quantity is strictly below threshold, ordered by ID.
func (l *LocalStorage) ListLowStock(threshold int) ([]*Product, error) {
	return l.filter(func(p *Product) bool { return p.Quantity < threshold }), nil
}

func (l *LocalStorage) filter(keep func(*Product) bool) []*Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	products := make([]*Product, 0, len(l.products))
	for _, p := range l.products {
		if keep(p) {
			c := *p
			products = append(products, &c)
		}
	}
	slices.SortFunc(products, func(a, b *Product) int { return cmp.Compare(a.ID, b.ID) })
	return products
}

// Sell decrements the product stock and appends a sale under a single lock.
func (l *LocalStorage) Sell(productID int64, quantity int, date string) (*Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.products[productID]
	if !ok {
		return nil, ErrNotFound
	}
	if quantity > p.Quantity {
		return nil, ErrInsufficientStock
	}

	p.Quantity -= quantity
	l.lastSaleID++
	sale := &Sale{
		ID:        l.lastSaleID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: p.Price,
		Date:      date,
	}
	l.sales = append(l.sales, sale)

	c := *sale
	return &c, nil
}

// ListSales returns all sales in the order they were recorded.
func (l *LocalStorage) ListSales() ([]*Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sales := make([]*Sale, 0, len(l.sales))
	for _, s := range l.sales {
		c := *s
		sales = append(sales, &c)
	}
	return sales, nil
}
