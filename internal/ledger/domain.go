package ledger

import "time"

// DateFormat is the calendar date layout used for sale dates.
const DateFormat = time.DateOnly

// DefaultLowStockThreshold is the quantity below which a product is flagged as low.
const DefaultLowStockThreshold = 5

// Product is a stocked item.
type Product struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `gorm:"not null" json:"price"`
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}

// Sale records a quantity sold against a product on a given day.
// ProductID is not enforced: it may point to a product deleted after the sale.
type Sale struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64   `gorm:"index;not null" json:"product_id"`
	Quantity  int     `gorm:"column:quantity_sold;not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null;default:0" json:"unit_price"`
	Date      string  `gorm:"size:10;not null" json:"date"`
}

// TableName returns the table name for Sale.
func (Sale) TableName() string {
	return "sales"
}

// ProductView is a Product as presented in listings.
type ProductView struct {
	Product
	Low bool `json:"low"`
}

// SummaryRow aggregates sales of every product sharing Name.
type SummaryRow struct {
	ProductName   string  `json:"product_name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// Pricing selects which unit price the sales summary multiplies by.
type Pricing string

const (
	// CurrentPrice values every sale at the product's price today.
	CurrentPrice Pricing = "current"
	// SalePrice values every sale at the price recorded when it was made.
	SalePrice Pricing = "sale"
)

// ParsePricing parses a pricing mode. The empty string means CurrentPrice.
func ParsePricing(s string) (Pricing, error) {
	switch Pricing(s) {
	case "", CurrentPrice:
		return CurrentPrice, nil
	case SalePrice:
		return SalePrice, nil
	default:
		return "", invalidf("unknown pricing %q", s)
	}
}
