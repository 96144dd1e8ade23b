package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"stock_ledger/internal/ledger"
)

type sellCmd struct {
	id       int64
	quantity int
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale and take it out of stock" }
func (*sellCmd) Usage() string {
	return `ledgerctl [-user u -password p] sell -id <product id> -qty <quantity>

  The sale is dated today. It is rejected when the stock is too low.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Product ID.")
	f.IntVar(&c.quantity, "qty", 0, "Quantity sold.")
}

func (c *sellCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openLedger()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	sale, err := s.ledger.RecordSale(c.id, c.quantity)
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientStock) {
			fmt.Fprintln(stderr, "Insufficient stock for this sale.")
		} else {
			fmt.Fprintln(stderr, err)
		}
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Sale %d recorded on %s.\n", sale.ID, sale.Date)
	return subcommands.ExitSuccess
}

type lowStockCmd struct {
	threshold int
}

func (*lowStockCmd) Name() string     { return "low-stock" }
func (*lowStockCmd) Synopsis() string { return "list products below a stock threshold" }
func (*lowStockCmd) Usage() string {
	return `ledgerctl [-user u -password p] low-stock [-threshold <n>]
`
}

func (c *lowStockCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.threshold, "threshold", 0, "Quantity below which a product is listed (defaults to $LOW_STOCK_THRESHOLD).")
}

func (c *lowStockCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openLedger()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	products, err := s.ledger.LowStock(c.threshold)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	if len(products) == 0 {
		fmt.Fprintln(stdout, "All items are sufficiently stocked.")
		return subcommands.ExitSuccess
	}
	for _, p := range products {
		fmt.Fprintf(stdout, "%s: %d left\n", p.Name, p.Quantity)
	}
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	pricing string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "total quantity and revenue per product name" }
func (*summaryCmd) Usage() string {
	return `ledgerctl [-user u -password p] summary [-pricing current|sale]

  Products sharing a name are reported together. With -pricing current
  (the default) revenue uses today's prices; with -pricing sale it uses
  the price recorded with each sale.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pricing, "pricing", string(ledger.CurrentPrice), "Unit price to value sales at: current or sale.")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pricing, err := ledger.ParsePricing(c.pricing)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}

	s, err := openLedger()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	rows, err := s.ledger.SalesSummary(pricing)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	if len(rows) == 0 {
		fmt.Fprintln(stdout, "No sales recorded yet.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tSOLD\tREVENUE\t")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t\n", r.ProductName, r.TotalQuantity, r.TotalRevenue)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
