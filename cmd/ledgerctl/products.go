package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"stock_ledger/internal/ledger"
)

type addCmd struct {
	name     string
	quantity int
	price    float64
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a product to the inventory" }
func (*addCmd) Usage() string {
	return `ledgerctl [-user u -password p] add -name <name> -qty <quantity> -price <price>
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Product name.")
	f.IntVar(&c.quantity, "qty", 0, "Quantity in stock.")
	f.Float64Var(&c.price, "price", 0, "Unit price.")
}

func (c *addCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openLedger()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	id, err := s.ledger.AddProduct(c.name, c.quantity, c.price)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Product %d added.\n", id)
	return subcommands.ExitSuccess
}

type updateCmd struct {
	id       int64
	name     string
	quantity int
	price    float64
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "replace every field of a product" }
func (*updateCmd) Usage() string {
	return `ledgerctl [-user u -password p] update -id <id> -name <name> -qty <quantity> -price <price>

  All fields are overwritten; omitted flags take their zero value.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Product ID.")
	f.StringVar(&c.name, "name", "", "Product name.")
	f.IntVar(&c.quantity, "qty", 0, "Quantity in stock.")
	f.Float64Var(&c.price, "price", 0, "Unit price.")
}

func (c *updateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openLedger()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	if err := s.ledger.UpdateProduct(c.id, c.name, c.quantity, c.price); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Product %d updated.\n", c.id)
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	id int64
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a product, keeping its sales" }
func (*deleteCmd) Usage() string {
	return `ledgerctl [-user u -password p] delete -id <id>
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Product ID.")
}

func (c *deleteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openLedger()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	if err := s.ledger.DeleteProduct(c.id); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Product %d deleted.\n", c.id)
	return subcommands.ExitSuccess
}

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all products, marking low stock" }
func (*listCmd) Usage() string {
	return `ledgerctl [-user u -password p] list
`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (*listCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openLedger()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer s.close()

	products, err := s.ledger.ListProducts()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	printProducts(products)
	return subcommands.ExitSuccess
}

func printProducts(products []ledger.ProductView) {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQUANTITY\tPRICE\t")
	for _, p := range products {
		mark := ""
		if p.Low {
			mark = "LOW"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%s\n", p.ID, p.Name, p.Quantity, p.Price, mark)
	}
	w.Flush()
}
