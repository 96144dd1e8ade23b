package main

import "github.com/google/subcommands"

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&registerCmd{}, "users")
	c.Register(&loginCmd{}, "users")

	c.Register(&addCmd{}, "products")
	c.Register(&updateCmd{}, "products")
	c.Register(&deleteCmd{}, "products")
	c.Register(&listCmd{}, "products")

	c.Register(&sellCmd{}, "sales")
	c.Register(&lowStockCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
}
