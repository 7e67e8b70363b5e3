// Command partyctl is the operator tool for the storefront: cookie keys,
// catalog listings and the sitemap.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "partyctl:", err)
		os.Exit(1)
	}
}
