package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/urfave/cli/v3"

	"github.com/alexanderdross/V0-Desiree/internal/catalog"
	"github.com/alexanderdross/V0-Desiree/internal/domain"
	handler "github.com/alexanderdross/V0-Desiree/internal/handler/http"
	"github.com/alexanderdross/V0-Desiree/internal/seo"
)

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "partyctl",
		Usage:  "SOL & SOCIAL storefront tooling",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:  "generate-keys",
				Usage: "Generate visitor cookie keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return generateKeys(out)
				},
			},
			{
				Name:      "catalog",
				Usage:     "List catalog entries with their prices",
				ArgsUsage: "[carts|equipment|packages]",
				Action: func(ctx context.Context, c *cli.Command) error {
					return listCatalog(out, catalog.Default(), c.Args().First())
				},
			},
			{
				Name:  "sitemap",
				Usage: "Write sitemap.xml to stdout",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "base-url",
						Usage:   "public site URL",
						Value:   "https://solandsocial.com",
						Sources: cli.EnvVars("BASE_URL"),
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					set := seo.BuildSitemap(c.String("base-url"), catalog.Default(), time.Now())
					return seo.WriteSitemap(out, set)
				},
			},
		},
	}
}

func generateKeys(out io.Writer) error {
	hash := securecookie.GenerateRandomKey(64)
	if hash == nil {
		return errors.New("could not generate hash key")
	}
	block := securecookie.GenerateRandomKey(32)
	if block == nil {
		return errors.New("could not generate block key")
	}

	fmt.Fprintf(out, "COOKIE_HASH_KEY=%s\n", base64.URLEncoding.EncodeToString(hash))
	fmt.Fprintf(out, "COOKIE_BLOCK_KEY=%s\n", base64.URLEncoding.EncodeToString(block))
	return nil
}

func listCatalog(out io.Writer, cat *catalog.Catalog, only string) error {
	categories := domain.Categories
	if only != "" {
		c, err := catalog.ParseCategory(only)
		if err != nil {
			return err
		}
		categories = []domain.Category{c}
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tID\tNAME\tPRICE\tCOLORS")
	for _, c := range categories {
		for _, e := range cat.List(c) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				c, e.ID, e.Name, handler.FormatPrice(e.EffectivePrice()), strings.Join(e.Colors, ", "))
		}
	}
	return tw.Flush()
}
