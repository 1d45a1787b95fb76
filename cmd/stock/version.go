package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/stock"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of stock",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "stock version %s\n", stock.Version)
		},
	}
}
