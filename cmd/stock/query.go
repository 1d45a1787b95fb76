package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/stock/pkg/core"
)

func newQtyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "qty [name]",
		Short: "Print the stock of an item (0 when absent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, inv, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s stock: %s\n", args[0], core.FormatQuantity(inv.Qty(args[0])))
			return nil
		},
	}
}

func newLowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "low",
		Short: "List items whose quantity is below --threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, inv, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Low items: %v\n", inv.LowItems(a.cfg.Threshold))
			return nil
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print every item and its quantity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, inv, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			svc.Report(inv)
			return nil
		},
	}
}
