package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/stock/pkg/core"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the sample add/remove/report workflow",
		Long: `Loads the inventory, adds 10 apples and 2 bananas, removes 3 apples,
tries to remove an orange, prints the apple stock and the low items,
saves and prints the report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd.Context())
		},
	}
}

func (a *app) runDemo(ctx context.Context) error {
	svc, inv, err := a.open(ctx)
	if err != nil {
		return err
	}

	log := core.NewLog(nil)
	steps := []error{
		svc.Add(inv, "apple", 10, log),
		svc.Add(inv, "banana", 2, log),
		svc.Remove(inv, "apple", 3),
		svc.Remove(inv, "orange", 1),
	}
	for _, err := range steps {
		if err := skipRecoverable(err); err != nil {
			return err
		}
	}

	fmt.Fprintf(a.out, "Apple stock: %s\n", core.FormatQuantity(inv.Qty("apple")))
	fmt.Fprintf(a.out, "Low items: %v\n", inv.LowItems(a.cfg.Threshold))

	if err := svc.Save(ctx, inv); err != nil {
		return err
	}
	a.logger.Debug("additions", "entries", log.Lines())

	svc.Report(inv)
	return nil
}
