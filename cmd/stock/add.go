package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/stock/pkg/core"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add [name] [qty]",
		Short: "Add a quantity of an item and save",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, inv, err := a.open(ctx)
			if err != nil {
				return err
			}

			name := args[0]
			qty, err := core.ParseQuantity(args[1])
			if err != nil {
				svc.Reject(err, name)
				return nil
			}
			if err := svc.Add(inv, name, qty, nil); err != nil {
				return skipRecoverable(err)
			}
			return svc.Save(ctx, inv)
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [name] [qty]",
		Short: "Remove a quantity of an item and save",
		Long:  `Removes qty of the item. The item is dropped when nothing is left.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, inv, err := a.open(ctx)
			if err != nil {
				return err
			}

			name := args[0]
			qty, err := core.ParseQuantity(args[1])
			if err != nil {
				svc.Reject(err, name)
				return nil
			}
			if err := svc.Remove(inv, name, qty); err != nil {
				return skipRecoverable(err)
			}
			return svc.Save(ctx, inv)
		},
	}
}
