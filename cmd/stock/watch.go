package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	stocklifecycle "github.com/aretw0/stock/pkg/adapters/lifecycle"
)

func newWatchCmd(a *app) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the inventory on every external change",
		Long: `Watches the inventory file and prints the low items each time it changes.
Stops on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, pattern)
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob of file names to watch next to the inventory (default: the inventory itself)")
	return cmd
}

func (a *app) watch(ctx context.Context, pattern string) error {
	svc, err := a.service()
	if err != nil {
		return err
	}
	events, err := svc.Watch(ctx, pattern)
	if err != nil {
		return err
	}
	a.logger.Info("watching", "location", svc.Repository().Location())

	src := stocklifecycle.NewSource(events)
	if err := src.Start(ctx); err != nil {
		return err
	}
	for event := range src.Events() {
		fmt.Fprintln(a.out, event)
		inv, err := svc.Load(ctx)
		if err != nil {
			// Editors may leave the file half written between events.
			a.logger.Error("reload failed", "error", err)
			continue
		}
		fmt.Fprintf(a.out, "Low items: %v\n", inv.LowItems(a.cfg.Threshold))
	}
	return nil
}
