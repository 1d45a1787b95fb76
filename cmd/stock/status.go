package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/stock"
	"github.com/aretw0/stock/pkg/core"
)

// Status is the payload of `stock status --json`.
type Status struct {
	Version    string `json:"version"`
	Service    any    `json:"service"`
	Repository any    `json:"repository,omitempty"`
	Items      int    `json:"items"`
	Low        int    `json:"low"`
}

func newStatusCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the adapter, location and a summary of the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			inv, err := svc.Repository().Load(cmd.Context())
			if err != nil && !core.Recoverable(err) {
				return err
			}
			if inv == nil {
				inv = core.NewInventory()
			}

			status := Status{
				Version: stock.Version,
				Service: svc.State(),
				Items:   inv.Len(),
				Low:     len(inv.LowItems(a.cfg.Threshold)),
			}
			if repo, ok := svc.Repository().(introspection.Introspectable); ok {
				status.Repository = repo.State()
			}

			if asJSON {
				encoder := json.NewEncoder(a.out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(status)
			}

			state := svc.State().(core.ServiceState)
			fmt.Fprintf(a.out, "version:  %s\n", status.Version)
			fmt.Fprintf(a.out, "adapter:  %s\n", state.RepositoryType)
			fmt.Fprintf(a.out, "location: %s\n", state.Location)
			fmt.Fprintf(a.out, "items:    %d\n", status.Items)
			fmt.Fprintf(a.out, "low:      %d\n", status.Low)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
