package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sable-networks/eapictl/pkg/cli"
	"github.com/sable-networks/eapictl/pkg/reconcile"
)

var vrfCmd = &cobra.Command{
	Use:   "vrf",
	Short: "Inspect VRFs usable as a management-API binding",
	Long: `Inspect the VRFs configured on the device. The management-API service
can bind to any listed VRF, or to "default" (always available, never
listed).

Examples:
  eapictl -d leaf1 vrf list`,
}

var vrfListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured VRFs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		dev, err := requireDevice(ctx)
		if err != nil {
			return err
		}
		defer dev.Disconnect()

		names, err := dev.FetchVRFNames(ctx)
		if err != nil {
			return err
		}

		current, err := dev.FetchCurrentConfig(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(names)
		}

		if len(names) == 0 {
			fmt.Println("No VRFs configured (only \"default\" is available)")
			return nil
		}

		t := cli.NewTable("NAME", "MGMT-API")
		bound := func(name string) string {
			if current.VRF == name {
				return green("bound")
			}
			return "-"
		}
		t.Row(reconcile.DefaultVRF, bound(reconcile.DefaultVRF))
		for _, name := range names {
			t.Row(name, bound(name))
		}
		t.Flush()
		return nil
	},
}

func init() {
	vrfCmd.AddCommand(vrfListCmd)
}
