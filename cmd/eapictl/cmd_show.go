package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sable-networks/eapictl/pkg/cli"
	"github.com/sable-networks/eapictl/pkg/reconcile"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the device's management-API configuration",
	Long: `Show the current management-API service configuration as read from
the device. Fields the device has never written appear with their
defaults (disabled, default VRF, port 443, https).

Examples:
  eapictl -d leaf1 show
  eapictl -d leaf1 show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		dev, err := requireDevice(ctx)
		if err != nil {
			return err
		}
		defer dev.Disconnect()

		current, err := dev.FetchCurrentConfig(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(current)
		}

		fmt.Printf("Device: %s\n\n", bold(deviceName))

		state := red("disabled")
		if current.Enabled {
			state = green("enabled")
		}

		t := cli.NewTable("FIELD", "VALUE")
		t.Row("enabled", state)
		t.Row("vrf", current.VRF)
		t.Row("port", strconv.Itoa(current.Port))
		t.Row("protocols", reconcile.JoinProtocols(current.Protocols))
		t.Flush()
		return nil
	},
}
