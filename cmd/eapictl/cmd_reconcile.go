package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sable-networks/eapictl/pkg/audit"
	"github.com/sable-networks/eapictl/pkg/cli"
	"github.com/sable-networks/eapictl/pkg/inventory"
	"github.com/sable-networks/eapictl/pkg/reconcile"
	"github.com/sable-networks/eapictl/pkg/util"
)

var (
	reconcileConfigFile string
	reconcileEnable     bool
	reconcileDisable    bool
	reconcileVRF        string
	reconcilePort       int
	reconcileProtocols  []string
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the management-API configuration",
	Long: `Reconcile the device's management-API service toward a desired state.

Desired state comes from a YAML file (--config) or from flags. Only the
fields given are managed; everything else on the device is left alone.
Changes are previewed by default — use -x to execute, -xs to also save
the device config.

Examples:
  eapictl -d leaf1 reconcile --enable
  eapictl -d leaf1 reconcile --vrf mgmt --port 8443 -x
  eapictl -d leaf1 reconcile --config desired.yaml -xs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		desired, err := desiredFromInput(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		dev, err := requireDevice(ctx)
		if err != nil {
			return err
		}
		defer dev.Disconnect()

		rec := reconcile.New(deviceName, dev)
		start := time.Now()
		event := audit.NewEvent(currentUser(), deviceName, "mgmt-api.reconcile").
			WithExecuteMode(executeMode)

		plan, err := rec.Plan(ctx, desired)
		if err != nil {
			var vrfErr *util.VRFNotFoundError
			if errors.As(err, &vrfErr) {
				audit.Log(event.WithError(vrfErr).WithDuration(time.Since(start)))
				return fmt.Errorf("%s", vrfErr.Error())
			}
			return err
		}

		if len(plan) == 0 {
			fmt.Println(green("Already in desired state — nothing to do."))
			return nil
		}

		fmt.Println("Changes to be applied:")
		t := cli.NewTable("FIELD", "VALUE")
		for _, m := range plan {
			t.Row(m.Field, m.Value)
		}
		t.Flush()

		if !executeMode {
			printDryRunNotice()
			audit.Log(event.WithMutations(plan).WithDuration(time.Since(start)))
			return nil
		}

		res := rec.Apply(ctx, plan)
		audit.Log(event.WithMutations(plan).WithResult(res).WithDuration(time.Since(start)))

		if res.Failed {
			if res.Changed {
				fmt.Println(yellow("Device partially changed before the failure."))
			}
			return fmt.Errorf("%s", res.Message)
		}

		fmt.Println("\n" + green("Changes applied successfully."))

		if saveMode {
			fmt.Print("Saving configuration... ")
			if err := dev.SaveConfig(ctx); err != nil {
				fmt.Println(red("FAILED"))
				return fmt.Errorf("config save failed: %w", err)
			}
			fmt.Println(green("saved."))
		}
		return nil
	},
}

// desiredFromInput builds the desired config from --config or from flags.
// Flag presence is what marks a field as managed, so absent flags leave
// the corresponding pointers nil.
func desiredFromInput(cmd *cobra.Command) (reconcile.DesiredConfig, error) {
	if reconcileConfigFile != "" {
		return inventory.LoadDesired(reconcileConfigFile)
	}

	var desired reconcile.DesiredConfig

	if reconcileEnable && reconcileDisable {
		return desired, fmt.Errorf("--enable and --disable are mutually exclusive")
	}
	if reconcileEnable || reconcileDisable {
		enabled := reconcileEnable
		desired.Enabled = &enabled
	}
	if cmd.Flags().Changed("vrf") {
		desired.VRF = &reconcileVRF
	}
	if cmd.Flags().Changed("port") {
		desired.Port = &reconcilePort
	}
	if cmd.Flags().Changed("protocols") {
		desired.Protocols = reconcileProtocols
	}

	if err := inventory.ValidateDesired(desired); err != nil {
		return desired, err
	}
	return desired, nil
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileConfigFile, "config", "", "Desired-state YAML file")
	reconcileCmd.Flags().BoolVar(&reconcileEnable, "enable", false, "Enable the management-API service")
	reconcileCmd.Flags().BoolVar(&reconcileDisable, "disable", false, "Disable the management-API service")
	reconcileCmd.Flags().StringVar(&reconcileVRF, "vrf", "", "VRF the service binds to")
	reconcileCmd.Flags().IntVar(&reconcilePort, "port", 0, "HTTPS listen port")
	reconcileCmd.Flags().StringSliceVar(&reconcileProtocols, "protocols", nil, "Enabled protocols (http, https, http-local)")
}
