// Eapictl - Management API Configuration Tool
//
// A CLI tool for managing the management-API (eAPI) service on SONiC
// devices:
//   - Idempotent reconcile of enabled/vrf/port/protocols
//   - Dry-run by default (preview changes, require -x to execute)
//   - Audit logging of all changes
//
// Usage:
//
//	eapictl -d <device> <command> [args] [-x]
//
// Examples:
//
//	eapictl -d leaf1 show                          # Current service config
//	eapictl -d leaf1 reconcile --enable --port 8443   # Preview changes
//	eapictl -d leaf1 reconcile --enable --port 8443 -x  # Apply them
//	eapictl -d leaf1 reconcile --config desired.yaml -xs # Apply and save
//	eapictl -d leaf1 vrf list                      # VRFs usable as binding
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sable-networks/eapictl/pkg/audit"
	"github.com/sable-networks/eapictl/pkg/inventory"
	"github.com/sable-networks/eapictl/pkg/util"
	"github.com/sable-networks/eapictl/pkg/version"
)

var (
	// Context flags
	deviceName    string // -d, --device
	inventoryPath string // -I, --inventory

	// Option flags
	executeMode bool
	saveMode    bool
	verbose     bool
	jsonOutput  bool
	askPass     bool

	// Global state
	userSettings *inventory.Settings
	inv          *inventory.Inventory
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "eapictl",
	Short:             "SONiC Management API Configuration Tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Eapictl reconciles the management-API service configuration on SONiC
devices. Write commands preview changes by default — use -x to execute.

  eapictl -d <device> <command> [args] [-x]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Settings, help, and version run without inventory or a device
		if isSettingsOrHelp(cmd) {
			return nil
		}

		if saveMode && !executeMode {
			return fmt.Errorf("--save (-s) requires --execute (-x): use -xs to execute and save")
		}

		var err error
		userSettings, err = inventory.LoadSettings()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &inventory.Settings{}
		}

		if inventoryPath == "" {
			inventoryPath = userSettings.GetInventoryPath()
		}

		// Quiet by default, verbose on -v
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		inv, err = inventory.Load(inventoryPath)
		if err != nil {
			return fmt.Errorf("loading inventory: %w", err)
		}

		auditLogger, err := audit.NewFileLogger(userSettings.GetAuditLogPath(), audit.RotationConfig{
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxBackups: 10,
		})
		if err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
		} else {
			audit.SetDefaultLogger(auditLogger)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deviceName, "device", "d", "", "Device name from inventory")
	rootCmd.PersistentFlags().StringVarP(&inventoryPath, "inventory", "I", "", "Inventory file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&askPass, "ask-pass", false, "Prompt for SSH password")

	// Write flags (-x/-s) and output flags (--json) are local to commands
	// that use them; see addWriteFlags and addOutputFlags.
	addWriteFlags(reconcileCmd)

	for _, cmd := range []*cobra.Command{showCmd, vrfListCmd, auditListCmd} {
		addOutputFlags(cmd)
	}

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(vrfCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("eapictl dev build (use 'make build' for version info)")
		} else {
			fmt.Printf("eapictl %s (%s)\n", version.Version, version.GitCommit)
		}
	},
}
