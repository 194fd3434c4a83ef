package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sable-networks/eapictl/pkg/cli"
	"github.com/sable-networks/eapictl/pkg/inventory"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.eapictl/settings.json.

Settings provide defaults for context flags:
  - inventory_path: Used when -I is not specified
  - audit_log_path: Where reconcile runs are logged

Examples:
  eapictl settings show
  eapictl settings set inventory /etc/eapictl/inventory.yaml
  eapictl settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := inventory.LoadSettings()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", inventory.DefaultSettingsPath())

		t := cli.NewTable("SETTING", "VALUE")

		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			t.Row(name, value)
		}

		printSetting("inventory_path", s.InventoryPath)
		printSetting("audit_log_path", s.AuditLogPath)

		t.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value.

Available settings:
  inventory - Inventory file path (-I flag default)
  audit-log - Audit log file path

Examples:
  eapictl settings set inventory /etc/eapictl/inventory.yaml
  eapictl settings set audit-log /var/log/eapictl/audit.log`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting := args[0]
		value := args[1]

		s, err := inventory.LoadSettings()
		if err != nil {
			s = &inventory.Settings{}
		}

		switch setting {
		case "inventory", "inventory_path":
			s.InventoryPath = value
			fmt.Printf("Inventory path set to: %s\n", value)
		case "audit-log", "audit_log_path":
			s.AuditLogPath = value
			fmt.Printf("Audit log path set to: %s\n", value)
		default:
			return fmt.Errorf("unknown setting: %s (valid: inventory, audit-log)", setting)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <setting>",
	Short: "Get a setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := inventory.LoadSettings()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		var value string
		switch args[0] {
		case "inventory", "inventory_path":
			value = s.InventoryPath
		case "audit-log", "audit_log_path":
			value = s.AuditLogPath
		default:
			return fmt.Errorf("unknown setting: %s (valid: inventory, audit-log)", args[0])
		}

		if value == "" {
			value = "(not set)"
		}
		fmt.Println(value)
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := inventory.LoadSettings()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		s.Clear()
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}

		fmt.Println("Settings cleared")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsClearCmd)
}
