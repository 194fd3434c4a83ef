package main

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sable-networks/eapictl/pkg/cli"
	"github.com/sable-networks/eapictl/pkg/device"
)

// requireDevice resolves -d against the inventory and returns a connected
// device. Callers must defer dev.Disconnect().
func requireDevice(ctx context.Context) (*device.Device, error) {
	if deviceName == "" {
		return nil, fmt.Errorf("device required: use -d <device> flag")
	}

	profile, err := inv.Get(deviceName)
	if err != nil {
		return nil, err
	}

	if askPass {
		pass, err := promptPassword(fmt.Sprintf("SSH password for %s@%s: ", profile.SSHUser, deviceName))
		if err != nil {
			return nil, err
		}
		profile.SSHPass = pass
	}

	dev := device.New(deviceName, profile)
	if err := dev.Connect(ctx); err != nil {
		return nil, err
	}
	return dev, nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pass), nil
}

// currentUser returns the invoking username for audit events.
func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}

func printDryRunNotice() {
	if !executeMode {
		fmt.Println("\n" + yellow("DRY-RUN: No changes applied. Use -x to execute."))
	}
}

// addWriteFlags registers -x/--execute and -s/--save as local flags.
func addWriteFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&executeMode, "execute", "x", false, "Execute changes (default is dry-run)")
	cmd.Flags().BoolVarP(&saveMode, "save", "s", false, "Save config after changes (requires -x)")
}

// addOutputFlags registers --json as a local flag.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
}

// isSettingsOrHelp checks whether cmd (or any ancestor) is a settings,
// help, or version command.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings":
			return true
		}
	}
	return false
}

// Color helpers — delegate to pkg/cli
func green(s string) string  { return cli.Green(s) }
func yellow(s string) string { return cli.Yellow(s) }
func red(s string) string    { return cli.Red(s) }
func bold(s string) string   { return cli.Bold(s) }
