package main

import (
	"testing"
)

func TestDesiredFromInput_FlagPresence(t *testing.T) {
	reconcileEnable = true
	defer func() { reconcileEnable = false }()

	if err := reconcileCmd.Flags().Set("vrf", "mgmt"); err != nil {
		t.Fatal(err)
	}
	if err := reconcileCmd.Flags().Set("port", "8443"); err != nil {
		t.Fatal(err)
	}

	desired, err := desiredFromInput(reconcileCmd)
	if err != nil {
		t.Fatalf("desiredFromInput: %v", err)
	}

	if desired.Enabled == nil || !*desired.Enabled {
		t.Error("enabled should be set true")
	}
	if desired.VRF == nil || *desired.VRF != "mgmt" {
		t.Errorf("vrf = %v", desired.VRF)
	}
	if desired.Port == nil || *desired.Port != 8443 {
		t.Errorf("port = %v", desired.Port)
	}
	if desired.Protocols != nil {
		t.Errorf("protocols flag not given, should stay nil: %v", desired.Protocols)
	}
}

func TestDesiredFromInput_EnableDisableConflict(t *testing.T) {
	reconcileEnable = true
	reconcileDisable = true
	defer func() {
		reconcileEnable = false
		reconcileDisable = false
	}()

	if _, err := desiredFromInput(reconcileCmd); err == nil {
		t.Error("expected error for --enable with --disable")
	}
}

func TestIsSettingsOrHelp(t *testing.T) {
	if !isSettingsOrHelp(settingsShowCmd) {
		t.Error("settings subcommand should skip initialization")
	}
	if !isSettingsOrHelp(versionCmd) {
		t.Error("version should skip initialization")
	}
	if isSettingsOrHelp(reconcileCmd) {
		t.Error("reconcile must run full initialization")
	}
}
