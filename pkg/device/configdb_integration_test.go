//go:build integration

package device_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sable-networks/eapictl/internal/testutil"
	"github.com/sable-networks/eapictl/pkg/device"
	"github.com/sable-networks/eapictl/pkg/inventory"
	"github.com/sable-networks/eapictl/pkg/reconcile"
)

func connectTestDevice(t *testing.T) *device.Device {
	t.Helper()

	// Profile expects a bare host; Device appends :6379 for direct connections
	host := strings.TrimSuffix(testutil.RedisAddr(), ":6379")

	d := device.New("test-dev", &inventory.Profile{MgmtIP: host})
	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { d.Disconnect() })
	return d
}

func TestFetchCurrentConfig(t *testing.T) {
	testutil.SkipIfNoRedis(t)
	testutil.FlushConfigDB(t)
	testutil.WriteEntry(t, device.MgmtAPITable, device.MgmtAPIKey, map[string]string{
		"enabled":   "true",
		"vrf":       "mgmt",
		"port":      "8443",
		"protocols": "https",
	})

	d := connectTestDevice(t)

	cfg, err := d.FetchCurrentConfig(context.Background())
	if err != nil {
		t.Fatalf("FetchCurrentConfig: %v", err)
	}
	if !cfg.Enabled || cfg.VRF != "mgmt" || cfg.Port != 8443 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestFetchVRFNames(t *testing.T) {
	testutil.SkipIfNoRedis(t)
	testutil.FlushConfigDB(t)
	testutil.WriteEntry(t, device.VRFTable, "mgmt", map[string]string{})
	testutil.WriteEntry(t, device.VRFTable, "Vrf_CUST1", map[string]string{"vni": "30001"})

	d := connectTestDevice(t)

	names, err := d.FetchVRFNames(context.Background())
	if err != nil {
		t.Fatalf("FetchVRFNames: %v", err)
	}
	if len(names) != 2 || names[0] != "Vrf_CUST1" || names[1] != "mgmt" {
		t.Errorf("names = %v, want [Vrf_CUST1 mgmt]", names)
	}
}

func TestApplyMutation(t *testing.T) {
	testutil.SkipIfNoRedis(t)
	testutil.FlushConfigDB(t)

	d := connectTestDevice(t)

	if err := d.ApplyMutation(context.Background(), "port", "9443"); err != nil {
		t.Fatalf("ApplyMutation: %v", err)
	}

	fields := testutil.ReadEntry(t, device.MgmtAPITable, device.MgmtAPIKey)
	if fields["port"] != "9443" {
		t.Errorf("port field = %q, want 9443", fields["port"])
	}
}

func TestReconcileEndToEnd(t *testing.T) {
	testutil.SkipIfNoRedis(t)
	testutil.FlushConfigDB(t)
	testutil.WriteEntry(t, device.VRFTable, "mgmt", map[string]string{})

	d := connectTestDevice(t)
	r := reconcile.New("test-dev", d)

	enabled := true
	vrf := "mgmt"
	desired := reconcile.DesiredConfig{Enabled: &enabled, VRF: &vrf}

	first, err := r.Reconcile(context.Background(), desired)
	if err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}
	if !first.Changed || first.Failed {
		t.Fatalf("first result = %+v, want changed", first)
	}

	second, err := r.Reconcile(context.Background(), desired)
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if second.Changed || second.Failed {
		t.Errorf("second result = %+v, want no-op", second)
	}
}
