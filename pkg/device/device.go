package device

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sable-networks/eapictl/pkg/inventory"
	"github.com/sable-networks/eapictl/pkg/reconcile"
	"github.com/sable-networks/eapictl/pkg/util"
)

// Device represents one switch reachable via CONFIG_DB. It implements
// reconcile.DeviceAccess: fetches read fresh from Redis on every call so the
// reconciler always sees ground truth at invocation time.
type Device struct {
	Name    string
	Profile *inventory.Profile

	client    *ConfigDBClient
	tunnel    *SSHTunnel // nil for direct Redis connections
	connected bool

	mu sync.RWMutex
}

// New creates a device handle; Connect must be called before use.
func New(name string, profile *inventory.Profile) *Device {
	return &Device{
		Name:    name,
		Profile: profile,
	}
}

// Connect establishes the CONFIG_DB connection, via SSH tunnel when the
// profile carries SSH credentials.
func (d *Device) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return nil
	}

	var addr string
	if d.Profile.SSHUser != "" && d.Profile.SSHPass != "" {
		tun, err := NewSSHTunnel(d.Profile.MgmtIP, d.Profile.SSHUser, d.Profile.SSHPass, d.Profile.SSHPort)
		if err != nil {
			return util.NewConnectionError(d.Name, err)
		}
		d.tunnel = tun
		addr = tun.LocalAddr()
	} else {
		addr = fmt.Sprintf("%s:6379", d.Profile.MgmtIP)
	}

	d.client = NewConfigDBClient(addr)
	if err := d.client.Connect(); err != nil {
		d.client.Close()
		if d.tunnel != nil {
			d.tunnel.Close()
			d.tunnel = nil
		}
		return util.NewConnectionError(d.Name, err)
	}

	d.connected = true
	util.WithDevice(d.Name).Info("Connected")
	return nil
}

// Disconnect closes the connection
func (d *Device) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	if d.client != nil {
		d.client.Close()
	}
	if d.tunnel != nil {
		d.tunnel.Close()
		d.tunnel = nil
	}

	d.connected = false
	util.WithDevice(d.Name).Info("Disconnected")
	return nil
}

// IsConnected returns true if connected to the device
func (d *Device) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// FetchCurrentConfig reads the management-API service settings from
// CONFIG_DB. Fields absent on the device take their documented defaults:
// disabled, default VRF, port 443, https only.
func (d *Device) FetchCurrentConfig(ctx context.Context) (reconcile.CurrentConfig, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return reconcile.CurrentConfig{}, util.ErrNotConnected
	}

	fields, err := d.client.Get(MgmtAPITable, MgmtAPIKey)
	if err != nil {
		return reconcile.CurrentConfig{}, util.NewConnectionError(d.Name, err)
	}
	return parseMgmtAPI(fields)
}

// FetchVRFNames reads the configured VRF names from CONFIG_DB, sorted.
// The implicit "default" VRF is not listed.
func (d *Device) FetchVRFNames(ctx context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return nil, util.ErrNotConnected
	}

	keys, err := d.client.TableKeys(VRFTable)
	if err != nil {
		return nil, util.NewConnectionError(d.Name, err)
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		// Key format: "VRF|<name>"
		if name, ok := strings.CutPrefix(key, VRFTable+"|"); ok && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ApplyMutation writes one management-API field to CONFIG_DB. The error is
// returned unwrapped; the reconciler attributes it to the mutation.
func (d *Device) ApplyMutation(ctx context.Context, field, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return util.ErrNotConnected
	}

	if err := d.client.Set(MgmtAPITable, MgmtAPIKey, map[string]string{field: value}); err != nil {
		return err
	}
	util.WithDevice(d.Name).Debugf("Wrote %s|%s %s=%s", MgmtAPITable, MgmtAPIKey, field, value)
	return nil
}

// SaveConfig persists the running CONFIG_DB to disk by executing
// `sudo config save -y` on the device via SSH. Returns an error if the
// device was reached over a direct Redis connection (no SSH tunnel).
func (d *Device) SaveConfig(ctx context.Context) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return util.ErrNotConnected
	}
	if d.tunnel == nil {
		return fmt.Errorf("config save requires SSH connection (no SSH credentials configured)")
	}

	output, err := d.tunnel.ExecCommand("sudo config save -y")
	if err != nil {
		return fmt.Errorf("config save failed: %w (output: %s)", err, output)
	}
	return nil
}

// parseMgmtAPI maps the MGMT_API hash to a CurrentConfig, applying defaults
// for fields the device has never written.
func parseMgmtAPI(fields map[string]string) (reconcile.CurrentConfig, error) {
	cfg := reconcile.CurrentConfig{
		Enabled:   false,
		VRF:       reconcile.DefaultVRF,
		Port:      443,
		Protocols: []string{"https"},
	}

	if v, ok := fields[reconcile.FieldEnabled]; ok && v != "" {
		cfg.Enabled = v == "true"
	}
	if v, ok := fields[reconcile.FieldVRF]; ok && v != "" {
		cfg.VRF = v
	}
	if v, ok := fields[reconcile.FieldPort]; ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parsing mgmt api port %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v, ok := fields[reconcile.FieldProtocols]; ok && v != "" {
		cfg.Protocols = reconcile.SplitProtocols(v)
	}

	return cfg, nil
}
