// Package inventory loads device inventory and desired-state files.
package inventory

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sable-networks/eapictl/pkg/util"
)

// Profile holds connection parameters for one device.
type Profile struct {
	MgmtIP  string `yaml:"mgmt_ip"`
	SSHUser string `yaml:"ssh_user,omitempty"`
	SSHPass string `yaml:"ssh_pass,omitempty"`
	SSHPort int    `yaml:"ssh_port,omitempty"`
}

// Inventory maps device names to connection profiles.
type Inventory struct {
	Devices map[string]*Profile `yaml:"devices"`
}

// Load reads and validates an inventory file.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}

	inv := &Inventory{}
	if err := yaml.Unmarshal(data, inv); err != nil {
		return nil, fmt.Errorf("parsing inventory %s: %w", path, err)
	}

	if err := inv.validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (inv *Inventory) validate() error {
	v := &util.ValidationBuilder{}
	v.Add(len(inv.Devices) > 0, "inventory has no devices")

	for name, p := range inv.Devices {
		if p == nil {
			v.AddErrorf("device %s: empty profile", name)
			continue
		}
		if p.MgmtIP == "" {
			v.AddErrorf("device %s: mgmt_ip is required", name)
		}
		if p.SSHPort < 0 || p.SSHPort > 65535 {
			v.AddErrorf("device %s: ssh_port %d out of range", name, p.SSHPort)
		}
	}
	return v.Build()
}

// Get returns the profile for a device name.
func (inv *Inventory) Get(name string) (*Profile, error) {
	p, ok := inv.Devices[name]
	if !ok {
		return nil, fmt.Errorf("device %s not in inventory: %w", name, util.ErrNotFound)
	}
	return p, nil
}

// Names returns all device names, sorted.
func (inv *Inventory) Names() []string {
	names := make([]string, 0, len(inv.Devices))
	for name := range inv.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
