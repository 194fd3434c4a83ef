// Package reconcile computes and applies the minimal set of changes needed to
// bring a device's management-API service configuration to a desired state.
package reconcile

import (
	"fmt"
	"sort"
	"strings"
)

// Managed field names. These are the CONFIG_DB field names of the MGMT_API
// table and the Mutation.Field values handed to DeviceAccess.
const (
	FieldEnabled   = "enabled"
	FieldVRF       = "vrf"
	FieldPort      = "port"
	FieldProtocols = "protocols"
)

// DefaultVRF always resolves without consulting the device's VRF table.
const DefaultVRF = "default"

// fieldOrder fixes the apply sequence so partial failures leave a
// deterministic device state.
var fieldOrder = []string{FieldEnabled, FieldVRF, FieldPort, FieldProtocols}

// DesiredConfig is the requested management-API state. Nil fields are left
// unmanaged: they are neither compared nor written.
type DesiredConfig struct {
	Enabled   *bool    `yaml:"enabled,omitempty"`
	VRF       *string  `yaml:"vrf,omitempty"`
	Port      *int     `yaml:"port,omitempty"`
	Protocols []string `yaml:"protocols,omitempty"`
}

// CurrentConfig is the device's management-API state at fetch time, fully
// populated.
type CurrentConfig struct {
	Enabled   bool     `json:"enabled"`
	VRF       string   `json:"vrf"`
	Port      int      `json:"port"`
	Protocols []string `json:"protocols"`
}

// Mutation is a single field write issued to the device.
type Mutation struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (m Mutation) String() string {
	return fmt.Sprintf("%s=%s", m.Field, m.Value)
}

// Diff returns the mutations needed to move current to desired, in the fixed
// apply order. Unset desired fields produce no mutation. Protocol lists are
// compared as sets.
func Diff(desired DesiredConfig, current CurrentConfig) []Mutation {
	var muts []Mutation

	for _, field := range fieldOrder {
		switch field {
		case FieldEnabled:
			if desired.Enabled != nil && *desired.Enabled != current.Enabled {
				muts = append(muts, Mutation{FieldEnabled, formatBool(*desired.Enabled)})
			}
		case FieldVRF:
			if desired.VRF != nil && *desired.VRF != current.VRF {
				muts = append(muts, Mutation{FieldVRF, *desired.VRF})
			}
		case FieldPort:
			if desired.Port != nil && *desired.Port != current.Port {
				muts = append(muts, Mutation{FieldPort, fmt.Sprintf("%d", *desired.Port)})
			}
		case FieldProtocols:
			if desired.Protocols != nil && !sameProtocolSet(desired.Protocols, current.Protocols) {
				muts = append(muts, Mutation{FieldProtocols, JoinProtocols(desired.Protocols)})
			}
		}
	}

	return muts
}

// JoinProtocols canonicalizes a protocol list (dedupe, sort) into the
// comma-separated form stored on the device.
func JoinProtocols(protocols []string) string {
	return strings.Join(canonicalProtocols(protocols), ",")
}

// SplitProtocols parses the device's comma-separated protocol field.
// Empty input yields nil.
func SplitProtocols(s string) []string {
	if s == "" {
		return nil
	}
	return canonicalProtocols(strings.Split(s, ","))
}

func canonicalProtocols(protocols []string) []string {
	seen := make(map[string]bool, len(protocols))
	out := make([]string, 0, len(protocols))
	for _, p := range protocols {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func sameProtocolSet(a, b []string) bool {
	ca, cb := canonicalProtocols(a), canonicalProtocols(b)
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if ca[i] != cb[i] {
			return false
		}
	}
	return true
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
