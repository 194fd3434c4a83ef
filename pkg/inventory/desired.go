package inventory

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sable-networks/eapictl/pkg/reconcile"
	"github.com/sable-networks/eapictl/pkg/util"
)

// knownProtocols are the transports the management API service can serve.
var knownProtocols = map[string]bool{
	"http":       true,
	"https":      true,
	"http-local": true,
}

// LoadDesired reads a desired-state file. Absent keys stay nil and are left
// unmanaged by the reconciler; this is why the file is decoded into pointer
// fields rather than zero values.
func LoadDesired(path string) (reconcile.DesiredConfig, error) {
	var desired reconcile.DesiredConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return desired, fmt.Errorf("reading desired state: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&desired); err != nil {
		return desired, fmt.Errorf("parsing desired state %s: %w", path, err)
	}

	if err := ValidateDesired(desired); err != nil {
		return desired, err
	}
	return desired, nil
}

// ValidateDesired checks field syntax. VRF existence is a device-side
// precondition checked at reconcile time, not here.
func ValidateDesired(desired reconcile.DesiredConfig) error {
	v := &util.ValidationBuilder{}

	if desired.Port != nil {
		v.Add(*desired.Port >= 1 && *desired.Port <= 65535,
			fmt.Sprintf("port %d out of range 1-65535", *desired.Port))
	}

	if desired.VRF != nil {
		name := *desired.VRF
		v.Add(name != "", "vrf name must not be empty")
		v.Add(!strings.ContainsAny(name, " |"), fmt.Sprintf("vrf name %q contains invalid characters", name))
	}

	if desired.Protocols != nil {
		v.Add(len(desired.Protocols) > 0, "protocols must not be empty when set")
		for _, p := range desired.Protocols {
			if !knownProtocols[p] {
				v.AddErrorf("unknown protocol %q", p)
			}
		}
	}

	return v.Build()
}
