package device

import (
	"testing"
)

func TestParseMgmtAPI_Defaults(t *testing.T) {
	// Device that has never written the MGMT_API table
	cfg, err := parseMgmtAPI(map[string]string{})
	if err != nil {
		t.Fatalf("parseMgmtAPI: %v", err)
	}

	if cfg.Enabled {
		t.Error("enabled should default to false")
	}
	if cfg.VRF != "default" {
		t.Errorf("VRF = %q, want default", cfg.VRF)
	}
	if cfg.Port != 443 {
		t.Errorf("Port = %d, want 443", cfg.Port)
	}
	if len(cfg.Protocols) != 1 || cfg.Protocols[0] != "https" {
		t.Errorf("Protocols = %v, want [https]", cfg.Protocols)
	}
}

func TestParseMgmtAPI_Populated(t *testing.T) {
	cfg, err := parseMgmtAPI(map[string]string{
		"enabled":   "true",
		"vrf":       "mgmt",
		"port":      "8443",
		"protocols": "https,http",
	})
	if err != nil {
		t.Fatalf("parseMgmtAPI: %v", err)
	}

	if !cfg.Enabled {
		t.Error("enabled should be true")
	}
	if cfg.VRF != "mgmt" {
		t.Errorf("VRF = %q, want mgmt", cfg.VRF)
	}
	if cfg.Port != 8443 {
		t.Errorf("Port = %d, want 8443", cfg.Port)
	}
	if len(cfg.Protocols) != 2 || cfg.Protocols[0] != "http" || cfg.Protocols[1] != "https" {
		t.Errorf("Protocols = %v, want [http https]", cfg.Protocols)
	}
}

func TestParseMgmtAPI_EmptyFieldsKeepDefaults(t *testing.T) {
	// Fields written then cleared come back as empty strings
	cfg, err := parseMgmtAPI(map[string]string{
		"enabled":   "",
		"vrf":       "",
		"port":      "",
		"protocols": "",
	})
	if err != nil {
		t.Fatalf("parseMgmtAPI: %v", err)
	}
	if cfg.VRF != "default" || cfg.Port != 443 {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestParseMgmtAPI_BadPort(t *testing.T) {
	_, err := parseMgmtAPI(map[string]string{"port": "not-a-port"})
	if err == nil {
		t.Fatal("expected error for unparsable port")
	}
}

func TestParseMgmtAPI_EnabledIsStrict(t *testing.T) {
	// Anything but the literal "true" reads as disabled
	for _, v := range []string{"false", "True", "yes", "1"} {
		cfg, err := parseMgmtAPI(map[string]string{"enabled": v})
		if err != nil {
			t.Fatalf("parseMgmtAPI(%q): %v", v, err)
		}
		if cfg.Enabled {
			t.Errorf("enabled = true for field value %q", v)
		}
	}
}
