package inventory

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds persistent user preferences for the eapictl CLI.
type Settings struct {
	// InventoryPath overrides the default inventory file location
	InventoryPath string `json:"inventory_path,omitempty"`

	// AuditLogPath overrides the default audit log location
	AuditLogPath string `json:"audit_log_path,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "eapictl_settings.json"
	}
	return filepath.Join(home, ".eapictl", "settings.json")
}

// LoadSettings reads settings from the default location
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(DefaultSettingsPath())
}

// LoadSettingsFrom reads settings from a specific path
func LoadSettingsFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetInventoryPath returns the inventory path (with fallback)
func (s *Settings) GetInventoryPath() string {
	if s.InventoryPath != "" {
		return s.InventoryPath
	}
	return "/etc/eapictl/inventory.yaml"
}

// GetAuditLogPath returns the audit log path (with fallback)
func (s *Settings) GetAuditLogPath() string {
	if s.AuditLogPath != "" {
		return s.AuditLogPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "eapictl_audit.log"
	}
	return filepath.Join(home, ".eapictl", "audit.log")
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
