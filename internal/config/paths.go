package config

import (
	"os"
	"path/filepath"
)

// EnvConfigPath names a config file to use when --config is not given.
const EnvConfigPath = "SAFECALC_CONFIG"

// DefaultPath returns $SAFECALC_CONFIG, or safecalc/config.yaml under the
// user config directory. The file need not exist.
func DefaultPath() string {
	if v := os.Getenv(EnvConfigPath); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "safecalc.yaml")
	}
	return filepath.Join(dir, "safecalc", "config.yaml")
}

// Resolve returns path when set, otherwise DefaultPath if that file exists,
// otherwise "".
func Resolve(path string) string {
	if path != "" {
		return path
	}
	p := DefaultPath()
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
