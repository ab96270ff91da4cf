package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// clientConfig holds mculinkctl's own settings, loaded from a TOML file and
// overlaid on sane defaults — unlike the device's schema, nothing here is
// part of the wire protocol.
type clientConfig struct {
	Identity string `toml:"identity"`
	Exec     string `toml:"exec"`
}

func defaultClientConfig() clientConfig {
	return clientConfig{Identity: "mculinkctl-demo"}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mculink", "mculinkctl.toml")
	}
	return filepath.Join(home, ".mculink", "mculinkctl.toml")
}

// loadClientConfig overlays path's TOML contents on the defaults. A missing
// file is not an error: mculinkctl is useful with no config file at all.
func loadClientConfig(path string) (clientConfig, error) {
	cfg := defaultClientConfig()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return clientConfig{}, err
	}

	var raw clientConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return clientConfig{}, fmt.Errorf("load config %q: %w", path, err)
	}
	if meta.IsDefined("identity") {
		cfg.Identity = raw.Identity
	}
	if meta.IsDefined("exec") {
		cfg.Exec = raw.Exec
	}
	return cfg, nil
}
