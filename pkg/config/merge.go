package config

import "path/filepath"

// MergeDefaults fills any zero-valued field on cfg from defaults, mirroring
// the source project's deep-fill-missing-keys behavior on load.
func MergeDefaults(cfg, defaults *Config) {
	if cfg.EnvDir == "" {
		cfg.EnvDir = defaults.EnvDir
	}
	if cfg.WorkerManager.Host == "" {
		cfg.WorkerManager.Host = defaults.WorkerManager.Host
	}
	if cfg.WorkerManager.Port == 0 {
		cfg.WorkerManager.Port = defaults.WorkerManager.Port
	}
	if cfg.Frontend.Host == "" {
		cfg.Frontend.Host = defaults.Frontend.Host
	}
	if cfg.Frontend.Port == 0 {
		cfg.Frontend.Port = defaults.Frontend.Port
	}
}

// Load resolves the configuration directory (honoring FLOWCORE_CONFIG_DIR
// and, once loaded, a custom_config_dir redirect) and returns the loaded
// Config together with the directory it was ultimately read from.
func Load() (*Config, string) {
	base := DefaultBaseDir()
	path := filepath.Join(base, "config.json")

	cfg, err := Read(path, base)
	if err != nil {
		return Default(base), base
	}

	if cfg.CustomConfigDir != "" && cfg.CustomConfigDir != base {
		rebased := cfg.CustomConfigDir
		rebasedPath := filepath.Join(rebased, "config.json")
		if rebasedCfg, rerr := Read(rebasedPath, rebased); rerr == nil {
			return rebasedCfg, rebased
		}
	}

	return cfg, base
}
