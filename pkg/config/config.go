package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WorkerManagerConfig holds the advisory address of the external worker
// manager process. The runtime never dials this address itself — it is
// read by external collaborators via Config.WorkerManager.
type WorkerManagerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// FrontendConfig holds the advisory address of the external UI frontend.
type FrontendConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// Config is the on-disk, hierarchical key/value configuration document.
type Config struct {
	EnvDir          string              `json:"env_dir,omitempty"`
	WorkerManager   WorkerManagerConfig `json:"worker_manager,omitempty"`
	Frontend        FrontendConfig      `json:"frontend,omitempty"`
	CustomConfigDir string              `json:"custom_config_dir,omitempty"`

	// Unknown is excluded from JSON encoding and decoding, and Load/Write
	// neither fill nor write it, so keys this version of the runtime does
	// not know about are dropped by a round trip through Load/Write.
	Unknown map[string]json.RawMessage `json:"-"`
}

// EnvVarConfigDir is the environment variable that overrides the base
// configuration directory.
const EnvVarConfigDir = "FLOWCORE_CONFIG_DIR"

// DefaultBaseDir returns ~/.flowcore, or FLOWCORE_CONFIG_DIR if set.
func DefaultBaseDir() string {
	if dir := os.Getenv(EnvVarConfigDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".flowcore")
}

// Default returns the built-in default configuration, rooted at base.
func Default(base string) *Config {
	return &Config{
		EnvDir: filepath.Join(base, "env"),
		WorkerManager: WorkerManagerConfig{
			Host: "localhost",
			Port: 9380,
		},
		Frontend: FrontendConfig{
			Host: "localhost",
			Port: 8000,
		},
	}
}

func backupPath(path string) string {
	return path + ".bu"
}

// Write replaces the configuration file atomically (write-to-temp then
// rename) and refreshes the ".bu" backup copy alongside it.
func Write(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := writeSecure(path, data); err != nil {
		return err
	}
	return writeSecure(backupPath(path), data)
}

func writeSecure(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Read loads the configuration file at path, falling back to its ".bu"
// backup on parse failure, and finally to Default(base) if both are
// missing or malformed. The merged, defaulted result is written back to
// disk (mirroring the source project's load-then-persist behavior) so a
// freshly created config directory always has a readable config.json.
func Read(path, base string) (*Config, error) {
	cfg, err := readOne(path)
	if err != nil {
		cfg, err = readOne(backupPath(path))
	}
	defaults := Default(base)
	if err != nil || cfg == nil {
		cfg = defaults
	}
	MergeDefaults(cfg, defaults)
	if werr := Write(path, cfg); werr != nil {
		return cfg, werr
	}
	return cfg, nil
}

func readOne(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
