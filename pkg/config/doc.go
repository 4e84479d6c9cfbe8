// Package config loads and persists the runtime's on-disk configuration file.
//
// # Overview
//
// The configuration directory defaults to ~/.flowcore but can be overridden
// with the FLOWCORE_CONFIG_DIR environment variable. Reads fall back to a
// ".bu" backup copy on parse failure, and finally to built-in defaults;
// writes are atomic and always refresh the backup copy alongside the
// primary file. A config may point at a different directory via the
// custom_config_dir key, in which case the runtime rebases and reloads from
// there.
//
// # Basic Usage
//
//	cfg, dir := config.Load()
//	fmt.Println(cfg.EnvDir, dir)
//
// # Test Mode
//
// This package does not consult runtime test mode (FLOWCORE_IN_TEST or
// runtime.SetInTest): the config directory comes from FLOWCORE_CONFIG_DIR
// or the home-directory default alone. Tests that need an isolated
// directory set FLOWCORE_CONFIG_DIR themselves, for example to
// runtime.TestDir().
package config
