package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPopulatesBaseRelativePaths(t *testing.T) {
	cfg := Default("/tmp/flowcore-base")
	if cfg.EnvDir != filepath.Join("/tmp/flowcore-base", "env") {
		t.Errorf("unexpected EnvDir: %s", cfg.EnvDir)
	}
	if cfg.WorkerManager.Port != 9380 || cfg.Frontend.Port != 8000 {
		t.Errorf("unexpected default ports: %+v", cfg)
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	cfg := Default(dir)
	cfg.WorkerManager.Host = "example.internal"

	if err := Write(path, cfg); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(path + ".bu"); err != nil {
		t.Errorf("expected a .bu backup to be written: %v", err)
	}

	got, err := Read(path, dir)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.WorkerManager.Host != "example.internal" {
		t.Errorf("expected host to round-trip, got %s", got.WorkerManager.Host)
	}
}

func TestReadFallsBackToDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg, err := Read(path, dir)
	if err != nil {
		t.Fatalf("Read should fall back to defaults without error, got %v", err)
	}
	if cfg.WorkerManager.Port != 9380 {
		t.Errorf("expected default port, got %d", cfg.WorkerManager.Port)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected Read to persist the defaulted config, got %v", err)
	}
}

func TestReadFallsBackToBackupOnCorruptPrimary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	cfg := Default(dir)
	cfg.WorkerManager.Host = "backed-up"

	if err := Write(path, cfg); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to corrupt primary config: %v", err)
	}

	got, err := Read(path, dir)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.WorkerManager.Host != "backed-up" {
		t.Errorf("expected recovery from .bu backup, got %s", got.WorkerManager.Host)
	}
}

func TestMergeDefaultsFillsZeroFieldsOnly(t *testing.T) {
	cfg := &Config{WorkerManager: WorkerManagerConfig{Host: "custom"}}
	defaults := Default("/base")

	MergeDefaults(cfg, defaults)

	if cfg.WorkerManager.Host != "custom" {
		t.Errorf("expected explicit host to survive merge, got %s", cfg.WorkerManager.Host)
	}
	if cfg.WorkerManager.Port != defaults.WorkerManager.Port {
		t.Errorf("expected zero-valued port to be filled from defaults, got %d", cfg.WorkerManager.Port)
	}
	if cfg.EnvDir != defaults.EnvDir {
		t.Errorf("expected zero-valued EnvDir to be filled from defaults, got %s", cfg.EnvDir)
	}
}

func TestLoadHonorsConfigDirEnvVar(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvVarConfigDir, dir)

	cfg, base := Load()
	if base != dir {
		t.Errorf("expected base %s, got %s", dir, base)
	}
	if cfg.WorkerManager.Port != 9380 {
		t.Errorf("expected default port on first load, got %d", cfg.WorkerManager.Port)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Errorf("expected config.json to be created under the env-var dir: %v", err)
	}
}

func TestLoadFollowsCustomConfigDirRedirect(t *testing.T) {
	base := t.TempDir()
	redirect := t.TempDir()
	t.Setenv(EnvVarConfigDir, base)

	cfg := Default(base)
	cfg.CustomConfigDir = redirect
	if err := Write(filepath.Join(base, "config.json"), cfg); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	redirected := Default(redirect)
	redirected.WorkerManager.Host = "redirected-host"
	if err := Write(filepath.Join(redirect, "config.json"), redirected); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, usedBase := Load()
	if usedBase != redirect {
		t.Errorf("expected Load to rebase to %s, got %s", redirect, usedBase)
	}
	if got.WorkerManager.Host != "redirected-host" {
		t.Errorf("expected redirected config to be loaded, got %s", got.WorkerManager.Host)
	}
}
