package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmeadows/templar/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "1m"
shutdown_timeout = "30s"

[database]
host = "localhost"
port = 5432
name = "templar"
user = "templar"
password = "templar"
ssl_mode = "disable"

[assets]
source = "file"
dir = "assets"

[api]
base_path = "/api"
max_template_size = "2MB"

[api.pagination]
default_page_size = 25
max_page_size = 50
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("db host: got %s, want localhost", cfg.Database.Host)
	}
	if cfg.Assets.Source != "file" {
		t.Errorf("assets source: got %s, want file", cfg.Assets.Source)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("api base_path: got %s, want /api", cfg.API.BasePath)
	}
	if got := cfg.API.MaxTemplateSizeBytes(); got != 2<<20 {
		t.Errorf("max template size: got %d, want %d", got, 2<<20)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("pagination default_page_size: got %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.API.Pagination.MaxPageSize != 50 {
		t.Errorf("pagination max_page_size: got %d, want 50", cfg.API.Pagination.MaxPageSize)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv("TEMPLAR_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost (from overlay)", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("TEMPLAR_VERSION", "2.0.0")
	t.Setenv("TEMPLAR_SERVER_PORT", "3000")
	t.Setenv("TEMPLAR_ASSETS_DIR", "/srv/templar/assets")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Assets.Dir != "/srv/templar/assets" {
		t.Errorf("assets dir: got %s, want /srv/templar/assets", cfg.Assets.Dir)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Assets.Source != "file" {
		t.Errorf("assets source default: got %s, want file", cfg.Assets.Source)
	}
	if cfg.API.MaxTemplateSize != "1MB" {
		t.Errorf("max template size default: got %s, want 1MB", cfg.API.MaxTemplateSize)
	}
}

func TestLoadBlobSourceRequiresStorage(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("TEMPLAR_ASSETS_SOURCE", "blob")

	if _, err := config.Load(); err == nil {
		t.Error("expected error when blob source has no storage connection string")
	}
}

func TestLoadInvalidOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.broken.toml", "server = not-toml")
	chdir(t, dir)

	t.Setenv("TEMPLAR_ENV", "broken")

	if _, err := config.Load(); err == nil {
		t.Error("expected error for malformed overlay")
	}
}
