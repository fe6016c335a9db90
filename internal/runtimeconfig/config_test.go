package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-awesome-mac/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresSourceDir(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Source.Dir = " "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrSourceDirRequired) {
		t.Fatalf("expected ErrSourceDirRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresOutputPathWhenDataFileEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Output.Path = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrOutputPathRequired) {
		t.Fatalf("expected ErrOutputPathRequired, got %v", err)
	}

	cfg.Features.DataFile = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled data file to skip output check, got %v", err)
	}
}

func TestConfigValidate_StorageDriver(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Storage = true
	cfg.Storage.Driver = "mongo"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}

	cfg.Storage.Driver = "sqlite"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}

	cfg.Storage.DSN = "file:catalog.db"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigValidate_SitemapBaseURL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Sitemap = true

	for _, raw := range []string{"", "example.com", "ftp://example.com"} {
		cfg.Sitemap.BaseURL = raw
		if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrSitemapBaseURLInvalid) {
			t.Fatalf("expected ErrSitemapBaseURLInvalid for %q, got %v", raw, err)
		}
	}

	cfg.Sitemap.BaseURL = "https://awesome-mac.example"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevelAndFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "verbose"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestLoadFile_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := runtimeconfig.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Source.DefaultLocale != "en" || cfg.Search.Limit != 20 {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awesome.toml")
	data := `
[source]
dir = "./awesome-mac"
locales = ["en", "zh"]

[storage]
driver = "sqlite"
dsn = "file:catalog.db"

[features]
storage = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Source.Dir != "./awesome-mac" || len(cfg.Source.Locales) != 2 {
		t.Fatalf("unexpected source config %#v", cfg.Source)
	}
	if cfg.Source.Pattern != "README*.md" {
		t.Fatalf("expected default pattern to survive, got %q", cfg.Source.Pattern)
	}
	if !cfg.Features.Storage || !cfg.Features.DataFile {
		t.Fatalf("unexpected features %#v", cfg.Features)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadFile_RejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[source\ndir ="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runtimeconfig.LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfigEncodeRoundTrip(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Sitemap.BaseURL = "https://awesome-mac.example"

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "awesome.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loaded, err := runtimeconfig.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Sitemap.BaseURL != cfg.Sitemap.BaseURL {
		t.Fatalf("expected base url to round trip, got %q", loaded.Sitemap.BaseURL)
	}
}
