package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"
)

var ErrSourceDirRequired = errors.New("awesome config: source directory is required")
var ErrOutputPathRequired = errors.New("awesome config: output path is required when the data file is enabled")
var ErrStorageDriverUnknown = errors.New("awesome config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("awesome config: storage dsn is required for database drivers")
var ErrLoggingProviderRequired = errors.New("awesome config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("awesome config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("awesome config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("awesome config: logging format is invalid")

// ErrSitemapBaseURLInvalid indicates the sitemap cannot produce absolute locations.
var ErrSitemapBaseURLInvalid = errors.New("awesome config: sitemap base url must be an absolute http(s) url")

// ErrSearchLimitInvalid rejects negative result limits.
var ErrSearchLimitInvalid = errors.New("awesome config: search limit must be zero or positive")

// Storage drivers understood by the storage package.
const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

// Config aggregates the settings of a catalog build.
type Config struct {
	Source   SourceConfig  `toml:"source"`
	Output   OutputConfig  `toml:"output"`
	Storage  StorageConfig `toml:"storage"`
	Sitemap  SitemapConfig `toml:"sitemap"`
	Search   SearchConfig  `toml:"search"`
	Logging  LoggingConfig `toml:"logging"`
	Features Features      `toml:"features"`
}

// SourceConfig describes where README documents are discovered.
type SourceConfig struct {
	Dir            string            `toml:"dir"`
	Pattern        string            `toml:"pattern"`
	DefaultLocale  string            `toml:"default_locale"`
	Locales        []string          `toml:"locales"`
	LocalePatterns map[string]string `toml:"locale_patterns"`
	Recursive      bool              `toml:"recursive"`
	SkipSections   []string          `toml:"skip_sections"`
}

// OutputConfig controls the JSON data files written per locale.
type OutputConfig struct {
	Path   string `toml:"path"`
	Pretty bool   `toml:"pretty"`
}

// StorageConfig selects the snapshot repository.
type StorageConfig struct {
	Driver          string `toml:"driver"`
	DSN             string `toml:"dsn"`
	FallbackToCache bool   `toml:"fallback_to_cache"`
}

// SitemapConfig configures sitemap.xml and robots.txt generation.
type SitemapConfig struct {
	BaseURL        string `toml:"base_url"`
	Path           string `toml:"path"`
	GenerateRobots bool   `toml:"generate_robots"`
}

// SearchConfig bounds CLI search output.
type SearchConfig struct {
	Limit int `toml:"limit"`
}

// Features toggles optional build stages.
type Features struct {
	DataFile bool `toml:"data_file"`
	Storage  bool `toml:"storage"`
	Sitemap  bool `toml:"sitemap"`
	Diff     bool `toml:"diff"`
	Logger   bool `toml:"logger"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `toml:"provider"`
	Level     string   `toml:"level"`
	Format    string   `toml:"format"`
	AddSource bool     `toml:"add_source"`
	Focus     []string `toml:"focus"`
}

// DefaultConfig returns defaults suited to a checkout of the awesome-mac repository.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Dir:            ".",
			Pattern:        "README*.md",
			DefaultLocale:  "en",
			LocalePatterns: map[string]string{},
			SkipSections:   []string{"Contents", "Contributors", "License"},
		},
		Output: OutputConfig{
			Path:   "dist/data",
			Pretty: true,
		},
		Storage: StorageConfig{
			Driver:          StorageDriverMemory,
			FallbackToCache: true,
		},
		Sitemap: SitemapConfig{
			Path: "dist",
		},
		Search: SearchConfig{
			Limit: 20,
		},
		Features: Features{
			DataFile: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// LoadFile reads a TOML file on top of DefaultConfig. A missing file yields
// the defaults unchanged.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("awesome config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("awesome config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func (cfg Config) Encode() ([]byte, error) {
	return toml.Marshal(cfg)
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Source.Dir) == "" {
		return ErrSourceDirRequired
	}
	if cfg.Features.DataFile && strings.TrimSpace(cfg.Output.Path) == "" {
		return ErrOutputPathRequired
	}
	if cfg.Features.Storage {
		driver := normalize(cfg.Storage.Driver)
		if !isSupportedDriver(driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
		}
		if driver != StorageDriverMemory && strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}
	if cfg.Features.Sitemap {
		if err := validation.Validate(cfg.Sitemap.BaseURL, validation.Required, validation.By(absoluteURL)); err != nil {
			return fmt.Errorf("%w: %v", ErrSitemapBaseURLInvalid, err)
		}
	}
	if cfg.Search.Limit < 0 {
		return ErrSearchLimitInvalid
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func absoluteURL(value any) error {
	raw, _ := value.(string)
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("validation_absolute_url", "must be an absolute http(s) url")
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case StorageDriverMemory, StorageDriverSQLite, StorageDriverPostgres:
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
