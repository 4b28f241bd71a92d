// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Deployment flavors.
const (
	FlavorDatabase = "database"
	FlavorIndexer  = "indexer"
	FlavorNode     = "node"
)

// ErrEnvFileNotFound is returned when the requested .env file does not exist.
var ErrEnvFileNotFound = errors.New("env file not found")

// Config holds every setting of the API server.
type Config struct {
	Flavor         string `mapstructure:"APP_FLAVOR"`
	APIPort        string `mapstructure:"API_PORT"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	GinMode        string `mapstructure:"GIN_MODE"`
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`
	DockerHost     string `mapstructure:"DOCKER_HOST"`

	// Project scope: COMPOSE_PROJECT_NAME falls back to APP_ID; the node
	// flavor uses APP_COMPOSE_PROJECT instead.
	ComposeProject     string `mapstructure:"COMPOSE_PROJECT_NAME"`
	AppID              string `mapstructure:"APP_ID"`
	NodeComposeProject string `mapstructure:"APP_COMPOSE_PROJECT"`
	KaspadService      string `mapstructure:"APP_KASPAD_SERVICE"`

	// Service table: "key=label,key=label" or a YAML file.
	LogServices  string `mapstructure:"APP_LOG_SERVICES"`
	ServicesFile string `mapstructure:"APP_SERVICES_FILE"`

	DBAddress  string `mapstructure:"APP_KASPA_DB_ADDRESS"`
	DBPort     int    `mapstructure:"APP_KASPA_DB_PORT"`
	DBUser     string `mapstructure:"APP_KASPA_DB_USER"`
	DBPassword string `mapstructure:"APP_KASPA_DB_PASSWORD"`
	DBName     string `mapstructure:"APP_KASPA_DB_NAME"`

	StreamMax           int           `mapstructure:"LOG_STREAM_MAX"`
	StreamMaxPerService int           `mapstructure:"LOG_STREAM_MAX_PER_SERVICE"`
	StreamKeepalive     time.Duration `mapstructure:"LOG_STREAM_KEEPALIVE"`
	StreamMaxDuration   time.Duration `mapstructure:"LOG_STREAM_MAX_DURATION"`

	// Comma-separated paths whose filesystems the metrics endpoint reports.
	MetricsDiskPaths string `mapstructure:"METRICS_DISK_PATHS"`
}

// AppConfig is the process-wide configuration populated by LoadConfig.
var AppConfig Config

var defaults = map[string]any{
	"APP_FLAVOR":                 FlavorDatabase,
	"API_PORT":                   "8000",
	"LOG_LEVEL":                  "info",
	"GIN_MODE":                   "release",
	"TRUSTED_PROXIES":            "",
	"DOCKER_HOST":                "",
	"COMPOSE_PROJECT_NAME":       "",
	"APP_ID":                     "",
	"APP_COMPOSE_PROJECT":        "kaspa-node",
	"APP_KASPAD_SERVICE":         "kaspad",
	"APP_LOG_SERVICES":           "",
	"APP_SERVICES_FILE":          "",
	"APP_KASPA_DB_ADDRESS":       "",
	"APP_KASPA_DB_PORT":          0,
	"APP_KASPA_DB_USER":          "",
	"APP_KASPA_DB_PASSWORD":      "",
	"APP_KASPA_DB_NAME":          "",
	"LOG_STREAM_MAX":             64,
	"LOG_STREAM_MAX_PER_SERVICE": 8,
	"LOG_STREAM_KEEPALIVE":       "15s",
	"LOG_STREAM_MAX_DURATION":    "30m",
	"METRICS_DISK_PATHS":         "/",
}

// Default service tables per flavor: logical key to compose service label.
var defaultServices = map[string]map[string]string{
	FlavorDatabase: {
		"postgres":  "kaspa_db",
		"indexer":   "simply_kaspa_indexer",
		"processor": "k-transaction-processor",
	},
	FlavorNode: {
		"kaspad":    "kaspad",
		"kaspa-api": "kaspa-api",
		"frontend":  "frontend",
	},
}

// LoadConfig reads envFile (if non-empty) into the process environment, then
// resolves every setting from the environment and defaults into AppConfig.
// Values already present in the environment win over the file.
func LoadConfig(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrEnvFileNotFound, envFile)
			}
			return fmt.Errorf("failed to read env file '%s': %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Flavor = strings.ToLower(strings.TrimSpace(cfg.Flavor))

	if err := cfg.Validate(); err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Validate enforces required settings. Missing values abort startup.
func (c Config) Validate() error {
	switch c.Flavor {
	case FlavorDatabase, FlavorIndexer, FlavorNode:
	default:
		return fmt.Errorf("invalid APP_FLAVOR '%s': expected %s, %s or %s", c.Flavor, FlavorDatabase, FlavorIndexer, FlavorNode)
	}

	if c.NeedsDatabase() {
		required := []struct {
			name  string
			value string
		}{
			{"APP_KASPA_DB_ADDRESS", c.DBAddress},
			{"APP_KASPA_DB_USER", c.DBUser},
			{"APP_KASPA_DB_PASSWORD", c.DBPassword},
			{"APP_KASPA_DB_NAME", c.DBName},
		}
		for _, r := range required {
			if strings.TrimSpace(r.value) == "" {
				return fmt.Errorf("missing required environment variable: %s", r.name)
			}
		}
		if c.DBPort <= 0 || c.DBPort > 65535 {
			return fmt.Errorf("missing required environment variable: APP_KASPA_DB_PORT")
		}
	}

	if c.Flavor == FlavorNode {
		services, err := c.Services()
		if err != nil {
			return err
		}
		if _, ok := services[c.KaspadService]; !ok {
			return fmt.Errorf("APP_KASPAD_SERVICE '%s' is not in the service table", c.KaspadService)
		}
	}

	if c.StreamKeepalive < 0 || c.StreamMaxDuration < 0 {
		return fmt.Errorf("stream durations must not be negative")
	}
	return nil
}

// NeedsDatabase reports whether the flavor serves database statistics.
func (c Config) NeedsDatabase() bool {
	return c.Flavor == FlavorDatabase || c.Flavor == FlavorIndexer
}

// ServesLogs reports whether the flavor exposes log routes.
func (c Config) ServesLogs() bool {
	return c.Flavor == FlavorDatabase || c.Flavor == FlavorNode
}

// Project returns the compose project scope, or "" for none.
func (c Config) Project() string {
	if c.Flavor == FlavorNode {
		return c.NodeComposeProject
	}
	if c.ComposeProject != "" {
		return c.ComposeProject
	}
	return c.AppID
}

// DiskPaths returns METRICS_DISK_PATHS split on commas, without blanks or
// repeats.
func (c Config) DiskPaths() []string {
	var paths []string
	seen := make(map[string]bool)
	for _, p := range strings.Split(c.MetricsDiskPaths, ",") {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}

// Services returns the service table: APP_SERVICES_FILE, then
// APP_LOG_SERVICES, then the flavor default.
func (c Config) Services() (map[string]string, error) {
	if c.ServicesFile != "" {
		return loadServicesFile(c.ServicesFile)
	}
	if strings.TrimSpace(c.LogServices) != "" {
		return parseServiceList(c.LogServices)
	}
	services := make(map[string]string, len(defaultServices[c.Flavor]))
	for k, v := range defaultServices[c.Flavor] {
		services[k] = v
	}
	return services, nil
}

// parseServiceList parses "key=label,key=label". A bare "key" uses the key
// as its own label.
func parseServiceList(raw string) (map[string]string, error) {
	services := make(map[string]string)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, label, found := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		label = strings.TrimSpace(label)
		if !found {
			label = key
		}
		if key == "" || label == "" {
			return nil, fmt.Errorf("invalid APP_LOG_SERVICES entry '%s'", entry)
		}
		services[key] = label
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("APP_LOG_SERVICES is set but lists no services")
	}
	return services, nil
}

type servicesFile struct {
	Services map[string]string `yaml:"services"`
}

// loadServicesFile reads a YAML document of the form:
//
//	services:
//	  postgres: kaspa_db
func loadServicesFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read services file '%s': %w", path, err)
	}
	var doc servicesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse services file '%s': %w", path, err)
	}
	if len(doc.Services) == 0 {
		return nil, fmt.Errorf("services file '%s' lists no services", path)
	}
	for key, label := range doc.Services {
		if strings.TrimSpace(key) == "" || strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("services file '%s' has an empty key or label", path)
		}
	}
	return doc.Services, nil
}
