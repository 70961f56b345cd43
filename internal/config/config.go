// Package config loads and validates fleetkpi configuration.
//
// Configuration is resolved in layers: built-in defaults, the global file
// (~/.fleetkpi/config.yaml), an optional project overlay (.fleetkpi/config.yaml,
// shallow-merged by top-level key), environment variables (optionally seeded
// from a .env file) and finally CLI flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the configuration schema written by `config init`.
const SchemaVersion = "1.0.0"

// schemaConstraint lists the schema versions this build can read.
const schemaConstraint = "^1.0.0"

// Dataset file keys, matching dataset.Name values.
const (
	DatasetTrips    = "trips"
	DatasetVehicles = "vehicles"
	DatasetAir      = "air"
	DatasetFuel     = "fuel"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvConfigPath  = "FLEETKPI_CONFIG"
	EnvHome        = "FLEETKPI_HOME"
	EnvProjectDir  = "FLEETKPI_PROJECT_DIR"
	EnvDataDir     = "FLEETKPI_DATA_DIR"
	EnvLogLevel    = "FLEETKPI_LOG_LEVEL"
	EnvLogFormat   = "FLEETKPI_LOG_FORMAT"
	EnvLogFile     = "FLEETKPI_LOG_FILE"
	EnvServerAddr  = "FLEETKPI_SERVER_ADDR"
	EnvChartDir    = "FLEETKPI_CHART_DIR"
	EnvOutputFmt   = "FLEETKPI_OUTPUT_FORMAT"
	homeDirName    = ".fleetkpi"
	configFileName = "config.yaml"
)

// Validation errors.
var (
	ErrSchemaVersion   = errors.New("unsupported config schema_version")
	ErrDataDirRequired = errors.New("data.dir is required")
	ErrDatasetFile     = errors.New("data.files must name a file for every dataset")
	ErrOutputFormat    = errors.New("output.default_format must be one of table, json, xlsx")
	ErrChartSize       = errors.New("output chart width and height must be positive")
	ErrServerAddr      = errors.New("server.addr is required")
)

// Config is the root configuration document.
type Config struct {
	SchemaVersion string        `yaml:"schema_version" json:"schema_version"`
	Data          DataConfig    `yaml:"data"           json:"data"`
	KPI           KPIConfig     `yaml:"kpi"            json:"kpi"`
	Output        OutputConfig  `yaml:"output"         json:"output"`
	Server        ServerConfig  `yaml:"server"         json:"server"`
	Logging       LoggingConfig `yaml:"logging"        json:"logging"`
}

// DataConfig locates the four input Parquet files.
type DataConfig struct {
	// Dir is the directory holding the dataset files.
	Dir string `yaml:"dir" json:"dir"`
	// Files maps dataset names to file names relative to Dir (absolute paths are used as-is).
	Files map[string]string `yaml:"files" json:"files"`
}

// OutputConfig controls report and chart output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	ChartDir      string `yaml:"chart_dir"      json:"chart_dir"`
	ChartWidth    int    `yaml:"chart_width"    json:"chart_width"`
	ChartHeight   int    `yaml:"chart_height"   json:"chart_height"`
}

// ServerConfig controls the HTTP dashboard API.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode" json:"mode"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SchemaVersion: SchemaVersion,
		Data: DataConfig{
			Dir: "data",
			Files: map[string]string{
				DatasetTrips:    "trips.parquet",
				DatasetVehicles: "vehicles.parquet",
				DatasetAir:      "air_quality_measurement.parquet",
				DatasetFuel:     "fuel_economy_data.parquet",
			},
		},
		KPI: DefaultKPIConfig(),
		Output: OutputConfig{
			DefaultFormat: "table",
			ChartDir:      "charts",
			ChartWidth:    800,
			ChartHeight:   480,
		},
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DatasetPath returns the resolved file path for a dataset name.
func (c *Config) DatasetPath(name string) string {
	file := c.Data.Files[name]
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.Data.Dir, file)
}

// Validate checks the configuration for values the rest of the program cannot work with.
func (c *Config) Validate() error {
	if err := checkSchemaVersion(c.SchemaVersion); err != nil {
		return err
	}
	if c.Data.Dir == "" {
		return ErrDataDirRequired
	}
	for _, name := range []string{DatasetTrips, DatasetVehicles, DatasetAir, DatasetFuel} {
		if c.Data.Files[name] == "" {
			return fmt.Errorf("%w: missing %q", ErrDatasetFile, name)
		}
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "xlsx":
	default:
		return fmt.Errorf("%w: got %q", ErrOutputFormat, c.Output.DefaultFormat)
	}
	if c.Output.ChartWidth <= 0 || c.Output.ChartHeight <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrChartSize, c.Output.ChartWidth, c.Output.ChartHeight)
	}
	if c.Server.Addr == "" {
		return ErrServerAddr
	}
	return c.KPI.Validate()
}

func checkSchemaVersion(v string) error {
	if v == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrSchemaVersion, v, err)
	}
	c, err := semver.NewConstraint(schemaConstraint)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !c.Check(ver) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrSchemaVersion, v, schemaConstraint)
	}
	return nil
}

// HomeDir returns the fleetkpi home directory (FLEETKPI_HOME or ~/.fleetkpi).
func HomeDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving user home directory: %w", err)
	}
	return filepath.Join(home, homeDirName), nil
}

// GlobalConfigPath returns FLEETKPI_CONFIG or the default global config path.
func GlobalConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadFile reads a YAML config file on top of the defaults. Keys absent from
// the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Load resolves the full configuration: defaults, global file (explicitPath
// when non-empty), project overlay from projectDir, then environment.
func Load(explicitPath, projectDir string) (*Config, error) {
	loadDotEnv(projectDir)

	path := explicitPath
	if path == "" {
		var err error
		if path, err = GlobalConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	} else if explicitPath != "" {
		return nil, fmt.Errorf("config file %s: %w", explicitPath, err)
	}

	if projectDir != "" {
		overlay := filepath.Join(projectDir, configFileName)
		if _, err := os.Stat(overlay); err == nil {
			if err = ShallowMergeYAML(cfg, overlay); err != nil {
				return nil, err
			}
		}
	}

	ApplyEnv(cfg)
	return cfg, nil
}

// ApplyEnv overrides configuration values from FLEETKPI_* environment variables.
func ApplyEnv(cfg *Config) {
	setFromEnv(&cfg.Data.Dir, EnvDataDir)
	setFromEnv(&cfg.Logging.Level, EnvLogLevel)
	setFromEnv(&cfg.Logging.Format, EnvLogFormat)
	setFromEnv(&cfg.Logging.File, EnvLogFile)
	setFromEnv(&cfg.Server.Addr, EnvServerAddr)
	setFromEnv(&cfg.Output.ChartDir, EnvChartDir)
	setFromEnv(&cfg.Output.DefaultFormat, EnvOutputFmt)
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

//nolint:gochecknoglobals // Resolved once per CLI invocation, read by subcommands.
var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// SetGlobalConfig stores the configuration resolved for this invocation.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the configuration resolved for this invocation,
// or the defaults when none has been set.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	if globalConfig == nil {
		return Default()
	}
	return globalConfig
}
