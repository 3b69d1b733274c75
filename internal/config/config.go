package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/beamreport/internal/beam"
)

// ConfigFileName is the config file looked up in the working directory
const ConfigFileName = "beamreport.yaml"

// EnvPrefix prefixes every environment override, e.g. BEAMREPORT_RENDER_ENGINE
const EnvPrefix = "BEAMREPORT"

// Config holds all beamreport configuration
type Config struct {
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Render  RenderConfig  `yaml:"render" envconfig:"RENDER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// ReportConfig holds the labels printed in the report
type ReportConfig struct {
	Title      string `yaml:"title" envconfig:"TITLE"`
	Subtitle   string `yaml:"subtitle" envconfig:"SUBTITLE"`
	Project    string `yaml:"project" envconfig:"PROJECT"`
	Author     string `yaml:"author" envconfig:"AUTHOR"`
	OutputName string `yaml:"output_name" envconfig:"OUTPUT_NAME" validate:"required,filename"`
}

// InputConfig holds how the force table is read
type InputConfig struct {
	Sheet    string           `yaml:"sheet" envconfig:"SHEET"`
	Columns  beam.ColumnNames `yaml:"columns" envconfig:"COLUMNS"`
	SortRows bool             `yaml:"sort_rows" envconfig:"SORT_ROWS"`
}

// RenderConfig holds the final document engine settings
type RenderConfig struct {
	Engine            string        `yaml:"engine" envconfig:"ENGINE" validate:"oneof=latex native none"`
	Binary            string        `yaml:"binary" envconfig:"BINARY" validate:"required_if=Engine latex"`
	Passes            int           `yaml:"passes" envconfig:"PASSES" validate:"min=1"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gte=0"`
	CleanupExtensions []string      `yaml:"cleanup_extensions" envconfig:"CLEANUP_EXTENSIONS"`
	KeepAux           bool          `yaml:"keep_aux" envconfig:"KEEP_AUX"`
}

// LoggingConfig holds the log handler settings
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// Render engines
const (
	EngineLatex  = "latex"
	EngineNative = "native"
	EngineNone   = "none"
)

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load builds the configuration in order of precedence: defaults, the yaml
// file at path, then BEAMREPORT_* environment variables. A .env file in the
// working directory is loaded into the environment first if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads config from a specific path over the defaults.
// A missing file gives the defaults unchanged.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Keys absent from the file keep their default values
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, formatValidationError(fieldErrs[0]))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cols := cfg.Input.Columns
	if cols.Position == "" || cols.Shear == "" || cols.Moment == "" {
		return fmt.Errorf("%w: input.columns needs position, shear and moment", ErrInvalidConfig)
	}
	if cols.Position == cols.Shear || cols.Position == cols.Moment || cols.Shear == cols.Moment {
		return fmt.Errorf("%w: input.columns must be distinct", ErrInvalidConfig)
	}

	return nil
}
