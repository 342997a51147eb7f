package cnpv

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// A Config holds the pipeline's input and output locations.
type Config struct {

	// The folder holding the territory archives.
	DataFolder string `yaml:"data_folder"`

	// The data dictionary archive.
	DictPath string `yaml:"dictionary"`

	// Where the processed tables are written.
	OutDir string `yaml:"output_dir"`

	// Output format, "csv" or "parquet".
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no config file or
// flags are given, with the data release laid out under the working
// directory.
func DefaultConfig() *Config {
	return &Config{
		DataFolder: "data",
		DictPath:   filepath.Join("dict", "Diccionario_Datos_CNPV_2018.zip"),
		OutDir:     "out",
		Format:     "csv",
	}
}

// LoadConfig reads a yaml configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run
// with.
func (cfg *Config) Validate() error {

	if cfg.DataFolder == "" {
		return fmt.Errorf("config: data_folder must be set")
	}
	if cfg.DictPath == "" {
		return fmt.Errorf("config: dictionary must be set")
	}
	if cfg.OutDir == "" {
		return fmt.Errorf("config: output_dir must be set")
	}
	if cfg.Format != "csv" && cfg.Format != "parquet" {
		return fmt.Errorf("config: unsupported format %q (supported: csv, parquet)", cfg.Format)
	}

	return nil
}
