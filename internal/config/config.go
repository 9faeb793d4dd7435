// Package config loads run defaults from an optional YAML file. Values
// resolve in precedence order: explicit flag, config file, built-in
// default; the CLI layer owns the flag step, this package the rest.
package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/example/svchef/internal/errors"
	"github.com/example/svchef/internal/logger"
	"github.com/example/svchef/internal/render"
)

// DefaultFile is looked for in the working directory when no config
// path is given.
const DefaultFile = ".svchef.yaml"

// Config carries every setting a run can take from a file.
type Config struct {
	// Format selects the output renderer.
	Format string `yaml:"format" validate:"omitempty,oneof=markdown csv html"`

	// Strategy selects the source preprocessing strategy.
	Strategy string `yaml:"strategy" validate:"omitempty,oneof=genesis2 lrm"`

	// Exclude omits matching port and parameter names from output.
	Exclude string `yaml:"exclude"`

	// CSVMaxDepth caps the hierarchy columns of the csv renderer.
	CSVMaxDepth int `yaml:"csv_max_depth" validate:"omitempty,min=1"`

	// HTMLTitleSuffix follows the module name in the html page title.
	HTMLTitleSuffix string `yaml:"html_title_suffix"`

	// IncludeDirs extends package file resolution.
	IncludeDirs []string `yaml:"include_dirs"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report yaml key names in validation errors so messages match the
	// config file.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format:          "markdown",
		Strategy:        "genesis2",
		CSVMaxDepth:     render.DefaultCSVMaxDepth,
		HTMLTitleSuffix: render.DefaultHTMLTitleSuffix,
	}
}

// Load resolves the configuration for a run. An explicit path must
// exist and parse. With no path, .svchef.yaml in the working directory
// is used when present; otherwise the defaults stand alone. File values
// overlay the defaults key by key.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	logger.Debugw("config loaded", "file", path)
	return cfg, nil
}
