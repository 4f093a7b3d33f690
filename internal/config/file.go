package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileValues are the settings a user can pin in a YAML config file. Anything
// left empty falls back to the environment-backed defaults.
type FileValues struct {
	BaseURL        string `yaml:"base_url"`
	DataFolder     string `yaml:"data_folder"`
	RequestTimeout string `yaml:"request_timeout"` // Go duration string, e.g. "10s"
}

type fileConfig struct {
	mainConfig
	values FileValues
}

var _ Config = fileConfig{}

// Load reads a YAML config file and overlays it on the environment defaults.
// A missing file is not an error; the plain env config is returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[config.Load] read file")
	}

	var values FileValues
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrapf(err, "[config.Load] parse %s", path)
	}
	if values.RequestTimeout != "" {
		if _, err := time.ParseDuration(values.RequestTimeout); err != nil {
			return nil, errors.Wrapf(err, "[config.Load] invalid request_timeout in %s", path)
		}
	}
	return fileConfig{values: values}, nil
}

func (f fileConfig) GetBaseURL() string {
	if f.values.BaseURL != "" {
		return f.values.BaseURL
	}
	return f.mainConfig.GetBaseURL()
}

func (f fileConfig) GetDataFolder() string {
	if f.values.DataFolder != "" {
		return f.values.DataFolder
	}
	return f.mainConfig.GetDataFolder()
}

func (f fileConfig) GetRequestTimeout() time.Duration {
	if f.values.RequestTimeout != "" {
		if d, err := time.ParseDuration(f.values.RequestTimeout); err == nil && d > 0 {
			return d
		}
	}
	return f.mainConfig.GetRequestTimeout()
}
