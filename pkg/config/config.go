package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/vrp/restappender/pkg/appender"
)

// Config defines the structure of the config file
type Config struct {
	Appender appender.Configuration `json:"appender"`
	Timeout  string                 `json:"timeout,omitempty"`
	Verbose  bool                   `json:"verbose,omitempty"`
}

// ReadConfig loads config and returns its content.
// Appender properties are taken as they are, missing ones are reported on delivery.
func (c *Config) ReadConfig(configuration io.ReadCloser) error {
	defer configuration.Close()

	content, err := io.ReadAll(configuration)
	if err != nil {
		return errors.Wrapf(err, "error reading %v", configuration)
	}

	err = yaml.Unmarshal(content, &c)
	if err != nil {
		// content carries credentials, only the parser message is reported
		return NewParseError(fmt.Sprintf("error unmarshalling configuration: %v", err))
	}
	return nil
}

// ReadConfigFile reads the config file at path. A missing file yields an empty configuration.
func ReadConfigFile(path string) (Config, error) {
	var c Config

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, errors.Wrapf(err, "config: open %v failed", path)
	}

	if err := c.ReadConfig(file); err != nil {
		return c, errors.Wrapf(err, "config: read %v failed", path)
	}
	return c, nil
}

// TimeoutDuration parses the configured transport timeout. An empty value means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if len(c.Timeout) == 0 {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid timeout '%v'", c.Timeout)
	}
	if timeout < 0 {
		return 0, errors.Errorf("invalid timeout '%v': must not be negative", c.Timeout)
	}
	return timeout, nil
}

// GetJSON returns JSON representation of an object
func GetJSON(data interface{}) (string, error) {

	result, err := json.Marshal(data)
	if err != nil {
		return "", errors.Wrapf(err, "error marshalling json: %v", err)
	}
	return string(result), nil
}
