package metrics

import (
	"errors"
	"net/url"
	"time"
)

var (
	ErrPushgatewayURLRequired = errors.New("pushgateway URL is required when metrics enabled")
	ErrPushgatewayURLInvalid  = errors.New("pushgateway URL has invalid format")
	ErrJobNameRequired        = errors.New("job name is required")
	ErrInvalidTimeout         = errors.New("timeout must be positive")
)

type Config struct {
	Enabled        bool          `yaml:"enabled" env:"VFS_METRICS_ENABLED"`
	PushgatewayURL string        `yaml:"pushgatewayUrl" env:"VFS_METRICS_PUSHGATEWAY_URL"`
	JobName        string        `yaml:"jobName" env:"VFS_METRICS_JOB_NAME" env-default:"virtual-file-system"`
	Timeout        time.Duration `yaml:"timeout" env:"VFS_METRICS_TIMEOUT" env-default:"10s"`
	InstanceLabel  string        `yaml:"instanceLabel" env:"VFS_METRICS_INSTANCE"`
}

func DefaultConfig() Config {
	return Config{
		JobName: "virtual-file-system",
		Timeout: 10 * time.Second,
	}
}

func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.PushgatewayURL == "" {
		return ErrPushgatewayURLRequired
	}
	u, err := url.Parse(c.PushgatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}
	if c.JobName == "" {
		return ErrJobNameRequired
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}
