package tracing

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

var (
	ErrEndpointRequired    = errors.New("tracing: endpoint is required when tracing is enabled")
	ErrEndpointInvalid     = errors.New("tracing: endpoint must be a URL with a host, e.g. http://jaeger:4318")
	ErrServiceNameRequired = errors.New("tracing: service name is required")
	ErrTimeoutInvalid      = errors.New("tracing: timeout must be positive")
	ErrSamplingRateInvalid = errors.New("tracing: sampling rate must be within [0, 1]")
)

type Config struct {
	Enabled      bool          `yaml:"enabled" env:"VFS_TRACING_ENABLED"`
	Endpoint     string        `yaml:"endpoint" env:"VFS_TRACING_ENDPOINT"`
	ServiceName  string        `yaml:"serviceName" env:"VFS_TRACING_SERVICE_NAME" env-default:"virtual-file-system"`
	Insecure     bool          `yaml:"insecure" env:"VFS_TRACING_INSECURE"`
	Timeout      time.Duration `yaml:"timeout" env:"VFS_TRACING_TIMEOUT" env-default:"5s"`
	SamplingRate float64       `yaml:"samplingRate" env:"VFS_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:  "virtual-file-system",
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}
}

func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Endpoint == "" {
		return ErrEndpointRequired
	}
	if u, err := url.Parse(c.Endpoint); err != nil || u.Host == "" {
		return ErrEndpointInvalid
	}
	if c.ServiceName == "" {
		return ErrServiceNameRequired
	}
	if c.Timeout <= 0 {
		return ErrTimeoutInvalid
	}
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		return fmt.Errorf("%w, got %g", ErrSamplingRateInvalid, c.SamplingRate)
	}
	return nil
}
