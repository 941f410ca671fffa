// Package config loads the file system configuration from an optional YAML
// file and VFS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"

	"virtual-file-system/internal/filesystem/directory/record"
	"virtual-file-system/internal/filesystem/managers/spacemanager"
	"virtual-file-system/internal/filesystem/superblock"
	"virtual-file-system/internal/logging"
	"virtual-file-system/internal/metrics"
	"virtual-file-system/internal/tracing"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

var ErrInvalidDiskConfig = errors.New("invalid disk configuration")

// DiskConfig fixes the region layout. It cannot change while a file system
// is running.
type DiskConfig struct {
	DirectoryZoneSize int     `yaml:"directoryZoneSize" env:"VFS_DIRECTORY_ZONE_SIZE" env-default:"1048576"`
	MetadataZoneSize  int     `yaml:"metadataZoneSize" env:"VFS_METADATA_ZONE_SIZE" env-default:"1048576"`
	DataZoneSize      int     `yaml:"dataZoneSize" env:"VFS_DATA_ZONE_SIZE" env-default:"8388608"`
	BlockSize         int     `yaml:"blockSize" env:"VFS_BLOCK_SIZE" env-default:"1024"`
	EntrySize         int     `yaml:"entrySize" env:"VFS_ENTRY_SIZE" env-default:"500"`
	UsageThreshold    float64 `yaml:"usageThreshold" env:"VFS_USAGE_THRESHOLD" env-default:"0.8"`
}

type Config struct {
	Disk         DiskConfig     `yaml:"disk"`
	Logging      logging.Config `yaml:"logging"`
	Metrics      metrics.Config `yaml:"metrics"`
	Tracing      tracing.Config `yaml:"tracing"`
	Editor       string         `yaml:"editor" env:"VFS_EDITOR" env-default:"vi"`
	OutputFormat string         `yaml:"outputFormat" env:"VFS_OUTPUT_FORMAT" env-default:"text"`
}

// DefaultDisk is a 10 MB region: 1 MB directory, 1 MB metadata, 8 MB data in
// 1 KB blocks, 500-byte directory slots and an 80% creation threshold.
func DefaultDisk() DiskConfig {
	return DiskConfig{
		DirectoryZoneSize: 1 * 1024 * 1024,
		MetadataZoneSize:  1 * 1024 * 1024,
		DataZoneSize:      8 * 1024 * 1024,
		BlockSize:         1024,
		EntrySize:         500,
		UsageThreshold:    0.8,
	}
}

func Default() *Config {
	return &Config{
		Disk:         DefaultDisk(),
		Logging:      logging.DefaultConfig(),
		Metrics:      metrics.DefaultConfig(),
		Tracing:      tracing.DefaultConfig(),
		Editor:       "vi",
		OutputFormat: "text",
	}
}

// Load reads path (YAML) when it is not empty, then environment variables,
// and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Disk.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return c.Tracing.Validate()
}

// WriteYAML dumps the effective configuration.
func (c *Config) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return err
	}
	return encoder.Close()
}

func (d DiskConfig) Validate() error {
	// the superblock stores every size as a uint32
	for _, size := range []int{d.DirectoryZoneSize, d.MetadataZoneSize, d.DataZoneSize} {
		if int64(size) > math.MaxUint32 {
			return fmt.Errorf("%w: zone of %d bytes exceeds %d", ErrInvalidDiskConfig, size, uint32(math.MaxUint32))
		}
	}
	if d.BlockSize <= 0 {
		return fmt.Errorf("%w: block size must be positive", ErrInvalidDiskConfig)
	}
	if d.DataZoneSize <= 0 || d.DataZoneSize%d.BlockSize != 0 {
		return fmt.Errorf("%w: data zone size must be a positive multiple of the block size", ErrInvalidDiskConfig)
	}
	if d.EntrySize <= record.HeaderSize {
		return fmt.Errorf("%w: entry size must exceed the %d byte record header", ErrInvalidDiskConfig, record.HeaderSize)
	}
	if d.DirectoryZoneSize < d.EntrySize {
		return fmt.Errorf("%w: directory zone must hold at least one entry", ErrInvalidDiskConfig)
	}
	if d.MetadataZoneSize < d.MetadataBytesNeeded() {
		return fmt.Errorf("%w: metadata zone needs at least %d bytes", ErrInvalidDiskConfig, d.MetadataBytesNeeded())
	}
	if d.UsageThreshold <= 0 || d.UsageThreshold > 1 {
		return fmt.Errorf("%w: usage threshold must be within (0, 1]", ErrInvalidDiskConfig)
	}
	return nil
}

func (d DiskConfig) BlockCount() int {
	return d.DataZoneSize / d.BlockSize
}

func (d DiskConfig) MaxEntries() int {
	return d.DirectoryZoneSize / d.EntrySize
}

// MetadataBytesNeeded is the size of the superblock plus both free pools.
func (d DiskConfig) MetadataBytesNeeded() int {
	return superblock.Superblock{}.Size() + spacemanager.EncodedSize(d.BlockCount())
}
