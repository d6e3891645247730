// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var EnableDebug bool = false

const (
	// invalid page number
	InvalidPageID = -1
	// default size of a data page in byte
	PageSize = 4096
	// max byte length of a Varchar value (the on-page length prefix is not included)
	StringMaxLength = 128
	// default number of frames the buffer pool holds
	BufferPoolMaxFrameNum = 50
	// number of buckets of each column histogram
	NumHistBins = 100
	// cost of reading one page, used by scan cost estimation
	IOCostPerPage = 1000
)

// boundary policy names accepted by statistics.boundary_policy
const (
	BoundaryPolicyStrict = "strict"
	BoundaryPolicyLegacy = "legacy"
)

type StorageConfig struct {
	PageSize int    `mapstructure:"page_size"`
	DataDir  string `mapstructure:"data_dir"`
	OnMemory bool   `mapstructure:"on_memory"`
}

type BufferPoolConfig struct {
	Frames int `mapstructure:"frames"`
}

type StatisticsConfig struct {
	HistogramBins     int    `mapstructure:"histogram_bins"`
	IOCostPerPage     int    `mapstructure:"io_cost_per_page"`
	BoundaryPolicy    string `mapstructure:"boundary_policy"`
	UpdateIntervalSec int    `mapstructure:"update_interval_sec"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the whole runtime configuration of a HeapDB instance
type Config struct {
	Storage    StorageConfig    `mapstructure:"storage"`
	BufferPool BufferPoolConfig `mapstructure:"buffer_pool"`
	Statistics StatisticsConfig `mapstructure:"statistics"`
	Log        LogConfig        `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.page_size", PageSize)
	v.SetDefault("storage.data_dir", "")
	v.SetDefault("storage.on_memory", false)
	v.SetDefault("buffer_pool.frames", BufferPoolMaxFrameNum)
	v.SetDefault("statistics.histogram_bins", NumHistBins)
	v.SetDefault("statistics.io_cost_per_page", IOCostPerPage)
	v.SetDefault("statistics.boundary_policy", BoundaryPolicyStrict)
	v.SetDefault("statistics.update_interval_sec", 0)
	v.SetDefault("log.level", "warn")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("HEAPDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultConfig returns the configuration used when no file is given.
// HEAPDB_* environment variables still apply.
func DefaultConfig() *Config {
	v := newViper()
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfig reads a YAML config file and applies defaults for missing keys
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Storage.PageSize <= 0 {
		return fmt.Errorf("invalid storage.page_size: %d", c.Storage.PageSize)
	}
	if c.BufferPool.Frames <= 0 {
		return fmt.Errorf("invalid buffer_pool.frames: %d", c.BufferPool.Frames)
	}
	if c.Statistics.HistogramBins <= 0 {
		return fmt.Errorf("invalid statistics.histogram_bins: %d", c.Statistics.HistogramBins)
	}
	switch c.Statistics.BoundaryPolicy {
	case BoundaryPolicyStrict, BoundaryPolicyLegacy:
	default:
		return fmt.Errorf("invalid statistics.boundary_policy: %q", c.Statistics.BoundaryPolicy)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
