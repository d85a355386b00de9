package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	ISV    ISVConfig    `yaml:"isv" mapstructure:"isv"`
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ISVConfig holds the computation parameters.
type ISVConfig struct {
	Threshold    float64  `yaml:"threshold" mapstructure:"threshold"`
	MinRunLength int      `yaml:"min_run_length" mapstructure:"min_run_length"`
	Depths       []string `yaml:"depths" mapstructure:"depths"`
}

// InputConfig configures how raw tables are interpreted.
type InputConfig struct {
	DateColumn string `yaml:"date_column" mapstructure:"date_column"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ServerConfig configures the HTTP compute server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ISV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("isv.threshold", 0.360)
	v.SetDefault("isv.min_run_length", 4)
	v.SetDefault("isv.depths", []string{"U20", "U40", "U60"})
	v.SetDefault("input.date_column", "Data")
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the computation parameters. The threshold range is
// advisory (readings are volumetric fractions), so out-of-range values
// only warn; a bad run length is a hard error.
func (c *ISVConfig) Validate() error {
	if c.MinRunLength < 1 || c.MinRunLength > 10 {
		return eris.Errorf("config: min_run_length %d out of range [1,10]", c.MinRunLength)
	}
	if len(c.Depths) == 0 {
		return eris.New("config: at least one depth column is required")
	}
	if c.Threshold <= 0 || c.Threshold >= 1 {
		zap.L().Warn("config: threshold outside the expected 0-1 range",
			zap.Float64("threshold", c.Threshold),
		)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
