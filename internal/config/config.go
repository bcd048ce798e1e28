package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"faraid-engine/internal/engine"
)

// Config holds the full application configuration.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// EngineConfig configures share computation.
type EngineConfig struct {
	Scale     int32  `yaml:"scale" mapstructure:"scale"`
	Epsilon   string `yaml:"epsilon" mapstructure:"epsilon"`
	ApplyAwl  bool   `yaml:"apply_awl" mapstructure:"apply_awl"`
	ApplyRadd bool   `yaml:"apply_radd" mapstructure:"apply_radd"`
}

// Options converts the engine section into engine.Options.
func (c EngineConfig) Options() (engine.Options, error) {
	eps, err := decimal.NewFromString(c.Epsilon)
	if err != nil {
		return engine.Options{}, eris.Wrapf(err, "config: parse engine.epsilon %q", c.Epsilon)
	}
	if eps.IsNegative() {
		return engine.Options{}, eris.Errorf("config: engine.epsilon must be non-negative, got %s", c.Epsilon)
	}
	if c.Scale <= 0 {
		return engine.Options{}, eris.Errorf("config: engine.scale must be positive, got %d", c.Scale)
	}
	return engine.Options{
		Scale:     c.Scale,
		Epsilon:   eps,
		ApplyAwl:  c.ApplyAwl,
		ApplyRadd: c.ApplyRadd,
	}, nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("faraid")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FARAID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "FARAID_SERVER_PORT", "PORT"); err != nil {
		return nil, eris.Wrap(err, "config: bind port env")
	}

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("engine.scale", 10)
	v.SetDefault("engine.epsilon", "0.000001")
	v.SetDefault("engine.apply_awl", false)
	v.SetDefault("engine.apply_radd", false)

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
