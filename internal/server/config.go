package server

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the funcd settings. Each field can be set by flag or by a
// FUNCD_ environment variable (FUNCD_PORT, FUNCD_LOG_LEVEL, ...).
type Config struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle-timeout"`
	MaxBodyBytes int64         `mapstructure:"max-body-bytes"`
	LogLevel     string        `mapstructure:"log-level"`
	LogFormat    string        `mapstructure:"log-format"`
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		MaxBodyBytes: 1 << 20, // 1 MiB
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// AddFlags registers one flag per Config field.
func AddFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.Int("port", d.Port, "port to listen on")
	fs.Duration("read-timeout", d.ReadTimeout, "maximum duration for reading a request")
	fs.Duration("write-timeout", d.WriteTimeout, "maximum duration for writing a response")
	fs.Duration("idle-timeout", d.IdleTimeout, "keep-alive idle timeout")
	fs.Int64("max-body-bytes", d.MaxBodyBytes, "maximum accepted request body size")
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.String("log-format", d.LogFormat, "log format (text or json)")
}

// LoadConfig resolves flags, FUNCD_ environment variables and defaults, in
// that order of precedence.
func LoadConfig(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("funcd")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("max-body-bytes must be positive")
	}
	return cfg, nil
}

// ConfigureLogging applies the level and format to the standard logrus
// logger.
func (c Config) ConfigureLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	switch c.LogFormat {
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
