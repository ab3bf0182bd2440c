package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config is the startup configuration of the server and the CLI.
type Config struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	UploadDir      string `mapstructure:"upload_dir"`
	CORSOrigin     string `mapstructure:"cors_origin"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
	LogLevel       string `mapstructure:"log_level"`
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "5000")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("cors_origin", "*")
	v.SetDefault("max_upload_bytes", 32<<20)
	v.SetDefault("log_level", "info")
}

// Build loads configuration from defaults, an optional .env file, an optional
// config file, INVOICER_* environment variables and flags, in that order of
// precedence (last wins).
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("invoicer")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// PORT without prefix is what hosting platforms set.
	if err := v.BindEnv("port", "INVOICER_PORT", "PORT"); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("port must not be empty")
	}
	return &cfg, nil
}

// bindFlags binds flags named like the config keys, with dashes in place of
// underscores (upload-dir -> upload_dir). Other flags are left alone.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if _, ok := keys[key]; !ok || err != nil {
			return
		}
		err = v.BindPFlag(key, f)
	})
	return err
}

var keys = map[string]struct{}{
	"host":             {},
	"port":             {},
	"upload_dir":       {},
	"cors_origin":      {},
	"max_upload_bytes": {},
	"log_level":        {},
}

// RegisterFlags declares the flags Build knows how to bind.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("host", "0.0.0.0", "Listen host")
	flags.StringP("port", "p", "5000", "Listen port")
	flags.String("upload-dir", "uploads", "Directory for temporary uploads")
	flags.String("cors-origin", "*", "Allowed CORS origin")
	flags.Int64("max-upload-bytes", 32<<20, "Maximum upload size in bytes")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
}
