// Package config loads bcryptctl settings from an optional YAML file and
// BCRYPTCTL_* environment variables.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hasbyte1/go-bcrypt/hashing"
)

// EnvPrefix is stripped from environment variables before they are mapped to
// config keys: BCRYPTCTL_BCRYPT_COST sets bcrypt.cost.
const EnvPrefix = "BCRYPTCTL_"

type Config struct {
	Bcrypt Bcrypt `koanf:"bcrypt"`
	Log    Log    `koanf:"log"`
}

// Bcrypt holds the codec defaults.
type Bcrypt struct {
	// Cost is the fallback work factor.
	Cost int `koanf:"cost" validate:"min=4,max=31"`
	// Identifier is the version tag for new hashes.
	Identifier string `koanf:"identifier" validate:"oneof=2a 2x 2y"`
}

type Log struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Pretty bool   `koanf:"pretty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Bcrypt: Bcrypt{
			Cost:       hashing.DefaultWorkFactor,
			Identifier: string(hashing.DefaultIdentifier),
		},
		Log: Log{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load builds a Config from the defaults, then the YAML file at path (skipped
// when path is empty), then the environment. The result is validated.
func Load(path string) (*Config, error) {
	return load(path, os.Environ)
}

func load(path string, environ func() []string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config %s failed", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:      EnvPrefix,
		EnvironFunc: environ,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, EnvPrefix)
			return strings.ReplaceAll(strings.ToLower(key), "_", "."), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// CodecOptions converts the bcrypt section into [hashing.CodecOptions].
func (c *Config) CodecOptions(logger *zerolog.Logger) hashing.CodecOptions {
	return hashing.CodecOptions{
		WorkFactor: c.Bcrypt.Cost,
		Identifier: hashing.Identifier(c.Bcrypt.Identifier),
		Logger:     logger,
	}
}
