// Package config loads the group parameters (p, q, g, h) the server
// and client run the protocol over, layering environment variables
// over an optional KEY=value parameter file — a viper-backed Loader
// narrowed to the four scalars this domain needs.
package config

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/AINative-studio/ainative-code/internal/errors"
	"github.com/AINative-studio/ainative-code/internal/group"
)

// Environment variable / parameter-file key names.
const (
	KeyP = "CP_P"
	KeyQ = "CP_Q"
	KeyG = "CP_G"
	KeyH = "CP_H"
)

// envPrefix groups the four keys under viper's automatic-env binding;
// the keys themselves are already CP_-prefixed, so BindEnv is used
// directly rather than relying on SetEnvPrefix's key-munging.
const envPrefix = "CP"

// Loader reads GroupParams from environment variables and/or a
// KEY=value parameter file.
type Loader struct {
	viper      *viper.Viper
	configPath string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithParameterFile points the Loader at a KEY=value parameter file in
// addition to the environment.
func WithParameterFile(path string) LoaderOption {
	return func(l *Loader) {
		l.configPath = path
	}
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{viper: viper.New()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves GroupParams from the configured parameter file (if
// any) and the environment, environment variables taking precedence,
// and validates the resulting group before returning it.
func (l *Loader) Load() (*group.Params, error) {
	l.viper.SetEnvPrefix(envPrefix)
	l.viper.AutomaticEnv()
	for _, key := range []string{KeyP, KeyQ, KeyG, KeyH} {
		_ = l.viper.BindEnv(key, key)
	}

	if l.configPath != "" {
		l.viper.SetConfigFile(l.configPath)
		l.viper.SetConfigType(configTypeFor(l.configPath))
		if err := l.viper.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.InvalidArgument, "reading parameter file "+l.configPath, err)
		}
	}

	params, err := parseParams(l.viper)
	if err != nil {
		return nil, err
	}

	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(errors.InvalidArgument, "invalid group parameters", err)
	}

	return params, nil
}

// LoadFromEnv is a convenience entry point that loads GroupParams from
// the process environment only, with no parameter file.
func LoadFromEnv() (*group.Params, error) {
	return NewLoader().Load()
}

// LoadFromFile is a convenience entry point that loads GroupParams
// from a KEY=value parameter file, falling back to the environment for
// any key the file doesn't set.
func LoadFromFile(path string) (*group.Params, error) {
	return NewLoader(WithParameterFile(path)).Load()
}

// configTypeFor picks the viper config type for path's extension: a
// ".yaml"/".yml" parameter file is parsed as YAML (the same format
// structured configuration files use), anything else — notably
// the plain KEY=value format — as viper's "env" type.
func configTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "env"
	}
}

func parseParams(v *viper.Viper) (*group.Params, error) {
	pStr := v.GetString(KeyP)
	qStr := v.GetString(KeyQ)
	gStr := v.GetString(KeyG)
	hStr := v.GetString(KeyH)

	p, err := parseScalar(KeyP, pStr)
	if err != nil {
		return nil, err
	}
	q, err := parseScalar(KeyQ, qStr)
	if err != nil {
		return nil, err
	}
	g, err := parseScalar(KeyG, gStr)
	if err != nil {
		return nil, err
	}
	h, err := parseScalar(KeyH, hStr)
	if err != nil {
		return nil, err
	}

	return group.New(p, q, g, h), nil
}

func parseScalar(key, raw string) (*big.Int, error) {
	if raw == "" {
		return nil, errors.Newf(errors.InvalidArgument, "missing required parameter %s", key)
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, errors.Newf(errors.InvalidArgument, "parameter %s is not a base-10 integer: %q", key, raw)
	}
	return v, nil
}

// Save writes params to path as KEY=value lines, one per variable, per
// the parameter file. If path is empty, params are written to stdout instead.
func Save(params *group.Params, path string) error {
	content := params.String() + "\n"

	if path == "" {
		_, err := fmt.Print(content)
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return errors.Wrap(errors.Internal, "writing parameter file "+path, err)
	}
	return nil
}
