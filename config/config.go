// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// envPrefix selects the environment variables that override file
// values, e.g. HTTPR_TIMEOUT_MS=2000.
const envPrefix = "HTTPR_"

// Config holds the engine defaults applied to every new request. A
// request may override any of them through its fluent setters before
// dispatch.
type Config struct {
	// TimeoutMS is the per-attempt timeout in milliseconds. Zero
	// means no attempt timeout.
	TimeoutMS int `koanf:"timeout_ms" validate:"gte=0"`

	// Attempts is the maximum number of attempts per request,
	// including the first. Values below 1 behave as 1.
	Attempts int `koanf:"attempts" validate:"gte=0"`

	// RetryOnFails enables retrying attempts that ended in a
	// transport error.
	RetryOnFails bool `koanf:"retry_on_fails"`

	// FollowRedirects enables following redirects, capped at 10 hops.
	FollowRedirects bool `koanf:"follow_redirects"`

	// VerifyTLS enables verification of the peer certificate and
	// host name.
	VerifyTLS bool `koanf:"verify_tls"`

	// CAInfo is a path to a file holding one or more certificates to
	// verify the peer with.
	CAInfo string `koanf:"ca_info"`

	// CAPath is a path to a directory of CA certificates.
	CAPath string `koanf:"ca_path"`

	// CRLFile is a path to a certificate revocation list applied
	// during peer verification.
	CRLFile string `koanf:"crl_file"`

	// HTTPVersion selects the preferred protocol version: "1.1" or
	// "2". Empty leaves the choice to the transport.
	HTTPVersion string `koanf:"http_version" validate:"omitempty,oneof=1.1 2"`

	// AcceptEncoding is sent as the Accept-Encoding request header.
	AcceptEncoding string `koanf:"accept_encoding"`

	// LogLevel sets the engine logger level when the embedding
	// application builds its logger from this config.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=trace debug info warn error disabled"`
}

// Default returns the configuration matching a freshly constructed
// request in the engine: redirects followed and TLS verified, one
// attempt, 5 second attempt timeout.
func Default() Config {
	return Config{
		TimeoutMS:       5000,
		Attempts:        1,
		FollowRedirects: true,
		VerifyTLS:       true,
		AcceptEncoding:  "gzip,deflate",
		LogLevel:        "info",
	}
}

// Load reads configuration from the YAML file at path, if path is
// non-empty, then overrides it with HTTPR_-prefixed environment
// variables, validates the result, and returns it. Missing keys keep
// their Default values.
func Load(path string) (Config, error) {
	cfg := Default()

	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, errors.Wrapf(err, "httpr/config: load %s", path)
		}
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
		},
	}), nil); err != nil {
		return cfg, errors.Wrap(err, "httpr/config: load environment")
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, errors.Wrap(err, "httpr/config: unmarshal")
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return cfg, errors.Wrap(err, "httpr/config: validate")
	}
	return cfg, nil
}
