// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package searchrpcconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/searchrpc/searchrpc"
	"github.com/searchrpc/searchrpc/internal/debuglog"
	"github.com/searchrpc/searchrpc/internal/interpolate"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

// Config is the configuration of one client.
type Config struct {
	Project     string      `config:"project,interpolate"`
	Collection  string      `config:"collection,interpolate"`
	Credentials Credentials `config:"credentials"`

	// Endpoint defaults to searchrpc.DefaultEndpoint.
	Endpoint  string `config:"endpoint,interpolate"`
	Authority string `config:"authority,interpolate"`
	Insecure  bool   `config:"insecure,interpolate"`

	Retry   Retry   `config:"retry"`
	Logging Logging `config:"logging"`
}

// Credentials are the default credentials of the client.
type Credentials struct {
	Key    string `config:"key,interpolate"`
	Secret string `config:"secret,interpolate"`
}

// Logging configures the logger built by Logger.
type Logging struct {
	// Level defaults to info.
	Level *zapLevel `config:"level"`

	// ShowCredentials writes credentials to the debug log in the clear.
	ShowCredentials bool `config:"showCredentials,interpolate"`
}

// LoadFromYAML reads the configuration from YAML. Variables are resolved
// with lookup, os.LookupEnv if nil.
func LoadFromYAML(r io.Reader, lookup interpolate.VariableResolver) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("searchrpcconfig: failed to parse YAML: %v", err)
	}
	return Load(data, lookup)
}

// LoadFile reads the YAML configuration at path.
func LoadFile(path string, lookup interpolate.VariableResolver) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFromYAML(f, lookup)
}

// Load decodes the configuration from a map[string]interface{} or
// map[interface{}]interface{} and validates it.
func Load(data interface{}, lookup interpolate.VariableResolver) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var cfg Config
	if err := decodeInto(&cfg, data, interpolateWith(lookup)); err != nil {
		return nil, fmt.Errorf("searchrpcconfig: %v", err)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = searchrpc.DefaultEndpoint
	}
	if debuglog.ConfigFromLookup(lookup).ShowCredentials {
		cfg.Logging.ShowCredentials = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem of the configuration at once.
func (c *Config) Validate() (err error) {
	if c.Project == "" {
		err = multierr.Append(err, errors.New("searchrpcconfig: project is required"))
	}
	if c.Collection == "" {
		err = multierr.Append(err, errors.New("searchrpcconfig: collection is required"))
	}
	if (c.Credentials.Key == "") != (c.Credentials.Secret == "") {
		err = multierr.Append(err, errors.New("searchrpcconfig: credentials need both a key and a secret"))
	}
	if _, berr := c.Retry.Backoff.Strategy(); berr != nil {
		err = multierr.Append(err, fmt.Errorf("searchrpcconfig: invalid retry backoff: %v", berr))
	}
	return err
}

// ClientOptions translates the configuration into client options.
func (c *Config) ClientOptions() ([]searchrpc.ClientOption, error) {
	strategy, err := c.Retry.Backoff.Strategy()
	if err != nil {
		return nil, fmt.Errorf("searchrpcconfig: invalid retry backoff: %v", err)
	}

	opts := []searchrpc.ClientOption{
		searchrpc.WithEndpoint(c.Endpoint),
		searchrpc.WithBackoff(strategy),
		searchrpc.WithDebugConfig(searchrpc.DebugConfig{ShowCredentials: c.Logging.ShowCredentials}),
	}
	if c.Authority != "" {
		opts = append(opts, searchrpc.WithAuthority(c.Authority))
	}
	if c.Insecure {
		opts = append(opts, searchrpc.WithInsecure())
	}
	if c.Retry.Attempts > 0 {
		opts = append(opts, searchrpc.WithMaxAttempts(c.Retry.Attempts))
	}
	return opts, nil
}

// NewClient builds a client from the configuration. opts are applied after
// the configured ones and win over them.
func (c *Config) NewClient(opts ...searchrpc.ClientOption) (*searchrpc.Client, error) {
	cfgOpts, err := c.ClientOptions()
	if err != nil {
		return nil, err
	}
	creds := searchrpc.Credentials{Key: c.Credentials.Key, Secret: c.Credentials.Secret}
	return searchrpc.New(c.Project, c.Collection, creds, append(cfgOpts, opts...)...)
}

// Logger builds a production zap logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Logging.Level != nil {
		zc.Level = zap.NewAtomicLevelAt(zapcore.Level(*c.Logging.Level))
	}
	return zc.Build()
}
