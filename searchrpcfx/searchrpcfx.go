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

// Package searchrpcfx provides a *searchrpc.Client to fx applications.
//
// The client is configured from the "searchrpc" key of the application's
// config.Provider, in the format of package searchrpcconfig, and closed when
// the application stops.
//
//	fx.New(
//		fx.Provide(newConfigProvider),
//		searchrpcfx.Module,
//		fx.Invoke(func(c *searchrpc.Client) { ... }),
//	)
package searchrpcfx

import (
	"context"
	"fmt"
	"os"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/searchrpc/searchrpc"
	"github.com/searchrpc/searchrpc/searchrpcconfig"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_name             = "searchrpcfx"
	_configurationKey = "searchrpc"
)

// Module provides a *searchrpcconfig.Config and a *searchrpc.Client.
var Module = fx.Options(
	fx.Provide(NewConfig),
	fx.Provide(NewClient),
)

// ConfigParams defines the dependencies of NewConfig.
type ConfigParams struct {
	fx.In

	Provider config.Provider
}

// ConfigResult defines the values produced by NewConfig.
type ConfigResult struct {
	fx.Out

	Config *searchrpcconfig.Config
}

// NewConfig loads the client configuration. Variables are resolved from the
// environment.
func NewConfig(p ConfigParams) (ConfigResult, error) {
	var raw map[string]interface{}
	if err := p.Provider.Get(_configurationKey).Populate(&raw); err != nil {
		return ConfigResult{}, fmt.Errorf("%s: failed to read %q: %v", _name, _configurationKey, err)
	}
	cfg, err := searchrpcconfig.Load(raw, os.LookupEnv)
	if err != nil {
		return ConfigResult{}, err
	}
	return ConfigResult{Config: cfg}, nil
}

// ClientParams defines the dependencies of NewClient.
type ClientParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *searchrpcconfig.Config
	Logger    *zap.Logger        `optional:"true"`
	Tracer    opentracing.Tracer `optional:"true"`
	Scope     tally.Scope        `optional:"true"`
}

// ClientResult defines the values produced by NewClient.
type ClientResult struct {
	fx.Out

	Client *searchrpc.Client
}

// NewClient builds the client and closes it when the application stops.
func NewClient(p ClientParams) (ClientResult, error) {
	var opts []searchrpc.ClientOption
	if p.Logger != nil {
		opts = append(opts, searchrpc.WithLogger(p.Logger.Named(_name)))
	}
	if p.Tracer != nil {
		opts = append(opts, searchrpc.WithTracer(p.Tracer))
	}
	if p.Scope != nil {
		opts = append(opts, searchrpc.WithMetricsScope(p.Scope.SubScope("searchrpc")))
	}

	client, err := p.Config.NewClient(opts...)
	if err != nil {
		return ClientResult{}, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return ClientResult{Client: client}, nil
}
