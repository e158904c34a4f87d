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

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/searchrpc/searchrpc"
	"github.com/searchrpc/searchrpc/searchrpcconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	_configFlag  = "config"
	_envFileFlag = "env-file"
	_envPrefix   = "searchctl"
)

// app carries what subcommands share.
type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "searchctl",
		Short: "Call a search service",
		Long: fmt.Sprintf(`searchctl (%s)

Checks and calls a search service with the client configured in a YAML file.
Flags may also be set through SEARCHCTL_* environment variables.`, searchrpc.UserAgent),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}
	cmd.PersistentFlags().String(_configFlag, "searchrpc.yaml", "Path of the client configuration")
	cmd.PersistentFlags().String(_envFileFlag, ".env", "File of environment variables to load before reading the configuration")

	cmd.AddCommand(
		newWaitCmd(a),
		newCallCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	a.v.SetEnvPrefix(_envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Variables already set in the environment win over the file.
	if err := godotenv.Load(a.v.GetString(_envFileFlag)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %v", a.v.GetString(_envFileFlag), err)
	}
	return nil
}

// client builds the client described by the configuration file.
func (a *app) client() (*searchrpc.Client, *zap.Logger, error) {
	cfg, err := searchrpcconfig.LoadFile(a.v.GetString(_configFlag), os.LookupEnv)
	if err != nil {
		return nil, nil, err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}
	client, err := cfg.NewClient(searchrpc.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), searchrpc.UserAgent)
		},
	}
}
