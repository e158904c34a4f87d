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
	"encoding/base64"
	"fmt"
	"time"

	"github.com/searchrpc/searchrpc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWaitCmd(a *app) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait until the service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, logger, err := a.client()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer client.Close()

			start := time.Now()
			if err := client.Wait(cmd.Context(), timeout); err != nil {
				return err
			}
			logger.Debug("channel ready", zap.Duration("elapsed", time.Since(start)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s is ready\n", client.Endpoint())
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "How long to wait for the channel")
	return cmd
}

func newCallCmd(a *app) *cobra.Command {
	var (
		data     string
		deadline time.Duration
	)
	cmd := &cobra.Command{
		Use:   "call <path>",
		Short: "Send a base64 encoded request to a method and print the base64 encoded reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := base64.StdEncoding.DecodeString(data)
			if err != nil {
				return fmt.Errorf("--data is not valid base64: %v", err)
			}

			client, logger, err := a.client()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer client.Close()

			reply, err := searchrpc.Call(cmd.Context(), client, args[0], body,
				searchrpc.RawCodec{}.Encode, searchrpc.RawCodec{}.Decode,
				searchrpc.WithDeadline(deadline))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(reply))
			return nil
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Request message, base64 encoded")
	cmd.Flags().DurationVar(&deadline, "deadline", searchrpc.DefaultDeadline, "Deadline of the call")
	return cmd
}
