// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Command ziphdr encodes and decodes the local file headers of ZIP archives.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/datawire/ziphdr/pkg/cliutil"
)

var argparser = &cobra.Command{
	Use:   "ziphdr {[flags]|SUBCOMMAND...}",
	Short: "Encode and decode ZIP local file headers",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,

	SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
	SilenceUsage:  true, // our FlagErrorFunc will handle it
}

var (
	logger       = logrus.New()
	flagLogLevel string
)

func init() {
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)

	argparser.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info",
		"Only log messages at `LEVEL` or more severe (one of trace, debug, info, warn, error)")
	argparser.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		level, err := logrus.ParseLevel(flagLogLevel)
		if err != nil {
			return cliutil.FlagErrorFunc(cmd, fmt.Errorf("--log-level: %w", err))
		}
		logger.SetLevel(level)
		return nil
	}
}

func main() {
	logger.SetOutput(os.Stderr)
	ctx := dlog.WithLogger(context.Background(), dlog.WrapLogrus(logger))

	if err := argparser.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(argparser.ErrOrStderr(), "%s: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
