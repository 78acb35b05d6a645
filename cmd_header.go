// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/datawire/ziphdr/pkg/cliutil"
)

var argparserHeader = &cobra.Command{
	Use:   "header {[flags]|SUBCOMMAND...}",
	Short: "Encode and decode the 26-byte local file header record",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserHeader)
}
