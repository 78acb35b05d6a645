// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

//go:build aux

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/datawire/ziphdr/pkg/cliutil"
)

// newDocsCmd returns a hidden command that replaces OUT_DIRECTORY with the output of gen for the
// whole ziphdr command tree.
func newDocsCmd(use, short string, gen func(root *cobra.Command, dir string) error) *cobra.Command {
	return &cobra.Command{
		Hidden: true,
		Use:    use + " OUT_DIRECTORY",
		Short:  short,
		Args:   cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.RemoveAll(dir); err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o777); err != nil {
				return err
			}
			root := cmd.Root()
			root.DisableAutoGenTag = true
			return gen(root, dir)
		},
	}
}

func newManCmd() *cobra.Command {
	var section string
	cmd := newDocsCmd("man", "Generate man pages", func(root *cobra.Command, dir string) error {
		return doc.GenManTree(root, &doc.GenManHeader{
			Section: section,
			Source:  "Ambassador Labs",
			Manual:  root.Name(),
		}, dir)
	})
	cmd.Flags().StringVar(&section, "section", "1", "Manual section to file the pages under")
	return cmd
}

func newMarkdownCmd() *cobra.Command {
	return newDocsCmd("mddoc", "Generate markdown documentation", doc.GenMarkdownTree)
}

func init() {
	// completion, hidden from help
	argparser.CompletionOptions.DisableDefaultCmd = false
	setLogLevel := argparser.PersistentPreRunE
	argparser.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if completionCmd, _, err := cmd.Root().Find([]string{"completion"}); err == nil && completionCmd.Name() == "completion" {
			completionCmd.Hidden = true
		}
		return setLogLevel(cmd, args)
	}

	argparser.AddCommand(newManCmd())
	argparser.AddCommand(newMarkdownCmd())
}
