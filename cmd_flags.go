// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/datawire/dlib/derror"
	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/datawire/ziphdr/pkg/cliutil"
	"github.com/datawire/ziphdr/pkg/fsutil"
	"github.com/datawire/ziphdr/pkg/zipfmt"
)

var argparserFlags = &cobra.Command{
	Use:   "flags {[flags]|SUBCOMMAND...}",
	Short: "Encode and decode the 2-byte general purpose bit flag",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func newFlagsEncodeCmd() *cobra.Command {
	var flags zipfmt.GeneralPurposeFlag
	cmd := &cobra.Command{
		Use:   "encode [flags]",
		Short: "Print the on-disk bytes of a general purpose bit flag, as hex",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			buf := flags.Encode()
			return fsutil.WriteRecord(cmd.OutOrStdout(), true, buf[:])
		},
	}
	cmd.Flags().BoolVar(&flags.Encrypted, "encrypted", false,
		"Set bit 14 (the payload is encrypted)")
	cmd.Flags().BoolVar(&flags.DataDescriptor, "data-descriptor", false,
		"Set bit 12 (the CRC and sizes follow the payload)")
	return cmd
}

func newFlagsDecodeCmd() *cobra.Command {
	var flagBytes bool
	cmd := &cobra.Command{
		Use:   "decode [flags] VALUE...",
		Short: "Print which general purpose flags a value has set",
		Long: "Print which general purpose flags each VALUE has set.  A VALUE is an integer " +
			"such as 4104 or 0x1008; or, with --bytes, the 2 on-disk bytes as hex (such " +
			"as 0810).  Bits other than 12 and 14 are ignored.",
		Args: cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decodeFlagValues(cmd.Context(), cmd.OutOrStdout(), flagBytes, args)
		},
	}
	cmd.Flags().BoolVar(&flagBytes, "bytes", false,
		"Parse each VALUE as hex-encoded little-endian bytes rather than as an integer")
	return cmd
}

func decodeFlagValues(ctx context.Context, stdout io.Writer, asBytes bool, args []string) error {
	var errs derror.MultiError
	for _, arg := range args {
		val, err := parseFlagValue(arg, asBytes)
		if err != nil {
			dlog.Debugf(ctx, "skipping %q: %v", arg, err)
			errs = append(errs, err)
			continue
		}
		if _, err := fmt.Fprintf(stdout, "%s: %s\n", arg, val); err != nil {
			return err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func parseFlagValue(arg string, asBytes bool) (zipfmt.GeneralPurposeFlag, error) {
	if asBytes {
		buf, err := hex.DecodeString(arg)
		if err != nil {
			return zipfmt.GeneralPurposeFlag{}, fmt.Errorf("invalid flag bytes %q: %w", arg, err)
		}
		return zipfmt.DecodeGeneralPurposeFlag(buf)
	}
	raw, err := strconv.ParseUint(arg, 0, 16)
	if err != nil {
		return zipfmt.GeneralPurposeFlag{}, fmt.Errorf("invalid flag value %q: %w", arg, err)
	}
	return zipfmt.ParseGeneralPurposeFlag(uint16(raw)), nil
}

func init() {
	argparserFlags.AddCommand(newFlagsEncodeCmd())
	argparserFlags.AddCommand(newFlagsDecodeCmd())
	argparser.AddCommand(argparserFlags)
}
