// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/datawire/dlib/derror"
	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/datawire/ziphdr/pkg/cliutil"
	"github.com/datawire/ziphdr/pkg/fsutil"
	"github.com/datawire/ziphdr/pkg/zipfmt"
)

type decodedHeader struct {
	File   string                 `yaml:"file"`
	Offset int64                  `yaml:"offset"`
	Header zipfmt.LocalFileHeader `yaml:"header"`

	// informative fields, derived from Header
	ModTime  string `yaml:"modTime"`
	CRC32Hex string `yaml:"crc32Hex"`
}

type headerDecodeFlags struct {
	Offset    int64
	Signature bool
}

func newHeaderDecodeCmd() *cobra.Command {
	var flags headerDecodeFlags
	cmd := &cobra.Command{
		Use:   "decode [flags] IN_FILE... >OUT_HEADERS.yml",
		Short: "Dump local file headers as YAML",
		Long: "Read the 26-byte local file header found at --offset in each IN_FILE (use " +
			"\"-\" for stdin), and dump it as a YAML document." +
			"\n\n" +
			"The header is the record that directly follows the \"PK\\x03\\x04\" " +
			"signature; by default --offset should point just past the signature.  With " +
			"--signature, --offset should point at the signature itself, which is verified." +
			"\n\n" +
			"Each file is decoded independently; a failure for one file does not prevent " +
			"dumping the others.",
		Args: cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decodeHeaders(cmd.Context(), cmd.OutOrStdout(), flags, args)
		},
	}
	cmd.Flags().Int64Var(&flags.Offset, "offset", 0,
		"Read the header starting `N` bytes in to each file")
	cmd.Flags().BoolVar(&flags.Signature, "signature", false,
		"Expect the 4-byte signature at --offset, before the header")
	return cmd
}

func init() {
	argparserHeader.AddCommand(newHeaderDecodeCmd())
}

func decodeHeaders(ctx context.Context, stdout io.Writer, flags headerDecodeFlags, filenames []string) error {
	var errs derror.MultiError
	for _, filename := range filenames {
		hdr, err := decodeHeaderFile(filename, flags)
		if err != nil {
			dlog.Debugf(ctx, "skipping %q: %v", filename, err)
			errs = append(errs, err)
			continue
		}
		doc, err := yaml.Marshal(decodedHeader{
			File:     filename,
			Offset:   flags.Offset,
			Header:   hdr,
			ModTime:  hdr.ModTime().Format(time.RFC3339),
			CRC32Hex: fmt.Sprintf("%#08x", hdr.CRC32),
		})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(stdout, "---\n%s", doc); err != nil {
			return err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func decodeHeaderFile(filename string, flags headerDecodeFlags) (zipfmt.LocalFileHeader, error) {
	size := zipfmt.LocalFileHeaderLen
	if flags.Signature {
		size += 4
	}
	window, err := fsutil.ReadWindow(filename, flags.Offset, size)
	if err != nil {
		return zipfmt.LocalFileHeader{}, err
	}
	if flags.Signature {
		if sig := binary.LittleEndian.Uint32(window); sig != zipfmt.LocalFileHeaderSignature {
			return zipfmt.LocalFileHeader{}, fmt.Errorf("%s: offset %d: invalid local file header signature: %#08x",
				filename, flags.Offset, sig)
		}
		window = window[4:]
	}
	hdr, err := zipfmt.DecodeLocalFileHeader(window)
	if err != nil {
		return zipfmt.LocalFileHeader{}, fmt.Errorf("%s: %w", filename, err)
	}
	return hdr, nil
}
