// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/datawire/ziphdr/pkg/cliutil"
	"github.com/datawire/ziphdr/pkg/fsutil"
	"github.com/datawire/ziphdr/pkg/reproducible"
	"github.com/datawire/ziphdr/pkg/zipfmt"
)

// headerDoc is the format of the --from-file document.
type headerDoc struct {
	zipfmt.LocalFileHeader
	ModTime *time.Time `json:"modTime,omitempty"`
}

// headerFields maps each header flag name to a function that copies that field.
var headerFields = map[string]func(dst, src *zipfmt.LocalFileHeader){
	"version-needed":     func(dst, src *zipfmt.LocalFileHeader) { dst.VersionNeeded = src.VersionNeeded },
	"flags":              func(dst, src *zipfmt.LocalFileHeader) { dst.Flags = src.Flags },
	"compression":        func(dst, src *zipfmt.LocalFileHeader) { dst.CompressionMethod = src.CompressionMethod },
	"crc32":              func(dst, src *zipfmt.LocalFileHeader) { dst.CRC32 = src.CRC32 },
	"compressed-size":    func(dst, src *zipfmt.LocalFileHeader) { dst.CompressedSize = src.CompressedSize },
	"uncompressed-size":  func(dst, src *zipfmt.LocalFileHeader) { dst.UncompressedSize = src.UncompressedSize },
	"filename-length":    func(dst, src *zipfmt.LocalFileHeader) { dst.FilenameLength = src.FilenameLength },
	"extra-field-length": func(dst, src *zipfmt.LocalFileHeader) { dst.ExtraFieldLength = src.ExtraFieldLength },
}

type headerEncodeFlags struct {
	FromFile  string
	ModTime   time.Time
	Header    zipfmt.LocalFileHeader
	Signature bool
	Hex       bool
}

func newHeaderEncodeCmd() *cobra.Command {
	var flags headerEncodeFlags
	cmd := &cobra.Command{
		Use:   "encode [flags] >OUT_HEADER",
		Short: "Write a local file header",
		Long: "Build a local file header from the given flags, and write its 26-byte " +
			"on-disk representation to stdout." +
			"\n\n" +
			"The header may instead be read from a YAML or JSON document with --from-file; " +
			"any field flags that are also given override the document.  The document " +
			"uses the same field names as `ziphdr header decode`, plus an optional " +
			"RFC 3339 `modTime` that takes precedence over lastModTime/lastModDate:" +
			"\n\n" +
			"    versionNeeded: 20\n" +
			"    flags: {encrypted: false, dataDescriptor: true}\n" +
			"    compressionMethod: 8\n" +
			"    modTime: 2021-11-13T08:15:30Z\n" +
			"    crc32: 3735928559\n" +
			"    compressedSize: 100\n" +
			"    uncompressedSize: 200\n" +
			"    filenameLength: 5\n" +
			"    extraFieldLength: 0\n" +
			"\n" +
			"Without --from-file or --mtime, the modification time is $SOURCE_DATE_EPOCH " +
			"or else the current time.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			hdr, err := buildHeader(ctx, cmd.Flags(), flags)
			if err != nil {
				return err
			}
			dlog.Debugf(ctx, "encoding local file header: %+v", hdr)

			var chunks [][]byte
			if flags.Signature {
				chunks = append(chunks, signatureBytes())
			}
			buf := hdr.Encode()
			chunks = append(chunks, buf[:])
			return fsutil.WriteRecord(cmd.OutOrStdout(), flags.Hex, chunks...)
		},
	}

	cmd.Flags().StringVar(&flags.FromFile, "from-file", "",
		"Read the header from the YAML or JSON document `IN_FILE`")
	cmd.Flags().BoolVar(&flags.Signature, "signature", false,
		`Write the "PK\x03\x04" signature before the header`)
	cmd.Flags().BoolVar(&flags.Hex, "hex", false,
		"Write the header as hexadecimal text instead of raw bytes")
	cliutil.TimeVar(cmd.Flags(), &flags.ModTime, "mtime",
		"Set the modification time to `RFC3339_TIME`")

	cmd.Flags().Uint16Var(&flags.Header.VersionNeeded, "version-needed", 20,
		"Set the version needed to extract")
	cliutil.GeneralPurposeFlagVar(cmd.Flags(), &flags.Header.Flags, "flags",
		"Set the general purpose `FLAGS` (encrypted, data-descriptor, none, or an integer)")
	cmd.Flags().Uint16Var(&flags.Header.CompressionMethod, "compression", zipfmt.Store,
		"Set the compression `METHOD` (0=store, 8=deflate)")
	cmd.Flags().Uint32Var(&flags.Header.CRC32, "crc32", 0,
		"Set the CRC-32 of the uncompressed data")
	cmd.Flags().Uint32Var(&flags.Header.CompressedSize, "compressed-size", 0,
		"Set the size of the compressed data")
	cmd.Flags().Uint32Var(&flags.Header.UncompressedSize, "uncompressed-size", 0,
		"Set the size of the uncompressed data")
	cmd.Flags().Uint16Var(&flags.Header.FilenameLength, "filename-length", 0,
		"Set the length of the file name that follows the header")
	cmd.Flags().Uint16Var(&flags.Header.ExtraFieldLength, "extra-field-length", 0,
		"Set the length of the extra field that follows the file name")

	return cmd
}

func init() {
	argparserHeader.AddCommand(newHeaderEncodeCmd())
}

func buildHeader(ctx context.Context, flagset *pflag.FlagSet, flags headerEncodeFlags) (zipfmt.LocalFileHeader, error) {
	if flags.FromFile == "" {
		hdr := flags.Header
		if flagset.Changed("mtime") {
			hdr.SetModTime(flags.ModTime)
		} else {
			hdr.SetModTime(reproducible.Now(ctx))
		}
		return hdr, nil
	}

	docBytes, err := os.ReadFile(flags.FromFile)
	if err != nil {
		return zipfmt.LocalFileHeader{}, err
	}
	var doc headerDoc
	if err := yaml.Unmarshal(docBytes, &doc, yaml.DisallowUnknownFields); err != nil {
		return zipfmt.LocalFileHeader{}, fmt.Errorf("%s: %w", flags.FromFile, err)
	}
	hdr := doc.LocalFileHeader
	if doc.ModTime != nil {
		hdr.SetModTime(*doc.ModTime)
	}
	for name, copyField := range headerFields {
		if flagset.Changed(name) {
			dlog.Debugf(ctx, "--%s overrides %s", name, flags.FromFile)
			copyField(&hdr, &flags.Header)
		}
	}
	if flagset.Changed("mtime") {
		hdr.SetModTime(flags.ModTime)
	}
	return hdr, nil
}

func signatureBytes() []byte {
	sig := make([]byte, 4)
	binary.LittleEndian.PutUint32(sig, zipfmt.LocalFileHeaderSignature)
	return sig
}
