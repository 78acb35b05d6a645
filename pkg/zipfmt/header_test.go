// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package zipfmt_test

import (
	"encoding"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/ziphdr/pkg/testutil"
	"github.com/datawire/ziphdr/pkg/zipfmt"
)

var (
	goldenHeader = zipfmt.LocalFileHeader{
		VersionNeeded:     20,
		Flags:             zipfmt.GeneralPurposeFlag{DataDescriptor: true},
		CompressionMethod: zipfmt.Deflate,
		CRC32:             0xDEADBEEF,
		CompressedSize:    100,
		UncompressedSize:  200,
		FilenameLength:    5,
		ExtraFieldLength:  0,
	}
	goldenBytes = []byte{
		0x14, 0x00, // version needed
		0x00, 0x10, // flags
		0x08, 0x00, // compression method
		0x00, 0x00, // mod time
		0x00, 0x00, // mod date
		0xef, 0xbe, 0xad, 0xde, // crc-32
		0x64, 0x00, 0x00, 0x00, // compressed size
		0xc8, 0x00, 0x00, 0x00, // uncompressed size
		0x05, 0x00, // file name length
		0x00, 0x00, // extra field length
	}
)

var (
	_ encoding.BinaryMarshaler   = zipfmt.LocalFileHeader{}
	_ encoding.BinaryUnmarshaler = (*zipfmt.LocalFileHeader)(nil)
	_ encoding.BinaryMarshaler   = zipfmt.GeneralPurposeFlag{}
	_ encoding.BinaryUnmarshaler = (*zipfmt.GeneralPurposeFlag)(nil)
)

func TestLocalFileHeaderGolden(t *testing.T) {
	t.Parallel()
	buf := goldenHeader.Encode()
	testutil.AssertEqualDump(t, goldenBytes, buf[:])

	act, err := zipfmt.DecodeLocalFileHeader(goldenBytes)
	require.NoError(t, err)
	testutil.AssertEqualDump(t, goldenHeader, act)
}

// Every field is laid out LSB-first at a fixed offset, regardless of the host's byte order.
func TestLocalFileHeaderLayout(t *testing.T) {
	t.Parallel()
	hdr := zipfmt.LocalFileHeader{
		VersionNeeded:     0x0201,
		Flags:             zipfmt.GeneralPurposeFlag{Encrypted: true, DataDescriptor: true},
		CompressionMethod: 0x0605,
		LastModTime:       0x0807,
		LastModDate:       0x0a09,
		CRC32:             0x0e0d0c0b,
		CompressedSize:    0x1211100f,
		UncompressedSize:  0x16151413,
		FilenameLength:    0x1817,
		ExtraFieldLength:  0x1a19,
	}
	exp := []byte{
		0x01, 0x02,
		0x00, 0x50,
		0x05, 0x06,
		0x07, 0x08,
		0x09, 0x0a,
		0x0b, 0x0c, 0x0d, 0x0e,
		0x0f, 0x10, 0x11, 0x12,
		0x13, 0x14, 0x15, 0x16,
		0x17, 0x18,
		0x19, 0x1a,
	}
	buf := hdr.Encode()
	testutil.AssertEqualDump(t, exp, buf[:])
}

func TestLocalFileHeaderRoundTrip(t *testing.T) {
	t.Parallel()
	testutil.QuickCheckEqual(t,
		func(h zipfmt.LocalFileHeader) zipfmt.LocalFileHeader {
			buf := h.Encode()
			act, err := zipfmt.DecodeLocalFileHeader(buf[:])
			if err != nil {
				return zipfmt.LocalFileHeader{}
			}
			return act
		},
		func(h zipfmt.LocalFileHeader) zipfmt.LocalFileHeader {
			return h
		},
		testutil.QuickConfig{MaxCount: 1000},
		[]interface{}{goldenHeader},
		[]interface{}{zipfmt.LocalFileHeader{}},
	)
}

func TestLocalFileHeaderDecodeNeverFailsOn26Bytes(t *testing.T) {
	t.Parallel()
	testutil.QuickCheck(t, func(buf [zipfmt.LocalFileHeaderLen]byte) bool {
		hdr, err := zipfmt.DecodeLocalFileHeader(buf[:])
		if err != nil {
			return false
		}
		// Only the unrepresented flag bits may be lost.
		enc := hdr.Encode()
		enc[2] = buf[2]
		enc[3] = (enc[3] & 0x50) | (buf[3] &^ 0x50)
		return enc == buf
	}, testutil.QuickConfig{MaxCount: 1000})
}

func TestLocalFileHeaderLength(t *testing.T) {
	t.Parallel()
	for _, size := range []int{0, 2, 25, 27, 30} {
		size := size
		t.Run(fmt.Sprint(size), func(t *testing.T) {
			t.Parallel()
			_, err := zipfmt.DecodeLocalFileHeader(make([]byte, size))
			require.Error(t, err)
			assert.True(t, errors.Is(err, zipfmt.ErrLength))
			var lerr *zipfmt.LengthError
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, "local file header", lerr.Record)
			assert.Equal(t, zipfmt.LocalFileHeaderLen, lerr.Want)
			assert.Equal(t, size, lerr.Got)
			assert.Equal(t,
				fmt.Sprintf("zip local file header: wrong record length: need exactly 26 bytes, got %d", size),
				err.Error())
		})
	}
	_, err := zipfmt.DecodeLocalFileHeader(nil)
	assert.True(t, errors.Is(err, zipfmt.ErrLength))
}

func TestLocalFileHeaderWindow(t *testing.T) {
	t.Parallel()
	// signature + header + file name, as it would appear at the start of an archive.
	archive := []byte{0x50, 0x4b, 0x03, 0x04}
	archive = goldenHeader.AppendEncode(archive)
	archive = append(archive, "hello"...)
	require.Len(t, archive, 4+zipfmt.LocalFileHeaderLen+5)

	_, err := zipfmt.DecodeLocalFileHeader(archive)
	assert.Error(t, err, "the whole archive is not a valid window")

	hdr, err := zipfmt.DecodeLocalFileHeader(archive[4 : 4+zipfmt.LocalFileHeaderLen])
	require.NoError(t, err)
	assert.Equal(t, goldenHeader, hdr)
	name := archive[4+zipfmt.LocalFileHeaderLen:][:hdr.FilenameLength]
	assert.Equal(t, "hello", string(name))
}

func TestLocalFileHeaderBinaryMarshaler(t *testing.T) {
	t.Parallel()
	data, err := goldenHeader.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, goldenBytes, data)

	var hdr zipfmt.LocalFileHeader
	require.NoError(t, hdr.UnmarshalBinary(data))
	assert.Equal(t, goldenHeader, hdr)

	err = hdr.UnmarshalBinary(data[:25])
	assert.True(t, errors.Is(err, zipfmt.ErrLength))
	assert.Equal(t, goldenHeader, hdr, "failed unmarshal should not modify the receiver")
}

func ExampleLocalFileHeader_Encode() {
	hdr := zipfmt.LocalFileHeader{
		VersionNeeded:     20,
		Flags:             zipfmt.GeneralPurposeFlag{DataDescriptor: true},
		CompressionMethod: zipfmt.Deflate,
		CRC32:             0xDEADBEEF,
		CompressedSize:    100,
		UncompressedSize:  200,
		FilenameLength:    5,
	}
	buf := hdr.Encode()
	fmt.Printf("% x\n", buf)
	// Output: 14 00 00 10 08 00 00 00 00 00 ef be ad de 64 00 00 00 c8 00 00 00 05 00 00 00
}

func ExampleDecodeLocalFileHeader() {
	hdr, err := zipfmt.DecodeLocalFileHeader([]byte{
		0x14, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00, 0x00, 0x21, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x03, 0x00,
		0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(hdr.VersionNeeded, hdr.Flags, hdr.UncompressedSize, hdr.ModTime().Format("2006-01-02"))
	// Output: 20 encrypted 3 1980-01-01
}
