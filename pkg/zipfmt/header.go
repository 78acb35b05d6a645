// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package zipfmt

import (
	"encoding/binary"
)

const (
	// LocalFileHeaderSignature is the 4 bytes ("PK\x03\x04") that precede every local file
	// header.  It is not part of the LocalFileHeaderLen bytes.
	LocalFileHeaderSignature uint32 = 0x04034b50

	// LocalFileHeaderLen is the size of an encoded LocalFileHeader.
	LocalFileHeaderLen = 26
)

// A CompressionMethod identifies how an entry's payload is compressed.
type CompressionMethod = uint16

// Compression methods.
const (
	Store   CompressionMethod = 0 // no compression
	Deflate CompressionMethod = 8 // DEFLATE compressed
)

// A LocalFileHeader is the fixed-size part of the record that precedes each entry's payload in a
// ZIP archive.
//
// Any combination of values is representable; nothing here checks that the values agree with the
// name, extra field, or payload that they describe.
type LocalFileHeader struct {
	VersionNeeded     uint16             `json:"versionNeeded" yaml:"versionNeeded"`
	Flags             GeneralPurposeFlag `json:"flags" yaml:"flags"`
	CompressionMethod CompressionMethod  `json:"compressionMethod" yaml:"compressionMethod"`
	LastModTime       uint16             `json:"lastModTime" yaml:"lastModTime"` // MS-DOS time
	LastModDate       uint16             `json:"lastModDate" yaml:"lastModDate"` // MS-DOS date
	CRC32             uint32             `json:"crc32" yaml:"crc32"`
	CompressedSize    uint32             `json:"compressedSize" yaml:"compressedSize"`
	UncompressedSize  uint32             `json:"uncompressedSize" yaml:"uncompressedSize"`
	FilenameLength    uint16             `json:"filenameLength" yaml:"filenameLength"`
	ExtraFieldLength  uint16             `json:"extraFieldLength" yaml:"extraFieldLength"`
}

// Byte offsets of each field within the encoded header.
const (
	offVersionNeeded     = 0
	offFlags             = 2
	offCompressionMethod = 4
	offLastModTime       = 6
	offLastModDate       = 8
	offCRC32             = 10
	offCompressedSize    = 14
	offUncompressedSize  = 18
	offFilenameLength    = 22
	offExtraFieldLength  = 24
)

// Encode returns the on-disk representation of h.
func (h LocalFileHeader) Encode() [LocalFileHeaderLen]byte {
	var buf [LocalFileHeaderLen]byte
	le := binary.LittleEndian
	le.PutUint16(buf[offVersionNeeded:], h.VersionNeeded)
	flags := h.Flags.Encode()
	copy(buf[offFlags:], flags[:])
	le.PutUint16(buf[offCompressionMethod:], h.CompressionMethod)
	le.PutUint16(buf[offLastModTime:], h.LastModTime)
	le.PutUint16(buf[offLastModDate:], h.LastModDate)
	le.PutUint32(buf[offCRC32:], h.CRC32)
	le.PutUint32(buf[offCompressedSize:], h.CompressedSize)
	le.PutUint32(buf[offUncompressedSize:], h.UncompressedSize)
	le.PutUint16(buf[offFilenameLength:], h.FilenameLength)
	le.PutUint16(buf[offExtraFieldLength:], h.ExtraFieldLength)
	return buf
}

// AppendEncode appends the on-disk representation of h to dst and returns the extended buffer.
func (h LocalFileHeader) AppendEncode(dst []byte) []byte {
	buf := h.Encode()
	return append(dst, buf[:]...)
}

// DecodeLocalFileHeader parses the on-disk representation of a LocalFileHeader.  buf must be
// exactly LocalFileHeaderLen bytes long (not including the signature), or a *LengthError is
// returned; callers reading from a larger buffer should slice out the window themselves.
func DecodeLocalFileHeader(buf []byte) (LocalFileHeader, error) {
	if err := checkLen("local file header", LocalFileHeaderLen, buf); err != nil {
		return LocalFileHeader{}, err
	}
	flags, err := DecodeGeneralPurposeFlag(buf[offFlags:offCompressionMethod])
	if err != nil {
		// can't happen; the slice is always the right size
		return LocalFileHeader{}, err
	}
	le := binary.LittleEndian
	return LocalFileHeader{
		VersionNeeded:     le.Uint16(buf[offVersionNeeded:]),
		Flags:             flags,
		CompressionMethod: le.Uint16(buf[offCompressionMethod:]),
		LastModTime:       le.Uint16(buf[offLastModTime:]),
		LastModDate:       le.Uint16(buf[offLastModDate:]),
		CRC32:             le.Uint32(buf[offCRC32:]),
		CompressedSize:    le.Uint32(buf[offCompressedSize:]),
		UncompressedSize:  le.Uint32(buf[offUncompressedSize:]),
		FilenameLength:    le.Uint16(buf[offFilenameLength:]),
		ExtraFieldLength:  le.Uint16(buf[offExtraFieldLength:]),
	}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.  It never returns an error.
func (h LocalFileHeader) MarshalBinary() ([]byte, error) {
	buf := h.Encode()
	return buf[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *LocalFileHeader) UnmarshalBinary(data []byte) error {
	val, err := DecodeLocalFileHeader(data)
	if err != nil {
		return err
	}
	*h = val
	return nil
}
