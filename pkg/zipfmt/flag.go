// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package zipfmt

import (
	"encoding/binary"
	"strings"
)

// GeneralPurposeFlagLen is the size of an encoded GeneralPurposeFlag.
const GeneralPurposeFlagLen = 2

const (
	flagDataDescriptor uint16 = 1 << 12
	flagEncrypted      uint16 = 1 << 14
)

// A GeneralPurposeFlag represents the "general purpose bit flag" field of a local file header.
//
// Only two of the bits are represented; all other bits are dropped when decoding and written as
// zero when encoding.
type GeneralPurposeFlag struct {
	// Encrypted is bit 14; the entry's payload is encrypted.
	Encrypted bool `json:"encrypted" yaml:"encrypted"`
	// DataDescriptor is bit 12; the CRC and sizes are in a data descriptor that follows the
	// payload, rather than in the header.
	DataDescriptor bool `json:"dataDescriptor" yaml:"dataDescriptor"`
}

// Raw turns a GeneralPurposeFlag struct in to an unstructured 16-bit unsigned integer.
func (f GeneralPurposeFlag) Raw() uint16 {
	var raw uint16
	if f.Encrypted {
		raw |= flagEncrypted
	}
	if f.DataDescriptor {
		raw |= flagDataDescriptor
	}
	return raw
}

// ParseGeneralPurposeFlag turns an unstructured 16-bit unsigned integer in to a GeneralPurposeFlag
// struct.  Bits other than 12 and 14 are ignored.
func ParseGeneralPurposeFlag(raw uint16) GeneralPurposeFlag {
	return GeneralPurposeFlag{
		Encrypted:      raw&flagEncrypted != 0,
		DataDescriptor: raw&flagDataDescriptor != 0,
	}
}

// Encode returns the on-disk representation of f.
func (f GeneralPurposeFlag) Encode() [GeneralPurposeFlagLen]byte {
	var buf [GeneralPurposeFlagLen]byte
	binary.LittleEndian.PutUint16(buf[:], f.Raw())
	return buf
}

// DecodeGeneralPurposeFlag parses the on-disk representation of a GeneralPurposeFlag.  buf must
// be exactly GeneralPurposeFlagLen bytes long, or a *LengthError is returned.
func DecodeGeneralPurposeFlag(buf []byte) (GeneralPurposeFlag, error) {
	if err := checkLen("general purpose flag", GeneralPurposeFlagLen, buf); err != nil {
		return GeneralPurposeFlag{}, err
	}
	return ParseGeneralPurposeFlag(binary.LittleEndian.Uint16(buf)), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.  It never returns an error.
func (f GeneralPurposeFlag) MarshalBinary() ([]byte, error) {
	buf := f.Encode()
	return buf[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (f *GeneralPurposeFlag) UnmarshalBinary(data []byte) error {
	val, err := DecodeGeneralPurposeFlag(data)
	if err != nil {
		return err
	}
	*f = val
	return nil
}

// String returns the set flags joined by "|", or "none" if no flags are set.
func (f GeneralPurposeFlag) String() string {
	var names []string
	if f.Encrypted {
		names = append(names, "encrypted")
	}
	if f.DataDescriptor {
		names = append(names, "data-descriptor")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
