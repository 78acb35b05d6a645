// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package zipfmt implements the fixed-size "local file header" record of the ZIP file format[1],
// and the "general purpose bit flag" field embedded within it.
//
// Only the 26 bytes that follow the 4-byte local file header signature are handled here.  Reading
// the signature, the variable-length file name and extra field that follow the record, and the
// entry payload itself is left to the caller; as is checking that the values in a header make sense
// for the archive they came from.
//
// Every multi-byte integer is little-endian.
//
// [1]: https://www.pkware.com/appnote
package zipfmt
