// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"encoding/hex"
	"io"
)

// WriteRecord writes the concatenation of chunks to dst.  If asHex is set, the bytes are written
// as lowercase hexadecimal followed by a newline, instead of as raw bytes.
func WriteRecord(dst io.Writer, asHex bool, chunks ...[]byte) error {
	w := dst
	if asHex {
		w = hex.NewEncoder(dst)
	}
	for _, chunk := range chunks {
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}
	if asHex {
		if _, err := io.WriteString(dst, "\n"); err != nil {
			return err
		}
	}
	return nil
}
