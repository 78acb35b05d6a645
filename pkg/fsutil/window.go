// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// ReadWindow returns exactly size bytes of filename, starting offset bytes in.  If the file is
// too short, the returned *fs.PathError wraps io.ErrUnexpectedEOF.
func ReadWindow(filename string, offset int64, size int) (_ []byte, err error) {
	pathErr := func(err error) error {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("%w: need %d bytes at offset %d", io.ErrUnexpectedEOF, size, offset)
		}
		return &fs.PathError{
			Op:   "read window",
			Path: filename,
			Err:  err,
		}
	}
	if offset < 0 || size < 0 {
		return nil, pathErr(fmt.Errorf("invalid window: offset=%d size=%d", offset, size))
	}

	reader, err := PathOpener(filename)()
	if err != nil {
		return nil, pathErr(err)
	}
	defer func() {
		if _err := reader.Close(); _err != nil && err == nil {
			err = pathErr(_err)
		}
	}()

	buf := make([]byte, size)
	if readerAt, ok := reader.(io.ReaderAt); ok {
		if _, err := readerAt.ReadAt(buf, offset); err != nil {
			return nil, pathErr(err)
		}
		return buf, nil
	}
	if _, err := io.CopyN(io.Discard, reader, offset); err != nil {
		return nil, pathErr(err)
	}
	if _, err := io.ReadFull(reader, buf); err != nil {
		return nil, pathErr(err)
	}
	return buf, nil
}
