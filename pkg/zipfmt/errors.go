// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package zipfmt

import (
	"errors"
	"fmt"
)

// ErrLength is matched (via errors.Is) by every *LengthError.
var ErrLength = errors.New("wrong record length")

// A LengthError is returned when asked to decode a buffer that is not exactly the size of the
// record being decoded.
type LengthError struct {
	Record string
	Want   int
	Got    int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("zip %s: %v: need exactly %d bytes, got %d", e.Record, ErrLength, e.Want, e.Got)
}

// Is implements the interface for errors.Is.
func (e *LengthError) Is(target error) bool {
	return target == ErrLength
}

func checkLen(record string, want int, buf []byte) error {
	if len(buf) != want {
		return &LengthError{
			Record: record,
			Want:   want,
			Got:    len(buf),
		}
	}
	return nil
}
