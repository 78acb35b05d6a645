// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package zipfmt

import (
	"time"
)

// The MS-DOS date has a 7-bit year counted from 1980.
const (
	dosMinYear = 1980
	dosMaxYear = dosMinYear + 0x7f
)

// DOSDateTime converts t to an MS-DOS time and date, in the wall-clock of t's location.
//
// MS-DOS timestamps have a 2-second resolution, so odd seconds are rounded down.  Times before
// 1980 are clamped to 1980-01-01 00:00:00, and times after 2107 are clamped to 2107-12-31 23:59:58.
func DOSDateTime(t time.Time) (modTime, modDate uint16) {
	switch {
	case t.Year() < dosMinYear:
		return 0, 1<<5 | 1
	case t.Year() > dosMaxYear:
		t = time.Date(dosMaxYear, 12, 31, 23, 59, 58, 0, t.Location())
	}
	modDate = uint16((t.Year()-dosMinYear)<<9 | int(t.Month())<<5 | t.Day())
	modTime = uint16(t.Hour()<<11 | t.Minute()<<5 | t.Second()/2)
	return modTime, modDate
}

// TimeFromDOS converts an MS-DOS time and date to a time.Time in UTC (MS-DOS timestamps carry no
// zone information).  Out-of-range fields are normalized the same way time.Date normalizes them.
func TimeFromDOS(modTime, modDate uint16) time.Time {
	return time.Date(
		int(modDate>>9)+dosMinYear,
		time.Month(modDate>>5&0xf),
		int(modDate&0x1f),

		int(modTime>>11),
		int(modTime>>5&0x3f),
		int(modTime&0x1f)*2,
		0, // nanoseconds

		time.UTC)
}

// ModTime returns the header's modification time, in UTC.
func (h LocalFileHeader) ModTime() time.Time {
	return TimeFromDOS(h.LastModTime, h.LastModDate)
}

// SetModTime sets the header's MS-DOS modification time and date from t.
func (h *LocalFileHeader) SetModTime(t time.Time) {
	h.LastModTime, h.LastModDate = DOSDateTime(t)
}
