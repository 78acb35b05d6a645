// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package reproducible provides the timestamp to use for generated output, as described by
// https://reproducible-builds.org/specs/source-date-epoch/.
package reproducible

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/datawire/dlib/dlog"
)

var (
	nowOnce sync.Once
	now     time.Time
)

// Now returns the time to stamp on generated output: SOURCE_DATE_EPOCH if it is set and valid,
// or else the current time.  The value is computed once per process; later calls return the same
// value.
func Now(ctx context.Context) time.Time {
	nowOnce.Do(func() {
		now = resolve(ctx, os.LookupEnv, time.Now)
	})
	return now
}

func resolve(ctx context.Context, lookupEnv func(string) (string, bool), clock func() time.Time) time.Time {
	str, ok := lookupEnv("SOURCE_DATE_EPOCH")
	if !ok || str == "" {
		return clock()
	}
	secs, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		dlog.Warnf(ctx, "ignoring invalid SOURCE_DATE_EPOCH=%q: %v", str, err)
		return clock()
	}
	return time.Unix(secs, 0).UTC()
}
