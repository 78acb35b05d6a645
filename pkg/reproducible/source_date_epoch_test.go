// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package reproducible

import (
	"testing"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()
	fallback := time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := func() time.Time { return fallback }
	type testcase struct {
		Env    map[string]string
		Output time.Time
	}
	testcases := map[string]testcase{
		"unset":    {map[string]string{}, fallback},
		"empty":    {map[string]string{"SOURCE_DATE_EPOCH": ""}, fallback},
		"set":      {map[string]string{"SOURCE_DATE_EPOCH": "1636791330"}, time.Date(2021, 11, 13, 8, 15, 30, 0, time.UTC)},
		"zero":     {map[string]string{"SOURCE_DATE_EPOCH": "0"}, time.Unix(0, 0).UTC()},
		"invalid":  {map[string]string{"SOURCE_DATE_EPOCH": "yesterday"}, fallback},
		"fraction": {map[string]string{"SOURCE_DATE_EPOCH": "1.5"}, fallback},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			ctx := dlog.NewTestContext(t, false)
			lookupEnv := func(key string) (string, bool) {
				val, ok := tc.Env[key]
				return val, ok
			}
			act := resolve(ctx, lookupEnv, clock)
			assert.True(t, tc.Output.Equal(act), "expected %v, got %v", tc.Output, act)
		})
	}
}
