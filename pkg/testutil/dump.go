// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// Dump returns a stable, multi-line textual representation of v, suitable for diffing.  Byte
// slices and byte arrays are rendered as a hex dump, everything else is rendered by spew with
// Stringer methods disabled (so that, for instance, the individual bits of a flag struct are
// visible).
func Dump(v interface{}) string {
	if buf, ok := v.([]byte); ok {
		return hex.Dump(buf)
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		buf := make([]byte, rv.Len())
		for i := range buf {
			buf[i] = byte(rv.Index(i).Uint())
		}
		return hex.Dump(buf)
	}
	return spewConfig.Sdump(v)
}

// AssertEqualDump is like assert.Equal, but reports a failure as a unified diff of the Dump of
// each value rather than as a single-line representation.
func AssertEqualDump(t *testing.T, exp, act interface{}) bool {
	t.Helper()

	expStr := Dump(exp)
	actStr := Dump(act)
	if expStr == actStr {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expStr),
		B:        difflib.SplitLines(actStr),
		FromFile: "Expected",
		FromDate: "",
		ToFile:   "Actual",
		ToDate:   "",
		Context:  1,
	})
	t.Errorf("Dump diff:\n%s", diff)
	return false
}
