// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"testing"

	"github.com/datawire/dlib/derror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/ziphdr/pkg/zipfmt"
)

func TestFlagsEncode(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Args   []string
		Output string
	}
	testcases := map[string]testcase{
		"none":            {nil, "0000\n"},
		"encrypted":       {[]string{"--encrypted"}, "0040\n"},
		"data-descriptor": {[]string{"--data-descriptor"}, "0010\n"},
		"both":            {[]string{"--encrypted", "--data-descriptor"}, "0050\n"},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			out, err := runCmd(t, newFlagsEncodeCmd(), tc.Args...)
			require.NoError(t, err)
			assert.Equal(t, tc.Output, out)
		})
	}
}

func TestFlagsDecode(t *testing.T) {
	t.Parallel()
	out, err := runCmd(t, newFlagsDecodeCmd(), "0", "0x1008", "0xffff", "16384")
	require.NoError(t, err)
	assert.Equal(t, ""+
		"0: none\n"+
		"0x1008: data-descriptor\n"+
		"0xffff: encrypted|data-descriptor\n"+
		"16384: encrypted\n",
		out)

	out, err = runCmd(t, newFlagsDecodeCmd(), "--bytes", "0810", "0040")
	require.NoError(t, err)
	assert.Equal(t, "0810: data-descriptor\n0040: encrypted\n", out)
}

func TestFlagsDecodeErrors(t *testing.T) {
	t.Parallel()
	_, err := runCmd(t, newFlagsDecodeCmd(), "--bytes", "001000")
	assert.True(t, errors.Is(err, zipfmt.ErrLength), "%v", err)

	_, err = runCmd(t, newFlagsDecodeCmd(), "--bytes", "zz")
	assert.Error(t, err)

	_, err = runCmd(t, newFlagsDecodeCmd(), "0x10000")
	assert.Error(t, err)
}

func TestFlagsDecodeContinuesPastErrors(t *testing.T) {
	t.Parallel()
	out, err := runCmd(t, newFlagsDecodeCmd(), "0x1008", "bogus", "0x4000", "0x10000")
	require.Error(t, err)
	var errs derror.MultiError
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), `"bogus"`)
	assert.Contains(t, errs[1].Error(), `"0x10000"`)
	assert.Equal(t, "0x1008: data-descriptor\n0x4000: encrypted\n", out)
}
