// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/datawire/ziphdr/pkg/zipfmt"
)

type gpFlagValue zipfmt.GeneralPurposeFlag

// GeneralPurposeFlagVar defines a flag that sets a zipfmt.GeneralPurposeFlag.
//
// The flag accepts either a comma- or pipe-separated list of the names "encrypted",
// "data-descriptor", and "none" (as printed by zipfmt.GeneralPurposeFlag.String), or a raw 16-bit
// integer such as "0x1000" (bits that GeneralPurposeFlag does not represent are ignored).  Each use
// of the flag replaces the previous value.
func GeneralPurposeFlagVar(flags *pflag.FlagSet, p *zipfmt.GeneralPurposeFlag, name, usage string) {
	flags.Var((*gpFlagValue)(p), name, usage)
}

func (v *gpFlagValue) String() string {
	return (*zipfmt.GeneralPurposeFlag)(v).String()
}

func (v *gpFlagValue) Set(str string) error {
	if raw, err := strconv.ParseUint(str, 0, 16); err == nil {
		*v = gpFlagValue(zipfmt.ParseGeneralPurposeFlag(uint16(raw)))
		return nil
	}
	var val zipfmt.GeneralPurposeFlag
	for _, name := range strings.FieldsFunc(str, func(r rune) bool { return r == ',' || r == '|' }) {
		switch strings.TrimSpace(name) {
		case "encrypted":
			val.Encrypted = true
		case "data-descriptor":
			val.DataDescriptor = true
		case "none":
			// nothing to do
		default:
			return fmt.Errorf("invalid general purpose flag %q: must be one of "+
				"\"encrypted\", \"data-descriptor\", \"none\", or an integer", name)
		}
	}
	*v = gpFlagValue(val)
	return nil
}

func (*gpFlagValue) Type() string {
	return "flags"
}

type timeValue time.Time

// TimeVar defines a flag that sets a time.Time, given in RFC 3339 format.  The zero value is
// displayed as an empty string.
func TimeVar(flags *pflag.FlagSet, p *time.Time, name, usage string) {
	flags.Var((*timeValue)(p), name, usage)
}

func (v *timeValue) String() string {
	t := (*time.Time)(v)
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func (v *timeValue) Set(str string) error {
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return err
	}
	*v = timeValue(t)
	return nil
}

func (*timeValue) Type() string {
	return "timestamp"
}
