// Copyright (C) 2020  Ambassador Labs (for Telepresence)
// Copyright (C) 2021-2022  Ambassador Labs (for ocibuild and ziphdr)
//
// SPDX-License-Identifier: Apache-2.0
//
// Based on
// https://github.com/telepresenceio/telepresence/blob/b6dfa04ff014915b47386191cc3d8b1352522fea/pkg/client/cli/command_group.go#L35-L63

package cliutil

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// GetTerminalWidth returns the width of the terminal that help text should be wrapped to, or 0
// for "don't wrap".
//
// In order of precedence:
//  1. $COLUMNS, if it is set to a non-negative integer
//  2. the size of the terminal on stdout
//  3. 80, if stdout is a terminal but its size can't be determined
//  4. 0, if stdout isn't a terminal
func GetTerminalWidth() int {
	// Copyright note: This code was originally written by LukeShu for Telepresence.
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols >= 0 {
		return cols
	}

	fd := int(os.Stdout.Fd())
	if cols, _, err := term.GetSize(fd); err == nil {
		return cols
	}
	if term.IsTerminal(fd) {
		return 80
	}
	return 0
}
