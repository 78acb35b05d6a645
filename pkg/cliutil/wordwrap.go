// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"strings"
	"unicode/utf8"
)

// Wrap the string `s` to a maximum width `w`.  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// Wrap the string `s` to a maximum width `w` with leading indent `i`.  The first line is not
// indented (this is assumed to be done by caller).  Pass `w` == 0 to do no wrapping
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// lines are actually wrapped to `w - 5`.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

// wrap breaks lines on spaces.  Spacing within a line is preserved, trailing spaces are dropped,
// and a word that is longer than the limit is put on a line by itself rather than being split.
func wrap(indent, width int, s string) string {
	if width == 0 {
		return s
	}
	limit := width - 5
	indentStr := strings.Repeat(" ", indent)

	var ret strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			ret.WriteString("\n")
			ret.WriteString(indentStr)
		}
		col := indent
		first := true
		for rest := line; rest != ""; {
			trimmed := strings.TrimLeft(rest, " ")
			if trimmed == "" {
				break
			}
			sep := rest[:len(rest)-len(trimmed)]
			end := strings.IndexByte(trimmed, ' ')
			if end < 0 {
				end = len(trimmed)
			}
			word := trimmed[:end]
			rest = trimmed[end:]

			wordLen := utf8.RuneCountInString(word)
			sepLen := len(sep)
			switch {
			case first || col+sepLen+wordLen <= limit:
				ret.WriteString(sep)
				ret.WriteString(word)
				col += sepLen + wordLen
			default:
				ret.WriteString("\n")
				ret.WriteString(indentStr)
				ret.WriteString(word)
				col = indent + wordLen
			}
			first = false
		}
	}
	return ret.String()
}
