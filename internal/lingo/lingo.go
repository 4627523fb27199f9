// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package lingo implements the multilingual text processing shared by all
// analysis packages: script classification, mixed English/Japanese
// tokenization, stop word filtering and word counting.
//
// All functions are pure: they accept a string, return a value, and keep no
// state between calls.  Empty input always degrades to zero values, never to
// a panic.
package lingo

// In this file: character classification and language content detection.

import "github.com/rusq/slackinsight/types"

// Language is the primary language of a text.
type Language string

const (
	Japanese Language = "japanese"
	English  Language = "english"
)

// Content describes the script composition of a text.
type Content struct {
	HasJapanese     bool     `json:"has_japanese"`
	HasEnglish      bool     `json:"has_english"`
	MixedLanguage   bool     `json:"mixed_language"`
	PrimaryLanguage Language `json:"primary_language"`
}

// IsJapaneseChar reports whether r is a Japanese character: Hiragana,
// Katakana or a CJK unified ideograph.
func IsJapaneseChar(r rune) bool {
	return (0x3040 <= r && r <= 0x309F) || // hiragana
		(0x30A0 <= r && r <= 0x30FF) || // katakana
		(0x4E00 <= r && r <= 0x9FAF) // CJK unified ideographs
}

// isASCIILetter reports whether r is an ASCII letter.
func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// isASCIIAlnum reports whether r is an ASCII letter or digit.
func isASCIIAlnum(r rune) bool {
	return isASCIILetter(r) || ('0' <= r && r <= '9')
}

// DetectContent scans text once and classifies its script composition.  The
// primary language is whichever script has more characters; ties go to
// English.
func DetectContent(text string) Content {
	var nJapanese, nEnglish int
	for _, r := range text {
		switch {
		case IsJapaneseChar(r):
			nJapanese++
		case isASCIILetter(r):
			nEnglish++
		}
	}
	c := Content{
		HasJapanese:     nJapanese > 0,
		HasEnglish:      nEnglish > 0,
		PrimaryLanguage: English,
	}
	c.MixedLanguage = c.HasJapanese && c.HasEnglish
	if nJapanese > nEnglish {
		c.PrimaryLanguage = Japanese
	}
	return c
}

// CountWordsInMessages counts the words across the text of all messages.  It
// is commutative with per-message counting: the result equals the sum of
// CountWords over each message's text, in any order.
func CountWordsInMessages(msgs []types.Message) int {
	var n int
	for _, m := range msgs {
		n += CountWords(m.PlainText())
	}
	return n
}
