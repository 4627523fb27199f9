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

package lingo

// In this file: mixed English/Japanese tokenizer and word counter.

import (
	"strings"
	"unicode"

	"github.com/enescakir/emoji"
	"golang.org/x/text/width"
)

// particles are the single-character Japanese particles that act as token
// boundaries inside an unsegmented Japanese run.  Each particle is emitted as
// a token of its own.
var particles = map[rune]struct{}{
	'の': {}, 'に': {}, 'は': {}, 'を': {}, 'が': {},
	'で': {}, 'と': {}, 'も': {}, 'へ': {}, 'や': {},
}

// delimiters are characters that terminate a token without producing one.
// The katakana long vowel mark 'ー' is deliberately absent: it is part of
// words like サーバー.
var delimiters = map[rune]struct{}{
	'。': {}, '、': {}, '！': {}, '？': {}, '・': {}, '「': {}, '」': {},
	'（': {}, '）': {}, '『': {}, '』': {}, '：': {}, '；': {}, '…': {},
}

func isDelimiter(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	if r < 0x80 && !isASCIIAlnum(r) && r != '\'' {
		// ASCII punctuation, except the apostrophe (don't, it's).
		return true
	}
	_, ok := delimiters[r]
	return ok
}

// Clean prepares Slack message text for analysis: resolves :alias: emoji to
// their Unicode form and folds full-width Latin letters and digits (ＡＢＣ１２３)
// to their half-width equivalents.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	return width.Fold.String(emoji.Parse(text))
}

// Tokenize splits mixed English/Japanese text into analyzable units.  Latin
// runs split on whitespace and punctuation; Japanese runs split at particle
// boundaries, with each particle emitted as its own token.  Empty text
// yields a nil slice.
//
// Go's regexp has no lookaround, so particle splitting is a single-pass
// scanner rather than the usual lookahead/lookbehind expression.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	text = Clean(text)

	var (
		tokens []string
		cur    strings.Builder
		curJP  bool // current token is a Japanese run
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch {
		case isDelimiter(r):
			flush()
		case IsJapaneseChar(r):
			if !curJP {
				flush()
				curJP = true
			}
			if _, ok := particles[r]; ok {
				flush()
				tokens = append(tokens, string(r))
				continue
			}
			cur.WriteRune(r)
		default:
			if curJP {
				flush()
				curJP = false
			}
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// CountWords tokenizes text and counts the tokens that qualify as words:
// non-empty, and, if a single character, either alphanumeric or a Japanese
// script character.
func CountWords(text string) int {
	var n int
	for _, tok := range Tokenize(text) {
		if isWord(tok) {
			n++
		}
	}
	return n
}

func isWord(tok string) bool {
	runes := []rune(tok)
	switch len(runes) {
	case 0:
		return false
	case 1:
		r := runes[0]
		return isASCIIAlnum(r) || IsJapaneseChar(r)
	default:
		return true
	}
}
