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

// In this file: stop word filtering for English and Japanese tokens.

import (
	"strings"

	"github.com/bbalet/stopwords"
)

// japaneseStopWords are Japanese function words and particles that carry no
// topical content.  Single-character particles are included so that the
// particle tokens produced by Tokenize can be filtered out when analysing
// topical content.
var japaneseStopWords = map[string]struct{}{
	"の": {}, "に": {}, "は": {}, "を": {}, "が": {}, "で": {}, "と": {},
	"も": {}, "へ": {}, "や": {}, "か": {}, "ね": {}, "よ": {},
	"から": {}, "まで": {}, "など": {}, "これ": {}, "それ": {}, "あれ": {},
	"この": {}, "その": {}, "あの": {}, "ここ": {}, "そこ": {},
	"いる": {}, "ある": {}, "する": {}, "なる": {}, "れる": {}, "られる": {},
	"ない": {}, "ます": {}, "です": {}, "だ": {}, "である": {},
	"しかし": {}, "また": {}, "および": {}, "または": {},
}

// IsStopWord reports whether the token is a stop word in either English or
// Japanese.  English stop word membership is probed through the stopwords
// library: a word that the library removes entirely is a stop word.
func IsStopWord(tok string) bool {
	if tok == "" {
		return true
	}
	if _, ok := japaneseStopWords[tok]; ok {
		return true
	}
	if r := []rune(tok)[0]; IsJapaneseChar(r) {
		return false
	}
	cleaned := stopwords.CleanString(strings.ToLower(tok), "en", false)
	return strings.TrimSpace(cleaned) == ""
}

// FilterStopWords returns the tokens with stop words removed.  The input
// slice is not modified.
func FilterStopWords(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !IsStopWord(tok) {
			kept = append(kept, tok)
		}
	}
	return kept
}
