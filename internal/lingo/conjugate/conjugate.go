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

// Package conjugate reduces inflected Japanese verb and adjective forms to
// their dictionary (base) form with an ordered cascade of suffix rules.
//
// This is deliberately not a morphological analyzer: the rule set is a
// finite, auditable table, tried most-specific-first so that e.g.
// されています is caught by the passive rules before the generic ています
// rule can misfire on it.  Words that match no rule are returned unchanged.
package conjugate

// In this file: the Normalize function and the rule mechanics.

// rule is a single suffix rewrite.  minStem is the minimum number of runes
// that must remain before the suffix for the rule to apply, which stops the
// bare suffix itself from being rewritten.
type rule struct {
	suffix  string
	minStem int
	repl    func(stem string) string
}

// base returns a replacement function that appends ending to the stem.
func base(ending string) func(string) string {
	return func(stem string) string { return stem + ending }
}

// Normalize returns the dictionary form of a conjugated Japanese word.  The
// rules are evaluated in table order and the first matching rule wins.  If
// no rule matches, word is returned unchanged.
func Normalize(word string) string {
	runes := []rune(word)
	for _, r := range rules {
		sfx := []rune(r.suffix)
		if len(runes) < len(sfx)+r.minStem {
			continue
		}
		if string(runes[len(runes)-len(sfx):]) != r.suffix {
			continue
		}
		return r.repl(string(runes[:len(runes)-len(sfx)]))
	}
	return word
}
