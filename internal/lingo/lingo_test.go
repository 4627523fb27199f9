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

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rusq/slackinsight/types"
)

func TestIsJapaneseChar(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want bool
	}{
		{"hiragana", 'あ', true},
		{"katakana", 'カ', true},
		{"long vowel mark", 'ー', true},
		{"kanji", '会', true},
		{"latin letter", 'a', false},
		{"digit", '7', false},
		{"full stop jp", '。', false},
		{"space", ' ', false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJapaneseChar(tt.r))
		})
	}
}

func TestDetectContent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Content
	}{
		{
			name: "empty is english by default",
			text: "",
			want: Content{PrimaryLanguage: English},
		},
		{
			name: "pure english",
			text: "hello world",
			want: Content{HasEnglish: true, PrimaryLanguage: English},
		},
		{
			name: "pure japanese",
			text: "会議の議事録です",
			want: Content{HasJapanese: true, PrimaryLanguage: Japanese},
		},
		{
			name: "mixed, japanese majority",
			text: "LGTMです、承認しました",
			want: Content{HasJapanese: true, HasEnglish: true, MixedLanguage: true, PrimaryLanguage: Japanese},
		},
		{
			name: "mixed, english majority",
			text: "deployed the new version 版",
			want: Content{HasJapanese: true, HasEnglish: true, MixedLanguage: true, PrimaryLanguage: English},
		},
		{
			name: "tie goes to english",
			text: "ab 日本",
			want: Content{HasJapanese: true, HasEnglish: true, MixedLanguage: true, PrimaryLanguage: English},
		},
		{
			name: "digits and punctuation only",
			text: "1234 !!",
			want: Content{PrimaryLanguage: English},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectContent(tt.text))
		})
	}
}

func TestCountWordsInMessages(t *testing.T) {
	msgs := []types.Message{
		types.NewMessage("hello world", "1.000001", "U1", "message"),
		types.NewMessage("明日の会議", "1.000002", "U2", "message"),
		types.NewMessage("", "1.000003", "U3", "message"),
	}
	total := CountWordsInMessages(msgs)

	// Batch counting must equal the sum of per-message counts, in any order.
	var sum int
	for _, m := range msgs {
		sum += CountWords(m.PlainText())
	}
	assert.Equal(t, sum, total)

	rev := []types.Message{msgs[2], msgs[1], msgs[0]}
	assert.Equal(t, total, CountWordsInMessages(rev))
}
