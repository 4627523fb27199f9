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

package sentiment

// In this file: analyzer configuration and the documented defaults.

// Config is the sentiment analyzer configuration.  Analyze treats it as
// read-only: no slice or map supplied here is ever modified.
type Config struct {
	PositiveWords []string `toml:"positive_words"`
	NegativeWords []string `toml:"negative_words"`

	JapanesePositiveWords []string `toml:"japanese_positive_words"`
	JapaneseNegativeWords []string `toml:"japanese_negative_words"`

	// NegationPatterns are substrings whose presence reduces or flips the
	// detected sentiment (ない, ません, ...).
	NegationPatterns []string `toml:"negation_patterns"`

	// EmphasisPatterns maps an emphasis substring (すごく) to a multiplier
	// greater than 1; MitigationPatterns maps a softener (少し) to a
	// multiplier smaller than 1.
	EmphasisPatterns   map[string]float64 `toml:"emphasis_patterns"`
	MitigationPatterns map[string]float64 `toml:"mitigation_patterns"`

	// Threshold is the ratio one polarity count must exceed the other by to
	// tip the classification away from neutral.
	Threshold float64 `toml:"threshold" validate:"gt=0"`

	EnableJapaneseProcessing bool `toml:"enable_japanese_processing"`
}

// DefaultConfig returns the default analyzer configuration.  A fresh copy is
// returned on every call so that callers may override fields without
// affecting each other.
func DefaultConfig() Config {
	return Config{
		PositiveWords: []string{
			"good", "great", "excellent", "awesome", "amazing", "love",
			"happy", "thanks", "thank", "perfect", "nice", "wonderful",
			"fantastic", "helpful", "works", "fixed", "resolved", "success",
		},
		NegativeWords: []string{
			"bad", "terrible", "awful", "hate", "angry", "broken", "bug",
			"fail", "failed", "error", "problem", "issue", "wrong", "crash",
			"slow", "worst", "sad", "blocked",
		},
		JapanesePositiveWords: []string{
			"ありがとう", "素晴らしい", "最高", "良い", "よかった", "助かり",
			"嬉しい", "完璧", "便利", "感謝", "うまく", "期待",
		},
		JapaneseNegativeWords: []string{
			"悪い", "最悪", "問題", "バグ", "失敗", "エラー", "困っ",
			"残念", "壊れ", "遅い", "ダメ", "心配",
		},
		NegationPatterns: []string{"ない", "ません", "なかった", "じゃない", "ではない"},
		EmphasisPatterns: map[string]float64{
			"とても": 1.5, "すごく": 1.5, "非常に": 1.8,
			"本当に": 1.3, "かなり": 1.4, "絶対": 1.6,
		},
		MitigationPatterns: map[string]float64{
			"少し": 0.7, "ちょっと": 0.7, "やや": 0.8,
			"たぶん": 0.8, "多分": 0.8, "かもしれ": 0.6,
		},
		Threshold:                1.5,
		EnableJapaneseProcessing: true,
	}
}
