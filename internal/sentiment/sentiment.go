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

// Package sentiment classifies the overall sentiment of a batch of Slack
// messages by bilingual keyword frequency, with negation, emphasis and
// mitigation adjustments applied as ordered post-processing passes.
//
// The analysis is deliberately transparent: every adjustment is retained in
// the Result so that the classification can be explained to the caller.
package sentiment

// In this file: the analysis pipeline.

import (
	"math"
	"regexp"
	"strings"

	"github.com/rusq/slackinsight/internal/lingo"
	"github.com/rusq/slackinsight/types"
)

// Sentiment is the three-way classification.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Result is the sentiment analysis outcome.  Sentiment is always a pure
// function of the final PositiveCount, NegativeCount and the configured
// threshold; it is never set independently.
type Result struct {
	Sentiment     Sentiment `json:"sentiment"`
	PositiveCount int       `json:"positive_count"`
	NegativeCount int       `json:"negative_count"`
	TotalWords    int       `json:"total_words"`

	JapanesePositiveCount int `json:"japanese_positive_count,omitempty"`
	JapaneseNegativeCount int `json:"japanese_negative_count,omitempty"`

	// Adjustment counters, retained for explainability.
	NegationAdjustments  int     `json:"negation_adjustments,omitempty"`
	EmphasisMultiplier   float64 `json:"emphasis_multiplier,omitempty"`
	MitigationMultiplier float64 `json:"mitigation_multiplier,omitempty"`

	Language lingo.Content `json:"language_content"`
}

// ExtractText returns the combined lowercased text of all messages,
// separated by newlines.  Nil-text messages contribute nothing.
func ExtractText(msgs []types.Message) string {
	var sb strings.Builder
	for _, m := range msgs {
		t := m.PlainText()
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(t)
	}
	return strings.ToLower(lingo.Clean(sb.String()))
}

// Analyze runs the sentiment pipeline over the messages.  It is
// deterministic and never modifies cfg or msgs.
func Analyze(msgs []types.Message, cfg Config) Result {
	text := ExtractText(msgs)
	lc := lingo.DetectContent(text)

	res := Result{
		Language:             lc,
		EmphasisMultiplier:   1.0,
		MitigationMultiplier: 1.0,
	}

	// english counts, whole-word matches
	res.PositiveCount = countWholeWords(text, cfg.PositiveWords)
	res.NegativeCount = countWholeWords(text, cfg.NegativeWords)

	if cfg.EnableJapaneseProcessing && lc.HasJapanese {
		// Japanese has no word boundaries in unsegmented text, so the
		// lexicon is matched by substring.
		res.JapanesePositiveCount = countSubstrings(text, cfg.JapanesePositiveWords)
		res.JapaneseNegativeCount = countSubstrings(text, cfg.JapaneseNegativeWords)
		res.PositiveCount += res.JapanesePositiveCount
		res.NegativeCount += res.JapaneseNegativeCount

		applyNegation(text, cfg, &res)
		applyEmphasisMitigation(text, cfg, &res)
	}

	res.TotalWords = lingo.CountWordsInMessages(msgs)
	res.Sentiment = classify(res.PositiveCount, res.NegativeCount, cfg.Threshold)
	return res
}

// applyNegation adjusts the polarity counts for negation patterns.  When
// negations outnumber the sentiment words the counts are swapped outright
// (strongly negated positive text reads negative); otherwise the positive
// count is partially damped and the negative count bumped.  The constants
// are empirically tuned and preserved as is.
func applyNegation(text string, cfg Config, res *Result) {
	if len(cfg.NegationPatterns) == 0 {
		return
	}
	negations := countSubstrings(text, cfg.NegationPatterns)
	if negations == 0 {
		return
	}
	res.NegationAdjustments = negations

	total := res.PositiveCount + res.NegativeCount
	if total == 0 {
		return
	}
	if negations >= total {
		res.PositiveCount, res.NegativeCount = res.NegativeCount, res.PositiveCount
		return
	}
	if res.PositiveCount > 0 {
		scale := math.Min(0.8, float64(negations)*0.3)
		res.PositiveCount = int(math.Round(float64(res.PositiveCount) * (1 - scale)))
		res.NegativeCount += int(math.Floor(float64(negations) * 0.5))
	}
}

// applyEmphasisMitigation scales both polarity counts by the single largest
// emphasis multiplier and the single smallest mitigation multiplier present
// in the text (1.0 when absent), rounding to the nearest integer.
func applyEmphasisMitigation(text string, cfg Config, res *Result) {
	emphasis := 1.0
	for pat, mult := range cfg.EmphasisPatterns {
		if strings.Contains(text, pat) && mult > emphasis {
			emphasis = mult
		}
	}
	mitigation := 1.0
	for pat, mult := range cfg.MitigationPatterns {
		if strings.Contains(text, pat) && mult < mitigation {
			mitigation = mult
		}
	}
	res.EmphasisMultiplier = emphasis
	res.MitigationMultiplier = mitigation

	combined := emphasis * mitigation
	if combined == 1.0 {
		return
	}
	res.PositiveCount = int(math.Round(float64(res.PositiveCount) * combined))
	res.NegativeCount = int(math.Round(float64(res.NegativeCount) * combined))
}

func classify(pos, neg int, threshold float64) Sentiment {
	switch {
	case float64(pos) > float64(neg)*threshold:
		return Positive
	case float64(neg) > float64(pos)*threshold:
		return Negative
	default:
		return Neutral
	}
}

// countWholeWords counts occurrences of each word in text on word
// boundaries.  Words are matched case-insensitively against the already
// lowercased text.
func countWholeWords(text string, words []string) int {
	if text == "" {
		return 0
	}
	var n int
	for _, w := range words {
		if w == "" {
			continue
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(w)) + `\b`)
		if err != nil {
			continue
		}
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}

// countSubstrings counts non-overlapping occurrences of each pattern.
func countSubstrings(text string, patterns []string) int {
	var n int
	for _, p := range patterns {
		if p == "" {
			continue
		}
		n += strings.Count(text, p)
	}
	return n
}
