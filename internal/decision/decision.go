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

// Package decision identifies messages that state a decision and scores how
// confident that identification is, in English and Japanese.
package decision

// In this file: classification, confidence scoring and extraction.

import (
	"strings"

	"github.com/rusq/slackinsight/internal/lingo"
	"github.com/rusq/slackinsight/types"
)

// ConfidenceThreshold is the minimum confidence (exclusive) for a decision
// to be retained in the extraction output.  Empirically tuned.
const ConfidenceThreshold = 0.7

// decisionKeywords are the informal decision verbs and markers, lowercased.
var decisionKeywords = []string{
	"decided", "decide", "approved", "approve", "resolved", "agreed",
	"confirmed", "concluded", "settled", "finalized", "chosen", "selected",
	"決定", "承認", "解決", "合意", "確認", "結論", "選択", "決まり", "決めました",
}

// formalMarkers indicate an explicitly announced decision and carry a high
// base confidence.
var formalMarkers = []string{
	"decision:", "決定：", "決定:", "【決定】",
}

// formalPhrases are formal-language patterns that boost confidence.
var formalPhrases = []string{
	"officially", "formally", "正式に", "公式に",
}

// Decision is a single extracted decision statement.
type Decision struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	Keywords   []string `json:"keywords"`
	Language   string   `json:"language"` // "en" or "ja"
	Timestamp  string   `json:"timestamp"`
	User       string   `json:"user"`
}

// ExtractResult is the outcome of extracting decisions from a message batch.
// TotalMessages always reflects the full input length, including messages
// that were skipped or filtered out.
type ExtractResult struct {
	Decisions     []Decision `json:"decisions"`
	TotalMessages int        `json:"total_messages"`
}

// IsDecisionMessage reports whether the message text contains a decision
// keyword or a formal decision marker.  It is a pure function of the text:
// empty text is never a decision.  The keyword match is deliberately
// mood-blind, so questions like "Should we decide on this tomorrow?" also
// match.
func IsDecisionMessage(m types.Message) bool {
	text := strings.ToLower(m.PlainText())
	if text == "" {
		return false
	}
	for _, kw := range decisionKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	for _, marker := range formalMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Extract returns the decisions found in msgs.  Only decisions with a
// confidence strictly above ConfidenceThreshold are retained.  Messages with
// missing text or user are skipped from scoring but still counted in
// TotalMessages.
func Extract(msgs []types.Message) ExtractResult {
	res := ExtractResult{
		Decisions:     []Decision{},
		TotalMessages: len(msgs),
	}
	for _, m := range msgs {
		if m.PlainText() == "" || m.User == "" {
			continue
		}
		if !IsDecisionMessage(m) {
			continue
		}
		confidence, keywords := score(m.PlainText())
		if confidence <= ConfidenceThreshold {
			continue
		}
		lang := "en"
		if lingo.DetectContent(m.PlainText()).HasJapanese {
			lang = "ja"
		}
		res.Decisions = append(res.Decisions, Decision{
			Text:       m.PlainText(),
			Confidence: confidence,
			Keywords:   keywords,
			Language:   lang,
			Timestamp:  m.Timestamp,
			User:       m.User,
		})
	}
	return res
}

// score computes the additive confidence for a decision message and returns
// the matched keywords, deduplicated in first-seen order.
//
// Base: 0.85 for a formal marker (DECISION:, 決定：), 0.6 for an informal
// decision verb.  Boosts: +0.05 for each distinct extra keyword (up to
// +0.15), +0.05 for texts over 50 runes and another +0.05 over 100 runes,
// +0.15 for formal language (officially, 正式に).  Capped at 1.0.
func score(text string) (float64, []string) {
	lower := strings.ToLower(text)

	confidence := 0.6
	for _, marker := range formalMarkers {
		if strings.Contains(lower, marker) {
			confidence = 0.85
			break
		}
	}

	var keywords []string
	seen := make(map[string]struct{})
	for _, kw := range decisionKeywords {
		if !strings.Contains(lower, kw) {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}
	if extra := len(keywords) - 1; extra > 0 {
		confidence += min(float64(extra)*0.05, 0.15)
	}

	// longer messages carry more deliberation context
	runeLen := len([]rune(text))
	if runeLen > 50 {
		confidence += 0.05
	}
	if runeLen > 100 {
		confidence += 0.05
	}

	for _, phrase := range formalPhrases {
		if strings.Contains(lower, phrase) {
			confidence += 0.15
			break
		}
	}

	return min(confidence, 1.0), keywords
}
