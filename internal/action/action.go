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

// Package action scans message text line by line for action items, combining
// bullet point detection, Japanese request patterns, mentions and urgency
// keywords into a composite per-line score.
package action

// In this file: indicator matching and the extraction entry points.

import (
	"strings"

	"github.com/rusq/slackinsight/internal/lingo"
	"github.com/rusq/slackinsight/internal/lingo/conjugate"
	"github.com/rusq/slackinsight/types"
)

// Item is a single extracted action item.  Items are derived fresh on every
// extraction call and never persisted.
type Item struct {
	Text            string   `json:"text"`
	Priority        Priority `json:"priority,omitempty"`
	Status          string   `json:"status"`
	MentionedUsers  []string `json:"mentioned_users"`
	SourceMessageTS string   `json:"source_message_ts"`
	SourceUser      string   `json:"source_user"`
}

// ExtractResult is the outcome of extraction over a message batch.
type ExtractResult struct {
	ActionItems           []Item   `json:"actionItems"`
	TotalActionIndicators int      `json:"totalActionIndicators"`
	ActionIndicatorsFound []string `json:"actionIndicatorsFound"`
}

// NormalizeText runs the Japanese segments of mixed-language text through
// the conjugation normalizer; English segments pass through unchanged.  A
// no-op unless cfg enables conjugation normalization.
func NormalizeText(text string, cfg Config) string {
	if !cfg.EnableConjugationNormalization || text == "" {
		return text
	}
	var (
		sb  strings.Builder
		run strings.Builder
	)
	flushRun := func() {
		if run.Len() > 0 {
			sb.WriteString(conjugate.Normalize(run.String()))
			run.Reset()
		}
	}
	for _, r := range text {
		if lingo.IsJapaneseChar(r) {
			run.WriteRune(r)
			continue
		}
		flushRun()
		sb.WriteRune(r)
	}
	flushRun()
	return sb.String()
}

// FindIndicators returns the action indicators present in the text.  An
// indicator matches literally (case-insensitive), and, when normalization is
// enabled, also after normalizing the conjugated Japanese in both the text
// and the indicator, so 修正しました matches a base-form 修正する indicator.
func FindIndicators(text string, indicators []string, normalize bool) []string {
	lower := strings.ToLower(text)
	normCfg := Config{EnableConjugationNormalization: true}

	var normText string
	if normalize {
		normText = NormalizeText(lower, normCfg)
	}

	var found []string
	for _, ind := range indicators {
		indLower := strings.ToLower(ind)
		if strings.Contains(lower, indLower) {
			found = append(found, ind)
			continue
		}
		if normalize && strings.Contains(normText, NormalizeText(indLower, normCfg)) {
			found = append(found, ind)
		}
	}
	return found
}

// ExtractFromMessage extracts action items from a single message.  With line
// scoring enabled, a line qualifies when its composite score reaches
// cfg.MinimumLineScore or it contains an action indicator; bullet-pointed
// and high-scoring lines are ordered ahead of plain indicator matches.
// Without line scoring (the legacy minimal config), only indicator matches
// qualify.
func ExtractFromMessage(m types.Message, cfg Config) []Item {
	text := m.PlainText()
	if text == "" {
		return nil
	}

	var scored, plain []Item
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		indicators := FindIndicators(line, cfg.ActionIndicators, cfg.EnableConjugationNormalization)

		if !cfg.EnableLineScoring {
			if len(indicators) == 0 {
				continue
			}
			plain = append(plain, makeItem(m, line, LineScore{}, cfg))
			continue
		}

		ls := ScoreLine(line, cfg)
		switch {
		case ls.Score >= cfg.MinimumLineScore:
			scored = append(scored, makeItem(m, line, ls, cfg))
		case len(indicators) > 0:
			plain = append(plain, makeItem(m, line, ls, cfg))
		}
	}
	return append(scored, plain...)
}

// ExtractFromMessages aggregates per-message extraction across the batch,
// preserving message order.
func ExtractFromMessages(msgs []types.Message, cfg Config) ExtractResult {
	res := ExtractResult{
		ActionItems:           []Item{},
		ActionIndicatorsFound: []string{},
	}
	seen := make(map[string]struct{})
	for _, m := range msgs {
		res.ActionItems = append(res.ActionItems, ExtractFromMessage(m, cfg)...)

		found := FindIndicators(m.PlainText(), cfg.ActionIndicators, cfg.EnableConjugationNormalization)
		res.TotalActionIndicators += len(found)
		for _, ind := range found {
			if _, ok := seen[ind]; ok {
				continue
			}
			seen[ind] = struct{}{}
			res.ActionIndicatorsFound = append(res.ActionIndicatorsFound, ind)
		}
	}
	return res
}

// makeItem builds the action item for a qualifying line.
func makeItem(m types.Message, line string, ls LineScore, cfg Config) Item {
	item := Item{
		Text:            line,
		Status:          detectStatus(line, cfg),
		MentionedUsers:  []string{},
		SourceMessageTS: m.Timestamp,
		SourceUser:      m.User,
	}
	if ids := ExtractMentions(line); len(ids) > 0 {
		item.MentionedUsers = ids
	}
	item.Priority = detectPriority(line, ls, cfg)
	return item
}

// detectPriority assigns the priority: any urgency keyword forces High,
// otherwise the configured priority keywords decide, High tier first.
func detectPriority(line string, ls LineScore, cfg Config) Priority {
	if ls.HasUrgency {
		return High
	}
	if len(FindUrgencyKeywords(line, cfg.UrgencyKeywords)) > 0 {
		return High
	}
	lower := strings.ToLower(line)
	for _, p := range []Priority{High, Medium, Low} {
		for _, kw := range cfg.PriorityKeywords[p] {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return p
			}
		}
	}
	return ""
}

// detectStatus assigns the line's status from the status keywords,
// defaulting to open.
func detectStatus(line string, cfg Config) string {
	lower := strings.ToLower(line)
	for _, status := range []string{StatusCompleted, StatusInProgress} {
		for _, kw := range cfg.StatusKeywords[status] {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return status
			}
		}
	}
	return StatusOpen
}
