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

package action

// In this file: mention/urgency detection and composite line scoring.

import (
	"regexp"
	"strings"
)

const (
	mentionBonus = 0.5
	urgencyBonus = 0.5
)

// mentionRe matches Slack user mention tokens, e.g. <@U123456> or
// <@U123456|name>.
var mentionRe = regexp.MustCompile(`<@([A-Z0-9]+)(?:\|[^>]*)?>`)

// ExtractMentions returns the user IDs mentioned in the text, in order of
// appearance.
func ExtractMentions(text string) []string {
	matches := mentionRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}

// FindUrgencyKeywords returns the urgency keywords present in the text.
// English keywords match case-insensitively.
func FindUrgencyKeywords(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

// LineScore is the composite score of a single line with the per-detector
// breakdown retained.
type LineScore struct {
	Score           float64            `json:"score"`
	BulletPoint     BulletPointInfo    `json:"bullet_point"`
	RequestPattern  RequestPatternInfo `json:"request_pattern"`
	HasMentions     bool               `json:"has_mentions"`
	HasUrgency      bool               `json:"has_urgency_keywords"`
	UrgencyKeywords []string           `json:"urgency_keywords,omitempty"`
}

// ScoreLine combines the independent signal detectors into one additive
// score.  Because every signal contributes a positive amount, a line
// combining several signals always outscores a line with a subset of them.
func ScoreLine(line string, cfg Config) LineScore {
	ls := LineScore{
		BulletPoint:    DetectBulletPoint(line, cfg.BulletPoint),
		RequestPattern: DetectJapaneseRequests(line),
	}
	ls.Score = ls.BulletPoint.Weight + ls.RequestPattern.Weight

	if len(ExtractMentions(line)) > 0 {
		ls.HasMentions = true
		ls.Score += mentionBonus
	}
	if found := FindUrgencyKeywords(line, cfg.UrgencyKeywords); len(found) > 0 {
		ls.HasUrgency = true
		ls.UrgencyKeywords = found
		ls.Score += urgencyBonus
	}
	return ls
}
