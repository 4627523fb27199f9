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

// In this file: Japanese request pattern detection.

import "strings"

// RequestPatternInfo is the outcome of Japanese request detection.
type RequestPatternInfo struct {
	HasRequestPattern bool     `json:"has_request_pattern"`
	Patterns          []string `json:"patterns,omitempty"`
	Weight            float64  `json:"weight"`
}

const (
	genericRequestWeight  = 1.0
	specificRequestWeight = 1.8
)

// requestSuffixes are generic polite request forms.
var requestSuffixes = []string{
	"お願いいたします", "お願いします", "していただけますか",
	"していただきたく", "ください", "もらえますか",
}

// requestActionWords are concrete work items; a request naming one scores
// the higher specific tier.
var requestActionWords = []string{
	"対応", "確認", "レビュー", "チェック", "修正", "テスト",
	"実装", "更新", "削除", "追加", "作成",
}

// assignmentPhrases are task-assignment patterns, scored at the specific
// tier regardless of action word.
var assignmentPhrases = []string{
	"を担当してください", "の件でお願いします",
}

// DetectJapaneseRequests detects polite request patterns in the line.  A
// generic polite suffix (お願いします, ください) scores 1.0; a specific
// action word followed by a request suffix (対応お願いします) or a
// task-assignment phrase scores exactly 1.8.
func DetectJapaneseRequests(line string) RequestPatternInfo {
	var info RequestPatternInfo

	for _, phrase := range assignmentPhrases {
		if strings.Contains(line, phrase) {
			info.HasRequestPattern = true
			info.Weight = specificRequestWeight
			info.Patterns = append(info.Patterns, phrase)
		}
	}

	for _, aw := range requestActionWords {
		idx := strings.Index(line, aw)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(aw):]
		for _, sfx := range requestSuffixes {
			if strings.HasPrefix(rest, sfx) ||
				strings.HasPrefix(rest, "を"+sfx) ||
				strings.HasPrefix(rest, "の"+sfx) ||
				strings.HasPrefix(rest, "ご"+sfx) {
				info.HasRequestPattern = true
				info.Weight = specificRequestWeight
				info.Patterns = append(info.Patterns, aw+sfx)
				break
			}
		}
	}
	if info.Weight == specificRequestWeight {
		return info
	}

	for _, sfx := range requestSuffixes {
		if strings.Contains(line, sfx) {
			info.HasRequestPattern = true
			info.Weight = genericRequestWeight
			info.Patterns = append(info.Patterns, sfx)
			break
		}
	}
	return info
}
