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

// In this file: extractor configuration and the documented defaults.

// Priority of an action item.
type Priority string

const (
	High   Priority = "high"
	Medium Priority = "medium"
	Low    Priority = "low"
)

// Status values assigned from status keywords.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// BulletPointConfig configures bullet point detection.
type BulletPointConfig struct {
	// BulletPointWeight is the score contribution of a leading bullet.
	BulletPointWeight float64 `toml:"bullet_point_weight"`
}

// Config is the action item extractor configuration.  A minimal legacy
// config carrying only ActionIndicators, PriorityKeywords and StatusKeywords
// still works: all enhanced features are opt-in and default to disabled on
// the zero value.
type Config struct {
	// ActionIndicators are keywords whose presence marks a line as an
	// action item.
	ActionIndicators []string `toml:"action_indicators"`

	// PriorityKeywords maps a priority to the keywords that imply it.
	PriorityKeywords map[Priority][]string `toml:"priority_keywords"`

	// StatusKeywords maps a status to the keywords that imply it.
	StatusKeywords map[string][]string `toml:"status_keywords"`

	// UrgencyKeywords force priority High and add an urgency score bonus.
	UrgencyKeywords []string `toml:"urgency_keywords"`

	// EnableLineScoring turns on composite per-line scoring (bullets,
	// request patterns, mentions, urgency).
	EnableLineScoring bool `toml:"enable_line_scoring"`

	// EnableConjugationNormalization matches conjugated Japanese forms
	// against base-form indicators.
	EnableConjugationNormalization bool `toml:"enable_conjugation_normalization"`

	// MinimumLineScore is the score a line must reach to qualify without an
	// explicit action indicator (only consulted when line scoring is on).
	MinimumLineScore float64 `toml:"minimum_line_score"`

	BulletPoint BulletPointConfig `toml:"bullet_point"`
}

// EnhancedActionIndicators is the bilingual indicator set used by the
// default configuration.
var EnhancedActionIndicators = []string{
	"todo", "action item", "follow up", "need to", "should", "must",
	"対応", "確認", "レビュー", "チェック", "修正", "テスト", "実装",
	"更新", "削除", "追加", "作成", "報告", "調査", "準備",
}

// DefaultBulletPointConfig returns the default bullet point configuration.
func DefaultBulletPointConfig() BulletPointConfig {
	return BulletPointConfig{BulletPointWeight: 0.5}
}

// DefaultConfig returns the default extractor configuration with all
// enhanced features enabled.  A fresh copy is returned on every call.
func DefaultConfig() Config {
	return Config{
		ActionIndicators: append([]string(nil), EnhancedActionIndicators...),
		PriorityKeywords: map[Priority][]string{
			High:   {"urgent", "critical", "asap", "緊急", "至急", "重要"},
			Medium: {"soon", "this week", "なるべく早く", "今週中"},
			Low:    {"eventually", "when possible", "いつか", "余裕があれば"},
		},
		StatusKeywords: map[string][]string{
			StatusCompleted:  {"done", "completed", "finished", "完了", "済み", "対応済"},
			StatusInProgress: {"in progress", "wip", "working on", "対応中", "作業中"},
		},
		UrgencyKeywords:                []string{"urgent", "immediate", "asap", "緊急", "至急", "今すぐ"},
		EnableLineScoring:              true,
		EnableConjugationNormalization: true,
		MinimumLineScore:               1.0,
		BulletPoint:                    DefaultBulletPointConfig(),
	}
}
