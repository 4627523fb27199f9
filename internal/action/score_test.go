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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBulletPoint(t *testing.T) {
	cfg := DefaultBulletPointConfig()
	tests := []struct {
		name     string
		line     string
		wantHas  bool
		wantType string
	}{
		{"empty", "", false, ""},
		{"japanese nakaguro", "・タスク", true, "japanese:・"},
		{"filled circle", "●完了項目", true, "japanese:●"},
		{"western dash", "- item", true, "western:-"},
		{"western star", "* item", true, "western:*"},
		{"leading whitespace skipped", "  - item", true, "western:-"},
		{"numbered dot", "1. first", true, "numbered"},
		{"numbered paren", "12) twelfth", true, "numbered"},
		{"circled digit", "①はじめ", true, "numbered"},
		{"dash mid-sentence is not a bullet", "well - not really", false, ""},
		{"plain text", "just words", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectBulletPoint(tt.line, cfg)
			assert.Equal(t, tt.wantHas, got.HasBulletPoint)
			assert.Equal(t, tt.wantType, got.BulletType)
			if tt.wantHas {
				assert.Equal(t, cfg.BulletPointWeight, got.Weight)
			} else {
				assert.Zero(t, got.Weight)
			}
		})
	}
}

func TestDetectJapaneseRequests(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantHas    bool
		wantWeight float64
	}{
		{"no request", "報告書を読みました", false, 0},
		{"generic polite suffix", "タスクをお願いします", true, genericRequestWeight},
		{"generic kudasai", "見てください", true, genericRequestWeight},
		{"specific action word with suffix", "対応お願いします", true, specificRequestWeight},
		{"specific with wo particle", "レビューをお願いします", true, specificRequestWeight},
		{"specific with honorific prefix", "ご確認お願いします", true, specificRequestWeight},
		{"assignment phrase", "このタスクを担当してください", true, specificRequestWeight},
		{"action word without suffix is not specific", "対応済みです", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectJapaneseRequests(tt.line)
			assert.Equal(t, tt.wantHas, got.HasRequestPattern)
			assert.Equal(t, tt.wantWeight, got.Weight)
		})
	}
}

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "no mentions here", nil},
		{"single", "ping <@U123456>", []string{"U123456"}},
		{"with username part", "ping <@U123456|alice>", []string{"U123456"}},
		{"multiple in order", "<@U1A> and <@U2B>", []string{"U1A", "U2B"}},
		{"channel link ignored", "<#C123456>", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMentions(tt.text))
		})
	}
}

func TestFindUrgencyKeywords(t *testing.T) {
	kws := DefaultConfig().UrgencyKeywords
	assert.Empty(t, FindUrgencyKeywords("regular update", kws))
	assert.Equal(t, []string{"asap"}, FindUrgencyKeywords("need this ASAP", kws))
	assert.Equal(t, []string{"緊急"}, FindUrgencyKeywords("緊急の対応", kws))
}

// TestScoreLine_monotonic verifies that adding a signal never lowers the
// score.
func TestScoreLine_monotonic(t *testing.T) {
	cfg := DefaultConfig()

	plain := ScoreLine("タスクの説明", cfg).Score
	withBullet := ScoreLine("・タスクの説明", cfg).Score
	withMention := ScoreLine("・タスクの説明 <@U1>", cfg).Score
	withUrgency := ScoreLine("・タスクの説明 <@U1> 至急", cfg).Score

	assert.GreaterOrEqual(t, withBullet, plain)
	assert.GreaterOrEqual(t, withMention, withBullet)
	assert.GreaterOrEqual(t, withUrgency, withMention)
}

func TestScoreLine_composite(t *testing.T) {
	cfg := DefaultConfig()
	ls := ScoreLine("・<@U123456> 緊急で対応お願いします", cfg)
	assert.True(t, ls.BulletPoint.HasBulletPoint)
	assert.True(t, ls.RequestPattern.HasRequestPattern)
	assert.True(t, ls.HasMentions)
	assert.True(t, ls.HasUrgency)
	assert.InDelta(t, 3.3, ls.Score, 1e-9) // 0.5 + 1.8 + 0.5 + 0.5
}
