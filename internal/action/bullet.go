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

// In this file: bullet point detection.

import (
	"regexp"
	"strings"
)

// BulletPointInfo is the outcome of bullet detection on a single line.
// Weight is either the configured bullet weight or 0, never partial.
type BulletPointInfo struct {
	HasBulletPoint bool    `json:"has_bullet_point"`
	BulletType     string  `json:"bullet_type,omitempty"`
	Weight         float64 `json:"weight"`
}

var (
	japaneseBullets = map[rune]struct{}{
		'・': {}, '●': {}, '○': {}, '■': {}, '□': {}, '‐': {}, '－': {},
	}
	westernBullets = map[rune]struct{}{
		'-': {}, '*': {}, '+': {}, '>': {},
	}
	numberedRe = regexp.MustCompile(`^\d+[.)]`)
)

// DetectBulletPoint reports whether the line starts with a bullet glyph or a
// list number.  Only leading-position glyphs count: a dash in the middle of
// a sentence is not a bullet.
func DetectBulletPoint(line string, cfg BulletPointConfig) BulletPointInfo {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return BulletPointInfo{}
	}
	r := []rune(trimmed)[0]

	if _, ok := japaneseBullets[r]; ok {
		return bullet("japanese:"+string(r), cfg)
	}
	if _, ok := westernBullets[r]; ok {
		return bullet("western:"+string(r), cfg)
	}
	if numberedRe.MatchString(trimmed) || (0x2460 <= r && r <= 0x2473) { // ①..⑳
		return bullet("numbered", cfg)
	}
	return BulletPointInfo{}
}

func bullet(typ string, cfg BulletPointConfig) BulletPointInfo {
	return BulletPointInfo{
		HasBulletPoint: true,
		BulletType:     typ,
		Weight:         cfg.BulletPointWeight,
	}
}
