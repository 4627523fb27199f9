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

package types

import (
	"testing"
	"time"
)

func TestParseSlackTS(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		want      time.Time
		wantErr   bool
	}{
		{"valid", "1534552745.065000", time.UnixMicro(1534552745065000).UTC(), false},
		{"no fractional part", "1534552745", time.UnixMicro(1534552745000000).UTC(), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "x", time.Time{}, true},
		{"garbage micro", "1534552745.x", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlackTS(tt.timestamp)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSlackTS() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseSlackTS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatSlackTS(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"valid", time.UnixMicro(1534552745065000).UTC(), "1534552745.065000"},
		{"zero time", time.Time{}, ""},
		{"before epoch", time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSlackTS(tt.ts); got != tt.want {
				t.Errorf("FormatSlackTS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlackTS_roundtrip(t *testing.T) {
	const ts = "1638494510.037400"
	parsed, err := ParseSlackTS(ts)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatSlackTS(parsed); got != ts {
		t.Errorf("roundtrip = %v, want %v", got, ts)
	}
}
