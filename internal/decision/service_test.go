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

package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/slackinsight/types"
)

func TestExtractForThread(t *testing.T) {
	msgs := []types.Message{
		msg("DECISION: release on friday", "U1"),
		msg("fine by me", "U2"),
	}
	res := ExtractForThread("C1", "1700000000.000100", msgs)
	assert.Equal(t, "C1", res.Channel)
	assert.Equal(t, "1700000000.000100", res.ThreadTS)
	require.Len(t, res.DecisionsMade, 1)
	d := res.DecisionsMade[0]
	assert.Equal(t, "DECISION: release on friday", d.Decision)
	assert.Equal(t, "U1", d.Participant)
	assert.Greater(t, d.Confidence, ConfidenceThreshold)
}

func TestExtractForThread_empty(t *testing.T) {
	res := ExtractForThread("C1", "1.000001", nil)
	assert.NotNil(t, res.DecisionsMade)
	assert.Empty(t, res.DecisionsMade)
}

func TestExtractService(t *testing.T) {
	tests := []struct {
		name       string
		args       any
		wantStatus int
		wantError  string
	}{
		{
			name:       "nil args",
			args:       nil,
			wantStatus: 400,
			wantError:  errArgsObject,
		},
		{
			name:       "non-object args",
			args:       "messages",
			wantStatus: 400,
			wantError:  errArgsObject,
		},
		{
			name:       "missing messages key",
			args:       map[string]any{},
			wantStatus: 400,
			wantError:  errMessagesArray,
		},
		{
			name:       "messages not an array",
			args:       map[string]any{"messages": "DECISION: yes"},
			wantStatus: 400,
			wantError:  errMessagesArray,
		},
		{
			name: "typed messages succeed",
			args: map[string]any{"messages": []types.Message{
				msg("DECISION: ship it", "U1"),
			}},
			wantStatus: 200,
		},
		{
			name: "json-decoded messages succeed",
			args: map[string]any{"messages": []any{
				map[string]any{"text": "DECISION: ship it", "ts": "1.000001", "user": "U1", "type": "message"},
			}},
			wantStatus: 200,
		},
		{
			name: "malformed elements are tolerated",
			args: map[string]any{"messages": []any{
				42,
				map[string]any{"text": 13},
			}},
			wantStatus: 200,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ExtractService(tt.args)
			assert.Equal(t, tt.wantStatus, res.StatusCode)
			assert.Equal(t, tt.wantStatus == 200, res.Success)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, res.Error)
			}
			if tt.wantStatus == 200 {
				require.NotNil(t, res.Data)
				got, ok := res.Data.(ExtractResult)
				require.True(t, ok, "data is %T", res.Data)
				assert.NotNil(t, got.Decisions)
			}
		})
	}
}

func TestExtractService_resultShape(t *testing.T) {
	res := ExtractService(map[string]any{"messages": []any{}})
	assert.True(t, res.Success)
	assert.Equal(t, 200, res.StatusCode)
	assert.Empty(t, res.Error)
	got, ok := res.Data.(ExtractResult)
	require.True(t, ok)
	assert.Zero(t, got.TotalMessages)
}
