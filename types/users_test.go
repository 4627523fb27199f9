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

	"github.com/rusq/slack"
	"github.com/stretchr/testify/assert"
)

var indexUsers = Users{
	{ID: "U1", Name: "alice", RealName: "Alice Liddell", Profile: slack.UserProfile{DisplayName: "Alice"}},
	{ID: "U2", Name: "bob", RealName: "Bob the Builder"},
	{ID: "U3", Name: "charlie"},
	{ID: "U4"},
}

func TestUsers_UserIDs(t *testing.T) {
	assert.Equal(t, []string{"U1", "U2", "U3", "U4"}, indexUsers.UserIDs())
	assert.Empty(t, Users{}.UserIDs())
}

func TestUsers_IndexByID(t *testing.T) {
	idx := indexUsers.IndexByID()
	assert.Len(t, idx, len(indexUsers))
	assert.Equal(t, "alice", idx["U1"].Name)
}

func TestUserIndex_Username(t *testing.T) {
	idx := indexUsers.IndexByID()
	tests := []struct {
		name string
		idx  UserIndex
		id   string
		want string
	}{
		{"known user", idx, "U1", "alice"},
		{"no name falls back to ID", idx, "U4", "U4"},
		{"unknown is external", idx, "U99", "external:U99"},
		{"nil index returns ID as is", nil, "U1", "U1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.idx.Username(tt.id))
		})
	}
}

func TestUserIndex_DisplayName(t *testing.T) {
	idx := indexUsers.IndexByID()
	tests := []struct {
		name string
		idx  UserIndex
		id   string
		want string
	}{
		{"display name", idx, "U1", "Alice"},
		{"falls back to real name", idx, "U2", "Bob the Builder"},
		{"falls back to name", idx, "U3", "charlie"},
		{"falls back to ID", idx, "U4", "U4"},
		{"unknown is external", idx, "U99", "external:U99"},
		{"nil index returns ID as is", nil, "U99", "U99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.idx.DisplayName(tt.id))
		})
	}
}
