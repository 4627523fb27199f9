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

// In this file: users and the user index.

import "github.com/rusq/slack"

// Users is a slice of users.
type Users []slack.User

// UserIDs returns a slice of user IDs.
func (us Users) UserIDs() []string {
	var ids = make([]string, len(us))
	for i := range us {
		ids[i] = us[i].ID
	}
	return ids
}

// UserIndex is a mapping of the user ID to the *slack.User.
type UserIndex map[string]*slack.User

// IndexByID returns an index of the users by their ID.
func (us Users) IndexByID() UserIndex {
	idx := make(UserIndex, len(us))
	for i := range us {
		idx[us[i].ID] = &us[i]
	}
	return idx
}

// Username tries to resolve the username by ID.  If the user is not found in
// the index, it assumes an external user and returns the ID with the
// "external" prefix.
func (idx UserIndex) Username(id string) string {
	return idx.userattr(id, func(user *slack.User) string {
		return user.Name
	})
}

// DisplayName tries to resolve the display name by ID.  If the display name
// is unavailable, it returns the real name.
func (idx UserIndex) DisplayName(id string) string {
	return idx.userattr(id, func(user *slack.User) string {
		return nvl(user.Profile.DisplayName, user.RealName, user.Name)
	})
}

// userattr finds the user by ID and calls fn with that user.  If the index is
// not initialised, it returns the ID as is.
func (idx UserIndex) userattr(id string, fn func(user *slack.User) string) string {
	if idx == nil {
		return id
	}
	user, ok := idx[id]
	if !ok {
		return "external:" + id
	}
	return nvl(fn(user), id)
}

// nvl returns the first non-empty string of its arguments.
func nvl(s string, ss ...string) string {
	if s != "" {
		return s
	}
	for _, alt := range ss {
		if alt != "" {
			return alt
		}
	}
	return ""
}
