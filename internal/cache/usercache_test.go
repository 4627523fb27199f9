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

package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rusq/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/slackinsight/types"
)

var testUsers = types.Users{
	{ID: "U1", Name: "alice", Profile: slack.UserProfile{DisplayName: "Alice"}},
	{ID: "U2", Name: "bob"},
	{ID: "U3", Name: "charlie", Deleted: true},
}

func TestUserCache_roundtrip(t *testing.T) {
	c := NewUserCache(t.TempDir(), "users.json", time.Hour)
	require.NoError(t, c.Save(testUsers))

	got, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, testUsers, got)
}

func TestUserCache_createsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := NewUserCache(dir, "users.json", time.Hour)
	require.NoError(t, c.Save(testUsers))

	_, err := os.Stat(filepath.Join(dir, "users.json"))
	assert.NoError(t, err)
}

func TestUserCache_Load(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		c := NewUserCache(t.TempDir(), "users.json", time.Hour)
		_, err := c.Load()
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("empty file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), nil, 0o600))
		c := NewUserCache(dir, "users.json", time.Hour)
		_, err := c.Load()
		assert.ErrorIs(t, err, ErrEmpty)
	})
	t.Run("expired", func(t *testing.T) {
		dir := t.TempDir()
		c := NewUserCache(dir, "users.json", time.Hour)
		require.NoError(t, c.Save(testUsers))
		old := time.Now().Add(-2 * time.Hour)
		require.NoError(t, os.Chtimes(filepath.Join(dir, "users.json"), old, old))

		_, err := c.Load()
		assert.ErrorIs(t, err, ErrExpired)
	})
	t.Run("zero maxAge disables the cache", func(t *testing.T) {
		dir := t.TempDir()
		c := NewUserCache(dir, "users.json", time.Hour)
		require.NoError(t, c.Save(testUsers))

		disabled := NewUserCache(dir, "users.json", 0)
		_, err := disabled.Load()
		assert.ErrorIs(t, err, ErrExpired)
	})
	t.Run("corrupt file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("not json\n"), 0o600))
		c := NewUserCache(dir, "users.json", time.Hour)
		_, err := c.Load()
		assert.ErrorContains(t, err, "failed to decode users")
	})
}

func TestCheckCacheFile(t *testing.T) {
	t.Run("no filename", func(t *testing.T) {
		assert.Error(t, checkCacheFile("", time.Hour))
	})
	t.Run("directory", func(t *testing.T) {
		assert.Error(t, checkCacheFile(t.TempDir(), time.Hour))
	})
}

func TestReadWriteUsers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUsers(&buf, testUsers))
	// one JSON object per line
	assert.Equal(t, len(testUsers), strings.Count(buf.String(), "\n"))

	got, err := ReadUsers(&buf)
	require.NoError(t, err)
	assert.Equal(t, testUsers, got)
}
