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

// In this file: the JSONL user cache.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rusq/slack"

	"github.com/rusq/slackinsight/types"
)

// UserCache loads and saves workspace users in a JSONL file.
type UserCache struct {
	dir      string
	filename string
	maxAge   time.Duration
}

// NewUserCache returns a user cache rooted at dir.  maxAge of 0 disables
// loading: every Load call reports the cache expired.
func NewUserCache(dir, filename string, maxAge time.Duration) *UserCache {
	return &UserCache{dir: dir, filename: filename, maxAge: maxAge}
}

func (c *UserCache) path() string {
	return filepath.Join(c.dir, c.filename)
}

// Load returns the cached users, or an error (possibly ErrExpired or
// ErrEmpty) if the cache cannot be used.
func (c *UserCache) Load() (types.Users, error) {
	filename := c.path()
	if err := checkCacheFile(filename, c.maxAge); err != nil {
		return nil, err
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	uu, err := ReadUsers(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode users from %s: %w", filename, err)
	}
	return uu, nil
}

// Save writes the users to the cache file, creating the cache directory if
// needed.
func (c *UserCache) Save(uu types.Users) error {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	filename := c.path()
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer f.Close()

	if err := WriteUsers(f, uu); err != nil {
		return fmt.Errorf("file: %s, error: %w", filename, err)
	}
	return nil
}

// ReadUsers reads users from JSONL data in r.
func ReadUsers(r io.Reader) (types.Users, error) {
	dec := json.NewDecoder(r)
	uu := make(types.Users, 0, 500)
	for {
		var u slack.User
		if err := dec.Decode(&u); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		uu = append(uu, u)
	}
	return uu, nil
}

// WriteUsers writes users as JSONL to w.
func WriteUsers(w io.Writer, uu types.Users) error {
	enc := json.NewEncoder(w)
	for _, u := range uu {
		if err := enc.Encode(u); err != nil {
			return fmt.Errorf("failed to encode data: %w", err)
		}
	}
	return nil
}
