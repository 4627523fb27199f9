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

// Package cache implements the on-disk user cache, so that repeated analysis
// calls do not hammer the users.list endpoint.
package cache

// In this file: cache file validation helpers.

import (
	"errors"
	"os"
	"time"
)

var (
	ErrEmpty   = errors.New("empty cache file")
	ErrExpired = errors.New("cache expired")
)

// checkCacheFile checks that the cache file exists, is not empty and is not
// older than maxAge.
func checkCacheFile(filename string, maxAge time.Duration) error {
	if filename == "" {
		return errors.New("no cache filename")
	}
	fi, err := os.Stat(filename)
	if err != nil {
		return err
	}
	return validateCache(fi, maxAge)
}

// validateCache tests whether the file info meets the requirements for a
// valid cache file.
func validateCache(fi os.FileInfo, maxAge time.Duration) error {
	if fi.IsDir() {
		return errors.New("cache file is a directory")
	}
	if fi.Size() == 0 {
		return ErrEmpty
	}
	if time.Since(fi.ModTime()) > maxAge {
		return ErrExpired
	}
	return nil
}
